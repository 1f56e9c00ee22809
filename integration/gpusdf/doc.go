// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpusdf provides the GPU side of SDF text rendering.
//
// It contains the WGSL program that evaluates the distance atlas, helpers to
// compile it with naga and create the wgpu HAL objects it needs, a uniform
// block packer implementing sdftext.Shader, and a TextureFactory that
// uploads atlases through a gpucontext.TextureCreator.
//
// # Usage
//
//	pipe, err := gpusdf.NewPipeline(device)
//	if err != nil {
//	    return err
//	}
//	defer pipe.Destroy()
//
//	textures := gpusdf.NewTextureFactory(dc.TextureCreator())
//	font, err := sdftext.LoadFont(cache, textures, pipe)
//
// Each frame, write Shader.UniformBytes to the uniform buffer and
// QuadVertices/QuadIndices to the vertex and index buffers.
package gpusdf
