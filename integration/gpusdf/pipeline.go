// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpusdf

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/sdftext"
	"github.com/gogpu/wgpu/hal"
)

// Embedded SDF text shader source.
//
//go:embed shaders/sdf_text.wgsl
var sdfTextShaderSource string

// Entry points of the SDF text shader.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

var (
	// ErrNilDevice is returned when NewPipeline is given a nil device.
	ErrNilDevice = errors.New("gpusdf: device is nil")

	// ErrPipelineDestroyed is returned by a destroyed pipeline.
	ErrPipelineDestroyed = errors.New("gpusdf: pipeline destroyed")
)

// ShaderSource returns the WGSL source of the SDF text shader.
func ShaderSource() string {
	return sdfTextShaderSource
}

// CompileSPIRV compiles the SDF text shader to SPIR-V words.
func CompileSPIRV() ([]uint32, error) {
	spirvBytes, err := naga.Compile(sdfTextShaderSource)
	if err != nil {
		return nil, fmt.Errorf("gpusdf: compile sdf_text shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("gpusdf: SPIR-V size %d is not word aligned", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// BindGroupLayoutEntries describes group 0 of the shader:
//
//	binding 0: TextUniforms (uniform buffer, vertex+fragment)
//	binding 1: atlas texture (texture_2d, fragment)
//	binding 2: filtering sampler (fragment)
func BindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    2,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
}

// Pipeline owns the shader module and bind group layout of the SDF text
// program on one device. It is a sdftext.ShaderFactory.
type Pipeline struct {
	device    hal.Device
	shader    hal.ShaderModule
	layout    hal.BindGroupLayout
	destroyed bool
}

var _ sdftext.ShaderFactory = (*Pipeline)(nil)

// NewPipeline compiles the shader and creates its HAL objects on device.
func NewPipeline(device hal.Device) (*Pipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	spirv, err := CompileSPIRV()
	if err != nil {
		return nil, err
	}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "sdf_text_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("gpusdf: create shader module: %w", err)
	}

	layout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "sdf_text_uniform_layout",
		Entries: BindGroupLayoutEntries(),
	})
	if err != nil {
		device.DestroyShaderModule(shader)
		return nil, fmt.Errorf("gpusdf: create bind group layout: %w", err)
	}

	sdftext.Logger().Debug("gpusdf: pipeline created", "spirv_words", len(spirv))
	return &Pipeline{device: device, shader: shader, layout: layout}, nil
}

// ShaderModule returns the compiled shader module.
func (p *Pipeline) ShaderModule() hal.ShaderModule { return p.shader }

// BindGroupLayout returns the layout of group 0.
func (p *Pipeline) BindGroupLayout() hal.BindGroupLayout { return p.layout }

// SDFShader returns a new uniform block for this pipeline.
func (p *Pipeline) SDFShader() (sdftext.Shader, error) {
	if p.destroyed {
		return nil, ErrPipelineDestroyed
	}
	return NewShader(), nil
}

// Destroy releases the HAL objects. It is safe to call more than once.
func (p *Pipeline) Destroy() {
	if p.layout != nil {
		p.device.DestroyBindGroupLayout(p.layout)
		p.layout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
	p.destroyed = true
}
