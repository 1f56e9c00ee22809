// Package cache provides a frame-aged LRU cache.
//
// Entries remember the frame in which they were last used. EndFrame advances
// the frame counter and evicts entries that have been idle for more than the
// configured number of frames. An optional soft limit bounds the entry count
// between frames.
//
//	c := cache.New[string, *Layout](10, 0, func(_ string, l *Layout) { l.Release() })
//	l, err := c.GetOrCreate(key, build)
//	...
//	c.EndFrame()
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
