// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

// FrameStats counts the calls made during one frame.
type FrameStats struct {
	Frame         uint64
	Passes        int
	ApplyPipeline int
	ApplyBindings int
	ApplyUniforms int
	UniformBytes  int
	Draws         int
	// DroppedDraws counts draws skipped because a pass, pipeline or binding
	// was not Valid.
	DroppedDraws int
	UpdateBuffer int
	AppendBuffer int
	UpdateImage  int
}

// QueryFrameStats returns the statistics of the last committed frame.
func (c *Context) QueryFrameStats() FrameStats {
	return c.lastStats
}
