// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package types

import "fmt"

// Resource handles
//
// A handle is a 32-bit value (generation << 16) | slot index. Slot index 0 is
// never handed out, so the zero value of every handle type is invalid. Each
// resource kind has its own handle type so that a Buffer cannot be passed
// where a Pipeline is expected.

// InvalidID is the zero handle value.
const InvalidID uint32 = 0

// Buffer is a handle to a vertex or index buffer.
type Buffer struct{ ID uint32 }

// Image is a handle to a texture or render-target image.
type Image struct{ ID uint32 }

// Shader is a handle to a vertex/fragment shader pair.
type Shader struct{ ID uint32 }

// Pipeline is a handle to a pipeline state object.
type Pipeline struct{ ID uint32 }

// Pass is a handle to an offscreen render pass.
type Pass struct{ ID uint32 }

// IsValid reports whether b is not the zero handle.
func (b Buffer) IsValid() bool { return b.ID != InvalidID }

// IsValid reports whether i is not the zero handle.
func (i Image) IsValid() bool { return i.ID != InvalidID }

// IsValid reports whether s is not the zero handle.
func (s Shader) IsValid() bool { return s.ID != InvalidID }

// IsValid reports whether p is not the zero handle.
func (p Pipeline) IsValid() bool { return p.ID != InvalidID }

// IsValid reports whether p is not the zero handle.
func (p Pass) IsValid() bool { return p.ID != InvalidID }

func (b Buffer) String() string   { return formatHandle("buffer", b.ID) }
func (i Image) String() string    { return formatHandle("image", i.ID) }
func (s Shader) String() string   { return formatHandle("shader", s.ID) }
func (p Pipeline) String() string { return formatHandle("pipeline", p.ID) }
func (p Pass) String() string     { return formatHandle("pass", p.ID) }

func formatHandle(kind string, id uint32) string {
	if id == InvalidID {
		return kind + "(invalid)"
	}
	return fmt.Sprintf("%s(%d:%d)", kind, id&0xFFFF, id>>16)
}

// ResourceKind identifies one of the resource tables.
type ResourceKind uint8

// Resource kinds.
const (
	KindBuffer ResourceKind = iota
	KindImage
	KindShader
	KindPipeline
	KindPass
)

// String returns the lowercase kind name.
func (k ResourceKind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindImage:
		return "image"
	case KindShader:
		return "shader"
	case KindPipeline:
		return "pipeline"
	case KindPass:
		return "pass"
	default:
		return fmt.Sprintf("ResourceKind(%d)", k)
	}
}

// ResourceState is the lifecycle state of a resource as seen by callers.
type ResourceState uint8

// Resource states.
//
// A handle moves Initial -> Alloc -> (Valid | Failed) -> Initial. Invalid is
// never stored in a slot; it is reported for handles that do not resolve
// (zero handle, stale generation, exhausted pool).
const (
	StateInitial ResourceState = iota
	StateAlloc
	StateValid
	StateFailed
	StateInvalid
)

// String returns the state name.
func (s ResourceState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateAlloc:
		return "alloc"
	case StateValid:
		return "valid"
	case StateFailed:
		return "failed"
	case StateInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("ResourceState(%d)", s)
	}
}
