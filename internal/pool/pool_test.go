// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"errors"
	"testing"
)

func TestNewFreeListOrder(t *testing.T) {
	p := New(5, false)
	if got := p.Capacity(); got != 4 {
		t.Fatalf("Capacity() = %d, want 4", got)
	}
	for want := 1; want <= 4; want++ {
		id, err := p.Alloc()
		if err != nil {
			t.Fatalf("Alloc() #%d: %v", want, err)
		}
		if got := Index(id); got != want {
			t.Errorf("Alloc() #%d index = %d, want %d", want, got, want)
		}
		if got := Generation(id); got != uint32(want) {
			t.Errorf("Alloc() #%d generation = %d, want %d", want, got, want)
		}
	}
}

func TestAllocExhausted(t *testing.T) {
	p := New(3, false)
	for i := 0; i < 2; i++ {
		if _, err := p.Alloc(); err != nil {
			t.Fatalf("Alloc() #%d: %v", i, err)
		}
	}
	id, err := p.Alloc()
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("Alloc() error = %v, want ErrExhausted", err)
	}
	if id != 0 {
		t.Errorf("Alloc() id = %d, want 0", id)
	}
}

func TestFreeReuseBumpsGeneration(t *testing.T) {
	p := New(4, false)
	a, _ := p.Alloc()
	b, _ := p.Alloc()
	p.Free(a)

	c, err := p.Alloc()
	if err != nil {
		t.Fatalf("Alloc(): %v", err)
	}
	if Index(c) != Index(a) {
		t.Errorf("reused index = %d, want %d", Index(c), Index(a))
	}
	if c == a {
		t.Errorf("reused id %#x equals stale id", c)
	}
	if Generation(c) != Generation(b)+1 {
		t.Errorf("generation = %d, want %d", Generation(c), Generation(b)+1)
	}
	if c == b {
		t.Errorf("reused id equals live id %#x", b)
	}
}

func TestGenerationSharedAcrossSlots(t *testing.T) {
	p := New(4, false)
	for i := uint32(1); i <= 3; i++ {
		id, err := p.Alloc()
		if err != nil {
			t.Fatalf("Alloc(): %v", err)
		}
		if got := Generation(id); got != i {
			t.Errorf("Generation() of allocation %d = %d, want %d", i, got, i)
		}
	}
}

func TestFreeIgnoresOutOfRange(t *testing.T) {
	p := New(3, true)
	p.Free(0)
	p.Free(1<<16 | 7)
	if got := p.Available(); got != 2 {
		t.Errorf("Available() = %d, want 2", got)
	}
}

func TestDoubleFreeDebugPanics(t *testing.T) {
	p := New(3, true)
	id, _ := p.Alloc()
	p.Free(id)

	defer func() {
		if recover() == nil {
			t.Error("second Free did not panic in debug mode")
		}
	}()
	p.Free(id)
}

func TestDoubleFreeReleaseKeepsFreeListBounded(t *testing.T) {
	p := New(3, false)
	id, _ := p.Alloc()
	p.Free(id)
	p.Free(id)
	p.Free(id)
	if got := p.Available(); got > p.Capacity() {
		t.Errorf("Available() = %d exceeds Capacity() = %d", got, p.Capacity())
	}
}

func TestNewClampsSize(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{0, 2},
		{1, 2},
		{2, 2},
		{1 << 20, 1 << 16},
	}
	for _, tt := range tests {
		if got := New(tt.size, false).Size(); got != tt.want {
			t.Errorf("New(%d).Size() = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestGenerationWraps(t *testing.T) {
	p := New(2, false)
	var id uint32
	for i := 0; i < IndexMask+1; i++ {
		id, _ = p.Alloc()
		p.Free(id)
	}
	if got := Generation(id); got != 0 {
		t.Errorf("Generation after wrap = %d, want 0", got)
	}
	if Index(id) != 1 {
		t.Errorf("Index = %d, want 1", Index(id))
	}
}
