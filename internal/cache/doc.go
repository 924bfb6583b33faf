// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a bounded least-recently-used cache.
//
//	c := cache.New[string, []uint32](64)
//	words := c.GetOrCreate(src, compile)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
