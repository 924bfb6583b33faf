// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package types defines the portable vocabulary shared by the gfx core and
// its back-ends: typed resource handles, resource states, format and
// render-state enumerations, and resource descriptors.
//
// The package has no dependencies on any graphics API.
package types
