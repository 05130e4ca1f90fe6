// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows || !amd64

package native2d

import "github.com/gogpu/ggui"

// NewHWNDTarget is only available on Windows. Elsewhere it releases handle
// and returns ErrUnsupportedHandle.
func NewHWNDTarget(handle *ggui.NativeWindowHandle, _ ggui.PhysicalSize) (Target, error) {
	if handle != nil {
		handle.Release()
	}
	return nil, ErrUnsupportedHandle
}
