// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"errors"
	"fmt"
)

var (
	// ErrPlatformAlreadySet is returned by SetPlatform when a platform has
	// already been installed for this process.
	ErrPlatformAlreadySet = errors.New("ggui: platform already set")

	// ErrNoPlatform is returned when a window adapter is requested before any
	// platform was installed.
	ErrNoPlatform = errors.New("ggui: no platform installed")

	// ErrNilPlatform is returned by SetPlatform when passed nil.
	ErrNilPlatform = errors.New("ggui: nil platform")

	// ErrUnsupported marks a primitive or handle kind a backend deliberately
	// does not implement.
	ErrUnsupported = errors.New("ggui: unsupported")

	// ErrRendererNotFound is returned when no renderer is registered under a
	// requested name.
	ErrRendererNotFound = errors.New("ggui: renderer not found")
)

// ErrorKind categorizes a PlatformError.
type ErrorKind int

const (
	// KindUnknown is an uncategorized host failure.
	KindUnknown ErrorKind = iota
	// KindCreate is a failure creating a window, surface or render target.
	KindCreate
	// KindSurface is a failure of the presentation surface.
	KindSurface
	// KindShow is a failure making the window visible.
	KindShow
	// KindHide is a failure hiding the window.
	KindHide
	// KindResize is a failure reconfiguring for a new size.
	KindResize
	// KindRender is a failure while drawing or presenting a frame.
	KindRender
)

func (k ErrorKind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindSurface:
		return "surface"
	case KindShow:
		return "show"
	case KindHide:
		return "hide"
	case KindResize:
		return "resize"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// PlatformError reports a failure of the host windowing system or graphics
// API. Backends return it and never panic on host failure.
type PlatformError struct {
	// Op is the operation that failed, e.g. "gpucanvas.Render".
	Op string
	// Kind categorizes the failure.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
}

// NewPlatformError wraps err. It returns nil when err is nil.
func NewPlatformError(op string, kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &PlatformError{Op: op, Kind: kind, Err: err}
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err wraps a PlatformError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *PlatformError
	return errors.As(err, &pe) && pe.Kind == kind
}

// ContractViolation panics with a formatted message. It is used for caller
// misuse that cannot be reported as an error: popping an empty state stack,
// dropping a released adapter, handing over an undersized buffer.
func ContractViolation(format string, args ...any) {
	panic("ggui: contract violation: " + fmt.Sprintf(format, args...))
}
