// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"sync/atomic"
)

// Platform creates window adapters for the host windowing system.
type Platform interface {
	// CreateWindowAdapter returns a new adapter on every call. The caller
	// owns the returned strong reference.
	CreateWindowAdapter() (Rc, error)
}

type platformHolder struct {
	p Platform
}

// platformSlot is the process-wide, write-once platform.
var platformSlot atomic.Pointer[platformHolder]

// SetPlatform installs the process-wide platform. It succeeds at most once;
// later calls return ErrPlatformAlreadySet and leave the first platform in
// place. Safe for concurrent use.
func SetPlatform(p Platform) error {
	if p == nil {
		return ErrNilPlatform
	}
	if !platformSlot.CompareAndSwap(nil, &platformHolder{p: p}) {
		return ErrPlatformAlreadySet
	}
	Logger().Info("ggui: platform installed")
	return nil
}

// CurrentPlatform returns the installed platform, or nil.
func CurrentPlatform() Platform {
	if h := platformSlot.Load(); h != nil {
		return h.p
	}
	return nil
}

// CreateWindowAdapter asks the installed platform for a new adapter.
func CreateWindowAdapter() (Rc, error) {
	p := CurrentPlatform()
	if p == nil {
		return Rc{}, ErrNoPlatform
	}
	return p.CreateWindowAdapter()
}

// LazyAdapter creates the adapter of one logical window on first use and
// hands out the same adapter afterwards.
//
// The zero value is ready to use. LazyAdapter is not safe for concurrent use.
type LazyAdapter struct {
	rc Rc
	// New overrides the factory; nil uses CreateWindowAdapter.
	New func() (Rc, error)
}

// Get returns the window's adapter, creating it on the first call. The
// returned reference is owned by the LazyAdapter; Clone it to keep it.
func (l *LazyAdapter) Get() (Rc, error) {
	if l.rc.IsValid() {
		return l.rc, nil
	}
	create := l.New
	if create == nil {
		create = CreateWindowAdapter
	}
	rc, err := create()
	if err != nil {
		return Rc{}, err
	}
	l.rc = rc
	return rc, nil
}

// Created reports whether the adapter exists.
func (l *LazyAdapter) Created() bool { return l.rc.IsValid() }

// Release drops the adapter if it was created.
func (l *LazyAdapter) Release() {
	if l.rc.IsValid() {
		l.rc.Drop()
	}
	l.rc = Rc{}
}

var animationTick atomic.Pointer[func()]

// SetAnimationTick installs the function advancing timers and animations.
// Hosts call UpdateTimersAndAnimations once per frame.
func SetAnimationTick(f func()) {
	if f == nil {
		animationTick.Store(nil)
		return
	}
	animationTick.Store(&f)
}

// UpdateTimersAndAnimations runs the installed animation tick, if any.
func UpdateTimersAndAnimations() {
	if f := animationTick.Load(); f != nil {
		(*f)()
	}
}
