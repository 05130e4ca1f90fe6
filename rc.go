// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

// Releaser is implemented by window adapters that own host resources. Release
// is called exactly once, when the last strong reference is dropped.
type Releaser interface {
	Release()
}

// rcCell is the shared allocation behind Rc and Weak.
type rcCell struct {
	adapter WindowAdapter
	strong  int
}

// Rc is a strong, counted reference to a window adapter.
//
// Rc is a small value; copying it does not add a reference. Use Clone to take
// another reference and Drop to give one up. Every Clone, NewRc and successful
// Weak.Upgrade must be balanced by exactly one Drop. The zero Rc holds
// nothing.
//
// Rc is not safe for concurrent use.
type Rc struct {
	cell *rcCell
}

// Weak is a non-owning reference to a window adapter. It never keeps the
// adapter alive; Upgrade reports whether it still exists.
type Weak struct {
	cell *rcCell
}

// NewRc returns the first strong reference to a.
func NewRc(a WindowAdapter) Rc {
	if a == nil {
		ContractViolation("NewRc called with a nil adapter")
	}
	return Rc{cell: &rcCell{adapter: a, strong: 1}}
}

// NewRcCyclic builds an adapter that needs a weak reference to itself, for
// example to hand it to its Window or Renderer. The Weak passed to build
// cannot be upgraded until build returns.
func NewRcCyclic(build func(self Weak) WindowAdapter) Rc {
	cell := &rcCell{}
	a := build(Weak{cell: cell})
	if a == nil {
		ContractViolation("NewRcCyclic builder returned a nil adapter")
	}
	cell.adapter = a
	cell.strong = 1
	return Rc{cell: cell}
}

// IsValid reports whether r refers to a live adapter.
func (r Rc) IsValid() bool {
	return r.cell != nil && r.cell.strong > 0
}

// Adapter returns the referenced adapter. Using a released or zero Rc is a
// contract violation.
func (r Rc) Adapter() WindowAdapter {
	if !r.IsValid() {
		ContractViolation("use of a released window adapter")
	}
	return r.cell.adapter
}

// Clone returns another strong reference to the same adapter.
func (r Rc) Clone() Rc {
	if !r.IsValid() {
		ContractViolation("clone of a released window adapter")
	}
	r.cell.strong++
	return r
}

// Drop gives up this strong reference. When it was the last one the adapter's
// Releaser hook runs and every Weak stops upgrading. Dropping more often than
// references were taken is a contract violation.
func (r Rc) Drop() {
	if !r.IsValid() {
		ContractViolation("drop of a released window adapter")
	}
	r.cell.strong--
	if r.cell.strong > 0 {
		return
	}
	a := r.cell.adapter
	r.cell.adapter = nil
	if rel, ok := a.(Releaser); ok {
		rel.Release()
	}
	Logger().Debug("ggui: window adapter released")
}

// StrongCount returns the number of live strong references.
func (r Rc) StrongCount() int {
	if r.cell == nil {
		return 0
	}
	return r.cell.strong
}

// Downgrade returns a weak reference to the same adapter.
func (r Rc) Downgrade() Weak {
	return Weak{cell: r.cell}
}

// Same reports whether r and o share the same allocation.
func (r Rc) Same(o Rc) bool {
	return r.cell != nil && r.cell == o.cell
}

// Upgrade returns a new strong reference when the adapter is still alive.
// The caller must Drop it.
func (w Weak) Upgrade() (Rc, bool) {
	if w.cell == nil || w.cell.strong <= 0 {
		return Rc{}, false
	}
	w.cell.strong++
	return Rc{cell: w.cell}, true
}

// IsAlive reports whether Upgrade would succeed.
func (w Weak) IsAlive() bool {
	return w.cell != nil && w.cell.strong > 0
}

// With upgrades w, calls f with the adapter and drops the temporary
// reference. It reports whether the adapter was alive.
func (w Weak) With(f func(WindowAdapter)) bool {
	rc, ok := w.Upgrade()
	if !ok {
		return false
	}
	defer rc.Drop()
	f(rc.Adapter())
	return true
}

// Same reports whether w and o refer to the same allocation.
func (w Weak) Same(o Weak) bool {
	return w.cell != nil && w.cell == o.cell
}
