package vnode

import (
	"log/slog"
	"runtime/debug"
)

// Cell is a type-erased, cloneable container binding a component render
// function, its current property value, and a memoization comparator.
// It lets the surrounding system store heterogeneous component
// instances in one collection; one concrete variant exists per property
// type, instantiated at the call site that owns the concrete type.
//
// A cell is exclusively owned by its component-instance record and
// never outlives it.
type Cell interface {
	// Render invokes the render function with the current properties
	// under failure isolation: a panic during the call is caught at
	// this boundary, logged with the component's display name, and
	// converted to the empty RenderReturn. One misbehaving component
	// cannot abort the whole render pass.
	Render() RenderReturn

	// Memoize reports whether candidate is equivalent enough to the
	// current properties to skip re-rendering. A candidate of a
	// different underlying type is never equal. The skip decision
	// itself belongs to the caller.
	Memoize(candidate any) bool

	// Props exposes the current properties for inspection via type
	// assertion on the caller's side.
	Props() any

	// SetProps replaces the current properties. It reports false and
	// leaves the cell unchanged if the candidate's type does not match.
	SetProps(candidate any) bool

	// Duplicate produces an independent cell with the same render
	// function and comparator and a copy of the current properties.
	Duplicate() Cell

	// Name returns the component's display name, used in diagnostics.
	Name() string
}

// cell is the one concrete Cell variant per property type P. Props are
// copied by value; P must have value semantics for Duplicate to yield
// an independent copy.
type cell[P any] struct {
	render func(P) *VNode
	memo   func(P, P) bool
	props  P
	name   string
	logger *slog.Logger
}

// NewCell creates a cell binding render, the memoization comparator
// memo, the initial properties, and a display name. A nil logger falls
// back to slog.Default().
func NewCell[P any](render func(P) *VNode, memo func(P, P) bool, props P, name string, logger *slog.Logger) Cell {
	if logger == nil {
		logger = slog.Default()
	}
	return &cell[P]{
		render: render,
		memo:   memo,
		props:  props,
		name:   name,
		logger: logger,
	}
}

// Render implements Cell.
func (c *cell[P]) Render() (out RenderReturn) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("component render panicked",
				"component", c.name,
				"panic", r,
				"stack", string(debug.Stack()))
			out = RenderReturn{}
		}
	}()

	node := c.render(c.props)
	return RenderReturn{Node: node}
}

// Memoize implements Cell.
func (c *cell[P]) Memoize(candidate any) bool {
	other, ok := candidate.(P)
	if !ok {
		return false
	}
	return c.memo(c.props, other)
}

// Props implements Cell.
func (c *cell[P]) Props() any {
	return c.props
}

// SetProps implements Cell.
func (c *cell[P]) SetProps(candidate any) bool {
	next, ok := candidate.(P)
	if !ok {
		return false
	}
	c.props = next
	return true
}

// Duplicate implements Cell.
func (c *cell[P]) Duplicate() Cell {
	return &cell[P]{
		render: c.render,
		memo:   c.memo,
		props:  c.props,
		name:   c.name,
		logger: c.logger,
	}
}

// Name implements Cell.
func (c *cell[P]) Name() string {
	return c.name
}
