// Package dom provides the mutable native tree that loom's interpreter
// mutates and its event delegation listens on.
//
// The tree is a small, faithful subset of a browser document: a Document
// creates element, text, and comment nodes; nodes form a parent/child
// tree supporting append, replace, and removal; elements carry ordered
// attributes plus live widget properties (value, checked, selected) that
// are deliberately distinct from attributes, matching real form controls.
//
// Events dispatched with Document.DispatchEvent bubble from the target
// node up to the root, invoking listeners registered with
// Node.AddEventListener along the way. Loom installs its delegated
// listeners only at the root.
//
// The tree is single-owner: all mutation and dispatch must happen on the
// goroutine that owns the Document. No internal locking is performed.
package dom
