// Package badsig is an introspection fixture: its method does not follow the
// dispatchable signature shape.
package badsig

// WidgetState is the fixture state record.
type WidgetState struct {
	Size uint64
}

// WidgetActor declares a method with the wrong parameters.
type WidgetActor struct{}

// Constructor is missing the runtime and params parameters.
func (a WidgetActor) Constructor(st *WidgetState) {}
