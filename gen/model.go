// Package gen turns an actor package's declarations into persistence and
// dispatch glue: it introspects the state record and the actor's exported
// methods, numbers the methods by declaration order, and emits Go source
// implementing load/save and the host invocation entrypoint.
package gen

// ActorModel is the in-memory description of one actor: everything the
// emitters need, captured once at build time.
type ActorModel struct {
	PackagePath string
	PackageName string

	// Dir is the on-disk directory of the actor package, where generated
	// output lands.
	Dir string

	ActorType string
	State     RecordModel
	Methods   []MethodModel

	// EmitInvoke controls whether the host-facing Invoke wrapper is emitted
	// alongside the dispatch function.
	EmitInvoke bool
}

// RecordModel describes the actor's state record: a named struct whose
// fields, in declaration order, are what the binary codec serializes.
type RecordModel struct {
	Name   string
	Fields []FieldModel
}

// FieldModel is one state record field.
type FieldModel struct {
	Name    string
	TypeStr string
}

// MethodModel is one dispatchable method. Num is the wire method number:
// 1-based, dense, assigned strictly by declaration order. Num 1 is the
// constructor.
type MethodModel struct {
	Num       uint64
	Name      string
	HasReturn bool
}

// Constructor returns the method holding number 1.
func (m *ActorModel) Constructor() MethodModel {
	return m.Methods[0]
}

// MethodNames returns the method names in wire order.
func (m *ActorModel) MethodNames() []string {
	names := make([]string, len(m.Methods))
	for i, mm := range m.Methods {
		names[i] = mm.Name
	}
	return names
}
