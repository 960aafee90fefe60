// Package nomethods is an introspection fixture: the actor type declares no
// exported methods, so there is nothing to number.
package nomethods

// IdleState is the fixture state record.
type IdleState struct {
	Ticks uint64
}

// IdleActor has only an unexported helper.
type IdleActor struct{}

func (a IdleActor) tick(st *IdleState) {
	st.Ticks++
}
