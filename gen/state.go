package gen

import "github.com/dave/jennifer/jen"

// emitLoad writes the state loader. Any failure along the root → block →
// decode path is an illegal-state abort; there is no recovery.
func emitLoad(f *jen.File, m *ActorModel) {
	state := m.State.Name

	f.Commentf("Load%s reads the actor's state root and decodes the stored record.", state)
	f.Func().Id("Load" + state).Params(
		jen.Id("rt").Qual(sdkPath, "Runtime"),
	).Op("*").Id(state).Block(
		jen.List(jen.Id("root"), jen.Err()).Op(":=").Id("rt").Dot("StateRoot").Call(),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			abortCall("ExitIllegalState", "failed to get root: %v", jen.Err()),
		),
		jen.Line(),
		jen.List(jen.Id("data"), jen.Id("found"), jen.Err()).Op(":=").Id("rt").Dot("BlockGet").Call(jen.Id("root")),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			abortCall("ExitIllegalState", "failed to get state: %v", jen.Err()),
		),
		jen.If(jen.Op("!").Id("found")).Block(
			abortCall("ExitIllegalState", "state does not exist"),
		),
		jen.Line(),
		jen.Var().Id("st").Id(state),
		jen.If(
			jen.Err().Op(":=").Qual(sdkPath, "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id("st")),
			jen.Err().Op("!=").Nil(),
		).Block(
			abortCall("ExitIllegalState", "failed to decode state: %v", jen.Err()),
		),
		jen.Return(jen.Op("&").Id("st")),
	)
}

// emitSave writes the state saver. Encode and store failures are
// serialization aborts; a failed root update is an illegal-state abort and
// deliberately leaves the freshly stored block in place.
func emitSave(f *jen.File, m *ActorModel) {
	state := m.State.Name

	f.Comment("Save encodes the record, stores it, and repoints the state root at it.")
	f.Func().Params(jen.Id("st").Op("*").Id(state)).Id("Save").Params(
		jen.Id("rt").Qual(sdkPath, "Runtime"),
	).Qual(cidPath, "Cid").Block(
		jen.List(jen.Id("data"), jen.Err()).Op(":=").Qual(sdkPath, "Marshal").Call(jen.Id("st")),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			abortCall("ExitSerialization", "failed to serialize state: %v", jen.Err()),
		),
		jen.Line(),
		jen.List(jen.Id("c"), jen.Err()).Op(":=").Id("rt").Dot("BlockPut").Call(
			jen.Qual(sdkPath, "HashBlake2b256"),
			jen.Qual(sdkPath, "HashLength"),
			jen.Qual(sdkPath, "CodecDagCBOR"),
			jen.Id("data"),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			abortCall("ExitSerialization", "failed to store state: %v", jen.Err()),
		),
		jen.If(
			jen.Err().Op(":=").Id("rt").Dot("SetStateRoot").Call(jen.Id("c")),
			jen.Err().Op("!=").Nil(),
		).Block(
			abortCall("ExitIllegalState", "failed to set root: %v", jen.Err()),
		),
		jen.Return(jen.Id("c")),
	)
}

// emitInitial writes the dispatch-time state resolver: the constructor starts
// from the zero record without ever consulting the root, everything else
// loads the stored record.
func emitInitial(f *jen.File, m *ActorModel) {
	state := m.State.Name
	ctor := m.Constructor()

	f.Commentf("Initial%s returns the state a method starts from: the zero record for", state)
	f.Comment("the constructor, the stored record for every other method.")
	f.Func().Id("Initial" + state).Params(
		jen.Id("rt").Qual(sdkPath, "Runtime"),
		jen.Id("id").Uint64(),
	).Op("*").Id(state).Block(
		jen.If(jen.Id("id").Op("==").Id("Method"+ctor.Name)).Block(
			jen.Return(jen.New(jen.Id(state))),
		),
		jen.Return(jen.Id("Load"+state).Call(jen.Id("rt"))),
	)
}
