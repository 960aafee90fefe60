package gen

import "github.com/dave/jennifer/jen"

// emitDispatch writes the dispatch function: range-check the method number
// before touching any state, resolve the starting record, wrap the raw
// params, invoke the matching method, then encode-or-sentinel the result.
func emitDispatch(f *jen.File, m *ActorModel) {
	state := m.State.Name
	actor := m.ActorType

	cases := make([]jen.Code, 0, len(m.Methods))
	for _, mm := range m.Methods {
		call := jen.Id("actor").Dot(mm.Name).Call(jen.Id("rt"), jen.Id("params"), jen.Id("st"))
		var body jen.Code = call
		if mm.HasReturn {
			body = jen.Id("ret").Op("=").Add(call)
		}
		cases = append(cases, jen.Case(jen.Id("Method"+mm.Name)).Block(body))
	}

	f.Commentf("Dispatch%s routes a method number to the matching actor method and", actor)
	f.Comment("returns the block id of the stored return payload, or the no-data sentinel.")
	f.Func().Id("Dispatch" + actor).Params(
		jen.Id("rt").Qual(sdkPath, "Runtime"),
		jen.Id("id").Uint64(),
	).Uint32().Block(
		jen.If(jen.Id("id").Op("<").Lit(1).Op("||").Id("id").Op(">").Id("methodCount")).Block(
			abortCall("ExitUnhandledMessage", "unrecognized method %d", jen.Id("id")),
		),
		jen.Line(),
		jen.Id("st").Op(":=").Id("Initial"+state).Call(jen.Id("rt"), jen.Id("id")),
		jen.Id("params").Op(":=").Qual(sdkPath, "RawBytes").Call(jen.Id("rt").Dot("ParamsRaw").Call(jen.Id("id"))),
		jen.Line(),
		jen.Id("actor").Op(":=").Id(actor).Values(),
		jen.Var().Id("ret").Qual(sdkPath, "RawBytes"),
		jen.Switch(jen.Id("id")).Block(cases...),
		jen.Line(),
		jen.If(jen.Id("ret").Op("==").Nil()).Block(
			jen.Return(jen.Qual(sdkPath, "NoDataBlockID")),
		),
		jen.List(jen.Id("blk"), jen.Err()).Op(":=").Id("rt").Dot("PutBlock").Call(
			jen.Qual(sdkPath, "CodecDagCBOR"), jen.Id("ret"),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			abortCall("ExitSerialization", "failed to store return value: %v", jen.Err()),
		),
		jen.Return(jen.Id("blk")),
	)
}

// emitInvoke writes the host entrypoint: a bare pass-through around the
// dispatch function, method number in, block id out.
func emitInvoke(f *jen.File, m *ActorModel) {
	f.Comment("Invoke is the entrypoint exposed to the host.")
	f.Func().Id("Invoke").Params(
		jen.Id("rt").Qual(sdkPath, "Runtime"),
		jen.Id("id").Uint64(),
	).Uint32().Block(
		jen.Return(jen.Id("Dispatch" + m.ActorType).Call(jen.Id("rt"), jen.Id("id"))),
	)
}
