package gen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"
)

const cidPath = "github.com/ipfs/go-cid"

// Generate renders the complete glue file for an actor: method number
// constants, state load/save, the dispatch function, and (optionally) the
// host-facing Invoke wrapper. The output is gofmt-formatted Go source for the
// actor's own package.
func Generate(m *ActorModel) (string, error) {
	f := jen.NewFilePathName(m.PackagePath, m.PackageName)
	f.HeaderComment("Code generated by fvmgen. DO NOT EDIT.")
	f.ImportName(sdkPath, "sdk")
	f.ImportName(cidPath, "cid")

	emitMethodNumbers(f, m)
	emitLoad(f, m)
	emitSave(f, m)
	emitInitial(f, m)
	emitDispatch(f, m)
	if m.EmitInvoke {
		emitInvoke(f, m)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering glue for %s: %w", m.ActorType, err)
	}
	return buf.String(), nil
}

// emitMethodNumbers writes the wire method numbers. They are dense, 1-based,
// and fixed by declaration order; number 1 is always the constructor.
func emitMethodNumbers(f *jen.File, m *ActorModel) {
	f.Commentf("Method numbers for %s, assigned by declaration order.", m.ActorType)
	defs := make([]jen.Code, 0, len(m.Methods)+1)
	for _, mm := range m.Methods {
		defs = append(defs, jen.Id("Method"+mm.Name).Uint64().Op("=").Lit(int(mm.Num)))
	}
	f.Const().Defs(defs...)
	f.Line()
	f.Const().Id("methodCount").Op("=").Lit(len(m.Methods))
}

func abortCall(code string, format string, args ...jen.Code) jen.Code {
	call := []jen.Code{jen.Qual(sdkPath, code), jen.Lit(format)}
	call = append(call, args...)
	return jen.Qual(sdkPath, "Abortf").Call(call...)
}
