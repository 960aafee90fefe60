package gen

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func counterModel() *ActorModel {
	return &ActorModel{
		PackagePath: counterPkg,
		PackageName: "counter",
		ActorType:   "CounterActor",
		State: RecordModel{
			Name:   "CounterState",
			Fields: []FieldModel{{Name: "Count", TypeStr: "uint64"}},
		},
		Methods: []MethodModel{
			{Num: 1, Name: "Constructor", HasReturn: false},
			{Num: 2, Name: "SayHello", HasReturn: true},
		},
		EmitInvoke: true,
	}
}

func TestGenerateCounter(t *testing.T) {
	code, err := Generate(counterModel())
	require.NoError(t, err)

	for _, want := range []string{
		"// Code generated by fvmgen. DO NOT EDIT.",
		"package counter",
		"MethodConstructor uint64 = 1",
		"MethodSayHello",
		"const methodCount = 2",
		"func LoadCounterState(rt sdk.Runtime) *CounterState",
		"func (st *CounterState) Save(rt sdk.Runtime) cid.Cid",
		"func InitialCounterState(rt sdk.Runtime, id uint64) *CounterState",
		"func DispatchCounterActor(rt sdk.Runtime, id uint64) uint32",
		"func Invoke(rt sdk.Runtime, id uint64) uint32",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q", want)
		}
	}

	updateGolden(t, "testdata/counter_gen.golden", code)
	compareGolden(t, "testdata/counter_gen.golden", code)
}

func TestGenerateLoadAborts(t *testing.T) {
	code, err := Generate(counterModel())
	require.NoError(t, err)

	for _, want := range []string{
		`sdk.Abortf(sdk.ExitIllegalState, "failed to get root: %v", err)`,
		`sdk.Abortf(sdk.ExitIllegalState, "failed to get state: %v", err)`,
		`sdk.Abortf(sdk.ExitIllegalState, "state does not exist")`,
		`sdk.Abortf(sdk.ExitIllegalState, "failed to decode state: %v", err)`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("loader missing %q", want)
		}
	}
}

func TestGenerateSaveAborts(t *testing.T) {
	code, err := Generate(counterModel())
	require.NoError(t, err)

	for _, want := range []string{
		"rt.BlockPut(sdk.HashBlake2b256, sdk.HashLength, sdk.CodecDagCBOR, data)",
		`sdk.Abortf(sdk.ExitSerialization, "failed to serialize state: %v", err)`,
		`sdk.Abortf(sdk.ExitSerialization, "failed to store state: %v", err)`,
		`sdk.Abortf(sdk.ExitIllegalState, "failed to set root: %v", err)`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("saver missing %q", want)
		}
	}
}

func TestGenerateDispatchShape(t *testing.T) {
	code, err := Generate(counterModel())
	require.NoError(t, err)

	rangeCheck := strings.Index(code, "id < 1 || id > methodCount")
	stateLoad := strings.Index(code, "st := InitialCounterState(rt, id)")
	require.NotEqual(t, -1, rangeCheck)
	require.NotEqual(t, -1, stateLoad)

	// Unknown method numbers abort before any state access.
	require.Less(t, rangeCheck, stateLoad)

	for _, want := range []string{
		`sdk.Abortf(sdk.ExitUnhandledMessage, "unrecognized method %d", id)`,
		"params := sdk.RawBytes(rt.ParamsRaw(id))",
		"case MethodConstructor:",
		"actor.Constructor(rt, params, st)",
		"case MethodSayHello:",
		"ret = actor.SayHello(rt, params, st)",
		"return sdk.NoDataBlockID",
		"rt.PutBlock(sdk.CodecDagCBOR, ret)",
		`sdk.Abortf(sdk.ExitSerialization, "failed to store return value: %v", err)`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("dispatch missing %q", want)
		}
	}
}

func TestGenerateWithoutInvoke(t *testing.T) {
	m := counterModel()
	m.EmitInvoke = false

	code, err := Generate(m)
	require.NoError(t, err)

	require.NotContains(t, code, "func Invoke(")
	require.Contains(t, code, "func DispatchCounterActor(rt sdk.Runtime, id uint64) uint32")
}

func TestGenerateVoidOnlyActor(t *testing.T) {
	m := &ActorModel{
		PackagePath: "example.com/fixture/vault",
		PackageName: "vault",
		ActorType:   "VaultActor",
		State:       RecordModel{Name: "VaultState"},
		Methods: []MethodModel{
			{Num: 1, Name: "Constructor", HasReturn: false},
			{Num: 2, Name: "Lock", HasReturn: false},
		},
		EmitInvoke: true,
	}

	code, err := Generate(m)
	require.NoError(t, err)

	require.Contains(t, code, "actor.Lock(rt, params, st)")
	require.NotContains(t, code, "ret = actor.Lock")
	// ret is never assigned, so every call returns the sentinel.
	require.Contains(t, code, "return sdk.NoDataBlockID")
}

func updateGolden(t *testing.T, path, content string) {
	t.Helper()
	if os.Getenv("UPDATE_GOLDEN") == "" {
		return
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("updating golden file %s: %v", path, err)
	}
}

func compareGolden(t *testing.T, path, actual string) {
	t.Helper()
	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Logf("Golden file %s does not exist. Run with UPDATE_GOLDEN=1 to create.", path)
		return
	}
	if err != nil {
		t.Fatalf("reading golden file %s: %v", path, err)
	}
	if string(expected) != actual {
		t.Errorf("generated code does not match %s; run with UPDATE_GOLDEN=1 to refresh", path)
	}
}
