package sdk

import (
	"strings"
	"testing"
)

func catch(fn func()) (a *Abort) {
	defer func() {
		a = CatchAbort(recover())
	}()
	fn()
	return nil
}

func TestAbortfCarriesCodeAndMessage(t *testing.T) {
	a := catch(func() {
		Abortf(ExitIllegalState, "failed to get root: %v", "no root set")
	})
	if a == nil {
		t.Fatal("expected an abort")
	}
	if a.Code != ExitIllegalState {
		t.Errorf("code = %v, want %v", a.Code, ExitIllegalState)
	}
	if !strings.Contains(a.Msg, "no root set") {
		t.Errorf("message %q missing diagnostic detail", a.Msg)
	}
}

func TestCatchAbortNil(t *testing.T) {
	if a := catch(func() {}); a != nil {
		t.Errorf("expected nil abort, got %v", a)
	}
}

func TestCatchAbortRepanicsOtherValues(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected non-abort panic to propagate")
		}
	}()
	defer func() {
		CatchAbort(recover())
	}()
	panic("unrelated")
}

func TestExitCodeString(t *testing.T) {
	cases := map[ExitCode]string{
		ExitForbidden:        "USR_FORBIDDEN",
		ExitIllegalState:     "USR_ILLEGAL_STATE",
		ExitSerialization:    "USR_SERIALIZATION",
		ExitUnhandledMessage: "USR_UNHANDLED_MESSAGE",
		ExitCode(99):         "ExitCode(99)",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Errorf("ExitCode(%d).String() = %q, want %q", uint32(code), got, want)
		}
	}
}

func TestAbortError(t *testing.T) {
	a := &Abort{Code: ExitUnhandledMessage, Msg: "unrecognized method 7"}
	want := "abort USR_UNHANDLED_MESSAGE: unrecognized method 7"
	if a.Error() != want {
		t.Errorf("Error() = %q, want %q", a.Error(), want)
	}
}
