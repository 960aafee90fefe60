package sdk

import "fmt"

// Abort is the terminal failure of an invocation. It carries a
// machine-checkable exit code and a human-readable diagnostic. Generated code
// never recovers one; the host harness observes it as a failed outcome.
type Abort struct {
	Code ExitCode
	Msg  string
}

func (a *Abort) Error() string {
	return fmt.Sprintf("abort %s: %s", a.Code, a.Msg)
}

// Abortf terminates the current invocation with the given exit code and a
// formatted diagnostic. It does not return.
func Abortf(code ExitCode, format string, args ...any) {
	panic(&Abort{Code: code, Msg: fmt.Sprintf(format, args...)})
}

// CatchAbort converts a recovered panic value back into an *Abort. Host
// harnesses call it from a deferred recover around an invocation; any other
// panic value is re-raised untouched.
func CatchAbort(recovered any) *Abort {
	if recovered == nil {
		return nil
	}
	if a, ok := recovered.(*Abort); ok {
		return a
	}
	panic(recovered)
}
