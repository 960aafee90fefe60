package sdk

import "fmt"

// ExitCode identifies why an invocation was terminated. The values mirror the
// host VM's user exit-code table; the set is closed and every code is
// terminal for the current invocation.
type ExitCode uint32

const (
	// ExitForbidden reports a failed privilege check, such as a constructor
	// invoked by a non-privileged caller.
	ExitForbidden ExitCode = 18

	// ExitIllegalState reports a missing or unreadable state root, a missing
	// state block, a state decode failure, or a failed root update.
	ExitIllegalState ExitCode = 20

	// ExitSerialization reports an encode or store failure for state or for
	// a return payload.
	ExitSerialization ExitCode = 21

	// ExitUnhandledMessage reports a method number with no dispatch table
	// entry.
	ExitUnhandledMessage ExitCode = 22
)

// String returns the symbolic name of the exit code.
func (c ExitCode) String() string {
	switch c {
	case ExitForbidden:
		return "USR_FORBIDDEN"
	case ExitIllegalState:
		return "USR_ILLEGAL_STATE"
	case ExitSerialization:
		return "USR_SERIALIZATION"
	case ExitUnhandledMessage:
		return "USR_UNHANDLED_MESSAGE"
	default:
		return fmt.Sprintf("ExitCode(%d)", uint32(c))
	}
}
