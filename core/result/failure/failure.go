package failure

import (
	"errors"
	"fmt"
	"runtime"

	pkgerrors "github.com/pkg/errors"
)

// Named is an error that you can read a name from
type Named interface {
	Name() string
}

// WithStackTrace is an error that you can read a stack trace from
type WithStackTrace interface {
	Stack() string
}

// Failure is an error with a stable name that callers can switch on without
// parsing the message.
type Failure interface {
	error
	Named
}

type NamedWithStackTrace interface {
	Named
	WithStackTrace
}

type namedWithStackTrace struct {
	name  string
	stack pkgerrors.StackTrace
}

func (n namedWithStackTrace) Name() string {
	return n.name
}

func (n namedWithStackTrace) Stack() string {
	return fmt.Sprintf("%+v", n.stack)
}

// NamedWithCurrentStackTrace captures the stack of the caller's caller, so an
// error constructor that calls it records where the error was created.
func NamedWithCurrentStackTrace(name string) NamedWithStackTrace {
	const depth = 32

	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	f := make(pkgerrors.StackTrace, n)
	for i := 0; i < n; i++ {
		f[i] = pkgerrors.Frame(pcs[i])
	}

	return namedWithStackTrace{name, f}
}

type failure struct {
	name    string
	message string
	stack   *string
	cause   error
}

func (f failure) Name() string {
	return f.name
}

func (f failure) Error() string {
	return f.message
}

func (f failure) Stack() string {
	if f.stack == nil {
		return ""
	}
	return *f.stack
}

func (f failure) Unwrap() error {
	return f.cause
}

// UnknownName is the name given to errors that do not carry one.
const UnknownName = "Error"

// FromError converts any error into a [Failure]. The name and stack trace of
// the first named error in the chain are preserved.
func FromError(err error) Failure {
	if err == nil {
		return nil
	}
	if f, ok := err.(Failure); ok {
		return f
	}
	fail := failure{name: UnknownName, message: err.Error(), cause: err}
	var named Named
	if errors.As(err, &named) {
		fail.name = named.Name()
	}
	var withStack WithStackTrace
	if errors.As(err, &withStack) {
		stack := withStack.Stack()
		fail.stack = &stack
	}
	return fail
}

// HasName reports whether any error in err's chain is named name.
func HasName(err error, name string) bool {
	for err != nil {
		if named, ok := err.(Named); ok && named.Name() == name {
			return true
		}
		switch x := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range x.Unwrap() {
				if HasName(e, name) {
					return true
				}
			}
			return false
		case interface{ Unwrap() error }:
			err = x.Unwrap()
		default:
			return false
		}
	}
	return false
}
