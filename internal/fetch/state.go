package fetch

import "fmt"

// Status tags the active variant of a State.
type Status int

const (
	Idle Status = iota
	Loading
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Label is the capitalised name shown in status chips.
func (s Status) Label() string {
	switch s {
	case Idle:
		return "Idle"
	case Loading:
		return "Loading"
	case Success:
		return "Success"
	case Error:
		return "Error"
	}
	return s.String()
}

// State is the outcome of one read: exactly one of idle, loading,
// success (with Data) or error (with Err). Build states with the
// constructors below; the zero value is idle.
type State[T any] struct {
	status Status
	data   T
	err    error
}

func IdleState[T any]() State[T]    { return State[T]{} }
func LoadingState[T any]() State[T] { return State[T]{status: Loading} }

func SuccessState[T any](data T) State[T] {
	return State[T]{status: Success, data: data}
}

func ErrorState[T any](err error) State[T] {
	return State[T]{status: Error, err: err}
}

func (s State[T]) Status() Status { return s.status }

// Data returns the payload and whether the state is success.
func (s State[T]) Data() (T, bool) { return s.data, s.status == Success }

// Err returns the failure, nil unless the state is error.
func (s State[T]) Err() error { return s.err }

// Signal is an input to Reduce. Variants: Start, Succeeded[T], Failed, Cancel.
type Signal interface {
	isSignal()
}

// Start begins a read.
type Start struct{}

// Succeeded delivers the payload of the in-flight read.
type Succeeded[T any] struct {
	Data T
}

// Failed delivers the error of the in-flight read.
type Failed struct {
	Err error
}

// Cancel abandons the in-flight read.
type Cancel struct{}

func (Start) isSignal()        {}
func (Succeeded[T]) isSignal() {}
func (Failed) isSignal()       {}
func (Cancel) isSignal()       {}

// Reduce returns the state that follows s on sig.
//
// Completion and cancellation only apply while loading; in any other state
// they are stale and leave s unchanged. Start is ignored while loading.
// A Succeeded carrying a payload type other than T is a programming error.
func Reduce[T any](s State[T], sig Signal) State[T] {
	switch sig := sig.(type) {
	case Start:
		if s.status == Loading {
			return s
		}
		return LoadingState[T]()
	case Succeeded[T]:
		if s.status != Loading {
			return s
		}
		return SuccessState(sig.Data)
	case Failed:
		if s.status != Loading {
			return s
		}
		return ErrorState[T](sig.Err)
	case Cancel:
		if s.status != Loading {
			return s
		}
		return IdleState[T]()
	}
	panic(fmt.Sprintf("fetch: unhandled signal %T", sig))
}
