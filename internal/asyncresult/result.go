// Package asyncresult provides the tri-state outcome value used across the
// controller: Pending until a command has been processed, then Success or
// Failure. It is a cell value, not a queue entry: holders overwrite it and
// consumers only ever read the current state.
package asyncresult

// Unit is the payload of results that carry no value beyond acknowledgment.
type Unit = struct{}

// Status enumerates the three states of a Result.
type Status int

const (
	// StatusPending means no outcome has been computed yet.
	StatusPending Status = iota
	// StatusSuccess means the operation completed and a value is available.
	StatusSuccess
	// StatusFailure means the operation failed with a reason.
	StatusFailure
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is a tri-state outcome holder.
//
// The zero value is Pending, which lets cells start in a meaningful state
// without an explicit initializer.
type Result[T any] struct {
	status Status
	value  T
	err    error
}

// Pending returns a Result in the pending state.
func Pending[T any]() Result[T] {
	return Result[T]{}
}

// Ok returns a successful Result wrapping value.
func Ok[T any](value T) Result[T] {
	return Result[T]{status: StatusSuccess, value: value}
}

// Fail returns a failed Result carrying the reason.
func Fail[T any](err error) Result[T] {
	return Result[T]{status: StatusFailure, err: err}
}

// Status returns the state of the result.
func (r Result[T]) Status() Status { return r.status }

// IsPending reports whether no outcome has been computed yet.
func (r Result[T]) IsPending() bool { return r.status == StatusPending }

// IsSuccess reports whether the result holds a value.
func (r Result[T]) IsSuccess() bool { return r.status == StatusSuccess }

// IsFailure reports whether the result holds an error.
func (r Result[T]) IsFailure() bool { return r.status == StatusFailure }

// Value returns the success value and whether one is present.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.status == StatusSuccess
}

// Err returns the failure reason, or nil when the result is not a failure.
func (r Result[T]) Err() error {
	if r.status != StatusFailure {
		return nil
	}
	return r.err
}
