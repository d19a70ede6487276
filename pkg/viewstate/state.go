package viewstate

// Phase is the load phase of a value.
type Phase uint8

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseErrored:
		return "errored"
	default:
		return "loading"
	}
}

// State is an immutable snapshot of a fetched value.
type State[T any] struct {
	Phase   Phase
	Value   T
	Message string
}

// Loading returns the initial state.
func Loading[T any]() State[T] { return State[T]{Phase: PhaseLoading} }

// Ready wraps a successfully loaded value.
func Ready[T any](v T) State[T] { return State[T]{Phase: PhaseReady, Value: v} }

// Errored carries a human-readable failure message.
func Errored[T any](message string) State[T] {
	return State[T]{Phase: PhaseErrored, Message: message}
}

func (s State[T]) IsLoading() bool { return s.Phase == PhaseLoading }
func (s State[T]) IsReady() bool   { return s.Phase == PhaseReady }
func (s State[T]) IsErrored() bool { return s.Phase == PhaseErrored }
