package avrdisasm

import "fmt"

// Stage identifies which pipeline stage produced an error, for the
// triage trace the top-level caller prints on failure.
type Stage string

const (
	StageSource  Stage = "byte source"
	StageDecoder Stage = "decoder"
	StagePrinter Stage = "printer"
)

// Kind is the closed error taxonomy of a pipeline stage. Eof is a sentinel,
// not a failure, and is reported via io.EOF rather than a StageError.
type Kind int

const (
	KindAlloc Kind = iota
	KindInput
	KindOutput
	KindDecoder
)

func (k Kind) String() string {
	switch k {
	case KindAlloc:
		return "alloc"
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	case KindDecoder:
		return "decoder"
	default:
		return "unknown"
	}
}

// StageError is the diagnostic a stage raises on failure. Stages only
// annotate and re-raise; nothing is retried.
type StageError struct {
	Stage Stage
	Kind  Kind
	Msg   string
	Err   error
}

func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Stage, e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Stage, e.Kind, e.Msg)
}

func (e *StageError) Unwrap() error { return e.Err }

func newStageError(stage Stage, kind Kind, msg string, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Msg: msg, Err: err}
}

// InputError wraps a failure pulling from the upstream stage.
func InputError(stage Stage, msg string, err error) *StageError {
	return newStageError(stage, KindInput, msg, err)
}

// OutputError wraps a failure writing to the output sink.
func OutputError(stage Stage, msg string, err error) *StageError {
	return newStageError(stage, KindOutput, msg, err)
}

// DecoderFailure signals an internal invariant violation: a malformed
// table, a window overflow, or a stuck decode loop. It indicates a program
// bug, never bad input.
func DecoderFailure(msg string) *StageError {
	return newStageError(StageDecoder, KindDecoder, msg, nil)
}

// AllocError wraps a failure constructing stage state.
func AllocError(stage Stage, msg string, err error) *StageError {
	return newStageError(stage, KindAlloc, msg, err)
}
