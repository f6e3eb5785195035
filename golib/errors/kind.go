package errors

// Kind classifies why an experiment failed.
type Kind int

const (
	// KindUnknown is returned for errors that were never classified.
	KindUnknown Kind = iota
	// KindInput marks malformed input data.
	KindInput
	// KindConfig marks violated configuration invariants.
	KindConfig
	// KindModel marks failures to fit or evaluate a model.
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindConfig:
		return "config"
	case KindModel:
		return "model"
	default:
		return "unknown"
	}
}

type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }
func (e *kindError) Cause() error  { return e.err }

// WithKind tags err with kind. A nil err stays nil.
func WithKind(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// Inputf builds a KindInput error.
func Inputf(format string, args ...interface{}) error {
	return WithKind(KindInput, Errorf(format, args...))
}

// Configf builds a KindConfig error.
func Configf(format string, args ...interface{}) error {
	return WithKind(KindConfig, Errorf(format, args...))
}

// KindOf returns the outermost kind attached anywhere in err's chain.
func KindOf(err error) Kind {
	var ke *kindError
	if As(err, &ke) {
		return ke.kind
	}
	return KindUnknown
}
