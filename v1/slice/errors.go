package slice

import "errors"

var (
	// ErrMalformedDescriptor is matched by every error Parse and Resolve return.
	ErrMalformedDescriptor = errors.New("illegal slice argument")

	// ErrInvalidFormat is returned when the descriptor has more than three
	// fields or a field is not an integer.
	ErrInvalidFormat = errors.New("expected format is i:j:k")

	// ErrZeroStep is returned when the step field is an explicit zero.
	ErrZeroStep = errors.New("k cannot be zero")
)

// DescriptorError describes a slice descriptor that could not be parsed.
type DescriptorError struct {
	// Text is the descriptor as supplied by the caller
	Text string

	// Err is the violated rule, ErrInvalidFormat or ErrZeroStep
	Err error
}

func newDescriptorError(text string, err error) *DescriptorError {
	return &DescriptorError{Text: text, Err: err}
}

func (e *DescriptorError) Error() string {
	return "Illegal slice argument, " + e.Err.Error()
}

func (e *DescriptorError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrMalformedDescriptor) match any DescriptorError.
func (e *DescriptorError) Is(target error) bool {
	return target == ErrMalformedDescriptor
}

// IsMalformed reports whether err was caused by an unparsable descriptor.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedDescriptor)
}
