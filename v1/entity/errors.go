package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEntityType is returned when no entity or type is given to determine a collection from.
	ErrNoEntityType = errors.New("No class parameter provided, entity collection can't be determined")

	// ErrAccessDenied is matched by every *AccessError.
	ErrAccessDenied = errors.New("access denied")

	// ErrNoIdentifier is returned when an entity declares no identifier field.
	ErrNoIdentifier = errors.New("entity has no identifier field")

	// ErrNotAddressable is returned when an identifier is set on a value that
	// is not a non-nil pointer to a struct.
	ErrNotAddressable = errors.New("entity must be a non-nil pointer to a struct")

	// ErrUnsupportedIdentifier is returned when the identifier field is not a string.
	ErrUnsupportedIdentifier = errors.New("identifier field must be a string")
)

// AccessError reports an identifier field that cannot be read or written
// because it is not exported. Type and Field name the offending field; the
// message keeps the wording callers already match on.
type AccessError struct {
	// Op is "getter" or "setter"
	Op    string
	Type  string
	Field string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("Failed to invoke %s method for a idAnnotated field due to permissions", e.Op)
}

func (e *AccessError) Is(target error) bool {
	return target == ErrAccessDenied
}

// IsAccessDenied reports whether err was caused by an inaccessible identifier field.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}
