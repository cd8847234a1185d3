package collection

import "errors"

var (
	// ErrCollectionNotFound is returned when a collection does not exist in
	// the store or its backend.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrCollectionExists is returned when creating a collection that already exists.
	ErrCollectionExists = errors.New("collection already exists")

	// ErrDuplicateID is returned when inserting a document whose id is taken.
	ErrDuplicateID = errors.New("duplicate document id")

	// ErrNotFound is returned when no document has the requested id.
	ErrNotFound = errors.New("document not found")

	// ErrMissingID is returned when an operation needs an id the entity does not carry.
	ErrMissingID = errors.New("entity has an empty id")

	// ErrInvalidDestination is returned when a find destination is not a
	// pointer to a struct or to a slice.
	ErrInvalidDestination = errors.New("invalid destination")

	// ErrInvalidName is returned for empty collection names or names containing path separators.
	ErrInvalidName = errors.New("invalid collection name")
)

// IsNotFound reports whether err means a document or collection is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrCollectionNotFound)
}
