package entity

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// TagName is the struct tag marking the identifier field: `jsondb:"id"`.
const TagName = "jsondb"

// IdentifierAccessor reads and writes entity identifiers.
type IdentifierAccessor interface {
	GetIdentifier(entity any) (string, error)
	SetIdentifier(entity any, id string) error
}

// Identifiable is implemented by entities that expose their identifier
// directly. TagAccessor uses it instead of reflection when present.
type Identifiable interface {
	ID() string
	SetID(id string)
}

// TagAccessor is an IdentifierAccessor that locates the identifier through the
// `jsondb:"id"` struct tag. Field lookups are cached per type, so a single
// accessor can be shared by all goroutines.
type TagAccessor struct {
	fields sync.Map // reflect.Type -> idField
}

type idField struct {
	index    []int
	name     string
	exported bool
}

// NewTagAccessor creates a TagAccessor.
func NewTagAccessor() *TagAccessor {
	return &TagAccessor{}
}

var _ IdentifierAccessor = (*TagAccessor)(nil)

// GetIdentifier returns the identifier of entity, which may be a struct or a
// pointer to one.
func (a *TagAccessor) GetIdentifier(entity any) (string, error) {
	if e, ok := entity.(Identifiable); ok {
		return e.ID(), nil
	}
	if entity == nil {
		return "", ErrNoEntityType
	}

	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", ErrNotAddressable
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", fmt.Errorf("%w: got %s", ErrNoIdentifier, v.Type())
	}

	f, err := a.lookup(v.Type())
	if err != nil {
		return "", err
	}
	if !f.exported {
		return "", &AccessError{Op: "getter", Type: v.Type().Name(), Field: f.name}
	}

	field := v.FieldByIndex(f.index)
	if field.Kind() != reflect.String {
		return "", fmt.Errorf("%w: %s.%s is %s", ErrUnsupportedIdentifier, v.Type().Name(), f.name, field.Kind())
	}
	return field.String(), nil
}

// SetIdentifier writes id into entity, which must be a non-nil pointer to a struct.
func (a *TagAccessor) SetIdentifier(entity any, id string) error {
	if e, ok := entity.(Identifiable); ok {
		e.SetID(id)
		return nil
	}

	v := reflect.ValueOf(entity)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNotAddressable
	}
	v = v.Elem()

	f, err := a.lookup(v.Type())
	if err != nil {
		return err
	}
	if !f.exported {
		return &AccessError{Op: "setter", Type: v.Type().Name(), Field: f.name}
	}

	field := v.FieldByIndex(f.index)
	if field.Kind() != reflect.String {
		return fmt.Errorf("%w: %s.%s is %s", ErrUnsupportedIdentifier, v.Type().Name(), f.name, field.Kind())
	}
	field.SetString(id)
	return nil
}

func (a *TagAccessor) lookup(t reflect.Type) (idField, error) {
	if cached, ok := a.fields.Load(t); ok {
		return cached.(idField), nil
	}

	f, ok := findIDField(t, nil)
	if !ok {
		return idField{}, fmt.Errorf("%w: %s", ErrNoIdentifier, t)
	}
	a.fields.Store(t, f)
	return f, nil
}

// findIDField searches t and its embedded structs, outermost first.
func findIDField(t reflect.Type, prefix []int) (idField, bool) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if isIDTag(sf.Tag.Get(TagName)) {
			return idField{
				index:    append(append([]int{}, prefix...), i),
				name:     sf.Name,
				exported: sf.IsExported(),
			}, true
		}
	}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			if f, ok := findIDField(sf.Type, append(append([]int{}, prefix...), i)); ok {
				return f, true
			}
		}
	}
	return idField{}, false
}

func isIDTag(tag string) bool {
	name, _, _ := strings.Cut(tag, ",")
	return name == "id"
}

// NewID returns a random identifier for a new document.
func NewID() string {
	return uuid.NewString()
}
