package entity

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// CollectionNamer lets an entity choose its collection name.
type CollectionNamer interface {
	CollectionName() string
}

// CollectionName resolves the collection an entity belongs to.
//
// entity may be a value, a pointer, a slice of entities (as passed to find
// operations), or a reflect.Type. Types implementing CollectionNamer name
// themselves; otherwise the type name is converted to snake case and
// pluralised, so OrderItem becomes "order_items".
func CollectionName(entity any) (string, error) {
	if entity == nil {
		return "", ErrNoEntityType
	}

	t, ok := entity.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(entity)
	}
	t = elemType(t)

	if name, ok := namerName(t); ok {
		return name, nil
	}
	if t.Name() == "" {
		return "", ErrNoEntityType
	}
	return inflection.Plural(toSnakeCase(t.Name())), nil
}

// elemType strips pointers and slice or array wrappers.
func elemType(t reflect.Type) reflect.Type {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			t = t.Elem()
		default:
			return t
		}
	}
}

func namerName(t reflect.Type) (string, bool) {
	// the pointer method set covers both receiver kinds
	if n, ok := reflect.New(t).Interface().(CollectionNamer); ok {
		return n.CollectionName(), true
	}
	return "", false
}

func toSnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
