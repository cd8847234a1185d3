package entity

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Instance struct {
	ID       string `jsondb:"id" json:"id"`
	Hostname string `json:"hostname"`
}

type privateID struct {
	id   string `jsondb:"id"`
	Name string
}

type Base struct {
	Key string `jsondb:"id,omitempty"`
}

type Embedding struct {
	Base
	Value int
}

type numericID struct {
	ID int `jsondb:"id"`
}

type noID struct {
	Name string
}

type selfIdentified struct {
	key string
}

func (s *selfIdentified) ID() string      { return s.key }
func (s *selfIdentified) SetID(id string) { s.key = id }

type Site struct{}

func (Site) CollectionName() string { return "websites" }

type OrderItem struct{}
type Person struct{}
type HTTPServer struct{}

func TestGetIdentifier(t *testing.T) {
	a := NewTagAccessor()

	id, err := a.GetIdentifier(Instance{ID: "001"})
	require.NoError(t, err)
	assert.Equal(t, "001", id)

	id, err = a.GetIdentifier(&Instance{ID: "002"})
	require.NoError(t, err)
	assert.Equal(t, "002", id)

	id, err = a.GetIdentifier(&Embedding{Base: Base{Key: "k"}})
	require.NoError(t, err)
	assert.Equal(t, "k", id)

	id, err = a.GetIdentifier(&selfIdentified{key: "self"})
	require.NoError(t, err)
	assert.Equal(t, "self", id)
}

func TestGetIdentifier_AccessDenied(t *testing.T) {
	a := NewTagAccessor()

	_, err := a.GetIdentifier(&privateID{id: "001"})
	require.Error(t, err)
	assert.True(t, IsAccessDenied(err))

	var accessErr *AccessError
	require.True(t, errors.As(err, &accessErr))
	assert.Equal(t, "getter", accessErr.Op)
	assert.Equal(t, "privateID", accessErr.Type)
	assert.Equal(t, "id", accessErr.Field)
	assert.EqualError(t, err, "Failed to invoke getter method for a idAnnotated field due to permissions")
}

func TestSetIdentifier(t *testing.T) {
	a := NewTagAccessor()

	inst := &Instance{}
	require.NoError(t, a.SetIdentifier(inst, "abc"))
	assert.Equal(t, "abc", inst.ID)

	emb := &Embedding{}
	require.NoError(t, a.SetIdentifier(emb, "xyz"))
	assert.Equal(t, "xyz", emb.Key)

	self := &selfIdentified{}
	require.NoError(t, a.SetIdentifier(self, "s"))
	assert.Equal(t, "s", self.key)
}

func TestSetIdentifier_Errors(t *testing.T) {
	a := NewTagAccessor()

	err := a.SetIdentifier(&privateID{}, "x")
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.EqualError(t, err, "Failed to invoke setter method for a idAnnotated field due to permissions")

	assert.ErrorIs(t, a.SetIdentifier(Instance{}, "x"), ErrNotAddressable)
	assert.ErrorIs(t, a.SetIdentifier((*Instance)(nil), "x"), ErrNotAddressable)
	assert.ErrorIs(t, a.SetIdentifier(&noID{}, "x"), ErrNoIdentifier)
	assert.ErrorIs(t, a.SetIdentifier(&numericID{}, "x"), ErrUnsupportedIdentifier)
}

func TestGetIdentifier_Errors(t *testing.T) {
	a := NewTagAccessor()

	_, err := a.GetIdentifier(nil)
	assert.ErrorIs(t, err, ErrNoEntityType)

	_, err = a.GetIdentifier(noID{})
	assert.ErrorIs(t, err, ErrNoIdentifier)

	_, err = a.GetIdentifier(42)
	assert.ErrorIs(t, err, ErrNoIdentifier)

	_, err = a.GetIdentifier(numericID{ID: 1})
	assert.ErrorIs(t, err, ErrUnsupportedIdentifier)

	_, err = a.GetIdentifier((*Instance)(nil))
	assert.ErrorIs(t, err, ErrNotAddressable)
}

func TestTagAccessor_Concurrent(t *testing.T) {
	a := NewTagAccessor()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inst := &Instance{}
			assert.NoError(t, a.SetIdentifier(inst, "id"))
			id, err := a.GetIdentifier(inst)
			assert.NoError(t, err)
			assert.Equal(t, "id", id)
		}()
	}
	wg.Wait()
}

func TestCollectionName(t *testing.T) {
	cases := []struct {
		entity any
		want   string
	}{
		{Instance{}, "instances"},
		{&Instance{}, "instances"},
		{&[]Instance{}, "instances"},
		{[]*Instance{}, "instances"},
		{reflect.TypeOf(Instance{}), "instances"},
		{OrderItem{}, "order_items"},
		{Person{}, "people"},
		{HTTPServer{}, "http_servers"},
		{Site{}, "websites"},
		{&[]Site{}, "websites"},
	}

	for _, tc := range cases {
		name, err := CollectionName(tc.entity)
		require.NoError(t, err)
		assert.Equal(t, tc.want, name)
	}
}

func TestCollectionName_NoType(t *testing.T) {
	_, err := CollectionName(nil)
	assert.ErrorIs(t, err, ErrNoEntityType)
	assert.EqualError(t, err, "No class parameter provided, entity collection can't be determined")

	_, err = CollectionName(struct{ A int }{})
	assert.ErrorIs(t, err, ErrNoEntityType)
}

func TestNewID(t *testing.T) {
	id := NewID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, NewID())
}
