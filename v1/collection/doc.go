/*
Package collection stores entities as JSON documents grouped into named
collections and answers queries over them.

A Store keeps every collection in memory and writes each change through to
a Backend before it becomes visible. Entities are plain structs whose
identifier field carries the `jsondb:"id"` tag; the collection name is the
pluralised snake case of the type name unless the type implements
entity.CollectionNamer.

	type Book struct {
	    ID    string `jsondb:"id" json:"id"`
	    Title string `json:"title"`
	}

	store := collection.NewStore(collection.Config{}, collection.NewMemoryBackend(), log)
	_ = store.CreateCollection(ctx, "books")
	_ = store.Insert(ctx, &Book{Title: "Dune"})

	var page []Book
	err := store.Find(ctx, &page, collection.Query{Slice: "::-1"})

Query.Slice takes a start:stop:step descriptor as understood by package
slice. A malformed descriptor fails the query with an error matching
slice.ErrMalformedDescriptor.
*/
package collection
