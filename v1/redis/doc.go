// Package redis persists jsondb collections in Redis.
//
// A collection named "books" is stored as the string key
// <KeyPrefix>collection:books, and the set <KeyPrefix>collections lists the
// collection names. Writes use MULTI/EXEC so the key and the index change
// together.
package redis
