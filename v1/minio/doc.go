/*
Package minio persists jsondb collections in a MinIO or S3 compatible bucket.

Each collection is one object, <Prefix><name>.json, holding a JSON array of
documents. The client validates its connection at startup, creates the
bucket when missing, and while running under Fx a monitor checks the
connection every few seconds and rebuilds the client after failures.

Object helpers (Put, Get, Stat, Delete, ListPrefix) are exported for
callers that need direct bucket access. TranslateError maps MinIO error
responses onto collection.ErrCollectionNotFound and ErrAccessDenied.
*/
package minio
