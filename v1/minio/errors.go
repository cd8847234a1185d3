package minio

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
)

// ErrAccessDenied is returned when the credentials may not access the bucket.
var ErrAccessDenied = errors.New("minio access denied")

// TranslateError maps MinIO error responses onto store sentinels so callers
// can use errors.Is without knowing the backend. Unknown errors are returned
// unchanged.
func TranslateError(err error, name string) error {
	if err == nil {
		return nil
	}

	var resp minio.ErrorResponse
	if !errors.As(err, &resp) {
		return err
	}

	switch {
	case resp.Code == "NoSuchKey" || (resp.StatusCode == http.StatusNotFound && resp.Code != "NoSuchBucket"):
		return fmt.Errorf("%w: %s", collection.ErrCollectionNotFound, name)
	case resp.Code == "AccessDenied" || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAccessDenied, resp.Message)
	default:
		return err
	}
}
