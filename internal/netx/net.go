// Package netx uploads payloads to presigned object-storage URLs.
package netx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DoFunc sends an HTTP request, e.g. (*http.Client).Do.
type DoFunc func(*http.Request) (*http.Response, error)

// ErrUploadRejected is returned when storage answers with a non-2xx status.
var ErrUploadRejected = errors.New("upload rejected")

// UploadCacheControl is sent with every upload; uploaded images are
// immutable under their key.
const UploadCacheControl = "max-age=3600"

// UploadToPresignedURL PUTs body to a presigned URL using do, or
// http.DefaultClient when do is nil. A non-2xx answer is returned as
// ErrUploadRejected with the status and response body.
func UploadToPresignedURL(ctx context.Context, do DoFunc, url string, contentType string, body []byte) error {
	if do == nil {
		do = http.DefaultClient.Do
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", UploadCacheControl)

	resp, err := do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s; body: %s", ErrUploadRejected, resp.Status, string(b))
	}
	return nil
}
