// Package testutil builds requests and decodes responses for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greentax/pkg/platform/httputil"
)

// NewJSONRequest encodes body (when non-nil) as the request's JSON payload.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body), "encode request body")
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewMultipartRequest builds a proof-upload style form: text fields plus,
// when fileField is non-empty, one file part.
func NewMultipartRequest(t *testing.T, method, path string, fields map[string]string, fileField, fileName string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// DoRequest serves req on handler and returns the recorded response.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// UnmarshalResponse decodes the recorded JSON body into a T.
func UnmarshalResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) *T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "decode response: %s", rec.Body.String())
	return &out
}

// UnmarshalErrorResponse decodes the error envelope written by httputil.WriteError.
func UnmarshalErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) *httputil.ErrorResponse {
	t.Helper()
	return UnmarshalResponse[httputil.ErrorResponse](t, rec)
}

// AssertStatusAndError checks the status and the envelope's error code.
func AssertStatusAndError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rec.Code, "status; body: %s", rec.Body.String())
	assert.Equal(t, code, UnmarshalErrorResponse(t, rec).Error, "error code")
}
