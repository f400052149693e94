// Package e2e drives a running greentax server through its HTTP API.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TestContext holds one scenario's client state: the current bearer token,
// the last response and values saved by earlier steps.
type TestContext struct {
	BaseURL    string
	SigningKey string
	Issuer     string

	client   *http.Client
	token    string
	status   int
	body     []byte
	response map[string]any
	saved    map[string]string
}

func NewTestContext(baseURL, signingKey string) *TestContext {
	return &TestContext{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		SigningKey: signingKey,
		Issuer:     "greentax",
		client:     &http.Client{Timeout: 10 * time.Second},
		saved:      make(map[string]string),
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.token = ""
	tc.status = 0
	tc.body = nil
	tc.response = nil
	tc.saved = make(map[string]string)
}

// AuthenticateAs mints a short-lived token for a fresh user with role.
func (tc *TestContext) AuthenticateAs(role string) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"role":    role,
		"iss":     tc.Issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(10 * time.Minute).Unix(),
		"jti":     uuid.NewString(),
	})
	signed, err := token.SignedString([]byte(tc.SigningKey))
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	tc.token = signed
	return nil
}

func (tc *TestContext) POST(path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(http.MethodPost, tc.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

func (tc *TestContext) GET(path string) error {
	req, err := http.NewRequest(http.MethodGet, tc.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return tc.do(req)
}

// Upload posts a multipart form with one file field named "image".
func (tc *TestContext) Upload(path string, fields map[string]string, fileName string, content []byte) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	part, err := mw.CreateFormFile("image", fileName)
	if err != nil {
		return err
	}
	if _, err := part.Write(content); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, tc.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	if tc.token != "" {
		req.Header.Set("Authorization", "Bearer "+tc.token)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.body, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.response = nil
	if len(tc.body) > 0 {
		_ = json.Unmarshal(tc.body, &tc.response)
	}
	return nil
}

func (tc *TestContext) Status() int { return tc.status }

func (tc *TestContext) Body() string { return string(tc.body) }

// Field resolves a dotted path ("proof.status") in the last JSON response.
func (tc *TestContext) Field(path string) (any, error) {
	var cur any = tc.response
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object in %s", path, key, tc.body)
		}
		if cur, ok = obj[key]; !ok {
			return nil, fmt.Errorf("field %q missing in %s", path, tc.body)
		}
	}
	return cur, nil
}

func (tc *TestContext) Save(name, value string) { tc.saved[name] = value }

func (tc *TestContext) Saved(name string) string { return tc.saved[name] }
