package e2e

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// TestContext carries HTTP state across the steps of one scenario. Each
// actor alias keeps its own bearer token; requests are sent as the current
// actor.
type TestContext struct {
	BaseURL string
	RunID   string

	client     *http.Client
	lastStatus int
	lastBody   []byte

	tokens  map[string]string
	current string
	saved   map[string]string
	files   map[string][]byte
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		BaseURL: strings.TrimRight(baseURL, "/"),
		RunID:   randomHex(4),
		client:  &http.Client{Timeout: 15 * time.Second},
		tokens:  make(map[string]string),
		saved:   make(map[string]string),
		files:   make(map[string][]byte),
	}
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RandomTxID returns a fresh 0x-prefixed 32-byte transaction hash.
func (tc *TestContext) RandomTxID() string {
	return "0x" + randomHex(32)
}

func (tc *TestContext) GetRunID() string { return tc.RunID }

func (tc *TestContext) SetToken(alias, token string) { tc.tokens[alias] = token }

func (tc *TestContext) ActAs(alias string) error {
	if _, ok := tc.tokens[alias]; !ok {
		return fmt.Errorf("no session for %q", alias)
	}
	tc.current = alias
	return nil
}

func (tc *TestContext) Save(key, value string) { tc.saved[key] = value }

func (tc *TestContext) Saved(key string) (string, error) {
	v, ok := tc.saved[key]
	if !ok {
		return "", fmt.Errorf("nothing saved as %q", key)
	}
	return v, nil
}

func (tc *TestContext) SaveFile(key string, data []byte) { tc.files[key] = data }

func (tc *TestContext) File(key string) ([]byte, error) {
	data, ok := tc.files[key]
	if !ok {
		return nil, fmt.Errorf("no file saved as %q", key)
	}
	return data, nil
}

// Expand replaces {key} placeholders in path with saved values.
func (tc *TestContext) Expand(path string) string {
	for k, v := range tc.saved {
		path = strings.ReplaceAll(path, "{"+k+"}", v)
	}
	return path
}

func (tc *TestContext) POST(path string, body any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(http.MethodPost, tc.BaseURL+tc.Expand(path), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

func (tc *TestContext) GET(path string) error {
	req, err := http.NewRequest(http.MethodGet, tc.BaseURL+tc.Expand(path), nil)
	if err != nil {
		return err
	}
	return tc.do(req)
}

// Upload sends a multipart form with one file part and plain fields.
func (tc *TestContext) Upload(path, field, filename string, data []byte, fields map[string]string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := fw.Write(data); err != nil {
		return err
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, tc.BaseURL+tc.Expand(path), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	if token := tc.tokens[tc.current]; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastStatus = resp.StatusCode
	tc.lastBody = body
	return nil
}

func (tc *TestContext) GetLastStatusCode() int { return tc.lastStatus }

func (tc *TestContext) GetLastResponseBody() []byte { return tc.lastBody }

// GetResponseField reads a dotted path such as "transfer_record.id" from the
// last JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.lastBody, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	for part := range strings.SplitSeq(field, ".") {
		obj, ok := doc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", field, part)
		}
		if doc, ok = obj[part]; !ok {
			return nil, fmt.Errorf("field %q not found in response: %s", field, tc.lastBody)
		}
	}
	return doc, nil
}

// ExpectStatus fails with the response body when the last status differs.
func (tc *TestContext) ExpectStatus(status int) error {
	if tc.lastStatus != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, tc.lastStatus, tc.lastBody)
	}
	return nil
}
