package apptest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope mirrors the API reply with the payload left raw
type Envelope struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Data    jsoniter.RawMessage `json:"data"`
	Details jsoniter.RawMessage `json:"details"`
	Meta    *struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"pageSize"`
	} `json:"meta"`
}

// Decode unmarshals the payload into v
func (e Envelope) Decode(t testing.TB, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, v))
}

// Client drives an http.Handler in-process and keeps the cookies it sets,
// like a browser holding one session.
type Client struct {
	t       testing.TB
	handler http.Handler
	cookies map[string]*http.Cookie
}

func NewClient(t testing.TB, handler http.Handler) *Client {
	return &Client{t: t, handler: handler, cookies: make(map[string]*http.Cookie)}
}

// Do sends a request, body is marshalled as JSON when not nil
func (c *Client) Do(method, path string, body interface{}) (int, Envelope) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}

	var env Envelope
	if rec.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

// Cookie returns a cookie the server has set, nil when absent
func (c *Client) Cookie(name string) *http.Cookie {
	return c.cookies[name]
}

// SetCookie makes the client send ck, as if the server had set it
func (c *Client) SetCookie(ck *http.Cookie) {
	c.cookies[ck.Name] = ck
}
