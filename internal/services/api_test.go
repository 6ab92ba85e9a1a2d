package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tu "github.com/desertthunder/vtx/internal/testing"
)

// echoServer records the last request and answers with status and body.
func echoServer(t *testing.T, status int, contentType, body string) (*httptest.Server, *http.Request, *[]byte) {
	t.Helper()
	var (
		last    http.Request
		payload []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = *r.Clone(context.Background())
		payload, _ = io.ReadAll(r.Body)
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.Header().Set("X-Request-Path", r.URL.Path)
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &last, &payload
}

func TestAPIService(t *testing.T) {
	t.Run("NewAPIService", func(t *testing.T) {
		client := &http.Client{}
		if srv := NewAPIService("http://vtx.local", client); srv.baseURL != "http://vtx.local" || srv.httpClient != client {
			t.Errorf("expected configured base URL and client, got %q %p", srv.baseURL, srv.httpClient)
		}

		srv := NewAPIService("", nil)
		if srv.baseURL != DefaultBaseURL {
			t.Errorf("expected %s, got %s", DefaultBaseURL, srv.baseURL)
		}
		if srv.httpClient != http.DefaultClient {
			t.Error("expected http.DefaultClient for nil client")
		}
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("decodes a JSON directory listing", func(t *testing.T) {
			ts, last, _ := echoServer(t, http.StatusOK, "application/json",
				`{"success":true,"data":[{"username":"alice","avatar":"http://cdn/a.png"}]}`)

			resp, err := NewAPIService(ts.URL, nil).Get(context.Background(), "/users/getAll")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if last.Method != http.MethodGet || last.URL.Path != "/users/getAll" {
				t.Errorf("expected GET /users/getAll, got %s %s", last.Method, last.URL.Path)
			}
			if !resp.OK() || !resp.IsJSON {
				t.Fatalf("expected OK JSON response, got %d json=%v", resp.StatusCode, resp.IsJSON)
			}
			data := resp.JSONData.(map[string]any)["data"].([]any)
			if len(data) != 1 || data[0].(map[string]any)["username"] != "alice" {
				t.Errorf("unexpected payload %v", resp.JSONData)
			}
			if resp.Headers.Get("X-Request-Path") != "/users/getAll" {
				t.Errorf("expected response headers to be kept, got %v", resp.Headers)
			}
		})

		t.Run("keeps non JSON bodies raw", func(t *testing.T) {
			ts, _, _ := echoServer(t, http.StatusOK, "text/plain", "pong")

			resp, err := NewAPIService(ts.URL, nil).Get(context.Background(), "/ping")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.IsJSON || resp.JSONData != nil {
				t.Error("expected plain text response")
			}
			if string(resp.Body) != "pong" {
				t.Errorf("expected body pong, got %q", resp.Body)
			}
		})

		t.Run("detects JSON without a content type", func(t *testing.T) {
			ts, _, _ := echoServer(t, http.StatusOK, "", `{"message":{"data":[]}}`)

			resp, err := NewAPIService(ts.URL, nil).Get(context.Background(), "/videos/getAll")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !resp.IsJSON {
				t.Error("expected body to be detected as JSON")
			}
		})

		t.Run("error statuses are returned, not raised", func(t *testing.T) {
			ts, last, _ := echoServer(t, http.StatusNotFound, "application/json", `{"success":false}`)

			resp, err := NewAPIService(ts.URL, nil).WithUserAgent("vtx/test").Get(context.Background(), "/videos/missing")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.OK() {
				t.Error("expected 404 to not be OK")
			}
			if ua := last.Header.Get("User-Agent"); ua != "vtx/test" {
				t.Errorf("expected user agent vtx/test, got %q", ua)
			}
		})

		t.Run("canceled context", func(t *testing.T) {
			ts, _, _ := echoServer(t, http.StatusOK, "", "")
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if _, err := NewAPIService(ts.URL, nil).Get(ctx, "/users/getAll"); err == nil {
				t.Error("expected error for canceled context")
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		t.Run("sends a JSON body", func(t *testing.T) {
			ts, last, payload := echoServer(t, http.StatusCreated, "application/json", `{"success":true}`)
			body, _ := json.Marshal(map[string]string{"username": "alice", "password": "secret"})

			resp, err := NewAPIService(ts.URL, nil).Post(context.Background(), "/users/login", body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if last.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", last.Method)
			}
			if ct := last.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected application/json, got %q", ct)
			}
			var sent map[string]string
			if err := json.Unmarshal(*payload, &sent); err != nil || sent["username"] != "alice" {
				t.Errorf("unexpected request body %q: %v", *payload, err)
			}
			if resp.StatusCode != http.StatusCreated {
				t.Errorf("expected 201, got %d", resp.StatusCode)
			}
		})

		t.Run("empty body", func(t *testing.T) {
			ts, _, payload := echoServer(t, http.StatusOK, "", "")

			if _, err := NewAPIService(ts.URL, nil).Post(context.Background(), "/users/logout", []byte{}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(*payload) != 0 {
				t.Errorf("expected empty body, got %d bytes", len(*payload))
			}
		})
	})

	t.Run("Transport Errors", func(t *testing.T) {
		unreachable := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
		brokenBody := &http.Client{Transport: tu.NewMockRoundTripper(&http.Response{
			StatusCode: http.StatusOK,
			Body:       &tu.FCloser{},
			Header:     http.Header{},
		}, nil)}

		tests := []struct {
			name   string
			client *http.Client
			path   string
			want   string
		}{
			{"Bad Path", nil, "/users\x00getAll", "failed to create request"},
			{"Unreachable", unreachable, "/users/getAll", "request failed"},
			{"Unreadable Body", brokenBody, "/users/getAll", "failed to read response"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				srv := NewAPIService("http://vtx.local", tt.client)
				for method, call := range map[string]func() (*APIResponse, error){
					http.MethodGet:  func() (*APIResponse, error) { return srv.Get(context.Background(), tt.path) },
					http.MethodPost: func() (*APIResponse, error) { return srv.Post(context.Background(), tt.path, []byte("{}")) },
				} {
					_, err := call()
					if err == nil || !strings.Contains(err.Error(), tt.want) {
						t.Errorf("%s: expected %q error, got %v", method, tt.want, err)
					}
				}
			})
		}
	})
}
