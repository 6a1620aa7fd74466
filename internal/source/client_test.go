package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient_ValidatesEndpoint(t *testing.T) {
	if _, err := NewClient("  ", ClientOptions{}); !errors.Is(err, ErrNoEndpoint) {
		t.Fatalf("NewClient(empty) error = %v, want ErrNoEndpoint", err)
	}
	for _, bad := range []string{"Sheet Deployment Here", "ftp://x.test/a", "/relative/path"} {
		if _, err := NewClient(bad, ClientOptions{}); err == nil {
			t.Fatalf("NewClient(%q) succeeded, want error", bad)
		}
	}
	c, err := NewClient(" https://script.example/exec?x=1 ", ClientOptions{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.Endpoint() != "https://script.example/exec?x=1" {
		t.Fatalf("Endpoint = %q", c.Endpoint())
	}
}

func TestClient_FetchRecordsDecodesArray(t *testing.T) {
	t.Parallel()

	var gotAccept, gotUserAgent string
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotAccept = r.Header.Get("Accept")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"Soup","tags":"a, b"},{"name":"Cake","date":2024}]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, ClientOptions{UserAgent: "pantry/test"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	records, err := c.FetchRecords(ctx)
	if err != nil {
		t.Fatalf("FetchRecords returned error: %v", err)
	}
	if len(records) != 2 || records[0]["name"] != "Soup" {
		t.Fatalf("records = %#v", records)
	}
	if requests != 1 {
		t.Fatalf("requests = %d, want exactly 1", requests)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if gotUserAgent != "pantry/test" {
		t.Fatalf("User-Agent = %q, want pantry/test", gotUserAgent)
	}
}

func TestClient_FetchRecordsFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  bool
		body    bool
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { http.Error(w, "boom", http.StatusInternalServerError) },
			status:  true,
		},
		{
			name:    "redirect without location",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotModified) },
			status:  true,
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"not":"an array"`)) },
		},
		{
			name:    "object instead of array",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"name":"x"}`)) },
		},
		{
			name:    "null body",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`null`)) },
			body:    true,
		},
		{
			name:    "trailing data",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[{"name":"a"}] trailing`)) },
			body:    true,
		},
		{
			name:    "second value",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[{"name":"a"}] []`)) },
			body:    true,
		},
		{
			name:    "null record",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[{"name":"a"}, null]`)) },
			body:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			t.Cleanup(server.Close)

			c, err := NewClient(server.URL, ClientOptions{})
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			_, err = c.FetchRecords(context.Background())
			if err == nil {
				t.Fatalf("FetchRecords succeeded, want error")
			}
			if tt.status && !errors.Is(err, ErrStatus) {
				t.Fatalf("error = %v, want ErrStatus", err)
			}
			if tt.body && !errors.Is(err, ErrBody) {
				t.Fatalf("error = %v, want ErrBody", err)
			}
		})
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.FetchRecords(context.Background()); err == nil {
		t.Fatalf("nil client FetchRecords succeeded")
	}
}
