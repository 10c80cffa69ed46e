package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := New(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.Get(context.Background(), "/flights", nil)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Kind != KindTimeout || apiErr.Status != http.StatusRequestTimeout {
		t.Fatalf("expected timeout/408, got kind=%v status=%d", apiErr.Kind, apiErr.Status)
	}
}

func TestRequestNotFoundJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Get(context.Background(), "/bookings/9", nil)
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != 404 || apiErr.Message != "not found" || apiErr.Kind != KindNotFound {
		t.Fatalf("unexpected error %+v", apiErr)
	}
	body, ok := apiErr.Data.(map[string]any)
	if !ok || body["error"] != "not found" {
		t.Fatalf("parsed body not carried, got %#v", apiErr.Data)
	}
}

func TestRequestErrorTextBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("database down"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Post(context.Background(), "/bookings", map[string]int{"a": 1})
	apiErr, _ := AsError(err)
	if apiErr == nil || apiErr.Kind != KindServerError || apiErr.Data != "database down" {
		t.Fatalf("unexpected error %#v", err)
	}
	if UserMessage(err) != "The booking service is unavailable right now." {
		t.Fatalf("unexpected user message %q", UserMessage(err))
	}
}

func TestRequestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Get(context.Background(), "/flights", nil)
	apiErr, ok := AsError(err)
	if !ok || apiErr.Status != 0 || apiErr.Kind != KindNetwork {
		t.Fatalf("expected network error with status 0, got %#v", err)
	}
}

func TestRequestReadsTokenOnEveryCall(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("missing default content type")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var calls int32
	src := TokenFunc(func(context.Context) (string, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return "first", nil
		}
		return "second", nil
	})
	c := New(srv.URL).WithTokens(src)
	for i := 0; i < 2; i++ {
		if _, err := c.Get(context.Background(), "/flights", nil); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if len(seen) != 2 || seen[0] != "Bearer first" || seen[1] != "Bearer second" {
		t.Fatalf("token not refreshed per call: %v", seen)
	}
}

func TestRequestTokenLookupFailure(t *testing.T) {
	c := New("http://127.0.0.1:1").WithTokens(TokenFunc(func(context.Context) (string, error) {
		return "", errors.New("storage offline")
	}))
	_, err := c.Get(context.Background(), "/flights", nil)
	if err == nil {
		t.Fatalf("expected token error")
	}
	if inner := errors.Unwrap(err); inner == nil || inner.Error() != "storage offline" {
		t.Fatalf("token error not wrapped: %v", err)
	}
}

func TestRequestSuccessDecodesJSONAndText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/text" {
			_, _ = w.Write([]byte("pong"))
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("X-Total", "1")
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/")
	resp, err := c.Get(context.Background(), "json", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m, ok := resp.Data.(map[string]any); !ok || m["id"] != float64(7) {
		t.Fatalf("unexpected data %#v", resp.Data)
	}
	if resp.Header.Get("X-Total") != "1" || resp.Status != 200 {
		t.Fatalf("headers/status not carried")
	}

	resp, err = c.Get(context.Background(), "/text", nil)
	if err != nil || resp.Data != "pong" {
		t.Fatalf("expected text body, got %#v err=%v", resp, err)
	}
}

func TestKindFromStatus(t *testing.T) {
	cases := map[int]Kind{
		0:   KindNetwork,
		400: KindValidation,
		401: KindUnauthorized,
		403: KindForbidden,
		404: KindNotFound,
		408: KindTimeout,
		422: KindValidation,
		503: KindServerError,
		418: KindUnknown,
	}
	for status, want := range cases {
		if got := KindFromStatus(status); got != want {
			t.Fatalf("status %d: got %v want %v", status, got, want)
		}
	}
}
