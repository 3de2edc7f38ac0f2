package dispatch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestAsk_returnsAnswer(t *testing.T) {
	var gotBody map[string]string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"answer": "It says hello world."})
	}))
	defer backend.Close()

	d := NewDispatcher(backend.URL, 0, zap.NewNop())
	answer, err := d.Ask(context.Background(), "Context:\nFile: a.txt\nContent: hello world...\n\nQuery:\nwhat?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "It says hello world." {
		t.Errorf("answer: got %q", answer)
	}
	if gotBody["prompt"] == "" {
		t.Error("request body should carry the prompt under the prompt key")
	}
}

func TestAsk_missingAnswerField(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "different shape"})
	}))
	defer backend.Close()

	d := NewDispatcher(backend.URL, 0, nil)
	answer, err := d.Ask(context.Background(), "p")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != NoResponseFallback {
		t.Errorf("answer: got %q, want %q", answer, NoResponseFallback)
	}
}

func TestAsk_wrongShapeBody(t *testing.T) {
	bodies := map[string]string{
		"array":            `["a","b"]`,
		"string":           `"just text"`,
		"number":           `42`,
		"non-string field": `{"answer": 42}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))
			defer backend.Close()

			d := NewDispatcher(backend.URL, 0, nil)
			answer, err := d.Ask(context.Background(), "p")
			if err != nil {
				t.Fatalf("Ask: %v", err)
			}
			if answer != NoResponseFallback {
				t.Errorf("answer: got %q, want %q", answer, NoResponseFallback)
			}
		})
	}
}

func TestAsk_nonOKStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer backend.Close()

	d := NewDispatcher(backend.URL, 0, nil)
	if _, err := d.Ask(context.Background(), "p"); err == nil {
		t.Error("expected error for non-OK status")
	}
}

func TestAsk_malformedBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer backend.Close()

	d := NewDispatcher(backend.URL, 0, nil)
	if _, err := d.Ask(context.Background(), "p"); err == nil {
		t.Error("expected error for malformed response body")
	}
}

func TestAsk_networkFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close() // connection refused

	d := NewDispatcher(backend.URL, 0, nil)
	if _, err := d.Ask(context.Background(), "p"); err == nil {
		t.Error("expected error when backend is unreachable")
	}
}

func TestAsk_singleRequestPerCall(t *testing.T) {
	calls := 0
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	d := NewDispatcher(backend.URL, 0, nil)
	_, _ = d.Ask(context.Background(), "p")
	if calls != 1 {
		t.Errorf("failed dispatch must not retry: got %d calls", calls)
	}
}

func TestAsk_contextCancellation(t *testing.T) {
	started := make(chan struct{})
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The body must be consumed before blocking: the server only
		// notices a dropped client while reading the connection.
		_, _ = io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer backend.Close()

	d := NewDispatcher(backend.URL, 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := d.Ask(ctx, "p")
		errCh <- err
	}()
	<-started
	cancel()
	if err := <-errCh; err == nil {
		t.Error("expected error after context cancellation")
	}
}
