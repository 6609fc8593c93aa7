package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateTextNotConfigured(t *testing.T) {
	c := NewClient("", "gemini-pro")

	if _, err := c.GenerateText(context.Background(), "hello"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestGenerateText(t *testing.T) {
	var gotPath string
	var gotReq generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": "Nice "},
					{"text": "work!"},
				}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-pro").WithBaseURL(srv.URL)

	text, err := c.GenerateText(context.Background(), "summarize this")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}

	if text != "Nice work!" {
		t.Errorf("expected joined candidate parts, got %q", text)
	}
	if gotPath != "/gemini-pro:generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 || gotReq.Contents[0].Parts[0].Text != "summarize this" {
		t.Errorf("unexpected request body: %+v", gotReq)
	}
}

func TestGenerateTextAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"},
		})
	}))
	defer srv.Close()

	c := NewClient("bad-key", "gemini-pro").WithBaseURL(srv.URL)

	_, err := c.GenerateText(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestGenerateTextNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-pro").WithBaseURL(srv.URL)

	if _, err := c.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
