package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/theideaforge/forge/pkg/ai"
)

func newTestClient(t *testing.T, handler http.Handler) (*ForgeOllamaClient, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewForgeOllamaClient(NewForgeOllamaClientParams{
		GenerateModel:         "phi3:mini",
		EmbeddingModel:        "nomic-embed-text",
		EmbedDim:              4,
		BaseURL:               ts.URL,
		Timeout:               5 * time.Second,
		MaxConcurrentRequests: 2,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client, ts
}

func TestGenerateCompletion(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"model":    "phi3:mini",
			"response": "  What if the opposite were true?  ",
			"done":     true,
		})
	}))

	got, err := client.GenerateCompletion(context.Background(), "user instruction")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "What if the opposite were true?" {
		t.Fatalf("unexpected completion: %q", got)
	}

	if gotBody["model"] != "phi3:mini" {
		t.Errorf("unexpected model: %v", gotBody["model"])
	}
	if gotBody["prompt"] != "user instruction" {
		t.Errorf("unexpected prompt: %v", gotBody["prompt"])
	}
	if stream, ok := gotBody["stream"].(bool); !ok || stream {
		t.Errorf("expected stream=false, got %v", gotBody["stream"])
	}
	opts, ok := gotBody["options"].(map[string]any)
	if !ok {
		t.Fatalf("missing options in request body: %v", gotBody)
	}
	if opts["temperature"] != 0.7 {
		t.Errorf("unexpected temperature: %v", opts["temperature"])
	}
	if opts["num_predict"] != float64(150) {
		t.Errorf("unexpected num_predict: %v", opts["num_predict"])
	}
}

func TestGenerateCompletion_SystemPromptForwarded(t *testing.T) {
	var gotSystem string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		gotSystem, _ = body["system"].(string)
		json.NewEncoder(w).Encode(map[string]any{"response": "ok", "done": true})
	}))

	_, err := client.GenerateCompletion(
		context.Background(),
		"prompt",
		ai.WithSystemPrompt("you are a conceptual alchemist"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSystem != "you are a conceptual alchemist" {
		t.Fatalf("system instruction not forwarded, got %q", gotSystem)
	}
}

func TestGenerateCompletion_HTTPError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))

	_, err := client.GenerateCompletion(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for non-2xx response, got nil")
	}
}

func TestGenerateCompletion_ConnectionRefused(t *testing.T) {
	client, ts := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	_, err := client.GenerateCompletion(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for unreachable endpoint, got nil")
	}
}

func TestGenerateEmbeddings(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{
				{1, 0, 0, 0},
				{0, 1, 0, 0},
			},
		})
	}))

	vecs, err := client.GenerateEmbeddings(context.Background(), []string{"energy", "privacy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vecs))
	}
	if vecs[0][0] != 1 || vecs[1][1] != 1 {
		t.Fatalf("unexpected vectors: %v", vecs)
	}
}

func TestGenerateEmbeddings_BlankInputSkipsModel(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{1, 2, 3, 4}},
		})
	}))

	vecs, err := client.GenerateEmbeddings(context.Background(), []string{"  ", "privacy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single model call, got %d", calls)
	}
	if len(vecs) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vecs))
	}
	for _, v := range vecs[0] {
		if v != 0 {
			t.Fatalf("expected zero vector for blank input, got %v", vecs[0])
		}
	}
	if vecs[1][0] != 1 {
		t.Fatalf("model vector misplaced: %v", vecs[1])
	}
}

func TestGenerateEmbeddings_CountMismatch(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{1, 2, 3, 4}},
		})
	}))

	_, err := client.GenerateEmbeddings(context.Background(), []string{"one", "two"})
	if err == nil {
		t.Fatal("expected error on embedding count mismatch, got nil")
	}
	if !strings.Contains(err.Error(), "malformed") {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}
