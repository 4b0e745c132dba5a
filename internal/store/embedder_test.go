package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeCache struct {
	entries    map[string][]float32
	getErr     error
	saveErr    error
	savedTerms []string
}

func (f *fakeCache) GetTermEmbeddings(_ context.Context, terms []string, _ int) (map[string][]float32, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make(map[string][]float32)
	for _, term := range terms {
		if v, ok := f.entries[term]; ok {
			out[term] = v
		}
	}
	return out, nil
}

func (f *fakeCache) SaveTermEmbeddings(_ context.Context, terms []string, embeddings [][]float32) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedTerms = append(f.savedTerms, terms...)
	if f.entries == nil {
		f.entries = make(map[string][]float32)
	}
	for i, term := range terms {
		f.entries[term] = embeddings[i]
	}
	return nil
}

type fakeEmbedClient struct {
	vectors map[string][]float32
	err     error
	calls   [][]string
}

func (f *fakeEmbedClient) GenerateEmbeddings(_ context.Context, inputs []string) ([][]float32, error) {
	f.calls = append(f.calls, append([]string(nil), inputs...))
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, 0, len(inputs))
	for _, input := range inputs {
		out = append(out, f.vectors[input])
	}
	return out, nil
}

func TestCachedEmbedderHitsSkipClient(t *testing.T) {
	cache := &fakeCache{entries: map[string][]float32{
		"alpha": {1, 0},
		"beta":  {0, 1},
	}}
	client := &fakeEmbedClient{}

	e := NewCachedEmbedder(NewCachedEmbedderParams{Store: cache, Client: client, Dim: 2})
	got, err := e.GenerateEmbeddings(context.Background(), []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("GenerateEmbeddings() error = %v", err)
	}

	want := [][]float32{{1, 0}, {0, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("embeddings = %v, want %v", got, want)
	}
	if len(client.calls) != 0 {
		t.Errorf("client called %d times on full cache hit, want 0", len(client.calls))
	}
}

func TestCachedEmbedderEmbedsOnlyMisses(t *testing.T) {
	cache := &fakeCache{entries: map[string][]float32{
		"alpha": {1, 0},
	}}
	client := &fakeEmbedClient{vectors: map[string][]float32{
		"beta":  {0, 1},
		"gamma": {1, 1},
	}}

	e := NewCachedEmbedder(NewCachedEmbedderParams{Store: cache, Client: client, Dim: 2})
	got, err := e.GenerateEmbeddings(context.Background(), []string{"alpha", "beta", "gamma"})
	if err != nil {
		t.Fatalf("GenerateEmbeddings() error = %v", err)
	}

	want := [][]float32{{1, 0}, {0, 1}, {1, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("embeddings = %v, want %v", got, want)
	}
	if len(client.calls) != 1 || !reflect.DeepEqual(client.calls[0], []string{"beta", "gamma"}) {
		t.Errorf("client calls = %v, want one batch of misses", client.calls)
	}
	if !reflect.DeepEqual(cache.savedTerms, []string{"beta", "gamma"}) {
		t.Errorf("saved terms = %v, want misses written back", cache.savedTerms)
	}
}

func TestCachedEmbedderLookupFailureFallsThrough(t *testing.T) {
	cache := &fakeCache{getErr: errors.New("cache offline")}
	client := &fakeEmbedClient{vectors: map[string][]float32{"alpha": {1, 0}}}

	e := NewCachedEmbedder(NewCachedEmbedderParams{Store: cache, Client: client, Dim: 2})
	got, err := e.GenerateEmbeddings(context.Background(), []string{"alpha"})
	if err != nil {
		t.Fatalf("GenerateEmbeddings() error = %v", err)
	}
	if !reflect.DeepEqual(got, [][]float32{{1, 0}}) {
		t.Errorf("embeddings = %v, want client result", got)
	}
}

func TestCachedEmbedderSaveFailureStillReturns(t *testing.T) {
	cache := &fakeCache{saveErr: errors.New("disk full")}
	client := &fakeEmbedClient{vectors: map[string][]float32{"alpha": {1, 0}}}

	e := NewCachedEmbedder(NewCachedEmbedderParams{Store: cache, Client: client, Dim: 2})
	got, err := e.GenerateEmbeddings(context.Background(), []string{"alpha"})
	if err != nil {
		t.Fatalf("GenerateEmbeddings() error = %v", err)
	}
	if !reflect.DeepEqual(got, [][]float32{{1, 0}}) {
		t.Errorf("embeddings = %v, want client result despite save failure", got)
	}
}

func TestCachedEmbedderClientError(t *testing.T) {
	cache := &fakeCache{}
	client := &fakeEmbedClient{err: errors.New("model offline")}

	e := NewCachedEmbedder(NewCachedEmbedderParams{Store: cache, Client: client, Dim: 2})
	if _, err := e.GenerateEmbeddings(context.Background(), []string{"alpha"}); err == nil {
		t.Fatal("expected error when client fails on a cache miss")
	}
}

func TestCachedEmbedderDuplicateInputs(t *testing.T) {
	cache := &fakeCache{}
	client := &fakeEmbedClient{vectors: map[string][]float32{"alpha": {1, 0}}}

	e := NewCachedEmbedder(NewCachedEmbedderParams{Store: cache, Client: client, Dim: 2})
	got, err := e.GenerateEmbeddings(context.Background(), []string{"alpha", "alpha"})
	if err != nil {
		t.Fatalf("GenerateEmbeddings() error = %v", err)
	}
	if !reflect.DeepEqual(got, [][]float32{{1, 0}, {1, 0}}) {
		t.Errorf("embeddings = %v, want duplicate resolved from one embed", got)
	}
	if len(client.calls) != 1 || !reflect.DeepEqual(client.calls[0], []string{"alpha"}) {
		t.Errorf("client calls = %v, want single deduplicated batch", client.calls)
	}
}

func TestCachedEmbedderEmptyInput(t *testing.T) {
	e := NewCachedEmbedder(NewCachedEmbedderParams{Store: &fakeCache{}, Client: &fakeEmbedClient{}, Dim: 2})
	got, err := e.GenerateEmbeddings(context.Background(), nil)
	if err != nil {
		t.Fatalf("GenerateEmbeddings() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("embeddings = %v, want empty", got)
	}
}
