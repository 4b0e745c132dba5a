package ollama

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/theideaforge/forge/pkg/ai"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

// ForgeOllamaClient implements the ai.ForgeAIClient interface against a
// locally-hosted Ollama server. It covers the two operations the forge
// pipeline needs: prompt generation and term embeddings.
type ForgeOllamaClient struct {
	generateModel  string
	embeddingModel string
	embedDim       int

	timeout time.Duration
	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	baseURL    *url.URL
	httpClient *http.Client

	Client *api.Client
}

// NewForgeOllamaClientParams contains configuration options for creating
// a new ForgeOllamaClient.
type NewForgeOllamaClientParams struct {
	GenerateModel  string
	EmbeddingModel string
	EmbedDim       int

	BaseURL string
	ApiKey  string

	Timeout               time.Duration
	MaxConcurrentRequests int64
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewForgeOllamaClient creates a new Ollama-backed AI client. It connects
// to the server at BaseURL (or the Ollama default if empty) and uses the
// configured models for generation and embeddings.
func NewForgeOllamaClient(
	params NewForgeOllamaClientParams,
) (*ForgeOllamaClient, error) {
	base := params.BaseURL
	if base == "" {
		base = "http://localhost:11434"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}

	httpClient := http.DefaultClient
	if params.ApiKey != "" {
		httpClient = &http.Client{
			Transport: &headerTransport{
				headers: map[string]string{
					"Authorization": "Bearer " + params.ApiKey,
				},
				rt: http.DefaultTransport,
			},
		}
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	maxReq := params.MaxConcurrentRequests
	if maxReq <= 0 {
		maxReq = 1
	}

	return &ForgeOllamaClient{
		generateModel:  params.GenerateModel,
		embeddingModel: params.EmbeddingModel,
		embedDim:       params.EmbedDim,

		timeout: timeout,
		reqLock: semaphore.NewWeighted(maxReq),

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		baseURL:    u,
		httpClient: httpClient,

		Client: api.NewClient(u, httpClient),
	}, nil
}
