package openai

import (
	"sync"
	"time"

	"github.com/theideaforge/forge/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/semaphore"
)

// ForgeOpenAIClient implements ai.ForgeAIClient against any
// OpenAI-compatible endpoint. It is the alternative to the default
// Ollama adapter for deployments that front their models with an
// OpenAI-style API.
type ForgeOpenAIClient struct {
	generateModel  string
	embeddingModel string
	embedDim       int

	baseURL string
	apiKey  string

	timeout time.Duration
	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	Client *openai.Client
}

// NewForgeOpenAIClientParams defines the configuration for creating a
// new ForgeOpenAIClient.
type NewForgeOpenAIClientParams struct {
	GenerateModel  string
	EmbeddingModel string
	EmbedDim       int

	BaseURL string
	ApiKey  string

	Timeout               time.Duration
	MaxConcurrentRequests int64
}

// NewForgeOpenAIClient creates and returns a ForgeOpenAIClient configured
// with the provided parameters.
func NewForgeOpenAIClient(
	params NewForgeOpenAIClientParams,
) *ForgeOpenAIClient {
	reqOpts := []option.RequestOption{}
	if params.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(params.BaseURL))
	}
	if params.ApiKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(params.ApiKey))
	}
	client := openai.NewClient(reqOpts...)

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	maxReq := params.MaxConcurrentRequests
	if maxReq <= 0 {
		maxReq = 1
	}

	return &ForgeOpenAIClient{
		generateModel:  params.GenerateModel,
		embeddingModel: params.EmbeddingModel,
		embedDim:       params.EmbedDim,

		baseURL: params.BaseURL,
		apiKey:  params.ApiKey,

		timeout: timeout,
		reqLock: semaphore.NewWeighted(maxReq),

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		Client: &client,
	}
}
