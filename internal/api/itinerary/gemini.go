package itinerary

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

const (
	defaultModel       = "gemini-2.0-flash"
	defaultTemperature = 0.5
)

// Response is the raw material one generation call produced: the response
// text plus any grounding sources reported alongside it. InteractionID is
// assigned by the service when the call is made.
type Response struct {
	InteractionID uuid.UUID
	Text          string
	Sources       []types.GroundingSource
}

// AIClient abstracts the generative completion collaborator.
type AIClient interface {
	GenerateGroundedContent(ctx context.Context, prompt string) (*Response, error)
}

var _ AIClient = (*GeminiClient)(nil)

// GeminiClient generates content with Google Search grounding enabled.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) GenerateGroundedContent(ctx context.Context, prompt string) (*Response, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](defaultTemperature),
		Tools:       []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	return &Response{
		Text:    result.Text(),
		Sources: extractGroundingSources(result),
	}, nil
}

// extractGroundingSources reads web citations from the response metadata.
// Absent metadata is not an error; the result is simply empty.
func extractGroundingSources(resp *genai.GenerateContentResponse) []types.GroundingSource {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	md := resp.Candidates[0].GroundingMetadata
	if md == nil {
		return nil
	}
	var sources []types.GroundingSource
	for _, chunk := range md.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, types.GroundingSource{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return sources
}
