package itinerary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the itinerary client: one generation call split into its two
// externally visible halves so the pipeline can track Generating and
// Validating separately. No sub-step is ever retried; a single failure aborts
// the run.
type Service interface {
	// Invoke sends the prompt to the generation service with search grounding
	// enabled. Failure wraps types.ErrGenerationUnavailable.
	Invoke(ctx context.Context, prompt string) (*Response, error)
	// Parse extracts the fenced JSON body and validates it against the
	// itinerary schema. All-or-nothing: no partial itinerary is returned.
	Parse(resp *Response) (*types.Itinerary, []types.GroundingSource, error)
}

type ServiceImpl struct {
	logger   *slog.Logger
	aiClient AIClient
}

func NewServiceImpl(aiClient AIClient, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		aiClient: aiClient,
	}
}

func (s *ServiceImpl) Invoke(ctx context.Context, prompt string) (*Response, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Invoke")
	defer span.End()

	interactionID := uuid.New()
	span.SetAttributes(attribute.String("app.interaction.id", interactionID.String()))

	resp, err := s.aiClient.GenerateGroundedContent(ctx, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "Generation service call failed",
			slog.String("interactionID", interactionID.String()),
			slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation service call failed")
		return nil, fmt.Errorf("%w: %v", types.ErrGenerationUnavailable, err)
	}

	resp.InteractionID = interactionID
	s.logger.DebugContext(ctx, "Generation service responded",
		slog.String("interactionID", interactionID.String()),
		slog.Int("response_chars", len(resp.Text)),
		slog.Int("source_count", len(resp.Sources)))
	span.SetStatus(codes.Ok, "Generation completed")
	return resp, nil
}

func (s *ServiceImpl) Parse(resp *Response) (*types.Itinerary, []types.GroundingSource, error) {
	body := extractJSONBody(resp.Text)
	if body == "" {
		s.logger.Error("Generation response carried no JSON body", slog.Int("response_chars", len(resp.Text)))
		return nil, nil, types.ErrMalformedResponse
	}

	itin, err := validateItinerary(body)
	if err != nil {
		s.logger.Error("Generated itinerary failed validation", slog.Any("error", err))
		return nil, nil, err
	}
	return itin, resp.Sources, nil
}

// Generate runs Invoke then Parse as one call.
func (s *ServiceImpl) Generate(ctx context.Context, prompt string) (*types.Itinerary, []types.GroundingSource, error) {
	resp, err := s.Invoke(ctx, prompt)
	if err != nil {
		return nil, nil, err
	}
	return s.Parse(resp)
}
