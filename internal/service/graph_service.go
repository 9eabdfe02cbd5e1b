package service

import (
	"context"
	"strings"

	"alexandria-server/internal/domain"
	apperrors "alexandria-server/pkg/errors"
)

const msgGraphError = "Failed to extract graph"

var graphTemperature float32 = 0

type graphService struct {
	repo   domain.GraphRepository
	intake *intakeService
	logger domain.Logger
}

// NewGraphService shares the intake service's model and timeout.
func NewGraphService(repo domain.GraphRepository, intake *intakeService, logger domain.Logger) *graphService {
	return &graphService{repo: repo, intake: intake, logger: logger}
}

func (s *graphService) GraphData(ctx context.Context) (*domain.GraphData, error) {
	data, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load graph", err)
		return nil, apperrors.NewInternalError(msgServerError, err)
	}
	return data, nil
}

// Extract asks the model for entities and relationships in text and stores
// them.
func (s *graphService) Extract(ctx context.Context, text string) (*domain.GraphExtraction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError(msgMissingText, domain.ErrMissingText)
	}

	reply, err := s.intake.generate(ctx, graphPrompt(text), domain.GenerateOptions{JSON: true, Temperature: &graphTemperature})
	if err != nil {
		s.logger.Error("Graph extraction call failed", err)
		return nil, apperrors.NewUpstreamError(msgModelError, err)
	}

	graph, err := parseExtractedGraph(reply)
	if err != nil {
		s.logger.Error("Graph extraction reply rejected", err, "reply_len", len(reply))
		return nil, apperrors.NewUpstreamError(msgModelError, err)
	}

	result, err := s.repo.Save(ctx, graph)
	if err != nil {
		s.logger.Error("Failed to store graph", err)
		return nil, apperrors.NewInternalError(msgGraphError, err)
	}

	s.logger.Info("Graph extracted", "nodes_added", result.NodesAdded, "relationships_added", result.RelationshipsAdded)
	return result, nil
}
