package planet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"planet-designer/internal/auth"
	"planet-designer/internal/composition"
	"planet-designer/internal/physical"
	"planet-designer/internal/shared/database"
	apperrors "planet-designer/internal/shared/errors"
	"planet-designer/internal/shared/metrics"
)

const (
	componentPhysical    = "physical"
	componentComposition = "composition"
	componentDesign      = "design"
)

type Service struct {
	repo    *Repository
	cache   ReportCache
	tokens  *auth.TokenIssuer
	metrics *metrics.Collector
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(repo *Repository, cache ReportCache, tokens *auth.TokenIssuer, m *metrics.Collector, logger *slog.Logger) *Service {
	logger.Debug("Initializing planet service")

	return &Service{
		repo:    repo,
		cache:   cache,
		tokens:  tokens,
		metrics: m,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate validates a proposed planet and returns its derived properties.
// Cache failures are logged and never fail the evaluation.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (*Report, error) {
	logger := s.logger.With("component", "planet_service", "operation", "evaluate")
	start := time.Now()

	key, err := CacheKey(req)
	if err != nil {
		// NaN placeholders for non-numeric input cannot be encoded; such requests are invalid anyway
		logger.Debug("Request is not cacheable", "error", err)
	} else if report, ok := s.lookup(ctx, logger, key); ok {
		s.metrics.RecordEvaluation(metrics.OutcomeValid, time.Since(start))
		return report, nil
	}

	report, physViolations, compViolations := evaluate(req)
	s.metrics.RecordViolations(componentPhysical, len(physViolations))
	s.metrics.RecordViolations(componentComposition, len(compViolations))

	if report == nil {
		s.metrics.RecordEvaluation(metrics.OutcomeInvalid, time.Since(start))
		logger.Debug("Planet rejected",
			"physical_violations", len(physViolations),
			"composition_violations", len(compViolations),
		)
		return nil, apperrors.NewValidation(append(physViolations, compViolations...))
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, report); err != nil {
			logger.Warn("Failed to cache report", "error", err)
		}
	}

	s.metrics.RecordEvaluation(metrics.OutcomeValid, time.Since(start))
	logger.Debug("Planet evaluated", "dominant_gas", report.Composition.Properties.DominantGas)
	return report, nil
}

func (s *Service) lookup(ctx context.Context, logger *slog.Logger, key string) (*Report, bool) {
	report, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Report cache lookup failed", "error", err)
		s.metrics.RecordCacheLookup(metrics.CacheMiss)
		return nil, false
	}
	if !ok {
		s.metrics.RecordCacheLookup(metrics.CacheMiss)
		return nil, false
	}
	s.metrics.RecordCacheLookup(metrics.CacheHit)
	return report, true
}

// Validate reports every violation of both parameter sets without failing
func (s *Service) Validate(_ context.Context, req EvaluateRequest) ValidationReport {
	report := Validate(req)
	s.metrics.RecordViolations(componentPhysical, len(report.Physical.Errors))
	s.metrics.RecordViolations(componentComposition, len(report.Composition.Errors))
	return report
}

func validateName(name string) []string {
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		return []string{"Name is required"}
	case n > maxDesignNameLength:
		return []string{fmt.Sprintf("Name must be at most %d characters", maxDesignNameLength)}
	}
	return nil
}

// buildDesign validates every part of the request and reports all violations together
func (s *Service) buildDesign(req DesignRequest) (*Design, error) {
	name := strings.TrimSpace(req.Name)
	nameViolations := validateName(name)

	phys, physErr := physical.New(req.Physical)
	comp, compErr := composition.New(req.Composition)

	physViolations := apperrors.Violations(physErr)
	compViolations := apperrors.Violations(compErr)
	s.metrics.RecordViolations(componentDesign, len(nameViolations))
	s.metrics.RecordViolations(componentPhysical, len(physViolations))
	s.metrics.RecordViolations(componentComposition, len(compViolations))

	if len(nameViolations) > 0 || physErr != nil || compErr != nil {
		violations := append(append(nameViolations, physViolations...), compViolations...)
		return nil, apperrors.NewValidation(violations)
	}

	return &Design{
		Name:        name,
		Physical:    phys,
		Composition: comp,
	}, nil
}

func (s *Service) CreateDesign(ctx context.Context, req DesignRequest) (*CreatedDesign, error) {
	logger := s.logger.With("component", "planet_service", "operation", "create_design")

	design, err := s.buildDesign(req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	design.ID = uuid.New()
	design.CreatedAt = now
	design.UpdatedAt = now

	if err := s.repo.CreateDesign(ctx, design, nil); err != nil {
		return nil, apperrors.WrapInternal("failed to save design", err)
	}

	token, err := s.tokens.Issue(design.ID)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to issue edit token", err)
	}

	s.metrics.RecordDesignOperation("create")
	logger.Info("Design created", "design_id", design.ID, "name", design.Name)
	return &CreatedDesign{Design: design, EditToken: token}, nil
}

func (s *Service) GetDesign(ctx context.Context, id uuid.UUID) (*Design, error) {
	design, err := s.repo.GetDesign(ctx, id, nil)
	if err != nil {
		return nil, s.mapRepoError(id, "failed to load design", err)
	}
	return design, nil
}

// GetDesignReport returns the derived properties of a saved design
func (s *Service) GetDesignReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	design, err := s.GetDesign(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewReport(design.Physical, design.Composition), nil
}

func (s *Service) ListDesigns(ctx context.Context) ([]Design, error) {
	designs, err := s.repo.ListDesigns(ctx, defaultListLimit)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list designs", err)
	}
	if designs == nil {
		designs = []Design{}
	}
	return designs, nil
}

// UpdateDesign replaces the name and both parameter sets of a saved design
func (s *Service) UpdateDesign(ctx context.Context, id uuid.UUID, req DesignRequest) (*Design, error) {
	logger := s.logger.With("component", "planet_service", "operation", "update_design", "design_id", id)

	design, err := s.buildDesign(req)
	if err != nil {
		return nil, err
	}
	design.ID = id
	design.UpdatedAt = s.now()

	err = s.repo.WithTx(ctx, func(tx *database.Tx) error {
		existing, err := s.repo.GetDesign(ctx, id, tx)
		if err != nil {
			return err
		}
		design.CreatedAt = existing.CreatedAt
		return s.repo.UpdateDesign(ctx, design, tx)
	})
	if err != nil {
		return nil, s.mapRepoError(id, "failed to update design", err)
	}

	s.metrics.RecordDesignOperation("update")
	logger.Info("Design updated")
	return design, nil
}

func (s *Service) DeleteDesign(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteDesign(ctx, id); err != nil {
		return s.mapRepoError(id, "failed to delete design", err)
	}

	s.metrics.RecordDesignOperation("delete")
	s.logger.Info("Design deleted", "component", "planet_service", "design_id", id)
	return nil
}

func (s *Service) mapRepoError(id uuid.UUID, message string, err error) error {
	if errors.Is(err, ErrDesignNotFound) {
		return apperrors.NotFoundf("design %s not found", id)
	}
	return apperrors.WrapInternal(message, err)
}

// EditTokenExpiration is how long issued edit tokens stay valid
func (s *Service) EditTokenExpiration() time.Duration {
	return s.tokens.Expiration()
}
