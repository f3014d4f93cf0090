package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/estimator"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/metrics"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/reference"
)

// EstimateService runs the estimator and stamps each result with an ID, a
// calculation time and a reference that can be used to recompute it later.
type EstimateService struct {
	keyring *reference.Keyring
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// NewEstimateService creates a new EstimateService. A nil keyring disables
// references; nil metrics disables counting.
func NewEstimateService(keyring *reference.Keyring, m *metrics.Metrics) *EstimateService {
	return &EstimateService{
		keyring: keyring,
		metrics: m,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// Calculate estimates the closing costs for in.
//
// The input is stored on the estimate unchanged. Amounts are rounded to whole
// dollars by the estimator before any rule is applied.
func (s *EstimateService) Calculate(ctx context.Context, in model.TransactionInput) (model.Estimate, error) {
	id := s.newID()

	e, err := s.compute(id, in)
	if err != nil {
		return model.Estimate{}, err
	}

	if s.keyring != nil {
		e.Reference, err = s.keyring.Seal(reference.Claims{EstimateID: id, Input: in})
		if err != nil {
			return model.Estimate{}, err
		}
	}

	s.metrics.RecordEstimate(string(in.Type))

	zerolog.Ctx(ctx).Debug().
		Str("estimate_id", id).
		Str("transaction_type", string(in.Type)).
		Msg("estimate calculated")

	return e, nil
}

// Resolve opens a reference issued by Calculate and recomputes the estimate
// from the sealed input. The estimate keeps its original ID.
//
// Returns apperrors.ErrMissingReference for a blank token and
// apperrors.ErrInvalidReference for a forged, corrupted or expired one.
func (s *EstimateService) Resolve(ctx context.Context, token string) (model.Estimate, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.Estimate{}, apperrors.ErrMissingReference
	}
	if s.keyring == nil {
		return model.Estimate{}, apperrors.ErrInvalidReference
	}

	claims, err := s.keyring.Open(token)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("reference rejected")
		return model.Estimate{}, err
	}

	e, err := s.compute(claims.EstimateID, claims.Input)
	if err != nil {
		return model.Estimate{}, err
	}
	e.Reference = token
	return e, nil
}

func (s *EstimateService) compute(id string, in model.TransactionInput) (model.Estimate, error) {
	breakdown, err := estimator.Estimate(in)
	if err != nil {
		return model.Estimate{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToCalculate, err)
	}

	return model.Estimate{
		ID:           id,
		CalculatedAt: s.now().UTC(),
		Input:        in,
		Breakdown:    breakdown,
	}, nil
}
