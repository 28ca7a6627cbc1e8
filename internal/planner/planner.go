// Package planner orchestrates meal plan generation. It validates the
// request, performs the single upstream call, and assembles the result
// envelope with the rendered report.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/platewise/platewise/internal/metrics"
	"github.com/platewise/platewise/internal/spoonacular"
	"github.com/platewise/platewise/pkg/mealplan"
)

// ErrInvalidTimeFrame rejects a time frame other than "day" or "week". No
// upstream request is made for an invalid one.
var ErrInvalidTimeFrame = errors.New("time_frame must be either 'day' or 'week'")

// Request carries the parameters of one generation. An empty TimeFrame
// means "week".
type Request struct {
	TimeFrame   string `validate:"required,oneof=day week"`
	Preferences mealplan.Preferences
}

// Envelope is the result document returned by every surface. MealPlan holds
// the upstream response verbatim, unknown fields included. Document is
// reserved for a persisted artifact reference and is always null for now.
type Envelope struct {
	MealPlan      json.RawMessage      `json:"mealPlan"`
	FormattedText string               `json:"formattedText"`
	Document      any                  `json:"document"`
	Preferences   mealplan.Preferences `json:"preferences"`
}

// Service generates meal plans through a Spoonacular client.
type Service struct {
	client   *spoonacular.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService returns a Service. A nil logger falls back to the default.
func NewService(client *spoonacular.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:   client,
		validate: validator.New(),
		logger:   logger,
	}
}

// Generate runs one generation end to end: validate, call the API once,
// parse, render, wrap. The request preferences are echoed in the envelope
// exactly as given, including explicit zeros.
func (s *Service) Generate(ctx context.Context, req Request) (*Envelope, error) {
	if req.TimeFrame == "" {
		req.TimeFrame = "week"
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrInvalidTimeFrame
	}

	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID)
	logger.Info("generating meal plan", "time_frame", req.TimeFrame)

	params := spoonacular.GenerateParams{TimeFrame: req.TimeFrame}
	if req.Preferences.TargetCalories != nil {
		params.TargetCalories = *req.Preferences.TargetCalories
	}
	if req.Preferences.Diet != nil {
		params.Diet = *req.Preferences.Diet
	}
	if req.Preferences.Exclude != nil {
		params.Exclude = *req.Preferences.Exclude
	}

	raw, err := s.client.GenerateMealPlan(ctx, params)
	if err != nil {
		logger.Error("meal plan generation failed", "error", err)
		return nil, err
	}

	plan, err := mealplan.Parse(raw)
	if err != nil {
		logger.Error("meal plan response unusable", "error", err)
		return nil, err
	}

	metrics.PlansGenerated.WithLabelValues(req.TimeFrame).Inc()
	logger.Info("meal plan generated", "meals", len(plan.Meals), "grocery_items", len(plan.Items))

	return &Envelope{
		MealPlan:      raw,
		FormattedText: mealplan.Format(plan, req.Preferences),
		Document:      nil,
		Preferences:   req.Preferences,
	}, nil
}
