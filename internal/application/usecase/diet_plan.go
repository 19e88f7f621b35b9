package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tesso57/dietplan/internal/domain/plan"
	"github.com/tesso57/dietplan/internal/domain/profile"
)

// ErrNoProviders is returned when the pipeline has nothing to query.
var ErrNoProviders = errors.New("no ai providers configured")

// TextGenerator abstracts plain prompt -> text completion.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DocumentExporter writes merged text to a file and returns its path.
type DocumentExporter interface {
	Export(text string) (string, error)
}

// PlanRepository persists generated plans.
type PlanRepository interface {
	Save(record plan.Record) error
}

// ProgressReporter receives short status lines while a plan is generated.
type ProgressReporter interface {
	Update(status string)
}

// Provider is one configured AI backend, queried in list order.
type Provider struct {
	ID      string
	Heading string
	Client  TextGenerator
}

// DietPlan is the outcome of one pipeline run.
type DietPlan struct {
	ID        string
	CreatedAt time.Time
	Document  plan.Document
	Text      string
	PDFPath   string
	Results   []plan.Result
}

// DietPlanService runs prompt -> providers -> merge -> export for one profile.
type DietPlanService struct {
	Providers []Provider
	Policy    plan.MergePolicy
	Exporter  DocumentExporter
	History   PlanRepository
	Progress  ProgressReporter
	Logger    *slog.Logger
	Now       func() time.Time
	NewID     func() string
}

// NewDietPlanService constructs a DietPlanService.
func NewDietPlanService(providers []Provider, policy plan.MergePolicy, exporter DocumentExporter, history PlanRepository, logger *slog.Logger) *DietPlanService {
	return new(DietPlanService{
		Providers: providers,
		Policy:    policy,
		Exporter:  exporter,
		History:   history,
		Logger:    logger,
	})
}

// ProviderIDs lists the configured providers in call order.
func (s *DietPlanService) ProviderIDs() []string {
	ids := make([]string, 0, len(s.Providers))
	for _, p := range s.Providers {
		ids = append(ids, p.ID)
	}
	return ids
}

// Generate queries every provider strictly one after another and exports the merged plan.
//
// With a single provider or PolicyFailFast the first failure stops the run: later
// providers are not called and nothing is exported. A cancelled context also
// stops the run without exporting or recording anything.
func (s *DietPlanService) Generate(ctx context.Context, p profile.Profile) (DietPlan, error) {
	if s == nil || len(s.Providers) == 0 {
		return DietPlan{}, ErrNoProviders
	}
	if s.Exporter == nil {
		return DietPlan{}, errors.New("document exporter is not configured")
	}
	if err := p.Validate(); err != nil {
		return DietPlan{}, err
	}

	prompt := BuildPrompt(p)
	log := s.logger()

	results := make([]plan.Result, 0, len(s.Providers))
	for _, provider := range s.Providers {
		if ctx.Err() != nil {
			break
		}
		s.report(fmt.Sprintf("Asking %s...", provider.Heading))
		started := s.now()

		res := plan.Result{ProviderID: provider.ID, Heading: provider.Heading}
		if provider.Client == nil {
			res.Err = fmt.Errorf("%s client is not configured", provider.ID)
		} else {
			res.Text, res.Err = provider.Client.Generate(ctx, prompt)
		}
		results = append(results, res)

		elapsed := s.now().Sub(started)
		if res.Err != nil {
			log.Warn("provider failed", "provider", provider.ID, "elapsed", elapsed, "error", res.Err)
			if s.failFast() {
				break
			}
			continue
		}
		log.Info("provider responded", "provider", provider.ID, "elapsed", elapsed, "chars", len(res.Text))
	}

	if err := ctx.Err(); err != nil {
		log.Info("plan generation cancelled", "providers_called", len(results))
		return DietPlan{Results: results}, err
	}

	doc, err := plan.Merge(results, s.Policy)
	if err != nil {
		return DietPlan{Results: results}, err
	}

	text := doc.Text()
	s.report("Writing PDF...")
	path, err := s.Exporter.Export(text)
	if err != nil {
		return DietPlan{Document: doc, Text: text, Results: results}, fmt.Errorf("failed to export plan: %w", err)
	}

	out := DietPlan{
		ID:        s.newID(),
		CreatedAt: s.now(),
		Document:  doc,
		Text:      text,
		PDFPath:   path,
		Results:   results,
	}
	s.record(out)
	s.report("Done")
	return out, nil
}

func (s *DietPlanService) record(out DietPlan) {
	if s.History == nil {
		return
	}
	err := s.History.Save(plan.Record{
		ID:        out.ID,
		CreatedAt: out.CreatedAt,
		Providers: out.Document.ProviderIDs(),
		Policy:    s.Policy,
		Document:  out.Text,
		PDFPath:   out.PDFPath,
	})
	if err != nil {
		s.logger().Error("failed to save plan history", "id", out.ID, "error", err)
	}
}

func (s *DietPlanService) failFast() bool {
	return len(s.Providers) == 1 || s.Policy == plan.PolicyFailFast
}

func (s *DietPlanService) report(status string) {
	if s.Progress != nil {
		s.Progress.Update(status)
	}
}

func (s *DietPlanService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (s *DietPlanService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DietPlanService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
