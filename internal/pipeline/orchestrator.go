// Package pipeline turns a submitted profile into an analysis and, when the
// analysis reports skill gaps, a roadmap. It owns session state transitions.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/metrics"
	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/google/uuid"
)

// ErrSuperseded is returned when a newer submission for the same session
// started while this one was running. Its result is discarded.
var ErrSuperseded = errors.New("superseded by a newer submission")

// Analyzer is the part of the AI gateway the pipeline needs.
type Analyzer interface {
	Analyze(ctx context.Context, p model.Profile) (*model.AnalysisResult, error)
	GenerateRoadmap(ctx context.Context, p model.Profile, gaps []string) []model.RoadmapStep
}

// Notifier receives user-facing pipeline events.
type Notifier interface {
	Notify(ctx context.Context, sessionID string, n model.Notification)
}

type Orchestrator struct {
	analyzer Analyzer
	store    Store
	notifier Notifier
	log      logger.Logger

	// serialises the read-modify-write on the store
	mu sync.Mutex
}

func NewOrchestrator(analyzer Analyzer, store Store, notifier Notifier, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		analyzer: analyzer,
		store:    store,
		notifier: notifier,
		log:      log.With(logger.Fields{"component": "pipeline"}),
	}
}

// Create stores a new empty session seeded with the starter roadmap.
func (o *Orchestrator) Create(ctx context.Context) (Session, error) {
	s := NewSession(uuid.NewString())
	if err := o.store.Save(ctx, s); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

func (o *Orchestrator) Get(ctx context.Context, id string) (Session, error) {
	return o.store.Get(ctx, id)
}

// Update applies fn to the stored session and saves the result.
func (o *Orchestrator) Update(ctx context.Context, id string, fn func(Session) (Session, error)) (Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	cur, err := o.store.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	next, err := fn(cur)
	if err != nil {
		return cur, err
	}
	if err := o.store.Save(ctx, next); err != nil {
		return cur, fmt.Errorf("save session: %w", err)
	}
	return next, nil
}

// Begin records a submission and moves the session to analyzing. The returned
// session carries the generation Process will commit against.
func (o *Orchestrator) Begin(ctx context.Context, id string, p model.Profile) (Session, error) {
	return o.Update(ctx, id, func(s Session) (Session, error) {
		return s.Begin(p), nil
	})
}

// SubmitProfile runs a full submission synchronously.
func (o *Orchestrator) SubmitProfile(ctx context.Context, id string, p model.Profile) (Session, error) {
	begun, err := o.Begin(ctx, id, p)
	if err != nil {
		return Session{}, err
	}
	return o.Process(ctx, begun)
}

// Process runs the analysis for a session returned by Begin and commits the
// outcome, unless a newer submission has been made in the meantime.
func (o *Orchestrator) Process(ctx context.Context, begun Session) (Session, error) {
	if begun.Profile == nil {
		return begun, errors.New("session has no profile to analyse")
	}
	log := o.log.With(logger.Fields{"session_id": begun.ID, "generation": begun.Generation})

	metrics.PipelinesActive.Inc()
	defer metrics.PipelinesActive.Dec()

	analysis, roadmap, runErr := o.run(ctx, *begun.Profile)

	o.mu.Lock()
	cur, err := o.store.Get(ctx, begun.ID)
	if err != nil {
		o.mu.Unlock()
		return Session{}, err
	}
	if cur.Generation != begun.Generation {
		o.mu.Unlock()
		log.Info("discarding stale analysis", logger.Fields{"current_generation": cur.Generation})
		metrics.PipelineRuns.WithLabelValues("superseded").Inc()
		return cur, ErrSuperseded
	}

	var next Session
	if runErr != nil {
		next = cur.Fail()
	} else {
		next = cur.Complete(analysis, roadmap)
	}
	saveErr := o.store.Save(ctx, next)
	o.mu.Unlock()

	if saveErr != nil {
		log.WithError(saveErr).Error("failed to save session", nil)
		metrics.PipelineRuns.WithLabelValues("failed").Inc()
		return cur, fmt.Errorf("save session: %w", saveErr)
	}

	if runErr != nil {
		log.WithError(runErr).Error("profile analysis failed", nil)
		metrics.PipelineRuns.WithLabelValues("failed").Inc()
		o.notify(ctx, begun.ID, model.Notification{
			Title:   "Analysis failed",
			Message: "We could not analyse your profile. Your previous results are unchanged.",
			Type:    "warning",
		})
		return next, runErr
	}

	log.Info("profile analysis complete", logger.Fields{
		"readiness":  analysis.GlobalReadinessScore,
		"skill_gaps": len(analysis.SkillGaps),
		"roadmap":    len(next.Roadmap),
	})
	metrics.PipelineRuns.WithLabelValues("ready").Inc()
	o.notify(ctx, begun.ID, model.Notification{
		Title:   "Analysis complete",
		Message: "Your profile analysis and roadmap are ready.",
		Type:    "success",
	})
	return next, nil
}

// Run executes the pipeline on a session value without a store. Used by the CLI.
func (o *Orchestrator) Run(ctx context.Context, s Session, p model.Profile) (Session, error) {
	begun := s.Begin(p)
	analysis, roadmap, err := o.run(ctx, p)
	if err != nil {
		return begun.Fail(), err
	}
	return begun.Complete(analysis, roadmap), nil
}

// run calls analyze and then, only when gaps were reported, generate roadmap.
// A panic anywhere in the chain is turned into an error.
func (o *Orchestrator) run(ctx context.Context, p model.Profile) (analysis *model.AnalysisResult, roadmap []model.RoadmapStep, err error) {
	defer func() {
		if r := recover(); r != nil {
			analysis, roadmap = nil, nil
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()

	analysis, err = o.analyzer.Analyze(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	if analysis == nil {
		return nil, nil, errors.New("analyzer returned no result")
	}
	if analysis.HasSkillGaps() {
		roadmap = o.analyzer.GenerateRoadmap(ctx, p, analysis.SkillGaps)
	}
	return analysis, roadmap, nil
}

func (o *Orchestrator) notify(ctx context.Context, sessionID string, n model.Notification) {
	if o.notifier == nil {
		return
	}
	n.ID = uuid.NewString()
	n.Time = time.Now()
	o.notifier.Notify(ctx, sessionID, n)
}
