// Package gateway mediates every call to the external generative capability.
// Without a configured generator it answers from the fixed fallbacks; with one
// it issues a single call per request and validates structured output.
package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/metrics"
	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/fadilmartias/fairfound-coach/internal/schema"
	"github.com/fadilmartias/fairfound-coach/internal/service"
)

type Operation string

const (
	OpAnalyze             Operation = "analyze"
	OpGenerateRoadmap     Operation = "generateRoadmap"
	OpGenerateProposal    Operation = "generateProposal"
	OpEnhancePortfolio    Operation = "enhancePortfolio"
	OpGenerateMenteeTasks Operation = "generateMenteeTasks"
	OpGenerateFeedback    Operation = "generateFeedback"
)

// Placeholders returned by text operations.
const (
	ProposalEmpty  = "Could not generate proposal."
	ProposalFailed = "Error generating proposal. Please try again."
	FeedbackEmpty  = "Good work."
	FeedbackFailed = "Good effort on this task."
)

// Params carries operation-specific inputs. Only the fields relevant to the
// requested operation are read.
type Params struct {
	Gaps           []string
	JobDescription string
	Tone           string
	ClientName     string
	MenteeName     string
	FocusArea      string
	Difficulty     string
	SubmissionText string
	TaskTitle      string
}

// Output holds the result of exactly one operation.
type Output struct {
	Analysis  *model.AnalysisResult
	Roadmap   []model.RoadmapStep
	Portfolio *model.PortfolioContent
	Tasks     []model.Task
	Text      string
}

// Interface is what the pipeline and use cases depend on.
type Interface interface {
	Analyze(ctx context.Context, p model.Profile) (*model.AnalysisResult, error)
	GenerateRoadmap(ctx context.Context, p model.Profile, gaps []string) []model.RoadmapStep
	GenerateProposal(ctx context.Context, p model.Profile, jobDescription, tone, clientName string) string
	EnhancePortfolio(ctx context.Context, p model.Profile) (*model.PortfolioContent, error)
	GenerateMenteeTasks(ctx context.Context, menteeName, focusArea, difficulty string) ([]model.Task, error)
	GenerateFeedback(ctx context.Context, submissionText, taskTitle string) string
}

type Gateway struct {
	gen service.GenerativeService
	log logger.Logger
}

// New builds a gateway. A nil generator selects offline mode.
func New(gen service.GenerativeService, log logger.Logger) *Gateway {
	g := &Gateway{gen: gen, log: log.With(logger.Fields{"component": "gateway"})}
	if gen == nil {
		g.log.Info("no generative credential configured, serving fallbacks", nil)
	}
	return g
}

func (g *Gateway) Online() bool {
	return g.gen != nil
}

// Request dispatches an operation by name.
func (g *Gateway) Request(ctx context.Context, op Operation, p model.Profile, params Params) (Output, error) {
	switch op {
	case OpAnalyze:
		a, err := g.Analyze(ctx, p)
		return Output{Analysis: a}, err
	case OpGenerateRoadmap:
		return Output{Roadmap: g.GenerateRoadmap(ctx, p, params.Gaps)}, nil
	case OpGenerateProposal:
		return Output{Text: g.GenerateProposal(ctx, p, params.JobDescription, params.Tone, params.ClientName)}, nil
	case OpEnhancePortfolio:
		pc, err := g.EnhancePortfolio(ctx, p)
		return Output{Portfolio: pc}, err
	case OpGenerateMenteeTasks:
		tasks, err := g.GenerateMenteeTasks(ctx, params.MenteeName, params.FocusArea, params.Difficulty)
		return Output{Tasks: tasks}, err
	case OpGenerateFeedback:
		return Output{Text: g.GenerateFeedback(ctx, params.SubmissionText, params.TaskTitle)}, nil
	}
	return Output{}, fmt.Errorf("unknown operation %q", op)
}

func (g *Gateway) Analyze(ctx context.Context, p model.Profile) (*model.AnalysisResult, error) {
	if !g.Online() {
		record(OpAnalyze, metrics.OutcomeOffline)
		return FallbackAnalysis(p), nil
	}
	var out model.AnalysisResult
	if err := g.structured(ctx, OpAnalyze, analyzePrompt(p), schema.AnalysisShape, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateRoadmap never fails: any fault yields an empty list, which callers
// must treat as "keep the current roadmap".
func (g *Gateway) GenerateRoadmap(ctx context.Context, p model.Profile, gaps []string) []model.RoadmapStep {
	if !g.Online() {
		record(OpGenerateRoadmap, metrics.OutcomeOffline)
		return FallbackRoadmap()
	}
	var out []model.RoadmapStep
	if err := g.structured(ctx, OpGenerateRoadmap, roadmapPrompt(p, gaps), schema.RoadmapShape, &out); err != nil {
		g.log.WithError(err).Warn("roadmap generation failed, returning empty roadmap", logger.Fields{"gaps": gaps})
		return []model.RoadmapStep{}
	}
	if out == nil {
		out = []model.RoadmapStep{}
	}
	return out
}

func (g *Gateway) GenerateProposal(ctx context.Context, p model.Profile, jobDescription, tone, clientName string) string {
	if !g.Online() {
		record(OpGenerateProposal, metrics.OutcomeOffline)
		return FallbackProposal(p, clientName)
	}
	return g.text(ctx, OpGenerateProposal, proposalPrompt(p, jobDescription, tone, clientName), ProposalEmpty, ProposalFailed)
}

func (g *Gateway) EnhancePortfolio(ctx context.Context, p model.Profile) (*model.PortfolioContent, error) {
	if !g.Online() {
		record(OpEnhancePortfolio, metrics.OutcomeOffline)
		return FallbackPortfolio(), nil
	}
	var out model.PortfolioContent
	if err := g.structured(ctx, OpEnhancePortfolio, portfolioPrompt(p), schema.PortfolioShape, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) GenerateMenteeTasks(ctx context.Context, menteeName, focusArea, difficulty string) ([]model.Task, error) {
	if !g.Online() {
		record(OpGenerateMenteeTasks, metrics.OutcomeOffline)
		return FallbackTasks(focusArea), nil
	}
	var out []model.Task
	if err := g.structured(ctx, OpGenerateMenteeTasks, menteeTasksPrompt(menteeName, focusArea, difficulty), schema.TaskListShape, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gateway) GenerateFeedback(ctx context.Context, submissionText, taskTitle string) string {
	if !g.Online() {
		record(OpGenerateFeedback, metrics.OutcomeOffline)
		return FallbackFeedback()
	}
	return g.text(ctx, OpGenerateFeedback, feedbackPrompt(submissionText, taskTitle), FeedbackEmpty, FeedbackFailed)
}

func (g *Gateway) structured(ctx context.Context, op Operation, prompt string, shape schema.Shape, out interface{}) error {
	start := time.Now()
	raw, err := g.gen.GenerateJSON(ctx, prompt, shape)
	metrics.GatewayDuration.WithLabelValues(string(op)).Observe(time.Since(start).Seconds())
	if err != nil {
		record(op, metrics.OutcomeTransportFailure)
		return &GatewayError{Op: op, Kind: KindTransportFailure, Retryable: service.IsRetryable(err), Err: err}
	}
	if err := schema.Validate([]byte(raw), shape, out); err != nil {
		record(op, metrics.OutcomeSchemaError)
		return &GatewayError{Op: op, Kind: KindSchemaError, Err: err}
	}
	record(op, metrics.OutcomeOnline)
	return nil
}

func (g *Gateway) text(ctx context.Context, op Operation, prompt, emptyText, failedText string) string {
	start := time.Now()
	raw, err := g.gen.GenerateText(ctx, prompt)
	metrics.GatewayDuration.WithLabelValues(string(op)).Observe(time.Since(start).Seconds())
	if err != nil {
		g.log.WithError(err).Warn("text generation failed, using placeholder", logger.Fields{"operation": op})
		record(op, metrics.OutcomePlaceholder)
		return failedText
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		record(op, metrics.OutcomePlaceholder)
		return emptyText
	}
	record(op, metrics.OutcomeOnline)
	return text
}

func record(op Operation, outcome string) {
	metrics.GatewayRequests.WithLabelValues(string(op), outcome).Inc()
}
