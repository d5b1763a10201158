package usecase

import (
	"context"
	"fmt"

	"github.com/fadilmartias/fairfound-coach/internal/gateway"
	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/fadilmartias/fairfound-coach/internal/notify"
	"github.com/fadilmartias/fairfound-coach/internal/pipeline"
)

type CoachingUsecase struct {
	orchestrator *pipeline.Orchestrator
	gateway      gateway.Interface
	inbox        *notify.Inbox
	log          logger.Logger
}

func NewCoachingUsecase(orchestrator *pipeline.Orchestrator, gw gateway.Interface, inbox *notify.Inbox, log logger.Logger) *CoachingUsecase {
	return &CoachingUsecase{orchestrator: orchestrator, gateway: gw, inbox: inbox, log: log}
}

func (uc *CoachingUsecase) CreateSession(ctx context.Context) (pipeline.Session, error) {
	return uc.orchestrator.Create(ctx)
}

func (uc *CoachingUsecase) GetSession(ctx context.Context, id string) (pipeline.Session, error) {
	return uc.orchestrator.Get(ctx, id)
}

// SubmitProfile records the profile and starts the analysis in the
// background. The returned session is already in the analyzing state.
func (uc *CoachingUsecase) SubmitProfile(ctx context.Context, id string, p model.Profile) (pipeline.Session, error) {
	begun, err := uc.orchestrator.Begin(ctx, id, p)
	if err != nil {
		return pipeline.Session{}, err
	}

	go uc.process(begun)

	return begun, nil
}

func (uc *CoachingUsecase) process(begun pipeline.Session) {
	// detached from the request, which has already been answered
	_, err := uc.orchestrator.Process(context.Background(), begun)
	if err != nil {
		uc.log.WithError(err).Warn("background analysis did not commit", logger.Fields{"session_id": begun.ID})
	}
}

// EditProfile replaces the stored profile without re-running the analysis.
func (uc *CoachingUsecase) EditProfile(ctx context.Context, id string, p model.Profile) (pipeline.Session, error) {
	return uc.orchestrator.Update(ctx, id, func(s pipeline.Session) (pipeline.Session, error) {
		return s.WithProfile(p), nil
	})
}

// ImportResume replaces the profile bio with text extracted from a resume.
func (uc *CoachingUsecase) ImportResume(ctx context.Context, id, resumeText string) (pipeline.Session, error) {
	return uc.orchestrator.Update(ctx, id, func(s pipeline.Session) (pipeline.Session, error) {
		if s.Profile == nil {
			return s, ErrNoProfile
		}
		p := *s.Profile
		p.Bio = resumeText
		return s.WithProfile(p), nil
	})
}

func (uc *CoachingUsecase) UpdateStepStatus(ctx context.Context, id, stepID string, status model.StepStatus) (pipeline.Session, error) {
	if !status.Valid() {
		return pipeline.Session{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return uc.orchestrator.Update(ctx, id, func(s pipeline.Session) (pipeline.Session, error) {
		next, ok := s.WithStepStatus(stepID, status)
		if !ok {
			return s, ErrStepNotFound
		}
		return next, nil
	})
}

func (uc *CoachingUsecase) GenerateProposal(ctx context.Context, id, jobDescription, tone, clientName string) (string, error) {
	s, err := uc.orchestrator.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if s.Profile == nil {
		return "", ErrNoProfile
	}
	return uc.gateway.GenerateProposal(ctx, *s.Profile, jobDescription, tone, clientName), nil
}

func (uc *CoachingUsecase) EnhancePortfolio(ctx context.Context, id string) (*model.PortfolioContent, error) {
	s, err := uc.orchestrator.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Profile == nil {
		return nil, ErrNoProfile
	}
	return uc.gateway.EnhancePortfolio(ctx, *s.Profile)
}

// Notifications lists the session inbox and marks it read.
func (uc *CoachingUsecase) Notifications(ctx context.Context, id string) ([]model.Notification, error) {
	if _, err := uc.orchestrator.Get(ctx, id); err != nil {
		return nil, err
	}
	list := uc.inbox.List(id)
	uc.inbox.MarkAllRead(id)
	return list, nil
}
