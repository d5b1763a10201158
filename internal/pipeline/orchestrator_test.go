package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fadilmartias/fairfound-coach/internal/gateway"
	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/fadilmartias/fairfound-coach/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	mu          sync.Mutex
	calls       []string
	gaps        []string
	roadmap     []model.RoadmapStep
	analyzeErr  error
	panicOnCall bool
	gates       map[string]chan struct{}
	roadmapGaps []string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, p model.Profile) (*model.AnalysisResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "analyze")
	gate := f.gates[p.Name]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if f.panicOnCall {
		panic("boom")
	}
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return &model.AnalysisResult{
		GlobalReadinessScore: 70,
		Strengths:            []string{p.Name},
		SkillGaps:            f.gaps,
	}, nil
}

func (f *fakeAnalyzer) GenerateRoadmap(ctx context.Context, p model.Profile, gaps []string) []model.RoadmapStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "roadmap")
	f.roadmapGaps = gaps
	return f.roadmap
}

func (f *fakeAnalyzer) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func profile(name string) model.Profile {
	return model.Profile{Name: name, Title: "Frontend Developer", Skills: []string{"React"}, ExperienceYears: 3, HourlyRate: 40}
}

func setup(t *testing.T, a Analyzer) (*Orchestrator, *notify.Inbox, Session) {
	t.Helper()
	inbox := notify.NewInbox(logger.NewNop())
	o := NewOrchestrator(a, NewMemoryStore(), inbox, logger.NewTest(t))
	s, err := o.Create(context.Background())
	require.NoError(t, err)
	return o, inbox, s
}

func TestNewSession_SeedsStarterRoadmap(t *testing.T) {
	s := NewSession("x")
	assert.Equal(t, StateEmpty, s.State)
	assert.Nil(t, s.Analysis)
	assert.Len(t, s.Roadmap, 3)
}

func TestSubmitProfile_NoGapsSkipsRoadmap(t *testing.T) {
	fa := &fakeAnalyzer{gaps: []string{}, roadmap: []model.RoadmapStep{{ID: "x"}}}
	o, _, s := setup(t, fa)

	out, err := o.SubmitProfile(context.Background(), s.ID, profile("Alex"))
	require.NoError(t, err)

	assert.Equal(t, []string{"analyze"}, fa.callLog())
	assert.Equal(t, StateReady, out.State)
	assert.Equal(t, model.StarterRoadmap(), out.Roadmap)
}

func TestSubmitProfile_GapsGenerateRoadmapAfterAnalysis(t *testing.T) {
	steps := []model.RoadmapStep{
		{ID: "a", Title: "Learn Next.js", Status: model.StepPending, Type: model.StepSkill},
		{ID: "b", Title: "Ship a project", Status: model.StepPending, Type: model.StepProject},
	}
	fa := &fakeAnalyzer{gaps: []string{"Next.js", "PostgreSQL"}, roadmap: steps}
	o, inbox, s := setup(t, fa)

	out, err := o.SubmitProfile(context.Background(), s.ID, profile("Alex"))
	require.NoError(t, err)

	assert.Equal(t, []string{"analyze", "roadmap"}, fa.callLog())
	assert.Equal(t, []string{"Next.js", "PostgreSQL"}, fa.roadmapGaps)
	assert.Equal(t, steps, out.Roadmap)
	assert.Equal(t, StateReady, out.State)

	stored, err := o.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, out, stored)

	notes := inbox.List(s.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "Analysis complete", notes[0].Title)
}

func TestSubmitProfile_EmptyRoadmapKeepsExisting(t *testing.T) {
	fa := &fakeAnalyzer{gaps: []string{"Go"}, roadmap: []model.RoadmapStep{}}
	o, _, s := setup(t, fa)

	out, err := o.SubmitProfile(context.Background(), s.ID, profile("Alex"))
	require.NoError(t, err)
	assert.Equal(t, model.StarterRoadmap(), out.Roadmap)
}

func TestSubmitProfile_OfflineKeepsStarterRoadmap(t *testing.T) {
	gw := gateway.New(nil, logger.NewNop())
	o, _, s := setup(t, gw)

	out, err := o.SubmitProfile(context.Background(), s.ID, profile("Alex"))
	require.NoError(t, err)

	assert.Equal(t, StateReady, out.State)
	require.NotNil(t, out.Analysis)
	assert.Equal(t, float64(78), out.Analysis.GlobalReadinessScore)
	assert.Equal(t, []string{"Next.js", "PostgreSQL", "System Design"}, out.Analysis.SkillGaps)
	assert.Equal(t, model.StarterRoadmap(), out.Roadmap)
}

func TestSubmitProfile_FailurePreservesPriorResults(t *testing.T) {
	fa := &fakeAnalyzer{gaps: []string{"Go"}, roadmap: []model.RoadmapStep{{ID: "r1", Title: "Go", Status: model.StepPending, Type: model.StepSkill}}}
	o, inbox, s := setup(t, fa)

	first, err := o.SubmitProfile(context.Background(), s.ID, profile("Alex"))
	require.NoError(t, err)

	fa.analyzeErr = &gateway.GatewayError{Op: gateway.OpAnalyze, Kind: gateway.KindSchemaError, Err: errors.New("bad")}
	out, err := o.SubmitProfile(context.Background(), s.ID, profile("Alexandra"))
	require.Error(t, err)
	assert.True(t, gateway.IsSchemaError(err))

	assert.Equal(t, StateReady, out.State)
	assert.Equal(t, first.Analysis, out.Analysis)
	assert.Equal(t, first.Roadmap, out.Roadmap)
	assert.Equal(t, "Alexandra", out.Profile.Name)
	assert.Equal(t, "Analysis failed", inbox.List(s.ID)[0].Title)
}

func TestSubmitProfile_FirstFailureReturnsToEmpty(t *testing.T) {
	fa := &fakeAnalyzer{analyzeErr: errors.New("connection refused")}
	o, _, s := setup(t, fa)

	out, err := o.SubmitProfile(context.Background(), s.ID, profile("Alex"))
	require.Error(t, err)
	assert.Equal(t, StateEmpty, out.State)
	assert.Nil(t, out.Analysis)
	assert.Equal(t, model.StarterRoadmap(), out.Roadmap)
}

func TestSubmitProfile_RecoversFromPanic(t *testing.T) {
	fa := &fakeAnalyzer{panicOnCall: true}
	o, _, s := setup(t, fa)

	out, err := o.SubmitProfile(context.Background(), s.ID, profile("Alex"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, StateEmpty, out.State)
}

func TestSubmitProfile_UnknownSession(t *testing.T) {
	o, _, _ := setup(t, &fakeAnalyzer{})
	_, err := o.SubmitProfile(context.Background(), "missing", profile("Alex"))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestProcess_LastSubmissionWins(t *testing.T) {
	for _, tc := range []struct {
		name      string
		firstDone string
	}{
		{"older resolves first", "A"},
		{"older resolves last", "B"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fa := &fakeAnalyzer{
				gaps: []string{},
				gates: map[string]chan struct{}{
					"A": make(chan struct{}),
					"B": make(chan struct{}),
				},
			}
			o, _, s := setup(t, fa)
			ctx := context.Background()

			a, err := o.Begin(ctx, s.ID, profile("A"))
			require.NoError(t, err)
			b, err := o.Begin(ctx, s.ID, profile("B"))
			require.NoError(t, err)
			require.Greater(t, b.Generation, a.Generation)

			done := map[string]chan error{"A": make(chan error, 1), "B": make(chan error, 1)}
			go func() { _, err := o.Process(ctx, a); done["A"] <- err }()
			go func() { _, err := o.Process(ctx, b); done["B"] <- err }()

			second := "B"
			if tc.firstDone == "B" {
				second = "A"
			}
			close(fa.gates[tc.firstDone])
			firstErr := <-done[tc.firstDone]
			close(fa.gates[second])
			secondErr := <-done[second]

			errs := map[string]error{tc.firstDone: firstErr, second: secondErr}
			assert.ErrorIs(t, errs["A"], ErrSuperseded)
			assert.NoError(t, errs["B"])

			final, err := o.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, StateReady, final.State)
			assert.Equal(t, "B", final.Profile.Name)
			assert.Equal(t, []string{"B"}, final.Analysis.Strengths)
		})
	}
}

func TestRun_WithoutStore(t *testing.T) {
	fa := &fakeAnalyzer{gaps: []string{"Go"}, roadmap: []model.RoadmapStep{{ID: "1"}}}
	o := NewOrchestrator(fa, nil, nil, logger.NewNop())

	out, err := o.Run(context.Background(), NewSession("cli"), profile("Alex"))
	require.NoError(t, err)
	assert.Equal(t, StateReady, out.State)
	assert.Equal(t, uint64(1), out.Generation)
	assert.Len(t, out.Roadmap, 1)
}

func TestSessionTransitions_ArePure(t *testing.T) {
	s := NewSession("x")
	begun := s.Begin(profile("Alex"))
	assert.Equal(t, StateEmpty, s.State)
	assert.Nil(t, s.Profile)

	done := begun.Complete(&model.AnalysisResult{}, []model.RoadmapStep{{ID: "z"}})
	assert.Equal(t, StateAnalyzing, begun.State)
	assert.Len(t, begun.Roadmap, 3)
	assert.Len(t, done.Roadmap, 1)

	updated, ok := s.WithStepStatus("2", model.StepCompleted)
	require.True(t, ok)
	assert.Equal(t, model.StepPending, s.Roadmap[1].Status)
	assert.Equal(t, model.StepCompleted, updated.Roadmap[1].Status)

	_, ok = s.WithStepStatus("nope", model.StepCompleted)
	assert.False(t, ok)
}
