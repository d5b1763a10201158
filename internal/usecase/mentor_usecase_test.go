package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fadilmartias/fairfound-coach/internal/gateway"
	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/fadilmartias/fairfound-coach/internal/repository"
	"github.com/fadilmartias/fairfound-coach/internal/schema"
	"github.com/fadilmartias/fairfound-coach/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder maps known texts to fixed vectors.
type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 0}, nil
}

// cannedGenerator answers every structured request with the same payload.
type cannedGenerator struct {
	json string
}

func (g cannedGenerator) GenerateJSON(ctx context.Context, prompt string, shape schema.Shape) (string, error) {
	return g.json, nil
}

func (g cannedGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "Nice work.", nil
}

func newMentorUsecase(t *testing.T, embedder service.EmbeddingService) *MentorUsecase {
	t.Helper()
	uc := NewMentorUsecase(
		repository.NewMemoryMentorRepository(),
		repository.NewMemoryMenteeRepository(),
		repository.NewMemoryConnectionLog(),
		gateway.New(nil, logger.NewNop()),
		embedder,
		logger.NewTest(t),
	)
	require.NoError(t, uc.Seed(context.Background()))
	return uc
}

func TestMentorUsecase_SeedIsIdempotent(t *testing.T) {
	uc := newMentorUsecase(t, nil)
	require.NoError(t, uc.Seed(context.Background()))

	mentors, err := uc.ListMentors(context.Background())
	require.NoError(t, err)
	assert.Len(t, mentors, 3)

	mentees, err := uc.ListMentees(context.Background())
	require.NoError(t, err)
	assert.Len(t, mentees, 2)
}

func TestMentorUsecase_RecommendByOverlapOffline(t *testing.T) {
	uc := newMentorUsecase(t, nil)

	got, err := uc.RecommendMentors(context.Background(), []string{"Next.js", "PostgreSQL", "System Design"}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Marcus Chen", got[0].Name)
	// no overlap for the rest, available mentors first
	assert.Equal(t, "Elena Rostova", got[1].Name)
}

func TestMentorUsecase_RecommendByEmbedding(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"UI/UX, Design Systems, Figma":          {1, 0, 0},
		"React, Next.js, System Design":         {0, 1, 0},
		"Upwork Strategy, Pricing, Negotiation": {0, 0, 1},
		"Pricing":                               {0, 0.1, 0.9},
	}}
	uc := newMentorUsecase(t, emb)

	got, err := uc.RecommendMentors(context.Background(), []string{"Pricing"}, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sarah Jenkins", got[0].Name)

	// a second seed keeps stored embeddings
	calls := emb.calls
	require.NoError(t, uc.Seed(context.Background()))
	assert.Equal(t, calls, emb.calls)
}

func TestMentorUsecase_RecommendFallsBackWhenEmbeddingFails(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("quota exceeded")}
	uc := newMentorUsecase(t, emb)

	got, err := uc.RecommendMentors(context.Background(), []string{"Figma"}, 3)
	require.NoError(t, err)
	assert.Equal(t, "Elena Rostova", got[0].Name)
}

func TestMentorUsecase_ConnectAppendsAndRegistersMentee(t *testing.T) {
	uc := newMentorUsecase(t, nil)
	ctx := context.Background()

	_, err := uc.Connect(ctx, "2", "Jordan Lee")
	require.NoError(t, err)
	c, err := uc.Connect(ctx, "2", "Jordan Lee")
	require.NoError(t, err)
	assert.Equal(t, "active", c.Status)
	assert.NotEmpty(t, c.Date)

	list, page, err := uc.ListConnections(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(2), page.TotalItems)

	m, err := uc.GetMentee(ctx, "new-1")
	require.NoError(t, err)
	assert.Equal(t, "Jordan Lee", m.Name)

	_, err = uc.Connect(ctx, "404", "Nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMentorUsecase_GenerateTasksRekeysIDs(t *testing.T) {
	uc := newMentorUsecase(t, nil)
	ctx := context.Background()

	first, err := uc.GenerateTasks(ctx, "2", "", "")
	require.NoError(t, err)
	second, err := uc.GenerateTasks(ctx, "2", "", "")
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, "Complete UX Designer Tutorial", first[0].Title)

	m, err := uc.GetMentee(ctx, "2")
	require.NoError(t, err)
	require.Len(t, m.Tasks, 4)
	ids := map[string]bool{}
	for _, task := range m.Tasks {
		ids[task.ID] = true
	}
	assert.Len(t, ids, 4)
	assert.NotEqual(t, first[0].ID, second[0].ID)
}

func TestMentorUsecase_TaskSubmitAndReview(t *testing.T) {
	uc := newMentorUsecase(t, nil)
	ctx := context.Background()

	_, err := uc.ReviewTask(ctx, "1", "t1")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	submitted, err := uc.SubmitTask(ctx, "1", "t1", "https://github.com/alex/todo")
	require.NoError(t, err)
	assert.Equal(t, model.TaskReview, submitted.Status)

	reviewed, err := uc.ReviewTask(ctx, "1", "t1")
	require.NoError(t, err)
	assert.Equal(t, model.TaskCompleted, reviewed.Status)
	assert.Equal(t, gateway.FallbackFeedback(), reviewed.Feedback)
}

func TestMentorUsecase_AddAndDeleteTask(t *testing.T) {
	uc := newMentorUsecase(t, nil)
	ctx := context.Background()

	task, err := uc.AddTask(ctx, "2", "Wireframes", "Sketch the onboarding flow", "Nov 2")
	require.NoError(t, err)
	assert.Equal(t, model.TaskPending, task.Status)

	require.NoError(t, uc.DeleteTask(ctx, "2", task.ID))
	assert.ErrorIs(t, uc.DeleteTask(ctx, "2", task.ID), repository.ErrNotFound)

	_, err = uc.AddTask(ctx, "nope", "x", "", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMentorUsecase_GenerateTasksDefaultsMissingStatus(t *testing.T) {
	gen := cannedGenerator{json: `[
		{"id":"a","title":"Audit bundle size","description":"d","dueDate":"Nov 1"},
		{"id":"b","title":"Write ADR","description":"d","dueDate":"Nov 3","status":"review"}
	]`}
	uc := NewMentorUsecase(
		repository.NewMemoryMentorRepository(),
		repository.NewMemoryMenteeRepository(),
		repository.NewMemoryConnectionLog(),
		gateway.New(gen, logger.NewNop()),
		nil,
		logger.NewTest(t),
	)
	require.NoError(t, uc.Seed(context.Background()))

	tasks, err := uc.GenerateTasks(context.Background(), "1", "Performance", "Advanced")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, model.TaskPending, tasks[0].Status)
	assert.Equal(t, model.TaskReview, tasks[1].Status)
	assert.NotEqual(t, "a", tasks[0].ID)
}
