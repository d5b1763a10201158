package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fadilmartias/fairfound-coach/internal/gateway"
	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/fadilmartias/fairfound-coach/internal/repository"
	"github.com/fadilmartias/fairfound-coach/internal/response"
	"github.com/fadilmartias/fairfound-coach/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"golang.org/x/sync/errgroup"
)

const DefaultDifficulty = "Intermediate"

type MentorStore interface {
	SearchMentors(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.Mentor, error)
	UpsertMentor(ctx context.Context, mentor *model.Mentor) error
	FindMentorByID(ctx context.Context, id string) (*model.Mentor, error)
	GetMentors(ctx context.Context) ([]model.Mentor, error)
}

type MenteeStore interface {
	ListMentees(ctx context.Context) ([]model.Mentee, error)
	FindMentee(ctx context.Context, id string) (*model.Mentee, error)
	CreateMentee(ctx context.Context, m *model.Mentee) error
	AppendTasks(ctx context.Context, menteeID string, tasks []model.Task) error
	FindTask(ctx context.Context, menteeID, taskID string) (*model.Task, error)
	UpdateTask(ctx context.Context, t *model.Task) error
	DeleteTask(ctx context.Context, menteeID, taskID string) error
}

type MentorUsecase struct {
	mentors     MentorStore
	mentees     MenteeStore
	connections repository.ConnectionLog
	gateway     gateway.Interface
	embedder    service.EmbeddingService
	log         logger.Logger
}

// NewMentorUsecase wires the marketplace. embedder may be nil, in which case
// recommendations rank by specialty overlap.
func NewMentorUsecase(mentors MentorStore, mentees MenteeStore, connections repository.ConnectionLog, gw gateway.Interface, embedder service.EmbeddingService, log logger.Logger) *MentorUsecase {
	return &MentorUsecase{
		mentors:     mentors,
		mentees:     mentees,
		connections: connections,
		gateway:     gw,
		embedder:    embedder,
		log:         log.With(logger.Fields{"component": "mentor"}),
	}
}

// Seed loads the mentor catalogue and mentee roster. When an embedder is
// configured, mentors missing an embedding get one from their specialties.
func (uc *MentorUsecase) Seed(ctx context.Context) error {
	catalog := model.MentorCatalog()
	for i := range catalog {
		existing, err := uc.mentors.FindMentorByID(ctx, catalog[i].ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("find mentor %s: %w", catalog[i].ID, err)
		}
		if existing != nil {
			catalog[i].Embedding = existing.Embedding
		}
	}

	if uc.embedder != nil {
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(3)
		for i := range catalog {
			if len(catalog[i].Embedding.Slice()) > 0 {
				continue
			}
			m := &catalog[i]
			g.Go(func() error {
				emb, err := uc.embedder.GenerateEmbedding(gCtx, strings.Join(m.Specialties, ", "))
				if err != nil {
					// recommendations fall back to overlap for this mentor
					uc.log.WithError(err).Warn("mentor embedding failed", logger.Fields{"mentor_id": m.ID})
					return nil
				}
				m.Embedding = pgvector.NewVector(emb)
				return nil
			})
		}
		_ = g.Wait()
	}

	for i := range catalog {
		if err := uc.mentors.UpsertMentor(ctx, &catalog[i]); err != nil {
			return fmt.Errorf("upsert mentor %s: %w", catalog[i].ID, err)
		}
	}

	for _, m := range model.MenteeRoster() {
		if err := uc.mentees.CreateMentee(ctx, &m); err != nil {
			return fmt.Errorf("create mentee %s: %w", m.ID, err)
		}
	}
	return nil
}

func (uc *MentorUsecase) ListMentors(ctx context.Context) ([]model.Mentor, error) {
	return uc.mentors.GetMentors(ctx)
}

// RecommendMentors ranks mentors against skill gaps, by embedding distance
// when possible and by specialty overlap otherwise.
func (uc *MentorUsecase) RecommendMentors(ctx context.Context, gaps []string, limit int) ([]model.Mentor, error) {
	if limit <= 0 {
		limit = 3
	}
	if uc.embedder != nil && len(gaps) > 0 {
		emb, err := uc.embedder.GenerateEmbedding(ctx, strings.Join(gaps, ", "))
		if err == nil {
			found, err := uc.mentors.SearchMentors(ctx, pgvector.NewVector(emb), limit)
			if err == nil && len(found) > 0 {
				return found, nil
			}
			if err != nil {
				uc.log.WithError(err).Warn("vector search failed, ranking by overlap", nil)
			}
		} else {
			uc.log.WithError(err).Warn("gap embedding failed, ranking by overlap", nil)
		}
	}

	all, err := uc.mentors.GetMentors(ctx)
	if err != nil {
		return nil, err
	}
	return rankByOverlap(all, gaps, limit), nil
}

func rankByOverlap(mentors []model.Mentor, gaps []string, limit int) []model.Mentor {
	wanted := map[string]bool{}
	for _, g := range gaps {
		wanted[strings.ToLower(strings.TrimSpace(g))] = true
	}
	overlap := func(m model.Mentor) int {
		n := 0
		for _, s := range m.Specialties {
			if wanted[strings.ToLower(s)] {
				n++
			}
		}
		return n
	}

	ranked := append([]model.Mentor{}, mentors...)
	sort.SliceStable(ranked, func(i, j int) bool {
		oi, oj := overlap(ranked[i]), overlap(ranked[j])
		if oi != oj {
			return oi > oj
		}
		if ranked[i].Available != ranked[j].Available {
			return ranked[i].Available
		}
		return ranked[i].Rating > ranked[j].Rating
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Connect appends a connection record for the mentor and registers the
// mentee as a new client.
func (uc *MentorUsecase) Connect(ctx context.Context, mentorID, menteeName string) (model.Connection, error) {
	if _, err := uc.mentors.FindMentorByID(ctx, mentorID); err != nil {
		return model.Connection{}, err
	}
	c := model.Connection{
		MentorID:   mentorID,
		MenteeName: menteeName,
		Date:       time.Now().UTC().Format(time.RFC3339Nano),
		Status:     "active",
	}
	idx, err := uc.connections.Append(ctx, c)
	if err != nil {
		return model.Connection{}, err
	}

	mentee := model.NewMenteeFromConnection(idx, c)
	if err := uc.mentees.CreateMentee(ctx, &mentee); err != nil {
		return c, fmt.Errorf("register mentee: %w", err)
	}
	uc.log.Info("mentor connection recorded", logger.Fields{"mentor_id": mentorID, "mentee_id": mentee.ID})
	return c, nil
}

func (uc *MentorUsecase) ListConnections(ctx context.Context, page, size int) ([]model.Connection, *response.Pagination, error) {
	page, size, offset := response.NormalizePage(page, size)
	list, total, err := uc.connections.List(ctx, offset, size)
	if err != nil {
		return nil, nil, err
	}
	return list, response.NewPagination(page, size, len(list), total), nil
}

func (uc *MentorUsecase) ListMentees(ctx context.Context) ([]model.Mentee, error) {
	return uc.mentees.ListMentees(ctx)
}

func (uc *MentorUsecase) GetMentee(ctx context.Context, id string) (*model.Mentee, error) {
	return uc.mentees.FindMentee(ctx, id)
}

// GenerateTasks asks the gateway for new tasks and appends them. focusArea
// defaults to the mentee's title. Generated ids are replaced so they stay
// unique within the mentee.
func (uc *MentorUsecase) GenerateTasks(ctx context.Context, menteeID, focusArea, difficulty string) ([]model.Task, error) {
	mentee, err := uc.mentees.FindMentee(ctx, menteeID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(focusArea) == "" {
		focusArea = mentee.Title
	}
	if strings.TrimSpace(difficulty) == "" {
		difficulty = DefaultDifficulty
	}

	tasks, err := uc.gateway.GenerateMenteeTasks(ctx, mentee.Name, focusArea, difficulty)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].ID = uuid.NewString()
		tasks[i].MenteeID = menteeID
		if tasks[i].Status == "" {
			tasks[i].Status = model.TaskPending
		}
	}
	if err := uc.mentees.AppendTasks(ctx, menteeID, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (uc *MentorUsecase) AddTask(ctx context.Context, menteeID, title, description, dueDate string) (*model.Task, error) {
	if _, err := uc.mentees.FindMentee(ctx, menteeID); err != nil {
		return nil, err
	}
	t := model.Task{
		ID:          uuid.NewString(),
		MenteeID:    menteeID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      model.TaskPending,
	}
	if err := uc.mentees.AppendTasks(ctx, menteeID, []model.Task{t}); err != nil {
		return nil, err
	}
	return &t, nil
}

func (uc *MentorUsecase) DeleteTask(ctx context.Context, menteeID, taskID string) error {
	return uc.mentees.DeleteTask(ctx, menteeID, taskID)
}

// SubmitTask stores the mentee's work and moves the task to review.
func (uc *MentorUsecase) SubmitTask(ctx context.Context, menteeID, taskID, submission string) (*model.Task, error) {
	t, err := uc.mentees.FindTask(ctx, menteeID, taskID)
	if err != nil {
		return nil, err
	}
	t.MenteeID = menteeID
	t.Submission = submission
	t.Status = model.TaskReview
	if err := uc.mentees.UpdateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ReviewTask generates feedback for the submission and completes the task.
func (uc *MentorUsecase) ReviewTask(ctx context.Context, menteeID, taskID string) (*model.Task, error) {
	t, err := uc.mentees.FindTask(ctx, menteeID, taskID)
	if err != nil {
		return nil, err
	}
	if t.Status != model.TaskReview {
		return nil, fmt.Errorf("%w: task is %s, expected review", ErrInvalidStatus, t.Status)
	}
	t.MenteeID = menteeID
	t.Feedback = uc.gateway.GenerateFeedback(ctx, t.Submission, t.Title)
	t.Status = model.TaskCompleted
	if err := uc.mentees.UpdateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
