package repository

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type MentorRepository struct {
	db *gorm.DB
}

func NewMentorRepository(db *gorm.DB) *MentorRepository {
	return &MentorRepository{db}
}

// SearchMentors returns the topK mentors closest to embedding. Mentors
// without an embedding are skipped.
func (r *MentorRepository) SearchMentors(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.Mentor, error) {
	var mentors []model.Mentor

	// pgvector <-> operator (Euclidean distance)
	err := r.db.WithContext(ctx).Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM mentors
        WHERE embedding IS NOT NULL
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&mentors).Error

	return mentors, err
}

func (r *MentorRepository) UpsertMentor(ctx context.Context, mentor *model.Mentor) error {
	return r.db.WithContext(ctx).Save(mentor).Error
}

func (r *MentorRepository) FindMentorByID(ctx context.Context, id string) (*model.Mentor, error) {
	var m model.Mentor
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &m, err
}

func (r *MentorRepository) GetMentors(ctx context.Context) ([]model.Mentor, error) {
	var mentors []model.Mentor
	err := r.db.WithContext(ctx).Order("id").Find(&mentors).Error
	return mentors, err
}

// MemoryMentorRepository keeps the catalogue in process. Vector search is a
// linear scan over the stored embeddings.
type MemoryMentorRepository struct {
	mu      sync.RWMutex
	mentors []model.Mentor
}

func NewMemoryMentorRepository() *MemoryMentorRepository {
	return &MemoryMentorRepository{}
}

func (r *MemoryMentorRepository) SearchMentors(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.Mentor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		m    model.Mentor
		dist float64
	}
	var candidates []scored
	for _, m := range r.mentors {
		if len(m.Embedding.Slice()) == 0 {
			continue
		}
		d, ok := euclidean(m.Embedding.Slice(), embedding.Slice())
		if !ok {
			continue
		}
		candidates = append(candidates, scored{m, d})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })

	out := []model.Mentor{}
	for i := 0; i < len(candidates) && i < topK; i++ {
		out = append(out, candidates[i].m)
	}
	return out, nil
}

func (r *MemoryMentorRepository) UpsertMentor(ctx context.Context, mentor *model.Mentor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.mentors {
		if r.mentors[i].ID == mentor.ID {
			r.mentors[i] = *mentor
			return nil
		}
	}
	r.mentors = append(r.mentors, *mentor)
	sort.SliceStable(r.mentors, func(i, j int) bool { return r.mentors[i].ID < r.mentors[j].ID })
	return nil
}

func (r *MemoryMentorRepository) FindMentorByID(ctx context.Context, id string) (*model.Mentor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.mentors {
		if m.ID == id {
			out := m
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryMentorRepository) GetMentors(ctx context.Context) ([]model.Mentor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Mentor{}, r.mentors...), nil
}

func euclidean(a, b []float32) (float64, bool) {
	if len(a) != len(b) {
		return 0, false
	}
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return math.Sqrt(sum), true
}
