package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/fadilmartias/fairfound-coach/internal/model"
	"gorm.io/gorm"
)

type MenteeRepository struct {
	db *gorm.DB
}

func NewMenteeRepository(db *gorm.DB) *MenteeRepository {
	return &MenteeRepository{db}
}

func (r *MenteeRepository) ListMentees(ctx context.Context) ([]model.Mentee, error) {
	var mentees []model.Mentee
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Order("created_at").
		Find(&mentees).Error
	return mentees, err
}

func (r *MenteeRepository) FindMentee(ctx context.Context, id string) (*model.Mentee, error) {
	var m model.Mentee
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &m, err
}

// CreateMentee inserts the mentee and its tasks. An existing id is left as is.
func (r *MenteeRepository) CreateMentee(ctx context.Context, m *model.Mentee) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Mentee{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MenteeRepository) AppendTasks(ctx context.Context, menteeID string, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	for i := range tasks {
		tasks[i].MenteeID = menteeID
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

func (r *MenteeRepository) FindTask(ctx context.Context, menteeID, taskID string) (*model.Task, error) {
	var t model.Task
	err := r.db.WithContext(ctx).First(&t, "id = ? AND mentee_id = ?", taskID, menteeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &t, err
}

func (r *MenteeRepository) UpdateTask(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *MenteeRepository) DeleteTask(ctx context.Context, menteeID, taskID string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ? AND mentee_id = ?", taskID, menteeID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MemoryMenteeRepository preserves insertion order for mentees and tasks.
type MemoryMenteeRepository struct {
	mu      sync.RWMutex
	mentees []*model.Mentee
}

func NewMemoryMenteeRepository() *MemoryMenteeRepository {
	return &MemoryMenteeRepository{}
}

func (r *MemoryMenteeRepository) find(id string) *model.Mentee {
	for _, m := range r.mentees {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func copyMentee(m *model.Mentee) model.Mentee {
	out := *m
	out.Roadmap = append([]model.RoadmapStep{}, m.Roadmap...)
	out.Tasks = append([]model.Task{}, m.Tasks...)
	return out
}

func (r *MemoryMenteeRepository) ListMentees(ctx context.Context) ([]model.Mentee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Mentee, 0, len(r.mentees))
	for _, m := range r.mentees {
		out = append(out, copyMentee(m))
	}
	return out, nil
}

func (r *MemoryMenteeRepository) FindMentee(ctx context.Context, id string) (*model.Mentee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m := r.find(id)
	if m == nil {
		return nil, ErrNotFound
	}
	out := copyMentee(m)
	return &out, nil
}

func (r *MemoryMenteeRepository) CreateMentee(ctx context.Context, m *model.Mentee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.find(m.ID) != nil {
		return nil
	}
	stored := copyMentee(m)
	for i := range stored.Tasks {
		stored.Tasks[i].MenteeID = m.ID
	}
	r.mentees = append(r.mentees, &stored)
	return nil
}

func (r *MemoryMenteeRepository) AppendTasks(ctx context.Context, menteeID string, tasks []model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.find(menteeID)
	if m == nil {
		return ErrNotFound
	}
	for _, t := range tasks {
		t.MenteeID = menteeID
		m.Tasks = append(m.Tasks, t)
	}
	return nil
}

func (r *MemoryMenteeRepository) FindTask(ctx context.Context, menteeID, taskID string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m := r.find(menteeID)
	if m == nil {
		return nil, ErrNotFound
	}
	for _, t := range m.Tasks {
		if t.ID == taskID {
			out := t
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryMenteeRepository) UpdateTask(ctx context.Context, t *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.find(t.MenteeID)
	if m == nil {
		return ErrNotFound
	}
	for i := range m.Tasks {
		if m.Tasks[i].ID == t.ID {
			m.Tasks[i] = *t
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryMenteeRepository) DeleteTask(ctx context.Context, menteeID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.find(menteeID)
	if m == nil {
		return ErrNotFound
	}
	for i := range m.Tasks {
		if m.Tasks[i].ID == taskID {
			m.Tasks = append(m.Tasks[:i], m.Tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
