package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/fadilmartias/fairfound-coach/internal/pipeline"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository stores pipeline sessions in Postgres.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db}
}

func (r *SessionRepository) Get(ctx context.Context, id string) (pipeline.Session, error) {
	var rec model.SessionRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pipeline.Session{}, pipeline.ErrSessionNotFound
	}
	if err != nil {
		return pipeline.Session{}, err
	}
	return fromRecord(rec), nil
}

// Save upserts the whole snapshot. created_at is only written on insert.
func (r *SessionRepository) Save(ctx context.Context, s pipeline.Session) error {
	rec := toRecord(s)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "generation", "profile", "analysis", "roadmap", "updated_at"}),
	}).Create(&rec).Error
}

func toRecord(s pipeline.Session) model.SessionRecord {
	return model.SessionRecord{
		ID:         s.ID,
		State:      string(s.State),
		Generation: s.Generation,
		Profile:    s.Profile,
		Analysis:   s.Analysis,
		Roadmap:    s.Roadmap,
	}
}

func fromRecord(rec model.SessionRecord) pipeline.Session {
	return pipeline.Session{
		ID:         rec.ID,
		State:      pipeline.State(rec.State),
		Generation: rec.Generation,
		Profile:    rec.Profile,
		Analysis:   rec.Analysis,
		Roadmap:    rec.Roadmap,
	}
}
