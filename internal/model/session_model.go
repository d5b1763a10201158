package model

import "time"

// SessionRecord persists a coaching session snapshot. Profile, analysis and
// roadmap are stored as JSON documents, replaced wholesale on every save.
type SessionRecord struct {
	ID         string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	State      string          `gorm:"type:varchar(20)" json:"state"` // empty, analyzing, ready
	Generation uint64          `json:"generation"`
	Profile    *Profile        `gorm:"serializer:json;type:jsonb" json:"profile"`
	Analysis   *AnalysisResult `gorm:"serializer:json;type:jsonb" json:"analysis"`
	Roadmap    []RoadmapStep   `gorm:"serializer:json;type:jsonb" json:"roadmap"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (s *SessionRecord) TableName() string {
	return "coaching_sessions"
}
