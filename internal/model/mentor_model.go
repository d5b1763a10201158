package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type Mentor struct {
	ID          string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name        string          `json:"name"`
	Role        string          `json:"role"`
	Company     string          `json:"company"`
	ImageURL    string          `json:"imageUrl"`
	Specialties []string        `gorm:"serializer:json;type:jsonb" json:"specialties"`
	Rate        float64         `json:"rate"`
	Rating      float64         `json:"rating"`
	Available   bool            `json:"available"`
	Embedding   pgvector.Vector `gorm:"type:vector(3072)" json:"-"` // specialties embedding
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

func (m *Mentor) TableName() string {
	return "mentors"
}

func MentorCatalog() []Mentor {
	return []Mentor{
		{
			ID:          "1",
			Name:        "Elena Rostova",
			Role:        "Senior Product Designer",
			Company:     "Adobe",
			ImageURL:    "https://picsum.photos/200/200?random=1",
			Specialties: []string{"UI/UX", "Design Systems", "Figma"},
			Rate:        120,
			Rating:      4.9,
			Available:   true,
		},
		{
			ID:          "2",
			Name:        "Marcus Chen",
			Role:        "Staff Engineer",
			Company:     "Vercel",
			ImageURL:    "https://picsum.photos/200/200?random=2",
			Specialties: []string{"React", "Next.js", "System Design"},
			Rate:        150,
			Rating:      5.0,
			Available:   true,
		},
		{
			ID:          "3",
			Name:        "Sarah Jenkins",
			Role:        "Freelance Architect",
			Company:     "Self-Employed",
			ImageURL:    "https://picsum.photos/200/200?random=3",
			Specialties: []string{"Upwork Strategy", "Pricing", "Negotiation"},
			Rate:        90,
			Rating:      4.8,
			Available:   false,
		},
	}
}
