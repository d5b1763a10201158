package model

import (
	"fmt"
	"net/url"
	"time"
)

type Mentee struct {
	ID          string        `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name        string        `json:"name"`
	Title       string        `json:"title"`
	AvatarURL   string        `json:"avatarUrl"`
	Progress    int           `json:"progress"`
	NextSession string        `json:"nextSession"`
	Status      string        `gorm:"type:varchar(20)" json:"status"` // active, paused
	Roadmap     []RoadmapStep `gorm:"serializer:json;type:jsonb" json:"roadmap"`
	Tasks       []Task        `gorm:"foreignKey:MenteeID" json:"tasks"`
	CreatedAt   time.Time     `json:"-"`
	UpdatedAt   time.Time     `json:"-"`
}

func (m *Mentee) TableName() string {
	return "mentees"
}

// MenteeRoster is the seeded mentor co-pilot client list.
func MenteeRoster() []Mentee {
	return []Mentee{
		{
			ID:          "1",
			Name:        "Alex Rivera",
			Title:       "Frontend Developer",
			AvatarURL:   "https://picsum.photos/200/200?random=12",
			Progress:    65,
			NextSession: "Oct 24, 2:00 PM",
			Status:      "active",
			Roadmap: []RoadmapStep{
				{ID: "r1", Title: "Master React Hooks", Description: "Deep dive into useEffect and useMemo", Duration: "1 week", Status: StepCompleted, Type: StepSkill},
				{ID: "r2", Title: "Build Portfolio", Description: "Create personal site", Duration: "2 weeks", Status: StepInProgress, Type: StepProject},
			},
			Tasks: []Task{
				{ID: "t1", MenteeID: "1", Title: "Refactor Todo App", Description: "Use Redux Toolkit", DueDate: "Oct 25", Status: TaskPending},
				{ID: "t2", MenteeID: "1", Title: `Read "Clean Code"`, Description: "Chapter 1-3", DueDate: "Oct 28", Status: TaskPending},
			},
		},
		{
			ID:          "2",
			Name:        "Sarah Jenkins",
			Title:       "UX Designer",
			AvatarURL:   "https://picsum.photos/200/200?random=13",
			Progress:    40,
			NextSession: "Oct 26, 10:00 AM",
			Status:      "active",
			Roadmap:     []RoadmapStep{},
			Tasks:       []Task{},
		},
	}
}

// NewMenteeFromConnection builds the client entry created when someone
// connects with a mentor. index is the position in the connection log.
func NewMenteeFromConnection(index int64, c Connection) Mentee {
	return Mentee{
		ID:          fmt.Sprintf("new-%d", index),
		Name:        c.MenteeName,
		Title:       "Senior Frontend Engineer",
		AvatarURL:   "https://ui-avatars.com/api/?name=" + url.QueryEscape(c.MenteeName) + "&background=6366f1&color=fff",
		NextSession: "Not Scheduled",
		Status:      "active",
		Roadmap:     []RoadmapStep{},
		Tasks:       []Task{},
	}
}
