package model

import "time"

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskReview    TaskStatus = "review"
	TaskCompleted TaskStatus = "completed"
)

// Task is a mentor-assigned unit of work. The JSON form is what the
// generative model is asked to produce; the gorm columns back the mentee store.
type Task struct {
	ID          string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	MenteeID    string     `gorm:"type:varchar(64);index" json:"-"`
	Title       string     `json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     string     `gorm:"type:varchar(50)" json:"dueDate"`
	Status      TaskStatus `gorm:"type:varchar(20)" json:"status"`
	Feedback    string     `gorm:"type:text" json:"feedback,omitempty"`
	Submission  string     `gorm:"type:text" json:"submission,omitempty"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

func (t *Task) TableName() string {
	return "mentee_tasks"
}
