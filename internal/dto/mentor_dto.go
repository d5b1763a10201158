package dto

type ConnectionRequest struct {
	MenteeName string `json:"menteeName"`
}

type GenerateTasksRequest struct {
	FocusArea  string `json:"focusArea"`
	Difficulty string `json:"difficulty"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

type SubmitTaskRequest struct {
	Submission string `json:"submission"`
}
