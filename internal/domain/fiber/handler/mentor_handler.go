package handler

import (
	"strings"
	"time"

	"github.com/fadilmartias/fairfound-coach/internal/dto"
	"github.com/fadilmartias/fairfound-coach/internal/middleware"
	"github.com/fadilmartias/fairfound-coach/internal/response"
	"github.com/fadilmartias/fairfound-coach/internal/usecase"
	"github.com/fadilmartias/fairfound-coach/internal/util"
	"github.com/gofiber/fiber/v2"
)

type MentorHandler struct {
	mentors  *usecase.MentorUsecase
	sessions *usecase.CoachingUsecase
}

func NewMentorHandler(mentors *usecase.MentorUsecase, sessions *usecase.CoachingUsecase) *MentorHandler {
	return &MentorHandler{mentors: mentors, sessions: sessions}
}

func (h *MentorHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/mentors", h.ListMentors)
	r.Get("/sessions/:id/mentors/recommended", h.Recommended)
	r.Post("/mentors/:id/connections", h.Connect)
	r.Get("/connections", h.ListConnections)

	r.Get("/mentees", h.ListMentees)
	r.Get("/mentees/:id", h.GetMentee)
	r.Post("/mentees/:id/tasks/generate", middleware.ResourceRateLimiter(10, time.Minute), h.GenerateTasks)
	r.Post("/mentees/:id/tasks", h.AddTask)
	r.Delete("/mentees/:id/tasks/:taskId", h.DeleteTask)
	r.Post("/mentees/:id/tasks/:taskId/submit", h.SubmitTask)
	r.Post("/mentees/:id/tasks/:taskId/review", middleware.ResourceRateLimiter(10, time.Minute), h.ReviewTask)
}

func (h *MentorHandler) ListMentors(c *fiber.Ctx) error {
	list, err := h.mentors.ListMentors(c.UserContext())
	if err != nil {
		return fail(c, err, "failed to list mentors")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Code: fiber.StatusOK, Message: "Success list mentors", Data: list})
}

// Recommended ranks mentors against the session's current skill gaps.
func (h *MentorHandler) Recommended(c *fiber.Ctx) error {
	s, err := h.sessions.GetSession(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err, "failed to get session")
	}
	var gaps []string
	if s.Analysis != nil {
		gaps = s.Analysis.SkillGaps
	}
	list, err := h.mentors.RecommendMentors(c.UserContext(), gaps, c.QueryInt("limit", 3))
	if err != nil {
		return fail(c, err, "failed to recommend mentors")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success recommend mentors",
		Data:    list,
		Meta:    fiber.Map{"skillGaps": gaps},
	})
}

func (h *MentorHandler) Connect(c *fiber.Ctx) error {
	var req dto.ConnectionRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err, "invalid request body")
	}
	if strings.TrimSpace(req.MenteeName) == "" {
		return fail(c, util.FieldError("invalid connection request", "menteeName", "menteeName is required"), "")
	}
	conn, err := h.mentors.Connect(c.UserContext(), param(c, "id"), strings.TrimSpace(req.MenteeName))
	if err != nil {
		return fail(c, err, "failed to connect")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Code: fiber.StatusCreated, Message: "Connection recorded", Data: conn})
}

func (h *MentorHandler) ListConnections(c *fiber.Ctx) error {
	list, page, err := h.mentors.ListConnections(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("page_size", response.DefaultPageSize))
	if err != nil {
		return fail(c, err, "failed to list connections")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success list connections",
		Data:       list,
		Pagination: page,
	})
}

func (h *MentorHandler) ListMentees(c *fiber.Ctx) error {
	list, err := h.mentors.ListMentees(c.UserContext())
	if err != nil {
		return fail(c, err, "failed to list mentees")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Code: fiber.StatusOK, Message: "Success list mentees", Data: list})
}

func (h *MentorHandler) GetMentee(c *fiber.Ctx) error {
	m, err := h.mentors.GetMentee(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err, "failed to get mentee")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Code: fiber.StatusOK, Message: "Success get mentee", Data: m})
}

func (h *MentorHandler) GenerateTasks(c *fiber.Ctx) error {
	var req dto.GenerateTasksRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return fail(c, err, "invalid request body")
		}
	}
	tasks, err := h.mentors.GenerateTasks(c.UserContext(), param(c, "id"), req.FocusArea, req.Difficulty)
	if err != nil {
		return fail(c, err, "failed to generate tasks")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Code: fiber.StatusCreated, Message: "Tasks generated", Data: tasks})
}

func (h *MentorHandler) AddTask(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err, "invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return fail(c, util.FieldError("invalid task", "title", "title is required"), "")
	}
	t, err := h.mentors.AddTask(c.UserContext(), param(c, "id"), req.Title, req.Description, req.DueDate)
	if err != nil {
		return fail(c, err, "failed to add task")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Code: fiber.StatusCreated, Message: "Task added", Data: t})
}

func (h *MentorHandler) DeleteTask(c *fiber.Ctx) error {
	if err := h.mentors.DeleteTask(c.UserContext(), param(c, "id"), param(c, "taskId")); err != nil {
		return fail(c, err, "failed to delete task")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Code: fiber.StatusOK, Message: "Task deleted"})
}

func (h *MentorHandler) SubmitTask(c *fiber.Ctx) error {
	var req dto.SubmitTaskRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err, "invalid request body")
	}
	if strings.TrimSpace(req.Submission) == "" {
		return fail(c, util.FieldError("invalid submission", "submission", "submission is required"), "")
	}
	t, err := h.mentors.SubmitTask(c.UserContext(), param(c, "id"), param(c, "taskId"), req.Submission)
	if err != nil {
		return fail(c, err, "failed to submit task")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Code: fiber.StatusOK, Message: "Task submitted for review", Data: t})
}

func (h *MentorHandler) ReviewTask(c *fiber.Ctx) error {
	t, err := h.mentors.ReviewTask(c.UserContext(), param(c, "id"), param(c, "taskId"))
	if err != nil {
		return fail(c, err, "failed to review task")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Code: fiber.StatusOK, Message: "Task reviewed", Data: t})
}
