package handler

import (
	"io"
	"time"

	"github.com/fadilmartias/fairfound-coach/internal/dto"
	"github.com/fadilmartias/fairfound-coach/internal/middleware"
	"github.com/fadilmartias/fairfound-coach/internal/usecase"
	"github.com/fadilmartias/fairfound-coach/internal/util"
	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	uc *usecase.CoachingUsecase
}

func NewSessionHandler(uc *usecase.CoachingUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/sessions", h.Create)
	r.Get("/sessions/:id", h.Get)
	r.Put("/sessions/:id/profile", middleware.ResourceRateLimiter(5, 10*time.Second), h.SubmitProfile)
	r.Patch("/sessions/:id/profile", h.EditProfile)
	r.Post("/sessions/:id/resume", middleware.ResourceRateLimiter(5, time.Minute), h.ImportResume)
	r.Patch("/sessions/:id/roadmap/:stepId", h.UpdateStep)
	r.Post("/sessions/:id/proposal", middleware.ResourceRateLimiter(10, time.Minute), h.Proposal)
	r.Post("/sessions/:id/portfolio", middleware.ResourceRateLimiter(10, time.Minute), h.Portfolio)
	r.Get("/sessions/:id/notifications", h.Notifications)
}

func (h *SessionHandler) Create(c *fiber.Ctx) error {
	s, err := h.uc.CreateSession(c.UserContext())
	if err != nil {
		return fail(c, err, "failed to create session")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Session created",
		Data:    s,
	})
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	s, err := h.uc.GetSession(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err, "failed to get session")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get session",
		Data:    s,
	})
}

func (h *SessionHandler) profile(c *fiber.Ctx) (dto.ProfileRequest, error) {
	var req dto.ProfileRequest
	if err := parseBody(c, &req); err != nil {
		return req, err
	}
	if errs := req.Validate(); len(errs) > 0 {
		return req, util.NewFormError("invalid profile", errs)
	}
	return req, nil
}

// SubmitProfile starts the analysis pipeline and answers immediately.
func (h *SessionHandler) SubmitProfile(c *fiber.Ctx) error {
	req, err := h.profile(c)
	if err != nil {
		return fail(c, err, "invalid profile")
	}
	s, err := h.uc.SubmitProfile(c.UserContext(), param(c, "id"), req.ToModel())
	if err != nil {
		return fail(c, err, "failed to submit profile")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Success submit profile",
		Data:    fiber.Map{"id": s.ID, "status": s.State, "generation": s.Generation},
	})
}

func (h *SessionHandler) EditProfile(c *fiber.Ctx) error {
	req, err := h.profile(c)
	if err != nil {
		return fail(c, err, "invalid profile")
	}
	s, err := h.uc.EditProfile(c.UserContext(), param(c, "id"), req.ToModel())
	if err != nil {
		return fail(c, err, "failed to update profile")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Profile updated",
		Data:    s,
	})
}

const maxResumeSize = 5 * 1024 * 1024

// ImportResume reads an uploaded resume into the profile bio.
func (h *SessionHandler) ImportResume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return fail(c, util.FieldError("resume file is required", "resume", err.Error()), "")
	}
	if file.Size > maxResumeSize {
		return fail(c, util.FieldError("resume file size is too large (max 5MB)", "resume", "too large"), "")
	}

	f, err := file.Open()
	if err != nil {
		return fail(c, err, "cannot read resume file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fail(c, err, "cannot read resume file")
	}

	text, err := util.ExtractResumeText(file.Filename, data)
	if err != nil {
		return fail(c, util.FieldError("failed to extract resume text", "resume", err.Error()), "")
	}
	s, err := h.uc.ImportResume(c.UserContext(), param(c, "id"), text)
	if err != nil {
		return fail(c, err, "failed to import resume")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Resume imported",
		Data:    s.Profile,
	})
}

func (h *SessionHandler) UpdateStep(c *fiber.Ctx) error {
	var req dto.StepStatusRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err, "invalid request body")
	}
	s, err := h.uc.UpdateStepStatus(c.UserContext(), param(c, "id"), param(c, "stepId"), req.Status)
	if err != nil {
		return fail(c, err, "status must be one of pending, in-progress, completed")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Roadmap updated",
		Data:    s.Roadmap,
	})
}

func (h *SessionHandler) Proposal(c *fiber.Ctx) error {
	var req dto.ProposalRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err, "invalid request body")
	}
	if req.JobDescription == "" {
		return fail(c, util.FieldError("invalid proposal request", "jobDescription", "jobDescription is required"), "")
	}
	text, err := h.uc.GenerateProposal(c.UserContext(), param(c, "id"), req.JobDescription, req.Tone, req.ClientName)
	if err != nil {
		return fail(c, err, "failed to generate proposal")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success generate proposal",
		Data:    dto.ProposalResponse{Proposal: text},
	})
}

func (h *SessionHandler) Portfolio(c *fiber.Ctx) error {
	content, err := h.uc.EnhancePortfolio(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err, "failed to enhance portfolio")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success enhance portfolio",
		Data:    content,
	})
}

func (h *SessionHandler) Notifications(c *fiber.Ctx) error {
	list, err := h.uc.Notifications(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err, "failed to list notifications")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success list notifications",
		Data:    list,
	})
}
