package handler

import (
	"errors"

	"github.com/fadilmartias/fairfound-coach/internal/gateway"
	"github.com/fadilmartias/fairfound-coach/internal/pipeline"
	"github.com/fadilmartias/fairfound-coach/internal/repository"
	"github.com/fadilmartias/fairfound-coach/internal/usecase"
	"github.com/fadilmartias/fairfound-coach/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// fail maps domain errors onto HTTP statuses and writes the error envelope.
func fail(c *fiber.Ctx, err error, message string) error {
	code := fiber.StatusInternalServerError
	var (
		details   any
		errorCode string
	)

	var ge *gateway.GatewayError
	var fe *util.FormError
	switch {
	case errors.Is(err, pipeline.ErrSessionNotFound):
		code, message = fiber.StatusNotFound, "session not found"
	case errors.Is(err, repository.ErrNotFound):
		code, message = fiber.StatusNotFound, "resource not found"
	case errors.Is(err, usecase.ErrStepNotFound):
		code, message = fiber.StatusNotFound, "roadmap step not found"
	case errors.Is(err, usecase.ErrNoProfile):
		code, message = fiber.StatusConflict, "submit a profile first"
	case errors.Is(err, usecase.ErrInvalidStatus):
		code = fiber.StatusUnprocessableEntity
	case errors.As(err, &fe):
		code, message, details = fiber.StatusUnprocessableEntity, fe.Message, fe.Errors
	case errors.As(err, &ge):
		code, errorCode = fiber.StatusBadGateway, string(ge.Kind)
		details = fiber.Map{"operation": ge.Op, "retryable": ge.Retryable}
	}

	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:      code,
		ErrorCode: errorCode,
		Message:   message,
		Details:   details,
	}, err)
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return util.FieldError("invalid request body", "body", err.Error())
	}
	return nil
}

// param copies a route parameter out of fasthttp's reused request buffer.
// Values handed to the use cases outlive the request in the stores.
func param(c *fiber.Ctx, name string) string {
	return utils.CopyString(c.Params(name))
}
