package handler

import (
	"errors"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobDetailHandler struct {
	uc usecase.JobDetailUsecase
}

func NewJobDetailHandler(uc usecase.JobDetailUsecase) *JobDetailHandler {
	return &JobDetailHandler{uc: uc}
}

func (h *JobDetailHandler) GetJob(c fiber.Ctx) error {
	j, err := h.uc.GetJob(c.Context(), c.Params("id"))
	if err != nil {
		return mapJobDetailUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, j)
}

func mapJobDetailUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
