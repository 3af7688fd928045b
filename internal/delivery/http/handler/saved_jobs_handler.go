package handler

import (
	"errors"
	"strings"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SavedJobsHandler struct {
	uc usecase.SavedJobsUsecase
}

func NewSavedJobsHandler(uc usecase.SavedJobsUsecase) *SavedJobsHandler {
	return &SavedJobsHandler{uc: uc}
}

func (h *SavedJobsHandler) List(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapSavedJobsUsecaseError(err)
	}

	out := make([]dto.SavedJobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toSavedJobResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *SavedJobsHandler) Save(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.SaveJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	if err := getValidator().Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", validationDetails(err), err)
	}

	saved, err := h.uc.Save(c.Context(), userID, usecase.SaveJobInput{Job: req.Job, Notes: req.Notes})
	if err != nil {
		return mapSavedJobsUsecaseError(err)
	}
	return response.Created(c, "Job saved", toSavedJobResponse(saved))
}

func (h *SavedJobsHandler) Remove(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	externalID := strings.TrimSpace(c.Query("external_id"))
	if externalID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "external_id is required", nil, nil)
	}

	if err := h.uc.Remove(c.Context(), userID, externalID); err != nil {
		return mapSavedJobsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job removed", nil)
}

func toSavedJobResponse(s repository.SavedJob) dto.SavedJobResponse {
	return dto.SavedJobResponse{
		ID:         s.ID,
		ExternalID: s.Job.ExternalID,
		Notes:      s.Notes,
		SavedAt:    s.SavedAt,
		Job:        s.Job,
	}
}

func mapSavedJobsUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Job already saved", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Saved job not found", nil, err)
	case errors.Is(err, usecase.ErrUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Saved jobs are unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
