package handler

import (
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/profile"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobMatchHandler struct {
	uc usecase.JobMatchUsecase
}

func NewJobMatchHandler(uc usecase.JobMatchUsecase) *JobMatchHandler {
	return &JobMatchHandler{uc: uc}
}

func (h *JobMatchHandler) Analyze(c fiber.Ctx) error {
	var req dto.JobMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	if err := getValidator().Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", validationDetails(err), err)
	}

	resume := profile.UserProfile{
		Skills:     req.Resume.Skills,
		Headline:   req.Resume.Headline,
		Bio:        req.Resume.Bio,
		ResumeText: req.Resume.ResumeText,
		Country:    req.Resume.Country,
		Preferences: profile.Preferences{
			RemotePreference: req.Resume.RemotePreference,
			JobTypes:         req.Resume.JobTypes,
		},
	}

	res, err := h.uc.Analyze(c.Context(), resume, req.Job)
	if err != nil {
		return mapJobMatchUsecaseError(err)
	}

	out := dto.JobMatchResponse{AIEnabled: res.Analysis != nil, LocalMatch: res.Local}
	if res.Analysis != nil {
		out.Analysis = res.Analysis
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapJobMatchUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume and job title are required", nil, err)
	case errors.Is(err, usecase.ErrUpstream):
		return middleware.NewAppError(fiber.StatusBadGateway, "Job match analysis failed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
