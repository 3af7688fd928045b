package handler

import (
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationsHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationsHandler(uc usecase.RecommendationUsecase) *RecommendationsHandler {
	return &RecommendationsHandler{uc: uc}
}

func (h *RecommendationsHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	res, err := h.uc.GetRecommendations(c.Context(), userID, parseQueryInt(c, "limit", 10))
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	out := dto.RecommendationResponse{
		Recommendations: make([]dto.RecommendationItem, 0, len(res.Items)),
		ProfileCompleteness: dto.ProfileCompletenessResponse{
			HasResume:      res.Completeness.HasResume,
			HasHeadline:    res.Completeness.HasHeadline,
			HasBio:         res.Completeness.HasBio,
			HasPreferences: res.Completeness.HasPreferences,
		},
	}
	for _, it := range res.Items {
		out.Recommendations = append(out.Recommendations, dto.RecommendationItem{
			Job:            it.Job,
			MatchScore:     it.Result.Score,
			MatchingSkills: it.Result.MatchingSkills,
			MissingSkills:  it.Result.MissingSkills,
			Breakdown:      it.Result.Breakdown,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapRecommendationUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Recommendations are unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
