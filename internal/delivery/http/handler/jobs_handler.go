package handler

import (
	"context"
	"errors"
	"log"
	"strings"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/domain/profile"
	"jobboard/internal/pkg/response"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const failedToFetchJobs = "Failed to fetch jobs"

type JobsHandler struct {
	uc       usecase.JobSearchUsecase
	profiles repository.ProfileRepository
	logger   *log.Logger
}

// NewJobsHandler accepts nil profiles; with_score is then ignored.
func NewJobsHandler(uc usecase.JobSearchUsecase, profiles repository.ProfileRepository, logger *log.Logger) *JobsHandler {
	return &JobsHandler{uc: uc, profiles: profiles, logger: logger}
}

func (h *JobsHandler) HandleSearchJobs(c fiber.Ctx) error {
	params := usecase.JobSearchParams{
		Query:      strings.TrimSpace(c.Query("q")),
		Country:    strings.TrimSpace(c.Query("country")),
		Category:   strings.TrimSpace(c.Query("category")),
		Type:       strings.TrimSpace(c.Query("type")),
		Experience: strings.TrimSpace(c.Query("experience")),
		Remote:     parseQueryBool(c, "remote"),
		Page:       parseQueryInt(c, "page", 1),
		Limit:      parseQueryInt(c, "limit", 20),
	}
	if parseQueryBool(c, "with_score") {
		params.Profile = h.loadProfile(c.Context(), c)
	}

	res, err := h.uc.SearchJobs(c.Context(), params)
	if err != nil {
		h.logf("[Jobs] search failed: %v", err)
		return writeJobSearchFailure(c)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toJobSearchResponse(res))
}

func (h *JobsHandler) loadProfile(ctx context.Context, c fiber.Ctx) *profile.UserProfile {
	userID, ok := currentUserID(c)
	if !ok || h.profiles == nil {
		return nil
	}
	p, err := h.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) {
			h.logf("[Jobs] profile lookup user=%s: %v", userID, err)
		}
		return nil
	}
	return &p
}

func (h *JobsHandler) logf(format string, args ...any) {
	if h != nil && h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

func writeJobSearchFailure(c fiber.Ctx) error {
	return response.Error(c, fiber.StatusInternalServerError, failedToFetchJobs, dto.JobSearchFailure{
		Jobs:         []dto.JobResponse{},
		TotalResults: 0,
		Error:        failedToFetchJobs,
	})
}

func toJobSearchResponse(res usecase.JobSearchResult) dto.JobSearchResponse {
	out := dto.JobSearchResponse{
		Jobs:         make([]dto.JobResponse, 0, len(res.Jobs)),
		TotalResults: res.TotalResults,
		Page:         res.Page,
		Limit:        res.Limit,
		TotalPages:   res.TotalPages,
		HasMore:      res.HasMore,
		Cached:       res.Cached,
	}
	for _, j := range res.Jobs {
		item := dto.JobResponse{Job: j}
		if r, ok := res.Scores[j.ExternalID]; ok {
			item.Match = &r
		}
		out.Jobs = append(out.Jobs, item)
	}
	if len(res.Breakdown) > 0 {
		out.Breakdown = make(map[string]int, len(res.Breakdown))
		for src, n := range res.Breakdown {
			out.Breakdown[string(src)] = n
		}
	}
	for _, src := range res.Failed {
		out.FailedSources = append(out.FailedSources, string(src))
	}
	return out
}
