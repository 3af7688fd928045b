package v1

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs wires /jobs and /internships. /jobs/recommendations must be
// registered before /jobs/:id.
func RegisterJobs(r fiber.Router, h Handlers, auth *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	if h.Jobs != nil {
		r.Get("/jobs", auth.Optional(), h.Jobs.HandleSearchJobs)
	}
	if h.Recommendations != nil {
		r.Get("/jobs/recommendations", auth.Middleware(), h.Recommendations.GetRecommendations)
	}
	if h.JobDetail != nil {
		r.Get("/jobs/:id", h.JobDetail.GetJob)
	}
	if h.Internships != nil {
		r.Get("/internships", h.Internships.HandleSearchInternships)
	}
}

func RegisterSavedJobs(r fiber.Router, h *handler.SavedJobsHandler, auth *middleware.AuthMiddleware) {
	if r == nil || h == nil {
		return
	}
	r.Get("/saved-jobs", auth.Middleware(), h.List)
	r.Post("/saved-jobs", auth.Middleware(), h.Save)
	r.Delete("/saved-jobs", auth.Middleware(), h.Remove)
}

func RegisterAI(r fiber.Router, h *handler.JobMatchHandler) {
	if r == nil || h == nil {
		return
	}
	r.Post("/ai/job-match", h.Analyze)
}
