package v1

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups the /api/v1 handlers. Nil members leave their routes
// unregistered.
type Handlers struct {
	Jobs            *handler.JobsHandler
	JobDetail       *handler.JobDetailHandler
	Internships     *handler.InternshipsHandler
	Recommendations *handler.RecommendationsHandler
	SavedJobs       *handler.SavedJobsHandler
	JobMatch        *handler.JobMatchHandler
}

func Register(r fiber.Router, h Handlers, auth *middleware.AuthMiddleware) {
	if r == nil {
		return
	}
	if auth == nil {
		auth = middleware.NewAuthMiddleware(nil)
	}

	RegisterJobs(r, h, auth)
	RegisterSavedJobs(r, h.SavedJobs, auth)
	RegisterAI(r, h.JobMatch)
}
