package handler

import (
	"log"
	"strings"

	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type InternshipsHandler struct {
	uc     usecase.InternshipUsecase
	logger *log.Logger
}

func NewInternshipsHandler(uc usecase.InternshipUsecase, logger *log.Logger) *InternshipsHandler {
	return &InternshipsHandler{uc: uc, logger: logger}
}

func (h *InternshipsHandler) HandleSearchInternships(c fiber.Ctx) error {
	res, err := h.uc.SearchInternships(c.Context(), usecase.InternshipParams{
		Query:   strings.TrimSpace(c.Query("q")),
		Country: strings.TrimSpace(c.Query("country")),
		Remote:  parseQueryBool(c, "remote"),
		Page:    parseQueryInt(c, "page", 1),
		Limit:   parseQueryInt(c, "limit", 20),
	})
	if err != nil {
		if h.logger != nil {
			h.logger.Printf("[Internships] search failed: %v", err)
		}
		return writeJobSearchFailure(c)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toJobSearchResponse(res))
}
