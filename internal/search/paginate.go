package search

import (
	"math"

	"jobboard/internal/domain/job"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type Page struct {
	Jobs         []job.Job `json:"jobs"`
	TotalResults int       `json:"total_results"`
	Page         int       `json:"page"`
	Limit        int       `json:"limit"`
	TotalPages   int       `json:"total_pages"`
	HasMore      bool      `json:"has_more"`
}

func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// keeps page*limit within int
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	return page, limit
}

// Paginate slices jobs to [(page-1)*limit, page*limit).
func Paginate(jobs []job.Job, page, limit int) Page {
	page, limit = NormalizePage(page, limit)

	total := len(jobs)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := make([]job.Job, end-start)
	copy(items, jobs[start:end])

	return Page{
		Jobs:         items,
		TotalResults: total,
		Page:         page,
		Limit:        limit,
		TotalPages:   (total + limit - 1) / limit,
		HasMore:      end < total,
	}
}
