package provider

import (
	"context"
	"strings"
)

// Rewrite returns p with every Fetch seeing fn(params) instead of params.
// It lets one aggregator run sources with different upstream queries.
func Rewrite(p Provider, fn func(Params) Params) Provider {
	if fn == nil {
		return p
	}
	return rewritten{Provider: p, fn: fn}
}

type rewritten struct {
	Provider
	fn func(Params) Params
}

func (r rewritten) Fetch(ctx context.Context, p Params) FetchResult {
	return r.Provider.Fetch(ctx, r.fn(p))
}

// InternshipParams narrows a query to internships the way each board
// understands it.
func InternshipParams(p Params) Params {
	q := strings.TrimSpace(p.Query)
	if q == "" || strings.EqualFold(q, "internship") {
		p.Query = "internship"
	} else {
		p.Query = "internship " + q
	}
	p.EmploymentType = "INTERN"
	return p
}

// FixedQuery replaces the query and drops category and country.
func FixedQuery(query string) func(Params) Params {
	return func(p Params) Params {
		return Params{Query: query, Page: p.Page}
	}
}
