package search

import (
	"sort"
	"strings"

	"jobboard/internal/domain/job"
)

// Dedup runs two passes: the first drops repeated external ids, the second
// drops survivors sharing a folded title and company name. The first
// occurrence wins in both. Survivors are ordered by PostedAt descending;
// undated and estimated dates go last, in input order.
func Dedup(jobs []job.Job) []job.Job {
	byID := make(map[string]struct{}, len(jobs))
	unique := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if id := strings.TrimSpace(j.ExternalID); id != "" {
			if _, ok := byID[id]; ok {
				continue
			}
			byID[id] = struct{}{}
		}
		unique = append(unique, j)
	}

	byTitleCompany := make(map[string]struct{}, len(unique))
	out := make([]job.Job, 0, len(unique))
	for _, j := range unique {
		if k := titleCompanyKey(j); k != "" {
			if _, ok := byTitleCompany[k]; ok {
				continue
			}
			byTitleCompany[k] = struct{}{}
		}
		out = append(out, j)
	}

	SortByRecency(out)
	return out
}

func SortByRecency(jobs []job.Job) {
	sort.SliceStable(jobs, func(a, b int) bool {
		ka, kb := jobs[a].HasKnownDate(), jobs[b].HasKnownDate()
		if ka != kb {
			return ka
		}
		if !ka {
			return false
		}
		return jobs[a].PostedAt.After(jobs[b].PostedAt)
	})
}

func titleCompanyKey(j job.Job) string {
	title := foldText(j.Title)
	company := foldText(j.Company.Name)
	if title == "" {
		return ""
	}
	return title + "|" + company
}

func foldText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
