package app

import (
	"log"
	"net/http"

	"jobboard/internal/config"
	"jobboard/internal/provider"
)

// ProviderSet holds the adapters for the main listing and the internship
// listing. They share HTTP clients but take different query shapes.
type ProviderSet struct {
	Jobs        []provider.Provider
	Internships []provider.Provider
}

func BuildProviders(cfg config.ProviderConfig, logger *log.Logger) ProviderSet {
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	remotive := provider.NewRemotive(cfg.RemotiveBaseURL, client, logger)
	arbeitnow := provider.NewArbeitnow(cfg.ArbeitnowBaseURL, client, logger)
	jsearch := provider.NewJSearch(cfg.JSearchBaseURL, cfg.JSearchAPIKey, client, logger)
	adzuna := provider.NewAdzuna(cfg.AdzunaBaseURL, cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry, client, logger)

	return ProviderSet{
		Jobs: []provider.Provider{
			remotive,
			provider.NewArbeitnowWalker(arbeitnow, cfg.ArbeitnowTargetJobs, cfg.ArbeitnowPageDelay, logger),
			jsearch,
			adzuna,
		},
		Internships: []provider.Provider{
			provider.Rewrite(remotive, provider.FixedQuery("internship")),
			provider.Rewrite(jsearch, provider.InternshipParams),
			provider.Rewrite(arbeitnow, firstPage),
		},
	}
}

func firstPage(p provider.Params) provider.Params {
	p.Page = 1
	return p
}
