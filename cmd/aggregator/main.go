// Command aggregator runs one aggregation pass against the configured job
// boards and prints the per-source breakdown and the newest jobs as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/database/seeder"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/profile"
	"jobboard/internal/metrics"
	"jobboard/internal/provider"
	"jobboard/internal/search"
	"jobboard/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
)

type output struct {
	Query     string         `json:"query"`
	Country   string         `json:"country,omitempty"`
	Category  string         `json:"category,omitempty"`
	Total     int            `json:"total"`
	Breakdown map[string]int `json:"breakdown"`
	Failed    []string       `json:"failed_sources,omitempty"`
	Elapsed   string         `json:"elapsed"`
	Jobs      []job.Job      `json:"jobs"`
}

func main() {
	query := flag.String("query", "", "job search query")
	country := flag.String("country", "", "country filter applied after aggregation")
	category := flag.String("category", "", "category passed upstream and filtered locally")
	limit := flag.Int("limit", 10, "number of jobs to print")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	persist := flag.Bool("persist", false, "upsert the aggregated jobs into the database (DB_* env)")
	seedProfile := flag.String("seed-profile", "", "user id to upsert a development profile for (DB_* env)")
	skills := flag.String("skills", "go,sql,docker", "comma separated skills for -seed-profile")
	flag.Parse()

	// only the provider block is needed; HTTP_PORT and friends stay optional
	var pcfg config.ProviderConfig
	if err := env.Parse(&pcfg); err != nil {
		log.Fatalf("failed to load provider config: %v", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	metrics.InitMetrics()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	providers := app.BuildProviders(pcfg, logger)
	agg := service.NewAggregator(logger, pcfg.SourceTimeout, providers.Jobs...)

	start := time.Now()
	res, err := agg.Aggregate(ctx, provider.Params{
		Query:    strings.TrimSpace(*query),
		Category: strings.TrimSpace(*category),
		Country:  upstreamCountry(*country),
		Page:     1,
	})
	if err != nil {
		log.Fatalf("aggregate failed: %v", err)
	}

	jobs := search.Dedup(res.Jobs)
	jobs = search.NewEngine(nil, nil).Apply(jobs, search.Filter{
		Country:  strings.TrimSpace(*country),
		Category: strings.TrimSpace(*category),
	})

	out := output{
		Query:     *query,
		Country:   *country,
		Category:  *category,
		Total:     len(jobs),
		Breakdown: map[string]int{},
		Elapsed:   time.Since(start).Round(time.Millisecond).String(),
	}
	for src, n := range res.Breakdown {
		out.Breakdown[string(src)] = n
	}
	for _, src := range res.Failed {
		out.Failed = append(out.Failed, string(src))
	}
	if *persist || *seedProfile != "" {
		if err := seed(ctx, logger, jobs, *persist, *seedProfile, *skills); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	if *limit > 0 && len(jobs) > *limit {
		jobs = jobs[:*limit]
	}
	out.Jobs = jobs

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode output: %v", err)
	}
}

func seed(ctx context.Context, logger *log.Logger, jobs []job.Job, persist bool, userID, skills string) error {
	dbCfg := config.LoadDatabase()
	if !dbCfg.Enabled() {
		return fmt.Errorf("DB_HOST and DB_NAME are required")
	}
	db, err := dbpostgres.Connect(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := (migration.Runner{Dir: dbCfg.MigrationsDir, Logger: logger}).Run(ctx, db.SQLDB()); err != nil {
		return err
	}

	var seeders []seeder.Seeder
	snapshot := &seeder.JobSnapshotSeeder{Jobs: jobs}
	if persist {
		seeders = append(seeders, snapshot)
	}
	if userID != "" {
		id, err := uuid.Parse(strings.TrimSpace(userID))
		if err != nil {
			return fmt.Errorf("invalid -seed-profile: %w", err)
		}
		seeders = append(seeders, seeder.ProfileSeeder{Profile: profile.UserProfile{
			UserID:   id,
			Skills:   splitList(skills),
			Headline: "Software engineer",
			Preferences: profile.Preferences{
				RemotePreference: profile.RemotePreferenceRemote,
				JobTypes:         []string{string(job.TypeFullTime)},
			},
		}})
	}

	if err := (seeder.Runner{Seeders: seeders, Logger: logger}).Run(ctx, db); err != nil {
		return err
	}
	if persist {
		logger.Printf("[Seeder] persisted %d jobs", snapshot.Inserted)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func upstreamCountry(c string) string {
	c = strings.TrimSpace(c)
	if strings.EqualFold(c, "all") {
		return ""
	}
	return c
}
