// Package seeder loads development data: aggregated job snapshots and demo
// profiles so recommendations have something to score.
package seeder

import (
	"context"

	"jobboard/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
