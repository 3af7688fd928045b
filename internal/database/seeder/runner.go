package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jobboard/internal/database"
)

var errNilDB = errors.New("seeder: nil db")

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

// Run executes seeders in order and stops at the first failure.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errNilDB
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("[Seeder] %s done in %s", s.Name(), time.Since(start).Round(time.Millisecond))
		}
	}
	return nil
}
