package seeder

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/profile"

	"github.com/google/uuid"
)

type fakeRows struct {
	vals []string
	i    int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Next() bool {
	if r.i >= len(r.vals) {
		return false
	}
	r.i++
	return true
}
func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.vals[r.i-1]
	return nil
}

type scanRow struct{ err error }

func (r scanRow) Scan(...any) error { return r.err }

type fakeTx struct {
	execs      int
	rowErr     error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(context.Context, string, ...any) (int64, error) {
	t.execs++
	return 1, nil
}
func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return &fakeRows{}, nil
}
func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row { return scanRow{err: t.rowErr} }
func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}
func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	columns []string
	execs   []string
	args    [][]any
	tx      *fakeTx
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) Exec(_ context.Context, q string, args ...any) (int64, error) {
	f.execs = append(f.execs, q)
	f.args = append(f.args, args)
	return 1, nil
}
func (f *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return &fakeRows{vals: f.columns}, nil
}
func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (f *fakeDB) SQLDB() *sql.DB                                        { return nil }
func (f *fakeDB) Begin(context.Context) (database.Tx, error) {
	if f.tx == nil {
		return nil, errors.New("no tx")
	}
	return f.tx, nil
}

type recordingSeeder struct {
	name  string
	err   error
	order *[]string
}

func (s recordingSeeder) Name() string { return s.name }
func (s recordingSeeder) Run(context.Context, database.DB) error {
	*s.order = append(*s.order, s.name)
	return s.err
}

func TestRunner_OrderAndStopOnError(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	r := Runner{Seeders: []Seeder{
		recordingSeeder{name: "a", order: &order},
		nil,
		recordingSeeder{name: "b", err: boom, order: &order},
		recordingSeeder{name: "c", order: &order},
	}}

	err := r.Run(context.Background(), &fakeDB{})
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "seed b") {
		t.Fatalf("unexpected error %v", err)
	}
	if strings.Join(order, ",") != "a,b" {
		t.Fatalf("unexpected order %v", order)
	}

	if err := (Runner{}).Run(context.Background(), nil); !errors.Is(err, errNilDB) {
		t.Fatalf("expected nil db error, got %v", err)
	}
}

func TestEnsureTableColumns(t *testing.T) {
	db := &fakeDB{columns: []string{"user_id", "skills"}}
	if err := EnsureTableColumns(context.Background(), db, "user_profiles", "user_id", "skills"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	err := EnsureTableColumns(context.Background(), db, "user_profiles", "user_id", "skills", "headline")
	if err == nil || !strings.Contains(err.Error(), "headline") {
		t.Fatalf("expected missing headline, got %v", err)
	}
}

func TestProfileSeeder(t *testing.T) {
	db := &fakeDB{columns: []string{"user_id", "skills", "headline", "job_types"}}
	id := uuid.New()
	s := ProfileSeeder{Profile: profile.UserProfile{
		UserID:      id,
		Skills:      []string{"go", "sql"},
		Headline:    "Backend engineer",
		Preferences: profile.Preferences{RemotePreference: "remote"},
	}}

	if err := s.Run(context.Background(), db); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(db.execs) != 1 || !strings.Contains(db.execs[0], "ON CONFLICT (user_id)") {
		t.Fatalf("unexpected exec %v", db.execs)
	}
	args := db.args[0]
	if args[0] != id || args[7] != "remote" {
		t.Fatalf("unexpected args %v", args)
	}
	if jt, ok := args[8].([]string); !ok || jt == nil {
		t.Fatalf("job types must be a non-nil slice, got %#v", args[8])
	}

	if err := (ProfileSeeder{}).Run(context.Background(), db); err == nil {
		t.Fatalf("expected error without user id")
	}
}

func TestJobSnapshotSeeder_RequiresSchema(t *testing.T) {
	s := &JobSnapshotSeeder{Jobs: []job.Job{{ExternalID: "remotive_1", Title: "x"}}}
	err := s.Run(context.Background(), &fakeDB{columns: []string{"external_id"}})
	if err == nil || s.Inserted != 0 {
		t.Fatalf("expected schema mismatch before any insert, got %v inserted=%d", err, s.Inserted)
	}
}

var snapshotColumns = []string{"external_id", "source", "title", "posted_at", "is_active"}

func TestJobSnapshotSeeder_CommitsInOneTransaction(t *testing.T) {
	tx := &fakeTx{}
	s := &JobSnapshotSeeder{Jobs: []job.Job{
		{ExternalID: "remotive_1", Title: "Backend Engineer"},
		{Title: "no id"},
		{ExternalID: "arbeitnow_x", Title: "Data Engineer"},
	}}

	if err := s.Run(context.Background(), &fakeDB{columns: snapshotColumns, tx: tx}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Inserted != 2 || tx.execs != 2 {
		t.Fatalf("inserted=%d execs=%d", s.Inserted, tx.execs)
	}
	if !tx.committed || tx.rolledBack {
		t.Fatalf("expected commit only, got %+v", tx)
	}
}

func TestJobSnapshotSeeder_RollsBackOnError(t *testing.T) {
	tx := &fakeTx{rowErr: errors.New("read back failed")}
	s := &JobSnapshotSeeder{Jobs: []job.Job{{ExternalID: "remotive_1", Title: "x"}}}

	if err := s.Run(context.Background(), &fakeDB{columns: snapshotColumns, tx: tx}); err == nil {
		t.Fatalf("expected error")
	}
	if tx.committed || !tx.rolledBack || s.Inserted != 0 {
		t.Fatalf("expected rollback, got %+v inserted=%d", tx, s.Inserted)
	}
}
