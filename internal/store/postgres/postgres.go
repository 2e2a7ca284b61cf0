package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/moodgarden/moodgarden/internal/model"
	"github.com/moodgarden/moodgarden/internal/store"
	"github.com/moodgarden/moodgarden/internal/store/postgres/migrations"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// RunMigrations sets up goose with the embedded migrations and applies them
// against the provided database connection.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// NewWithDB constructs an entry store backed directly by database/sql.
func NewWithDB(db *sql.DB) *EntryStore { return &EntryStore{db: db} }

// EntryStore implements store.EntryStore on Postgres.
type EntryStore struct{ db *sql.DB }

var _ store.EntryStore = (*EntryStore)(nil)

// HealthPing implements health.Pinger.
func (s *EntryStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *EntryStore) Create(ctx context.Context, e *model.Entry) (*model.Entry, error) {
	id := e.ID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := s.db.QueryRowContext(ctx, `
        INSERT INTO entries (entry_id, title, content, mood, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING creation_time
    `, id, e.Title, e.Content, e.Mood, string(e.Status))
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *e
	out.ID = id
	out.Timestamp = created
	return &out, nil
}

func (s *EntryStore) List(ctx context.Context) ([]*model.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT entry_id, title, content, mood, status, creation_time, flower_image_url
        FROM entries
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (s *EntryStore) Get(ctx context.Context, id string) (*model.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT entry_id, title, content, mood, status, creation_time, flower_image_url
        FROM entries WHERE entry_id=$1
    `, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Update applies the non-nil fields of upd in one UPDATE statement. The row-level
// atomicity of that statement is the only concurrency control relied upon when
// racing generation tasks write the same entry.
func (s *EntryStore) Update(ctx context.Context, id string, upd model.EntryUpdate) (*model.Entry, error) {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Content != nil {
		add("content", *upd.Content)
	}
	if upd.Mood != nil {
		add("mood", *upd.Mood)
	}
	if upd.Status != nil {
		add("status", string(*upd.Status))
	}
	if upd.FlowerImageURL != nil {
		add("flower_image_url", *upd.FlowerImageURL)
	}
	if len(sets) == 0 {
		return s.Get(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
        UPDATE entries SET %s WHERE entry_id=$%d
        RETURNING entry_id, title, content, mood, status, creation_time, flower_image_url
    `, strings.Join(sets, ", "), len(args))

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EntryStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE entry_id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(r rowScanner) (*model.Entry, error) {
	var e model.Entry
	var status string
	var url *string
	if err := r.Scan(&e.ID, &e.Title, &e.Content, &e.Mood, &status, &e.Timestamp, &url); err != nil {
		return nil, err
	}
	e.Status = model.Status(status)
	e.FlowerImageURL = url
	return &e, nil
}
