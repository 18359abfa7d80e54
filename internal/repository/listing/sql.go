package listing

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"go.uber.org/zap"

	"github.com/lotego/lotego/internal/domain"
	domlisting "github.com/lotego/lotego/internal/domain/listing"
)

// SQLiteSchema creates the listings table read by the sqlite driver.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS listings (
  id            INTEGER PRIMARY KEY,
  title         TEXT NOT NULL,
  description   TEXT NOT NULL DEFAULT '',
  price         REAL NOT NULL,
  area          REAL NOT NULL,
  location      TEXT NOT NULL DEFAULT '',
  address       TEXT NOT NULL DEFAULT '',
  city          TEXT NOT NULL,
  state         TEXT NOT NULL,
  zip_code      TEXT NOT NULL DEFAULT '',
  type          TEXT NOT NULL,
  status        TEXT NOT NULL DEFAULT '',
  lat           REAL NOT NULL DEFAULT 0,
  lng           REAL NOT NULL DEFAULT 0,
  images_json   TEXT NOT NULL DEFAULT '[]',
  features_json TEXT NOT NULL DEFAULT '[]'
);`

// PostgresSchema creates the listings table read by the postgres driver.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS listings (
  id          INTEGER PRIMARY KEY,
  title       TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price       DOUBLE PRECISION NOT NULL,
  area        DOUBLE PRECISION NOT NULL,
  location    TEXT NOT NULL DEFAULT '',
  address     TEXT NOT NULL DEFAULT '',
  city        TEXT NOT NULL,
  state       TEXT NOT NULL,
  zip_code    TEXT NOT NULL DEFAULT '',
  type        TEXT NOT NULL,
  status      TEXT NOT NULL DEFAULT '',
  lat         DOUBLE PRECISION NOT NULL DEFAULT 0,
  lng         DOUBLE PRECISION NOT NULL DEFAULT 0,
  images      TEXT[] NOT NULL DEFAULT '{}',
  features    TEXT[] NOT NULL DEFAULT '{}'
);`

const (
	sqliteSelect   = `SELECT ` + sqlColumns + `, images_json, features_json FROM listings ORDER BY id`
	postgresSelect = `SELECT ` + sqlColumns + `, images, features FROM listings ORDER BY id`
)

// row is a dialect-specific scan target.
type row interface {
	sqliteRow | postgresRow
	listing() (domlisting.Listing, error)
}

// SQLSource reads listings from a SQL table on every List call.
type SQLSource struct {
	db     *sqlx.DB
	list   func(ctx context.Context) ([]domlisting.Listing, error)
	logger *zap.Logger
}

// OpenSQLite opens a sqlite database file as a listing source.
func OpenSQLite(path string, logger *zap.Logger) (*SQLSource, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return newSQLSource[sqliteRow](db, sqliteSelect, logger), nil
}

// OpenPostgres connects to postgres as a listing source.
func OpenPostgres(dsn string, logger *zap.Logger) (*SQLSource, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return newSQLSource[postgresRow](db, postgresSelect, logger), nil
}

func newSQLSource[R row](db *sqlx.DB, query string, logger *zap.Logger) *SQLSource {
	s := &SQLSource{db: db, logger: logger}
	s.list = func(ctx context.Context) ([]domlisting.Listing, error) {
		return selectListings[R](ctx, s, query)
	}
	return s
}

// List returns every valid listing ordered by id. Invalid rows are logged and skipped.
func (s *SQLSource) List(ctx context.Context) ([]domlisting.Listing, error) {
	return s.list(ctx)
}

// Ping checks the database connection.
func (s *SQLSource) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	return nil
}

// Close closes the connection pool.
func (s *SQLSource) Close() error {
	return s.db.Close() //nolint:wrapcheck // shutdown path
}

// DB exposes the underlying handle for schema setup and seeding.
func (s *SQLSource) DB() *sqlx.DB { return s.db }

func selectListings[R row](ctx context.Context, s *SQLSource, query string) ([]domlisting.Listing, error) {
	var rows []R
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%w: select listings: %w", domain.ErrSourceUnavailable, err)
	}

	out := make([]domlisting.Listing, 0, len(rows))
	for _, r := range rows {
		l, err := r.listing()
		if err == nil {
			err = l.Validate()
		}
		if err != nil {
			s.logger.Warn("Skipping invalid listing row", zap.Error(err))
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

const (
	sqliteInsert = `INSERT INTO listings (` + sqlColumns + `, images_json, features_json)
		VALUES (:id, :title, :description, :price, :area, :location, :address,
			:city, :state, :zip_code, :type, :status, :lat, :lng, :images_json, :features_json)`
	postgresInsert = `INSERT INTO listings (` + sqlColumns + `, images, features)
		VALUES (:id, :title, :description, :price, :area, :location, :address,
			:city, :state, :zip_code, :type, :status, :lat, :lng, :images, :features)
		ON CONFLICT (id) DO NOTHING`
)

// InsertSQLite writes listings into a sqlite listings table created with SQLiteSchema.
func InsertSQLite(ctx context.Context, db *sqlx.DB, listings []domlisting.Listing) error {
	return insertListings(ctx, db, sqliteInsert, listings, sqliteRowFrom)
}

// InsertPostgres writes listings into a postgres listings table created with
// PostgresSchema. Rows whose id already exists are left untouched.
func InsertPostgres(ctx context.Context, db *sqlx.DB, listings []domlisting.Listing) error {
	return insertListings(ctx, db, postgresInsert, listings, postgresRowFrom)
}

func insertListings[R row](
	ctx context.Context,
	db *sqlx.DB,
	insert string,
	listings []domlisting.Listing,
	toRow func(domlisting.Listing) (R, error),
) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range listings {
		r, err := toRow(listings[i])
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, insert, r); err != nil {
			return fmt.Errorf("insert listing %d: %w", listings[i].ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
