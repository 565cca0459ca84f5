// Package sqlite implements store.Store on an embedded SQLite database. It
// is the default backend for local development and single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store"
)

// Open opens (creating if needed) the SQLite database at path with WAL and
// foreign keys enabled, and verifies connectivity before returning.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	// The modernc driver serializes writes itself; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewWithDB constructs a SQLite-backed store from an existing handle.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Properties() store.Properties { return &properties{db: s.db} }
func (s *sqliteStore) Users() store.Users           { return &users{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var schemaStmts = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		property_id   INTEGER PRIMARY KEY AUTOINCREMENT,
		location      TEXT NOT NULL,
		type          TEXT NOT NULL,
		nightly_price REAL NOT NULL,
		features      TEXT NOT NULL DEFAULT '',
		tags          TEXT NOT NULL DEFAULT '',
		image_url     TEXT,
		image_alt     TEXT,
		latitude      REAL,
		longitude     REAL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name              TEXT NOT NULL,
		group_size        INTEGER,
		preferred_env     TEXT,
		budget_min        REAL,
		budget_max        REAL,
		weighed_location  INTEGER NOT NULL DEFAULT 1,
		weighed_type      INTEGER NOT NULL DEFAULT 1,
		weighed_features  INTEGER NOT NULL DEFAULT 1,
		weighed_price     INTEGER NOT NULL DEFAULT 1,
		travel_start_date TEXT,
		travel_end_date   TEXT
	)`,
}

// Bootstrap creates the schema when missing. Every statement is idempotent so
// repeated startups are safe.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap sqlite schema: %w", err)
		}
	}
	return nil
}

const propertyCols = `property_id, location, type, nightly_price, features, tags, image_url, image_alt, latitude, longitude`

type properties struct{ db *sql.DB }

func (p *properties) Create(ctx context.Context, m *model.Property) (*model.Property, error) {
	res, err := p.db.ExecContext(ctx, `
		INSERT INTO properties (location, type, nightly_price, features, tags, image_url, image_alt, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Location, m.Type, m.NightlyPrice, store.EncodeList(m.Features), store.EncodeList(m.Tags),
		m.ImageURL, m.ImageAlt, m.Latitude, m.Longitude)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *m
	out.ID = id
	return &out, nil
}

func (p *properties) Get(ctx context.Context, propertyID int64) (*model.Property, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+propertyCols+` FROM properties WHERE property_id = ?`, propertyID)
	return scanProperty(row)
}

func (p *properties) List(ctx context.Context) ([]model.Property, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+propertyCols+` FROM properties ORDER BY property_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.Property
	for rows.Next() {
		m, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (p *properties) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM properties`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (p *properties) UpdateCoordinates(ctx context.Context, propertyID int64, lat, lon float64) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE properties SET latitude = ?, longitude = ? WHERE property_id = ?`,
		lat, lon, propertyID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (p *properties) UpdateImage(ctx context.Context, propertyID int64, imageURL, imageAlt string) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE properties SET image_url = ?, image_alt = ? WHERE property_id = ?`,
		imageURL, imageAlt, propertyID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	out := *m
	store.NormalizeWeights(&out)
	res, err := u.db.ExecContext(ctx, `
		INSERT INTO users (name, group_size, preferred_env, budget_min, budget_max,
			weighed_location, weighed_type, weighed_features, weighed_price,
			travel_start_date, travel_end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		out.Name, out.GroupSize, out.PreferredEnv, out.BudgetMin, out.BudgetMax,
		out.WeighedLocation, out.WeighedType, out.WeighedFeatures, out.WeighedPrice,
		out.TravelStartDate, out.TravelEndDate)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out.ID = id
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID int64) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
		SELECT user_id, name, group_size, preferred_env, budget_min, budget_max,
			weighed_location, weighed_type, weighed_features, weighed_price,
			travel_start_date, travel_end_date
		FROM users WHERE user_id = ?`, userID)
	var m model.User
	err := row.Scan(&m.ID, &m.Name, &m.GroupSize, &m.PreferredEnv, &m.BudgetMin, &m.BudgetMax,
		&m.WeighedLocation, &m.WeighedType, &m.WeighedFeatures, &m.WeighedPrice,
		&m.TravelStartDate, &m.TravelEndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (u *users) UpdateWeights(ctx context.Context, userID int64, location, propertyType, features, price int) error {
	res, err := u.db.ExecContext(ctx, `
		UPDATE users SET weighed_location = ?, weighed_type = ?, weighed_features = ?, weighed_price = ?
		WHERE user_id = ?`,
		location, propertyType, features, price, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface{ Scan(dest ...any) error }

func scanProperty(rs rowScanner) (*model.Property, error) {
	var m model.Property
	var features, tags string
	err := rs.Scan(&m.ID, &m.Location, &m.Type, &m.NightlyPrice, &features, &tags,
		&m.ImageURL, &m.ImageAlt, &m.Latitude, &m.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.Features = store.DecodeList(features)
	m.Tags = store.DecodeList(tags)
	return &m, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
