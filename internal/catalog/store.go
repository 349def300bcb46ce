// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps enriched personas in a SQLite database so a roster
// can be queried by place, gender, education or name without re-reading
// the source file.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/persona-pages/pkg/types"
)

const (
	dbFile            = "personas.db"
	defaultMaxResults = 50
)

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// Entry is a catalogued persona with the page it renders on.
type Entry struct {
	types.EnrichedPersona `yaml:",inline"`
	Page                  string `json:"page" yaml:"page"`
}

// NewStore opens or creates dir/personas.db and its schema.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(cfg.Dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS personas (
			ordinal INTEGER PRIMARY KEY,
			idx TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			age TEXT,
			gender TEXT,
			town TEXT,
			province TEXT,
			economic TEXT,
			education TEXT,
			attitude_money TEXT,
			attitude_environment TEXT,
			attitude_belonging TEXT,
			attitude_education TEXT,
			education_text TEXT,
			attitude_money_text TEXT,
			attitude_environment_text TEXT,
			attitude_belonging_text TEXT,
			attitude_education_text TEXT,
			headshot_file TEXT,
			page TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_personas_province ON personas(province)`,
		`CREATE INDEX IF NOT EXISTS idx_personas_page ON personas(page)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Build replaces the catalog contents with the personas on pages, in one
// transaction. It prints one line per page to w.
func (s *Store) Build(ctx context.Context, pages []types.Page, w io.Writer) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM personas`); err != nil {
		return 0, fmt.Errorf("clearing catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO personas (ordinal, idx, name, age, gender, town, province, economic, education,
			attitude_money, attitude_environment, attitude_belonging, attitude_education,
			education_text, attitude_money_text, attitude_environment_text, attitude_belonging_text,
			attitude_education_text, headshot_file, page)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, page := range pages {
		for _, p := range page.People {
			_, err := stmt.ExecContext(ctx,
				p.Ordinal, p.Index, p.Name, p.Age, p.Gender, p.Town, p.Province, p.Economic, p.Education,
				p.AttitudeMoney, p.AttitudeEnvironment, p.AttitudeBelonging, p.AttitudeEducation,
				p.EducationText, p.AttitudeMoneyText, p.AttitudeEnvironmentText, p.AttitudeBelongingText,
				p.AttitudeEducationText, p.HeadshotFile, page.Filename,
			)
			if err != nil {
				return 0, fmt.Errorf("inserting persona %s: %w", p.Index, err)
			}
			count++
		}
		fmt.Fprintf(w, "catalogued %s (%d personas)\n", page.Filename, len(page.People))
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing catalog: %w", err)
	}
	fmt.Fprintf(w, "\ncatalogued: %d personas on %d pages\n", count, len(pages))
	return count, nil
}

// QueryOptions filters catalog queries. Empty fields match everything.
type QueryOptions struct {
	Province  string
	Town      string
	Gender    string
	Education string
	// Text matches a case-insensitive substring of name or town.
	Text       string
	MaxResults int
}

// Query returns catalogued personas in ordinal order.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	eq := func(col, val string) {
		if val != "" {
			where = append(where, col+" = ? COLLATE NOCASE")
			args = append(args, val)
		}
	}
	eq("province", opts.Province)
	eq("town", opts.Town)
	eq("gender", opts.Gender)
	eq("education", opts.Education)
	if opts.Text != "" {
		where = append(where, "(name LIKE ? OR town LIKE ?)")
		like := "%" + opts.Text + "%"
		args = append(args, like, like)
	}

	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}

	q := `SELECT ordinal, idx, name, age, gender, town, province, economic, education,
		attitude_money, attitude_environment, attitude_belonging, attitude_education,
		education_text, attitude_money_text, attitude_environment_text, attitude_belonging_text,
		attitude_education_text, headshot_file, page
		FROM personas`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY ordinal LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		p := &e.EnrichedPersona
		if err := rows.Scan(
			&p.Ordinal, &p.Index, &p.Name, &p.Age, &p.Gender, &p.Town, &p.Province, &p.Economic, &p.Education,
			&p.AttitudeMoney, &p.AttitudeEnvironment, &p.AttitudeBelonging, &p.AttitudeEducation,
			&p.EducationText, &p.AttitudeMoneyText, &p.AttitudeEnvironmentText, &p.AttitudeBelongingText,
			&p.AttitudeEducationText, &p.HeadshotFile, &e.Page,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
