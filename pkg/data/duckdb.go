package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS characters (
	id INTEGER PRIMARY KEY,
	name VARCHAR NOT NULL,
	status VARCHAR,
	species VARCHAR,
	type VARCHAR,
	gender VARCHAR,
	origin_name VARCHAR,
	origin_url VARCHAR,
	location_name VARCHAR,
	location_url VARCHAR,
	image VARCHAR,
	url VARCHAR
)`,
	`CREATE TABLE IF NOT EXISTS episodes (
	id INTEGER PRIMARY KEY,
	name VARCHAR NOT NULL,
	code VARCHAR,
	air_date VARCHAR,
	characters VARCHAR,
	url VARCHAR
)`,
}

// InitDuckDB opens (or creates) the snapshot database at path and makes sure
// the schema exists.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return db, nil
}

// Repository stores exported snapshots of both collections.
type Repository struct {
	db *sql.DB
}

func NewDuckDBRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// ReplaceCharacters swaps the stored characters for the given ones.
func (r *Repository) ReplaceCharacters(ctx context.Context, characters []Character) error {
	return r.replace(ctx, "characters",
		`INSERT INTO characters (id, name, status, species, type, gender, origin_name, origin_url, location_name, location_url, image, url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(characters),
		func(stmt *sql.Stmt, i int) error {
			c := characters[i]
			_, err := stmt.ExecContext(ctx, c.ID, c.Name, c.Status, c.Species, c.Type, c.Gender,
				c.Origin.Name, c.Origin.URL, c.Location.Name, c.Location.URL, c.Image, c.URL)
			return err
		})
}

// ReplaceEpisodes swaps the stored episodes for the given ones.
func (r *Repository) ReplaceEpisodes(ctx context.Context, episodes []Episode) error {
	return r.replace(ctx, "episodes",
		`INSERT INTO episodes (id, name, code, air_date, characters, url) VALUES (?, ?, ?, ?, ?, ?)`,
		len(episodes),
		func(stmt *sql.Stmt, i int) error {
			e := episodes[i]
			_, err := stmt.ExecContext(ctx, e.ID, e.Name, e.Code, e.AirDate, strings.Join(e.Characters, "\n"), e.URL)
			return err
		})
}

func (r *Repository) replace(ctx context.Context, table, insert string, n int, exec func(*sql.Stmt, int) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	return tx.Commit()
}

func (r *Repository) ListCharacters(ctx context.Context) ([]Character, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, status, species, type, gender, origin_name, origin_url, location_name, location_url, image, url
		 FROM characters ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	characters := []Character{}
	for rows.Next() {
		var c Character
		if err := rows.Scan(&c.ID, &c.Name, &c.Status, &c.Species, &c.Type, &c.Gender,
			&c.Origin.Name, &c.Origin.URL, &c.Location.Name, &c.Location.URL, &c.Image, &c.URL); err != nil {
			return nil, err
		}
		characters = append(characters, c)
	}
	return characters, rows.Err()
}

func (r *Repository) ListEpisodes(ctx context.Context) ([]Episode, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, code, air_date, characters, url FROM episodes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	episodes := []Episode{}
	for rows.Next() {
		var (
			e          Episode
			characters string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Code, &e.AirDate, &characters, &e.URL); err != nil {
			return nil, err
		}
		if characters != "" {
			e.Characters = strings.Split(characters, "\n")
		}
		episodes = append(episodes, e)
	}
	return episodes, rows.Err()
}
