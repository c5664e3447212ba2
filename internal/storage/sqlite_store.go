package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/localfinds/discovery-engine/internal/domain"
)

// SQLiteStore caches the candidate pool between provider fetches so the web
// app does not have to hit the place-search provider on every request.
type SQLiteStore struct {
	db *sqlx.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) EnsureSchema() error {
	const createTable = `
CREATE TABLE IF NOT EXISTS candidates (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  provider_types_json TEXT NOT NULL DEFAULT '[]',
  rating REAL NOT NULL DEFAULT 0,
  review_count INTEGER NOT NULL DEFAULT 0,
  latitude REAL,
  longitude REAL
);
`
	if _, err := s.db.Exec(createTable); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_candidates_category ON candidates(category);`); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) CountCandidates() (int, error) {
	var n int
	err := s.db.Get(&n, `SELECT COUNT(*) FROM candidates`)
	return n, err
}

// UpsertMany seeds the initial pool without duplicating by id.
func (s *SQLiteStore) UpsertMany(items []domain.BusinessCandidate) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT OR IGNORE INTO candidates
(id, name, category, description, address, provider_types_json, rating, review_count, latitude, longitude)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range items {
		types, _ := json.Marshal(c.ProviderTypes)
		if _, err := stmt.Exec(
			c.ID, c.Name, string(c.Category), c.Description, c.Address,
			string(types), c.Rating, c.ReviewCount, c.Latitude, c.Longitude,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) CreateCandidate(c domain.BusinessCandidate) (domain.BusinessCandidate, error) {
	if c.Name == "" {
		return domain.BusinessCandidate{}, fmt.Errorf("candidate name is required")
	}
	if c.ID == "" {
		c.ID = "b-" + uuid.NewString()
	}
	c.Category = domain.ParseCategory(string(c.Category))

	types, _ := json.Marshal(c.ProviderTypes)
	_, err := s.db.Exec(`
INSERT INTO candidates
(id, name, category, description, address, provider_types_json, rating, review_count, latitude, longitude)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		c.ID, c.Name, string(c.Category), c.Description, c.Address,
		string(types), c.Rating, c.ReviewCount, c.Latitude, c.Longitude,
	)
	return c, err
}

func (s *SQLiteStore) DeleteCandidate(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM candidates WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (s *SQLiteStore) GetCandidate(id string) (domain.BusinessCandidate, bool, error) {
	row := s.db.QueryRow(`
SELECT id, name, category, description, address, provider_types_json, rating, review_count, latitude, longitude
FROM candidates WHERE id = ?
`, id)
	c, err := scanCandidate(row.Scan)
	if err == sql.ErrNoRows {
		return domain.BusinessCandidate{}, false, nil
	}
	if err != nil {
		return domain.BusinessCandidate{}, false, err
	}
	return c, true, nil
}

// ListCandidates returns a page of the pool with optional category and
// minimum-rating filters.
func (s *SQLiteStore) ListCandidates(limit, offset int, category string, minRating float64) ([]domain.BusinessCandidate, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if strings.TrimSpace(category) != "" {
		where = append(where, "category = ?")
		args = append(args, string(domain.ParseCategory(category)))
	}
	if minRating > 0 {
		where = append(where, "rating >= ?")
		args = append(args, minRating)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.Get(&total, "SELECT COUNT(*) FROM candidates "+whereSQL, args...); err != nil {
		return nil, 0, err
	}

	rowsSQL := `
SELECT id, name, category, description, address, provider_types_json, rating, review_count, latitude, longitude
FROM candidates
` + whereSQL + "\nORDER BY id\nLIMIT ? OFFSET ?"

	rowsArgs := append(append([]any{}, args...), limit, offset)
	rows, err := s.db.Query(rowsSQL, rowsArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.BusinessCandidate
	for rows.Next() {
		c, err := scanCandidate(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// AllCandidates loads the full pool for in-memory scoring.
func (s *SQLiteStore) AllCandidates() ([]domain.BusinessCandidate, error) {
	rows, err := s.db.Query(`
SELECT id, name, category, description, address, provider_types_json, rating, review_count, latitude, longitude
FROM candidates ORDER BY id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BusinessCandidate
	for rows.Next() {
		c, err := scanCandidate(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCandidate(scan func(dest ...any) error) (domain.BusinessCandidate, error) {
	var c domain.BusinessCandidate
	var category, typesJSON string
	var lat, lng sql.NullFloat64

	if err := scan(
		&c.ID, &c.Name, &category, &c.Description, &c.Address,
		&typesJSON, &c.Rating, &c.ReviewCount, &lat, &lng,
	); err != nil {
		return domain.BusinessCandidate{}, err
	}

	c.Category = domain.Category(category)
	_ = json.Unmarshal([]byte(typesJSON), &c.ProviderTypes)
	if lat.Valid {
		c.Latitude = &lat.Float64
	}
	if lng.Valid {
		c.Longitude = &lng.Float64
	}
	return c, nil
}
