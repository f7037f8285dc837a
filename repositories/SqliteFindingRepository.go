package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/reaandrew/cloudauditor/core"
)

// SqliteFindingRepository implements core.FindingRepository over a local SQLite
// file. Each row of the Findings table holds one finding as a JSON document.
type SqliteFindingRepository struct {
	db *sql.DB
}

// NewSqliteFindingRepository opens (or creates) the SQLite database at dbPath.
func NewSqliteFindingRepository(dbPath string) (core.FindingRepository, error) {
	db, err := InitializeSQLiteDB(dbPath)
	if err != nil {
		return nil, err
	}

	return &SqliteFindingRepository{db: db}, nil
}

// ScanAll reads every stored finding in insertion order.
func (r *SqliteFindingRepository) ScanAll(ctx context.Context) ([]core.Finding, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, Data FROM Findings ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer rows.Close()

	findings := make([]core.Finding, 0)
	for rows.Next() {
		var id int
		var data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to read finding row: %w", err)
		}

		var finding core.Finding
		if err := json.Unmarshal([]byte(data), &finding); err != nil {
			return nil, fmt.Errorf("failed to parse JSON for row %d: %w", id, err)
		}
		if finding == nil {
			return nil, fmt.Errorf("row %d does not contain a JSON object", id)
		}
		findings = append(findings, finding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate findings: %w", err)
	}

	return findings, nil
}

// Close closes the underlying SQLite database.
func (r *SqliteFindingRepository) Close() error {
	return r.db.Close()
}

// InitializeSQLiteDB opens the SQLite DB and makes sure the Findings table exists.
func InitializeSQLiteDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	createStmt := `CREATE TABLE IF NOT EXISTS Findings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		Data TEXT NOT NULL
	);`

	if _, err := db.Exec(createStmt); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create findings table: %w", err)
	}

	return db, nil
}
