package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"rental-analyzer/models"
	"rental-analyzer/utils"
)

// PostgresSource reads scraped listings stored as JSONB rows, one listing per
// row, in insertion order.
type PostgresSource struct {
	db    *sql.DB
	table string
}

// NewPostgresSource opens a connection to PostgreSQL and returns a source
// reading from table. The table is expected to have an ordered id column and
// a payload column holding the raw listing JSON. The connection is pinged up
// to attempts times.
func NewPostgresSource(dsn, table string, attempts int, logger *utils.Logger) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.Retry{MaxAttempts: attempts, BaseDelay: time.Second, Logger: logger}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &PostgresSource{db: db, table: table}, nil
}

// Name identifies the source in reports.
func (ps *PostgresSource) Name() string {
	return PostgresSourceName(ps.table)
}

// PostgresSourceName is the report name of a PostgreSQL source reading table.
func PostgresSourceName(table string) string {
	return "postgres table " + table
}

// Load fetches every stored listing ordered by id.
func (ps *PostgresSource) Load() ([]models.Listing, error) {
	rows, err := ps.db.Query(listingsQuery(ps.table))
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch listings: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		listings = append(listings, models.ParseListing(payload))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate rows: %w", err)
	}
	return listings, nil
}

func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}

func listingsQuery(table string) string {
	return fmt.Sprintf("SELECT payload FROM %s ORDER BY id", pq.QuoteIdentifier(table))
}
