package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/bananai/brokerage/core/model"
	"github.com/bananai/brokerage/core/store"
)

// SQLiteLedger persists the ledger in a SQLite database. Rows are insert
// only; ordering follows the rowid.
type SQLiteLedger struct {
	db *sql.DB
}

// NewSQLiteLedger opens or creates the database at path and ensures schema.
func NewSQLiteLedger(path string) (*SQLiteLedger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS ledger (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ts INTEGER,
        order_id TEXT,
        revenue REAL,
        profit REAL,
        record TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteLedger{db: db}, nil
}

// Append inserts the invoice snapshot as a new row.
func (l *SQLiteLedger) Append(ctx context.Context, inv model.Invoice) error {
	b, err := json.Marshal(inv)
	if err != nil {
		return err
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO ledger (ts, order_id, revenue, profit, record) VALUES (?, ?, ?, ?, ?)`,
		inv.Timestamp.Unix(), inv.OrderID, inv.Revenue, inv.Profit, string(b))
	return err
}

// All returns every invoice in commit order.
func (l *SQLiteLedger) All(ctx context.Context) ([]model.Invoice, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT record FROM ledger ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []model.Invoice
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var inv model.Invoice
		if err := json.Unmarshal([]byte(data), &inv); err != nil {
			return nil, fmt.Errorf("unmarshal ledger record: %w", err)
		}
		res = append(res, inv)
	}
	return res, rows.Err()
}

// Summary aggregates in SQL rather than replaying the ledger in memory.
func (l *SQLiteLedger) Summary(ctx context.Context) (store.Summary, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(revenue), 0), COALESCE(SUM(profit), 0), COUNT(*) FROM ledger`)
	var s store.Summary
	if err := row.Scan(&s.Revenue, &s.Profit, &s.Orders); err != nil {
		return store.Summary{}, err
	}
	return s, nil
}

// Close releases the database.
func (l *SQLiteLedger) Close() error { return l.db.Close() }
