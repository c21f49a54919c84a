// Package sqlite хранит прайс и список администраторов в SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"basket-service/internal/basket/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	name  TEXT NOT NULL,
	store TEXT NOT NULL,
	price TEXT NOT NULL,
	UNIQUE (name, store, price)
);
CREATE TABLE IF NOT EXISTS admins (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL UNIQUE
);
`

type Store struct {
	db *sql.DB
}

// Open открывает (или создаёт) базу по пути и накатывает схему.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// один писатель; читаем тоже через него, нагрузка тут копеечная
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// цены храним каноничной строкой, чтобы 95.5 и 95,50 были одной записью
func priceKey(d decimal.Decimal) string { return d.String() }

// InsertProducts добавляет строки прайса одной транзакцией. Уже известные тройки
// (name, store, price) пропускаются; возвращает число реально добавленных.
func (s *Store) InsertProducts(ctx context.Context, entries []model.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO products (name, store, price) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	added := 0
	for _, e := range entries {
		res, err := stmt.ExecContext(ctx, e.Name, e.Store, priceKey(e.Price))
		if err != nil {
			return 0, fmt.Errorf("insert %q@%q: %w", e.Name, e.Store, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		added += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

func (s *Store) AllProducts(ctx context.Context) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, store, price FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Entry
	for rows.Next() {
		var (
			e     model.Entry
			price string
		)
		if err := rows.Scan(&e.Name, &e.Store, &price); err != nil {
			return nil, err
		}
		if e.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("bad price %q for %q: %w", price, e.Name, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) ClearProducts(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *Store) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM admins WHERE user_id = ?`, userID).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (s *Store) AddAdmin(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("empty admin id")
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO admins (user_id) VALUES (?)`, userID)
	return err
}

func (s *Store) Admins(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id FROM admins ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
