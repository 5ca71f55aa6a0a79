package db

import (
	"context"
	"fmt"
	"sort"
)

func (s *Storage) initUsers(ctx context.Context) error {
	err := s.createTable(ctx, "users", `
		name varchar PRIMARY KEY,
		password varchar NOT NULL
	`)
	if err != nil {
		return err
	}

	if err = s.prepare("usersInsert", "INSERT INTO users (name, password) VALUES ($1, $2)"); err != nil {
		return err
	}
	if err = s.prepare("usersGetAll", "SELECT name, password FROM users"); err != nil {
		return err
	}
	if err = s.prepare("usersDeleteAll", "DELETE FROM users"); err != nil {
		return err
	}

	return nil
}

func (s *Storage) LoadUsers() (map[string]string, error) {
	users := make(map[string]string)

	rows, err := s.stmts["usersGetAll"].QueryContext(s.ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, password string
		if err = rows.Scan(&name, &password); err != nil {
			return nil, err
		}
		users[name] = password
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// SaveUsers replaces every stored user.
func (s *Storage) SaveUsers(users map[string]string) error {
	tx, err := s.db.BeginTx(s.ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	txDelete := tx.StmtContext(s.ctx, s.stmts["usersDeleteAll"])
	txInsert := tx.StmtContext(s.ctx, s.stmts["usersInsert"])

	if _, err = txDelete.ExecContext(s.ctx); err != nil {
		return fmt.Errorf("failed to clear users - %w", err)
	}

	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err = txInsert.ExecContext(s.ctx, name, users[name]); err != nil {
			return fmt.Errorf("failed to insert user `%s` - %w", name, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("save users transaction failed - %w", err)
	}

	return nil
}
