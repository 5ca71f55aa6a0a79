package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"

	"github.com/sergeysynergy/accessreview/internal/accessreview"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"

	initTimeOut = 60 * time.Second
)

type Storage struct {
	db     *sql.DB
	ctx    context.Context
	cancel context.CancelFunc
	driver string
	dsn    string
	stmts  map[string]*sql.Stmt
}

var _ accessreview.Storer = (*Storage)(nil)

type Option func(*Storage)

// WithDriver selects the database/sql driver, DriverPostgres by default.
func WithDriver(driver string) Option {
	return func(s *Storage) {
		s.driver = driver
	}
}

func New(dsn string, opts ...Option) (*Storage, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN needed")
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Storage{
		ctx:    ctx,
		cancel: cancel,
		driver: DriverPostgres,
		dsn:    dsn,
		stmts:  make(map[string]*sql.Stmt),
	}
	for _, opt := range opts {
		opt(s)
	}

	err := s.init(s.dsn)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("database initialization failed - %w", err)
	}

	return s, nil
}

func (s *Storage) init(dsn string) error {
	var err error
	s.db, err = sql.Open(s.driver, dsn)
	if err != nil {
		return err
	}

	if s.driver == DriverSQLite {
		// sqlite allows a single writer
		s.db.SetMaxOpenConns(1)
	} else {
		s.db.SetMaxOpenConns(40)
		s.db.SetMaxIdleConns(20)
		s.db.SetConnMaxIdleTime(time.Second * 60)
	}

	ctx, cancel := context.WithTimeout(s.ctx, initTimeOut)
	defer cancel()

	err = s.initUsers(ctx)
	if err != nil {
		return fmt.Errorf(`failed to create 'users' table - %w`, err)
	}

	err = s.initRestaurants(ctx)
	if err != nil {
		return fmt.Errorf(`failed to create restaurant tables - %w`, err)
	}

	return nil
}

// createTable creates the table unless it can already be queried.
func (s *Storage) createTable(ctx context.Context, tableName, columns string) error {
	_, err := s.db.ExecContext(ctx, "select * from "+tableName+";")
	if err == nil {
		return nil
	}

	_, err = s.db.ExecContext(ctx, "CREATE TABLE "+tableName+" ("+columns+");")
	if err != nil {
		return err
	}
	log.Debugf("table `%s` created", tableName)

	return nil
}

func (s *Storage) prepare(name, query string) error {
	stmt, err := s.db.PrepareContext(s.ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare `%s` - %w", name, err)
	}
	s.stmts[name] = stmt

	return nil
}

func (s *Storage) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return err
	}

	return nil
}

func (s *Storage) Shutdown() error {
	s.cancel()

	for _, stmt := range s.stmts {
		err := stmt.Close()
		if err != nil {
			return fmt.Errorf("failed to close statement - %w", err)
		}
	}

	err := s.db.Close()
	if err != nil {
		return err
	}

	log.Debug("connection to database closed")
	return nil
}
