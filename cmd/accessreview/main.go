package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/sergeysynergy/accessreview/internal/accessreview"
	"github.com/sergeysynergy/accessreview/internal/api/handlers"
	"github.com/sergeysynergy/accessreview/internal/basicstorage"
	"github.com/sergeysynergy/accessreview/internal/db"
)

const shutdownTimeout = 10 * time.Second

type config struct {
	Addr            string   `env:"RUN_ADDRESS"`
	DatabaseURI     string   `env:"DATABASE_URI"`
	SQLitePath      string   `env:"SQLITE_PATH"`
	RestaurantsFile string   `env:"RESTAURANTS_FILE"`
	UsersFile       string   `env:"USERS_FILE"`
	TokenMin        int64    `env:"TOKEN_MIN"`
	TokenMax        int64    `env:"TOKEN_MAX"`
	TokenAttempts   int      `env:"TOKEN_ATTEMPTS"`
	CORSOrigins     []string `env:"CORS_ORIGINS" envSeparator:","`
	Debug           bool     `env:"DEBUG"`
}

func parseConfig() (*config, error) {
	cfg := new(config)
	flag.StringVarP(&cfg.Addr, "address", "a", "localhost:3000", "Service run address")
	flag.StringVarP(&cfg.DatabaseURI, "database-uri", "d", "", "Postgres URI")
	flag.StringVarP(&cfg.SQLitePath, "sqlite", "s", "", "SQLite database file")
	flag.StringVarP(&cfg.RestaurantsFile, "restaurants", "r", "database.json", "Restaurants database JSON file")
	flag.StringVarP(&cfg.UsersFile, "users", "u", "users.json", "Users JSON file")
	flag.Int64Var(&cfg.TokenMin, "token-min", int64(accessreview.DefaultTokenMin), "Lowest session token")
	flag.Int64Var(&cfg.TokenMax, "token-max", int64(accessreview.DefaultTokenMax), "Highest session token")
	flag.IntVar(&cfg.TokenAttempts, "token-attempts", accessreview.DefaultTokenAttempts, "Draws made to find a free session token")
	flag.StringSliceVar(&cfg.CORSOrigins, "cors-origins", []string{"*"}, "Allowed CORS origins")
	flag.BoolVar(&cfg.Debug, "debug", false, "Print debug messages")
	flag.Parse()

	// environment overrides flags
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newStorage(cfg *config) (accessreview.Storer, func() error, error) {
	switch {
	case cfg.DatabaseURI != "":
		st, err := db.New(cfg.DatabaseURI)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Shutdown, nil
	case cfg.SQLitePath != "":
		st, err := db.New(cfg.SQLitePath, db.WithDriver(db.DriverSQLite))
		if err != nil {
			return nil, nil, err
		}
		return st, st.Shutdown, nil
	default:
		st := basicstorage.New(basicstorage.WithFiles(cfg.RestaurantsFile, cfg.UsersFile))
		return st, func() error { return nil }, nil
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("failed to load .env - %s", err)
	}

	cfg, err := parseConfig()
	if err != nil {
		log.Fatalf("failed to parse config - %s", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	log.Debugf("receive config: %#v", cfg)

	st, closeStorage, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("failed to init storage - %s", err)
	}

	ar, err := accessreview.New(st,
		accessreview.WithTokenRange(accessreview.Token(cfg.TokenMin), accessreview.Token(cfg.TokenMax)),
		accessreview.WithTokenAttempts(cfg.TokenAttempts),
	)
	if err != nil {
		log.Fatalf("failed to load data - %s", err)
	}

	// cancelled before shutdown so that heartbeat streams end
	baseCtx, stopRequests := context.WithCancel(context.Background())
	defer stopRequests()

	h := handlers.New(ar, handlers.WithCORSOrigins(cfg.CORSOrigins...))
	srv := &http.Server{
		Addr:        cfg.Addr,
		Handler:     h.GetRouter(),
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("starting server at %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		defer signal.Stop(sig)

		select {
		case s := <-sig:
			log.Infof("received %s, shutting down", s)
		case <-ctx.Done():
		}

		stopRequests()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		log.Errorf("server stopped with error - %s", err)
	}

	log.Info("saving user and restaurant data, please wait")
	if err = ar.Shutdown(); err != nil {
		log.Errorf("failed to save data - %s", err)
	}
	if err = closeStorage(); err != nil {
		log.Errorf("failed to close storage - %s", err)
	}
}
