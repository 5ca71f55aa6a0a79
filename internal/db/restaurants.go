package db

import (
	"context"
	"fmt"
	"sort"

	"github.com/sergeysynergy/accessreview/internal/accessreview"
)

func (s *Storage) initRestaurants(ctx context.Context) error {
	err := s.createTable(ctx, "restaurants", `
		name varchar PRIMARY KEY,
		summary varchar NOT NULL,
		hours varchar NOT NULL,
		address varchar NOT NULL,
		phone varchar NOT NULL
	`)
	if err != nil {
		return err
	}

	err = s.createTable(ctx, "reviews", `
		restaurant varchar NOT NULL,
		author varchar NOT NULL,
		review varchar NOT NULL,
		PRIMARY KEY (restaurant, author)
	`)
	if err != nil {
		return err
	}

	// one row per rated category of a review
	err = s.createTable(ctx, "ratings", `
		restaurant varchar NOT NULL,
		author varchar NOT NULL,
		category varchar NOT NULL,
		rating integer NOT NULL,
		PRIMARY KEY (restaurant, author, category)
	`)
	if err != nil {
		return err
	}

	queries := map[string]string{
		"restaurantsInsert":    "INSERT INTO restaurants (name, summary, hours, address, phone) VALUES ($1, $2, $3, $4, $5)",
		"restaurantsGetAll":    "SELECT name, summary, hours, address, phone FROM restaurants",
		"restaurantsDeleteAll": "DELETE FROM restaurants",
		"reviewsInsert":        "INSERT INTO reviews (restaurant, author, review) VALUES ($1, $2, $3)",
		"reviewsGetAll":        "SELECT restaurant, author, review FROM reviews",
		"reviewsDeleteAll":     "DELETE FROM reviews",
		"ratingsInsert":        "INSERT INTO ratings (restaurant, author, category, rating) VALUES ($1, $2, $3, $4)",
		"ratingsGetAll":        "SELECT restaurant, author, category, rating FROM ratings",
		"ratingsDeleteAll":     "DELETE FROM ratings",
	}
	for name, query := range queries {
		if err = s.prepare(name, query); err != nil {
			return err
		}
	}

	return nil
}

func (s *Storage) LoadRestaurants() (map[string]*accessreview.RestaurantRecord, error) {
	records := make(map[string]*accessreview.RestaurantRecord)

	rows, err := s.stmts["restaurantsGetAll"].QueryContext(s.ctx)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name string
		rec := &accessreview.RestaurantRecord{Reviews: make(map[string]*accessreview.ReviewRecord)}
		info := &rec.RestaurantInfo
		if err = rows.Scan(&name, &info.Summary, &info.Hours, &info.Address, &info.Phone); err != nil {
			rows.Close()
			return nil, err
		}
		records[name] = rec
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.stmts["reviewsGetAll"].QueryContext(s.ctx)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var restaurant, author, review string
		if err = rows.Scan(&restaurant, &author, &review); err != nil {
			rows.Close()
			return nil, err
		}
		rec, ok := records[restaurant]
		if !ok {
			continue
		}
		rec.Reviews[author] = &accessreview.ReviewRecord{
			Ratings: make(map[string]int),
			Review:  review,
		}
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.stmts["ratingsGetAll"].QueryContext(s.ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var restaurant, author, category string
		var rating int
		if err = rows.Scan(&restaurant, &author, &category, &rating); err != nil {
			return nil, err
		}
		rec, ok := records[restaurant]
		if !ok {
			continue
		}
		if rr, ok := rec.Reviews[author]; ok {
			rr.Ratings[category] = rating
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// SaveRestaurants replaces every stored restaurant, review and rating.
func (s *Storage) SaveRestaurants(records map[string]*accessreview.RestaurantRecord) error {
	tx, err := s.db.BeginTx(s.ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range []string{"ratingsDeleteAll", "reviewsDeleteAll", "restaurantsDeleteAll"} {
		if _, err = tx.StmtContext(s.ctx, s.stmts[name]).ExecContext(s.ctx); err != nil {
			return fmt.Errorf("failed to clear restaurants - %w", err)
		}
	}

	txRestaurant := tx.StmtContext(s.ctx, s.stmts["restaurantsInsert"])
	txReview := tx.StmtContext(s.ctx, s.stmts["reviewsInsert"])
	txRating := tx.StmtContext(s.ctx, s.stmts["ratingsInsert"])

	for _, name := range sortedKeys(records) {
		rec := records[name]
		if rec == nil {
			continue
		}
		info := rec.RestaurantInfo
		_, err = txRestaurant.ExecContext(s.ctx, name, info.Summary, info.Hours, info.Address, info.Phone)
		if err != nil {
			return fmt.Errorf("failed to insert restaurant `%s` - %w", name, err)
		}

		for _, author := range sortedKeys(rec.Reviews) {
			rr := rec.Reviews[author]
			if rr == nil {
				continue
			}
			if _, err = txReview.ExecContext(s.ctx, name, author, rr.Review); err != nil {
				return fmt.Errorf("failed to insert review by `%s` - %w", author, err)
			}

			for _, category := range sortedKeys(rr.Ratings) {
				_, err = txRating.ExecContext(s.ctx, name, author, category, rr.Ratings[category])
				if err != nil {
					return fmt.Errorf("failed to insert rating `%s` by `%s` - %w", category, author, err)
				}
			}
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("save restaurants transaction failed - %w", err)
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
