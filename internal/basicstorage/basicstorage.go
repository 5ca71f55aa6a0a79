package basicstorage

import (
	"sync"

	"github.com/sergeysynergy/accessreview/internal/accessreview"
)

// Storage keeps the latest snapshot in memory. With WithFiles every load
// reads and every save writes the JSON files.
type Storage struct {
	restaurantsFile string
	usersFile       string

	restaurantsMu sync.RWMutex
	restaurants   map[string]*accessreview.RestaurantRecord

	usersMu sync.RWMutex
	users   map[string]string
}

var _ accessreview.Storer = (*Storage)(nil)

type Option func(*Storage)

// WithFiles backs the storage with the restaurants database and users files.
func WithFiles(restaurantsFile, usersFile string) Option {
	return func(s *Storage) {
		s.restaurantsFile = restaurantsFile
		s.usersFile = usersFile
	}
}

// WithRestaurants seeds the in-memory restaurants snapshot.
func WithRestaurants(records map[string]*accessreview.RestaurantRecord) Option {
	return func(s *Storage) {
		s.restaurants = records
	}
}

// WithUsers seeds the in-memory users snapshot.
func WithUsers(users map[string]string) Option {
	return func(s *Storage) {
		s.users = users
	}
}

func New(opts ...Option) *Storage {
	s := &Storage{
		restaurants: make(map[string]*accessreview.RestaurantRecord),
		users:       make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}
