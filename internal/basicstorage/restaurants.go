package basicstorage

import (
	"github.com/sergeysynergy/accessreview/internal/accessreview"
)

func (s *Storage) LoadRestaurants() (map[string]*accessreview.RestaurantRecord, error) {
	s.restaurantsMu.Lock()
	defer s.restaurantsMu.Unlock()

	if s.restaurantsFile != "" {
		records := make(map[string]*accessreview.RestaurantRecord)
		if err := readJSON(s.restaurantsFile, &records); err != nil {
			return nil, err
		}
		s.restaurants = records
	}

	return s.restaurants, nil
}

func (s *Storage) SaveRestaurants(records map[string]*accessreview.RestaurantRecord) error {
	s.restaurantsMu.Lock()
	defer s.restaurantsMu.Unlock()

	if s.restaurantsFile != "" {
		if err := writeJSON(s.restaurantsFile, records); err != nil {
			return err
		}
	}
	s.restaurants = records

	return nil
}
