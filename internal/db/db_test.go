package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeysynergy/accessreview/internal/accessreview"
)

func newTestStorage(t *testing.T, path string) *Storage {
	st, err := New(path, WithDriver(DriverSQLite))
	require.NoError(t, err)
	require.NoError(t, st.Ping())
	return st
}

func TestNewWithoutDSN(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestEmptyDatabase(t *testing.T) {
	st := newTestStorage(t, filepath.Join(t.TempDir(), "accessreview.db"))
	defer st.Shutdown()

	restaurants, err := st.LoadRestaurants()
	require.NoError(t, err)
	assert.Empty(t, restaurants)

	users, err := st.LoadUsers()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUsers(t *testing.T) {
	st := newTestStorage(t, filepath.Join(t.TempDir(), "accessreview.db"))
	defer st.Shutdown()

	require.NoError(t, st.SaveUsers(map[string]string{"alice": "pw1", "bob": "pw2"}))
	require.NoError(t, st.SaveUsers(map[string]string{"alice": "pw1", "carol": "pw3"}))

	users, err := st.LoadUsers()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"alice": "pw1", "carol": "pw3"}, users)
}

func TestRestaurantsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accessreview.db")
	st := newTestStorage(t, path)

	records := map[string]*accessreview.RestaurantRecord{
		"Blue Door Cafe": {
			RestaurantInfo: accessreview.RestaurantInfo{Summary: "Brunch spot", Hours: "8-16", Address: "1 Main St", Phone: "555-0100"},
			Reviews: map[string]*accessreview.ReviewRecord{
				"carol": {Ratings: map[string]int{"FOOD": 4, "RAMP": 2}, Review: "cozy"},
				"dave":  {Ratings: map[string]int{}, Review: "no ratings"},
			},
		},
		"Corner Bistro": {
			RestaurantInfo: accessreview.RestaurantInfo{Summary: "Bistro"},
			Reviews:        map[string]*accessreview.ReviewRecord{},
		},
	}
	require.NoError(t, st.SaveRestaurants(records))
	require.NoError(t, st.SaveUsers(map[string]string{"carol": "secret"}))
	require.NoError(t, st.Shutdown())

	// reopen to make sure the data reached the file
	st = newTestStorage(t, path)
	defer st.Shutdown()

	loaded, err := st.LoadRestaurants()
	require.NoError(t, err)
	assert.Equal(t, records, loaded)

	ar, err := accessreview.New(st)
	require.NoError(t, err)
	token, err := ar.Login(&accessreview.Credentials{Name: "carol", Password: "secret"})
	require.NoError(t, err)
	_, err = ar.AddReview("Corner Bistro", &accessreview.ReviewRequest{Token: token, Ratings: map[string]int{"MENU": 5}})
	require.NoError(t, err)
	require.NoError(t, ar.Shutdown())

	loaded, err = st.LoadRestaurants()
	require.NoError(t, err)
	assert.Equal(t, ar.Catalog.Records(), loaded)
}
