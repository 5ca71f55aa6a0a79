package basicstorage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeysynergy/accessreview/internal/accessreview"
)

const databaseJSON = `{
  "Blue Door Cafe": {
    "restaurant_info": {"summary": "Brunch spot", "hours": "8-16", "address": "1 Main St", "phone": "555-0100"},
    "reviews": {
      "carol": {"ratings": {"FOOD": 4, "RAMP": -1}, "review": "cozy"}
    }
  }
}`

func TestMissingFiles(t *testing.T) {
	dir := t.TempDir()
	st := New(WithFiles(filepath.Join(dir, "database.json"), filepath.Join(dir, "users.json")))

	restaurants, err := st.LoadRestaurants()
	require.NoError(t, err)
	assert.Empty(t, restaurants)

	users, err := st.LoadUsers()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestBrokenFile(t *testing.T) {
	dir := t.TempDir()
	usersFile := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(usersFile, []byte("{not json"), 0o644))

	_, err := New(WithFiles(filepath.Join(dir, "database.json"), usersFile)).LoadUsers()
	assert.Error(t, err)
}

func TestFilesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	restaurantsFile := filepath.Join(dir, "database.json")
	usersFile := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(restaurantsFile, []byte(databaseJSON), 0o644))
	require.NoError(t, os.WriteFile(usersFile, []byte(`{"carol": "secret"}`), 0o644))

	ar, err := accessreview.New(New(WithFiles(restaurantsFile, usersFile)))
	require.NoError(t, err)

	token, err := ar.Register(&accessreview.Credentials{Name: "alice", Password: "pw1"})
	require.NoError(t, err)
	_, err = ar.AddReview("Blue Door Cafe", &accessreview.ReviewRequest{
		Token:   token,
		Review:  "tasty",
		Ratings: map[string]int{"food": 2, "SEATING": 3},
	})
	require.NoError(t, err)
	require.NoError(t, ar.Shutdown())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temporary files must not be left behind")

	reloaded, err := accessreview.New(New(WithFiles(restaurantsFile, usersFile)))
	require.NoError(t, err)
	assert.Equal(t, ar.Catalog.Records(), reloaded.Catalog.Records())
	assert.Equal(t, map[string]string{"alice": "pw1", "carol": "secret"}, reloaded.Sessions.Users())

	view, err := reloaded.GetData("Blue Door Cafe")
	require.NoError(t, err)
	assert.Equal(t, map[accessreview.Category]float64{
		accessreview.CategoryFood:    3,
		accessreview.CategorySeating: 3,
	}, view.AccessibilitySummary)
}

func TestInMemory(t *testing.T) {
	st := New(WithUsers(map[string]string{"carol": "secret"}))

	users, err := st.LoadUsers()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"carol": "secret"}, users)

	require.NoError(t, st.SaveUsers(map[string]string{"bob": "pw"}))
	users, err = st.LoadUsers()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"bob": "pw"}, users)
}
