package accessreview

// RestaurantRecord is the persisted form of a restaurant.
type RestaurantRecord struct {
	RestaurantInfo RestaurantInfo           `json:"restaurant_info"`
	Reviews        map[string]*ReviewRecord `json:"reviews"`
}

// ReviewRecord is the persisted form of a review, keyed by its author.
type ReviewRecord struct {
	Ratings map[string]int `json:"ratings"`
	Review  string         `json:"review"`
}

// ReviewRequest is a review as posted by a logged in user.
type ReviewRequest struct {
	Token   Token          `json:"token"`
	Review  string         `json:"review"`
	Ratings map[string]int `json:"ratings"`
}

type UseCases interface {
	Register(*Credentials) (Token, error)
	Login(*Credentials) (Token, error)
	Logout(Token) error
	Search(query string) []string
	GetData(restaurant string, filters ...string) (*RestaurantView, error)
	AddReview(restaurant string, req *ReviewRequest) (*RestaurantView, error)
	FilterReviews(restaurant string, filters ...string) ([]*Review, error)
}

// Storer loads and saves whole snapshots of the restaurants and the
// registered users. Active sessions are never stored.
type Storer interface {
	LoadRestaurants() (map[string]*RestaurantRecord, error)
	SaveRestaurants(map[string]*RestaurantRecord) error

	LoadUsers() (map[string]string, error)
	SaveUsers(map[string]string) error
}
