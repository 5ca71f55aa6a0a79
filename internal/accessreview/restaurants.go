package accessreview

import (
	"sort"
	"strings"
)

type RestaurantInfo struct {
	Summary string `json:"summary"`
	Hours   string `json:"hours"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// RestaurantDetails is RestaurantInfo without the summary, which a view
// shows once at the top level.
type RestaurantDetails struct {
	Hours   string `json:"hours"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type Restaurant struct {
	Name    string
	Info    RestaurantInfo
	Reviews *ReviewSet
}

func NewRestaurant(name string, info RestaurantInfo, reviews ...*Review) *Restaurant {
	return &Restaurant{
		Name:    name,
		Info:    info,
		Reviews: NewReviewSet(reviews...),
	}
}

// RestaurantView is the display form of a restaurant.
type RestaurantView struct {
	Summary              string               `json:"summary"`
	AccessibilitySummary map[Category]float64 `json:"accessibility_summary"`
	RestaurantInfo       RestaurantDetails    `json:"restaurant_info"`
	ReviewSummary        string               `json:"review_summary"`
	Reviews              []*Review            `json:"reviews"`
}

// View prepares the restaurant for display, listing only the reviews that
// rate every given category.
func (r *Restaurant) View(cs ...Category) *RestaurantView {
	return &RestaurantView{
		Summary:              r.Info.Summary,
		AccessibilitySummary: r.Reviews.RatingsSummary(),
		RestaurantInfo: RestaurantDetails{
			Hours:   r.Info.Hours,
			Address: r.Info.Address,
			Phone:   r.Info.Phone,
		},
		ReviewSummary: r.Reviews.Summary(),
		Reviews:       r.Reviews.Filter(cs...),
	}
}

func (r *Restaurant) record() *RestaurantRecord {
	return &RestaurantRecord{
		RestaurantInfo: r.Info,
		Reviews:        r.Reviews.records(),
	}
}

// Catalog maps restaurant names to restaurants. Its membership is fixed at
// construction, only the review sets of its restaurants change afterwards.
type Catalog struct {
	byName map[string]*Restaurant
	names  []string // sorted
}

func NewCatalog(restaurants ...*Restaurant) *Catalog {
	ct := &Catalog{
		byName: make(map[string]*Restaurant, len(restaurants)),
	}
	for _, r := range restaurants {
		if _, ok := ct.byName[r.Name]; !ok {
			ct.names = append(ct.names, r.Name)
		}
		ct.byName[r.Name] = r
	}
	sort.Strings(ct.names)

	return ct
}

// NewCatalogFromRecords builds a catalog from its persisted form.
func NewCatalogFromRecords(records map[string]*RestaurantRecord) *Catalog {
	restaurants := make([]*Restaurant, 0, len(records))
	for name, rec := range records {
		if rec == nil {
			continue
		}

		authors := make([]string, 0, len(rec.Reviews))
		for author := range rec.Reviews {
			authors = append(authors, author)
		}
		sort.Strings(authors)

		reviews := make([]*Review, 0, len(authors))
		for _, author := range authors {
			rr := rec.Reviews[author]
			if rr == nil {
				continue
			}
			reviews = append(reviews, NewReview(author, rr.Ratings, rr.Review))
		}

		restaurants = append(restaurants, NewRestaurant(name, rec.RestaurantInfo, reviews...))
	}

	return NewCatalog(restaurants...)
}

func (ct *Catalog) Find(name string) (*Restaurant, bool) {
	r, ok := ct.byName[name]
	return r, ok
}

// Search returns, sorted, the names containing query. An empty query matches
// every restaurant. Matching is case sensitive.
func (ct *Catalog) Search(query string) []string {
	names := make([]string, 0, len(ct.names))
	for _, name := range ct.names {
		if query == "" || strings.Contains(name, query) {
			names = append(names, name)
		}
	}
	return names
}

// AddReview adds the review to the named restaurant.
func (ct *Catalog) AddReview(name string, review *Review) (*Restaurant, error) {
	r, ok := ct.byName[name]
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	r.Reviews.Add(review)

	return r, nil
}

func (ct *Catalog) Len() int {
	return len(ct.names)
}

// Records returns the persisted form of the catalog.
func (ct *Catalog) Records() map[string]*RestaurantRecord {
	records := make(map[string]*RestaurantRecord, len(ct.byName))
	for name, r := range ct.byName {
		records[name] = r.record()
	}
	return records
}
