package accessreview

import (
	"sync"
)

const (
	RatingNotSpecified = -1
	RatingMin          = 0
	RatingMax          = 5
)

// Review is one user's review of a restaurant. A Review is never modified
// after construction: a new review by the same author replaces it.
type Review struct {
	Author  string           `json:"user"`
	Ratings map[Category]int `json:"ratings"`
	Text    string           `json:"review"`
}

// NewReview builds a review from raw category names. Unknown categories,
// unrated entries and out of range values are dropped.
func NewReview(author string, ratings map[string]int, text string) *Review {
	r := &Review{
		Author:  author,
		Ratings: make(map[Category]int, len(ratings)),
		Text:    text,
	}
	for name, rating := range ratings {
		if rating == RatingNotSpecified || rating < RatingMin || rating > RatingMax {
			continue
		}
		c, ok := ResolveCategory(name)
		if !ok {
			continue
		}
		r.Ratings[c] = rating
	}

	return r
}

// HasCategories reports whether the review rates every given category.
func (r *Review) HasCategories(cs ...Category) bool {
	for _, c := range cs {
		if _, ok := r.Ratings[c]; !ok {
			return false
		}
	}
	return true
}

func (r *Review) record() *ReviewRecord {
	ratings := make(map[string]int, len(r.Ratings))
	for c, rating := range r.Ratings {
		ratings[c.String()] = rating
	}
	return &ReviewRecord{
		Ratings: ratings,
		Review:  r.Text,
	}
}

// ReviewSet holds the reviews of a single restaurant together with running
// per-category sums and counts, so averages never need a full recount.
type ReviewSet struct {
	mu       sync.RWMutex
	byAuthor map[string]*Review
	authors  []string // first insertion order
	sum      [categoriesCount]int
	count    [categoriesCount]int
}

func NewReviewSet(reviews ...*Review) *ReviewSet {
	rs := &ReviewSet{
		byAuthor: make(map[string]*Review, len(reviews)),
		authors:  make([]string, 0, len(reviews)),
	}
	for _, r := range reviews {
		rs.add(r)
	}

	return rs
}

// Add stores the review, replacing any earlier review by the same author.
func (rs *ReviewSet) Add(r *Review) {
	rs.mu.Lock()
	rs.add(r)
	rs.mu.Unlock()
}

func (rs *ReviewSet) add(r *Review) {
	old, replaced := rs.byAuthor[r.Author]

	for c := Category(0); c < categoriesCount; c++ {
		rating, rated := r.Ratings[c]
		rs.sum[c] += rating
		rs.count[c] += boolToInt(rated)

		if replaced {
			oldRating, oldRated := old.Ratings[c]
			rs.sum[c] -= oldRating
			rs.count[c] -= boolToInt(oldRated)
		}
	}

	if !replaced {
		rs.authors = append(rs.authors, r.Author)
	}
	rs.byAuthor[r.Author] = r
}

// RatingsSummary returns the mean rating of every category that has at least
// one rating. Categories without ratings are absent.
func (rs *ReviewSet) RatingsSummary() map[Category]float64 {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	summary := make(map[Category]float64)
	for c := Category(0); c < categoriesCount; c++ {
		if rs.count[c] > 0 {
			summary[c] = float64(rs.sum[c]) / float64(rs.count[c])
		}
	}

	return summary
}

// Summary is the free text summary of all reviews. Not generated yet.
func (rs *ReviewSet) Summary() string {
	return ""
}

// Filter returns, in first insertion order, the reviews rating every given
// category. Without categories all reviews are returned.
func (rs *ReviewSet) Filter(cs ...Category) []*Review {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	reviews := make([]*Review, 0, len(rs.authors))
	for _, author := range rs.authors {
		r := rs.byAuthor[author]
		if r.HasCategories(cs...) {
			reviews = append(reviews, r)
		}
	}

	return reviews
}

// Get returns the current review of the author.
func (rs *ReviewSet) Get(author string) (*Review, bool) {
	rs.mu.RLock()
	r, ok := rs.byAuthor[author]
	rs.mu.RUnlock()
	return r, ok
}

func (rs *ReviewSet) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.byAuthor)
}

func (rs *ReviewSet) records() map[string]*ReviewRecord {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	records := make(map[string]*ReviewRecord, len(rs.byAuthor))
	for author, r := range rs.byAuthor {
		records[author] = r.record()
	}
	return records
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
