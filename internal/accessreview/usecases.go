package accessreview

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Register adds a new user and logs them in.
func (ar *AccessReview) Register(creds *Credentials) (Token, error) {
	if !ar.Sessions.Register(creds.User()) {
		return 0, ErrLoginAlreadyTaken
	}

	token, err := ar.Sessions.Login(creds.User())
	if err != nil {
		return 0, fmt.Errorf("%w `%s` - %v", ErrSessionIssue, creds.Name, err)
	}
	log.WithField("user", creds.Name).Debug("user registered")

	return token, nil
}

// Login tells an unknown name (ErrUserNotFound) from a wrong password
// (ErrInvalidPair).
func (ar *AccessReview) Login(creds *Credentials) (Token, error) {
	token, err := ar.Sessions.Login(creds.User())
	if errors.Is(err, ErrInvalidPair) && !ar.Sessions.HasName(creds.Name) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	log.WithField("user", creds.Name).Debug("session created")

	return token, nil
}

func (ar *AccessReview) Logout(token Token) error {
	if !ar.Sessions.Logout(token) {
		return ErrSessionNotFound
	}

	return nil
}

func (ar *AccessReview) Search(query string) []string {
	return ar.Catalog.Search(query)
}

func (ar *AccessReview) GetData(restaurant string, filters ...string) (*RestaurantView, error) {
	r, ok := ar.Catalog.Find(restaurant)
	if !ok {
		return nil, ErrRestaurantNotFound
	}

	return r.View(ResolveCategories(filters...)...), nil
}

// AddReview posts the review under the name of the token's owner.
func (ar *AccessReview) AddReview(restaurant string, req *ReviewRequest) (*RestaurantView, error) {
	u, ok := ar.Sessions.Validate(req.Token)
	if !ok {
		return nil, ErrUnauthorizedAccess
	}

	review := NewReview(u.Name, req.Ratings, req.Review)
	r, err := ar.Catalog.AddReview(restaurant, review)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"user":       u.Name,
		"restaurant": restaurant,
	}).Debug("review added")

	return r.View(), nil
}

func (ar *AccessReview) FilterReviews(restaurant string, filters ...string) ([]*Review, error) {
	r, ok := ar.Catalog.Find(restaurant)
	if !ok {
		return nil, ErrRestaurantNotFound
	}

	return r.Reviews.Filter(ResolveCategories(filters...)...), nil
}
