package accessreview

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// AccessReview owns the process wide state: the restaurant catalog and the
// sessions. It is loaded from a Storer by New and written back by Shutdown.
type AccessReview struct {
	storage Storer

	Catalog  *Catalog
	Sessions *Sessions
}

var _ UseCases = (*AccessReview)(nil)

func New(st Storer, opts ...Option) (*AccessReview, error) {
	restaurants, err := st.LoadRestaurants()
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurants - %w", err)
	}

	users, err := st.LoadUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to load users - %w", err)
	}

	ar := &AccessReview{
		storage:  st,
		Catalog:  NewCatalogFromRecords(restaurants),
		Sessions: NewSessions(opts...),
	}
	for name, password := range users {
		ar.Sessions.Register(User{Name: name, Password: password})
	}

	log.WithFields(log.Fields{
		"restaurants": ar.Catalog.Len(),
		"users":       len(users),
	}).Info("data loaded")

	return ar, nil
}

// Shutdown saves restaurants and registered users. Sessions are dropped.
func (ar *AccessReview) Shutdown() error {
	err := ar.storage.SaveUsers(ar.Sessions.Users())
	if err != nil {
		return fmt.Errorf("failed to save users - %w", err)
	}

	err = ar.storage.SaveRestaurants(ar.Catalog.Records())
	if err != nil {
		return fmt.Errorf("failed to save restaurants - %w", err)
	}

	log.Info("user and restaurant data saved")
	return nil
}
