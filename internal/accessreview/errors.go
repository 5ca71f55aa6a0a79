package accessreview

import "errors"

var (
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrLoginAlreadyTaken   = errors.New("login already taken")
	ErrInvalidPair         = errors.New("invalid login/password pair")
	ErrUnauthorizedAccess  = errors.New("unauthorized access")
	ErrSessionNotFound     = errors.New("session not found")
	ErrTokenSpaceExhausted = errors.New("no free session token found")
	ErrSessionIssue        = errors.New("failed to create session for registered user")
)
