package accessreview

import (
	"math/rand"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Token is an opaque session handle.
type Token int64

const (
	DefaultTokenMin      Token = 1
	DefaultTokenMax      Token = 10000000
	DefaultTokenAttempts       = 1000
)

type Option func(*Sessions)

// WithTokenRange sets the inclusive range tokens are drawn from.
func WithTokenRange(min, max Token) Option {
	return func(s *Sessions) {
		if min < 1 || max < min {
			log.Warnf("ignoring invalid token range [%d, %d]", min, max)
			return
		}
		s.tokenMin = min
		s.tokenMax = max
	}
}

// WithTokenAttempts caps the number of draws Login makes to find a free token.
func WithTokenAttempts(n int) Option {
	return func(s *Sessions) {
		if n > 0 {
			s.attempts = n
		}
	}
}

func WithRand(rnd *rand.Rand) Option {
	return func(s *Sessions) {
		if rnd != nil {
			s.rnd = rnd
		}
	}
}

// Sessions keeps the registered users and their active tokens. A user may
// hold several tokens at once. Tokens stay valid until Logout.
type Sessions struct {
	mu sync.RWMutex

	rnd      *rand.Rand
	tokenMin Token
	tokenMax Token
	attempts int

	byName       map[string]User
	tokensByUser map[User]map[Token]struct{}
	userByToken  map[Token]User
}

func NewSessions(opts ...Option) *Sessions {
	s := &Sessions{
		rnd:          rand.New(rand.NewSource(time.Now().UnixNano())),
		tokenMin:     DefaultTokenMin,
		tokenMax:     DefaultTokenMax,
		attempts:     DefaultTokenAttempts,
		byName:       make(map[string]User),
		tokensByUser: make(map[User]map[Token]struct{}),
		userByToken:  make(map[Token]User),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register adds the user unless a user with the same name already exists.
// It does not log the user in.
func (s *Sessions) Register(u User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[u.Name]; ok {
		return false
	}
	s.byName[u.Name] = u

	return true
}

// Login issues a new token for a registered user. The token never collides
// with a currently active one.
func (s *Sessions) Login(u User) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registered, ok := s.byName[u.Name]
	if !ok || registered != u {
		return 0, ErrInvalidPair
	}

	token, err := s.drawToken()
	if err != nil {
		return 0, err
	}

	tokens, ok := s.tokensByUser[u]
	if !ok {
		tokens = make(map[Token]struct{})
		s.tokensByUser[u] = tokens
	}
	tokens[token] = struct{}{}
	s.userByToken[token] = u

	return token, nil
}

func (s *Sessions) drawToken() (Token, error) {
	span := int64(s.tokenMax-s.tokenMin) + 1
	if int64(len(s.userByToken)) >= span {
		return 0, ErrTokenSpaceExhausted
	}

	for i := 0; i < s.attempts; i++ {
		token := s.tokenMin + Token(s.rnd.Int63n(span))
		if _, taken := s.userByToken[token]; !taken {
			return token, nil
		}
	}

	return 0, ErrTokenSpaceExhausted
}

// Logout revokes the token. It reports false if the token is not active.
func (s *Sessions) Logout(token Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.userByToken[token]
	if !ok {
		return false
	}
	delete(s.userByToken, token)

	tokens := s.tokensByUser[u]
	delete(tokens, token)
	if len(tokens) == 0 {
		delete(s.tokensByUser, u)
	}

	return true
}

// Validate returns the user the token belongs to.
func (s *Sessions) Validate(token Token) (User, bool) {
	s.mu.RLock()
	u, ok := s.userByToken[token]
	s.mu.RUnlock()
	return u, ok
}

func (s *Sessions) HasName(name string) bool {
	s.mu.RLock()
	_, ok := s.byName[name]
	s.mu.RUnlock()
	return ok
}

// ActiveTokens returns the number of tokens the user currently holds.
func (s *Sessions) ActiveTokens(u User) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokensByUser[u])
}

// Users returns the registered users as name -> password.
func (s *Sessions) Users() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make(map[string]string, len(s.byName))
	for name, u := range s.byName {
		users[name] = u.Password
	}
	return users
}
