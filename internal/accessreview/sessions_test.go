package accessreview

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsRegister(t *testing.T) {
	s := NewSessions()

	assert.True(t, s.Register(User{Name: "alice", Password: "pw1"}))
	assert.False(t, s.Register(User{Name: "alice", Password: "pw1"}))
	assert.False(t, s.Register(User{Name: "alice", Password: "other"}))
	assert.Equal(t, map[string]string{"alice": "pw1"}, s.Users())
	assert.True(t, s.HasName("alice"))
	assert.False(t, s.HasName("bob"))
}

func TestSessionsLogin(t *testing.T) {
	s := NewSessions()
	require.True(t, s.Register(User{Name: "alice", Password: "pw1"}))

	token, err := s.Login(User{Name: "alice", Password: "pw1"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, token, DefaultTokenMin)
	assert.LessOrEqual(t, token, DefaultTokenMax)

	_, err = s.Login(User{Name: "alice", Password: "wrongpw"})
	assert.ErrorIs(t, err, ErrInvalidPair)
	_, err = s.Login(User{Name: "bob", Password: "pw1"})
	assert.ErrorIs(t, err, ErrInvalidPair)

	u, ok := s.Validate(token)
	require.True(t, ok)
	assert.Equal(t, User{Name: "alice", Password: "pw1"}, u)
}

func TestSessionsMultipleTokens(t *testing.T) {
	s := NewSessions()
	alice := User{Name: "alice", Password: "pw1"}
	require.True(t, s.Register(alice))

	t1, err := s.Login(alice)
	require.NoError(t, err)
	t2, err := s.Login(alice)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
	assert.Equal(t, 2, s.ActiveTokens(alice))

	assert.True(t, s.Logout(t1))
	_, ok := s.Validate(t1)
	assert.False(t, ok)
	_, ok = s.Validate(t2)
	assert.True(t, ok)

	assert.True(t, s.Logout(t2))
	assert.Equal(t, 0, s.ActiveTokens(alice))
	_, ok = s.tokensByUser[alice]
	assert.False(t, ok, "empty token set must be dropped")
}

func TestSessionsLogoutUnknown(t *testing.T) {
	s := NewSessions()
	alice := User{Name: "alice", Password: "pw1"}
	require.True(t, s.Register(alice))
	token, err := s.Login(alice)
	require.NoError(t, err)
	require.True(t, s.Logout(token))

	assert.False(t, s.Logout(token))
	assert.False(t, s.Logout(token+1))
	assert.Empty(t, s.userByToken)
	assert.Empty(t, s.tokensByUser)
}

func TestSessionsTokenRange(t *testing.T) {
	s := NewSessions(
		WithTokenRange(10, 12),
		WithRand(rand.New(rand.NewSource(1))),
	)
	alice := User{Name: "alice", Password: "pw1"}
	require.True(t, s.Register(alice))

	seen := map[Token]bool{}
	for i := 0; i < 3; i++ {
		token, err := s.Login(alice)
		require.NoError(t, err)
		assert.True(t, token >= 10 && token <= 12)
		assert.False(t, seen[token], "token %d issued twice", token)
		seen[token] = true
	}

	_, err := s.Login(alice)
	assert.ErrorIs(t, err, ErrTokenSpaceExhausted)

	// a revoked token may be issued again
	for token := range seen {
		require.True(t, s.Logout(token))
		again, err := s.Login(alice)
		require.NoError(t, err)
		assert.Equal(t, token, again)
		break
	}
}

func TestSessionsInvalidOptions(t *testing.T) {
	s := NewSessions(WithTokenRange(5, 1), WithTokenAttempts(0), WithRand(nil))
	assert.Equal(t, DefaultTokenMin, s.tokenMin)
	assert.Equal(t, DefaultTokenMax, s.tokenMax)
	assert.Equal(t, DefaultTokenAttempts, s.attempts)
	assert.NotNil(t, s.rnd)
}

func TestSessionsConcurrentLogin(t *testing.T) {
	s := NewSessions(WithTokenRange(1, 500))
	users := make([]User, 50)
	for i := range users {
		users[i] = User{Name: string(rune('a' + i%26)) + string(rune('a' + i/26)), Password: "pw"}
		require.True(t, s.Register(users[i]))
	}

	var wg sync.WaitGroup
	tokens := make([]Token, len(users))
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := s.Login(users[i])
			assert.NoError(t, err)
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	seen := map[Token]bool{}
	for i, token := range tokens {
		assert.False(t, seen[token], "token %d issued twice", token)
		seen[token] = true

		u, ok := s.Validate(token)
		require.True(t, ok)
		assert.Equal(t, users[i], u)
	}
}
