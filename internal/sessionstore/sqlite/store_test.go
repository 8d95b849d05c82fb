package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lexprep/lexprep/internal/sessionstore"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	store, err := Open(":memory:")
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *StoreSuite) newSession(id string, ttl time.Duration) sessionstore.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return sessionstore.Session{
		ID:          id,
		UserID:      7,
		Email:       "student@example.com",
		BearerToken: "bearer-abc",
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

func (s *StoreSuite) TestCreateAndGet() {
	sess := s.newSession("sess-1", time.Hour)
	s.Require().NoError(s.store.Create(s.ctx, sess))

	got, err := s.store.Get(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(sess.ID, got.ID)
	s.Equal(sess.UserID, got.UserID)
	s.Equal(sess.Email, got.Email)
	s.Equal(sess.BearerToken, got.BearerToken)
	s.WithinDuration(sess.ExpiresAt, got.ExpiresAt, time.Second)
}

func (s *StoreSuite) TestGetMissingReturnsNil() {
	got, err := s.store.Get(s.ctx, "no-such-session")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *StoreSuite) TestCreateDuplicateFails() {
	sess := s.newSession("sess-1", time.Hour)
	s.Require().NoError(s.store.Create(s.ctx, sess))
	s.Error(s.store.Create(s.ctx, sess))
}

func (s *StoreSuite) TestDelete() {
	sess := s.newSession("sess-1", time.Hour)
	s.Require().NoError(s.store.Create(s.ctx, sess))
	s.Require().NoError(s.store.Delete(s.ctx, "sess-1"))

	got, err := s.store.Get(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *StoreSuite) TestDeleteMissingIsNoop() {
	s.NoError(s.store.Delete(s.ctx, "no-such-session"))
}

func (s *StoreSuite) TestDeleteExpired() {
	s.Require().NoError(s.store.Create(s.ctx, s.newSession("live", time.Hour)))
	s.Require().NoError(s.store.Create(s.ctx, s.newSession("dead-1", -time.Hour)))
	s.Require().NoError(s.store.Create(s.ctx, s.newSession("dead-2", -time.Minute)))

	n, err := s.store.DeleteExpired(s.ctx, time.Now().UTC())
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	got, err := s.store.Get(s.ctx, "live")
	s.Require().NoError(err)
	s.NotNil(got)

	got, err = s.store.Get(s.ctx, "dead-1")
	s.Require().NoError(err)
	s.Nil(got)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}
