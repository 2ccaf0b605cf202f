package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	dir     string
	storage *Storage
	now     time.Time
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.dir = filepath.Join(s.T().TempDir(), "data")
	store, err := New(s.dir)
	s.Require().NoError(err)
	s.storage = store
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.storage.now = func() time.Time { return s.now }
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSetAndGet() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.StatsKey(), []byte(`{"wins":2}`), 0))

	got, err := s.storage.Get(s.ctx, storage.StatsKey())
	s.Require().NoError(err)
	s.Equal(`{"wins":2}`, string(got))
}

func (s *StorageSuite) TestSurvivesReopen() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.MatchKey("m1"), []byte("snap"), 0))

	reopened, err := New(s.dir)
	s.Require().NoError(err)
	got, err := reopened.Get(s.ctx, storage.MatchKey("m1"))
	s.Require().NoError(err)
	s.Equal("snap", string(got))
}

func (s *StorageSuite) TestGetMissing() {
	_, err := s.storage.Get(s.ctx, storage.StatsKey())
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestCorruptFileIsAnError() {
	s.Require().NoError(os.WriteFile(s.storage.path(storage.StatsKey()), []byte("{nope"), 0o644))

	_, err := s.storage.Get(s.ctx, storage.StatsKey())
	s.Error(err)
	s.NotErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestTTLExpiry() {
	s.Require().NoError(s.storage.Set(s.ctx, "k", []byte("v"), time.Hour))

	s.now = s.now.Add(time.Hour)
	_, err := s.storage.Get(s.ctx, "k")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestDelete() {
	s.Require().NoError(s.storage.Set(s.ctx, "k", []byte("v"), 0))
	s.Require().NoError(s.storage.Delete(s.ctx, "k"))
	s.Require().NoError(s.storage.Delete(s.ctx, "k"))

	_, err := s.storage.Get(s.ctx, "k")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestNoTempFilesLeftBehind() {
	s.Require().NoError(s.storage.Set(s.ctx, "k", []byte("v"), 0))

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Len(entries, 1)
}
