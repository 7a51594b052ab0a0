package seed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/poiesic/phonebook/core"
	"github.com/poiesic/phonebook/directory"
	"github.com/poiesic/phonebook/storage/badger"
	"github.com/poiesic/phonebook/storage/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newLocked(t *testing.T, store *mock.MockStore) *directory.Locked {
	t.Helper()
	m, err := directory.NewManager(context.Background(), store, directory.WithLogger(quietLogger))
	require.NoError(t, err)
	return directory.NewLocked(m)
}

func TestNewSeeder(t *testing.T) {
	t.Run("requires directory", func(t *testing.T) {
		_, err := NewSeeder(nil)
		assert.ErrorIs(t, err, ErrDirectoryRequired)
	})

	t.Run("applies pool size", func(t *testing.T) {
		s, err := NewSeeder(newLocked(t, mock.NewMockStore()), WithPoolSize(3), WithLogger(quietLogger))
		require.NoError(t, err)
		defer s.Release()
		assert.Equal(t, 3, s.pool.Cap())
	})

	t.Run("pool size has a floor of one", func(t *testing.T) {
		s, err := NewSeeder(newLocked(t, mock.NewMockStore()), WithPoolSize(0))
		require.NoError(t, err)
		defer s.Release()
		assert.Equal(t, 1, s.pool.Cap())
	})
}

func TestSeeder_Load(t *testing.T) {
	store := mock.NewMockStore()
	dir := newLocked(t, store)
	s, err := NewSeeder(dir, WithPoolSize(4), WithLogger(quietLogger))
	require.NoError(t, err)
	defer s.Release()

	report, err := s.Load(context.Background(), Sample(200, core.DefaultCategories(), 1))
	require.NoError(t, err)

	assert.Equal(t, Report{Added: 200}, report)
	assert.Equal(t, 200, dir.Len())
	assert.Len(t, store.Stored(), 200)

	// a second run of the same sample only finds duplicates
	report, err = s.Load(context.Background(), Sample(200, core.DefaultCategories(), 1))
	require.NoError(t, err)
	assert.Equal(t, Report{Duplicates: 200}, report)
	assert.Equal(t, 200, report.Total())
}

func TestSeeder_LoadCountsRejections(t *testing.T) {
	store := mock.NewMockStore()
	store.InsertFunc = func(ctx context.Context, c *core.Contact) error {
		if c.Phone == "3" {
			return errors.New("disk full")
		}
		return nil
	}
	dir := newLocked(t, store)
	s, err := NewSeeder(dir, WithPoolSize(2), WithLogger(quietLogger))
	require.NoError(t, err)
	defer s.Release()

	contacts := []core.Contact{
		{Name: "Alice", Phone: "1", Category: "Family"},
		{Name: "Alias", Phone: "1", Category: "Work"},
		{Name: "Bob", Phone: "2", Category: "Rivals"},
		{Name: "Carol", Phone: "3", Category: "Work"},
		{Name: "Dan", Phone: "4", Category: "friends"},
	}

	report, err := s.Load(context.Background(), slices.Values(contacts))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, 1, report.Failed)
	assert.False(t, dir.IsDuplicate("3"))
}

func TestSeeder_LoadCancelled(t *testing.T) {
	dir := newLocked(t, mock.NewMockStore())
	s, err := NewSeeder(dir, WithLogger(quietLogger))
	require.NoError(t, err)
	defer s.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := s.Load(ctx, Sample(10, core.DefaultCategories(), 1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, report.Total())
	assert.Equal(t, 0, dir.Len())
}

func TestSeeder_Badger(t *testing.T) {
	store, err := badger.NewMemoryContactStore()
	require.NoError(t, err)

	m, err := directory.NewManager(context.Background(), store, directory.WithLogger(quietLogger))
	require.NoError(t, err)
	dir := directory.NewLocked(m)
	defer dir.Close()

	s, err := NewSeeder(dir, WithPoolSize(4), WithLogger(quietLogger))
	require.NoError(t, err)
	defer s.Release()

	report, err := s.Load(context.Background(), Sample(50, core.DefaultCategories(), 7))
	require.NoError(t, err)
	assert.Equal(t, 50, report.Added)

	stored, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 50)
}

func TestSeeder_Progress(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewSeeder(newLocked(t, mock.NewMockStore()),
		WithPoolSize(2), WithProgress(&buf, 10), WithLogger(quietLogger))
	require.NoError(t, err)
	defer s.Release()

	_, err = s.Load(context.Background(), Sample(25, core.DefaultCategories(), 3))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Progress: 10 contacts")
	assert.Contains(t, out, "Progress: 20 contacts")
	assert.Contains(t, out, "Progress: 25 contacts")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
