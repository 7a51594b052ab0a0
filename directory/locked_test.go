package directory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/poiesic/phonebook/core"
	"github.com/poiesic/phonebook/storage/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocked_ConcurrentAdds(t *testing.T) {
	store := mock.NewMockStore()
	m := newTestManager(t, store)
	l := NewLocked(m)
	ctx := context.Background()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	var mu sync.Mutex
	rejected := 0

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				// every worker races for the same phone numbers
				err := l.AddContact(ctx, core.Contact{
					Name:     fmt.Sprintf("worker-%d-%d", w, i),
					Phone:    fmt.Sprintf("555-%04d", i),
					Category: core.DefaultCategories()[i%3],
				})
				if err != nil {
					mu.Lock()
					rejected++
					mu.Unlock()
				}
				_ = l.IsDuplicate(fmt.Sprintf("555-%04d", i))
				_ = l.CategoryCounts()
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, perWorker, l.Len())
	assert.Equal(t, workers*perWorker-perWorker, rejected)
	assert.Len(t, store.Stored(), perWorker)
	assertConsistent(t, m)
}

func TestLocked_Delegates(t *testing.T) {
	store := mock.NewMockStore()
	l := NewLocked(newTestManager(t, store))
	ctx := context.Background()

	require.NoError(t, l.AddContact(ctx, core.Contact{Name: "Zoe", Phone: "1", Category: "Work"}))
	require.NoError(t, l.AddContact(ctx, core.Contact{Name: "Amy", Phone: "2", Category: "Work"}))

	got, ok := l.SearchByName("amy")
	require.True(t, ok)
	assert.Equal(t, "2", got.Phone)

	outcome, err := l.UpdateContact(ctx, "2", ByPhone, Changes{Email: ptr("amy@x.com")})
	require.NoError(t, err)
	assert.True(t, outcome.Persisted)

	require.NoError(t, l.SortByName(BubbleSort))
	assert.Equal(t, []string{"Amy", "Zoe"}, names(l.Contacts()))
	assert.Len(t, l.ListByCategory("Work"), 2)
	assert.Equal(t, core.DefaultCategories(), l.Categories())

	_, err = l.DeleteContact(ctx, "Zoe", ByName)
	require.NoError(t, err)
	_, ok = l.SearchByPhone("1")
	assert.False(t, ok)

	require.NoError(t, l.Clear(ctx))
	assert.Equal(t, 0, l.Len())
	require.NoError(t, l.Close())
	assert.True(t, store.Closed())
}
