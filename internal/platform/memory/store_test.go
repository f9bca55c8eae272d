package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
	"github.com/phrazzld/mesto-api/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) (store.UserStore, store.CardStore, storetest.CleanupFunc) {
	t.Helper()
	users := NewUserStore(nil)
	return users, NewCardStore(nil, WithOwners(users)), nil
}

func TestContract_UserStore(t *testing.T) {
	storetest.RunUserStore(t, newStores)
}

func TestContract_CardStore(t *testing.T) {
	storetest.RunCardStore(t, newStores)
}

func TestCardStore_ReturnedCardsAreCopies(t *testing.T) {
	ctx := context.Background()
	cards := NewCardStore(nil)
	card := domain.NewCard("Elbrus", "https://example.com/elbrus.jpg", uuid.NewString())
	_, err := cards.Create(ctx, card)
	require.NoError(t, err)

	found, err := cards.FindByID(ctx, card.ID)
	require.NoError(t, err)
	found.Likes = append(found.Likes, uuid.NewString())
	found.Name = "Changed"

	again, err := cards.FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Likes)
	assert.Equal(t, "Elbrus", again.Name)
}

func TestCardStore_ConcurrentLikes(t *testing.T) {
	ctx := context.Background()
	cards := NewCardStore(nil)
	card := domain.NewCard("Elbrus", "https://example.com/elbrus.jpg", uuid.NewString())
	_, err := cards.Create(ctx, card)
	require.NoError(t, err)

	const fans = 50
	var wg sync.WaitGroup
	for i := 0; i < fans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fan := uuid.NewString()
			_, err := cards.AddLike(ctx, card.ID, fan)
			assert.NoError(t, err)
			_, err = cards.AddLike(ctx, card.ID, fan)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	found, err := cards.FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Len(t, found.Likes, fans)
}

func TestCardStore_ConcurrentRemoveHasOneWinner(t *testing.T) {
	ctx := context.Background()
	cards := NewCardStore(nil)
	card := domain.NewCard("Elbrus", "https://example.com/elbrus.jpg", uuid.NewString())
	_, err := cards.Create(ctx, card)
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		removed int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := cards.FindByIDAndRemove(ctx, card.ID)
			assert.NoError(t, err)
			if c != nil {
				mu.Lock()
				removed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, removed)
}

func TestUserStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	users := NewUserStore(nil)
	_, err := users.Find(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, ok := store.AsError(err)
	assert.False(t, ok, "context errors are not coded store errors")
}

func TestUserStore_OrderIsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore(nil)

	var ids []string
	for i := 0; i < 3; i++ {
		u := domain.NewUser(fmt.Sprintf("User %d", i), "", "", fmt.Sprintf("u%d@example.com", i), "hash")
		_, err := users.Create(ctx, u)
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	all, err := users.Find(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, u := range all {
		assert.Equal(t, ids[i], u.ID)
	}
}
