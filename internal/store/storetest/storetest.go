// Package storetest holds behavioral tests every store implementation must
// pass. Backends call RunUserStore and RunCardStore from their own tests.
package storetest

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CleanupFunc releases whatever a factory allocated. It may be nil.
type CleanupFunc = func()

// Factory returns a fresh, empty pair of stores.
type Factory func(t *testing.T) (store.UserStore, store.CardStore, CleanupFunc)

func strPtr(s string) *string { return &s }

func open(t *testing.T, newStores Factory) (store.UserStore, store.CardStore) {
	t.Helper()
	users, cards, cleanup := newStores(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}
	return users, cards
}

func requireCode(t *testing.T, err error, want store.Code) *store.Error {
	t.Helper()
	require.Error(t, err)
	storeErr, ok := store.AsError(err)
	require.True(t, ok, "expected *store.Error, got %T: %v", err, err)
	require.Equal(t, want, storeErr.Code)
	return storeErr
}

// idForms returns spellings of a canonical id that parse to the same UUID.
func idForms(id string) []string {
	return []string{
		strings.ToUpper(id),
		"{" + id + "}",
		strings.ReplaceAll(id, "-", ""),
	}
}

// NewTestUser returns a valid user with a unique email.
func NewTestUser() *domain.User {
	email := "user-" + uuid.NewString()[:8] + "@example.com"
	return domain.NewUser("Jacques", "Explorer", "", email, "$2a$10$hash")
}

// RunUserStore exercises the UserStore contract.
func RunUserStore(t *testing.T, newStores Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		users, _ := open(t, newStores)
		u := NewTestUser()

		created, err := users.Create(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, u.ID, created.ID)
		assert.Equal(t, u.HashedPassword, created.HashedPassword)

		byID, err := users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, u.Email, byID.Email)
		assert.Equal(t, domain.DefaultUserAvatar, byID.Avatar)

		byEmail, err := users.FindByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, u.ID, byEmail.ID)
		assert.Equal(t, u.HashedPassword, byEmail.HashedPassword)

		all, err := users.Find(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("absent records are nil", func(t *testing.T) {
		users, _ := open(t, newStores)

		u, err := users.FindByID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, u)

		u, err = users.FindByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, u)

		all, err := users.Find(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("malformed id is a cast error", func(t *testing.T) {
		users, _ := open(t, newStores)

		_, err := users.FindByID(ctx, "123")
		storeErr := requireCode(t, err, store.CodeCast)
		assert.Equal(t, "123", storeErr.Value)

		_, err = users.FindByIDAndUpdate(ctx, "123", domain.UserUpdate{Name: strPtr("Marie")},
			store.UpdateOptions{Upsert: true, RunValidators: true})
		requireCode(t, err, store.CodeCast)
	})

	t.Run("non-standard id forms resolve", func(t *testing.T) {
		users, _ := open(t, newStores)
		u := NewTestUser()
		_, err := users.Create(ctx, u)
		require.NoError(t, err)

		for _, form := range idForms(u.ID) {
			found, err := users.FindByID(ctx, form)
			require.NoError(t, err, form)
			require.NotNil(t, found, form)
			assert.Equal(t, u.ID, found.ID)
		}

		updated, err := users.FindByIDAndUpdate(ctx, strings.ToUpper(u.ID), domain.UserUpdate{About: strPtr("Sailor")},
			store.UpdateOptions{Upsert: true, RunValidators: true})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, u.ID, updated.ID)
		assert.Equal(t, u.Email, updated.Email)

		all, err := users.Find(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1, "an update through another spelling must not create a second user")
	})

	t.Run("records are stored under the canonical id", func(t *testing.T) {
		users, _ := open(t, newStores)
		u := NewTestUser()
		canonical := u.ID
		u.ID = strings.ToUpper(canonical)

		created, err := users.Create(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, canonical, created.ID)

		id := uuid.NewString()
		upserted, err := users.FindByIDAndUpdate(ctx, "{"+id+"}", domain.UserUpdate{Name: strPtr("Marie")},
			store.UpdateOptions{Upsert: true, RunValidators: true})
		require.NoError(t, err)
		require.NotNil(t, upserted)
		assert.Equal(t, id, upserted.ID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		users, _ := open(t, newStores)
		first := NewTestUser()
		_, err := users.Create(ctx, first)
		require.NoError(t, err)

		second := domain.NewUser("Other", "Person", "", first.Email, "$2a$10$other")
		_, err = users.Create(ctx, second)
		storeErr := requireCode(t, err, store.CodeDuplicateKey)
		assert.Equal(t, first.Email, storeErr.Value)
		assert.ErrorIs(t, err, store.ErrDuplicate)

		kept, err := users.FindByEmail(ctx, first.Email)
		require.NoError(t, err)
		require.NotNil(t, kept)
		assert.Equal(t, first.ID, kept.ID)
		assert.Equal(t, "Jacques", kept.Name)
	})

	t.Run("invalid document is a validation error", func(t *testing.T) {
		users, _ := open(t, newStores)
		u := NewTestUser()
		u.Name = "J"

		_, err := users.Create(ctx, u)
		storeErr := requireCode(t, err, store.CodeValidation)
		assert.Equal(t, "Name", storeErr.Field)

		found, err := users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("partial update", func(t *testing.T) {
		users, _ := open(t, newStores)
		u := NewTestUser()
		_, err := users.Create(ctx, u)
		require.NoError(t, err)

		updated, err := users.FindByIDAndUpdate(ctx, u.ID, domain.UserUpdate{About: strPtr("Sailor")},
			store.UpdateOptions{Upsert: true, RunValidators: true})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Sailor", updated.About)
		assert.Equal(t, "Jacques", updated.Name)
		assert.Equal(t, u.Email, updated.Email)

		again, err := users.FindByIDAndUpdate(ctx, u.ID, domain.UserUpdate{About: strPtr("Sailor")},
			store.UpdateOptions{Upsert: true, RunValidators: true})
		require.NoError(t, err)
		assert.Equal(t, updated, again, "repeating an update must be idempotent")
	})

	t.Run("upsert creates missing record", func(t *testing.T) {
		users, _ := open(t, newStores)
		id := uuid.NewString()

		created, err := users.FindByIDAndUpdate(ctx, id,
			domain.UserUpdate{Avatar: strPtr("https://example.com/me.png")},
			store.UpdateOptions{Upsert: true, RunValidators: true})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, id, created.ID)
		assert.Equal(t, "https://example.com/me.png", created.Avatar)
		assert.Equal(t, domain.DefaultUserName, created.Name)
		assert.Equal(t, domain.DefaultUserAbout, created.About)
		assert.Empty(t, created.Email)

		found, err := users.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("update without upsert leaves missing record absent", func(t *testing.T) {
		users, _ := open(t, newStores)
		id := uuid.NewString()

		u, err := users.FindByIDAndUpdate(ctx, id, domain.UserUpdate{Name: strPtr("Marie")},
			store.UpdateOptions{RunValidators: true})
		require.NoError(t, err)
		assert.Nil(t, u)

		found, err := users.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("invalid update is rejected", func(t *testing.T) {
		users, _ := open(t, newStores)
		u := NewTestUser()
		_, err := users.Create(ctx, u)
		require.NoError(t, err)

		_, err = users.FindByIDAndUpdate(ctx, u.ID, domain.UserUpdate{Name: strPtr(strings.Repeat("a", 31))},
			store.UpdateOptions{Upsert: true, RunValidators: true})
		requireCode(t, err, store.CodeValidation)

		found, err := users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jacques", found.Name)
	})
}

// RunCardStore exercises the CardStore contract.
func RunCardStore(t *testing.T, newStores Factory) {
	t.Helper()
	ctx := context.Background()

	// seed creates an owner, since SQL backends enforce the owner reference.
	seed := func(t *testing.T, users store.UserStore, cards store.CardStore) (*domain.User, *domain.Card) {
		t.Helper()
		owner := NewTestUser()
		_, err := users.Create(ctx, owner)
		require.NoError(t, err)

		card := domain.NewCard("Lake Baikal", "https://example.com/baikal.jpg", owner.ID)
		_, err = cards.Create(ctx, card)
		require.NoError(t, err)
		return owner, card
	}

	t.Run("create and find", func(t *testing.T) {
		users, cards := open(t, newStores)
		owner, card := seed(t, users, cards)

		found, err := cards.FindByID(ctx, card.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, owner.ID, found.Owner)
		assert.Equal(t, "Lake Baikal", found.Name)
		assert.NotNil(t, found.Likes)
		assert.Empty(t, found.Likes)
		assert.WithinDuration(t, card.CreatedAt, found.CreatedAt, 0)

		all, err := cards.Find(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, card.ID, all[0].ID)
	})

	t.Run("absent and malformed", func(t *testing.T) {
		_, cards := open(t, newStores)

		found, err := cards.FindByID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, found)

		_, err = cards.FindByID(ctx, "not-a-card")
		requireCode(t, err, store.CodeCast)

		_, err = cards.FindByIDAndRemove(ctx, "not-a-card")
		requireCode(t, err, store.CodeCast)

		_, err = cards.AddLike(ctx, "not-a-card", uuid.NewString())
		requireCode(t, err, store.CodeCast)

		removed, err := cards.FindByIDAndRemove(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, removed)

		liked, err := cards.AddLike(ctx, uuid.NewString(), uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, liked)

		unliked, err := cards.RemoveLike(ctx, uuid.NewString(), uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, unliked)
	})

	t.Run("invalid card is a validation error", func(t *testing.T) {
		users, cards := open(t, newStores)
		owner := NewTestUser()
		_, err := users.Create(ctx, owner)
		require.NoError(t, err)

		_, err = cards.Create(ctx, domain.NewCard("Arkhyz", "not a link", owner.ID))
		storeErr := requireCode(t, err, store.CodeValidation)
		assert.Equal(t, "Link", storeErr.Field)
	})

	t.Run("card for unknown owner is a validation error", func(t *testing.T) {
		_, cards := open(t, newStores)
		card := domain.NewCard("Arkhyz", "https://example.com/arkhyz.jpg", uuid.NewString())

		_, err := cards.Create(ctx, card)
		requireCode(t, err, store.CodeValidation)

		found, err := cards.FindByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("non-standard id forms resolve", func(t *testing.T) {
		users, cards := open(t, newStores)
		_, card := seed(t, users, cards)
		fan := uuid.NewString()

		for _, form := range idForms(card.ID) {
			found, err := cards.FindByID(ctx, form)
			require.NoError(t, err, form)
			require.NotNil(t, found, form)
			assert.Equal(t, card.ID, found.ID)
		}

		liked, err := cards.AddLike(ctx, strings.ToUpper(card.ID), strings.ToUpper(fan))
		require.NoError(t, err)
		require.NotNil(t, liked)
		assert.Equal(t, []string{fan}, liked.Likes)

		liked, err = cards.AddLike(ctx, card.ID, fan)
		require.NoError(t, err)
		assert.Equal(t, []string{fan}, liked.Likes, "spellings of one user are one like")

		unliked, err := cards.RemoveLike(ctx, "{"+card.ID+"}", "{"+fan+"}")
		require.NoError(t, err)
		require.NotNil(t, unliked)
		assert.Empty(t, unliked.Likes)

		removed, err := cards.FindByIDAndRemove(ctx, strings.ReplaceAll(card.ID, "-", ""))
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, card.ID, removed.ID)
	})

	t.Run("cards are stored under the canonical id", func(t *testing.T) {
		users, cards := open(t, newStores)
		owner := NewTestUser()
		_, err := users.Create(ctx, owner)
		require.NoError(t, err)

		card := domain.NewCard("Dombai", "https://example.com/dombai.jpg", strings.ToUpper(owner.ID))
		canonical := card.ID
		card.ID = strings.ToUpper(canonical)

		created, err := cards.Create(ctx, card)
		require.NoError(t, err)
		assert.Equal(t, canonical, created.ID)
		assert.Equal(t, owner.ID, created.Owner)
	})

	t.Run("likes behave as a set", func(t *testing.T) {
		users, cards := open(t, newStores)
		_, card := seed(t, users, cards)
		fan := uuid.NewString()

		liked, err := cards.AddLike(ctx, card.ID, fan)
		require.NoError(t, err)
		require.NotNil(t, liked)
		assert.Equal(t, []string{fan}, liked.Likes)

		liked, err = cards.AddLike(ctx, card.ID, fan)
		require.NoError(t, err)
		assert.Equal(t, []string{fan}, liked.Likes)

		unliked, err := cards.RemoveLike(ctx, card.ID, fan)
		require.NoError(t, err)
		require.NotNil(t, unliked)
		assert.Empty(t, unliked.Likes)

		unliked, err = cards.RemoveLike(ctx, card.ID, fan)
		require.NoError(t, err)
		assert.Empty(t, unliked.Likes)
	})

	t.Run("remove returns the deleted card once", func(t *testing.T) {
		users, cards := open(t, newStores)
		_, card := seed(t, users, cards)

		removed, err := cards.FindByIDAndRemove(ctx, card.ID)
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, card.ID, removed.ID)

		again, err := cards.FindByIDAndRemove(ctx, card.ID)
		require.NoError(t, err)
		assert.Nil(t, again)

		found, err := cards.FindByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
