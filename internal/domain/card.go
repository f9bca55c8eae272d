package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Card is a photo place shared by its owner. Likes is a set of user IDs.
type Card struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"      validate:"required,min=2,max=30"`
	Link      string    `json:"link"      validate:"required,url"`
	Owner     string    `json:"owner"     validate:"required"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCard creates a Card owned by owner with a fresh ID and no likes.
// It is not validated here; stores validate on insert.
func NewCard(name, link, owner string) *Card {
	return &Card{
		ID:        uuid.NewString(),
		Name:      name,
		Link:      link,
		Owner:     owner,
		Likes:     []string{},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Validate checks the card document before it is inserted.
func (c *Card) Validate() error {
	return validateStruct(c)
}

// IsOwnedBy reports whether subjectID created the card.
func (c *Card) IsOwnedBy(subjectID string) bool {
	return c.Owner == subjectID
}

// HasLike reports whether userID is in the like set.
func (c *Card) HasLike(userID string) bool {
	return slices.Contains(c.Likes, userID)
}

// AddLike adds userID to the like set. Adding an existing like is a no-op.
func (c *Card) AddLike(userID string) {
	if !c.HasLike(userID) {
		c.Likes = append(c.Likes, userID)
	}
}

// RemoveLike removes userID from the like set if present.
func (c *Card) RemoveLike(userID string) {
	c.Likes = slices.DeleteFunc(c.Likes, func(id string) bool { return id == userID })
	if c.Likes == nil {
		c.Likes = []string{}
	}
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (c *Card) Clone() *Card {
	cp := *c
	cp.Likes = slices.Clone(c.Likes)
	if cp.Likes == nil {
		cp.Likes = []string{}
	}
	return &cp
}
