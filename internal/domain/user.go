package domain

import (
	"github.com/google/uuid"
)

// Profile defaults applied to any field the caller leaves empty.
const (
	DefaultUserName   = "Jacques-Yves Cousteau"
	DefaultUserAbout  = "Explorer"
	DefaultUserAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// User is a registered member with a public profile.
// Email and HashedPassword may be empty for records created by a profile upsert.
type User struct {
	ID             string `json:"_id"`
	Name           string `json:"name"             validate:"min=2,max=30"`
	About          string `json:"about"            validate:"min=2,max=30"`
	Avatar         string `json:"avatar"           validate:"url"`
	Email          string `json:"email,omitempty"  validate:"required,email"`
	HashedPassword string `json:"-"`
}

// NewUser creates a User with a fresh ID, filling empty profile fields with
// the defaults. The password must already be hashed.
func NewUser(name, about, avatar, email, hashedPassword string) *User {
	u := &User{
		ID:             uuid.NewString(),
		Name:           name,
		About:          about,
		Avatar:         avatar,
		Email:          email,
		HashedPassword: hashedPassword,
	}
	u.applyDefaults()
	return u
}

// Validate checks a complete user document before it is inserted.
func (u *User) Validate() error {
	return validateStruct(u)
}

func (u *User) applyDefaults() {
	if u.Name == "" {
		u.Name = DefaultUserName
	}
	if u.About == "" {
		u.About = DefaultUserAbout
	}
	if u.Avatar == "" {
		u.Avatar = DefaultUserAvatar
	}
}

// UserUpdate is a partial profile change. Nil fields are left untouched.
type UserUpdate struct {
	Name   *string `validate:"omitnil,min=2,max=30"`
	About  *string `validate:"omitnil,min=2,max=30"`
	Avatar *string `validate:"omitnil,url"`
}

// Validate checks only the fields present in the update.
func (u UserUpdate) Validate() error {
	return validateStruct(u)
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.About == nil && u.Avatar == nil
}

// ApplyTo copies the present fields onto user.
func (u UserUpdate) ApplyTo(user *User) {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.About != nil {
		user.About = *u.About
	}
	if u.Avatar != nil {
		user.Avatar = *u.Avatar
	}
}

// NewUserFromUpdate builds the record an upsert inserts when no user with the
// given ID exists: the update's fields over the profile defaults.
func NewUserFromUpdate(id string, update UserUpdate) *User {
	u := &User{ID: id}
	update.ApplyTo(u)
	u.applyDefaults()
	return u
}

// ValidatePassword checks a plaintext password before hashing.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
