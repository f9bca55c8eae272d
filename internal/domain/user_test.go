package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestNewUser(t *testing.T) {
	user := NewUser("", "", "", "test@example.com", "hash")

	if _, err := uuid.Parse(user.ID); err != nil {
		t.Fatalf("Expected UUID id, got %q", user.ID)
	}
	if user.Name != DefaultUserName {
		t.Errorf("Expected default name, got %q", user.Name)
	}
	if user.About != DefaultUserAbout {
		t.Errorf("Expected default about, got %q", user.About)
	}
	if user.Avatar != DefaultUserAvatar {
		t.Errorf("Expected default avatar, got %q", user.Avatar)
	}
	if err := user.Validate(); err != nil {
		t.Errorf("Expected valid user, got %v", err)
	}
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(u *User)
		wantField string
	}{
		{"valid", func(u *User) {}, ""},
		{"name too short", func(u *User) { u.Name = "J" }, "Name"},
		{"name too long", func(u *User) { u.Name = strings.Repeat("a", 31) }, "Name"},
		{"about too short", func(u *User) { u.About = "x" }, "About"},
		{"bad avatar", func(u *User) { u.Avatar = "not a url" }, "Avatar"},
		{"missing email", func(u *User) { u.Email = "" }, "Email"},
		{"bad email", func(u *User) { u.Email = "invalid" }, "Email"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := NewUser("Jacques", "Explorer", "", "jc@example.com", "hash")
			tc.mutate(u)

			err := u.Validate()
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Expected ErrValidation, got %v", err)
			}
			if got := InvalidField(err); got != tc.wantField {
				t.Errorf("Expected invalid field %s, got %s", tc.wantField, got)
			}
		})
	}
}

func TestUserUpdate(t *testing.T) {
	t.Run("only present fields are validated", func(t *testing.T) {
		if err := (UserUpdate{Avatar: strPtr("https://example.com/a.png")}).Validate(); err != nil {
			t.Errorf("Expected valid update, got %v", err)
		}
		if err := (UserUpdate{Name: strPtr("x")}).Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("Expected ErrValidation, got %v", err)
		}
	})

	t.Run("apply leaves absent fields untouched", func(t *testing.T) {
		u := NewUser("Jacques", "Diver", "", "jc@example.com", "hash")
		UserUpdate{About: strPtr("Sailor")}.ApplyTo(u)

		if u.Name != "Jacques" || u.About != "Sailor" {
			t.Errorf("Unexpected profile after apply: %+v", u)
		}
	})

	t.Run("upsert record gets defaults", func(t *testing.T) {
		id := uuid.NewString()
		u := NewUserFromUpdate(id, UserUpdate{Name: strPtr("Marie")})

		if u.ID != id || u.Name != "Marie" || u.About != DefaultUserAbout || u.Avatar != DefaultUserAvatar {
			t.Errorf("Unexpected upserted user: %+v", u)
		}
		if u.Email != "" || u.HashedPassword != "" {
			t.Errorf("Expected no credentials on upserted user")
		}
	})

	t.Run("is empty", func(t *testing.T) {
		if !(UserUpdate{}).IsEmpty() {
			t.Error("Expected empty update")
		}
	})
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword(""); err != ErrEmptyPassword {
		t.Errorf("Expected %v, got %v", ErrEmptyPassword, err)
	}
	if err := ValidatePassword(strings.Repeat("p", MaxPasswordBytes+1)); err != ErrPasswordTooLong {
		t.Errorf("Expected %v, got %v", ErrPasswordTooLong, err)
	}
	if err := ValidatePassword("secret"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
