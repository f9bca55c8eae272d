package api

// SignupRequest defines the payload for the signup endpoint. Field rules are
// enforced by the user schema, not here.
type SignupRequest struct {
	Name     string `json:"name"`
	About    string `json:"about"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest defines the payload for the signin endpoint.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the successful signin body.
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest carries the profile fields to change. Absent fields
// stay nil and are left untouched.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	About *string `json:"about"`
}

// UpdateAvatarRequest carries the new avatar URL.
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar"`
}

// CreateCardRequest defines the payload for creating a card.
type CreateCardRequest struct {
	Name string `json:"name"`
	Link string `json:"link"`
}
