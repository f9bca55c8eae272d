// Package domain contains the core business entities of the API: users with
// their public profiles and the photo cards they share. Schema rules live on
// the entities as validator tags so every storage backend enforces the same
// constraints.
package domain
