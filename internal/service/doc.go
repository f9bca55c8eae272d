// Package service contains the application's use cases. UserService and
// CardService sit between the HTTP handlers and the stores: they enforce
// ownership, apply profile upserts, and classify the failures they detect
// themselves (not found, forbidden, bad credentials) as *apperr.Error values.
// Store failures are wrapped and passed through for the API layer to map.
package service
