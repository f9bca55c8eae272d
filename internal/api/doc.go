// Package api holds the HTTP handlers for signup, signin, user profiles and
// cards. Handlers decode and validate requests, call the services and pass
// every failure to HandleAPIError, which maps store codes and application
// errors to the JSON error body.
package api
