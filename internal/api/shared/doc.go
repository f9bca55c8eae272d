// Package shared holds what the API handlers and middleware both need:
// response envelopes, request decoding, and request-context keys.
package shared
