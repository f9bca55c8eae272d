// Package store defines the persistence contract for users and cards.
//
// Implementations live under internal/platform (memory and postgres). They
// agree on three things: an absent record is reported as a nil result with a
// nil error, every schema or identifier problem is a *Error carrying a Code,
// and the shared tests in internal/store/storetest pass against them.
package store
