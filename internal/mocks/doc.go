// Package mocks provides centralized mock implementations for testing.
//
// Each mock has a function field per interface method. A nil field falls back
// to a simple default, usually the zero value plus the mock's Err field, so
// tests only set the behavior they care about.
//
//	tokens := &mocks.MockTokenService{
//	    IssueFn: func(ctx context.Context, subjectID string) (string, error) {
//	        return "mocked-token", nil
//	    },
//	}
package mocks
