// Package mocks provides function-field test doubles for the interfaces the
// HTTP layer depends on.
//
// Every mock falls back to fixed default values when the matching Fn field is
// nil:
//
//	jwt := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return nil, auth.ErrExpiredToken
//	    },
//	}
package mocks
