// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/jrazmi/taskflow/infrastructure/web"
	"github.com/jrazmi/taskflow/sdk/identity"
)

type ctxKey int

const identityKey ctxKey = iota + 1

func setIdentity(ctx context.Context, ident identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// GetIdentity returns the authenticated identity from the context.
func GetIdentity(ctx context.Context) (identity.Identity, error) {
	v, ok := ctx.Value(identityKey).(identity.Identity)
	if !ok {
		return identity.Identity{}, errors.New("identity not found in context")
	}

	return v, nil
}

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}
