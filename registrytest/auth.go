package registrytest

import (
	"context"
	"fmt"

	"github.com/decentralwatch/registry"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced identities.
// You can use either Signer or Signers (or both) attributes to reference
// identities. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer registry.Identity

	// Signers represents an authentication of multiple signers.
	Signers []registry.Identity
}

func (a *Auth) GetSigners(context.Context) []registry.Identity {
	if !a.Signer.IsZero() {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasSigner(ctx context.Context, id registry.Identity) bool {
	for _, s := range a.GetSigners(ctx) {
		if id.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetSigners(ctx context.Context, signers ...registry.Identity) context.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetSigners(ctx context.Context) []registry.Identity {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	ids, ok := val.([]registry.Identity)
	if !ok {
		panic(fmt.Sprintf("instead of []registry.Identity got %T", val))
	}
	return ids
}

func (a *CtxAuth) HasSigner(ctx context.Context, id registry.Identity) bool {
	for _, s := range a.GetSigners(ctx) {
		if id.Equals(s) {
			return true
		}
	}
	return false
}
