package x

import (
	"context"

	"github.com/decentralwatch/registry"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding one for all extensions.
type Authenticator interface {
	// GetSigners reveals all identities that authorized the current
	// transaction.
	GetSigners(context.Context) []registry.Identity
	// HasSigner checks if given identity authorized the current
	// transaction.
	HasSigner(context.Context, registry.Identity) bool
}

// MainSigner returns the first signer if any, otherwise a zero identity.
func MainSigner(ctx context.Context, auth Authenticator) registry.Identity {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return registry.Identity{}
	}
	return signers[0]
}

type contextKey int

const signersKey contextKey = iota

// ContextAuth reads signers stored in the context by WithSigners. It is
// used by the transports that authenticate the caller before the
// transaction reaches the registry.
type ContextAuth struct{}

var _ Authenticator = ContextAuth{}

// WithSigners returns a context carrying authenticated signers. Signers
// already present in the context are kept.
func WithSigners(ctx context.Context, signers ...registry.Identity) context.Context {
	prev := ContextAuth{}.GetSigners(ctx)
	all := make([]registry.Identity, 0, len(prev)+len(signers))
	all = append(all, prev...)
	all = append(all, signers...)
	return context.WithValue(ctx, signersKey, all)
}

func (ContextAuth) GetSigners(ctx context.Context) []registry.Identity {
	ids, _ := ctx.Value(signersKey).([]registry.Identity)
	return ids
}

func (a ContextAuth) HasSigner(ctx context.Context, id registry.Identity) bool {
	for _, s := range a.GetSigners(ctx) {
		if s.Equals(id) {
			return true
		}
	}
	return false
}
