package registrytest

import (
	"context"
	"testing"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/registrytest/assert"
)

func TestCtxAuth(t *testing.T) {
	a := NewIdentity()
	b := NewIdentity()

	auth := &CtxAuth{Key: "auth"}
	ctx := auth.SetSigners(context.Background(), a)

	assert.Equal(t, []registry.Identity{a}, auth.GetSigners(ctx))
	assert.Equal(t, true, auth.HasSigner(ctx, a))
	assert.Equal(t, false, auth.HasSigner(ctx, b))

	other := &CtxAuth{Key: "other"}
	assert.Equal(t, false, other.HasSigner(ctx, a))

	assert.Panics(t, func() {
		ctx := context.WithValue(context.Background(), "auth", "not identities")
		auth.GetSigners(ctx)
	})
}

func TestAuth(t *testing.T) {
	a := NewIdentity()
	b := NewIdentity()

	auth := &Auth{Signer: a}
	assert.Equal(t, true, auth.HasSigner(context.Background(), a))
	assert.Equal(t, false, auth.HasSigner(context.Background(), b))

	empty := &Auth{}
	assert.Equal(t, 0, len(empty.GetSigners(context.Background())))
}

func TestKeySignature(t *testing.T) {
	k := NewKey()
	sig := k.Sign([]byte("hello"))
	assert.Equal(t, 64, len(sig))
	if k.Identity().IsZero() {
		t.Fatal("key identity must not be zero")
	}
	if NewIdentity().Equals(NewIdentity()) {
		t.Fatal("random identities must differ")
	}
}
