package commands

import (
	"crypto/rand"
	"encoding/json"
	"io/ioutil"

	"github.com/btcsuite/btcutil/base58"
	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ed25519"
)

// keyFile is the on disk format of a signing key.
type keyFile struct {
	Identity   registry.Identity `json:"identity"`
	PrivateKey string            `json:"private_key"`
}

// GenerateKey creates a new ed25519 key and writes it to path. The file is
// readable by the owner only.
func GenerateKey(path string) (registry.Identity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return registry.Identity{}, errors.Wrap(errors.ErrHuman, err.Error())
	}
	id, err := registry.IdentityFromBytes(pub)
	if err != nil {
		return id, err
	}
	raw, err := json.MarshalIndent(keyFile{
		Identity:   id,
		PrivateKey: base58.Encode(priv),
	}, "", "  ")
	if err != nil {
		return id, errors.Wrap(errors.ErrType, err.Error())
	}
	if err := ioutil.WriteFile(path, raw, 0600); err != nil {
		return id, errors.Wrapf(errors.ErrInput, "cannot write key: %s", err)
	}
	return id, nil
}

// LoadKey reads a key file and returns the identity proven by the private
// key.
func LoadKey(path string) (registry.Identity, error) {
	var kf keyFile
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return registry.Identity{}, errors.Wrapf(errors.ErrInput, "cannot read key: %s", err)
	}
	if err := json.Unmarshal(raw, &kf); err != nil {
		return registry.Identity{}, errors.Wrapf(errors.ErrInput, "cannot parse key: %s", err)
	}
	priv := ed25519.PrivateKey(base58.Decode(kf.PrivateKey))
	if len(priv) != ed25519.PrivateKeySize {
		return registry.Identity{}, errors.Wrap(errors.ErrInput, "invalid private key")
	}
	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok {
		return registry.Identity{}, errors.Wrap(errors.ErrType, "public key")
	}
	id, err := registry.IdentityFromBytes(pub)
	if err != nil {
		return id, err
	}
	if !id.Equals(kf.Identity) {
		return id, errors.Wrap(errors.ErrUnauthorized, "private key does not match identity")
	}
	return id, nil
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage signing keys",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "generate [file]",
		Short: "Generate a new ed25519 key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := GenerateKey(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]registry.Identity{"identity": id})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show [file]",
		Short: "Print the identity of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := LoadKey(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]registry.Identity{"identity": id})
		},
	})
	return cmd
}
