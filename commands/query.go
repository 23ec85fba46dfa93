package commands

import (
	"fmt"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/x/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type addressedRecord struct {
	Address registry.Address `json:"address"`
	Record  interface{}      `json:"record"`
}

func newShowStateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "show-state",
		Short: "Print the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNode(cmd, v, func(n *node) error {
				var conf *watch.ConfigRecord
				err := n.exec.View(func(db registry.ReadOnlyKVStore) error {
					var err error
					conf, err = watch.NewConfigBucket(n.program).GetState(db)
					return err
				})
				if err != nil {
					return err
				}
				addr, _, err := watch.StateAddress(n.program)
				if err != nil {
					return err
				}
				return printJSON(cmd, addressedRecord{Address: addr, Record: conf})
			})
		},
	}
}

func newShowValidatorCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "show-validator [owner]",
		Short: "Print the record of a validator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := registry.ParseIdentity(args[0])
			if err != nil {
				return errors.Wrap(err, "owner")
			}
			return withNode(cmd, v, func(n *node) error {
				var rec *watch.ValidatorRecord
				err := n.exec.View(func(db registry.ReadOnlyKVStore) error {
					var err error
					rec, err = watch.NewValidatorBucket(n.program).GetByOwner(db, owner)
					return err
				})
				if err != nil {
					return err
				}
				addr, _, err := watch.ValidatorAddress(n.program, owner)
				if err != nil {
					return err
				}
				return printJSON(cmd, addressedRecord{Address: addr, Record: rec})
			})
		},
	}
}

func newListValidatorsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list-validators",
		Short: "Print all validator records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNode(cmd, v, func(n *node) error {
				models, err := n.exec.Query("/watch/validators", registry.PrefixQueryMod, nil)
				if err != nil {
					return err
				}
				records := make([]*watch.ValidatorRecord, 0, len(models))
				for _, m := range models {
					var rec watch.ValidatorRecord
					if err := rec.Unmarshal(m.Value); err != nil {
						return errors.Wrapf(err, "key %x", m.Key)
					}
					records = append(records, &rec)
				}
				return printJSON(cmd, records)
			})
		},
	}
}

func newAddressCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "address [owner]",
		Short: "Print the derived record address of a validator, or of the configuration without an owner",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := programFromConfig(v)
			if err != nil {
				return err
			}
			var (
				addr  registry.Address
				nonce byte
			)
			if len(args) == 0 {
				addr, nonce, err = watch.StateAddress(program)
			} else {
				owner, perr := registry.ParseIdentity(args[0])
				if perr != nil {
					return errors.Wrap(perr, "owner")
				}
				addr, nonce, err = watch.ValidatorAddress(program, owner)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, struct {
				Address registry.Address `json:"address"`
				Nonce   byte             `json:"nonce"`
			}{addr, nonce})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), registry.Version())
			return err
		},
	}
}
