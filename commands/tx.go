package commands

import (
	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/app"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/sink"
	"github.com/decentralwatch/registry/x/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagKey          = "key"
	flagCheck        = "check"
	flagAuthority    = "authority"
	flagPaused       = "paused"
	flagOwner        = "owner"
	flagGeo          = "geo"
	flagLocation     = "location"
	flagStatus       = "status"
	flagMetadataHash = "metadata_hash"
)

// txResult is printed after every executed message. Events carry their
// name the same way the sinks publish them.
type txResult struct {
	Path   string          `json:"path"`
	Height uint64          `json:"height"`
	Log    string          `json:"log,omitempty"`
	Events []sink.Envelope `json:"events,omitempty"`
}

func printTx(cmd *cobra.Command, info registry.BlockInfo, path, log string, events []registry.Event) error {
	envs, err := sink.Envelopes(info, events)
	if err != nil {
		return err
	}
	return printJSON(cmd, txResult{Path: path, Height: info.Height(), Log: log, Events: envs})
}

func newGenesisCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "genesis [file]",
		Short: "Load the genesis file into an empty store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := app.LoadGenesis(args[0])
			if err != nil {
				return err
			}
			return withNode(cmd, v, func(n *node) error {
				if gen.ChainID != "" && gen.ChainID != n.cfg.ChainID {
					return errors.Wrapf(errors.ErrInput, "genesis chain id %q, configured %q", gen.ChainID, n.cfg.ChainID)
				}
				info, err := n.nextBlock()
				if err != nil {
					return err
				}
				if info.Height() != 1 {
					return errors.Wrap(errors.ErrState, "store is not empty")
				}
				events, err := n.exec.InitChain(commandContext(cmd), gen.AppOptions, info)
				if err != nil {
					return err
				}
				if _, err := n.exec.Commit(); err != nil {
					return err
				}
				return printTx(cmd, info, "genesis", "", events)
			})
		},
	}
}

func newInitStateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-state",
		Short: "Create the configuration with the key holder as the authority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return submit(cmd, v, &watch.InitStateMsg{})
		},
	}
	addTxFlags(cmd)
	return cmd
}

func newSetParamsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-params",
		Short: "Transfer the authority or toggle the pause flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var msg watch.SetParamsMsg
			if cmd.Flags().Changed(flagAuthority) {
				raw, _ := cmd.Flags().GetString(flagAuthority)
				id, err := registry.ParseIdentity(raw)
				if err != nil {
					return errors.Wrap(err, flagAuthority)
				}
				msg.NewAuthority = &id
			}
			if cmd.Flags().Changed(flagPaused) {
				paused, _ := cmd.Flags().GetBool(flagPaused)
				msg.Paused = &paused
			}
			return submit(cmd, v, &msg)
		},
	}
	addTxFlags(cmd)
	cmd.Flags().String(flagAuthority, "", "new authority identity")
	cmd.Flags().Bool(flagPaused, false, "pause or unpause validator updates")
	return cmd
}

func newUpsertCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create or update the record of a validator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := upsertMsgFromFlags(cmd)
			if err != nil {
				return err
			}
			return submit(cmd, v, msg)
		},
	}
	addTxFlags(cmd)
	cmd.Flags().String(flagOwner, "", "validator owner identity")
	cmd.Flags().String(flagGeo, "", "ISO 3166 alpha-2 country code")
	cmd.Flags().String(flagLocation, "", "location label, at most 32 bytes")
	cmd.Flags().String(flagStatus, "pending", "pending, active, paused, banned or a number")
	cmd.Flags().String(flagMetadataHash, "", "hex encoded metadata hash")
	return cmd
}

func upsertMsgFromFlags(cmd *cobra.Command) (*watch.UpsertValidatorMsg, error) {
	var (
		msg  watch.UpsertValidatorMsg
		errs error
	)
	flags := cmd.Flags()

	owner, _ := flags.GetString(flagOwner)
	id, err := registry.ParseIdentity(owner)
	errs = errors.AppendField(errs, flagOwner, err)
	msg.Owner = id

	geo, _ := flags.GetString(flagGeo)
	msg.GeoIso2, err = watch.ParseGeoCode(geo)
	errs = errors.AppendField(errs, flagGeo, err)

	loc, _ := flags.GetString(flagLocation)
	msg.Location, err = watch.ParseLocation(loc)
	errs = errors.AppendField(errs, flagLocation, err)

	status, _ := flags.GetString(flagStatus)
	msg.Status, err = watch.ParseStatus(status)
	errs = errors.AppendField(errs, flagStatus, err)

	if hash, _ := flags.GetString(flagMetadataHash); hash != "" {
		msg.MetadataHash, err = watch.ParseHash(hash)
		errs = errors.AppendField(errs, flagMetadataHash, err)
	}
	return &msg, errs
}

func addTxFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagKey, "", "key file of the signer")
	cmd.Flags().Bool(flagCheck, false, "only check the message, do not write")
	_ = cmd.MarkFlagRequired(flagKey)
}

// submit signs msg with the key given by the flag and executes it.
func submit(cmd *cobra.Command, v *viper.Viper, msg registry.Msg) error {
	keyPath, _ := cmd.Flags().GetString(flagKey)
	signer, err := LoadKey(keyPath)
	if err != nil {
		return err
	}
	check, _ := cmd.Flags().GetBool(flagCheck)
	return withNode(cmd, v, func(n *node) error {
		info, err := n.nextBlock()
		if err != nil {
			return err
		}
		res, err := n.deliver(commandContext(cmd), signer, msg, check)
		if err != nil {
			return err
		}
		return printTx(cmd, info, msg.Path(), res.Log, res.Events)
	})
}
