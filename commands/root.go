package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const flagDebug = "debug"

// Run executes the watchd command line and returns the process exit code.
// Failures are reported on stderr as their registered code and log. Unless
// --debug is set, recovered panics and errors that were not raised through a
// registered error are reported as an internal error.
func Run(args []string, stdout, stderr io.Writer) int {
	v := newViper()
	root := newRootCmd(v)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	// Anything failing before a command starts running is a usage error.
	var started bool
	markStarted(root, &started)

	err := root.Execute()
	if err == nil {
		return 0
	}
	if !started {
		err = errors.Wrap(errors.ErrInput, err.Error())
	}
	debug := v.GetBool(flagDebug)
	code, log := errors.ABCIInfo(errors.Redact(err, debug), debug)
	fmt.Fprintf(stderr, "Error: %s (code %d)\n", log, code)
	return 1
}

func markStarted(cmd *cobra.Command, started *bool) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			*started = true
			return run(cmd, args)
		}
	}
	for _, sub := range cmd.Commands() {
		markStarted(sub, started)
	}
}

// NewRootCmd returns the watchd command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newViper())
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:           "watchd",
		Short:         "Validator registry node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.String(flagHome, DefaultHome(), "directory for config and data")
	flags.String(flagChainID, "watch-local", "chain id used for block info")
	flags.String(flagProgramID, "", "program id the record addresses are derived for")
	flags.String(flagLogLevel, "", "log level, for example main:info,*:error")
	flags.Bool(flagDebug, false, "print unredacted error details")
	for _, name := range []string{flagHome, flagChainID, flagProgramID, flagLogLevel, flagDebug} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		newKeysCmd(),
		newGenesisCmd(v),
		newInitStateCmd(v),
		newSetParamsCmd(v),
		newUpsertCmd(v),
		newShowStateCmd(v),
		newShowValidatorCmd(v),
		newListValidatorsCmd(v),
		newAddressCmd(v),
		newVersionCmd(),
	)
	return root
}

// withNode loads the configuration, opens the node and closes it once fn
// returns.
func withNode(cmd *cobra.Command, v *viper.Viper, fn func(n *node) error) error {
	cfg, err := LoadConfig(v)
	if err != nil {
		return err
	}
	logger, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	n, err := openNode(commandContext(cmd), cfg, logger.With("module", "main"))
	if err != nil {
		return err
	}
	defer n.Close()
	return fn(n)
}

// programFromConfig resolves the program id without opening the store.
func programFromConfig(v *viper.Viper) (registry.Identity, error) {
	cfg, err := LoadConfig(v)
	if err != nil {
		return registry.Identity{}, err
	}
	return cfg.Program()
}

// commandContext returns the context the command was executed with.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrType, err.Error())
	}
	_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
	return err
}
