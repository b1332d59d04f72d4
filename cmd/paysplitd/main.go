package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by all commands.
type rootOptions struct {
	Home string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "paysplitd",
		Short:         "Payout splitter node",
		Long:          "Manage keys and execute payout splitter transactions against a local state.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".paysplit")
	cmd.PersistentFlags().StringVar(&opts.Home, "home", defaultHome, "directory to store files under")

	cmd.AddCommand(newInitCommand(opts))
	cmd.AddCommand(newKeysCommand(opts))
	cmd.AddCommand(newTxCommand(opts))
	cmd.AddCommand(newQueryCommand(opts))
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
