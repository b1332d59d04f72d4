package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/paysplit/app"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/std"
	"github.com/spf13/cobra"
)

type initOptions struct {
	ChainID  string
	Genesis  string
	Rich     string
	Amount   string
	LogLevel string
	Backend  string
}

func newInitCommand(root *rootOptions) *cobra.Command {
	opts := &initOptions{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the home directory and the genesis state",
		Long: `Initialize the home directory and the genesis state.

Unless a genesis file is given, a development genesis is generated. It
assigns the whole supply to the rich account and declares one simple
factory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, root.Home, opts)
		},
	}
	cmd.Flags().StringVar(&opts.ChainID, "chain-id", "", "chain ID of the development genesis")
	cmd.Flags().StringVar(&opts.Genesis, "genesis", "", "path to a genesis file to use instead of a development one")
	cmd.Flags().StringVar(&opts.Rich, "rich", "", "key name or address receiving the initial supply")
	cmd.Flags().StringVar(&opts.Amount, "amount", "1000000", "initial supply")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", DefaultConfig().LogLevel, "log level: debug, info, error or none")
	cmd.Flags().StringVar(&opts.Backend, "db-backend", DefaultConfig().DBBackend, "state database, goleveldb or memdb")
	return cmd
}

func runInit(cmd *cobra.Command, home string, opts *initOptions) error {
	gen, err := initGenesis(home, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return errors.Wrapf(errors.ErrInput, "home dir: %s", err)
	}
	cfg := DefaultConfig()
	cfg.ChainID = gen.ChainID
	cfg.LogLevel = opts.LogLevel
	cfg.DBBackend = opts.Backend
	if err := writeConfig(filepath.Join(home, configFile), cfg); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(filepath.Join(home, genesisFile), raw, 0644); err != nil {
		return errors.Wrapf(errors.ErrInput, "write genesis: %s", err)
	}

	n, err := openNode(home, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer n.Close()
	if err := n.exec.InitChain(gen, std.Initializers()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "initialized chain %s in %s\n", gen.ChainID, home)
	return err
}

func initGenesis(home string, opts *initOptions) (*app.Genesis, error) {
	if opts.Genesis != "" {
		return app.LoadGenesis(opts.Genesis)
	}
	if opts.Rich == "" {
		return nil, errors.Wrap(errors.ErrInput, "either --genesis or --rich is required")
	}
	rich, err := resolveAddress(home, opts.Rich)
	if err != nil {
		return nil, err
	}
	amount, err := coin.ParseAmount(opts.Amount)
	if err != nil {
		return nil, err
	}
	return std.DevGenesis(opts.ChainID, rich, amount)
}
