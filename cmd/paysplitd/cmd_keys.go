package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/crypto"
	"github.com/iov-one/paysplit/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ed25519"
)

const (
	keyExt    = ".key"
	bech32HRP = "paysplit"
)

var isKeyName = regexp.MustCompile(`^[a-zA-Z0-9_\-]{1,32}$`).MatchString

func newKeysCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage private keys",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Generate a new private key",
		Long: `Generate a new private key.

This command fails if a key with the same name already exists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := crypto.GenPrivKeyEd25519()
			if err := saveKey(opts.Home, args[0], key); err != nil {
				return err
			}
			return printKey(cmd, args[0], key)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Print the address of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := loadKey(opts.Home, args[0])
			if err != nil {
				return err
			}
			return printKey(cmd, args[0], key)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print all keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := listKeys(opts.Home)
			if err != nil {
				return err
			}
			for _, name := range names {
				key, err := loadKey(opts.Home, name)
				if err != nil {
					return err
				}
				if err := printKey(cmd, name, key); err != nil {
					return err
				}
			}
			return nil
		},
	})
	return cmd
}

func printKey(cmd *cobra.Command, name string, key *crypto.PrivateKey) error {
	addr := key.PublicKey().Address()
	b32, err := addr.Bech32(bech32HRP)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", name, addr, b32)
	return err
}

func keyPath(home, name string) (string, error) {
	if !isKeyName(name) {
		return "", errors.Wrapf(errors.ErrInput, "invalid key name %q", name)
	}
	return filepath.Join(home, keysDir, name+keyExt), nil
}

func saveKey(home, name string, key *crypto.PrivateKey) error {
	path, err := keyPath(home, name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		// Keys are never overwritten. They must be removed manually.
		return errors.Wrapf(errors.ErrDuplicate, "key %q already exists", name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrapf(errors.ErrInput, "keys dir: %s", err)
	}
	if err := ioutil.WriteFile(path, key.Ed25519, 0600); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot write private key: %s", err)
	}
	return nil
}

func loadKey(home, name string) (*crypto.PrivateKey, error) {
	path, err := keyPath(home, name)
	if err != nil {
		return nil, err
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "key %q", name)
		}
		return nil, errors.Wrapf(errors.ErrInput, "cannot read private key: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid private key length: %d", len(raw))
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}

func listKeys(home string) ([]string, error) {
	infos, err := ioutil.ReadDir(filepath.Join(home, keysDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(errors.ErrInput, "keys dir: %s", err)
	}
	var names []string
	for _, info := range infos {
		if !info.IsDir() && strings.HasSuffix(info.Name(), keyExt) {
			names = append(names, strings.TrimSuffix(info.Name(), keyExt))
		}
	}
	sort.Strings(names)
	return names, nil
}

// resolveAddress accepts either the name of a local key or any address
// format understood by ParseAddress.
func resolveAddress(home, value string) (paysplit.Address, error) {
	if isKeyName(value) {
		if key, err := loadKey(home, value); err == nil {
			return key.PublicKey().Address(), nil
		}
	}
	addr, err := paysplit.ParseAddress(value)
	if err != nil {
		return nil, errors.Wrapf(err, "address %q", value)
	}
	return addr, nil
}
