package main

import (
	"fmt"

	"github.com/iov-one/paysplit"
	"github.com/spf13/cobra"
)

func newQueryCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Read the current state",
	}
	add := func(use, short string, nargs int, run func(cmd *cobra.Command, n *node, db paysplit.ReadOnlyKVStore, addrs []paysplit.Address) error) {
		cmd.AddCommand(&cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(nargs),
			RunE: func(cmd *cobra.Command, args []string) error {
				addrs, err := parseAddresses(root.Home, args...)
				if err != nil {
					return err
				}
				n, err := openNode(root.Home, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				defer n.Close()
				return n.query(func(db paysplit.ReadOnlyKVStore) error {
					return run(cmd, n, db, addrs)
				})
			},
		})
	}

	add("splitter <address>", "Print the owner and recipients of a splitter", 1, querySplitter)
	add("balance <address>", "Print the native balance of an account", 1, queryBalance)
	add("token-balance <token> <address>", "Print the token balance of an account", 2, queryTokenBalance)
	add("created <factory> <creator>", "Print the splitter a creator built with a factory", 2, queryCreated)
	return cmd
}

func querySplitter(cmd *cobra.Command, n *node, db paysplit.ReadOnlyKVStore, addrs []paysplit.Address) error {
	ctrl := n.ctrl.Splitters
	owner, err := ctrl.Owner(db, addrs[0])
	if err != nil {
		return err
	}
	proposed, err := ctrl.ProposedOwner(db, addrs[0])
	if err != nil {
		return err
	}
	recipients, err := ctrl.AllRecipients(db, addrs[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "owner\t%s\n", owner)
	fmt.Fprintf(out, "proposed\t%s\n", proposed)
	for i, r := range recipients {
		fmt.Fprintf(out, "recipient\t%d\t%s\n", i+1, r)
	}
	return nil
}

func queryBalance(cmd *cobra.Command, n *node, db paysplit.ReadOnlyKVStore, addrs []paysplit.Address) error {
	amount, err := n.ctrl.Cash.Balance(db, addrs[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), amount)
	return err
}

func queryTokenBalance(cmd *cobra.Command, n *node, db paysplit.ReadOnlyKVStore, addrs []paysplit.Address) error {
	amount, err := n.ctrl.Tokens.Balance(db, addrs[0], addrs[1])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), amount)
	return err
}

func queryCreated(cmd *cobra.Command, n *node, db paysplit.ReadOnlyKVStore, addrs []paysplit.Address) error {
	created, err := n.ctrl.Splitters.CreatedBy(db, addrs[0], addrs[1])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), created)
	return err
}
