package main

import (
	"encoding/hex"
	"fmt"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/std"
	"github.com/iov-one/paysplit/x/cash"
	"github.com/iov-one/paysplit/x/splitter"
	"github.com/iov-one/paysplit/x/token"
	"github.com/spf13/cobra"
	abci "github.com/tendermint/tendermint/abci/types"
)

type txOptions struct {
	From string
	Memo string
	Data string
	Max  int32
	Tpl  string
}

// txBuilder creates the message of a transaction from command arguments.
// from is the address of the signer.
type txBuilder func(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error)

// resultFormat renders the data returned by a delivered transaction.
type resultFormat func(data []byte) (string, error)

func newTxCommand(root *rootOptions) *cobra.Command {
	opts := &txOptions{}
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Sign and execute a transaction",
		Long: `Sign and execute a transaction.

The transaction is signed with the --from key, checked, delivered and the
resulting state committed. Arguments expecting an address accept a local
key name as well.`,
	}
	cmd.PersistentFlags().StringVar(&opts.From, "from", "", "name of the key signing the transaction")

	add := func(use, short string, nargs cobra.PositionalArgs, build txBuilder, format resultFormat) *cobra.Command {
		c := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  nargs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTx(cmd, root.Home, opts, args, build, format)
			},
		}
		cmd.AddCommand(c)
		return c
	}

	send := add("send <destination> <amount>", "Send native value", cobra.ExactArgs(2), buildSend, nil)
	send.Flags().StringVar(&opts.Memo, "memo", "", "note attached to the transfer")

	add("token-create <name> <symbol> <supply>", "Create a token owned by the signer", cobra.ExactArgs(3), buildTokenCreate, formatAddress)
	add("token-transfer <token> <destination> <amount>", "Transfer tokens", cobra.ExactArgs(3), buildTokenTransfer, nil)
	call := add("token-transfer-and-call <token> <destination> <amount>", "Transfer tokens and notify the destination", cobra.ExactArgs(3), buildTokenTransferAndCall, nil)
	call.Flags().StringVar(&opts.Data, "data", "", "hex encoded data passed to the destination")

	tpl := add("create-template", "Store a template for clonable factories", cobra.NoArgs, buildCreateTemplate, formatAddress)
	tpl.Flags().Int32Var(&opts.Max, "max-recipients", 0, "recipients limit, 0 for unlimited")
	fac := add("create-factory", "Create a splitter factory", cobra.NoArgs, buildCreateFactory, formatAddress)
	fac.Flags().Int32Var(&opts.Max, "max-recipients", 0, "recipients limit of simple factory instances, 0 for unlimited")
	fac.Flags().StringVar(&opts.Tpl, "template", "", "template address, creates a clonable factory")

	add("create-splitter <factory>", "Create a splitter owned by the signer", cobra.ExactArgs(1), buildCreateSplitter, formatAddress)
	add("add-recipient <splitter> <recipient>", "Add a recipient", cobra.ExactArgs(2), buildAddRecipient, nil)
	add("remove-recipient <splitter> <recipient>", "Remove a recipient", cobra.ExactArgs(2), buildRemoveRecipient, nil)
	add("split <splitter>", "Split the native balance of a splitter", cobra.ExactArgs(1), buildSplit, formatAmount)
	add("split-tokens <splitter> <token>", "Split the token balance of a splitter", cobra.ExactArgs(2), buildSplitTokens, formatAmount)
	add("propose-owner <splitter> [candidate]", "Propose a new owner, or withdraw the proposal", cobra.RangeArgs(1, 2), buildProposeOwner, nil)
	add("claim-ownership <splitter>", "Claim a proposed ownership", cobra.ExactArgs(1), buildClaimOwnership, nil)
	return cmd
}

func runTx(cmd *cobra.Command, home string, opts *txOptions, args []string, build txBuilder, format resultFormat) error {
	if opts.From == "" {
		return errors.Wrap(errors.ErrInput, "--from is required")
	}
	key, err := loadKey(home, opts.From)
	if err != nil {
		return err
	}
	msg, err := build(home, key.PublicKey().Address(), opts, args)
	if err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	n, err := openNode(home, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer n.Close()

	chainID := n.exec.ChainID()
	var raw []byte
	err = n.query(func(db paysplit.ReadOnlyKVStore) error {
		var err error
		raw, err = std.SignedTx(n.codec, db, chainID, key, msg)
		return err
	})
	if err != nil {
		return err
	}

	if res := n.exec.CheckTx(raw); res.Code != abci.CodeTypeOK {
		return errors.Wrapf(errors.ErrInput, "check failed (code %d): %s", res.Code, res.Log)
	}
	res := n.exec.DeliverTx(raw)
	if res.Code != abci.CodeTypeOK {
		return errors.Wrapf(errors.ErrInput, "deliver failed (code %d): %s", res.Code, res.Log)
	}
	id, err := n.exec.Commit()
	if err != nil {
		return err
	}
	return printDelivered(cmd, id.Version, res, format)
}

func printDelivered(cmd *cobra.Command, height int64, res abci.ResponseDeliverTx, format resultFormat) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "height\t%d\n", height)
	if format != nil {
		s, err := format(res.Data)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "result\t%s\n", s)
	}
	for _, tag := range res.Tags {
		fmt.Fprintf(out, "%s\t%s\n", tag.Key, tag.Value)
	}
	return nil
}

func formatAddress(data []byte) (string, error) {
	return paysplit.Address(data).String(), nil
}

func formatAmount(data []byte) (string, error) {
	amount, err := coin.AmountFromBytes(data)
	if err != nil {
		return "", err
	}
	return amount.String(), nil
}

func parseAddresses(home string, values ...string) ([]paysplit.Address, error) {
	addrs := make([]paysplit.Address, len(values))
	for i, v := range values {
		addr, err := resolveAddress(home, v)
		if err != nil {
			return nil, err
		}
		addrs[i] = addr
	}
	return addrs, nil
}

func buildSend(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	addrs, err := parseAddresses(home, args[0])
	if err != nil {
		return nil, err
	}
	amount, err := coin.ParseAmount(args[1])
	if err != nil {
		return nil, err
	}
	return &cash.SendMsg{Source: from, Destination: addrs[0], Amount: amount, Memo: opts.Memo}, nil
}

func buildTokenCreate(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	supply, err := coin.ParseAmount(args[2])
	if err != nil {
		return nil, err
	}
	return &token.CreateMsg{Name: args[0], Symbol: args[1], Supply: supply}, nil
}

func buildTokenTransfer(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	addrs, err := parseAddresses(home, args[0], args[1])
	if err != nil {
		return nil, err
	}
	amount, err := coin.ParseAmount(args[2])
	if err != nil {
		return nil, err
	}
	return &token.TransferMsg{Token: addrs[0], Source: from, Destination: addrs[1], Amount: amount}, nil
}

func buildTokenTransferAndCall(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	addrs, err := parseAddresses(home, args[0], args[1])
	if err != nil {
		return nil, err
	}
	amount, err := coin.ParseAmount(args[2])
	if err != nil {
		return nil, err
	}
	data, err := hex.DecodeString(opts.Data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "data must be hex encoded")
	}
	return &token.TransferAndCallMsg{Token: addrs[0], Source: from, Destination: addrs[1], Amount: amount, Data: data}, nil
}

func buildCreateTemplate(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	return &splitter.CreateTemplateMsg{MaxRecipients: opts.Max}, nil
}

func buildCreateFactory(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	var tpl paysplit.Address
	if opts.Tpl != "" {
		addrs, err := parseAddresses(home, opts.Tpl)
		if err != nil {
			return nil, err
		}
		tpl = addrs[0]
	}
	return &splitter.CreateFactoryMsg{Template: tpl, MaxRecipients: opts.Max}, nil
}

func buildCreateSplitter(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	addrs, err := parseAddresses(home, args...)
	if err != nil {
		return nil, err
	}
	return &splitter.CreateSplitterMsg{Factory: addrs[0]}, nil
}

func buildAddRecipient(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	addrs, err := parseAddresses(home, args...)
	if err != nil {
		return nil, err
	}
	return &splitter.AddRecipientMsg{Splitter: addrs[0], Recipient: addrs[1]}, nil
}

func buildRemoveRecipient(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	addrs, err := parseAddresses(home, args...)
	if err != nil {
		return nil, err
	}
	return &splitter.RemoveRecipientMsg{Splitter: addrs[0], Recipient: addrs[1]}, nil
}

func buildSplit(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	addrs, err := parseAddresses(home, args...)
	if err != nil {
		return nil, err
	}
	return &splitter.SplitMsg{Splitter: addrs[0]}, nil
}

func buildSplitTokens(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	addrs, err := parseAddresses(home, args...)
	if err != nil {
		return nil, err
	}
	return &splitter.SplitTokensMsg{Splitter: addrs[0], Token: addrs[1]}, nil
}

func buildProposeOwner(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	addrs, err := parseAddresses(home, args...)
	if err != nil {
		return nil, err
	}
	msg := &splitter.ProposeOwnerMsg{Splitter: addrs[0]}
	if len(addrs) == 2 {
		msg.Candidate = addrs[1]
	}
	return msg, nil
}

func buildClaimOwnership(home string, from paysplit.Address, opts *txOptions, args []string) (paysplit.Msg, error) {
	addrs, err := parseAddresses(home, args...)
	if err != nil {
		return nil, err
	}
	return &splitter.ClaimOwnershipMsg{Splitter: addrs[0]}, nil
}
