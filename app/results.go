package app

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// CheckTxResult converts the result of a check into an ABCI response. When
// not in debug mode internal error details are redacted.
func CheckTxResult(res *paysplit.CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseCheckTx{Code: code, Log: log}
	}
	return abci.ResponseCheckTx{
		Code:      abci.CodeTypeOK,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}

// DeliverTxResult converts the result of a delivery into an ABCI response.
// Events are flattened into tags. Events of a failed delivery are never
// published.
func DeliverTxResult(res *paysplit.DeliverResult, events []paysplit.Event, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: log}
	}
	var tags []common.KVPair
	for _, ev := range events {
		tags = append(tags, ev.Tags()...)
	}
	return abci.ResponseDeliverTx{
		Code: abci.CodeTypeOK,
		Data: res.Data,
		Log:  res.Log,
		Tags: tags,
	}
}
