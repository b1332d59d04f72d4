/*
Package token implements a fungible token ledger with a transfer and call
primitive.

Each token is identified by its own address. Balances are kept per token
and holder. Every transfer is reported to the registered receivers after the
balances were updated. A transfer made with TransferAndCall is flagged so
that receivers can react to the incoming tokens, for example by splitting
them further. Any receiver error fails the whole transfer.
*/
package token
