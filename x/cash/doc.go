/*
Package cash implements the native value ledger.

Every account holds a single balance of the native value. Value is moved
with SendMsg or by other extensions through the Controller. Registered
receivers are notified about every incoming transfer and can reject it,
which fails the whole transfer.
*/
package cash
