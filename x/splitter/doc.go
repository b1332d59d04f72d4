/*
Package splitter implements payout splitters.

A splitter instance owns a list of recipients and distributes its whole
balance, native value or a token, evenly among them. Integer division
remainder stays with the instance and is carried to the next split. A split
either pays every recipient or nobody.

Instances are administrated by their owner through an ownership.Gate. They
are created by factories, each account being allowed to create only one
instance per factory. A factory either builds a fresh instance or clones a
template instance.

Every instance, template and factory is identified by an address derived
from a sequence, so it can hold value like any other account.
*/
package splitter
