/*
Package ownership implements a two step ownership transfer gate.

A gate holds the current owner and an optional proposed owner. Only the
owner can propose a successor and only the proposed account can claim the
ownership. Every mutating operation of an owned entity is guarded by
Authorize.
*/
package ownership
