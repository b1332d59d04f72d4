/*
Package paysplit defines the common interfaces that weave together the
payment splitter subpackages, as well as implementations of some of the
simpler components (when interfaces would be too much overhead).

Context is passed through context.Context between the executor, the
decorators and the handlers. There should exist two functions for every XYZ
of type T that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

Height, chain ID, logger and the event log are carried this way. Each
extension, such as sigs, may add its own keys to enrich the context with
specific data.

Extensions live under x/. Each extension declares its models, messages and
handlers and registers them on a Registry.
*/
package paysplit
