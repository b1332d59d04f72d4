/*
Package x contains the extensions of the payout splitter application.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together in the app package to construct the
application. This package holds the authentication contract shared by
all of them.

Note that protobuf types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `splitter.CreateMsg` in place of `splitter.SplitterCreateMsg`.
*/
package x
