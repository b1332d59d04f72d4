/*
Package errors implements coded errors for paysplit.

Reuse the root errors declared in this package whenever possible. If an
extension has to declare its own root error, use Register(code, description)
during program startup.

Create error instances with ErrXyz.New, ErrXyz.Newf or Wrap at the point of
failure so that a stacktrace is attached. When wrapping multiple times only
the most inner wrap records the stacktrace.

Test an error kind with ErrXyz.Is(err). Wrapped errors are unwrapped using
the Cause method.

	%s is just the error message
	%+v is the message followed by the stack trace
*/
package errors
