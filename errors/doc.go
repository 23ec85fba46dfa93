/*
Package errors implements the coded errors used across the registry.

Reuse the root errors declared here whenever possible and register a custom
one only when an extension needs a kind of failure that no generic error
describes. Register a custom error with Register(code, description). Each
code can be registered only once.

Create error instances at the point of failure with Wrap/Wrapf or the
Error.New/Newf helpers so that a stack trace is attached once, at the lowest
frame. Do not declare a wrapped error as a package global, the stack trace
would point to the package initialization.

Once you have an error, formatting it with
	%s gives the error message
	%+v gives the message followed by the full stack trace
*/
package errors
