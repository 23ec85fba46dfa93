/*
Package app contains the pieces needed to run the registry: a Router that
dispatches messages to the extension handlers, a chain of Decorators, the
genesis loader and the Executor that runs every message atomically on top
of a committed store and publishes the resulting events.
*/
package app
