/*
Package registry defines the interfaces shared by all parts of the validator
registry: storage, messages, handlers, authentication results and events.
It also contains the identity and record address types together with the
deterministic address derivation used to locate every stored record.

Extensions live under x/. Each of them declares its messages, models and
handlers and plugs into the app package, which executes a message against a
cache wrapped store and publishes the emitted events once the change is
written.
*/
package registry
