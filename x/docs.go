/*
Package x contains the registry extensions and the helpers they share.

Extensions implement common functionality (Handler, Initializer, query
buckets) and are combined together by the app package. Authentication is
abstracted behind the Authenticator interface, so that the extensions never
depend on how a signer was authenticated.
*/
package x
