/*
Package x contains the extensions of the ledger and the helpers they share.

Extensions implement common functionality (Handler, Decorator, Initializer)
and are combined together by the app to construct the state machine. Each
extension receives an Authenticator in its constructor, so that the way a
signer is established can be replaced without touching the extension.
*/
package x
