// Package httpapi exposes the store's operations over JSON/HTTP.
//
// The server half is the handler set mounted by parleyd; the client half is
// a thin typed wrapper over those routes. The caller identity rides in a
// request header; authenticating it is the deployment's concern, the
// handlers just trust what arrives. Typed store failures cross the wire as
// {kind, detail} bodies and are rebuilt into the same typed errors on the
// client side.
package httpapi
