// Command parleyd serves the parley store over JSON/HTTP.
//
// It trusts the X-Parley-Caller header as the caller identity; put an
// authenticating proxy in front of it for anything beyond local use.
package main
