// Package trakt is the Trakt.tv API client. Client is the request envelope
// (authentication, fixed headers, bounded 502 retry, typed failure
// classification); the resource methods on it are thin path-and-shape
// wrappers over that envelope.
package trakt
