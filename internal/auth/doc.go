// Package auth implements client-side OAuth2 authentication for tools that
// cannot host a browser redirect endpoint of their own.
//
// Two flows are supported, selected by the configuration alone:
//
//   - Device-code flow: the engine requests a short code, asks the user to
//     enter it at a verification URL, and polls the token endpoint until
//     the user approves (Config.CodeEndpoint set).
//   - Relay browser flow: a third-party relay service hosts the OAuth2
//     redirect URI; the engine registers a session, sends the user through
//     the standard authorization URL, and polls the relay for the
//     resulting code before exchanging it (Config.CodeEndpoint unset).
//
// The Manager is the entry point. It reuses a still-valid token (from a
// previous run via Config.SerializedToken, or from a flow it ran earlier
// in this process) before touching the network, coalesces concurrent
// authentication attempts, and hands every newly issued token to the
// caller's persistence callback.
//
// Token persistence is an extension point: ManagerConfig.Save receives the
// serialized token and the caller loads it back on the next run. FileStore
// and KeyringStore are ready-made backends with that shape.
package auth
