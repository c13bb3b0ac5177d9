// Package token implements the signed-token primitives used to bridge
// the MCP tool channel and the browser login channel.
//
// A Signer mints opaque, tamper-evident bearer tokens of the form
//
//	base64url(payload|expiry) "." base64url(HMAC-SHA256 tag)
//
// under a process-wide random key. Tokens are self-describing and
// verified per use; nothing is stored server-side at mint time. Two
// payload shapes are in circulation: a bare MCP session id for login
// links, and "sessionID:examCode" for resource-scoped PDF links. The
// signer does not interpret payloads - callers parse any embedded
// structure after verification.
//
// A Blacklist records consumed single-use tokens so that a login token
// cannot be redeemed twice while still cryptographically valid. See the
// Blacklist type for the coarse clearing model and its configuration
// contract.
//
// # Security
//
// The signing key is generated at startup and never persisted or logged.
// A process restart therefore invalidates all outstanding tokens; users
// simply request a new login link. Verification failures are logged with
// the offending token for audit, never with the key.
package token
