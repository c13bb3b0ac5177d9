// Package auth implements the authentication gate that fronts every MCP
// tool call.
//
// The gate runs as tool handler middleware. For every call except the
// login tool it resolves the caller's session record by MCP session id,
// fails closed when the record is absent or expired (evicting expired
// records on the spot), extends sessions that are within five minutes
// of expiry by ten minutes, and attaches the resolved record to the
// call context for the tool handler to read via SessionFromContext.
//
// Expiry check, eviction and extension happen against the store in a
// single pass, so a concurrent eviction sweep can never observe a
// half-applied decision.
package auth
