// Package session holds the in-memory mapping from MCP session ids to
// upstream portal sessions.
//
// A Record is created when a browser login handshake completes, carries
// the captured portal cookie, and expires a fixed TTL after creation
// unless the call gate extends it on active use. Records live in process
// memory only; losing them on restart is acceptable because the TTLs are
// short and a fresh login link is one tool call away.
//
// The Store serializes every mutation under a single lock, so the
// eviction sweep can never race a concurrent Create for the same key:
// whichever writer runs second wins, and no update is lost.
package session
