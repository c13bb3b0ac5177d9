// Package app bootstraps the service: it loads configuration, builds
// the token signer, session store, portal client, auth endpoints and
// MCP server, and runs them on a single listener until shutdown.
package app
