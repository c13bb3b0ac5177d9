// Package tools implements the MCP tool surface of the service.
//
// The server registers eight tools. login starts the browser handshake
// by minting a signed link; the rest operate on the portal with the
// cookie from the caller's session record, which the auth gate attaches
// to the request context. Transports are streamable HTTP (default) and
// stdio, selected by configuration.
package tools
