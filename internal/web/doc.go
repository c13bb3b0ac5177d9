// Package web serves the browser-facing half of rez: the login
// handshake endpoints and the token-gated PDF downloads.
//
// # The handshake, browser side
//
// The login tool hands the user a link to GET /auth/login?token=...
// carrying a signed token whose payload is their MCP session id. The
// page collects portal credentials and posts them back to the same URL.
// POST /auth/login then checks the token against the blacklist, verifies
// it, forwards the credentials to the portal, and on success creates the
// session record keyed by the embedded MCP session id and consumes the
// token. The consumption ordering matters: a failed upstream login
// leaves the token alive so the user can retry the same link until it
// expires on its own.
//
// # PDF downloads
//
// GET /pdf/result and GET /pdf/hallticket accept resource-scoped tokens
// with "sessionID:examCode" payloads, minted by the download tools. The
// document is only streamed while the underlying session is still live;
// otherwise the browser gets an error page, not a protocol error - these
// URLs are opened by humans.
package web
