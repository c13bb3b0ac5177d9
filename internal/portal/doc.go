// Package portal implements the HTTP client for the upstream results
// portal and the scraping of its HTML pages.
//
// The portal is a legacy PHP application with several quirks the client
// has to accommodate:
//
//   - a successful login is signalled by a bare 302 redirect carrying
//     the session cookie, while a 200 means the login form was
//     re-rendered with an error
//   - the served certificate chain does not validate, so TLS
//     verification is disabled for this host
//   - authentication for data pages is a single Cookie header captured
//     at login and replayed verbatim
//
// Errors are classified so callers can map them to user-facing
// responses: ErrBadCredentials (the user's fault), UpstreamError (the
// portal answered but unhappily), ConnectivityError (the portal did not
// answer at all), and the cookie-extraction sentinels (login succeeded
// upstream but no usable session came back).
package portal
