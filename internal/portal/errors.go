package portal

import (
	"errors"
	"fmt"
)

// ErrBadCredentials indicates the portal re-rendered its login form,
// i.e. the username/password pair was rejected.
var ErrBadCredentials = errors.New("incorrect username or password")

// ErrNoSessionCookie indicates a successful login redirect that carried
// no Set-Cookie header, so no session could be established.
var ErrNoSessionCookie = errors.New("no session cookie received")

// ErrBadSessionCookie indicates a Set-Cookie header that could not be
// parsed into a name=value segment.
var ErrBadSessionCookie = errors.New("could not parse session cookie")

// ErrUnexpectedResponse indicates the portal answered a login attempt
// with a page that is neither a redirect nor its login form.
var ErrUnexpectedResponse = errors.New("unexpected response from the portal")

// UpstreamError reports a non-success HTTP status from the portal. The
// upstream body is logged server-side, never carried in the error.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("portal returned status %d", e.StatusCode)
}

// ConnectivityError reports that the portal could not be reached at all:
// DNS failure, connection refusal or timeout. Retryable by the caller.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("portal unreachable: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}
