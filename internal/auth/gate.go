package auth

import (
	"context"
	"time"

	"rez/internal/session"
	"rez/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// extensionWindow is how close to expiry a session must be before
	// active use extends it.
	extensionWindow = 5 * time.Minute

	// extensionDuration is how far past the current expiry an extension
	// pushes the session.
	extensionDuration = 10 * time.Minute

	// loginToolName is the one tool that must work without a session.
	loginToolName = "login"
)

// unexported, collision-proof context key
type sessionContextKeyType struct{}

var sessionContextKey = sessionContextKeyType{}

// SessionFromContext returns the session record the gate attached for
// this tool call. Tool handlers behind the gate read the session from
// here instead of resolving it again.
func SessionFromContext(ctx context.Context) (*session.Record, bool) {
	rec, ok := ctx.Value(sessionContextKey).(*session.Record)
	return rec, ok
}

// SessionIDFromContext returns the MCP session id of the calling
// client, or "" when the context carries no client session.
func SessionIDFromContext(ctx context.Context) string {
	if cs := server.ClientSessionFromContext(ctx); cs != nil {
		return cs.SessionID()
	}
	return ""
}

// Gate is the authentication check in front of every tool call. It
// resolves the caller's session record, enforces expiry, applies
// sliding-window renewal and attaches the record to the call context.
type Gate struct {
	store *session.Store
}

// NewGate creates a gate over the given session store.
func NewGate(store *session.Store) *Gate {
	return &Gate{store: store}
}

// Middleware adapts the gate to mcp-go's tool handler middleware shape,
// for installation via server.WithToolHandlerMiddleware.
func (g *Gate) Middleware(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Login is the entry into the handshake and must work
		// unauthenticated.
		if request.Params.Name == loginToolName {
			return next(ctx, request)
		}

		sessionID := SessionIDFromContext(ctx)

		rec := g.store.Get(sessionID)
		if rec == nil {
			logging.Info("Auth", "User not logged in. Session: %s", logging.TruncateSessionID(sessionID))
			return mcp.NewToolResultError(ErrNotLoggedIn.Error()), nil
		}

		now := time.Now()
		if now.After(rec.ExpiresAt) {
			g.store.Remove(sessionID)
			logging.Info("Auth", "Removing session %s expired at %s | Register no: %s",
				logging.TruncateSessionID(sessionID), rec.ExpiresAt.Format(time.RFC3339), rec.RegisterNo)
			return mcp.NewToolResultError(ErrSessionExpired.Error()), nil
		}

		// Sliding-window renewal: sessions in active use near their
		// expiry get extended in the same pass as the check, so the
		// eviction sweep cannot slip in between.
		if rec.ExpiresAt.Sub(now) <= extensionWindow {
			newExpiry := rec.ExpiresAt.Add(extensionDuration)
			if g.store.Extend(sessionID, newExpiry) {
				logging.Info("Auth", "Extending session %s from %s to %s",
					logging.TruncateSessionID(sessionID),
					rec.ExpiresAt.Format(time.RFC3339), newExpiry.Format(time.RFC3339))
				rec.ExpiresAt = newExpiry
			}
		}

		return next(context.WithValue(ctx, sessionContextKey, rec), request)
	}
}
