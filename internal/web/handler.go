package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"rez/internal/auth"
	"rez/internal/portal"
	"rez/internal/session"
	"rez/internal/token"
	"rez/pkg/logging"

	"github.com/google/uuid"
)

// Handler serves the browser-facing half of the login handshake plus
// the token-gated PDF downloads.
type Handler struct {
	signer    *token.Signer
	blacklist *token.Blacklist
	sessions  *session.Store
	portal    *portal.Client
}

// NewHandler creates the browser-facing HTTP handler.
func NewHandler(signer *token.Signer, blacklist *token.Blacklist, sessions *session.Store, portalClient *portal.Client) *Handler {
	return &Handler{
		signer:    signer,
		blacklist: blacklist,
		sessions:  sessions,
		portal:    portalClient,
	}
}

// RegisterRoutes attaches all handler endpoints to mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /auth/login", h.handleLoginPage)
	mux.HandleFunc("POST /auth/login", h.handleAuthorize)
	mux.HandleFunc("GET /pdf/result", h.handleResultPDF)
	mux.HandleFunc("GET /pdf/hallticket", h.handleHallticketPDF)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Rez MCP Server")
}

// handleLoginPage renders the credential form, or an error page when
// the login token is consumed, malformed or expired.
func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("token")

	if h.blacklist.Contains(tok) {
		renderErrorPage(w, http.StatusUnauthorized, "Oh ohhhhh!", auth.ErrTokenInvalid.Error())
		return
	}
	if _, ok := h.signer.Verify(tok); !ok {
		renderErrorPage(w, http.StatusUnauthorized, "Oh ohhhhh!", auth.ErrTokenInvalid.Error())
		return
	}

	renderLoginPage(w, tok)
}

// loginCredentials is the POST /auth/login request body.
type loginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleAuthorize drives the handshake's credential submission step:
// token checks, upstream login, session creation, token consumption.
func (h *Handler) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	attemptID := uuid.NewString()
	tok := r.URL.Query().Get("token")

	if h.blacklist.Contains(tok) {
		logging.Info("Web", "Login attempt %s rejected, token already consumed", attemptID)
		writeDetail(w, http.StatusUnauthorized, auth.ErrTokenConsumed.Error())
		return
	}

	sessionID, ok := h.signer.Verify(tok)
	if !ok {
		logging.Info("Web", "Login attempt %s rejected, token failed verification", attemptID)
		writeDetail(w, http.StatusUnauthorized, auth.ErrTokenInvalid.Error())
		return
	}

	creds, err := readCredentials(r)
	if err != nil {
		logging.Info("Web", "Login attempt %s rejected, unreadable credentials", attemptID)
		writeDetail(w, http.StatusBadRequest, "Could not read credentials from request body")
		return
	}

	logging.Info("Web", "Login attempt %s for session %s", attemptID, logging.TruncateSessionID(sessionID))

	cookie, err := h.portal.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		// The token is deliberately NOT consumed on failure: the user
		// may retry the same link until it expires on its own.
		status, detail := loginFailureResponse(err)
		logging.Warn("Web", "Login attempt %s failed (%d): %v", attemptID, status, err)
		writeDetail(w, status, detail)
		return
	}

	h.sessions.Create(sessionID, creds.Username, cookie)
	h.blacklist.Add(tok)

	logging.Info("Web", "Login attempt %s succeeded for session %s | Register no: %s",
		attemptID, logging.TruncateSessionID(sessionID), creds.Username)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Login Ok!"})
}

// readCredentials accepts either a JSON body (the login page's fetch)
// or a classic form post.
func readCredentials(r *http.Request) (loginCredentials, error) {
	var creds loginCredentials

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			return creds, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return creds, err
		}
		creds.Username = r.PostFormValue("username")
		creds.Password = r.PostFormValue("password")
	}

	if creds.Username == "" || creds.Password == "" {
		return creds, errors.New("missing username or password")
	}
	return creds, nil
}

// loginFailureResponse maps a portal login error to a status code and a
// user-facing detail string. No upstream internals leak through.
func loginFailureResponse(err error) (int, string) {
	var upstreamErr *portal.UpstreamError
	var connErr *portal.ConnectivityError

	switch {
	case errors.Is(err, portal.ErrBadCredentials):
		return http.StatusUnauthorized, "Incorrect username or password"
	case errors.Is(err, portal.ErrUnexpectedResponse):
		return http.StatusInternalServerError, "Login failed: unexpected response from the portal"
	case errors.Is(err, portal.ErrNoSessionCookie):
		return http.StatusInternalServerError, "Login failed: no session cookie received"
	case errors.Is(err, portal.ErrBadSessionCookie):
		return http.StatusInternalServerError, "Login failed: could not parse session cookie"
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway, "The portal returned an error"
	case errors.As(err, &connErr):
		return http.StatusServiceUnavailable, "Couldn't reach the portal"
	default:
		return http.StatusInternalServerError, "An unexpected internal error occurred"
	}
}

// handleResultPDF streams the result sheet for a resource token.
func (h *Handler) handleResultPDF(w http.ResponseWriter, r *http.Request) {
	h.servePDF(w, r, "RESULT", h.portal.ResultPDF)
}

// handleHallticketPDF streams the hallticket for a resource token.
func (h *Handler) handleHallticketPDF(w http.ResponseWriter, r *http.Request) {
	h.servePDF(w, r, "HT", h.portal.HallticketPDF)
}

// servePDF validates a resource token ("sessionID:examCode" payload),
// resolves the live session and streams the document fetched by fetch.
func (h *Handler) servePDF(w http.ResponseWriter, r *http.Request, filePrefix string,
	fetch func(ctx context.Context, cookie, examCode string) ([]byte, error)) {

	tok := r.URL.Query().Get("token")

	payload, ok := h.signer.Verify(tok)
	if !ok {
		renderErrorPage(w, http.StatusGone, "Oh ohhhhh!",
			"The link is invalid or expired. Please request a new one.")
		return
	}

	sessionID, examCode, found := strings.Cut(payload, ":")
	if !found {
		logging.Warn("Web", "Resource token with unscoped payload | %s", tok)
		renderErrorPage(w, http.StatusGone, "Oh ohhhhh!",
			"The link is invalid or expired. Please request a new one.")
		return
	}

	rec := h.sessions.Get(sessionID)
	if rec == nil {
		logging.Info("Web", "No session %s for PDF download. Maybe the user logged out.",
			logging.TruncateSessionID(sessionID))
		renderErrorPage(w, http.StatusUnauthorized, "Are you logged in?",
			"Oops! Your session decided to take a catnap. Time to log back in and wake it up!")
		return
	}

	pdf, err := fetch(r.Context(), rec.Cookie, examCode)
	if err != nil {
		logging.Error("Web", err, "Failed to fetch %s PDF for exam %s", filePrefix, examCode)
		renderErrorPage(w, http.StatusBadGateway, "Oh ohhhhh!",
			"Couldn't fetch the document from the portal. Please try again later.")
		return
	}

	registerNo := strings.ReplaceAll(rec.RegisterNo, " ", "")
	filename := fmt.Sprintf("%s_%s_%s.pdf", filePrefix, registerNo, examCode)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s", filename))
	w.Write(pdf)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("Web", err, "Failed to encode response body")
	}
}
