package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"rez/internal/auth"
	"rez/internal/session"
	"rez/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools wires up the tool surface. The gate middleware attaches
// the session record before any handler here runs, except for login.
func (s *Server) registerTools() {
	loginTool := mcp.NewTool("login",
		mcp.WithDescription("Initiates the user login process for the CIT Results Site. "+
			"This tool must be called before any other tool if the user is not already "+
			"authenticated. It generates a unique login URL that must be presented to the "+
			"user in markdown format; the user needs to visit it in their browser to "+
			"complete authentication. The link is valid for only 10 minutes. If the user "+
			"is already logged in, this tool confirms their authenticated status."),
	)
	s.mcpServer.AddTool(loginTool, s.handleLogin)

	logoutTool := mcp.NewTool("logout",
		mcp.WithDescription("Logout the user by invalidating their session."),
	)
	s.mcpServer.AddTool(logoutTool, s.handleLogout)

	profileTool := mcp.NewTool("get_profile",
		mcp.WithDescription("Retrieves the student's profile information from the CIT results site."),
	)
	s.mcpServer.AddTool(profileTool, s.handleGetProfile)

	resultsTool := mcp.NewTool("get_results",
		mcp.WithDescription("Retrieves the list of available exam result codes from the CIT Results Site."),
	)
	s.mcpServer.AddTool(resultsTool, s.handleGetResults)

	resultTool := mcp.NewTool("get_result",
		mcp.WithDescription("Retrieves the result for one exam: the semester and the marks per paper."),
		mcp.WithString("exam_code",
			mcp.Required(),
			mcp.Description("Exam code, can be got from the get_results tool."),
		),
	)
	s.mcpServer.AddTool(resultTool, s.handleGetResult)

	downloadResultTool := mcp.NewTool("download_result",
		mcp.WithDescription("Generates a downloadable result PDF link by exam_code. The link is valid for only 10 minutes."),
		mcp.WithString("exam_code",
			mcp.Required(),
			mcp.Description("Exam code, can be got from the get_results tool."),
		),
	)
	s.mcpServer.AddTool(downloadResultTool, s.handleDownloadResult)

	hallticketsTool := mcp.NewTool("get_halltickets",
		mcp.WithDescription("Retrieves the list of available hallticket exam codes."),
	)
	s.mcpServer.AddTool(hallticketsTool, s.handleGetHalltickets)

	downloadHallticketTool := mcp.NewTool("download_hallticket",
		mcp.WithDescription("Generates a downloadable hallticket PDF link by exam_code. The link is valid for only 10 minutes."),
		mcp.WithString("exam_code",
			mcp.Required(),
			mcp.Description("Hallticket exam_code, can be got from the get_halltickets tool."),
		),
	)
	s.mcpServer.AddTool(downloadHallticketTool, s.handleDownloadHallticket)
}

func (s *Server) handleLogin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := auth.SessionIDFromContext(ctx)
	if sessionID == "" {
		return mcp.NewToolResultError("No client session, cannot start a login"), nil
	}

	logging.Info("Tools", "`login` tool called with Session id: %s", logging.TruncateSessionID(sessionID))

	if s.sessions.Get(sessionID) != nil {
		return mcp.NewToolResultText("You are already logged in!"), nil
	}

	loginToken := s.signer.Mint(sessionID, s.cfg.Auth.TokenTTL.AsDuration())
	logging.Info("Tools", "Login token generated | Session ID: %s", logging.TruncateSessionID(sessionID))

	return mcp.NewToolResultText(fmt.Sprintf("[Click here to login](%s/auth/login?token=%s)",
		s.cfg.Server.PublicURL, loginToken)), nil
}

func (s *Server) handleLogout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, ok := auth.SessionFromContext(ctx)
	if !ok {
		return mcp.NewToolResultText("You aren't logged in to logout."), nil
	}

	logging.Info("Tools", "`logout` tool called with Session id %s | Register No: %s",
		logging.TruncateSessionID(rec.SessionID), rec.RegisterNo)

	s.sessions.Remove(rec.SessionID)

	return mcp.NewToolResultText("You are now logged out!"), nil
}

func (s *Server) handleGetProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, ok := auth.SessionFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError(auth.ErrNotLoggedIn.Error()), nil
	}

	logging.Info("Tools", "`get_profile` tool called with Session id %s | Register No: %s",
		logging.TruncateSessionID(rec.SessionID), rec.RegisterNo)

	profile, err := s.portal.Profile(ctx, rec.Cookie)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch profile: %v", err)), nil
	}

	return jsonResult(profile)
}

func (s *Server) handleGetResults(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, ok := auth.SessionFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError(auth.ErrNotLoggedIn.Error()), nil
	}

	logging.Info("Tools", "`get_results` tool called with Session id %s | Register No: %s",
		logging.TruncateSessionID(rec.SessionID), rec.RegisterNo)

	codes, err := s.portal.ExamCodes(ctx, rec.Cookie)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch exam codes: %v", err)), nil
	}

	return jsonResult(codes)
}

func (s *Server) handleGetResult(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, ok := auth.SessionFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError(auth.ErrNotLoggedIn.Error()), nil
	}

	examCode, err := request.RequireString("exam_code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	logging.Info("Tools", "`get_result` tool called with Session id %s | Register No: %s",
		logging.TruncateSessionID(rec.SessionID), rec.RegisterNo)

	result, err := s.portal.Result(ctx, rec.Cookie, examCode)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch result: %v", err)), nil
	}

	return jsonResult(result)
}

func (s *Server) handleDownloadResult(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, ok := auth.SessionFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError(auth.ErrNotLoggedIn.Error()), nil
	}

	examCode, err := request.RequireString("exam_code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	logging.Info("Tools", "`download_result` tool called with Session id %s | Register No: %s",
		logging.TruncateSessionID(rec.SessionID), rec.RegisterNo)

	return mcp.NewToolResultText(fmt.Sprintf("[Click here to download result](%s)",
		s.resourceLink("/pdf/result", rec, examCode))), nil
}

func (s *Server) handleGetHalltickets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, ok := auth.SessionFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError(auth.ErrNotLoggedIn.Error()), nil
	}

	logging.Info("Tools", "`get_halltickets` tool called with Session id %s | Register No: %s",
		logging.TruncateSessionID(rec.SessionID), rec.RegisterNo)

	codes, err := s.portal.HallticketCodes(ctx, rec.Cookie)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch hallticket codes: %v", err)), nil
	}

	if len(codes) == 0 {
		logging.Info("Tools", "No halltickets are available | Session ID: %s",
			logging.TruncateSessionID(rec.SessionID))
		return mcp.NewToolResultText("Currently no halltickets are available."), nil
	}

	return jsonResult(codes)
}

func (s *Server) handleDownloadHallticket(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, ok := auth.SessionFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError(auth.ErrNotLoggedIn.Error()), nil
	}

	examCode, err := request.RequireString("exam_code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	logging.Info("Tools", "`download_hallticket` tool called with Session id %s | Register No: %s",
		logging.TruncateSessionID(rec.SessionID), rec.RegisterNo)

	codes, err := s.portal.HallticketCodes(ctx, rec.Cookie)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch hallticket codes: %v", err)), nil
	}
	if len(codes) == 0 {
		logging.Info("Tools", "No halltickets are available | Session ID: %s",
			logging.TruncateSessionID(rec.SessionID))
		return mcp.NewToolResultText("Currently no halltickets are available."), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("[Click here to download hallticket](%s)",
		s.resourceLink("/pdf/hallticket", rec, examCode))), nil
}

// resourceLink mints a short-lived download URL scoped to one session
// and one exam code.
func (s *Server) resourceLink(path string, rec *session.Record, examCode string) string {
	tok := s.signer.Mint(rec.SessionID+":"+examCode, s.cfg.Auth.TokenTTL.AsDuration())
	logging.Info("Tools", "Download token generated | Session ID: %s | Register No: %s",
		logging.TruncateSessionID(rec.SessionID), rec.RegisterNo)
	return fmt.Sprintf("%s%s?token=%s", s.cfg.Server.PublicURL, path, tok)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
