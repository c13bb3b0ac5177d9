package portal

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rez/pkg/logging"
)

const (
	loginPath           = "/login.php?action=process"
	profilePath         = "/personal.php"
	examResultPath      = "/exam/exam_result.php"
	resultPDFPath       = "/exam/result.php"
	hallticketParamPath = "/exam/param_exam_hallticket.php"
	hallticketPDFPath   = "/exam/rpt_exam_hallticket.php"

	// The portal rejects requests without a browser user agent.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:137.0) Gecko/20100101 Firefox/137.0"

	loginTimeout = 15 * time.Second
	fetchTimeout = 30 * time.Second
)

// Client talks to the upstream results portal. Login captures the
// portal's session cookie; every other call replays it. The portal
// serves an expired certificate chain and signals login success with a
// bare 302, so the client disables both TLS verification and redirect
// following.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a portal client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Login posts credentials to the portal and returns the captured session
// cookie. The portal answers a successful login with a 302 redirect; a
// 200 means the login form was re-rendered, i.e. the credentials were
// rejected.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	form := url.Values{
		"user_name": {username},
		"pass_word": {password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building login request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		logging.Warn("Portal", "Login failed, received 200 OK")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if strings.Contains(strings.ToLower(string(body)), "student login") {
			return "", ErrBadCredentials
		}
		return "", ErrUnexpectedResponse
	}

	if resp.StatusCode != http.StatusFound {
		logging.Error("Portal", nil, "Login returned status %d", resp.StatusCode)
		return "", &UpstreamError{StatusCode: resp.StatusCode}
	}

	setCookie := resp.Header.Get("Set-Cookie")
	if setCookie == "" {
		logging.Error("Portal", nil, "No Set-Cookie header in login redirect")
		return "", ErrNoSessionCookie
	}

	cookie, ok := leadingCookiePair(setCookie)
	if !ok {
		logging.Error("Portal", nil, "Could not parse cookie from header: %s", setCookie)
		return "", ErrBadSessionCookie
	}

	return cookie, nil
}

// leadingCookiePair extracts the "name=value" segment that precedes any
// cookie attributes.
func leadingCookiePair(setCookie string) (string, bool) {
	pair, _, _ := strings.Cut(setCookie, ";")
	pair = strings.TrimSpace(pair)
	if pair == "" || !strings.Contains(pair, "=") {
		return "", false
	}
	return pair, true
}

// Fetch performs an authenticated GET and returns the response body as a
// string. Used for the HTML pages that get scraped.
func (c *Client) Fetch(ctx context.Context, path string, params url.Values, cookie string) (string, error) {
	body, err := c.get(ctx, path, params, cookie)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchPDF performs an authenticated GET for a binary PDF document.
func (c *Client) FetchPDF(ctx context.Context, path string, params url.Values, cookie string) ([]byte, error) {
	return c.get(ctx, path, params, cookie)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, cookie string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	logging.Debug("Portal", "Fetching %s", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cookie", cookie)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logging.Error("Portal", nil, "Fetch of %s returned status %d", path, resp.StatusCode)
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	return body, nil
}

// Profile fetches and parses the student profile page.
func (c *Client) Profile(ctx context.Context, cookie string) (map[string]string, error) {
	html, err := c.Fetch(ctx, profilePath, nil, cookie)
	if err != nil {
		return nil, err
	}
	return ParseProfile(html)
}

// ExamCodes fetches the list of exam codes with published results.
func (c *Client) ExamCodes(ctx context.Context, cookie string) ([]string, error) {
	html, err := c.Fetch(ctx, examResultPath, nil, cookie)
	if err != nil {
		return nil, err
	}
	return ParseExamCodes(html), nil
}

// Result fetches and parses the marks table for one exam code.
func (c *Client) Result(ctx context.Context, cookie, examCode string) (*Result, error) {
	html, err := c.Fetch(ctx, examResultPath, nil, cookie)
	if err != nil {
		return nil, err
	}
	return ParseResult(html, examCode)
}

// HallticketCodes fetches the list of exam codes with available
// halltickets.
func (c *Client) HallticketCodes(ctx context.Context, cookie string) ([]string, error) {
	html, err := c.Fetch(ctx, hallticketParamPath, nil, cookie)
	if err != nil {
		return nil, err
	}
	return ParseHallticketCodes(html), nil
}

// ResultPDF fetches the result sheet PDF for one exam code.
func (c *Client) ResultPDF(ctx context.Context, cookie, examCode string) ([]byte, error) {
	return c.FetchPDF(ctx, resultPDFPath, url.Values{"exam_cd": {examCode}}, cookie)
}

// HallticketPDF fetches the hallticket PDF for one exam code.
func (c *Client) HallticketPDF(ctx context.Context, cookie, examCode string) ([]byte, error) {
	return c.FetchPDF(ctx, hallticketPDFPath, url.Values{"exam_cd": {examCode}}, cookie)
}
