package portal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LoginSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "21CS042", r.PostFormValue("user_name"))
		assert.Equal(t, "hunter2", r.PostFormValue("pass_word"))

		w.Header().Set("Set-Cookie", "PHPSESSID=abc123; path=/; HttpOnly")
		w.Header().Set("Location", "/studhome.php")
		w.WriteHeader(http.StatusFound)
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)

	cookie, err := c.Login(context.Background(), "21CS042", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "PHPSESSID=abc123", cookie)
}

func TestClient_LoginDoesNotFollowRedirect(t *testing.T) {
	redirected := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/studhome.php" {
			redirected = true
			return
		}
		w.Header().Set("Set-Cookie", "PHPSESSID=abc123")
		w.Header().Set("Location", "/studhome.php")
		w.WriteHeader(http.StatusFound)
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)

	_, err := c.Login(context.Background(), "user", "pass")
	require.NoError(t, err)
	assert.False(t, redirected, "client must not follow the login redirect")
}

func TestClient_LoginBadCredentials(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><title>Student Login</title>try again</html>"))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)

	_, err := c.Login(context.Background(), "user", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestClient_LoginUnexpected200(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>maintenance page</html>"))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)

	_, err := c.Login(context.Background(), "user", "pass")
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestClient_LoginUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)

	_, err := c.Login(context.Background(), "user", "pass")
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
}

func TestClient_LoginConnectivityError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // refuse connections

	c := NewClient(upstream.URL)

	_, err := c.Login(context.Background(), "user", "pass")
	var connErr *ConnectivityError
	assert.ErrorAs(t, err, &connErr)
}

func TestClient_LoginMissingCookie(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/studhome.php")
		w.WriteHeader(http.StatusFound)
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)

	_, err := c.Login(context.Background(), "user", "pass")
	assert.ErrorIs(t, err, ErrNoSessionCookie)
}

func TestClient_LoginUnparsableCookie(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Set-Cookie", "   ; path=/")
		w.WriteHeader(http.StatusFound)
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)

	_, err := c.Login(context.Background(), "user", "pass")
	assert.ErrorIs(t, err, ErrBadSessionCookie)
}

func TestClient_FetchReplaysCookie(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PHPSESSID=abc123", r.Header.Get("Cookie"))
		assert.Equal(t, "SEM3", r.URL.Query().Get("exam_cd"))
		w.Write([]byte("<html>ok</html>"))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)

	body, err := c.Fetch(context.Background(), "/exam/result.php",
		url.Values{"exam_cd": {"SEM3"}}, "PHPSESSID=abc123")
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", body)
}

func TestClient_FetchNon200(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)

	_, err := c.Fetch(context.Background(), "/personal.php", nil, "PHPSESSID=abc123")
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusForbidden, upErr.StatusCode)
}

func TestClient_FetchPDF(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pdf)
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL)

	got, err := c.ResultPDF(context.Background(), "PHPSESSID=abc123", "SEM3")
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestLeadingCookiePair(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"PHPSESSID=abc; path=/; HttpOnly", "PHPSESSID=abc", true},
		{"PHPSESSID=abc", "PHPSESSID=abc", true},
		{"  PHPSESSID=abc ; Secure", "PHPSESSID=abc", true},
		{"; path=/", "", false},
		{"garbage", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		got, ok := leadingCookiePair(test.in)
		if ok != test.ok || got != test.want {
			t.Errorf("leadingCookiePair(%q) = (%q, %v), expected (%q, %v)",
				test.in, got, ok, test.want, test.ok)
		}
	}
}

func TestClient_ConnectivityErrorUnwraps(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	err := &ConnectivityError{Err: inner}
	assert.ErrorIs(t, err, inner)
}
