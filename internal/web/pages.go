package web

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
)

// setSecurityHeaders sets recommended security headers for HTML responses.
// These headers help prevent XSS, clickjacking, and MIME sniffing attacks.
func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
}

// renderErrorPage renders an HTML error page for browser-facing
// failures: expired links, missing sessions, upstream trouble.
func renderErrorPage(w http.ResponseWriter, status int, title, message string) {
	setSecurityHeaders(w)
	w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%d - Rez</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
            background: linear-gradient(135deg, #1a1a2e 0%%, #16213e 50%%, #0f3460 100%%);
            min-height: 100vh;
            display: flex;
            align-items: center;
            justify-content: center;
            color: #e4e4e4;
        }
        .card {
            background: rgba(255, 255, 255, 0.05);
            border: 1px solid rgba(255, 255, 255, 0.1);
            border-radius: 16px;
            padding: 48px;
            max-width: 420px;
            text-align: center;
        }
        .status { font-size: 56px; font-weight: 700; color: #e94560; }
        h1 { font-size: 22px; margin: 16px 0 8px; }
        p { color: #a0a0b0; line-height: 1.5; }
    </style>
</head>
<body>
    <div class="card">
        <div class="status">%d</div>
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, status, status, html.EscapeString(title), html.EscapeString(message))
}

// renderLoginPage renders the credential form for a valid login token.
// The form posts JSON back to the same endpoint, token included, so the
// handshake stays on one URL.
func renderLoginPage(w http.ResponseWriter, token string) {
	setSecurityHeaders(w)
	w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; script-src 'unsafe-inline'; connect-src 'self'")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	postTarget := "/auth/login?token=" + url.QueryEscape(token)

	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Login - Rez</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
            background: linear-gradient(135deg, #1a1a2e 0%%, #16213e 50%%, #0f3460 100%%);
            min-height: 100vh;
            display: flex;
            align-items: center;
            justify-content: center;
            color: #e4e4e4;
        }
        .card {
            background: rgba(255, 255, 255, 0.05);
            border: 1px solid rgba(255, 255, 255, 0.1);
            border-radius: 16px;
            padding: 48px;
            width: 360px;
        }
        h1 { font-size: 22px; margin-bottom: 24px; text-align: center; }
        label { display: block; font-size: 13px; color: #a0a0b0; margin-bottom: 6px; }
        input {
            width: 100%%;
            padding: 10px 12px;
            margin-bottom: 16px;
            border-radius: 8px;
            border: 1px solid rgba(255, 255, 255, 0.15);
            background: rgba(0, 0, 0, 0.25);
            color: #e4e4e4;
            font-size: 15px;
        }
        button {
            width: 100%%;
            padding: 12px;
            border: none;
            border-radius: 8px;
            background: #e94560;
            color: white;
            font-size: 15px;
            font-weight: 600;
            cursor: pointer;
        }
        button:disabled { opacity: 0.6; cursor: wait; }
        .msg { margin-top: 16px; text-align: center; font-size: 14px; min-height: 20px; }
        .msg.error { color: #e94560; }
        .msg.ok { color: #4ecca3; }
    </style>
</head>
<body>
    <div class="card">
        <h1>Portal Login</h1>
        <form id="login-form">
            <label for="username">Register Number</label>
            <input id="username" name="username" autocomplete="username" required>
            <label for="password">Password</label>
            <input id="password" name="password" type="password" autocomplete="current-password" required>
            <button id="submit" type="submit">Login</button>
        </form>
        <div id="msg" class="msg"></div>
    </div>
    <script>
        const form = document.getElementById('login-form');
        const msg = document.getElementById('msg');
        const submit = document.getElementById('submit');
        form.addEventListener('submit', async (e) => {
            e.preventDefault();
            submit.disabled = true;
            msg.className = 'msg';
            msg.textContent = 'Logging in...';
            try {
                const resp = await fetch(%q, {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({
                        username: document.getElementById('username').value,
                        password: document.getElementById('password').value,
                    }),
                });
                const body = await resp.json();
                if (resp.ok) {
                    msg.className = 'msg ok';
                    msg.textContent = 'Login Ok! You can close this tab and return to your chat.';
                } else {
                    msg.className = 'msg error';
                    msg.textContent = body.detail || 'Login failed.';
                    submit.disabled = false;
                }
            } catch (err) {
                msg.className = 'msg error';
                msg.textContent = 'Could not reach the server.';
                submit.disabled = false;
            }
        });
    </script>
</body>
</html>`, postTarget)
}
