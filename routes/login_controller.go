package routes

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/mbolis/survey-box/app"
	"github.com/mbolis/survey-box/httpx"
	"github.com/mbolis/survey-box/log"
	"github.com/mbolis/survey-box/session"
	"github.com/mbolis/survey-box/views"
)

var reRefresh = regexp.MustCompile(`(?i)^refresh\s+(.*)`)

func LoginForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := views.Render(w, r, "login.html", nil)
		if err != nil {
			httpx.LogInternalError(w, "view.login", err)
		}
	}
}

// AdminLogin marks the session as admin when the posted credentials match.
// On a mismatch the login form is shown again, with no error message.
func AdminLogin(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.ParseForm(w, r, "login.parse_form") {
			return
		}
		username := r.PostForm.Get("username")
		password := r.PostForm.Get("password")

		err := app.Admin.Check(username, password)
		if errors.Is(err, httpx.ErrInvalidCredentials) {
			log.Debugf("login.invalid_credentials: user=%q", username)
			err = views.Render(w, r, "login.html", nil)
			if err != nil {
				httpx.LogInternalError(w, "view.login", err)
			}
			return
		}

		err = app.Sessions.Grant(w, r, session.Admin)
		if err != nil {
			httpx.LogInternalError(w, "session.grant", err)
			return
		}

		log.Infof("login: admin session started for %q", username)
		http.Redirect(w, r, "/admin", http.StatusFound)
	}
}

func Logout(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := app.Sessions.Revoke(w, r, session.Admin)
		if err != nil {
			httpx.LogInternalError(w, "session.revoke", err)
			return
		}

		http.Redirect(w, r, "/survey", http.StatusFound)
	}
}

// Login exchanges HTTP Basic credentials for an API bearer token.
func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			httpx.LogStatusMsg(w, http.StatusUnauthorized, log.DebugLevel, "login.basic_auth", "missing basic credentials")
			return
		}

		body := url.Values{
			"grant_type": {"password"},
			"username":   {user},
			"password":   {pass},
		}
		r.Body = io.NopCloser(strings.NewReader(body.Encode()))
		r.Header.Set("content-type", "application/x-www-form-urlencoded")
		r.Header.Set("content-length", strconv.Itoa(len(body.Encode())))
		app.UserCredentials(w, r)
	}
}

// Refresh trades a refresh token, sent as "Authorization: Refresh <token>",
// for a new token pair. Each refresh token can be used once.
func Refresh(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match := reRefresh.FindStringSubmatch(r.Header.Get("authorization"))
		if len(match) == 0 {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "refresh.token")
			return
		}
		token := match[1]

		body := url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {token},
		}

		req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, "/", strings.NewReader(body.Encode()))
		if err != nil {
			httpx.LogInternalError(w, "refresh.new_request", err)
			return
		}
		req.Header.Set("content-type", "application/x-www-form-urlencoded")
		req.Header.Set("content-length", strconv.Itoa(len(body.Encode())))

		resp := httpx.NewResponseBuffer()
		app.UserCredentials(resp, req)
		if resp.Status() == http.StatusUnauthorized {
			log.Debug("refresh.rejected")
		}
		err = resp.Flush(w)
		if err != nil {
			log.Errorf("refresh.flush: %s", err)
		}
	}
}
