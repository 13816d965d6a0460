package server

import (
	"net/http"
	"time"

	"github.com/caec/caecdash/internal/core/login"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const REMEMBER_COOKIE_MAX_AGE = 365 * 24 * time.Hour

type loginPage struct {
	Email    string
	Remember bool
	Error    string
	Local    bool
	Steps    []login.Step
}

func (s *Server) IndexHandler(c echo.Context) error {
	return c.Render(http.StatusOK, TEMPLATE_INDEX, struct{ User string }{User: s.sessionUser(c)})
}

func (s *Server) LoginPageHandler(c echo.Context) error {
	page := loginPage{Local: s.loginMode == login.MODE_LOCAL, Steps: login.SyncSteps()}
	if cookie, err := c.Cookie(login.REMEMBER_COOKIE); err == nil && cookie.Value != "" {
		page.Email = cookie.Value
		page.Remember = true
	}
	return c.Render(http.StatusOK, TEMPLATE_LOGIN, page)
}

func (s *Server) LoginHandler(c echo.Context) error {
	creds := login.Credentials{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Remember: c.FormValue("remember") != "",
	}
	s.setRememberedUser(c, login.RememberedEmail(creds))

	result := login.Authenticate(s.loginMode, creds)
	if result.Error != nil {
		return c.Render(http.StatusOK, TEMPLATE_LOGIN, loginPage{
			Email:    creds.Email,
			Remember: creds.Remember,
			Error:    result.Error.Error(),
			Local:    s.loginMode == login.MODE_LOCAL,
			Steps:    login.SyncSteps(),
		})
	}

	if result.CreateSession {
		session, _ := s.sessions.Get(c.Request(), login.SESSION_NAME)
		session.Values[login.SESSION_USER] = result.User
		if err := session.Save(c.Request(), c.Response()); err != nil {
			s.logger.Error("cannot save session", zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError)
		}
	}
	s.logger.Info("login", zap.String("user", result.User), zap.Bool("session", result.CreateSession))
	return c.Redirect(http.StatusSeeOther, result.Redirect)
}

func (s *Server) LogoutHandler(c echo.Context) error {
	session, _ := s.sessions.Get(c.Request(), login.SESSION_NAME)
	delete(session.Values, login.SESSION_USER)
	session.Options.MaxAge = -1
	if err := session.Save(c.Request(), c.Response()); err != nil {
		s.logger.Warn("cannot clear session", zap.Error(err))
	}
	return c.Redirect(http.StatusSeeOther, login.LOGIN_ROUTE)
}

// RequireSession redirects to the login page when auth is required and no
// user is stored in the session.
func (s *Server) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.requireAuth && s.sessionUser(c) == "" {
			if c.Request().Method == http.MethodGet && c.Path() == login.DASHBOARD_ROUTE {
				return c.Redirect(http.StatusSeeOther, login.LOGIN_ROUTE)
			}
			return echo.NewHTTPError(http.StatusUnauthorized)
		}
		return next(c)
	}
}

func (s *Server) sessionUser(c echo.Context) string {
	session, err := s.sessions.Get(c.Request(), login.SESSION_NAME)
	if err != nil {
		return ""
	}
	user, _ := session.Values[login.SESSION_USER].(string)
	return user
}

func (s *Server) setRememberedUser(c echo.Context, email string) {
	cookie := &http.Cookie{
		Name:     login.REMEMBER_COOKIE,
		Value:    email,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
	if email == "" {
		cookie.MaxAge = -1
	} else {
		cookie.Expires = s.clock.Now().Add(REMEMBER_COOKIE_MAX_AGE)
	}
	c.SetCookie(cookie)
}
