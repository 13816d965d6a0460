package server

import (
	"net/http"

	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/login"
	"github.com/caec/caecdash/pkg/caecapi"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = s.renderer
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())
	if s.metrics != nil {
		e.Use(s.metrics.Middleware())
	}

	// pages
	e.GET("/", s.IndexHandler)
	e.GET(login.LOGIN_ROUTE, s.LoginPageHandler)
	e.POST(login.LOGIN_ROUTE, s.LoginHandler)
	e.GET("/logout", s.LogoutHandler)
	e.GET(login.DASHBOARD_ROUTE, s.DashboardHandler, s.RequireSession)

	// dashboard interactions
	dashboard := e.Group("/dashboard", s.RequireSession)
	dashboard.GET("/modal/:channel", s.ModalHandler)
	dashboard.POST("/irrigation", s.IrrigationToggleHandler)
	dashboard.POST("/light", s.LightToggleHandler)
	dashboard.POST("/irrigation/config", s.IrrigationConfigHandler)
	dashboard.POST("/nutrients", s.NutrientsHandler)

	// server api
	e.GET(caecapi.PATH_SYSTEM_DATA, s.SystemDataHandler)
	e.POST(caecapi.PATH_UPDATE_SYSTEM, s.UpdateSystemHandler)
	e.POST(caecapi.PATH_UPDATE_IRRIGATION_CONFIG, s.UpdateIrrigationConfigHandler)
	e.GET(caecapi.PATH_EXPORT, s.ExportHandler)

	e.GET("/ws/live", s.LiveHandler, s.RequireSession)
	e.GET("/healthcheck", s.HealthCheckHandler)
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
	e.StaticFS("/static", staticFiles())

	return e
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.ActorHealthRequest{}, 2*s.actorTimeout).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

type errorResponse struct {
	Error string `json:"error"`
}

// unavailable answers when the simulation could not be reached in time.
func (s *Server) unavailable(c echo.Context, err error) error {
	s.logger.Error("simulation unavailable", zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
}
