package server

import (
	"net/http"

	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/view"
	"github.com/caec/caecdash/internal/countdown"

	"github.com/labstack/echo/v4"
)

type harvestView struct {
	DateLabel string
	Target    int64
	Value     countdown.Value
}

type dashboardPage struct {
	User     string
	Cards    []view.Card
	Overview view.OverviewView
	Legacy   *view.LegacyView
	Harvest  harvestView
}

func (s *Server) DashboardHandler(c echo.Context) error {
	snapshot, err := s.snapshot()
	if err != nil {
		return s.unavailable(c, err)
	}
	page := dashboardPage{
		User:     s.sessionUser(c),
		Cards:    view.Cards(snapshot, s.variant),
		Overview: view.Overview(snapshot, s.variant),
		Harvest: harvestView{
			DateLabel: countdown.DateLabel(s.harvest),
			Target:    s.harvest.UnixMilli(),
			Value:     countdown.Remaining(s.harvest, s.clock.Now()),
		},
	}
	// page load refreshes from the server in the background
	s.sync(domain.FetchSystemDataRequest{})

	name := TEMPLATE_DASHBOARD
	if s.variant.IsLegacy() {
		legacy := view.Legacy(snapshot, s.ages())
		page.Legacy = &legacy
		name = TEMPLATE_DASHBOARD_LEGACY
	}
	return c.Render(http.StatusOK, name, page)
}

// ModalHandler renders the detail fragment of one channel.
func (s *Server) ModalHandler(c echo.Context) error {
	id, ok := domain.ParseChannelId(c.Param("channel"))
	if !ok {
		return c.HTML(http.StatusNotFound, "")
	}
	snapshot, err := s.snapshot()
	if err != nil {
		return s.unavailable(c, err)
	}
	modal, err := view.Modal(id, snapshot)
	if err != nil {
		return c.HTML(http.StatusNotFound, "")
	}
	return c.Render(http.StatusOK, TEMPLATE_MODAL, modal)
}

type toggleRequest struct {
	Active bool `json:"active" form:"active"`
}

func (s *Server) IrrigationToggleHandler(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	snapshot, err := s.simulate(domain.SetIrrigationRequest{Active: req.Active})
	if err != nil {
		return s.unavailable(c, err)
	}
	s.sync(domain.SyncIrrigationStatusRequest{Active: req.Active, Timestamp: s.clock.Now()})
	return c.JSON(http.StatusOK, view.NewLiveUpdate(snapshot, s.variant, s.ages()))
}

func (s *Server) LightToggleHandler(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	snapshot, err := s.simulate(domain.SetLightRequest{Active: req.Active})
	if err != nil {
		return s.unavailable(c, err)
	}
	return c.JSON(http.StatusOK, view.NewLiveUpdate(snapshot, s.variant, s.ages()))
}

type irrigationConfigResponse struct {
	Settings domain.IrrigationSettings `json:"settings"`
	Message  string                    `json:"message"`
}

// IrrigationConfigHandler stores the tuning form. Bad inputs fall back to defaults.
func (s *Server) IrrigationConfigHandler(c echo.Context) error {
	settings := view.ParseIrrigationForm(
		c.FormValue("savingPower"),
		c.FormValue("savingDuration"),
		c.FormValue("abundantDuration"),
	)
	snapshot, err := s.simulate(domain.SetIrrigationSettingsRequest{Settings: settings})
	if err != nil {
		return s.unavailable(c, err)
	}
	s.sync(domain.SyncIrrigationConfigRequest{Settings: snapshot.Settings, Timestamp: s.clock.Now()})
	return c.JSON(http.StatusOK, irrigationConfigResponse{
		Settings: snapshot.Settings,
		Message:  view.ConfirmationText(snapshot.Settings),
	})
}

func (s *Server) NutrientsHandler(c echo.Context) error {
	snapshot, err := s.simulate(domain.AddNutrientsRequest{})
	if err != nil {
		return s.unavailable(c, err)
	}
	return c.JSON(http.StatusOK, view.NewLiveUpdate(snapshot, s.variant, s.ages()))
}
