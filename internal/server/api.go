package server

import (
	"net/http"

	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/pkg/caecapi"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	MESSAGE_SYSTEM_UPDATED     = "Configuración actualizada"
	MESSAGE_IRRIGATION_UPDATED = "Configuración de irrigación actualizada"
)

func SystemData(snapshot domain.Snapshot) caecapi.SystemData {
	return caecapi.SystemData{
		WaterLevel:       snapshot.Water.Value,
		PHLevel:          snapshot.PH.Value,
		WaterTemp:        snapshot.Temperature.Value,
		NutrientLevel:    snapshot.Nutrient.Value,
		IrrigationActive: snapshot.Irrigation.Status,
		LightActive:      snapshot.Light.Status,
		IrrigationConfig: caecapi.IrrigationConfig{
			SavingPower:      snapshot.Settings.SavingPower,
			SavingDuration:   snapshot.Settings.SavingDurationMinutes,
			AbundantDuration: snapshot.Settings.AbundantDurationMinutes,
		},
		Timestamp: caecapi.FormatTimestamp(snapshot.UpdatedAt),
	}
}

func (s *Server) SystemDataHandler(c echo.Context) error {
	snapshot, err := s.snapshot()
	if err != nil {
		return s.unavailable(c, err)
	}
	return c.JSON(http.StatusOK, SystemData(snapshot))
}

// UpdateSystemHandler is the receiving end of the irrigation sync call. It
// only logs what it got.
func (s *Server) UpdateSystemHandler(c echo.Context) error {
	var req caecapi.UpdateSystemRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	fields := []zap.Field{}
	if req.Irrigation != nil {
		fields = append(fields, zap.Bool("irrigation", req.Irrigation.Status), zap.String("timestamp", req.Irrigation.Timestamp))
	}
	s.logger.Info("system update received", fields...)
	return c.JSON(http.StatusOK, caecapi.StatusResponse{Status: caecapi.STATUS_SUCCESS, Message: MESSAGE_SYSTEM_UPDATED})
}

func (s *Server) UpdateIrrigationConfigHandler(c echo.Context) error {
	var req caecapi.UpdateIrrigationConfigRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	s.logger.Info("irrigation config received",
		zap.Int("saving_power", req.Config.SavingPower),
		zap.Int("saving_duration", req.Config.SavingDuration),
		zap.Int("abundant_duration", req.Config.AbundantDuration),
		zap.String("timestamp", req.Timestamp))
	return c.JSON(http.StatusOK, caecapi.StatusResponse{Status: caecapi.STATUS_SUCCESS, Message: MESSAGE_IRRIGATION_UPDATED})
}

type exportData struct {
	Timestamp string `json:"timestamp"`
	domain.Snapshot
}

// ExportHandler dumps the current snapshot stamped with the export time.
func (s *Server) ExportHandler(c echo.Context) error {
	snapshot, err := s.snapshot()
	if err != nil {
		return s.unavailable(c, err)
	}
	data := exportData{Timestamp: caecapi.FormatTimestamp(s.clock.Now()), Snapshot: snapshot}
	s.logger.Debug("data exported", zap.String("timestamp", data.Timestamp))
	return c.JSON(http.StatusOK, data)
}
