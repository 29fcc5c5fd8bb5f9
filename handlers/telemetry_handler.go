package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hanzala183/goSwim/middleware"
	"github.com/hanzala183/goSwim/models"
	"github.com/hanzala183/goSwim/services"
	"github.com/hanzala183/goSwim/utils/errors"
)

// TelemetryProvider serves the current reading for a pool, or nil when the
// pool has no live data.
type TelemetryProvider interface {
	GetPoolData(ctx context.Context, poolID string) (*models.PoolTelemetry, error)
}

type TelemetryHandler struct {
	telemetry TelemetryProvider
}

func NewTelemetryHandler(telemetry TelemetryProvider) *TelemetryHandler {
	return &TelemetryHandler{telemetry: telemetry}
}

type PoolDataResponse struct {
	models.PoolTelemetry
	Assessment services.WaterQualityAssessment `json:"assessment"`
}

// GetPoolData serves live water-quality telemetry for one pool, with the
// safety assessment attached for the display layer.
func (h *TelemetryHandler) GetPoolData(w http.ResponseWriter, r *http.Request) {
	poolID := mux.Vars(r)["id"]
	data, err := h.telemetry.GetPoolData(r.Context(), poolID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if data == nil {
		middleware.WriteError(w, errors.ErrNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PoolDataResponse{
		PoolTelemetry: *data,
		Assessment:    services.AssessWaterQuality(data.WaterQuality),
	})
}
