package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/model"
)

type (
	// StatusResponseDTO is the response body for the status operation.
	StatusResponseDTO struct {
		Status  string `json:"status" enum:"ready,loading,error" doc:"Tri-state service status"`
		Message string `json:"message"`
	}
)

type (
	// StatusOutput is the huma output for the status operation.
	StatusOutput struct {
		Body StatusResponseDTO
	}
)

// StatusHandler handles HTTP requests for service status.
type StatusHandler struct {
	state *model.Holder
}

// NewStatusHandler creates a new StatusHandler instance.
func NewStatusHandler(api huma.API, state *model.Holder) *StatusHandler {
	h := &StatusHandler{state: state}

	huma.Register(api, huma.Operation{
		OperationID:   "status",
		Method:        http.MethodGet,
		Path:          "/",
		Summary:       "Report service and model status",
		Tags:          []string{"status"},
		DefaultStatus: http.StatusOK,
	}, h.handleStatus)

	return h
}

// handleStatus handles the status operation. Derived purely from the state
// holder; this endpoint never fails.
func (h *StatusHandler) handleStatus(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	out := &StatusOutput{}

	snap := h.state.Current()
	switch snap.Status {
	case model.StatusFailed:
		out.Body = StatusResponseDTO{
			Status:  "error",
			Message: "API is running but model failed to load: " + snap.Error,
		}
	case model.StatusLoaded:
		out.Body = StatusResponseDTO{
			Status:  "ready",
			Message: "MeloTTS API is running and model is loaded.",
		}
	default:
		out.Body = StatusResponseDTO{
			Status:  "loading",
			Message: "MeloTTS model is still loading. Please try again shortly.",
		}
	}

	return out, nil
}
