package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/rota"
	"github.com/cmlabs-hris/rota-backend-go/internal/handler/http/response"
)

type AssignmentHandler interface {
	AutoAssignDefault(w http.ResponseWriter, r *http.Request)
	ApplyRotation(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
}

type assignmentHandlerImpl struct {
	rotaService rota.RotaService
}

func NewAssignmentHandler(rotaService rota.RotaService) AssignmentHandler {
	return &assignmentHandlerImpl{
		rotaService: rotaService,
	}
}

func (h *assignmentHandlerImpl) AutoAssignDefault(w http.ResponseWriter, r *http.Request) {
	result, err := h.rotaService.AutoAssignDefaultShift(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Default shift assigned successfully", result)
}

func (h *assignmentHandlerImpl) ApplyRotation(w http.ResponseWriter, r *http.Request) {
	var req rota.ApplyRotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rotaService.ApplyRotationPattern(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rotation pattern applied successfully", result)
}

func (h *assignmentHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req rota.PreviewAutoScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rotaService.PreviewAutoSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
