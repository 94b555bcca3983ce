package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pageza/fieldplan/backend/internal/services"
)

// PlannerHandler exposes the solve endpoints over HTTP.
type PlannerHandler struct {
	orchestrator *services.PlannerOrchestrator
	logger       *log.Logger
}

// NewPlannerHandler creates a new planner handler.
func NewPlannerHandler(orchestrator *services.PlannerOrchestrator, logger *log.Logger) *PlannerHandler {
	return &PlannerHandler{orchestrator: orchestrator, logger: logger}
}

// RegisterRoutes registers the planner routes with the router.
func (h *PlannerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/plans/run", h.RunPlan).Methods("POST")
	router.HandleFunc("/plans/run-async", h.RunPlanAsync).Methods("POST")
}

type runPlanRequest struct {
	TenantID uuid.UUID `json:"tenant_id"`
}

// RunPlan runs a synchronous solve for the requesting tenant and returns
// the full assignment result.
func (h *PlannerHandler) RunPlan(w http.ResponseWriter, r *http.Request) {
	var req runPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.TenantID == uuid.Nil {
		h.respondWithError(w, http.StatusBadRequest, "tenant_id is required", nil)
		return
	}

	result, err := h.orchestrator.ComputePlan(r.Context(), req.TenantID)
	if err != nil {
		h.logger.Printf("plan run failed: tenant_id=%s error=%v", req.TenantID, err)
		h.respondWithError(w, http.StatusInternalServerError, "failed to run plan", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, result)
}

// RunPlanAsync kicks off a background solve and reports immediately.
func (h *PlannerHandler) RunPlanAsync(w http.ResponseWriter, r *http.Request) {
	var req runPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.TenantID == uuid.Nil {
		h.respondWithError(w, http.StatusBadRequest, "tenant_id is required", nil)
		return
	}

	status := h.orchestrator.RunAsync(req.TenantID)
	h.respondWithJSON(w, http.StatusAccepted, status)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (h *PlannerHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Printf("failed to marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func (h *PlannerHandler) respondWithError(w http.ResponseWriter, code int, message string, err error) {
	resp := errorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	}
	if err != nil {
		resp.Message = message + ": " + err.Error()
	}
	h.respondWithJSON(w, code, resp)
}
