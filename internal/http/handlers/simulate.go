package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/somnolab/hypnogram-backend/internal/http/response"
	"github.com/somnolab/hypnogram-backend/internal/platform/logger"
	"github.com/somnolab/hypnogram-backend/internal/sim"
)

type SimulateHandler struct {
	engine *sim.Engine
	log    *logger.Logger
}

func NewSimulateHandler(engine *sim.Engine, log *logger.Logger) *SimulateHandler {
	return &SimulateHandler{engine: engine, log: log.With("component", "simulate-handler")}
}

// SimulateRequest is a Configuration plus an optional seed; seed 0 (or
// absent) draws a fresh random night.
type SimulateRequest struct {
	Config sim.Configuration `json:"config"`
	Seed   int64             `json:"seed,omitempty"`
}

func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	res, err := h.generate(req)
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "simulation_failed", err)
		return
	}
	response.RespondOK(c, res)
}

// Profile exposes the raw age-architecture lookup for inspection.
func (h *SimulateHandler) Profile(c *gin.Context) {
	age, err := strconv.Atoi(c.Param("age"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_age", err)
		return
	}
	response.RespondOK(c, sim.ResolveProfile(age))
}

func (h *SimulateHandler) generate(req SimulateRequest) (*sim.SimulationResult, error) {
	if req.Seed != 0 {
		return h.engine.GenerateSeeded(req.Config, req.Seed)
	}
	return h.engine.Generate(req.Config)
}
