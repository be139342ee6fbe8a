package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/somnolab/hypnogram-backend/internal/http/response"
	"github.com/somnolab/hypnogram-backend/internal/sim"
)

type CompareRequest struct {
	A SimulateRequest `json:"a"`
	B SimulateRequest `json:"b"`
}

type CompareResponse struct {
	A *sim.SimulationResult `json:"a"`
	B *sim.SimulationResult `json:"b"`
}

// Compare generates both comparison profiles in one call. The runs are
// independent by construction (each gets its own random source), so they
// execute concurrently.
func (h *SimulateHandler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	var out CompareResponse
	g := new(errgroup.Group)
	g.Go(func() error {
		res, err := h.generate(req.A)
		out.A = res
		return err
	})
	g.Go(func() error {
		res, err := h.generate(req.B)
		out.B = res
		return err
	})
	if err := g.Wait(); err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "simulation_failed", err)
		return
	}
	response.RespondOK(c, out)
}
