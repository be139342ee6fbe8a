package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/somnolab/hypnogram-backend/internal/http/response"
	"github.com/somnolab/hypnogram-backend/internal/platform/logger"
	"github.com/somnolab/hypnogram-backend/internal/session"
	"github.com/somnolab/hypnogram-backend/internal/sim"
)

type SessionHandler struct {
	store *session.Store
	log   *logger.Logger
}

func NewSessionHandler(store *session.Store, log *logger.Logger) *SessionHandler {
	return &SessionHandler{store: store, log: log.With("component", "session-handler")}
}

type createSessionRequest struct {
	Config sim.Configuration `json:"config"`
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	sess, err := h.store.Create(req.Config)
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "session_create_failed", err)
		return
	}
	response.RespondCreated(c, sess)
}

func (h *SessionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	sess, err := h.store.Get(id)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "session_not_found", err)
		return
	}
	response.RespondOK(c, sess)
}

func (h *SessionHandler) UpdateProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	slot := session.Slot(c.Param("slot"))

	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	profile, err := h.store.UpdateProfile(id, slot, req.Config, req.Seed)
	switch {
	case errors.Is(err, session.ErrUnknownSlot):
		response.RespondError(c, http.StatusBadRequest, "unknown_slot", err)
		return
	case errors.Is(err, session.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "session_not_found", err)
		return
	case err != nil:
		response.RespondError(c, http.StatusUnprocessableEntity, "simulation_failed", err)
		return
	}
	response.RespondOK(c, profile)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	h.store.Delete(id)
	c.Status(http.StatusNoContent)
}
