package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/services/dialog"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/utils"
)

// DialogHandler is the transport adapter for the reservation dialogue: one
// inbound message event per request, one prompt back.
type DialogHandler struct {
	Svc    dialog.DialogService
	Logger *zap.Logger
}

func NewDialogHandler(svc dialog.DialogService, logger *zap.Logger) *DialogHandler {
	return &DialogHandler{Svc: svc, Logger: logger}
}

// HandleMessage receives one structured user input and returns the engine's
// next prompt. Infrastructure failures reply with a generic error; the stored
// session is untouched so the client may retry the same input.
func (h *DialogHandler) HandleMessage(c *gin.Context) {
	var ev models.InputEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	prompt, err := h.Svc.HandleInput(c.Request.Context(), ev)
	if err != nil {
		h.Logger.Error("dialogue input failed",
			zap.String("sessionID", ev.SessionID),
			zap.String("kind", string(ev.Kind)),
			zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError,
			"Something went wrong", "Please try that again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"prompt": prompt})
}
