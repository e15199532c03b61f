package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/programhub/pkg/logger"
	"github.com/linskybing/programhub/pkg/notify"
	"github.com/linskybing/programhub/pkg/response"
)

type NotificationHandler struct {
	hub *notify.Hub
}

func NewNotificationHandler(hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// Stream godoc
// @Summary Stream lifecycle events for the caller's applications (websocket)
// @Tags notifications
// @Security BearerAuth
// @Router /ws/applications [get]
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "notifications disabled"})
		return
	}

	if err := h.hub.Serve(c.Writer, c.Request, userID); err != nil {
		logger.For("notify").WithError(err).WithField("user_id", userID).Debug("notification stream closed")
	}
}
