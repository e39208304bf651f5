package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	queueport "github.com/atef1995/sayarat-sub003/internal/infrastructure/queue/port"
	"github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/task"
)

// MembershipEventController accepts membership-change notifications from the
// company membership service and enqueues them for background processing. The
// worker applies the actual transfer; this endpoint only acknowledges receipt.
type MembershipEventController struct {
	Q queueport.Client
}

func NewMembershipEventController(client queueport.Client) *MembershipEventController {
	return &MembershipEventController{Q: client}
}

type membershipEventRequest struct {
	Event       string `json:"event" binding:"required,oneof=member_removed member_reactivated"`
	MemberID    string `json:"member_id" binding:"required"`
	CompanyID   string `json:"company_id" binding:"required"`
	PerformedBy string `json:"performed_by" binding:"required"`
}

func (h *MembershipEventController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req membershipEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		taskType := task.MemberRemovedTaskType
		if req.Event == "member_reactivated" {
			taskType = task.MemberReactivatedTaskType
		}

		payload, err := json.Marshal(task.MembershipEventPayload{
			MemberID:    req.MemberID,
			CompanyID:   req.CompanyID,
			PerformedBy: req.PerformedBy,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode task payload"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		// Same member+company+event within the window collapses to one task.
		opts := queueport.EnqueueOption{
			Queue:     "membership",
			MaxRetry:  20,
			UniqueTTL: time.Minute,
		}
		id, err := h.Q.Enqueue(ctx, queueport.Task{Type: taskType, Payload: payload}, opts)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue membership event"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":  "queued",
			"task_id": id,
			"event":   fmt.Sprintf("%s:%s", req.Event, req.MemberID),
		})
	}
}
