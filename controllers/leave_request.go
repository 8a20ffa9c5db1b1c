package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"leave-management-api/services"
	"leave-management-api/utils"
)

// LeaveRequestController exposes the workflow engine over HTTP. It owns no
// policy itself: role checks beyond route gating, status validation and
// notification fan-out all live in the engine.
type LeaveRequestController struct {
	engine *services.WorkflowService
	blobs  services.BlobStore
}

func NewLeaveRequestController(engine *services.WorkflowService, blobs services.BlobStore) *LeaveRequestController {
	return &LeaveRequestController{engine: engine, blobs: blobs}
}

// actorFromContext rebuilds the authenticated actor from the values the auth
// middleware stored on the request.
func actorFromContext(c *gin.Context) services.Actor {
	return services.Actor{
		Username: c.GetString("username"),
		Name:     c.GetString("name"),
		Role:     c.GetString("role"),
		Section:  c.GetString("section"),
	}
}

// Submit handles POST /leave-requests. Multipart form with leave_type,
// leave_dates, reason and an optional supporting document. The document is
// uploaded first; submission itself only carries the resulting URL.
func (ctl *LeaveRequestController) Submit(c *gin.Context) {
	actor := actorFromContext(c)

	leaveType := utils.SanitizeInput(c.PostForm("leave_type"))
	leaveDates := utils.SanitizeInput(c.PostForm("leave_dates"))
	reason := utils.SanitizeInput(c.PostForm("reason"))

	fileURL := ""
	if fileHeader, err := c.FormFile("document"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded document"})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded document"})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		fileURL, err = ctl.blobs.Upload(data, contentType, actor.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store document"})
			return
		}
	}

	req, err := ctl.engine.Submit(actor, leaveType, leaveDates, reason, fileURL)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit leave request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Leave request submitted successfully",
		"request": req,
	})
}

type transitionRequest struct {
	Comment string `json:"comment"`
}

// Forward handles POST /leave-requests/:id/forward
func (ctl *LeaveRequestController) Forward(c *gin.Context) {
	ctl.transition(c, services.ActionForward)
}

// Approve handles POST /leave-requests/:id/approve
func (ctl *LeaveRequestController) Approve(c *gin.Context) {
	ctl.transition(c, services.ActionApprove)
}

// Reject handles POST /leave-requests/:id/reject
func (ctl *LeaveRequestController) Reject(c *gin.Context) {
	ctl.transition(c, services.ActionReject)
}

func (ctl *LeaveRequestController) transition(c *gin.Context, action string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var body transitionRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req, err := ctl.engine.Transition(uint(id), actorFromContext(c), action, body.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Leave request not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Transition not allowed for current status"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update leave request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request updated to: " + req.Status,
		"request": req,
	})
}

// Pending handles GET /leave-requests/pending — the actor's approval queue.
func (ctl *LeaveRequestController) Pending(c *gin.Context) {
	rows, err := ctl.engine.PendingForActor(actorFromContext(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": rows, "total": len(rows)})
}

// History handles GET /leave-requests/history — requests the actor is done
// with, or a student's own submissions.
func (ctl *LeaveRequestController) History(c *gin.Context) {
	rows, err := ctl.engine.HistoryForActor(actorFromContext(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": rows, "total": len(rows)})
}

// Report handles GET /admin/leave-requests/report?section=&from=&to= over
// settled requests. Date bounds are inclusive calendar days.
func (ctl *LeaveRequestController) Report(c *gin.Context) {
	section := c.Query("section")

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		end := t.Add(24*time.Hour - time.Second)
		to = &end
	}

	rows, err := ctl.engine.ReportTerminal(section, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": rows, "total": len(rows)})
}
