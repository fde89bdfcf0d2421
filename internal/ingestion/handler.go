package ingestion

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	httperr "github.com/aevon-lab/overseer/internal/core/errors"
	"github.com/aevon-lab/overseer/internal/core/policy"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
	msgEventNotFound  = "Event not found"
	msgPatchNotObject = "Policy patch must be a JSON object"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// SubmitHandler records one agent action.
func (s *Service) SubmitHandler(c *gin.Context) {
	var req v1.SubmitRequest
	size, ierr := s.bindBody(c, &req, false)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Warn("Submit validation failed", "error", err)
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    err.Error(),
		})
		return
	}

	id := s.sup.SubmitEvent(req.Source, req.Action, req.Payload)

	slog.Info("Received Event",
		"event_id", id,
		"source", req.Source,
		"action", req.Action,
		"payload_size", size)

	c.JSON(http.StatusAccepted, v1.SubmitResponse{ID: id})
}

// ApproveHandler records a manual approval. The body is optional.
func (s *Service) ApproveHandler(c *gin.Context) {
	var req v1.ApproveRequest
	if _, ierr := s.bindBody(c, &req, true); ierr != nil {
		writeError(c, ierr)
		return
	}

	id := c.Param("id")
	if !s.sup.Approve(id, req.ApprovedBy) {
		writeError(c, notFound(id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "approved", "event_id": id})
}

// RollbackHandler records a rollback. The body is optional.
func (s *Service) RollbackHandler(c *gin.Context) {
	var req v1.RollbackRequest
	if _, ierr := s.bindBody(c, &req, true); ierr != nil {
		writeError(c, ierr)
		return
	}

	id := c.Param("id")
	if !s.sup.Rollback(id, req.Reason) {
		writeError(c, notFound(id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rolled_back", "event_id": id})
}

// SnapshotHandler returns the full supervisor state.
func (s *Service) SnapshotHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.sup.Snapshot())
}

// GetPolicyHandler returns the active policy.
func (s *Service) GetPolicyHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.sup.Policy())
}

// PatchPolicyHandler applies a loose JSON object as a best-effort policy patch.
// Invalid fields are dropped; the response lists what was applied.
func (s *Service) PatchPolicyHandler(c *gin.Context) {
	var raw map[string]interface{}
	if _, ierr := s.bindBody(c, &raw, false); ierr != nil {
		writeError(c, ierr)
		return
	}
	if raw == nil {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgPatchNotObject,
		})
		return
	}

	applied := s.sup.UpdatePolicy(policy.ParsePatch(raw))
	if applied == nil {
		applied = []string{}
	}
	c.JSON(http.StatusOK, v1.PolicyUpdateResponse{
		Applied: applied,
		Policy:  s.sup.Policy(),
	})
}

// bindBody reads the size-limited request body and decodes it into dst.
// When optional is set an empty body leaves dst untouched.
func (s *Service) bindBody(c *gin.Context, dst interface{}, optional bool) (int, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	// Check if body exceeds maximum size
	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLargeError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	if optional && len(bytes.TrimSpace(bodyBytes)) == 0 {
		return 0, nil
	}

	if err := json.Unmarshal(bodyBytes, dst); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	return len(bodyBytes), nil
}

func notFound(id string) *ingestionError {
	return &ingestionError{
		statusCode: http.StatusNotFound,
		errorType:  httperr.HttpEventNotFoundError,
		message:    msgEventNotFound,
		details:    map[string]interface{}{"event_id": id},
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
