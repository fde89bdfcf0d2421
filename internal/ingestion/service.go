package ingestion

import (
	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"github.com/aevon-lab/overseer/internal/core/notify"
	"github.com/gin-gonic/gin"
)

// Supervisor is the part of *supervisor.Supervisor the HTTP API drives.
type Supervisor interface {
	SubmitEvent(source, action string, payload interface{}) string
	Approve(eventID, approvedBy string) bool
	Rollback(eventID, reason string) bool
	Snapshot() v1.Snapshot
	Policy() v1.Policy
	UpdatePolicy(patch v1.PolicyPatch) []string
	Subscribe(fn notify.Callback) notify.Subscription
}

type Service struct {
	sup              Supervisor
	maxBodySizeBytes int
}

func NewService(sup Supervisor, maxBodySizeMB int) *Service {
	if sup == nil {
		panic("ingestion: supervisor must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		sup:              sup,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the producer and presentation routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	v := r.Group("/v1")

	// Producers.
	v.POST("/events", s.SubmitHandler)
	v.POST("/events/:id/approve", s.ApproveHandler)
	v.POST("/events/:id/rollback", s.RollbackHandler)

	// Presentation.
	v.GET("/snapshot", s.SnapshotHandler)
	v.GET("/stream", s.StreamHandler)
	v.GET("/policy", s.GetPolicyHandler)
	v.PATCH("/policy", s.PatchPolicyHandler)
}
