package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

// AuditRecorder appends audit rows for admin writes. Appends are best-effort:
// a failed write is logged and swallowed so it never fails the operation that
// triggered it.
type AuditRecorder struct {
	logs ports.AuditLogRepository
}

func NewAuditRecorder(logs ports.AuditLogRepository) *AuditRecorder {
	return &AuditRecorder{logs: logs}
}

func (r *AuditRecorder) Record(ctx context.Context, action domain.AuditAction, entityType string, entityID int64, entityName, details string) {
	if r == nil || r.logs == nil {
		return
	}
	entry := domain.AuditLogEntry{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.logs.Append(ctx, entry); err != nil {
		log.Printf("audit log: append %s %s/%d failed: %v", action, entityType, entityID, err)
	}
}
