package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

type AuditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepo(db *sqlx.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, entry domain.AuditLogEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, action, entity_type, entity_id, entity_name, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.Action, entry.EntityType, entry.EntityID, entry.EntityName, entry.Details, entry.CreatedAt)
	return err
}

var _ ports.AuditLogRepository = (*AuditLogRepository)(nil)
