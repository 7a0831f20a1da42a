package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionCreated AuditAction = "created"
	AuditActionUpdated AuditAction = "updated"
	AuditActionDeleted AuditAction = "deleted"
)

// AuditLogEntry is an append-only record of one admin write. Writing it is
// best-effort: a failed append never fails the operation that triggered it.
type AuditLogEntry struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	Action     AuditAction `db:"action" json:"action"`
	EntityType string      `db:"entity_type" json:"entity_type"`
	EntityID   int64       `db:"entity_id" json:"entity_id"`
	EntityName string      `db:"entity_name" json:"entity_name"`
	Details    string      `db:"details" json:"details"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}
