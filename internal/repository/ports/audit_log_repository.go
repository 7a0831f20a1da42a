package ports

import (
	"context"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
)

type AuditLogRepository interface {
	Append(ctx context.Context, entry domain.AuditLogEntry) error
}
