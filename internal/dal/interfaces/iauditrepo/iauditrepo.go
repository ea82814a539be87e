package iauditrepo

import (
	"context"

	"github.com/salesdesk/oms/internal/service/models/auditlog"
)

// IAuditRepository is the interface for publishing order audit events.
type IAuditRepository interface {
	Publish(ctx context.Context, events ...auditlog.Event) error
}
