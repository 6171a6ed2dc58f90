package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// 出品者の操作履歴の絞り込み。ゼロ値の項目は条件にしない。
type AuditLogFilter struct {
	ActorUserID  string
	Action       model.AuditAction
	ResourceType model.AuditResourceType
	ResourceID   string
	Since        time.Time
	Limit        int
	Offset       int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	// 新しい順
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
