package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 100
)

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

func (r *AuditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&log).Error
}

func (r *AuditLogGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	logs := make([]model.AuditLog, 0)
	err := r.db.WithContext(ctx).
		Scopes(auditConditions(f), page(f.Limit, f.Offset)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func auditConditions(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.ActorUserID != "" {
			q = q.Where("actor_user_id = ?", f.ActorUserID)
		}
		if f.Action != "" {
			q = q.Where("action = ?", f.Action)
		}
		if f.ResourceType != "" {
			q = q.Where("resource_type = ?", f.ResourceType)
		}
		if f.ResourceID != "" {
			q = q.Where("resource_id = ?", f.ResourceID)
		}
		if !f.Since.IsZero() {
			q = q.Where("created_at >= ?", f.Since)
		}
		return q
	}
}

// limitは1..maxAuditLimitに丸める
func page(limit, offset int) func(*gorm.DB) *gorm.DB {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	if offset < 0 {
		offset = 0
	}
	return func(q *gorm.DB) *gorm.DB {
		return q.Limit(limit).Offset(offset)
	}
}
