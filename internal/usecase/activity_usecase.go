package usecase

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/session"
)

// 出品者が自分の操作履歴（商品削除・ステータス更新）を見る
type ActivityUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewActivityUsecase(auditRepo repo.AuditLogRepository) *ActivityUsecase {
	return &ActivityUsecase{auditRepo: auditRepo}
}

type ActivityQuery struct {
	Action       string `query:"action"`
	ResourceType string `query:"resource_type"`
	Limit        int    `query:"limit"`
	Offset       int    `query:"offset"`
}

type ActivityEntry struct {
	ID           int64                   `json:"id"`
	Action       model.AuditAction       `json:"action"`
	ResourceType model.AuditResourceType `json:"resource_type"`
	ResourceID   string                  `json:"resource_id"`
	Before       json.RawMessage         `json:"before,omitempty"`
	After        json.RawMessage         `json:"after,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}

func (u *ActivityUsecase) ListMine(ctx context.Context, sess *session.Session, q ActivityQuery) ([]ActivityEntry, error) {
	if err := requireCapability(sess, model.CapDashboard); err != nil {
		return nil, err
	}

	f := repo.AuditLogFilter{
		ActorUserID: sess.UserID,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
	if q.Action != "" {
		a := model.AuditAction(q.Action)
		if !a.Valid() {
			return nil, validationError("invalid action")
		}
		f.Action = a
	}
	if q.ResourceType != "" {
		rt := model.AuditResourceType(q.ResourceType)
		if !rt.Valid() {
			return nil, validationError("invalid resource_type")
		}
		f.ResourceType = rt
	}
	if q.Limit < 0 || q.Offset < 0 {
		return nil, validationError("limit and offset must not be negative")
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, storeError("db error")
	}

	out := make([]ActivityEntry, 0, len(logs))
	for _, l := range logs {
		out = append(out, ActivityEntry{
			ID:           l.ID,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			Before:       rawJSON(l.BeforeJSON),
			After:        rawJSON(l.AfterJSON),
			CreatedAt:    l.CreatedAt,
		})
	}
	return out, nil
}

// 壊れた値はそのまま返さない
func rawJSON(s string) json.RawMessage {
	if s == "" || !json.Valid([]byte(s)) {
		return nil
	}
	return json.RawMessage(s)
}
