package model

import "time"

// 出品者の操作の種類
type AuditAction string

const (
	//注文ステータスを更新した操作。
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	//商品を削除した操作。
	AuditActionDeleteProduct AuditAction = "DELETE_PRODUCT"
)

func (a AuditAction) Valid() bool {
	return a == AuditActionUpdateOrderStatus || a == AuditActionDeleteProduct
}

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceProduct AuditResourceType = "product"
	AuditResourceOrder   AuditResourceType = "order"
)

func (t AuditResourceType) Valid() bool {
	return t == AuditResourceProduct || t == AuditResourceOrder
}

// 監査ログ。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザー（出品者）のID。
	ActorUserID string `gorm:"type:varchar(36);not null;index" json:"actor_user_id"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string            `gorm:"type:varchar(36);not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
