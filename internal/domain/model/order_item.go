package model

// 注文明細。商品名・価格は注文時点の値を保存する（カタログは参照しない）。
type OrderItem struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   string  `gorm:"type:varchar(36);not null;index" json:"-"`
	ProductID string  `gorm:"type:varchar(36);not null;index" json:"product_id"`
	SellerID  string  `gorm:"type:varchar(36);index" json:"seller_id,omitempty"`
	Name      string  `gorm:"column:product_name_snapshot;type:varchar(255);not null" json:"name"`
	Price     float64 `gorm:"column:unit_price_snapshot;not null" json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}
