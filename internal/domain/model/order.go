package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 前進の順番
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusShipped:    2,
	OrderStatusDelivered:  3,
}

func (s OrderStatus) Valid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := orderStatusRank[s]
	return ok
}

// delivered / cancelled は終端
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// 厳格モード用：前進のみ＋非終端からのキャンセル
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return orderStatusRank[next] > orderStatusRank[s]
}

type PaymentMethod string

const (
	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodPayU PaymentMethod = "payu"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodPayU
}

// 注文時点のスナップショット。あとから変わるのはStatusだけ。
// SellerIDは明細の出品者が1人のときだけ入る。
type Order struct {
	ID              string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID          string        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	BuyerName       string        `gorm:"type:varchar(255)" json:"buyer_name"`
	BuyerEmail      string        `gorm:"type:varchar(255)" json:"buyer_email"`
	SellerID        string        `gorm:"type:varchar(36);index" json:"seller_id,omitempty"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total           float64       `gorm:"not null" json:"total"`
	DeliveryAddress string        `gorm:"type:text;not null" json:"delivery_address"`
	Pincode         string        `gorm:"type:varchar(20);not null" json:"pincode"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	Status          OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt       time.Time     `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null" json:"updated_at"`
}

// 明細の出品者が含まれるか
func (o Order) HasSeller(sellerID string) bool {
	if sellerID == "" {
		return false
	}
	if o.SellerID == sellerID {
		return true
	}
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			return true
		}
	}
	return false
}
