package model

import "time"

// 画像未指定のときに使う
const PlaceholderImageURL = "https://via.placeholder.com/400"

// 出品者が持つ商品。配送エリア（pincode）は1商品につき1つ。
// Stockは保持するだけで注文時には見ない。
type Product struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	ImageURL    string    `gorm:"type:text;not null" json:"image_url"`
	Category    string    `gorm:"type:varchar(100)" json:"category,omitempty"`
	Stock       int64     `gorm:"not null;default:0" json:"stock"`
	Pincode     string    `gorm:"type:varchar(20);not null;index" json:"pincode"`
	SellerID    string    `gorm:"type:varchar(36);not null;index" json:"seller_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
