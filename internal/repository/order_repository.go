package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderRepository interface {
	// 注文と明細をまとめて1回で書き込み、IDを返す
	Create(ctx context.Context, order model.Order) (string, error)
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListByBuyer(ctx context.Context, userID string) ([]model.Order, error)
	// 明細に出品者の商品を含む注文
	ListBySeller(ctx context.Context, sellerID string) ([]model.Order, error)
	// 無条件に上書き
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}
