package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("id = ?", orderID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByBuyer(ctx context.Context, userID string) ([]model.Order, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// 明細に出品者の商品が1つでもあれば対象
func (r *OrderGormRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Order, error) {
	sub := r.db.Model(&model.OrderItem{}).Select("order_id").Where("seller_id = ?", sellerID)
	return r.list(r.db.WithContext(ctx).Where("seller_id = ? OR id IN (?)", sellerID, sub))
}

func (r *OrderGormRepository) list(q *gorm.DB) ([]model.Order, error) {
	items := []model.Order{}
	err := q.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Order("created_at desc").
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

// 注文と明細を1回で書き込む（明細はGORMの関連で一緒に入る）
func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (string, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return "", err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
