package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

// 配送エリア（pincode）が一致する商品だけ
func (r *ProductGormRepository) ListByPincode(ctx context.Context, pincode string) ([]model.Product, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("pincode = ?", pincode))
}

func (r *ProductGormRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Product, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("seller_id = ?", sellerID))
}

func (r *ProductGormRepository) list(_ context.Context, tx *gorm.DB) ([]model.Product, error) {
	products := []model.Product{}
	if err := tx.Order("created_at desc").Order("id desc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新（出品者は変えない）
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"image_url":   p.ImageURL,
		"category":    p.Category,
		"stock":       p.Stock,
		"pincode":     p.Pincode,
		"updated_at":  p.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除（注文明細はスナップショットなので影響しない）
func (r *ProductGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
