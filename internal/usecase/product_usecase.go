package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/session"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	tx          repo.TransactionManager
	images      ImageStore
	idGen       IDGenerator
	clock       Clock
}

// imagesはnilでもよい（アップロードは受け付けない）
func NewProductUsecase(
	productRepo repo.ProductRepository,
	tx repo.TransactionManager,
	images ImageStore,
	idGen IDGenerator,
	clock Clock,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		tx:          tx,
		images:      images,
		idGen:       idGen,
		clock:       clock,
	}
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Stock       int64   `json:"stock"`
	Pincode     string  `json:"pincode"`
}

// pincodeがあればその配送エリアの商品だけ
func (u *ProductUsecase) List(ctx context.Context, pincode string) ([]model.Product, error) {
	var (
		products []model.Product
		err      error
	)
	if p := strings.TrimSpace(pincode); p != "" {
		products, err = u.productRepo.ListByPincode(ctx, p)
	} else {
		products, err = u.productRepo.ListAll(ctx)
	}
	if err != nil {
		return []model.Product{}, storeError("db error")
	}
	return products, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id string) (model.Product, error) {
	if strings.TrimSpace(id) == "" {
		return model.Product{}, validationError("invalid id")
	}
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, notFoundError()
	}
	if err != nil {
		return model.Product{}, storeError("db error")
	}
	return p, nil
}

// 出品者の商品一覧
func (u *ProductUsecase) ListMine(ctx context.Context, sess *session.Session) ([]model.Product, error) {
	if err := requireCapability(sess, model.CapDashboard); err != nil {
		return []model.Product{}, err
	}
	products, err := u.productRepo.ListBySeller(ctx, sess.UserID)
	if err != nil {
		return []model.Product{}, storeError("db error")
	}
	return products, nil
}

func (u *ProductUsecase) Create(ctx context.Context, sess *session.Session, in ProductInput) (model.Product, error) {
	if err := requireCapability(sess, model.CapDashboard); err != nil {
		return model.Product{}, err
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	now := u.clock.Now()
	p := model.Product{
		ID:        u.idGen.NewID(),
		SellerID:  sess.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyProductInput(&p, in)

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, storeError("db error")
	}
	return created, nil
}

// 自分の商品だけ更新できる。他人の商品は存在しない扱い。
func (u *ProductUsecase) Update(ctx context.Context, sess *session.Session, id string, in ProductInput) (model.Product, error) {
	if err := requireCapability(sess, model.CapDashboard); err != nil {
		return model.Product{}, err
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.findOwned(ctx, sess, id)
	if err != nil {
		return model.Product{}, err
	}

	applyProductInput(&p, in)
	p.UpdatedAt = u.clock.Now()

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, notFoundError()
		}
		return model.Product{}, storeError("db error")
	}
	return p, nil
}

// 商品削除。削除と監査ログは同じTxで、どちらか失敗したら両方戻す。
func (u *ProductUsecase) Delete(ctx context.Context, sess *session.Session, id string) error {
	if err := requireCapability(sess, model.CapDashboard); err != nil {
		return err
	}

	p, err := u.findOwned(ctx, sess, id)
	if err != nil {
		return err
	}
	before, _ := json.Marshal(p)

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Products().Delete(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError()
			}
			return storeError("db error")
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  sess.UserID,
			Action:       model.AuditActionDeleteProduct,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   id,
			BeforeJSON:   string(before),
			AfterJSON:    "{}",
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return storeError("db error")
		}
		return nil
	})
}

// 画像をアップロードしてURLを返す。商品への反映はCreate/Updateで行う。
func (u *ProductUsecase) UploadImage(ctx context.Context, sess *session.Session, filename string, contentType string, body io.Reader) (string, error) {
	if err := requireCapability(sess, model.CapDashboard); err != nil {
		return "", err
	}
	if u.images == nil {
		return "", validationError("image upload is not available")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", validationError("invalid image")
	}

	key := "products/" + sess.UserID + "/" + u.idGen.NewID() + strings.ToLower(path.Ext(filename))
	url, err := u.images.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", storeError("image upload failed")
	}
	return url, nil
}

func (u *ProductUsecase) findOwned(ctx context.Context, sess *session.Session, id string) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, notFoundError()
	}
	if err != nil {
		return model.Product{}, storeError("db error")
	}
	if p.SellerID != sess.UserID {
		return model.Product{}, notFoundError()
	}
	return p, nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("name is required")
	}
	if in.Price < 0 {
		return validationError("invalid price")
	}
	if in.Stock < 0 {
		return validationError("invalid stock")
	}
	if strings.TrimSpace(in.Pincode) == "" {
		return validationError(MsgPincodeRequired)
	}
	return nil
}

func applyProductInput(p *model.Product, in ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.Price = in.Price
	p.Category = strings.TrimSpace(in.Category)
	p.Stock = in.Stock
	p.Pincode = strings.TrimSpace(in.Pincode)

	p.ImageURL = strings.TrimSpace(in.ImageURL)
	if p.ImageURL == "" {
		p.ImageURL = model.PlaceholderImageURL
	}
}

// ルートのガードとは別に、usecase単体でも権限を確認する
func requireCapability(sess *session.Session, c model.Capability) error {
	if sess == nil {
		return unauthorizedError()
	}
	if !sess.Can(c) {
		return forbiddenError()
	}
	return nil
}
