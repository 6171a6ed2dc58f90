package usecase

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/session"
)

// CartUsecase は /cart の業務ロジックです。
// カートはセッションが持つので、Repositoryは商品の取得にだけ使います。
type CartUsecase struct {
	productRepo repo.ProductRepository
}

func NewCartUsecase(productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{productRepo: productRepo}
}

type CartItemView struct {
	ProductID       string  `json:"product_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	ImageURL        string  `json:"image_url"`
	Quantity        int     `json:"quantity"`
	Subtotal        float64 `json:"subtotal"`
	SubtotalDisplay string  `json:"subtotal_display"`
}

type CartView struct {
	State        cart.State     `json:"state"`
	Items        []CartItemView `json:"items"`
	Count        int            `json:"count"`
	Total        float64        `json:"total"`
	TotalDisplay string         `json:"total_display"`
}

// 1明細あたりの数量の上限
const MaxLineQuantity = 999

type AddCartInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity"`
}

func (u *CartUsecase) Get(_ context.Context, sess *session.Session) (CartView, error) {
	if err := requireCapability(sess, model.CapCart); err != nil {
		return CartView{}, err
	}

	var view CartView
	_ = sess.WithCart(func(c *cart.Cart) error {
		view = toCartView(c)
		return nil
	})
	return view, nil
}

// 同じ商品は数量加算。Quantity未指定は1。
func (u *CartUsecase) AddItem(ctx context.Context, sess *session.Session, in AddCartInput) (CartView, error) {
	if err := requireCapability(sess, model.CapCart); err != nil {
		return CartView{}, err
	}
	id := strings.TrimSpace(in.ProductID)
	if id == "" {
		return CartView{}, validationError("invalid product_id")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 || in.Quantity > MaxLineQuantity {
		return CartView{}, validationError("invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, notFoundError()
	}
	if err != nil {
		return CartView{}, storeError("db error")
	}

	var view CartView
	err = sess.WithCart(func(c *cart.Cart) error {
		// 合算後も上限以内。超えるならカートは変えない
		if c.Quantity(p.ID)+in.Quantity > MaxLineQuantity {
			return validationError("invalid quantity")
		}
		if err := c.Add(toCartProduct(p)); err != nil {
			return validationError("invalid product")
		}
		if in.Quantity > 1 {
			c.UpdateQuantity(p.ID, c.Quantity(p.ID)+in.Quantity-1)
		}
		view = toCartView(c)
		return nil
	})
	if err != nil {
		return CartView{}, err
	}
	return view, nil
}

// 0以下は削除。カートにない商品は何もしない。
func (u *CartUsecase) UpdateItem(_ context.Context, sess *session.Session, productID string, in UpdateCartItemInput) (CartView, error) {
	if err := requireCapability(sess, model.CapCart); err != nil {
		return CartView{}, err
	}

	qty := in.Quantity
	if qty < 0 {
		qty = 0
	}
	if qty > MaxLineQuantity {
		return CartView{}, validationError("invalid quantity")
	}

	var view CartView
	_ = sess.WithCart(func(c *cart.Cart) error {
		c.UpdateQuantity(productID, qty)
		view = toCartView(c)
		return nil
	})
	return view, nil
}

func (u *CartUsecase) RemoveItem(_ context.Context, sess *session.Session, productID string) (CartView, error) {
	if err := requireCapability(sess, model.CapCart); err != nil {
		return CartView{}, err
	}

	var view CartView
	_ = sess.WithCart(func(c *cart.Cart) error {
		c.Remove(productID)
		view = toCartView(c)
		return nil
	})
	return view, nil
}

func (u *CartUsecase) Clear(_ context.Context, sess *session.Session) (CartView, error) {
	if err := requireCapability(sess, model.CapCart); err != nil {
		return CartView{}, err
	}

	var view CartView
	_ = sess.WithCart(func(c *cart.Cart) error {
		c.Clear()
		view = toCartView(c)
		return nil
	})
	return view, nil
}

func toCartProduct(p model.Product) cart.Product {
	return cart.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		SellerID: p.SellerID,
	}
}

// 表示用の丸めはここだけ。Totalは丸めない値。
func toCartView(c *cart.Cart) CartView {
	entries := c.Entries()
	items := make([]CartItemView, 0, len(entries))
	count := 0
	for _, e := range entries {
		sub := e.Subtotal()
		items = append(items, CartItemView{
			ProductID:       e.ID,
			Name:            e.Name,
			Price:           e.Price,
			ImageURL:        e.ImageURL,
			Quantity:        e.Quantity,
			Subtotal:        sub,
			SubtotalDisplay: cart.FormatAmount(sub),
		})
		count += e.Quantity
	}

	total := c.Total()
	return CartView{
		State:        c.State(),
		Items:        items,
		Count:        count,
		Total:        total,
		TotalDisplay: cart.FormatAmount(total),
	}
}
