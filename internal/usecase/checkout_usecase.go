package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/session"

	"go.uber.org/zap"
)

const notifyTimeout = 10 * time.Second

type CheckoutInput struct {
	Address       string `json:"address"`
	Pincode       string `json:"pincode"`
	PaymentMethod string `json:"payment_method"`
}

type CheckoutOutput struct {
	OrderID      string            `json:"order_id"`
	Status       model.OrderStatus `json:"status"`
	Total        float64           `json:"total"`
	TotalDisplay string            `json:"total_display"`
}

type CheckoutUsecase struct {
	users       repo.UserRepository
	productRepo repo.ProductRepository
	orderRepo   repo.OrderRepository
	notifier    OrderNotifier
	idGen       IDGenerator
	clock       Clock
	log         *zap.Logger

	// 通知の起動方法。テストでは同期にする
	spawn func(func())
	// 送信中の通知
	inflight sync.WaitGroup
}

// notifierはnilなら通知しない
func NewCheckoutUsecase(
	users repo.UserRepository,
	productRepo repo.ProductRepository,
	orderRepo repo.OrderRepository,
	notifier OrderNotifier,
	idGen IDGenerator,
	clock Clock,
	log *zap.Logger,
) *CheckoutUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	u := &CheckoutUsecase{
		users:       users,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		notifier:    notifier,
		idGen:       idGen,
		clock:       clock,
		log:         log,
	}
	u.spawn = func(f func()) {
		u.inflight.Add(1)
		go func() {
			defer u.inflight.Done()
			f()
		}()
	}
	return u
}

// 送信中の確認メールを待つ。ctxが先に終わったらctxのエラー。
func (u *CheckoutUsecase) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		u.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// カートの中身をまとめて1件の注文にする。成功したらカートを空にする。
// 失敗したときはカートに触らない。
func (u *CheckoutUsecase) CheckoutCart(ctx context.Context, sess *session.Session, in CheckoutInput) (CheckoutOutput, error) {
	if sess == nil {
		return CheckoutOutput{}, unauthorizedError()
	}

	var out CheckoutOutput
	err := sess.WithCart(func(c *cart.Cart) error {
		if c.IsEmpty() {
			return validationError(MsgCartEmpty)
		}

		addr, pin, method, err := validateDelivery(in, nil)
		if err != nil {
			return err
		}

		entries := c.Entries()
		items := make([]model.OrderItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, model.OrderItem{
				ProductID: e.ID,
				SellerID:  e.SellerID,
				Name:      e.Name,
				Price:     e.Price,
				Quantity:  e.Quantity,
			})
		}

		order, err := u.place(ctx, sess, items, c.Total(), addr, pin, method)
		if err != nil {
			return err
		}

		c.Clear()
		out = toCheckoutOutput(order)
		return nil
	})
	if err != nil {
		return CheckoutOutput{}, err
	}
	return out, nil
}

// 商品1つを数量1で即購入。カートは使わない。
func (u *CheckoutUsecase) BuyNow(ctx context.Context, sess *session.Session, productID string, in CheckoutInput) (CheckoutOutput, error) {
	if sess == nil {
		return CheckoutOutput{}, unauthorizedError()
	}

	// 住所とpincodeの入力チェックは商品を引く前
	if strings.TrimSpace(in.Address) == "" || strings.TrimSpace(in.Pincode) == "" {
		return CheckoutOutput{}, validationError(MsgDeliveryDetails)
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CheckoutOutput{}, notFoundError()
	}
	if err != nil {
		return CheckoutOutput{}, storeError(MsgPlaceOrderFailed)
	}

	addr, pin, method, err := validateDelivery(in, &p.Pincode)
	if err != nil {
		return CheckoutOutput{}, err
	}

	items := []model.OrderItem{{
		ProductID: p.ID,
		SellerID:  p.SellerID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	}}

	order, err := u.place(ctx, sess, items, p.Price, addr, pin, method)
	if err != nil {
		return CheckoutOutput{}, err
	}
	return toCheckoutOutput(order), nil
}

// 先に失敗したものを返す：住所 → pincode → 配送エリア → 支払い方法
// areaがnil（カート購入）ならエリアは見ない。即購入は商品のpincodeと完全一致。
func validateDelivery(in CheckoutInput, area *string) (string, string, model.PaymentMethod, error) {
	addr := strings.TrimSpace(in.Address)
	pin := strings.TrimSpace(in.Pincode)
	if addr == "" || pin == "" {
		return "", "", "", validationError(MsgDeliveryDetails)
	}
	if area != nil && pin != strings.TrimSpace(*area) {
		return "", "", "", validationError(MsgDeliveryUnavailable)
	}

	method := model.PaymentMethod(strings.ToLower(strings.TrimSpace(in.PaymentMethod)))
	if method == "" {
		method = model.PaymentMethodCOD
	}
	if !method.Valid() {
		return "", "", "", validationError(MsgInvalidPaymentMethod)
	}
	return addr, pin, method, nil
}

// 注文を組み立ててOrderStoreに1回だけ書き込む
func (u *CheckoutUsecase) place(
	ctx context.Context,
	sess *session.Session,
	items []model.OrderItem,
	total float64,
	addr string,
	pin string,
	method model.PaymentMethod,
) (model.Order, error) {
	buyer, err := u.users.FindByID(ctx, sess.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, unauthorizedError()
	}
	if err != nil {
		return model.Order{}, storeError(MsgPlaceOrderFailed)
	}

	now := u.clock.Now()
	order := model.Order{
		ID:              u.idGen.NewID(),
		UserID:          sess.UserID,
		BuyerName:       buyer.FullName(),
		BuyerEmail:      buyer.Email,
		SellerID:        singleSeller(items),
		Items:           items,
		Total:           total,
		DeliveryAddress: addr,
		Pincode:         pin,
		PaymentMethod:   method,
		Status:          model.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := u.orderRepo.Create(ctx, order)
	if err != nil {
		u.log.Error("place order failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return model.Order{}, storeError(MsgPlaceOrderFailed)
	}
	if id != "" {
		order.ID = id
	}

	u.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.Int("item_count", len(items)),
		zap.Float64("total", total),
	)

	u.notify(order)
	return order, nil
}

// 結果を待たない。失敗はログだけ。
func (u *CheckoutUsecase) notify(order model.Order) {
	if u.notifier == nil || order.BuyerEmail == "" {
		return
	}

	c := OrderConfirmation{
		OrderID:         order.ID,
		ToName:          order.BuyerName,
		ToEmail:         order.BuyerEmail,
		Items:           order.Items,
		Total:           order.Total,
		DeliveryAddress: order.DeliveryAddress,
		Pincode:         order.Pincode,
		PaymentMethod:   order.PaymentMethod,
	}

	u.spawn(func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := u.notifier.NotifyOrderPlaced(ctx, c); err != nil {
			u.log.Warn("order confirmation failed", zap.String("order_id", c.OrderID), zap.Error(err))
		}
	})
}

// 出品者が1人のときだけ注文に載せる
func singleSeller(items []model.OrderItem) string {
	seller := ""
	for _, it := range items {
		if it.SellerID == "" {
			return ""
		}
		if seller == "" {
			seller = it.SellerID
			continue
		}
		if it.SellerID != seller {
			return ""
		}
	}
	return seller
}

func toCheckoutOutput(o model.Order) CheckoutOutput {
	return CheckoutOutput{
		OrderID:      o.ID,
		Status:       o.Status,
		Total:        o.Total,
		TotalDisplay: cart.FormatAmount(o.Total),
	}
}
