package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/session"
)

type OrderUsecase struct {
	orderRepo repo.OrderRepository
	tx        repo.TransactionManager
	clock     Clock

	// trueなら CanTransitionTo で遷移を制限する
	strict bool
}

func NewOrderUsecase(orderRepo repo.OrderRepository, tx repo.TransactionManager, clock Clock, strict bool) *OrderUsecase {
	return &OrderUsecase{orderRepo: orderRepo, tx: tx, clock: clock, strict: strict}
}

type UpdateOrderStatusInput struct {
	Status string `json:"status"`
}

// 購入者の注文履歴（新しい順）
func (u *OrderUsecase) ListMine(ctx context.Context, sess *session.Session) ([]model.Order, error) {
	if err := requireCapability(sess, model.CapMyOrders); err != nil {
		return []model.Order{}, err
	}
	orders, err := u.orderRepo.ListByBuyer(ctx, sess.UserID)
	if err != nil {
		return []model.Order{}, storeError("db error")
	}
	return orders, nil
}

// 他人の注文は存在しない扱い
func (u *OrderUsecase) GetMine(ctx context.Context, sess *session.Session, orderID string) (model.Order, error) {
	if err := requireCapability(sess, model.CapMyOrders); err != nil {
		return model.Order{}, err
	}
	o, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, notFoundError()
	}
	if err != nil {
		return model.Order{}, storeError("db error")
	}
	if o.UserID != sess.UserID {
		return model.Order{}, notFoundError()
	}
	return o, nil
}

// 自分の商品を含む注文
func (u *OrderUsecase) ListForSeller(ctx context.Context, sess *session.Session) ([]model.Order, error) {
	if err := requireCapability(sess, model.CapSellerOrders); err != nil {
		return []model.Order{}, err
	}
	orders, err := u.orderRepo.ListBySeller(ctx, sess.UserID)
	if err != nil {
		return []model.Order{}, storeError("db error")
	}
	return orders, nil
}

// ステータス更新（監査ログも同じTxで書く）
func (u *OrderUsecase) SellerUpdateStatus(ctx context.Context, sess *session.Session, orderID string, in UpdateOrderStatusInput) (model.Order, error) {
	if err := requireCapability(sess, model.CapSellerOrders); err != nil {
		return model.Order{}, err
	}
	if strings.TrimSpace(orderID) == "" {
		return model.Order{}, validationError("invalid id")
	}

	next := model.OrderStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if !next.Valid() {
		return model.Order{}, validationError("invalid status")
	}

	var updated model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError()
		}
		if err != nil {
			return storeError("db error")
		}

		// 自分の明細がない注文は見せない
		if !o.HasSeller(sess.UserID) {
			return notFoundError()
		}

		if u.strict && !o.Status.CanTransitionTo(next) {
			return NewHTTPError(http.StatusConflict, "invalid status transition")
		}

		before := o.Status
		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError()
			}
			return storeError("db error")
		}

		// 監査ログ（UPDATE_ORDER_STATUS）
		beforeJSON, _ := json.Marshal(map[string]model.OrderStatus{"status": before})
		afterJSON, _ := json.Marshal(map[string]model.OrderStatus{"status": next})
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  sess.UserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   string(beforeJSON),
			AfterJSON:    string(afterJSON),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return storeError("db error")
		}

		o.Status = next
		updated = o
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return updated, nil
}
