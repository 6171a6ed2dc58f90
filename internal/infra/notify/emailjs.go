package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain/cart"
	"storefront/internal/usecase"

	"github.com/go-resty/resty/v2"
)

// EmailJSのREST APIで注文確認メールを送る
type EmailJS struct {
	client     *resty.Client
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
}

type EmailJSConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
}

func NewEmailJS(cfg EmailJSConfig) *EmailJS {
	return &EmailJS{
		client:     resty.New().SetTimeout(30 * time.Second),
		endpoint:   cfg.Endpoint,
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
	}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (e *EmailJS) NotifyOrderPlaced(ctx context.Context, c usecase.OrderConfirmation) error {
	body := emailJSRequest{
		ServiceID:      e.serviceID,
		TemplateID:     e.templateID,
		UserID:         e.publicKey,
		TemplateParams: TemplateParams(c),
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(e.endpoint)
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("emailjs send failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}

// テンプレートに渡す値。明細は1行1商品。
func TemplateParams(c usecase.OrderConfirmation) map[string]string {
	lines := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, fmt.Sprintf("%s x%d - ₹%s", it.Name, it.Quantity, cart.FormatAmount(it.Price)))
	}

	return map[string]string{
		"order_id":         c.OrderID,
		"to_name":          c.ToName,
		"to_email":         c.ToEmail,
		"order_items":      strings.Join(lines, "\n"),
		"total_amount":     "₹" + cart.FormatAmount(c.Total),
		"delivery_address": c.DeliveryAddress,
		"pincode":          c.Pincode,
		"payment_method":   string(c.PaymentMethod),
	}
}
