package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

const metadataOrderIDKey = "order_id"

// StripeClient 同時實作 ISessionCreator 與 IEventVerifier
type StripeClient struct {
	webhookSecret string
}

func NewStripeClient(secretKey, webhookSecret string) *StripeClient {
	stripe.Key = secretKey
	return &StripeClient{
		webhookSecret: webhookSecret,
	}
}

// CreateSession 建立Stripe代管結帳頁
// session metadata 帶上內部訂單ID，是後續webhook對帳的唯一關聯
func (c *StripeClient) CreateSession(ctx context.Context, p CreateSessionParams) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(p.LineItems))
	for _, item := range p.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(p.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmountCents),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata(metadataOrderIDKey, p.OrderID)

	s, err := session.New(params)
	if err != nil {
		return "", err
	}
	if s.URL == "" {
		return "", ErrNoSessionURL
	}
	return s.URL, nil
}

// VerifyEvent 驗簽失敗回傳 ErrInvalidSignature，呼叫端不可在驗簽前解析payload
func (c *StripeClient) VerifyEvent(payload []byte, sigHeader string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	// 只處理付款完成事件，其他事件ack後忽略
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return &Event{Type: EventIgnored}, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("unmarshal checkout session: %w", err)
	}

	orderID := cs.Metadata[metadataOrderIDKey]
	if orderID == "" {
		return nil, ErrMissingOrderID
	}

	paymentRef := ""
	if cs.PaymentIntent != nil {
		paymentRef = cs.PaymentIntent.ID
	}

	return &Event{
		Type:       EventPaymentCompleted,
		OrderID:    orderID,
		PaymentRef: paymentRef,
	}, nil
}
