package payment

import (
	"context"
	"errors"
)

var (
	// ErrInvalidSignature 簽章驗證失敗，webhook唯一的認證機制
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrMissingOrderID 事件metadata缺少order_id
	ErrMissingOrderID = errors.New("missing order id in event metadata")
	// ErrNoSessionURL provider沒有回傳session url
	ErrNoSessionURL = errors.New("payment session has no url")
)

type EventType string

const (
	// EventPaymentCompleted 付款完成，唯一會觸發訂單狀態轉移的事件
	EventPaymentCompleted EventType = "payment.completed"
	// EventIgnored 其餘事件一律ack不處理
	EventIgnored EventType = "ignored"
)

type LineItem struct {
	Name            string
	UnitAmountCents int64
	Quantity        int64
}

type CreateSessionParams struct {
	OrderID    string
	Currency   string
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
}

// Event provider事件驗證後的內部表示，核心邏輯不直接碰provider payload
type Event struct {
	Type       EventType
	OrderID    string
	PaymentRef string
}

// ISessionCreator 建立代管付款頁
type ISessionCreator interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (string, error)
}

// IEventVerifier 從raw payload + 簽章header還原已驗證事件
type IEventVerifier interface {
	VerifyEvent(payload []byte, sigHeader string) (*Event, error)
}
