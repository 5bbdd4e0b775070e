package service

import (
	"context"
	"errors"
	"sync"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/payment"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"gorm.io/gorm"
)

// in-memory測試替身，行為對齊db package的repo實作

type fakeCustomerRepo struct {
	mu        sync.Mutex
	byID      map[string]*model.Customer
	byEmail   map[string]*model.Customer
	addresses map[string][]*model.Address
	failOn    string
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		byID:      make(map[string]*model.Customer),
		byEmail:   make(map[string]*model.Customer),
		addresses: make(map[string][]*model.Address),
	}
}

func (f *fakeCustomerRepo) add(customer *model.Customer) {
	f.byID[customer.CustomerID] = customer
	f.byEmail[customer.Email] = customer
}

func (f *fakeCustomerRepo) CreateCustomer(ctx context.Context, customer *model.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn == "CreateCustomer" {
		return errors.New("create customer failed")
	}
	if _, ok := f.byEmail[customer.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.add(customer)
	return nil
}

func (f *fakeCustomerRepo) GetCustomerByID(ctx context.Context, id string) (*model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	customer, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (f *fakeCustomerRepo) GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	customer, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (f *fakeCustomerRepo) UpsertCustomerByEmail(ctx context.Context, email, hashedPassword string) (*model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if customer, ok := f.byEmail[email]; ok {
		return customer, nil
	}
	customer := &model.Customer{
		CustomerID:     "cust-" + email,
		Email:          email,
		HashedPassword: hashedPassword,
	}
	f.add(customer)
	return customer, nil
}

func (f *fakeCustomerRepo) GetFirstAddress(ctx context.Context, customerID string) (*model.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	addrs := f.addresses[customerID]
	if len(addrs) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return addrs[0], nil
}

func (f *fakeCustomerRepo) CreateAddress(ctx context.Context, address *model.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addresses[address.CustomerID] = append(f.addresses[address.CustomerID], address)
	return nil
}

type fakeOrderRepo struct {
	mu            sync.Mutex
	orders        map[string]*model.Order
	variantStocks map[string]uint
	createErr     error
	finalizeErr   error
	finalizeCalls int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:        make(map[string]*model.Order),
		variantStocks: make(map[string]uint),
	}
}

func (f *fakeOrderRepo) CreateOrderWithItems(ctx context.Context, order *model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.orders[order.OrderID] = order
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) GetOrdersByCustomerID(ctx context.Context, customerID string) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []model.Order
	for _, order := range f.orders {
		if order.CustomerID == customerID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

// FinalizePayment 對齊真實repo的交易語意: 全部成功或全部不動
func (f *fakeOrderRepo) FinalizePayment(ctx context.Context, orderID string, paymentRef string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalizeCalls++

	if f.finalizeErr != nil {
		return false, f.finalizeErr
	}

	order, ok := f.orders[orderID]
	if !ok {
		return false, nil
	}
	if order.PaymentRef != nil {
		return false, nil
	}

	// 先驗證全部庫存，模擬rollback
	for _, item := range order.OrderItems {
		if item.VariantID == nil {
			continue
		}
		if f.variantStocks[*item.VariantID] < uint(item.Quantity) {
			return false, db.ErrVariantStockNotEnough
		}
	}
	for _, item := range order.OrderItems {
		if item.VariantID == nil {
			continue
		}
		f.variantStocks[*item.VariantID] -= uint(item.Quantity)
	}

	order.Status = model.OrderStatusPaid
	order.PaymentRef = &paymentRef
	return true, nil
}

func (f *fakeOrderRepo) CountOrders(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) CountOrdersByStatus(ctx context.Context, status uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, order := range f.orders {
		if order.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderRepo) SumPaidTotalCents(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int64
	for _, order := range f.orders {
		if order.Status == model.OrderStatusPaid {
			sum += order.TotalCents
		}
	}
	return sum, nil
}

type fakeSessionCreator struct {
	lastParams payment.CreateSessionParams
	url        string
	err        error
	calls      int
}

func (f *fakeSessionCreator) CreateSession(ctx context.Context, params payment.CreateSessionParams) (string, error) {
	f.calls++
	f.lastParams = params
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeEventProducer struct {
	events []producer.OrderPaidEvent
	err    error
}

func (f *fakeEventProducer) ProduceOrderPaidEvent(ctx context.Context, event producer.OrderPaidEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventProducer) Close() error { return nil }
