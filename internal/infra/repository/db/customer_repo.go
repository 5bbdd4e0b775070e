package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type ICustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *model.Customer) error
	GetCustomerByID(ctx context.Context, id string) (*model.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error)
	UpsertCustomerByEmail(ctx context.Context, email, hashedPassword string) (*model.Customer, error)
	GetFirstAddress(ctx context.Context, customerID string) (*model.Address, error)
	CreateAddress(ctx context.Context, address *model.Address) error
}

type CustomerRepo struct {
	db *DbDao
}

func NewCustomerRepo(db *DbDao) *CustomerRepo {
	return &CustomerRepo{db: db}
}

func (s *CustomerRepo) CreateCustomer(ctx context.Context, customer *model.Customer) error {
	return s.db.WithContext(ctx).Create(customer).Error
}

func (s *CustomerRepo) GetCustomerByID(ctx context.Context, id string) (*model.Customer, error) {
	var customer model.Customer
	err := s.db.WithContext(ctx).First(&customer, "customer_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerRepo) GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpsertCustomerByEmail 訪客結帳用
// email 已存在就沿用既有客戶，否則以佔位密碼建立新客戶
func (s *CustomerRepo) UpsertCustomerByEmail(ctx context.Context, email, hashedPassword string) (*model.Customer, error) {
	customer := model.Customer{
		CustomerID:     uuid.NewString(),
		Email:          email,
		HashedPassword: hashedPassword,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&customer).Error
	if err != nil {
		return nil, err
	}
	// DoNothing 時拿不回既有row，再查一次
	return s.GetCustomerByEmail(ctx, email)
}

func (s *CustomerRepo) GetFirstAddress(ctx context.Context, customerID string) (*model.Address, error) {
	var address model.Address
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *CustomerRepo) CreateAddress(ctx context.Context, address *model.Address) error {
	return s.db.WithContext(ctx).Create(address).Error
}
