package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrSignupFieldsRequired = errors.New("name, email and password are required")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)

const minPasswordLen = 6

type ICustomerService interface {
	Signup(ctx context.Context, name, email, password string) (*model.Customer, error)
	Login(ctx context.Context, email, password string) (*model.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*model.Customer, error)
}

type CustomerService struct {
	customerRepo db.ICustomerRepository
}

func NewCustomerService(customerRepo db.ICustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (c *CustomerService) Signup(ctx context.Context, name, email, password string) (*model.Customer, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrSignupFieldsRequired
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	if _, err := c.customerRepo.GetCustomerByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	customer := &model.Customer{
		CustomerID:     uuid.NewString(),
		Email:          email,
		Name:           name,
		HashedPassword: string(hashed),
	}
	if err := c.customerRepo.CreateCustomer(ctx, customer); err != nil {
		// 併發註冊撞到unique constraint
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return customer, nil
}

func (c *CustomerService) Login(ctx context.Context, email, password string) (*model.Customer, error) {
	customer, err := c.customerRepo.GetCustomerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return customer, nil
}

func (c *CustomerService) GetCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	customer, err := c.customerRepo.GetCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotExist
		}
		return nil, err
	}
	return customer, nil
}
