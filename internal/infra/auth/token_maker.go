package auth

import (
	"errors"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token is expired")
)

// ITokenMaker 請求邊界的token收發
// 核心服務只看得到 model.Principal，token格式在這層被隔離
type ITokenMaker interface {
	CreateToken(customer *model.Customer, duration time.Duration) (string, error)
	VerifyToken(token string) (*model.Principal, error)
}

type customerClaims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type JWTMaker struct {
	secretKey []byte
}

func NewJWTMaker(secretKey string) *JWTMaker {
	return &JWTMaker{secretKey: []byte(secretKey)}
}

func (m *JWTMaker) CreateToken(customer *model.Customer, duration time.Duration) (string, error) {
	now := time.Now()
	claims := customerClaims{
		Email:   customer.Email,
		IsAdmin: customer.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customer.CustomerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

func (m *JWTMaker) VerifyToken(tokenStr string) (*model.Principal, error) {
	var claims customerClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		// 只接受HS256，防止alg混淆
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return &model.Principal{
		CustomerID: claims.Subject,
		Email:      claims.Email,
		IsAdmin:    claims.IsAdmin,
	}, nil
}
