package util

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

// GetPrincipalFromContext 取出邊界解析完成的身份，未登入回傳nil
func GetPrincipalFromContext(ctx context.Context) *model.Principal {
	if v := ctx.Value(constants.PrincipalKey); v != nil {
		if principal, ok := v.(*model.Principal); ok {
			return principal
		}
	}
	return nil
}

func GetRequestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(constants.RequestIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return "unknown"
}
