package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth"
	"github.com/RoyceAzure/lab/storefront/internal/util"
)

// PrincipalMiddleware 在請求邊界解析一次Bearer token
// 解析失敗不擋請求，只是context不帶principal，由AuthMiddleware/AdminMiddleware決定要不要擋
func PrincipalMiddleware(tokenMaker auth.ITokenMaker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(string(constants.AuthorizationHeaderKey))
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			fields := strings.Fields(header)
			if len(fields) != 2 || strings.ToLower(fields[0]) != constants.AuthorizationTypeBearer {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := tokenMaker.VerifyToken(fields[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), constants.PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthMiddleware 驗證ctx是否有principal
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.GetPrincipalFromContext(r.Context()) == nil {
			writeAuthError(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminMiddleware admin保護的路由
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := util.GetPrincipalFromContext(r.Context())
		if principal == nil || !principal.IsAdmin {
			writeAuthError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
