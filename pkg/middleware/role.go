package middleware

import (
	"net/http"

	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"github.com/vinodrajapaksha/ttms-api/pkg/apiErrors"
	"github.com/vinodrajapaksha/ttms-api/pkg/log"
)

// RoleMiddleware lets through only users holding one of allowedRoles.
func RoleMiddleware(allowedRoles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.ForContext(r.Context())

			userClaims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logger.Warn("auth: access attempt without authentication")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
				return
			}

			if !userClaims.HasRole(allowedRoles...) {
				logger.WithFields(log.Fields{
					"user_id":   userClaims.UserID,
					"user_role": userClaims.UserRole,
					"path":      r.URL.Path,
				}).Warn("auth: access denied")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "you are not allowed to access this resource", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ManagersOnly covers promotion editing and sales reports.
func ManagersOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleMarketingManager, domain.RoleGeneralManager)
}

// GeneralManagerOnly covers operational endpoints.
func GeneralManagerOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleGeneralManager)
}

// StaffOnly admits every internal role.
func StaffOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(
		domain.RoleGeneralManager,
		domain.RoleSeniorTravelConsultant,
		domain.RoleCustomerServiceExecutive,
		domain.RoleMarketingManager,
	)
}
