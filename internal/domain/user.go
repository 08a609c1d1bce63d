package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleGeneralManager           Role = "general_manager"
	RoleSeniorTravelConsultant   Role = "senior_travel_consultant"
	RoleCustomerServiceExecutive Role = "customer_service_executive"
	RoleMarketingManager         Role = "marketing_manager"
	RoleCustomer                 Role = "customer"
)

// Claims are issued by the external auth service; this API only verifies them.
type Claims struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"name"`
	UserEmail string `json:"email"`
	UserRole  Role   `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.UserRole == r {
			return true
		}
	}
	return false
}
