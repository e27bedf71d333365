package endpoint

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/adiyatma/idp-dashboard/util"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// DashboardIdentity describes the dashboard operator: who they are and which
// tenants they may see.
type DashboardIdentity struct {
	Email          string   `json:"email"`
	Roles          []string `json:"roles"`
	AllowedTenants []string `json:"allowedTenants"`
}

// IsSuperAdmin reports whether the identity sees all tenants.
func (d DashboardIdentity) IsSuperAdmin() bool {
	return util.Contains("super-admin", d.Roles)
}

type identityClaims struct {
	Email          string   `json:"email"`
	Roles          []string `json:"roles"`
	AllowedTenants []string `json:"allowedTenants"`
	jwt.RegisteredClaims
}

// defaultIdentity is the demo operator used until real dashboard auth is
// wired to the IdP.
func defaultIdentity() DashboardIdentity {
	return DashboardIdentity{
		Email:          "demo@example.com",
		Roles:          []string{"super-admin"},
		AllowedTenants: []string{"tenant-aaa-uuid", "tenant-bbb-uuid"},
	}
}

// resolveIdentity returns the operator behind the request. A valid HMAC
// Bearer token yields its claims; anything else falls back to the demo
// identity so the dashboard stays usable without auth configured.
func resolveIdentity(c *gin.Context) DashboardIdentity {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return defaultIdentity()
	}
	secret := util.GetJWTSecretByte()
	if len(secret) == 0 {
		return defaultIdentity()
	}

	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid || claims.Email == "" {
		return defaultIdentity()
	}

	return DashboardIdentity{
		Email:          claims.Email,
		Roles:          claims.Roles,
		AllowedTenants: claims.AllowedTenants,
	}
}

// Me godoc
// @Summary      Current dashboard identity
// @Description  Return the operator's email, roles, and allowed tenants
// @Tags         Identity
// @Produce      json
// @Success      200 {object} DashboardIdentity "Identity resolved"
// @Router       /me [get]
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, resolveIdentity(c))
}
