package endpoint

import (
	"github.com/adiyatma/idp-dashboard/fusionauth"
	"github.com/adiyatma/idp-dashboard/util"
	"github.com/gin-gonic/gin"
)

// ListTenants godoc
// @Summary      List tenants
// @Description  Fetch all tenants from the IAM backend, filtered by the caller's allowed tenants
// @Tags         Tenants
// @Produce      json
// @Success      200 {object} map[string]interface{} "Tenants retrieved"
// @Failure      502 {object} map[string]interface{} "Upstream failure"
// @Router       /tenants [get]
func ListTenants(c *gin.Context) {
	client, ok := ensureFusionAuth(c)
	if !ok {
		return
	}

	tenants, err := client.Tenants(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, "/api/tenant", err)
		return
	}

	me := resolveIdentity(c)
	if !me.IsSuperAdmin() {
		allowed := make(map[string]bool, len(me.AllowedTenants))
		for _, id := range me.AllowedTenants {
			allowed[id] = true
		}
		visible := make([]fusionauth.Tenant, 0, len(tenants))
		for _, t := range tenants {
			if allowed[t.ID] {
				visible = append(visible, t)
			}
		}
		tenants = visible
	}

	if tenants == nil {
		tenants = []fusionauth.Tenant{}
	}
	util.CallOK(c, gin.H{"tenants": tenants})
}
