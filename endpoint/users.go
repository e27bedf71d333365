package endpoint

import (
	"github.com/adiyatma/idp-dashboard/util"
	"github.com/gin-gonic/gin"
)

// CountUsers godoc
// @Summary      User counts
// @Description  Global registration totals, or a tenant-scoped user count when tenantId is given
// @Tags         Users
// @Produce      json
// @Param        tenantId query string false "Tenant scope"
// @Success      200 {object} map[string]interface{} "Counts retrieved"
// @Failure      502 {object} map[string]interface{} "Upstream failure"
// @Router       /users/count [get]
func CountUsers(c *gin.Context) {
	client, ok := ensureFusionAuth(c)
	if !ok {
		return
	}

	tenantID := c.Query("tenantId")
	if tenantID == "" {
		totals, err := client.ReportTotals(c.Request.Context())
		if err != nil {
			respondUpstreamError(c, "/api/report/totals", err)
			return
		}
		appTotals := totals.ApplicationTotals
		if appTotals == nil {
			appTotals = map[string]interface{}{}
		}
		util.CallOK(c, gin.H{
			"total":             totals.GlobalRegistrations,
			"totalAllTime":      totals.TotalGlobalRegistrations,
			"applicationTotals": appTotals,
			"tenantId":          "global",
		})
		return
	}

	count, err := client.CountUsers(c.Request.Context(), tenantID)
	if err != nil {
		respondUpstreamError(c, "/api/user/search", err)
		return
	}
	util.CallOK(c, gin.H{"total": count, "tenantId": tenantID})
}
