package endpoint

import (
	"github.com/adiyatma/idp-dashboard/util"
	"github.com/gin-gonic/gin"
)

// SystemOverview godoc
// @Summary      IAM backend system overview
// @Description  Health, version, database, and search-engine state fanned into one summary
// @Tags         System
// @Produce      json
// @Success      200 {object} map[string]interface{} "Overview retrieved"
// @Failure      502 {object} map[string]interface{} "Backend down or unreachable"
// @Router       /system [get]
func SystemOverview(c *gin.Context) {
	client, ok := ensureFusionAuth(c)
	if !ok {
		return
	}

	overview, err := client.SystemOverview(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, "/api/status", err)
		return
	}
	if !overview.Up {
		util.CallUpstreamError(c, "FusionAuth health check failed")
		return
	}

	util.CallOK(c, gin.H{"data": overview})
}
