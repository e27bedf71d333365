package endpoint

import (
	"time"

	"github.com/adiyatma/idp-dashboard/util"
	"github.com/gin-gonic/gin"
)

// MonthlyActiveUsers godoc
// @Summary      Monthly active users
// @Description  Current-month MAU from the IAM backend's report API
// @Tags         Reports
// @Produce      json
// @Param        tenantId query string false "Tenant scope"
// @Success      200 {object} map[string]interface{} "MAU retrieved"
// @Failure      502 {object} map[string]interface{} "Upstream failure"
// @Router       /mau [get]
func MonthlyActiveUsers(c *gin.Context) {
	client, ok := ensureFusionAuth(c)
	if !ok {
		return
	}

	tenantID := c.Query("tenantId")

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Millisecond)

	report, err := client.MonthlyActiveUserReport(c.Request.Context(), tenantID, startOfMonth.UnixMilli(), endOfMonth.UnixMilli())
	if err != nil {
		respondUpstreamError(c, "/api/report/monthly-active-user", err)
		return
	}

	// The report lists one interval per month; the last entry is the
	// current month.
	currentMonth := 0
	if len(report.Monthly) > 0 {
		currentMonth = report.Monthly[len(report.Monthly)-1].Count
	}

	util.CallOK(c, gin.H{
		"total": currentMonth,
		"period": gin.H{
			"start": startOfMonth.UnixMilli(),
			"end":   endOfMonth.UnixMilli(),
			"month": now.Format("January 2006"),
		},
		"tenantId": tenantLabel(tenantID),
	})
}
