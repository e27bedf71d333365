package endpoint

import (
	"strconv"

	"github.com/adiyatma/idp-dashboard/util"
	"github.com/gin-gonic/gin"
)

type loginRecordItem struct {
	TS      int64  `json:"ts"`
	LoginID string `json:"loginId"`
	UserID  string `json:"userId"`
	AppID   string `json:"appId"`
	IP      string `json:"ip"`
}

// ListLoginRecords godoc
// @Summary      Recent login records
// @Description  Fetch the IAM backend's login-record search, newest first
// @Tags         Logs
// @Produce      json
// @Param        limit query int false "Maximum records" default(25)
// @Param        offset query int false "Start row" default(0)
// @Success      200 {object} map[string]interface{} "Records retrieved"
// @Failure      502 {object} map[string]interface{} "Upstream failure"
// @Router       /login-records [get]
func ListLoginRecords(c *gin.Context) {
	client, ok := ensureFusionAuth(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := client.SearchLoginRecords(c.Request.Context(), limit, offset)
	if err != nil {
		respondUpstreamError(c, "/api/system/login-record/search", err)
		return
	}

	items := make([]loginRecordItem, 0, len(records))
	for _, r := range records {
		items = append(items, loginRecordItem{
			TS:      r.Instant,
			LoginID: r.LoginID,
			UserID:  r.UserID,
			AppID:   r.ApplicationID,
			IP:      r.IPAddress,
		})
	}

	util.CallOK(c, gin.H{"items": items})
}
