package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Contains function is to check item whether is exist or not in a list and will return bool
func Contains(d string, dl []string) bool {
	for _, v := range dl {
		if v == d {
			return true
		}
	}
	return false
}

// CallOK writes a 200 response with ok:true merged into the payload.
func CallOK(c *gin.Context, data gin.H) {
	response := gin.H{"ok": true}
	for k, v := range data {
		response[k] = v
	}
	c.JSON(http.StatusOK, response)
}

// CallUserError is for returning an error caused by the caller, e.g. bad
// input, an unknown category, or a malformed query.
func CallUserError(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}

// CallUpstreamError reports a failed or malformed response from the IAM
// backend. The dashboard itself is healthy, so 502 rather than 500.
func CallUpstreamError(c *gin.Context, msg string) {
	c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": msg})
}

// CallServerError is for returning an unexpected internal failure.
func CallServerError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": msg})
}
