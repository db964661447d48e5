package httputil

import (
	"github.com/gin-gonic/gin"
)

// RequestHost returns the base URL the request was made against.
//
// The scheme defaults to http and only switches to https if the
// x-forwarded-proto header says so. If a reverse proxy sets
// x-forwarded-host, it wins over the Host header and the
// x-forwarded-prefix header is appended as path prefix.
func RequestHost(c *gin.Context) string {
	scheme := "http"
	if c.Request.Header.Get("x-forwarded-proto") == "https" {
		scheme = "https"
	}

	host := c.Request.Host
	var forwardedPrefix string

	xForwardedHost := c.Request.Header.Get("x-forwarded-host")
	if xForwardedHost != "" {
		host = xForwardedHost
		forwardedPrefix = c.Request.Header.Get("x-forwarded-prefix")
	}

	return scheme + "://" + host + forwardedPrefix
}
