package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/callsoso/callsoso/config"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// Security applies the TLS redirect, HSTS, the host allow-list and the
// browser hardening headers. Everything is off in debug mode.
func Security(cfg *config.Config) gin.HandlerFunc {
	if cfg.Debug {
		return func(c *gin.Context) { c.Next() }
	}

	s := cfg.Security
	secureCfg := secure.Config{
		AllowedHosts:         allowedHosts(cfg.AllowedHosts),
		SSLRedirect:          s.SSLRedirect,
		STSSeconds:           s.HSTSSeconds,
		STSIncludeSubdomains: s.HSTSIncludeSubdomains,
		ContentTypeNosniff:   s.ContentTypeNosniff,
		BrowserXssFilter:     s.BrowserXSSFilter,
		SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
		BadHostHandler:       badHost,
	}
	if s.FrameOptions != "" {
		secureCfg.CustomFrameOptionsValue = strings.ToUpper(s.FrameOptions)
	}
	return secure.New(secureCfg)
}

// allowedHosts drops the "*" wildcard, which means any host
func allowedHosts(hosts []string) []string {
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h == "*" {
			return nil
		}
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

func badHost(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": fmt.Sprintf("Invalid host %q", c.Request.Host),
	})
}

// TrustedOrigins rejects cookie-authenticated state-changing requests whose
// Origin (or Referer) is neither the request host nor a trusted origin.
// Requests authenticated with a bearer token are not subject to the check.
func TrustedOrigins(trusted []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(trusted))
	for _, o := range trusted {
		allowed[strings.TrimRight(strings.ToLower(o), "/")] = true
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			c.Next()
			return
		}
		if strings.HasPrefix(strings.ToLower(c.GetHeader("Authorization")), "bearer ") {
			c.Next()
			return
		}
		if _, err := c.Cookie(CookieName); err != nil {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin == "" {
			if ref, err := url.Parse(c.GetHeader("Referer")); err == nil && ref.Host != "" {
				origin = ref.Scheme + "://" + ref.Host
			}
		}
		if origin == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "CSRF verification failed: origin missing",
			})
			return
		}

		u, err := url.Parse(origin)
		if err != nil || (!strings.EqualFold(u.Host, c.Request.Host) && !allowed[strings.TrimRight(strings.ToLower(origin), "/")]) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "CSRF verification failed: untrusted origin",
			})
			return
		}
		c.Next()
	}
}
