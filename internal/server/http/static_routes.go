package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const viewCookieName = "tablut_view"

// RegisterStaticRoutes mounts:
// - /web/* -> board page assets
// - /      -> redirect to /web/, ?view=compact picks the small-screen layout
func RegisterStaticRoutes(r *gin.Engine, webDir string) {
	r.Static("/web", webDir)

	r.GET("/", func(c *gin.Context) {
		target := "/web/"
		if pickView(c) == "compact" {
			target = "/web/?layout=compact"
		}
		c.Header("Vary", "User-Agent, Cookie")
		c.Redirect(http.StatusFound, target)
	})
}

func pickView(c *gin.Context) string {
	if v, ok := normalizeView(c.Query("view")); ok {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(viewCookieName, v, 30*24*60*60, "/", "", false, false)
		return v
	}
	if raw, err := c.Cookie(viewCookieName); err == nil {
		if v, ok := normalizeView(raw); ok {
			return v
		}
	}
	if isSmallScreenUA(c.Request.UserAgent()) {
		return "compact"
	}
	return "full"
}

func normalizeView(v string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "full", "web", "desktop":
		return "full", true
	case "compact", "mobile", "m":
		return "compact", true
	}
	return "", false
}

func isSmallScreenUA(ua string) bool {
	s := strings.ToLower(ua)
	for _, n := range []string{"android", "iphone", "ipod", "mobile"} {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
