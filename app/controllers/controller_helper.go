package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ManuelReschke/payu-starter/internal/pkg/usercontext"
)

const layoutMain = "layouts/main"

// csrfToken returns the token set by the csrf middleware, if any.
func csrfToken(c *fiber.Ctx) string {
	if token, ok := c.Locals("csrf").(string); ok {
		return token
	}
	return ""
}

// render renders a view inside the main layout with the common page data.
func render(c *fiber.Ctx, view, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["CSRF"] = csrfToken(c)
	data["IsAdmin"] = usercontext.IsAdmin(c)
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = flash.Get(c)
	}
	return c.Render(view, data, layoutMain)
}

// renderError renders the error page with the given status code.
func renderError(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return render(c, "error", "Error", fiber.Map{
		"Status":  status,
		"Message": message,
	})
}

// trustProxyHeaders reports whether forwarding headers may be read. Fiber
// treats every peer as trusted while the check is disabled, so the check
// itself must be on.
func trustProxyHeaders(c *fiber.Ctx) bool {
	return c.App().Config().EnableTrustedProxyCheck && c.IsProxyTrusted()
}

// GetClientIP determines the actual client IP address considering proxies and dual stack
// Returns both IPv4 and IPv6 addresses if available. Proxy headers are only
// honoured when the peer is a configured trusted proxy.
func GetClientIP(c *fiber.Ctx) (string, string) {
	ipv4 := ""
	ipv6 := ""

	trusted := trustProxyHeaders(c)

	// 1. Check for Cloudflare header
	if cfIP := strings.TrimSpace(c.Get("CF-Connecting-IP")); trusted && cfIP != "" {
		if strings.Contains(cfIP, ":") {
			ipv6 = cfIP
			ipv4 = firstMatching(c.Get("X-Forwarded-For"), false)
		} else {
			ipv4 = cfIP
			ipv6 = firstMatching(c.Get("X-Forwarded-For"), true)
		}
		return ipv4, ipv6
	}

	// 2. Check for X-Forwarded-For header (standard proxy header)
	if xff := c.Get("X-Forwarded-For"); trusted && xff != "" {
		// The first entry is the original client
		clientIP := strings.TrimSpace(strings.Split(xff, ",")[0])
		if strings.Contains(clientIP, ":") {
			ipv6 = clientIP
			ipv4 = firstMatching(xff, false)
		} else {
			ipv4 = clientIP
			ipv6 = firstMatching(xff, true)
		}
		if ipv4 != "" || ipv6 != "" {
			return ipv4, ipv6
		}
	}

	// 3. If no proxy headers were found, use the normal IP address
	ipAddr := c.IP()
	realIP := ""
	if trusted {
		realIP = c.Get("X-Real-IP")
	}
	if strings.Contains(ipAddr, ":") {
		if strings.Contains(ipAddr, ".") && strings.HasPrefix(ipAddr, "::ffff:") {
			// IPv4 address in IPv6 mapping (::ffff:192.168.1.1)
			ipv4 = strings.TrimPrefix(ipAddr, "::ffff:")
			if strings.Contains(realIP, ":") {
				ipv6 = realIP
			}
		} else {
			ipv6 = ipAddr
			if realIP != "" && !strings.Contains(realIP, ":") {
				ipv4 = realIP
			}
		}
	} else {
		ipv4 = ipAddr
		if strings.Contains(realIP, ":") {
			ipv6 = realIP
		}
	}

	return ipv4, ipv6
}

// ClientIP prefers the IPv4 address PayU expects as customerIp.
func ClientIP(c *fiber.Ctx) string {
	ipv4, ipv6 := GetClientIP(c)
	if ipv4 != "" {
		return ipv4
	}
	return ipv6
}

func firstMatching(list string, wantIPv6 bool) string {
	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip == "" {
			continue
		}
		if strings.Contains(ip, ":") == wantIPv6 {
			return ip
		}
	}
	return ""
}
