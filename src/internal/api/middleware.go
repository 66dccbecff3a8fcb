package api

import (
	"mime"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/maksimkurb/ipnorm/src/internal/filter"
	"github.com/maksimkurb/ipnorm/src/internal/log"
)

// RequireContentType rejects requests with a body whose media type is not
// one of the given types. A missing Content-Type is accepted.
func RequireContentType(mediaTypes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ct := r.Header.Get("Content-Type"); ct != "" && r.ContentLength != 0 {
				mt, _, err := mime.ParseMediaType(ct)
				if err != nil || !containsFold(mediaTypes, mt) {
					WriteUnsupportedMediaType(w, strings.Join(mediaTypes, " or "))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// Logger middleware logs all HTTP requests.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Infof("%s %s - %d (%v)", r.Method, r.URL.Path, wrapped.statusCode, duration)
	})
}

// Recovery middleware recovers from panics and returns a 500 error.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Errorf("Panic recovered: %v", err)
				WriteInternalError(w, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

var privateNetworks = []string{
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
}

// PrivateSubnetOnly middleware restricts access to requests from loopback and
// private IPv4 networks, plus IPv6 loopback, link-local and ULA addresses.
// This allows the server to bind to 0.0.0.0 while still restricting access.
func PrivateSubnetOnly(next http.Handler) http.Handler {
	allowed, err := filter.New(privateNetworks)
	if err != nil {
		panic(err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := getClientIP(r)

		addr, err := netip.ParseAddr(clientIP)
		if err != nil {
			log.Warnf("Invalid client IP: %s", clientIP)
			WriteForbidden(w, "Access denied")
			return
		}
		addr = addr.Unmap()

		isPrivate := allowed.Contains(addr) ||
			(addr.Is6() && (addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsPrivate()))
		if !isPrivate {
			log.Warnf("Access denied from non-private IP: %s", clientIP)
			WriteForbidden(w, "Access denied: only private networks are allowed")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getClientIP extracts the client IP from the request.
// It checks X-Forwarded-For header first, then falls back to RemoteAddr.
func getClientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
