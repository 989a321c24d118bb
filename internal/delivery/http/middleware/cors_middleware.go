package middleware

import (
	"net/http"
	"strings"
)

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization"
)

// CORSMiddleware lets the search page call the API from another origin.
// A "*" entry opens the API to every origin; otherwise only listed origins
// are echoed back.
type CORSMiddleware struct {
	anyOrigin bool
	origins   map[string]struct{}
}

func NewCORSMiddleware(allowedOrigins []string) *CORSMiddleware {
	m := &CORSMiddleware{origins: make(map[string]struct{}, len(allowedOrigins))}
	for _, origin := range allowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "*" {
			m.anyOrigin = true
			continue
		}
		if origin != "" {
			m.origins[strings.ToLower(origin)] = struct{}{}
		}
	}
	return m
}

func (m *CORSMiddleware) allowOrigin(origin string) (string, bool) {
	if m.anyOrigin {
		return "*", true
	}
	if origin == "" {
		return "", false
	}
	if _, ok := m.origins[strings.ToLower(origin)]; ok {
		return origin, true
	}
	return "", false
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !m.anyOrigin {
			w.Header().Add("Vary", "Origin")
		}

		allowed, ok := m.allowOrigin(req.Header.Get("Origin"))
		if ok {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
		}

		if req.Method == http.MethodOptions {
			if !ok && req.Header.Get("Origin") != "" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}
