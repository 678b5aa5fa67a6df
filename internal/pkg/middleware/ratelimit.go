package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	apperror "gocustomer/internal/errors"
	"gocustomer/internal/pkg/cache"
	"gocustomer/internal/pkg/logger"
	"gocustomer/internal/pkg/response"
)

const rateLimitKeyPrefix = "rate-limit:"

// RateLimiter limita requisições por IP numa janela fixa.
// O contador vive no cache (Redis em produção); incremento e TTL são uma única operação
// atômica, então nenhuma chave fica sem expiração. Falhas do cache liberam a requisição.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := rateLimitKeyPrefix + clientIP(r)

			count, err := client.IncrWithTTL(ctx, key, window)
			if err != nil {
				log.Warn("Rate limiter indisponível, liberando requisição.", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))

			if count > int64(limit) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				log.Debug("Rate limit excedido.", map[string]interface{}{"key": key, "count": count})
				response.Error(w, apperror.NewRateLimitError("Rate limit exceeded"))
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(limit)-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP usa RemoteAddr, já reescrito pelo middleware RealIP do chi quando há proxy.
func clientIP(r *http.Request) string {
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}
