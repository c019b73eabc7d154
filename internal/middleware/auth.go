package middleware

import (
	"net/http"
	"strings"

	"github.com/alcuin/alcuinch/internal/auth"
	"github.com/alcuin/alcuinch/internal/telemetry/tracing"
	"github.com/alcuin/alcuinch/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// AuthMiddlewareHandler guards every admin route server-side: a request
// under the protected prefix only reaches its handler with a live
// session token. The login, logout and auth check endpoints stay open,
// they are how a session comes to exist in the first place.
type AuthMiddlewareHandler struct {
	checker         auth.Checker
	protectedPrefix string
	allowedPaths    map[string]bool
}

func NewAuthMiddlewareHandler(checker auth.Checker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		checker:         checker,
		protectedPrefix: "/api/admin/",
		allowedPaths: map[string]bool{
			"/api/admin/login":      true,
			"/api/admin/logout":     true,
			"/api/admin/auth/check": true,
		},
	}
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if !strings.HasPrefix(r.URL.Path, h.protectedPrefix) || h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			// denial never says whether the token was missing, expired
			// or simply wrong
			token := auth.ExtractToken(r)
			if token == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-token")
				return
			}

			isValid, err := h.checker.IsValid(ctx, token)
			if err != nil {
				log.Errorf("[failed session check] => %s: %s", r.URL.Path, err)
				pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
				span.SetStatus(codes.Error, "check-err")
				span.RecordError(err)
				return
			}
			if !isValid {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "not-authenticated")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
