package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/alcuin/alcuinch/internal/instrumentation"
	"github.com/alcuin/alcuinch/internal/telemetry/tracing"
	"github.com/alcuin/alcuinch/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type Handler struct {
	admin         Admin
	service       *Service
	sessionTTL    time.Duration
	secureCookies bool // true in production, so the cookie is https only
	instr         *instrumentation.Instrumentation
}

func NewHandler(
	admin Admin,
	service *Service,
	sessionTTL time.Duration,
	secureCookies bool,
	instr *instrumentation.Instrumentation,
) *Handler {
	return &Handler{
		admin:         admin,
		service:       service,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
		instr:         instr,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	adminRouter := router.PathPrefix("/api/admin").Subrouter()
	adminRouter.HandleFunc("/login", handler.handleLogin).Methods("POST", "OPTIONS").Name("admin-login")
	adminRouter.HandleFunc("/logout", handler.handleLogout).Methods("POST", "OPTIONS").Name("admin-logout")
	adminRouter.HandleFunc("/auth/check", handler.handleAuthCheck).Methods("GET", "OPTIONS").Name("admin-auth-check")
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var loginReq struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Errorf("login, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Email and password are required", http.StatusBadRequest)
		span.SetStatus(codes.Error, "bad-request")
		return
	}

	if loginReq.Email == "" || loginReq.Password == "" {
		pkg.WriteJSONError(w, "Email and password are required", http.StatusBadRequest)
		span.SetStatus(codes.Error, "missing-credentials")
		return
	}

	if !handler.admin.Verify(loginReq.Email, loginReq.Password) {
		// same message regardless of which part was wrong
		log.Tracef("failed login attempt from %s", pkg.ReadUserIP(r))
		handler.instr.CounterFailedLogins.Inc()
		pkg.WriteJSONError(w, "Invalid email or password", http.StatusUnauthorized)
		span.SetStatus(codes.Error, "wrong-credentials")
		return
	}

	token, expiresAt, err := handler.service.CreateSession(ctx)
	if err != nil {
		log.Errorf("login failed, create session: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "create-session-err")
		span.RecordError(err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(handler.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})

	handler.instr.CounterLogins.Inc()
	handler.instr.GaugeSessions.Inc()
	log.Trace("admin login success")
	span.SetStatus(codes.Ok, "ok")

	resp, err := json.Marshal(struct {
		Success   bool   `json:"success"`
		ExpiresAt string `json:"expiresAt"`
	}{
		Success:   true,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	// logout always succeeds, with or without a live session
	if token := ExtractToken(r); token != "" {
		if err := handler.service.Destroy(ctx, token); err != nil {
			log.Errorf("logout, destroy session: %s", err)
			span.RecordError(err)
		} else {
			handler.instr.GaugeSessions.Dec()
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})

	span.SetStatus(codes.Ok, "ok")
	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}

func (handler *Handler) handleAuthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.authCheck")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	token := ExtractToken(r)
	if token == "" {
		span.SetStatus(codes.Error, "missing-token")
		pkg.WriteResponse(w, pkg.ContentType.JSON, `{"authenticated":false}`, http.StatusUnauthorized)
		return
	}

	isValid, err := handler.service.IsValid(ctx, token)
	if err != nil {
		// an internal failure must not be distinguishable from "not
		// authenticated", only the status code differs
		log.Errorf("auth check: %s", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "check-err")
		pkg.WriteResponse(w, pkg.ContentType.JSON, `{"authenticated":false}`, http.StatusInternalServerError)
		return
	}
	if !isValid {
		span.SetStatus(codes.Error, "not-authenticated")
		pkg.WriteResponse(w, pkg.ContentType.JSON, `{"authenticated":false}`, http.StatusUnauthorized)
		return
	}

	span.SetStatus(codes.Ok, "ok")
	pkg.WriteJSONResponseOK(w, `{"authenticated":true}`)
}
