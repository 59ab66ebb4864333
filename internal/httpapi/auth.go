package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/muhtegaralfikri/bbi-backend/internal/auth"
	"github.com/muhtegaralfikri/bbi-backend/internal/db"
	"github.com/muhtegaralfikri/bbi-backend/internal/globaltime"
)

const defaultSessionTouchInterval = time.Minute

type authPrincipal struct {
	SessionID   string
	AdminID     string
	Email       string
	NamaLengkap string
	ExpiresAt   time.Time
}

type adminResponse struct {
	ID          string     `json:"id"`
	NamaLengkap string     `json:"nama_lengkap"`
	Email       string     `json:"email"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authStore interface {
	GetSession(ctx context.Context, sessionID string) (*db.AuthSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	TouchSession(ctx context.Context, sessionID string, seenAt time.Time) error
	CreateSession(ctx context.Context, adminID string, expiresAt, now time.Time) (string, error)
	GetAdminByEmail(ctx context.Context, email string) (*db.Admin, error)
	GetAdminByID(ctx context.Context, id string) (*db.Admin, error)
	SetAdminLastLogin(ctx context.Context, adminID string, loginAt time.Time) error
}

func (s *Server) authDataStore() authStore {
	if s == nil {
		return nil
	}
	if s.authStore != nil {
		return s.authStore
	}
	return s.pool
}

func (s *Server) requireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, found := s.sessionIDFromCookie(c)
			if !found {
				return unauthorizedResponse(c)
			}
			if !isUUID(sessionID) {
				s.clearSessionCookie(c)
				return unauthorizedResponse(c)
			}

			store := s.authDataStore()
			session, err := store.GetSession(c.Request().Context(), sessionID)
			if err != nil {
				if errors.Is(err, db.ErrNoRows) {
					s.clearSessionCookie(c)
					return unauthorizedResponse(c)
				}
				s.logger.Error().Err(err).Msg("session lookup failed")
				return internalError(c, "Failed to authorize request")
			}

			now := globaltime.UTC()
			if !session.ExpiresAt.After(now) {
				_ = store.DeleteSession(c.Request().Context(), session.SessionID)
				s.clearSessionCookie(c)
				return unauthorizedResponse(c)
			}

			if now.Sub(session.LastSeenAt) >= defaultSessionTouchInterval {
				_ = store.TouchSession(c.Request().Context(), session.SessionID, now)
			}

			c.Set("auth.principal", authPrincipal{
				SessionID:   session.SessionID,
				AdminID:     session.AdminID,
				Email:       session.Email,
				NamaLengkap: session.NamaLengkap,
				ExpiresAt:   session.ExpiresAt.UTC(),
			})

			return next(c)
		}
	}
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	req.Email = auth.NormalizeEmail(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		return failValidation(c, fieldErrors)
	}

	store := s.authDataStore()
	admin, err := store.GetAdminByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return fail(c, http.StatusUnauthorized, "Email atau password salah", nil)
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("login lookup failed")
		return internalError(c, "Failed to process login")
	}

	if !auth.VerifyPassword(req.Password, admin.PasswordHash) {
		return fail(c, http.StatusUnauthorized, "Email atau password salah", nil)
	}

	now := globaltime.UTC()
	expiresAt := now.Add(s.opts.SessionTTL)
	sessionID, err := store.CreateSession(c.Request().Context(), admin.ID, expiresAt, now)
	if err != nil {
		s.logger.Error().Err(err).Str("admin_id", admin.ID).Msg("create session failed")
		return internalError(c, "Failed to process login")
	}

	if err := store.SetAdminLastLogin(c.Request().Context(), admin.ID, now); err != nil {
		s.logger.Error().Err(err).Str("admin_id", admin.ID).Msg("update last login failed")
	}
	nowCopy := now
	admin.LastLoginAt = &nowCopy

	s.setSessionCookie(c, sessionID, expiresAt)
	return success(c, map[string]any{
		"admin": buildAdminResponse(admin),
		"session": map[string]any{
			"session_id": sessionID,
			"expires_at": expiresAt.UTC(),
		},
	})
}

func (s *Server) handleLogout(c echo.Context) error {
	if sessionID, found := s.sessionIDFromCookie(c); found {
		_ = s.authDataStore().DeleteSession(c.Request().Context(), sessionID)
	}
	s.clearSessionCookie(c)
	return success(c, map[string]any{"logged_out": true})
}

func (s *Server) handleMe(c echo.Context) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return unauthorizedResponse(c)
	}

	admin, err := s.authDataStore().GetAdminByID(c.Request().Context(), principal.AdminID)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return unauthorizedResponse(c)
		}
		s.logger.Error().Err(err).Str("admin_id", principal.AdminID).Msg("load admin failed")
		return internalError(c, "Failed to load admin")
	}

	return success(c, map[string]any{"admin": buildAdminResponse(admin)})
}

func unauthorizedResponse(c echo.Context) error {
	return fail(c, http.StatusUnauthorized, "Authentication required", nil)
}

func buildAdminResponse(row *db.Admin) adminResponse {
	if row == nil {
		return adminResponse{}
	}
	return adminResponse{
		ID:          row.ID,
		NamaLengkap: row.NamaLengkap,
		Email:       row.Email,
		LastLoginAt: row.LastLoginAt,
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

func principalFromContext(c echo.Context) (authPrincipal, bool) {
	value := c.Get("auth.principal")
	principal, ok := value.(authPrincipal)
	if !ok {
		return authPrincipal{}, false
	}
	return principal, true
}

func isUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

func (s *Server) sessionIDFromCookie(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(s.opts.SessionCookie)
	if err != nil || cookie == nil {
		return "", false
	}

	sessionID := strings.TrimSpace(cookie.Value)
	if sessionID == "" {
		return "", false
	}
	return sessionID, true
}

func (s *Server) setSessionCookie(c echo.Context, sessionID string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}

	c.SetCookie(&http.Cookie{
		Name:     s.opts.SessionCookie,
		Value:    strings.TrimSpace(sessionID),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SessionSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt.UTC(),
		MaxAge:   maxAge,
	})
}

func (s *Server) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.opts.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SessionSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  globaltime.UTC().Add(-1 * time.Hour),
	})
}
