// Package httpapi exposes the public reading endpoints and the admin panel
// API over Echo, with session-cookie auth and a jsend response envelope.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/muhtegaralfikri/bbi-backend/internal/berita"
	"github.com/muhtegaralfikri/bbi-backend/internal/db"
	"github.com/muhtegaralfikri/bbi-backend/internal/globaltime"
	"github.com/muhtegaralfikri/bbi-backend/internal/upload"
)

type Options struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	SessionCookie string
	SessionSecure bool
	SessionTTL    time.Duration

	AllowedOrigins []string
	UploadDir      string
}

type Server struct {
	pool    *db.Pool
	berita  *berita.Service
	uploads *upload.Store
	logger  zerolog.Logger
	opts    Options

	// Overridable stores for handler tests; nil falls back to pool.
	authStore   authStore
	profilStore profilStore
}

func NewServer(pool *db.Pool, beritaService *berita.Service, uploads *upload.Store, logger zerolog.Logger, opts Options) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "0.0.0.0"
	}
	port := opts.Port
	if port <= 0 {
		port = 8080
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	cookieName := strings.TrimSpace(opts.SessionCookie)
	if cookieName == "" {
		cookieName = "bbi_session"
	}
	sessionTTL := opts.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Server{
		pool:    pool,
		berita:  beritaService,
		uploads: uploads,
		logger:  logger,
		opts: Options{
			Host:            host,
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
			SessionCookie:   cookieName,
			SessionSecure:   opts.SessionSecure,
			SessionTTL:      sessionTTL,
			AllowedOrigins:  origins,
			UploadDir:       opts.UploadDir,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.pool == nil || s.berita == nil {
		return fmt.Errorf("server is not initialized")
	}

	e := s.buildEcho()

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", addr).Msg("bbi backend started")

	if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.logger.Info().Msg("bbi backend stopped")
	return nil
}

func (s *Server) buildEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.opts.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           3600,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Err(v.Error).
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("remote_ip", v.RemoteIP).
					Str("request_id", v.RequestID).
					Msg("http request failed")
				return nil
			}

			s.logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	if strings.TrimSpace(s.opts.UploadDir) != "" {
		e.Static("/uploads", s.opts.UploadDir)
	}

	api := e.Group("/api/v1")
	api.GET("/health", s.handleHealth)

	api.GET("/berita", s.handlePublicBeritaList)
	api.GET("/berita/:slug", s.handlePublicBeritaDetail)
	api.GET("/berita/:slug/komentar", s.handlePublicKomentarList)
	api.POST("/berita/:slug/komentar", s.handleSubmitKomentar)

	api.GET("/kontak", s.handleGetKontak)
	api.GET("/kontak/cabang", s.handleListCabang)
	api.GET("/kontak/cabang/:id", s.handleGetCabang)

	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/logout", s.handleLogout)
	api.GET("/auth/me", s.handleMe, s.requireAuth())

	admin := api.Group("/admin", s.requireAuth())
	admin.GET("/berita", s.handleAdminBeritaList)
	admin.POST("/berita", s.handleAdminBeritaCreate)
	admin.POST("/berita/import", s.handleAdminBeritaImport)
	admin.POST("/berita/preview", s.handleAdminBeritaPreview)
	admin.GET("/berita/:id", s.handleAdminBeritaDetail)
	admin.PUT("/berita/:id", s.handleAdminBeritaUpdate)
	admin.DELETE("/berita/:id", s.handleAdminBeritaDelete)

	admin.GET("/komentar", s.handleAdminKomentarList)
	admin.PATCH("/komentar/:id/status", s.handleAdminKomentarStatus)

	admin.PUT("/kontak", s.handlePutKontak)
	admin.POST("/cabang", s.handleCreateCabang)
	admin.PUT("/cabang/:id", s.handleUpdateCabang)
	admin.DELETE("/cabang/:id", s.handleDeleteCabang)

	admin.POST("/upload", s.handleUpload)

	return e
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch v := he.Message.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				message = v
			}
		default:
			if text := strings.TrimSpace(http.StatusText(status)); text != "" {
				message = text
			}
		}
	} else if err != nil {
		message = err.Error()
	}

	if status >= 500 {
		_ = internalError(c, "Internal server error")
		return
	}
	_ = fail(c, status, message, nil)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.pool.Ping(c.Request().Context()); err != nil {
		return internalError(c, "Database unreachable")
	}
	return success(c, map[string]any{
		"service": "bbi-backend",
		"time":    globaltime.UTC(),
	})
}
