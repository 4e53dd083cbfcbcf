// Package web provides an HTTP server with routing and middleware.
// It uses Gin framework for high-performance web handling.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// Server represents the web server
type Server struct {
	engine           *gin.Engine
	mu               sync.Mutex
	httpServer       *http.Server
	webhookURL       string
	allowedHostRegex *regexp.Regexp
	webhookClient    *http.Client
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

// DefaultRateLimit allows 100 requests per minute per client IP
var DefaultRateLimit = RateLimitConfig{Window: 60 * time.Second, MaxRequests: 100}

// NewServer creates a new web server. Requests whose Host does not match allowedHosts
// are rejected with 403 and reported to the webhook.
func NewServer(webhookURL, allowedHosts string, limit RateLimitConfig) (*Server, error) {
	hostRegex, err := regexp.Compile(allowedHosts)
	if err != nil {
		return nil, fmt.Errorf("invalid allowed hosts pattern %q: %w", allowedHosts, err)
	}

	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:           engine,
		webhookURL:       webhookURL,
		allowedHostRegex: hostRegex,
		webhookClient:    &http.Client{Timeout: 5 * time.Second},
	}

	s.engine.Use(s.logsMiddleware())
	s.engine.Use(rateLimitMiddleware(limit, time.Now))

	s.setupErrorHandlers()

	return s, nil
}

// Engine returns the underlying Gin engine
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// logsMiddleware logs incoming requests and rejects unknown hosts
func (s *Server) logsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.allowedHostRegex.MatchString(c.Request.Host) {
			logger.Info(fmt.Sprintf("[LOG] Nueva solicitud: %s %s", c.Request.Method, c.Request.URL.Path), "WebServer")
			go s.sendLogToWebhook(requestSummary(c), false)
			c.Next()
			return
		}

		logger.Warn(fmt.Sprintf("[LOG] Solicitud Sospechosa: %s %s | %s", c.Request.Method, c.Request.URL.Path, c.ClientIP()), "WebServer")
		go s.sendLogToWebhook(requestSummary(c), true)
		c.AbortWithStatus(http.StatusForbidden)
	}
}

type requestInfo struct {
	method  string
	path    string
	ip      string
	headers http.Header
	query   string
}

// requestSummary copies what the webhook needs; the gin context is reused once the handler returns
func requestSummary(c *gin.Context) requestInfo {
	return requestInfo{
		method:  c.Request.Method,
		path:    c.Request.URL.Path,
		ip:      c.ClientIP(),
		headers: c.Request.Header.Clone(),
		query:   c.Request.URL.RawQuery,
	}
}

// sendLogToWebhook sends a log message to the Discord webhook
func (s *Server) sendLogToWebhook(r requestInfo, suspicious bool) {
	if s.webhookURL == "" {
		return
	}

	title := fmt.Sprintf("🛡️ | Nueva solicitud al servidor web de tipo %s", r.method)
	color := 0x00AE86

	if suspicious {
		title = fmt.Sprintf("🛡️ | Solicitud Sospechosa Rechazada: %s %s", r.method, r.path)
		color = 0xFFA500
	}

	r.headers.Del("Authorization")
	headers, _ := json.Marshal(r.headers)
	query := r.query
	if query == "" {
		query = "{}"
	}

	payload := map[string]interface{}{
		"embeds": []interface{}{map[string]interface{}{
			"title": title,
			"description": fmt.Sprintf(
				"> **Ruta:** `%s`\n> **IP:** `%s`\n> **Headers:** ```%s``` \n> **Query:** ```%s```",
				r.path, r.ip, string(headers), query,
			),
			"color":     color,
			"timestamp": time.Now().Format(time.RFC3339),
		}},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return
	}

	resp, err := s.webhookClient.Post(s.webhookURL, "application/json", bytes.NewReader(jsonData))
	if err != nil {
		return
	}
	resp.Body.Close()
}

// rateLimitMiddleware implements a fixed-window limiter per client IP
func rateLimitMiddleware(config RateLimitConfig, now func() time.Time) gin.HandlerFunc {
	type clientInfo struct {
		count   int
		resetAt time.Time
	}
	var mu sync.Mutex
	clients := make(map[string]*clientInfo)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		t := now()

		mu.Lock()
		info, exists := clients[ip]
		if !exists || t.After(info.resetAt) {
			// Drop expired windows so the map only holds active clients
			for k, v := range clients {
				if t.After(v.resetAt) {
					delete(clients, k)
				}
			}
			info = &clientInfo{resetAt: t.Add(config.Window)}
			clients[ip] = info
		}
		info.count++
		count := info.count
		mu.Unlock()

		if count > config.MaxRequests {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Demasiadas solicitudes, por favor intente de nuevo más tarde.",
			})
			return
		}

		c.Next()
	}
}

// setupErrorHandlers sets up error handling routes
func (s *Server) setupErrorHandlers() {
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "La ruta solicitada no existe.",
			"status":  404,
		})
	})

	s.engine.HandleMethodNotAllowed = true
	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error":   "Method Not Allowed",
			"message": "El método HTTP no está permitido para esta ruta.",
			"status":  405,
		})
	})
}

// Start serves on port until Shutdown is called
func (s *Server) Start(port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	logger.Info(fmt.Sprintf("🚀 Servidor escuchando en http://localhost:%s", port), "WebServer")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync(port string) {
	go func() {
		if err := s.Start(port); err != nil {
			logger.Error(fmt.Sprintf("Error starting web server: %v", err), "WebServer")
		}
	}()
}

// Shutdown stops accepting requests and waits for active ones to finish
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// GET registers a GET route
func (s *Server) GET(path string, handlers ...gin.HandlerFunc) {
	s.engine.GET(path, handlers...)
}

// Group creates a new router group
func (s *Server) Group(path string, handlers ...gin.HandlerFunc) *gin.RouterGroup {
	return s.engine.Group(path, handlers...)
}
