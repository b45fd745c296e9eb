// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/fundlift/backend/internal/activity"
	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/middleware"
	"github.com/fundlift/backend/internal/student"
)

type HandlerConfig struct {
	Stats      StatsRepository
	Students   *student.Service
	Activity   *activity.Service
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	DBPing     func(ctx context.Context) error
	RedisPing  func(ctx context.Context) error
}

type Handler struct {
	cfg       HandlerConfig
	validator *validator.Validate
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		cfg:       cfg,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/stats", h.GetPlatformStats)
		r.Get("/stats/system", h.GetSystemStats)
		r.Get("/stats/db", h.GetDatabaseStats)
		r.Get("/stats/redis", h.GetRedisStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)

		r.Get("/verifications", h.ListVerifications)
		r.Post("/verify-student", h.VerifyStudent)
		r.Get("/logs", h.GetLogs)
	})
}

func (h *Handler) GetPlatformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.cfg.Stats.PlatformStats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) ListVerifications(w http.ResponseWriter, r *http.Request) {
	page := core.ParseIntQuery(r, "page", 1)
	pageSize := core.ParseIntQuery(r, "page_size", 20)

	pending, total, err := h.cfg.Students.ListPending(r.Context(), page, pageSize)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, pending, page, pageSize, total)
}

func (h *Handler) VerifyStudent(w http.ResponseWriter, r *http.Request) {
	var req student.VerifyStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	reviewerID := middleware.GetUserID(r.Context())

	status, err := h.cfg.Students.Review(r.Context(), reviewerID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "student profile")
			return
		}
		if errors.Is(err, core.ErrConflict) {
			core.Conflict(w, "student verification already reviewed")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, status)
}

func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	params := activity.ListParams{
		Page:         core.ParseIntQuery(r, "page", 1),
		PageSize:     core.ParseIntQuery(r, "page_size", 50),
		ActivityType: r.URL.Query().Get("activity_type"),
	}

	if raw := r.URL.Query().Get("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID < 1 {
			core.BadRequest(w, "invalid user_id")
			return
		}
		params.UserID = userID
	}

	logs, total, err := h.cfg.Activity.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, logs, params.Page, params.PageSize, total)
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	response := SystemStatsResponse{
		Database: h.getDBStats(r.Context()),
		Redis:    h.getRedisStats(r.Context()),
		Runtime:  getRuntimeStats(),
	}

	core.OK(w, response)
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getDBStats(r.Context()))
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getRedisStats(r.Context()))
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, getRuntimeStats())
}

func (h *Handler) getDBStats(ctx context.Context) DatabaseStatus {
	status := DatabaseStatus{Healthy: true}

	if err := h.cfg.DBPing(ctx); err != nil {
		status.Healthy = false
		status.Error = err.Error()
		return status
	}

	stats := h.cfg.DBStats()
	status.Pool = &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
	}

	return status
}

func (h *Handler) getRedisStats(ctx context.Context) RedisStatus {
	status := RedisStatus{Healthy: true}

	if err := h.cfg.RedisPing(ctx); err != nil {
		status.Healthy = false
		status.Error = err.Error()
		return status
	}

	stats := h.cfg.RedisStats()
	status.Pool = &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}

	return status
}

func getRuntimeStats() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		Goroutines:   runtime.NumGoroutine(),
		HeapAllocMB:  float64(mem.HeapAlloc) / 1024 / 1024,
		HeapSysMB:    float64(mem.HeapSys) / 1024 / 1024,
		StackInUseMB: float64(mem.StackInuse) / 1024 / 1024,
		NumGC:        mem.NumGC,
		GOMAXPROCS:   runtime.GOMAXPROCS(0),
		NumCPU:       runtime.NumCPU(),
	}
}

type SystemStatsResponse struct {
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Error   string       `json:"error,omitempty"`
	Pool    *DBPoolStats `json:"pool,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Error   string          `json:"error,omitempty"`
	Pool    *RedisPoolStats `json:"pool,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	Goroutines   int     `json:"goroutines"`
	HeapAllocMB  float64 `json:"heap_alloc_mb"`
	HeapSysMB    float64 `json:"heap_sys_mb"`
	StackInUseMB float64 `json:"stack_in_use_mb"`
	NumGC        uint32  `json:"num_gc"`
	GOMAXPROCS   int     `json:"gomaxprocs"`
	NumCPU       int     `json:"num_cpu"`
}
