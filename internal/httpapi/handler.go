// Package httpapi exposes the advisor over a JSON HTTP API.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rcliao/fitfizz/internal/advice"
	"github.com/rcliao/fitfizz/internal/advisor"
	"github.com/rcliao/fitfizz/internal/observability"
	"github.com/rcliao/fitfizz/internal/store"
)

type handler struct {
	store store.Store
	svc   *advice.Service
}

// NewRouter wires the API routes onto a gin engine.
func NewRouter(s store.Store) *gin.Engine {
	h := &handler{store: s, svc: advice.NewService(s)}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), cors())

	r.GET("/healthz", h.healthz)
	r.GET("/meals/:category", h.meals)

	sessions := r.Group("/sessions/:name")
	{
		sessions.GET("", h.getSession)
		sessions.POST("/assessments", h.assess)
		sessions.POST("/chat", h.chat)
		sessions.GET("/measurements", h.measurements)
		sessions.GET("/transcript", h.transcript)
	}
	return r
}

func (h *handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) meals(c *gin.Context) {
	cat, err := advisor.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, advisor.SuggestMeals(cat))
}

// numberText accepts a JSON number or a string holding one, so form fields
// can be forwarded as typed.
type numberText string

func (n *numberText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = numberText(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = numberText(num.String())
	return nil
}

type assessRequest struct {
	WeightKg numberText `json:"weight_kg"`
	HeightCm numberText `json:"height_cm"`
}

type assessResponse struct {
	Session       string `json:"session"`
	MeasurementID string `json:"measurement_id"`
	advisor.Assessment
}

func (h *handler) assess(c *gin.Context) {
	var req assessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": advisor.ErrInvalidMeasurement.Error()})
		return
	}

	m, err := advisor.ParseMeasurement(string(req.WeightKg), string(req.HeightCm))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := c.Param("name")
	out, err := h.svc.Assess(c.Request.Context(), name, m)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, assessResponse{Session: name, MeasurementID: out.Measurement.ID, Assessment: out.Assessment})
}

type chatRequest struct {
	Query string `json:"query"`
}

func (h *handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	turn, err := h.svc.Ask(c.Request.Context(), c.Param("name"), req.Query)
	switch {
	case errors.Is(err, advice.ErrChatLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	case turn == nil:
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, turn)
}

func (h *handler) getSession(c *gin.Context) {
	sess, err := h.store.GetSession(c.Request.Context(), c.Param("name"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess)
}

type listQuery struct {
	Limit int `form:"limit"`
}

func (h *handler) measurements(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := h.store.ListMeasurements(c.Request.Context(), store.ListParams{Session: c.Param("name"), Limit: q.Limit})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": list})
}

func (h *handler) transcript(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	turns, err := h.store.ListTurns(c.Request.Context(), store.ListParams{Session: c.Param("name"), Limit: q.Limit})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"turns": turns})
}

// requestLogger logs every request through the process logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observability.Logger().Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// cors leaves the API open to a browser front-end.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
