package api

import (
	"database/sql"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"culturevault/internal/service/vault"
)

// entryPage is where requests for the root path are redirected.
const entryPage = "/intra.html"

// Handler wires HTTP routes to the vault service and serves the frontend.
type Handler struct {
	vault     *vault.Service
	publicDir string
}

// NewHandler constructs a Handler instance.
func NewHandler(service *vault.Service, publicDir string) *Handler {
	return &Handler{vault: service, publicDir: publicDir}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/login", h.login)
	api.POST("/answers/start", h.startSession)
	api.POST("/answers/append", h.appendAnswer)
	api.POST("/answers/finish", h.finishSession)
	api.GET("/me/sessions", h.mySessions)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, entryPage)
	})
	router.NoRoute(h.serveStatic)
}

type loginRequest struct {
	Username string `json:"username"`
	Location string `json:"location"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := h.vault.Login(c.Request.Context(), req.Username, req.Location)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
	})
}

type startRequest struct {
	UserID   int64  `json:"user_id"`
	Category string `json:"category"`
}

func (h *Handler) startSession(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	session, err := h.vault.StartSession(c.Request.Context(), req.UserID, req.Category)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": session.ID})
}

// session_id and step_index bind as pointers so that absence can be told
// apart from a zero value: step_index 0 is a valid position.
type appendRequest struct {
	SessionID *int64 `json:"session_id"`
	StepIndex *int64 `json:"step_index"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

func (h *Handler) appendAnswer(c *gin.Context) {
	var req appendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.SessionID == nil || req.StepIndex == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id and step_index are required"})
		return
	}
	answer, err := h.vault.AppendAnswer(c.Request.Context(), *req.SessionID, *req.StepIndex, req.Question, req.Answer)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "answer_id": answer.ID})
}

type finishRequest struct {
	SessionID int64 `json:"session_id"`
}

func (h *Handler) finishSession(c *gin.Context) {
	var req finishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.vault.FinishSession(c.Request.Context(), req.SessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) mySessions(c *gin.Context) {
	history, err := h.vault.SessionHistory(c.Request.Context(), c.Query("username"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, vault.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// serveStatic delivers pre-built frontend files from the public directory.
func (h *Handler) serveStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	path := filepath.Join(h.publicDir, filepath.Clean("/"+c.Request.URL.Path))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.File(path)
}
