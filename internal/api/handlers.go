package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/xwordgen/engine/internal/auth"
	"github.com/xwordgen/engine/internal/db"
	"github.com/xwordgen/engine/internal/middleware"
	"github.com/xwordgen/engine/internal/models"
	"github.com/xwordgen/engine/internal/realtime"
	"github.com/xwordgen/engine/pkg/layout"
	"github.com/xwordgen/engine/pkg/layout/worker"
	"github.com/xwordgen/engine/pkg/output"
)

// Handlers wires the layout engine into Gin. db and hub are optional: a
// nil db disables persistence and the cache lookup, and the WebSocket
// route requires a hub to have been set via SetHub.
type Handlers struct {
	db          *db.Database
	authService *auth.AuthService
	hub         *realtime.Hub
}

func NewHandlers(database *db.Database, authService *auth.AuthService) *Handlers {
	return &Handlers{db: database, authService: authService}
}

// SetHub attaches the WebSocket hub used by GenerateWS.
func (h *Handlers) SetHub(hub *realtime.Hub) {
	h.hub = hub
}

// Auth handlers

type GuestRequest struct {
	DisplayName string `json:"displayName" binding:"omitempty,max=50"`
}

type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Guest issues a bearer token for an unauthenticated caller. There is
// no password flow in this service; a guest token is the only way in.
func (h *Handlers) Guest(c *gin.Context) {
	var req GuestRequest
	c.ShouldBindJSON(&req)

	guestID := uuid.New().String()
	displayName := req.DisplayName
	if displayName == "" {
		displayName = "Guest_" + guestID[:8]
	}

	user := models.User{
		ID:          guestID,
		DisplayName: displayName,
		IsGuest:     true,
		CreatedAt:   time.Now(),
	}

	token, err := h.authService.GenerateToken(user.ID, user.DisplayName, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{User: user, Token: token})
}

// GetMe returns the identity carried by the caller's bearer token.
func (h *Handlers) GetMe(c *gin.Context) {
	claims := middleware.GetAuthUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, models.User{
		ID:          claims.UserID,
		DisplayName: claims.DisplayName,
		IsGuest:     claims.IsGuest,
	})
}

// Generation handlers

// GenerateRequest is the request body for POST /api/puzzles/generate.
type GenerateRequest struct {
	Entries        json.RawMessage `json:"entries" binding:"required"`
	RequestedCount int             `json:"requestedCount" binding:"required"`
	Seed           *int64          `json:"seed"`
	Title          string          `json:"title"`
}

// errorKindStatus maps a layout.ErrorKind to the HTTP status that best
// describes it: 422 for input the normalizer itself rejected, 400 for
// an out-of-range request, 409 for a request the placer could not
// satisfy.
func errorKindStatus(kind layout.ErrorKind) int {
	switch kind {
	case layout.InvalidInputShape, layout.NoValidEntries:
		return http.StatusUnprocessableEntity
	case layout.CountBelowMinimum, layout.CountExceedsAvailable, layout.NotEnoughEntries:
		return http.StatusBadRequest
	case layout.Unplaceable:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Generate runs the layout engine synchronously and returns the result
// as JSON, or the mapped status and the engine's message verbatim.
func (h *Handlers) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := layout.Normalize(req.Entries, layout.DefaultNormalizeConfig())
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	if h.db != nil {
		if cached, err := h.db.GetCachedLayout(c.Request.Context(), entries); err == nil && cached != nil && cached.RequestedCount == req.RequestedCount {
			c.JSON(http.StatusOK, output.FormatJSON(cached, h.metaFor(req, c)))
			return
		}
	}

	result, err := layout.Generate(entries, req.RequestedCount, layout.Options{Seed: req.Seed})
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	meta := h.metaFor(req, c)
	if h.db != nil {
		ctx := c.Request.Context()
		_ = h.db.CacheLayout(ctx, entries, result, time.Hour)
		h.persist(ctx, result, entries, meta)
	}

	c.JSON(http.StatusOK, output.FormatJSON(result, meta))
}

func (h *Handlers) metaFor(req GenerateRequest, c *gin.Context) output.Meta {
	title := req.Title
	if title == "" {
		title = "Untitled"
	}
	author := "anonymous"
	if claims := middleware.GetAuthUser(c); claims != nil {
		author = claims.UserID
	}
	return output.Meta{
		ID:        uuid.New().String(),
		Title:     title,
		Author:    author,
		CreatedAt: time.Now(),
	}
}

func (h *Handlers) persist(ctx context.Context, result *layout.Result, entries []layout.Entry, meta output.Meta) {
	puzzle := &models.StoredPuzzle{
		ID:         meta.ID,
		AuthorID:   meta.Author,
		Title:      meta.Title,
		Difficulty: models.DifficultyMedium,
		Layout:     result,
		CreatedAt:  meta.CreatedAt,
	}
	if err := h.db.SavePuzzle(puzzle, entries); err != nil {
		_ = err // best-effort; the caller already has their layout
	}
}

func (h *Handlers) respondLayoutError(c *gin.Context, err error) {
	kind, ok := layout.KindOf(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(errorKindStatus(kind), gin.H{"error": err.Error(), "kind": string(kind)})
}

// GetPuzzle fetches a previously generated and saved layout by ID.
func (h *Handlers) GetPuzzle(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence not configured"})
		return
	}
	id := c.Param("id")
	puzzle, err := h.db.GetPuzzleByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if puzzle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "puzzle not found"})
		return
	}
	c.JSON(http.StatusOK, output.FormatJSON(puzzle.Layout, output.Meta{
		ID:         puzzle.ID,
		Title:      puzzle.Title,
		Author:     puzzle.AuthorID,
		Difficulty: string(puzzle.Difficulty),
		CreatedAt:  puzzle.CreatedAt,
	}))
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// GenerateWS upgrades the connection, reads one GenerateRequest as the
// first text frame, and streams worker progress/result messages until
// the generation finishes or the connection closes.
func (h *Handlers) GenerateWS(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "realtime hub not configured"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := realtime.NewClient(conn)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	go h.writePump(client)

	_, data, err := conn.ReadMessage()
	if err != nil {
		return
	}

	var req GenerateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.hub.Unregister(client)
		return
	}

	entries, err := layout.Normalize(req.Entries, layout.DefaultNormalizeConfig())
	if err != nil {
		kind, _ := layout.KindOf(err)
		h.writeMessage(client, realtime.MsgError, realtime.ErrorPayload{Kind: string(kind), Message: err.Error()})
		return
	}

	h.hub.RunGeneration(c.Request.Context(), client, worker.Request{
		Entries:        entries,
		RequestedCount: req.RequestedCount,
		Seed:           req.Seed,
	})
}

func (h *Handlers) writeMessage(client *realtime.Client, msgType realtime.MessageType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msgData, err := json.Marshal(realtime.Message{Type: msgType, Payload: data})
	if err != nil {
		return
	}
	select {
	case client.Send <- msgData:
	default:
	}
}

// writePump drains client.Send onto the WebSocket connection until the
// channel is closed by the hub's Unregister.
func (h *Handlers) writePump(client *realtime.Client) {
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	client.Conn.Close()
}
