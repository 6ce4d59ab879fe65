package server

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/skillsenselab/meetscribe/auth"
	apperrors "github.com/skillsenselab/meetscribe/errors"
	"github.com/skillsenselab/meetscribe/export"
	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/pipeline"
	"github.com/skillsenselab/meetscribe/storage"
	"github.com/skillsenselab/meetscribe/store"
)

// Audio extensions accepted for upload.
var allowedAudioExts = map[string]bool{
	".wav": true, ".mp3": true, ".m4a": true, ".ogg": true, ".flac": true, ".webm": true,
}

// Handlers implements the API endpoints.
type Handlers struct {
	users      *store.Users
	recordings *store.Recordings
	tokens     *auth.Tokens
	hasher     *auth.Hasher
	orch       *pipeline.Orchestrator
	collab     pipeline.Collaborators
	uploads    *storage.Store
	log        *logger.Logger
}

// NewHandlers wires the API endpoints to their dependencies and registers
// custom validations.
func NewHandlers(
	users *store.Users,
	recordings *store.Recordings,
	tokens *auth.Tokens,
	hasher *auth.Hasher,
	orch *pipeline.Orchestrator,
	collab pipeline.Collaborators,
	uploads *storage.Store,
	log *logger.Logger,
) *Handlers {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("password", validPassword)
	}
	return &Handlers{
		users:      users,
		recordings: recordings,
		tokens:     tokens,
		hasher:     hasher,
		orch:       orch,
		collab:     collab,
		uploads:    uploads,
		log:        log.WithComponent("api"),
	}
}

// validPassword requires at least one letter and one digit.
func validPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	var hasLetter, hasDigit bool
	for _, r := range pw {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			hasLetter = true
		}
	}
	return hasLetter && hasDigit
}

// Routes registers all API routes on the engine.
func (h *Handlers) Routes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.POST("/auth/register", h.RegisterUser)
	api.POST("/auth/login", h.Login)

	recs := api.Group("/recordings", Auth(h.tokens))
	recs.POST("", h.Upload)
	recs.GET("", h.List)
	recs.GET("/:id", h.Get)
	recs.GET("/:id/documents/:format", h.Download)
}

// Health reports collaborator availability.
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := gin.H{
		"diarization":   h.collab.Diarizer.IsAvailable(ctx),
		"transcription": h.collab.Transcriber.IsAvailable(ctx),
	}
	if h.collab.Summarizer != nil {
		checks["summarization"] = h.collab.Summarizer.IsAvailable(ctx)
	}
	if h.collab.Reporter != nil {
		checks["report"] = h.collab.Reporter.IsAvailable(ctx)
	}
	c.JSON(200, gin.H{"status": "ok", "collaborators": checks})
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72,password"`
}

// RegisterUser creates an account.
func (h *Handlers) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	user := &store.User{
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		RespondWithError(c, err)
		return
	}
	RespondCreated(c, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a session token.
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	user, err := h.users.ByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		RespondWithError(c, apperrors.Unauthorized("invalid credentials"))
		return
	}
	if err := h.hasher.Verify(req.Password, user.PasswordHash); err != nil {
		RespondWithError(c, apperrors.Unauthorized("invalid credentials"))
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		RespondWithError(c, apperrors.Internal("issuing token", err))
		return
	}
	RespondOK(c, gin.H{"token": token, "user": user})
}

// Upload accepts an audio file, stores it, and starts an asynchronous
// pipeline run for it.
func (h *Handlers) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondWithError(c, apperrors.Unauthorized("missing identity"))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		RespondWithError(c, apperrors.InvalidAudio("missing file field"))
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAudioExts[ext] {
		RespondWithError(c, apperrors.InvalidAudio(fmt.Sprintf("unsupported extension %s", ext)))
		return
	}

	recID := uuid.NewString()
	key := recID + ext
	dst, err := h.uploads.Path(key)
	if err != nil {
		RespondWithError(c, apperrors.Internal("resolving upload path", err))
		return
	}
	if err := c.SaveUploadedFile(file, dst); err != nil {
		RespondWithError(c, apperrors.Internal("saving upload", err))
		return
	}

	rec := &store.Recording{
		ID:        recID,
		UserID:    userID,
		Filename:  filepath.Base(file.Filename),
		AudioPath: dst,
		Status:    store.StatusPending,
	}
	if err := h.recordings.Create(c.Request.Context(), rec); err != nil {
		RespondWithError(c, err)
		return
	}

	go h.executeRun(rec)

	RespondAccepted(c, rec)
}

// List returns the caller's recordings.
func (h *Handlers) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondWithError(c, apperrors.Unauthorized("missing identity"))
		return
	}
	recs, err := h.recordings.ListByUser(c.Request.Context(), userID)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, recs)
}

// Get returns one recording with its speakers and documents.
func (h *Handlers) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondWithError(c, apperrors.Unauthorized("missing identity"))
		return
	}
	rec, err := h.recordings.ByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, rec)
}

// Download streams one exported document.
func (h *Handlers) Download(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondWithError(c, apperrors.Unauthorized("missing identity"))
		return
	}
	rec, err := h.recordings.ByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	format := export.Format(c.Param("format"))
	for _, doc := range rec.Documents {
		if doc.Format == string(format) {
			c.FileAttachment(doc.Path, filepath.Base(doc.Path))
			return
		}
	}
	RespondWithError(c, apperrors.NotFound("document"))
}
