package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pubregistry/config"
	"pubregistry/middleware"
	"pubregistry/models"
	"pubregistry/repositories"
	"pubregistry/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.AutoMigrate(db))

	userRepo := repositories.NewUserRepository(db)
	personRepo := repositories.NewPersonRepository(db)
	publicationRepo := repositories.NewPublicationRepository(db)
	authorshipRepo := repositories.NewAuthorshipRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	editLogRepo := repositories.NewEditLogRepository(db)
	historyRepo := repositories.NewStatusHistoryRepository(db)

	authService := services.NewAuthService(userRepo, personRepo)
	publicationService := services.NewPublicationService(
		publicationRepo, personRepo, authorshipRepo, categoryRepo,
		editLogRepo, historyRepo, zap.NewNop())
	searchService := services.NewSearchService(publicationRepo, authorshipRepo, categoryRepo)

	authHandler := NewAuthHandler(authService)
	publicationHandler := NewPublicationHandler(publicationService, searchService)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.POST("/publications", publicationHandler.Submit)
	protected.GET("/publications", publicationHandler.Search)
	protected.GET("/publications/:id", publicationHandler.Get)
	protected.PUT("/publications/:id", publicationHandler.Update)
	protected.PUT("/publications/:id/status", publicationHandler.UpdateStatus)
	protected.DELETE("/publications/:id", publicationHandler.Delete)
	protected.GET("/publications/:id/history", publicationHandler.EditHistory)
	protected.GET("/publications/:id/status-history", publicationHandler.StatusHistory)

	v1.GET("/public/publications", publicationHandler.PublicSearch)
	v1.GET("/public/publications/:id", publicationHandler.PublicGet)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, username string, role models.UserRole) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Username: username,
		Email:    username + "@example.edu",
		Password: "secret123",
		Role:     role,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data models.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)
	return envelope.Data.Token
}

func submitPublication(t *testing.T, router *gin.Engine, token string, req models.SubmitPublicationRequest) models.Publication {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/publications", token, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var pub models.Publication
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pub))
	return pub
}

func TestSubmissionFlow(t *testing.T) {
	router := newTestRouter(t)
	profToken := registerUser(t, router, "prof", models.RoleProfessor)
	staffToken := registerUser(t, router, "staff", models.RoleStaff)

	pub := submitPublication(t, router, profToken, models.SubmitPublicationRequest{
		Title:   "Consensus Without Clocks",
		Year:    intPtr(2023),
		LinkURL: "https://doi.org/10.1000/cwc",
		Authors: []models.AuthorInput{{Name: "Dana Wu", Role: models.RoleLead}},
	})
	assert.Equal(t, models.StatusDraft, pub.Status)

	// Draft records are invisible on the public surface.
	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/public/publications/%d", pub.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Professor submits for review, staff publishes.
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/publications/%d/status", pub.ID),
		profToken, models.TransitionStatusRequest{Status: models.StatusUnderReview})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/publications/%d/status", pub.ID),
		staffToken, models.TransitionStatusRequest{Status: models.StatusPublished})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result models.TransitionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.StatusPublished, result.Status)
	assert.Empty(t, result.Warning)

	// Now it is publicly visible.
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/public/publications/%d", pub.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/public/publications?q=consensus", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var search models.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &search))
	require.Len(t, search.Rows, 1)
	assert.Equal(t, pub.ID, search.Rows[0].ID)
	assert.Equal(t, []string{"Dana Wu"}, search.Rows[0].Authors)

	// The ledger recorded both transitions.
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/publications/%d/status-history", pub.ID), profToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var timeline struct {
		Entries []models.StatusHistory `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &timeline))
	require.Len(t, timeline.Entries, 2)
	assert.Equal(t, models.StatusUnderReview, timeline.Entries[0].Status)
	assert.Equal(t, models.StatusPublished, timeline.Entries[1].Status)
}

func TestDuplicateSubmissionConflict(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "prof", models.RoleProfessor)

	first := submitPublication(t, router, token, models.SubmitPublicationRequest{
		Title:   "Deduplication in Depth",
		Year:    intPtr(2022),
		LinkURL: "https://doi.org/10.1000/dd",
		Authors: []models.AuthorInput{{Name: "Dana Wu"}},
	})

	w := doJSON(t, router, http.MethodPost, "/api/v1/publications", token, models.SubmitPublicationRequest{
		Title:   "Another Name",
		LinkURL: "https://doi.org/10.1000/dd",
		Authors: []models.AuthorInput{{Name: "Dana Wu"}},
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var body struct {
		ConflictID uint `json:"conflict_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, first.ID, body.ConflictID)
}

func TestProfessorCannotPublish(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "prof", models.RoleProfessor)

	pub := submitPublication(t, router, token, models.SubmitPublicationRequest{
		Title:   "Unreviewed Findings",
		Authors: []models.AuthorInput{{Name: "Dana Wu"}},
	})

	w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/publications/%d/status", pub.ID),
		token, models.TransitionStatusRequest{Status: models.StatusPublished})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}

func TestEditHistoryEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "prof", models.RoleProfessor)

	pub := submitPublication(t, router, token, models.SubmitPublicationRequest{
		Title:   "Before Rename",
		Authors: []models.AuthorInput{{Name: "Dana Wu"}},
	})

	w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/publications/%d", pub.ID),
		token, map[string]interface{}{"title": "After Rename"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/publications/%d/history", pub.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var history struct {
		Entries []models.EditLog `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.Entries, 1)
	assert.Equal(t, "title", history.Entries[0].Field)
	assert.Equal(t, "Before Rename", history.Entries[0].OldValue)
	assert.Equal(t, "After Rename", history.Entries[0].NewValue)
}

func TestMissingTokenRejected(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/publications", "", nil)
	assert.NotEqual(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/publications", "not-a-token", nil)
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestOwnershipScopedSearch(t *testing.T) {
	router := newTestRouter(t)
	alice := registerUser(t, router, "alice", models.RoleProfessor)
	bob := registerUser(t, router, "bob", models.RoleProfessor)

	mine := submitPublication(t, router, alice, models.SubmitPublicationRequest{
		Title:   "Alice's Study",
		LinkURL: "https://example.org/alice",
		Authors: []models.AuthorInput{{Name: "Alice A"}},
	})
	submitPublication(t, router, bob, models.SubmitPublicationRequest{
		Title:   "Bob's Study",
		LinkURL: "https://example.org/bob",
		Authors: []models.AuthorInput{{Name: "Bob B"}},
	})

	w := doJSON(t, router, http.MethodGet, "/api/v1/publications?mine=true", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result models.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Rows, 1)
	assert.Equal(t, mine.ID, result.Rows[0].ID)
}

func intPtr(v int) *int { return &v }
