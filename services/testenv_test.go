package services

import (
	"fmt"
	"strings"
	"testing"

	"pubregistry/config"
	"pubregistry/models"
	"pubregistry/repositories"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db           *gorm.DB
	publications PublicationService
	search       SearchService
	reports      ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.AutoMigrate(db))

	publicationRepo := repositories.NewPublicationRepository(db)
	personRepo := repositories.NewPersonRepository(db)
	authorshipRepo := repositories.NewAuthorshipRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	editLogRepo := repositories.NewEditLogRepository(db)
	historyRepo := repositories.NewStatusHistoryRepository(db)

	search := NewSearchService(publicationRepo, authorshipRepo, categoryRepo)
	return &testEnv{
		db: db,
		publications: NewPublicationService(
			publicationRepo, personRepo, authorshipRepo, categoryRepo,
			editLogRepo, historyRepo, zap.NewNop()),
		search:  search,
		reports: NewReportService(search, publicationRepo, authorshipRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, username string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.edu",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) submit(t *testing.T, ownerID uint, req models.SubmitPublicationRequest) *models.Publication {
	t.Helper()
	pub, err := e.publications.Submit(req, ownerID)
	require.NoError(t, err)
	return pub
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }
