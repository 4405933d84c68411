// Package testutil wires an in-memory sqlite database into the global
// handles and seeds fixtures for package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"educa/config"
	"educa/database"
	"educa/logger"
	"educa/models"
	courseModels "educa/models/course"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the plain password of every seeded user
const Password = "password123"

var dbSeq int64

// Setup installs test config, a silent logger and a fresh migrated database
func Setup(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:           "3000",
		AppEnv:         "test",
		DBDriver:       "sqlite",
		JWTKey:         "test-secret",
		JWTTTL:         time.Hour,
		SaltRound:      bcrypt.MinCost,
		CorsOrigins:    "*",
		MediaRoot:      t.TempDir(),
		MediaURL:       "/media/",
		StorageBackend: "local",
		EmailSender:    "noreply@example.com",
	}
	logger.Log = zap.NewNop()

	dsn := fmt.Sprintf("file:educa_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))

	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))

	database.Database = database.DbInstance{Db: db}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateUser inserts a user with the given role; instructors receive the course capabilities
func CreateUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Name: strings.Split(email, "@")[0], Email: email, Role: role, Password: string(hash)}
	require.NoError(t, db.Create(&user).Error)

	if role == models.RoleInstructor {
		for _, capability := range models.CourseCapabilities {
			require.NoError(t, db.Create(&models.Permission{UserID: user.ID, Role: role, Permission: capability}).Error)
		}
	}
	return user
}

func CreateSubject(t *testing.T, db *gorm.DB, title, slug string) courseModels.Subject {
	t.Helper()
	subject := courseModels.Subject{Title: title, Slug: slug}
	require.NoError(t, db.Create(&subject).Error)
	return subject
}

func CreateCourse(t *testing.T, db *gorm.DB, owner models.User, subject courseModels.Subject, title string) courseModels.Course {
	t.Helper()
	course := courseModels.Course{
		OwnerID:   owner.ID,
		SubjectID: subject.ID,
		Title:     title,
		Slug:      fmt.Sprintf("%s-%d", strings.ToLower(strings.ReplaceAll(title, " ", "-")), atomic.AddInt64(&dbSeq, 1)),
		Overview:  "Overview of " + title,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func CreateModule(t *testing.T, db *gorm.DB, course courseModels.Course, title string, order int) courseModels.Module {
	t.Helper()
	module := courseModels.Module{CourseID: course.ID, Title: title, Description: title + " description", OrderIndex: order}
	require.NoError(t, db.Create(&module).Error)
	return module
}

// CreateTextContent inserts a text item owned by owner and links it into module
func CreateTextContent(t *testing.T, db *gorm.DB, owner models.User, module courseModels.Module, title string, order int) (courseModels.Content, *courseModels.Text) {
	t.Helper()
	text := &courseModels.Text{ItemBase: courseModels.ItemBase{OwnerID: owner.ID, Title: title}, Content: "Body of " + title}
	require.NoError(t, db.Create(text).Error)

	content := courseModels.Content{ModuleID: module.ID, ItemType: courseModels.KindText, ItemID: text.ID, OrderIndex: order}
	require.NoError(t, db.Create(&content).Error)
	return content, text
}
