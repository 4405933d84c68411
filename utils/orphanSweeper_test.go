package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"educa/config"
	"educa/models"
	courseModels "educa/models/course"
	"educa/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepOrphanItems(t *testing.T) {
	db := testutil.Setup(t)
	Media = NewLocalStorage(config.AppConfig.MediaRoot, config.AppConfig.MediaURL)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleInstructor)
	course := testutil.CreateCourse(t, db, owner, testutil.CreateSubject(t, db, "Math", "math"), "Algebra")
	module := testutil.CreateModule(t, db, course, "Intro", 0)
	_, linked := testutil.CreateTextContent(t, db, owner, module, "Linked", 0)

	yesterday := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.MkdirAll(filepath.Join(config.AppConfig.MediaRoot, "files"), 0755))
	stored := filepath.Join(config.AppConfig.MediaRoot, "files", "old.pdf")
	require.NoError(t, os.WriteFile(stored, []byte("pdf"), 0644))

	oldFile := &courseModels.File{ItemBase: courseModels.ItemBase{OwnerID: owner.ID, Title: "Old", CreatedAt: yesterday}, File: "/media/files/old.pdf"}
	require.NoError(t, db.Create(oldFile).Error)
	fresh := &courseModels.Video{ItemBase: courseModels.ItemBase{OwnerID: owner.ID, Title: "Fresh"}, URL: "https://example.com/v"}
	require.NoError(t, db.Create(fresh).Error)
	require.NoError(t, db.Model(linked).Update("created_at", yesterday).Error)

	removed, err := SweepOrphanItems(db)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	var count int64
	db.Model(&courseModels.File{}).Where("id = ?", oldFile.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&courseModels.Video{}).Where("id = ?", fresh.ID).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Model(&courseModels.Text{}).Where("id = ?", linked.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))
}

func TestInitializeOrphanSweeper(t *testing.T) {
	testutil.Setup(t)

	c, err := InitializeOrphanSweeper("")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = InitializeOrphanSweeper("not a schedule")
	assert.Error(t, err)

	c, err = InitializeOrphanSweeper("@daily")
	require.NoError(t, err)
	require.NotNil(t, c)
	c.Stop()
}
