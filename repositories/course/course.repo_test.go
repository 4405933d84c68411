package courseRepository

import (
	"testing"
	"time"

	"educa/models"
	courseModels "educa/models/course"
	"educa/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnedLookupsHideForeignRows(t *testing.T) {
	db := testutil.Setup(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleInstructor)
	other := testutil.CreateUser(t, db, "other@example.com", models.RoleInstructor)
	subject := testutil.CreateSubject(t, db, "Math", "math")
	course := testutil.CreateCourse(t, db, owner, subject, "Algebra")
	module := testutil.CreateModule(t, db, course, "Intro", 0)
	content, text := testutil.CreateTextContent(t, db, owner, module, "Welcome", 0)

	_, err := GetOwnedCourse(db, course.ID, owner.ID)
	assert.NoError(t, err)
	_, err = GetOwnedCourse(db, course.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = GetOwnedCourse(db, 9999, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := GetOwnedModule(db, module.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, found.Course.ID)
	_, err = GetOwnedModule(db, module.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = GetOwnedContent(db, content.ID, owner.ID)
	assert.NoError(t, err)
	_, err = GetOwnedContent(db, content.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	item, err := GetOwnedItem(db, courseModels.KindText, text.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome", item.Base().Title)
	_, err = GetOwnedItem(db, courseModels.KindText, text.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = GetOwnedItem(db, courseModels.KindVideo, text.ID, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = GetOwnedItem(db, courseModels.ItemKind("audio"), text.ID, owner.ID)
	assert.ErrorIs(t, err, courseModels.ErrUnknownItemKind)
}

func TestListCoursesOrdering(t *testing.T) {
	db := testutil.Setup(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleInstructor)
	testutil.CreateSubject(t, db, "Physics", "physics")
	subject := testutil.CreateSubject(t, db, "Biology", "biology")

	older := testutil.CreateCourse(t, db, owner, subject, "Cells")
	require.NoError(t, db.Model(&older).Update("created_at", time.Now().Add(-time.Hour)).Error)
	newer := testutil.CreateCourse(t, db, owner, subject, "Genes")
	testutil.CreateModule(t, db, newer, "Second", 2)
	testutil.CreateModule(t, db, newer, "First", 1)

	subjects, err := ListSubjects(db)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Biology", subjects[0].Title)

	courses, err := ListCourses(db)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, newer.ID, courses[0].ID)
	require.Len(t, courses[0].Modules, 2)
	assert.Equal(t, "First", courses[0].Modules[0].Title)

	owned, err := ListOwnedCourses(db, owner.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 2)
	assert.Equal(t, "Biology", owned[0].Subject.Title)
}

func TestSaveCourseAndSlugTaken(t *testing.T) {
	db := testutil.Setup(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleInstructor)
	subject := testutil.CreateSubject(t, db, "Math", "math")

	assert.Error(t, SaveCourse(db, &courseModels.Course{SubjectID: subject.ID, Title: "x", Slug: "x"}))

	course := courseModels.Course{OwnerID: owner.ID, SubjectID: subject.ID, Title: "Geometry", Slug: "geometry"}
	require.NoError(t, SaveCourse(db, &course))
	assert.NotZero(t, course.ID)

	taken, err := SlugTaken(db, "geometry", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = SlugTaken(db, "geometry", course.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestDeleteOwnedCourseCascades(t *testing.T) {
	db := testutil.Setup(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleInstructor)
	student := testutil.CreateUser(t, db, "student@example.com", models.RoleStudent)
	subject := testutil.CreateSubject(t, db, "Math", "math")
	course := testutil.CreateCourse(t, db, owner, subject, "Algebra")
	module := testutil.CreateModule(t, db, course, "Intro", 0)
	testutil.CreateTextContent(t, db, owner, module, "Welcome", 0)
	_, err := Enroll(db, course.ID, student.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, DeleteOwnedCourse(db, course.ID, student.ID), ErrNotFound)
	require.NoError(t, DeleteOwnedCourse(db, course.ID, owner.ID))

	var count int64
	db.Model(&courseModels.Course{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&courseModels.Module{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&courseModels.Content{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&courseModels.CourseStudent{}).Count(&count)
	assert.Zero(t, count)
	// the item is left for the orphan sweeper
	db.Model(&courseModels.Text{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
