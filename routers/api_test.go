package routers_test

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"educa/models"
	courseModels "educa/models/course"
	courseRepository "educa/repositories/course"
	"educa/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basic(email string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+testutil.Password))
}

func TestSubjectsAPI(t *testing.T) {
	db, app := newApp(t)
	testutil.CreateSubject(t, db, "Physics", "physics")
	math := testutil.CreateSubject(t, db, "Math", "math")

	resp := get(t, app, "/api/subjects", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var subjects []map[string]interface{}
	decode(t, resp, &subjects)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Math", subjects[0]["title"])
	assert.Equal(t, "physics", subjects[1]["slug"])

	resp = get(t, app, fmt.Sprintf("/api/subjects/%d", math.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var subject map[string]interface{}
	decode(t, resp, &subject)
	assert.Equal(t, "math", subject["slug"])

	resp = get(t, app, "/api/subjects/999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCoursesAPI(t *testing.T) {
	db, app := newApp(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleInstructor)
	subject := testutil.CreateSubject(t, db, "Math", "math")
	older := testutil.CreateCourse(t, db, owner, subject, "Algebra")
	newer := testutil.CreateCourse(t, db, owner, subject, "Geometry")
	testutil.CreateModule(t, db, older, "Second", 2)
	testutil.CreateModule(t, db, older, "First", 1)

	resp := get(t, app, "/api/courses", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var courses []map[string]interface{}
	decode(t, resp, &courses)
	require.Len(t, courses, 2)
	assert.EqualValues(t, newer.ID, courses[0]["id"])

	resp = get(t, app, fmt.Sprintf("/api/courses/%d", older.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var course struct {
		ID      uint   `json:"id"`
		Subject uint   `json:"subject"`
		Owner   uint   `json:"owner"`
		Slug    string `json:"slug"`
		Modules []struct {
			Order       int    `json:"order"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"modules"`
	}
	decode(t, resp, &course)
	assert.Equal(t, subject.ID, course.Subject)
	assert.Equal(t, owner.ID, course.Owner)
	assert.Equal(t, older.Slug, course.Slug)
	require.Len(t, course.Modules, 2)
	assert.Equal(t, "First", course.Modules[0].Title)
	assert.Equal(t, 1, course.Modules[0].Order)

	resp = get(t, app, "/api/courses/999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEnrollRequiresAuthentication(t *testing.T) {
	db, app := newApp(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleInstructor)
	course := testutil.CreateCourse(t, db, owner, testutil.CreateSubject(t, db, "Math", "math"), "Algebra")

	resp := postJSON(t, app, fmt.Sprintf("/api/courses/%d/enroll", course.ID), "", "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, `Basic realm="api"`, resp.Header.Get(fiber.HeaderWWWAuthenticate))

	var envelope map[string]interface{}
	decode(t, resp, &envelope)
	assert.Equal(t, false, envelope["status"])
}

func TestEnrollIsIdempotent(t *testing.T) {
	db, app := newApp(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleInstructor)
	student := testutil.CreateUser(t, db, "student@example.com", models.RoleStudent)
	course := testutil.CreateCourse(t, db, owner, testutil.CreateSubject(t, db, "Math", "math"), "Algebra")

	for _, path := range []string{
		fmt.Sprintf("/api/courses/%d/enroll", course.ID),
		fmt.Sprintf("/api/enroll/%d", course.ID),
	} {
		resp := postJSON(t, app, path, basic(student.Email), "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode, path)

		var out map[string]bool
		decode(t, resp, &out)
		assert.Equal(t, map[string]bool{"enrolled": true}, out)
	}

	students, err := courseRepository.ListStudents(db, course.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, student.ID, students[0].ID)

	resp := postJSON(t, app, "/api/enroll/999", basic(student.Email), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEnrollRejectsWrongPassword(t *testing.T) {
	db, app := newApp(t)
	student := testutil.CreateUser(t, db, "student@example.com", models.RoleStudent)

	auth := "Basic " + base64.StdEncoding.EncodeToString([]byte(student.Email+":wrong"))
	resp := postJSON(t, app, "/api/enroll/1", auth, "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCourseContentsRendersItems(t *testing.T) {
	db, app := newApp(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleInstructor)
	student := testutil.CreateUser(t, db, "student@example.com", models.RoleStudent)
	course := testutil.CreateCourse(t, db, owner, testutil.CreateSubject(t, db, "Math", "math"), "Algebra")
	module := testutil.CreateModule(t, db, course, "Intro", 0)
	testutil.CreateTextContent(t, db, owner, module, "Welcome", 1)

	video := &courseModels.Video{ItemBase: courseModels.ItemBase{OwnerID: owner.ID, Title: "Talk"}, URL: "https://www.youtube.com/watch?v=abc123"}
	require.NoError(t, db.Create(video).Error)
	require.NoError(t, db.Create(&courseModels.Content{ModuleID: module.ID, ItemType: courseModels.KindVideo, ItemID: video.ID, OrderIndex: 0}).Error)

	path := fmt.Sprintf("/api/courses/%d/contents", course.ID)
	resp := get(t, app, path, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = get(t, app, path, basic(student.Email))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Title   string `json:"title"`
		Modules []struct {
			Title    string `json:"title"`
			Contents []struct {
				Order int    `json:"order"`
				Item  string `json:"item"`
			} `json:"contents"`
		} `json:"modules"`
	}
	decode(t, resp, &out)
	assert.Equal(t, "Algebra", out.Title)
	require.Len(t, out.Modules, 1)
	require.Len(t, out.Modules[0].Contents, 2)
	assert.Contains(t, out.Modules[0].Contents[0].Item, "https://www.youtube.com/embed/abc123")
	assert.Equal(t, "<p>Body of Welcome</p>", out.Modules[0].Contents[1].Item)
}

func TestMyCourses(t *testing.T) {
	db, app := newApp(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleInstructor)
	student := testutil.CreateUser(t, db, "student@example.com", models.RoleStudent)
	subject := testutil.CreateSubject(t, db, "Math", "math")
	course := testutil.CreateCourse(t, db, owner, subject, "Algebra")
	testutil.CreateCourse(t, db, owner, subject, "Geometry")

	_, err := courseRepository.Enroll(db, course.ID, student.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me/courses", nil)
	req.Header.Set(fiber.HeaderAuthorization, bearer(t, student))
	resp := do(t, app, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var courses []map[string]interface{}
	decode(t, resp, &courses)
	require.Len(t, courses, 1)
	assert.Equal(t, "Algebra", courses[0]["title"])
}
