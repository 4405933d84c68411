// Package apiController serves the read-only catalog API and enrollment.
// Successful answers are the bare resource; failures use the JSON envelope.
package apiController

import (
	"html/template"
	"time"

	"educa/database"
	"educa/logger"
	"educa/middleware"
	"educa/models"
	courseModels "educa/models/course"
	courseRepository "educa/repositories/course"
	"educa/utils"
	"educa/views"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type moduleSummary struct {
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type courseSummary struct {
	ID       uint            `json:"id"`
	Subject  uint            `json:"subject"`
	Title    string          `json:"title"`
	Slug     string          `json:"slug"`
	Overview string          `json:"overview"`
	Created  time.Time       `json:"created"`
	Owner    uint            `json:"owner"`
	Modules  []moduleSummary `json:"modules"`
}

type contentSummary struct {
	Order int           `json:"order"`
	Item  template.HTML `json:"item"`
}

type moduleWithContents struct {
	moduleSummary
	Contents []contentSummary `json:"contents"`
}

type courseWithContents struct {
	ID       uint                 `json:"id"`
	Subject  uint                 `json:"subject"`
	Title    string               `json:"title"`
	Slug     string               `json:"slug"`
	Overview string               `json:"overview"`
	Created  time.Time            `json:"created"`
	Owner    uint                 `json:"owner"`
	Modules  []moduleWithContents `json:"modules"`
}

func summarize(course courseModels.Course) courseSummary {
	modules := make([]moduleSummary, 0, len(course.Modules))
	for _, module := range course.Modules {
		modules = append(modules, summarizeModule(module))
	}
	return courseSummary{
		ID:       course.ID,
		Subject:  course.SubjectID,
		Title:    course.Title,
		Slug:     course.Slug,
		Overview: course.Overview,
		Created:  course.CreatedAt,
		Owner:    course.OwnerID,
		Modules:  modules,
	}
}

func summarizeModule(module courseModels.Module) moduleSummary {
	return moduleSummary{Order: module.OrderIndex, Title: module.Title, Description: module.Description}
}

func notFound(c *fiber.Ctx, err error) error {
	if errors.Is(err, courseRepository.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not found.", nil)
	}
	return err
}

func ListSubjects(c *fiber.Ctx) error {
	subjects, err := courseRepository.ListSubjects(database.Database.Db)
	if err != nil {
		return err
	}
	return c.JSON(subjects)
}

func GetSubject(c *fiber.Ctx) error {
	subject, err := courseRepository.GetSubject(database.Database.Db, c.Locals("subjectID").(uint))
	if err != nil {
		return notFound(c, err)
	}
	return c.JSON(subject)
}

func ListCourses(c *fiber.Ctx) error {
	courses, err := courseRepository.ListCourses(database.Database.Db)
	if err != nil {
		return err
	}

	summaries := make([]courseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, summarize(course))
	}
	return c.JSON(summaries)
}

func GetCourse(c *fiber.Ctx) error {
	course, err := courseRepository.GetCourse(database.Database.Db, c.Locals("courseID").(uint))
	if err != nil {
		return notFound(c, err)
	}
	return c.JSON(summarize(*course))
}

// Enroll adds the principal to the course's students. Repeating it changes nothing.
func Enroll(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	created, err := courseRepository.Enroll(db, courseID, userId)
	if err != nil {
		return notFound(c, err)
	}

	if created {
		logger.Log.Info("student enrolled", zap.Uint("courseId", courseID), zap.Uint("userId", userId))
		notifyEnrollment(courseID, userId)
	}
	return c.JSON(fiber.Map{"enrolled": true})
}

func notifyEnrollment(courseID, userID uint) {
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		logger.Log.Warn("enrollment email skipped", zap.Uint("userId", userID), zap.Error(err))
		return
	}
	course, err := courseRepository.GetCourse(db, courseID)
	if err != nil {
		logger.Log.Warn("enrollment email skipped", zap.Uint("courseId", courseID), zap.Error(err))
		return
	}
	utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)
}

// CourseContents returns the course with every module's items rendered to html
func CourseContents(c *fiber.Ctx) error {
	db := database.Database.Db

	course, err := courseRepository.GetCourseWithContents(db, c.Locals("courseID").(uint))
	if err != nil {
		return notFound(c, err)
	}

	var contents []courseModels.Content
	for _, module := range course.Modules {
		contents = append(contents, module.Contents...)
	}
	items, err := courseRepository.LoadItems(db, contents)
	if err != nil {
		return err
	}

	modules := make([]moduleWithContents, 0, len(course.Modules))
	for _, module := range course.Modules {
		rendered := make([]contentSummary, 0, len(module.Contents))
		for _, content := range module.Contents {
			item, ok := items[content.ID]
			if !ok {
				continue
			}
			fragment, err := views.RenderItem(item)
			if err != nil {
				return errors.Wrapf(err, "render %s %d", content.ItemType, content.ItemID)
			}
			rendered = append(rendered, contentSummary{Order: content.OrderIndex, Item: fragment})
		}
		modules = append(modules, moduleWithContents{moduleSummary: summarizeModule(module), Contents: rendered})
	}

	return c.JSON(courseWithContents{
		ID:       course.ID,
		Subject:  course.SubjectID,
		Title:    course.Title,
		Slug:     course.Slug,
		Overview: course.Overview,
		Created:  course.CreatedAt,
		Owner:    course.OwnerID,
		Modules:  modules,
	})
}

// MyCourses lists the courses the principal is enrolled in
func MyCourses(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	courses, err := courseRepository.ListEnrolledCourses(database.Database.Db, userId)
	if err != nil {
		return err
	}

	summaries := make([]courseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, summarize(course))
	}
	return c.JSON(summaries)
}
