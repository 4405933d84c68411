package controllers

import (
	"strconv"

	"educa/database"
	"educa/middleware"
	"educa/models"
	courseModels "educa/models/course"
	courseRepository "educa/repositories/course"
	courseValidator "educa/validators/course"
	"educa/views"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

const courseListPath = "/course/mine"

func notFound(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not found.", nil)
}

// lookupError maps repository misses to 404 and passes anything else to the error handler
func lookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, courseRepository.ErrNotFound) || errors.Is(err, courseModels.ErrUnknownItemKind) {
		return notFound(c)
	}
	return err
}

// OwnedCourse loads the course in "courseID" for its owner into "course"
func OwnedCourse(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)

	course, err := courseRepository.GetOwnedCourse(database.Database.Db, courseID, userId)
	if err != nil {
		return lookupError(c, err)
	}
	c.Locals("course", course)
	return c.Next()
}

// ManageCourseList lists the principal's own courses
func ManageCourseList(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	db := database.Database.Db

	courses, err := courseRepository.ListOwnedCourses(db, userId)
	if err != nil {
		return err
	}

	courseIDs := make([]uint, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
	}
	firstModules, err := courseRepository.FirstModuleIDs(db, courseIDs)
	if err != nil {
		return err
	}

	canAdd, err := middleware.HasCapability(userId, models.AddCourse)
	if err != nil {
		return err
	}

	return views.Page(c, "manage/course/list", fiber.Map{
		"Title":        "My courses",
		"Courses":      courses,
		"FirstModules": firstModules,
		"CanAdd":       canAdd,
	})
}

func renderCourseForm(c *fiber.Ctx, course *courseModels.Course, form *courseValidator.CourseForm, errs map[string]string) error {
	subjects, err := courseRepository.ListSubjects(database.Database.Db)
	if err != nil {
		return err
	}

	action := "/course/create"
	title := "Create a new course"
	if course != nil {
		action = "/course/" + strconv.FormatUint(uint64(course.ID), 10) + "/edit"
		title = "Edit course"
	}

	return views.Page(c, "manage/course/form", fiber.Map{
		"Title":    title,
		"Course":   course,
		"Form":     form,
		"Errors":   errs,
		"Subjects": subjects,
		"Action":   action,
	})
}

// CourseCreatePage renders a blank course form
func CourseCreatePage(c *fiber.Ctx) error {
	return renderCourseForm(c, nil, &courseValidator.CourseForm{}, nil)
}

// CourseCreate saves a new course stamped with the principal as owner
func CourseCreate(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	form := c.Locals("courseForm").(*courseValidator.CourseForm)
	errs := c.Locals("formErrors").(map[string]string)

	if len(errs) > 0 {
		return renderCourseForm(c, nil, form, errs)
	}

	course := courseModels.Course{
		OwnerID:   userId,
		SubjectID: form.SubjectID,
		Title:     form.Title,
		Slug:      form.Slug,
		Overview:  form.Overview,
	}
	if err := courseRepository.SaveCourse(database.Database.Db, &course); err != nil {
		return err
	}

	return c.Redirect(courseListPath, fiber.StatusSeeOther)
}

// CourseUpdatePage renders the form of an owned course
func CourseUpdatePage(c *fiber.Ctx) error {
	course := c.Locals("course").(*courseModels.Course)

	form := &courseValidator.CourseForm{
		SubjectID: course.SubjectID,
		Title:     course.Title,
		Slug:      course.Slug,
		Overview:  course.Overview,
	}
	return renderCourseForm(c, course, form, nil)
}

// CourseUpdate saves changes to an owned course
func CourseUpdate(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	course := c.Locals("course").(*courseModels.Course)
	form := c.Locals("courseForm").(*courseValidator.CourseForm)
	errs := c.Locals("formErrors").(map[string]string)

	if len(errs) > 0 {
		return renderCourseForm(c, course, form, errs)
	}

	course.OwnerID = userId
	course.SubjectID = form.SubjectID
	course.Title = form.Title
	course.Slug = form.Slug
	course.Overview = form.Overview
	if err := courseRepository.SaveCourse(database.Database.Db, course); err != nil {
		return err
	}

	return c.Redirect(courseListPath, fiber.StatusSeeOther)
}

// CourseDeletePage asks for confirmation
func CourseDeletePage(c *fiber.Ctx) error {
	course := c.Locals("course").(*courseModels.Course)
	return views.Page(c, "manage/course/delete", fiber.Map{
		"Title":  "Delete course",
		"Course": course,
	})
}

// CourseDelete removes an owned course
func CourseDelete(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)

	if err := courseRepository.DeleteOwnedCourse(database.Database.Db, courseID, userId); err != nil {
		return lookupError(c, err)
	}

	return c.Redirect(courseListPath, fiber.StatusSeeOther)
}
