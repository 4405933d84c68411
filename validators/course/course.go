package courseValidator

import (
	"strconv"
	"strings"

	"educa/database"
	"educa/logger"
	courseRepository "educa/repositories/course"
	"educa/validators"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const slugMaxLength = 200

// CourseForm is the manage-side course form
type CourseForm struct {
	SubjectID uint   `form:"subject" validate:"required"`
	Title     string `form:"title" validate:"required,max=200"`
	Slug      string `form:"slug" validate:"max=200"`
	Overview  string `form:"overview" validate:"required"`
}

// CourseFormValidator parses the course form on POST. The form and its field
// errors are stored under "courseForm" and "formErrors"; an empty slug is
// derived from the title.
func CourseFormValidator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := &CourseForm{
			Title:    strings.TrimSpace(c.FormValue("title")),
			Slug:     strings.TrimSpace(c.FormValue("slug")),
			Overview: strings.TrimSpace(c.FormValue("overview")),
		}

		errs := make(map[string]string)
		if raw := strings.TrimSpace(c.FormValue("subject")); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil || id <= 0 {
				errs["subject"] = "Select a valid choice."
			} else {
				form.SubjectID = uint(id)
			}
		}

		if form.Slug == "" && form.Title != "" {
			form.Slug = deriveSlug(form.Title)
		} else if form.Slug != "" && !slug.IsSlug(form.Slug) {
			errs["slug"] = "Enter a valid slug consisting of lowercase letters, numbers, underscores or hyphens."
		}
		if form.Slug == "" {
			errs["slug"] = "This field is required."
		}

		for field, msg := range validators.Struct(form) {
			if _, seen := errs[field]; !seen {
				errs[field] = msg
			}
		}

		db := database.Database.Db
		if _, seen := errs["subject"]; !seen {
			if _, err := courseRepository.GetSubject(db, form.SubjectID); err != nil {
				if !errors.Is(err, courseRepository.ErrNotFound) {
					return err
				}
				errs["subject"] = "Select a valid choice."
			}
		}

		if _, seen := errs["slug"]; !seen && form.Slug != "" {
			courseID, _ := c.Locals("courseID").(uint)
			taken, err := courseRepository.SlugTaken(db, form.Slug, courseID)
			if err != nil {
				logger.Log.Error("slug lookup failed", zap.Error(err))
				return err
			}
			if taken {
				errs["slug"] = "Course with this slug already exists."
			}
		}

		c.Locals("courseForm", form)
		c.Locals("formErrors", errs)
		return c.Next()
	}
}

// deriveSlug slugifies title and cuts the result to the column size.
// Transliteration can make it longer than the title.
func deriveSlug(title string) string {
	derived := slug.Make(title)
	if len(derived) > slugMaxLength {
		derived = strings.TrimRight(derived[:slugMaxLength], "-")
	}
	return derived
}
