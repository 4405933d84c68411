package courseValidator

import (
	"fmt"
	"strconv"
	"strings"

	"educa/database"
	courseRepository "educa/repositories/course"
	"educa/validators"

	"github.com/gofiber/fiber/v2"
)

// FormsetPrefix prefixes every field of the module set editor
const FormsetPrefix = "modules"

// MaxModuleRows caps how many rows a single submission may carry
const MaxModuleRows = 1000

// ModuleRow is one row of the module set editor as submitted
type ModuleRow struct {
	Index       int
	ID          uint
	Title       string `form:"title" validate:"required,max=250"`
	Description string `form:"description"`
	Delete      bool
	Errors      map[string]string
}

// Field returns the input name of field for this row
func (r ModuleRow) Field(field string) string {
	return fmt.Sprintf("%s-%d-%s", FormsetPrefix, r.Index, field)
}

// blank reports an extra row the user left untouched
func (r ModuleRow) blank() bool {
	return r.ID == 0 && r.Title == "" && r.Description == ""
}

// ModuleFormset parses and validates every row of the module set editor.
// Existing row ids must belong to the course in "courseID". The rows go to
// "moduleRows" and, only when every row is valid, the changes to
// "moduleChanges".
func ModuleFormset() fiber.Handler {
	return func(c *fiber.Ctx) error {
		total, err := strconv.Atoi(c.FormValue(FormsetPrefix + "-TOTAL_FORMS"))
		if err != nil || total < 0 || total > MaxModuleRows {
			return validators.FormsetError(c, "ManagementForm data is missing or has been tampered with.")
		}

		courseID, _ := c.Locals("courseID").(uint)
		existing, err := courseModuleIDs(courseID)
		if err != nil {
			return err
		}

		rows := make([]ModuleRow, 0, total)
		valid := true
		for i := 0; i < total; i++ {
			row := ModuleRow{Index: i, Errors: map[string]string{}}
			row.Title = strings.TrimSpace(c.FormValue(row.Field("title")))
			row.Description = strings.TrimSpace(c.FormValue(row.Field("description")))
			row.Delete = checked(c.FormValue(row.Field("DELETE")))

			if raw := strings.TrimSpace(c.FormValue(row.Field("id"))); raw != "" {
				id, err := strconv.Atoi(raw)
				if err != nil || id <= 0 || !existing[uint(id)] {
					row.Errors["id"] = "Select a valid choice. That choice is not one of the available choices."
				} else {
					row.ID = uint(id)
				}
			}

			if !row.Delete && !row.blank() {
				for field, msg := range validators.Struct(row) {
					row.Errors[field] = msg
				}
			}
			if len(row.Errors) > 0 {
				valid = false
			}
			rows = append(rows, row)
		}

		c.Locals("moduleRows", rows)
		if !valid {
			return c.Next()
		}

		changes := make([]courseRepository.ModuleChange, 0, len(rows))
		for _, row := range rows {
			if row.blank() {
				continue
			}
			changes = append(changes, courseRepository.ModuleChange{
				ID:          row.ID,
				Title:       row.Title,
				Description: row.Description,
				Delete:      row.Delete,
			})
		}
		c.Locals("moduleChanges", changes)
		return c.Next()
	}
}

func courseModuleIDs(courseID uint) (map[uint]bool, error) {
	modules, err := courseRepository.ListCourseModules(database.Database.Db, courseID)
	if err != nil {
		return nil, err
	}
	ids := make(map[uint]bool, len(modules))
	for _, module := range modules {
		ids[module.ID] = true
	}
	return ids, nil
}

func checked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
