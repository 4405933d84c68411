package controllers

import (
	"educa/database"
	courseModels "educa/models/course"
	courseRepository "educa/repositories/course"
	courseValidator "educa/validators/course"
	"educa/views"

	"github.com/gofiber/fiber/v2"
)

// extraModuleRows is how many blank rows the module editor offers
const extraModuleRows = 2

// OwnedModule loads the module in "moduleID" through its course owner into "module"
func OwnedModule(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	moduleID := c.Locals("moduleID").(uint)

	module, err := courseRepository.GetOwnedModule(database.Database.Db, moduleID, userId)
	if err != nil {
		return lookupError(c, err)
	}
	c.Locals("module", module)
	return c.Next()
}

func renderModuleFormset(c *fiber.Ctx, course *courseModels.Course, rows []courseValidator.ModuleRow) error {
	initial := 0
	for _, row := range rows {
		if row.ID != 0 {
			initial++
		}
	}
	return views.Page(c, "manage/module/formset", fiber.Map{
		"Title":        "Edit modules",
		"Course":       course,
		"Rows":         rows,
		"InitialForms": initial,
	})
}

// ModuleFormsetPage renders the course's modules plus blank rows
func ModuleFormsetPage(c *fiber.Ctx) error {
	course := c.Locals("course").(*courseModels.Course)

	modules, err := courseRepository.ListCourseModules(database.Database.Db, course.ID)
	if err != nil {
		return err
	}

	rows := make([]courseValidator.ModuleRow, 0, len(modules)+extraModuleRows)
	for i, module := range modules {
		rows = append(rows, courseValidator.ModuleRow{
			Index:       i,
			ID:          module.ID,
			Title:       module.Title,
			Description: module.Description,
		})
	}
	for i := 0; i < extraModuleRows; i++ {
		rows = append(rows, courseValidator.ModuleRow{Index: len(modules) + i})
	}

	return renderModuleFormset(c, course, rows)
}

// ModuleFormsetSave applies a fully valid submission, or re-renders every row with its errors
func ModuleFormsetSave(c *fiber.Ctx) error {
	course := c.Locals("course").(*courseModels.Course)

	changes, ok := c.Locals("moduleChanges").([]courseRepository.ModuleChange)
	if !ok {
		rows := c.Locals("moduleRows").([]courseValidator.ModuleRow)
		return renderModuleFormset(c, course, rows)
	}

	if err := courseRepository.ApplyModuleSet(database.Database.Db, course.ID, changes); err != nil {
		return err
	}

	return c.Redirect(courseListPath, fiber.StatusSeeOther)
}
