package courseRoutes

import (
	controllers "educa/controllers/course"
	"educa/middleware"
	"educa/models"
	"educa/validators"
	courseValidator "educa/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the instructor pages for managing courses
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")
	auth := middleware.PageAuthMiddleware

	// Drag and drop ordering, called from the content list page
	courseGroup.Post("/module/order", middleware.APIAuthMiddleware, courseValidator.OrderPayload(), controllers.ModuleOrder)
	courseGroup.Post("/content/order", middleware.APIAuthMiddleware, courseValidator.OrderPayload(), controllers.ContentOrder)

	// Own courses
	courseGroup.Get("/mine", auth, middleware.CheckPermissionMiddleware(models.ViewCourse), controllers.ManageCourseList)
	courseGroup.Get("/create", auth, middleware.CheckPermissionMiddleware(models.AddCourse), controllers.CourseCreatePage)
	courseGroup.Post("/create", auth, middleware.CheckPermissionMiddleware(models.AddCourse), courseValidator.CourseFormValidator(), controllers.CourseCreate)
	courseGroup.Get("/:id/edit", auth, middleware.CheckPermissionMiddleware(models.ChangeCourse), validators.ParseID("id", "courseID"), controllers.OwnedCourse, controllers.CourseUpdatePage)
	courseGroup.Post("/:id/edit", auth, middleware.CheckPermissionMiddleware(models.ChangeCourse), validators.ParseID("id", "courseID"), controllers.OwnedCourse, courseValidator.CourseFormValidator(), controllers.CourseUpdate)
	courseGroup.Get("/:id/delete", auth, middleware.CheckPermissionMiddleware(models.DeleteCourse), validators.ParseID("id", "courseID"), controllers.OwnedCourse, controllers.CourseDeletePage)
	courseGroup.Post("/:id/delete", auth, middleware.CheckPermissionMiddleware(models.DeleteCourse), validators.ParseID("id", "courseID"), controllers.CourseDelete)

	// Module set editor
	courseGroup.Get("/:id/module", auth, validators.ParseID("id", "courseID"), controllers.OwnedCourse, controllers.ModuleFormsetPage)
	courseGroup.Post("/:id/module", auth, validators.ParseID("id", "courseID"), controllers.OwnedCourse, courseValidator.ModuleFormset(), controllers.ModuleFormsetSave)

	// Module contents
	courseGroup.Get("/module/:module_id", auth, validators.ParseID("module_id", "moduleID"), controllers.OwnedModule, controllers.ModuleContentList)
	courseGroup.Get("/module/:module_id/content/:model_name/create", auth, validators.ParseID("module_id", "moduleID"), controllers.OwnedModule, courseValidator.ResolveItemKind(), controllers.ContentFormPage)
	courseGroup.Post("/module/:module_id/content/:model_name/create", auth, validators.ParseID("module_id", "moduleID"), controllers.OwnedModule, courseValidator.ResolveItemKind(), courseValidator.ContentFormValidator(), controllers.ContentSave)
	courseGroup.Get("/module/:module_id/content/:model_name/:id", auth, validators.ParseID("module_id", "moduleID"), controllers.OwnedModule, courseValidator.ResolveItemKind(), validators.ParseID("id", "itemID"), controllers.OwnedItem, controllers.ContentFormPage)
	courseGroup.Post("/module/:module_id/content/:model_name/:id", auth, validators.ParseID("module_id", "moduleID"), controllers.OwnedModule, courseValidator.ResolveItemKind(), validators.ParseID("id", "itemID"), controllers.OwnedItem, courseValidator.ContentFormValidator(), controllers.ContentSave)
	courseGroup.Post("/content/:id/delete", auth, validators.ParseID("id", "contentID"), controllers.ContentDelete)
}
