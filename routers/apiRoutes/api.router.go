package apiRoutes

import (
	apiControllers "educa/controllers/api"
	"educa/middleware"
	"educa/validators"

	"github.com/gofiber/fiber/v2"
)

// SetupAPIRoutes sets up the public catalog and the student endpoints
func SetupAPIRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	apiGroup.Get("/subjects", apiControllers.ListSubjects)
	apiGroup.Get("/subjects/:pk", validators.ParseID("pk", "subjectID"), apiControllers.GetSubject)

	apiGroup.Get("/courses", apiControllers.ListCourses)
	apiGroup.Get("/courses/:pk", validators.ParseID("pk", "courseID"), apiControllers.GetCourse)
	apiGroup.Get("/courses/:pk/contents", middleware.APIAuthMiddleware, validators.ParseID("pk", "courseID"), apiControllers.CourseContents)

	apiGroup.Post("/enroll/:pk", middleware.APIAuthMiddleware, validators.ParseID("pk", "courseID"), apiControllers.Enroll)
	apiGroup.Post("/courses/:pk/enroll", middleware.APIAuthMiddleware, validators.ParseID("pk", "courseID"), apiControllers.Enroll)

	apiGroup.Get("/me/courses", middleware.APIAuthMiddleware, apiControllers.MyCourses)
}
