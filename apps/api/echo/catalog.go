package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/identity"
)

type catalogApi struct {
	dir      identity.Directory
	svc      *catalog.Service
	validate *validator.Validate
}

func registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := catalogApi{
		dir:      deps.Directory,
		svc:      deps.CatalogSvc,
		validate: deps.Validate,
	}

	// student portal
	sg := g.Group("", jwt, guardMiddleware(deps.Gate, identity.RoleStandard))
	sg.GET("/courses", api.courseQuery)
	sg.GET("/courses/:id", api.courseRetrieve)
	sg.POST("/courses/:id/enroll", api.courseEnroll)
	sg.GET("/my-courses", api.myCourses)
	sg.GET("/certificates", api.myCertificates)
	sg.GET("/profile", api.profile)

	// admin portal
	ag := g.Group("/admin", jwt, guardMiddleware(deps.Gate, identity.RoleAdministrator))
	ag.GET("/courses", api.courseQuery)
	ag.POST("/courses", api.courseCreate)
	ag.PUT("/courses/:id", api.courseUpdate)
	ag.DELETE("/courses/:id", api.courseDelete)
	ag.DELETE("/courses", api.courseDeleteMultiple) // ?id=1&id=2
	ag.GET("/users", api.userQuery)
	ag.GET("/enrollments", api.enrollmentQuery)
	ag.POST("/enrollments", api.enrollmentCreate)
	ag.PUT("/enrollments/:id", api.enrollmentSetProgress)
	ag.DELETE("/enrollments/:id", api.enrollmentDelete)
	ag.GET("/reports", api.reports)
	ag.GET("/dashboard", api.dashboard)
}

// Handlers

func (api *catalogApi) courseQuery(ctx echo.Context) error {
	var filter catalog.CourseFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to CourseFilter")
	}
	filter.Clean()

	var ord Ordering
	ord.Bind(ctx)

	courses, err := api.svc.QueryCourses(&filter, ord.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *catalogApi) courseRetrieve(ctx echo.Context) error {
	crs, err := api.svc.GetCourse(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == catalog.ErrCourseNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *catalogApi) courseCreate(ctx echo.Context) error {
	var data catalog.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	crs, err := api.svc.CreateCourse(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *catalogApi) courseUpdate(ctx echo.Context) error {
	orig, err := api.svc.GetCourse(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == catalog.ErrCourseNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting course")
	}

	var data catalog.UpdateCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err = data.Validate(orig, api.validate); err != nil {
		return err
	}

	crs, err := api.svc.UpdateCourse(orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *catalogApi) courseDelete(ctx echo.Context) error {
	if err := api.svc.DeleteCourses(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) courseDeleteMultiple(ctx echo.Context) error {
	ids, ok := ctx.QueryParams()["id"]
	if !ok || len(ids) == 0 {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.DeleteCourses(ids...); err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) courseEnroll(ctx echo.Context) error {
	sess := getContextSession(ctx)
	if sess == nil {
		return errUnauthorized
	}

	enr, err := api.svc.EnrollStudent(sess.ID, sess.Name, sess.Email, ctx.Param("id"))
	if err != nil {
		switch errors.Cause(err) {
		case catalog.ErrCourseNotFound:
			return errHttpNotFound
		case catalog.ErrAlreadyEnrolled:
			return core.NewValidationError(err)
		}
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusCreated, enr)
}

func (api *catalogApi) myCourses(ctx echo.Context) error {
	sess := getContextSession(ctx)
	if sess == nil {
		return errUnauthorized
	}

	enrollments, err := api.svc.StudentCourses(sess.ID)
	if err != nil {
		return errors.Wrap(err, "getting student courses")
	}
	return ctx.JSON(http.StatusOK, enrollments)
}

func (api *catalogApi) myCertificates(ctx echo.Context) error {
	sess := getContextSession(ctx)
	if sess == nil {
		return errUnauthorized
	}

	certs, err := api.svc.StudentCertificates(sess.ID)
	if err != nil {
		return errors.Wrap(err, "getting student certificates")
	}
	return ctx.JSON(http.StatusOK, certs)
}

func (api *catalogApi) profile(ctx echo.Context) error {
	sess := getContextSession(ctx)
	if sess == nil {
		return errUnauthorized
	}

	enrollments, err := api.svc.StudentCourses(sess.ID)
	if err != nil {
		return errors.Wrap(err, "getting student courses")
	}
	certs, err := api.svc.StudentCertificates(sess.ID)
	if err != nil {
		return errors.Wrap(err, "getting student certificates")
	}

	var completed int
	for _, enr := range enrollments {
		if enr.IsCompleted() {
			completed++
		}
	}
	return ctx.JSON(http.StatusOK, ProfileResponse{
		User:         *sess,
		Enrollments:  len(enrollments),
		Completed:    completed,
		Certificates: len(certs),
	})
}

func (api *catalogApi) userQuery(ctx echo.Context) error {
	idents, err := api.dir.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying identities")
	}
	return ctx.JSON(http.StatusOK, idents)
}

func (api *catalogApi) enrollmentQuery(ctx echo.Context) error {
	var filter catalog.EnrollmentFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to EnrollmentFilter")
	}
	filter.Clean()

	enrollments, err := api.svc.QueryEnrollments(&filter)
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}
	return ctx.JSON(http.StatusOK, enrollments)
}

func (api *catalogApi) enrollmentCreate(ctx echo.Context) error {
	var data catalog.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	student, err := api.dir.GetByID(data.StudentID)
	if err != nil {
		if errors.Cause(err) == identity.ErrNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: "student not found"})
		}
		return errors.Wrap(err, "getting student")
	}

	enr, err := api.svc.EnrollStudent(student.ID, student.Name, student.Email, data.CourseID)
	if err != nil {
		switch errors.Cause(err) {
		case catalog.ErrCourseNotFound:
			return core.NewValidationError(nil, core.FieldError{Field: "course_id", Error: "course not found"})
		case catalog.ErrAlreadyEnrolled:
			return core.NewValidationError(err)
		}
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusCreated, enr)
}

func (api *catalogApi) enrollmentSetProgress(ctx echo.Context) error {
	var data catalog.UpdateProgress
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProgress")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	enr, err := api.svc.SetProgress(ctx.Param("id"), data.Progress)
	if err != nil {
		if errors.Cause(err) == catalog.ErrEnrollmentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "setting progress")
	}
	return ctx.JSON(http.StatusOK, enr)
}

func (api *catalogApi) enrollmentDelete(ctx echo.Context) error {
	if err := api.svc.DeleteEnrollments(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting enrollment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) reports(ctx echo.Context) error {
	report, err := api.svc.Reports()
	if err != nil {
		return errors.Wrap(err, "computing reports")
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *catalogApi) dashboard(ctx echo.Context) error {
	stats, err := api.svc.Dashboard()
	if err != nil {
		return errors.Wrap(err, "computing dashboard stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

type ProfileResponse struct {
	User         identity.Session `json:"user"`
	Enrollments  int              `json:"enrollments"`
	Completed    int              `json:"completed"`
	Certificates int              `json:"certificates"`
}
