package controller

import (
	"os"
	"path/filepath"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/service"
	"campuslearn_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseController struct {
	courseService     *service.CourseService
	enrollmentService *service.EnrollmentService
}

func NewCourseController(courseService *service.CourseService, enrollmentService *service.EnrollmentService) *CourseController {
	return &CourseController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

// List returns courses. Students only see published ones.
// @Summary List courses
// @Tags Courses
// @Security ApiKeyAuth
// @Produce json
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	publishedOnly := claims == nil || claims.Role == model.Student

	page := int(util.MustParseUint(ctx.DefaultQuery("page", "1")))
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "20")))

	courses, total, err := c.courseService.List(publishedOnly, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// Get returns a course with its modules and lessons.
func (c *CourseController) Get(ctx *gin.Context) {
	course, err := c.courseService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == util.ErrCourseNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Create makes a new unpublished course.
// @Summary Create course
// @Tags Courses
// @Security ApiKeyAuth
// @Router /api/staff/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req service.CreateCourseInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.courseService.Create(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

func (c *CourseController) Update(ctx *gin.Context) {
	var req service.UpdateCourseInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.courseService.Update(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if err == util.ErrCourseNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

type publishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

func (c *CourseController) SetPublished(ctx *gin.Context) {
	var req publishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.courseService.SetPublished(util.MustParseUint(ctx.Param("id")), *req.Published); err != nil {
		if err == util.ErrCourseNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *CourseController) Delete(ctx *gin.Context) {
	if err := c.courseService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if err == util.ErrCourseNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type assignRequest struct {
	Role    service.AssignmentRole `json:"role" binding:"required"`
	UserIDs []uint                 `json:"userIds"`
}

// Assign replaces the course's student/lecturer/tutor list; the diff is
// applied to the affected users atomically.
// @Summary Assign users to a course
// @Tags Courses
// @Security ApiKeyAuth
// @Router /api/staff/courses/{id}/assign [put]
func (c *CourseController) Assign(ctx *gin.Context) {
	var req assignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	change, err := c.enrollmentService.Assign(util.MustParseUint(ctx.Param("id")), req.Role, req.UserIDs)
	if err != nil {
		switch err {
		case util.ErrCourseNotFound, util.ErrUserNotFound:
			util.NotFound(ctx)
		case util.ErrPermissionDenied:
			util.BadRequest(ctx, "unknown assignment role")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, change)
}

func (c *CourseController) AddModule(ctx *gin.Context) {
	var req service.ModuleInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	mod, err := c.courseService.AddModule(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if err == util.ErrCourseNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, mod)
}

func (c *CourseController) UpdateModule(ctx *gin.Context) {
	var req service.ModuleInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	mod, err := c.courseService.UpdateModule(util.MustParseUint(ctx.Param("moduleId")), req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, mod)
}

func (c *CourseController) DeleteModule(ctx *gin.Context) {
	if err := c.courseService.DeleteModule(util.MustParseUint(ctx.Param("moduleId"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *CourseController) AddLesson(ctx *gin.Context) {
	var req service.LessonInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.courseService.AddLesson(util.MustParseUint(ctx.Param("moduleId")), req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, lesson)
}

func (c *CourseController) UpdateLesson(ctx *gin.Context) {
	var req service.LessonInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.courseService.UpdateLesson(util.MustParseUint(ctx.Param("lessonId")), req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

func (c *CourseController) DeleteLesson(ctx *gin.Context) {
	if err := c.courseService.DeleteLesson(util.MustParseUint(ctx.Param("lessonId"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadLessonMedia accepts a video/pdf upload for a lesson. The file is
// spooled to disk first so videos can be probed before hitting blob storage.
// @Summary Upload lesson media
// @Tags Courses
// @Security ApiKeyAuth
// @Router /api/staff/lessons/{lessonId}/media [post]
func (c *CourseController) UploadLessonMedia(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	tempPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := ctx.SaveUploadedFile(fileHeader, tempPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tempPath)

	contentType := fileHeader.Header.Get("Content-Type")
	lesson, err := c.courseService.UploadLessonMedia(ctx.Request.Context(), lessonID, tempPath, fileHeader.Filename, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// CompleteLesson marks a lesson done for the current user.
func (c *CourseController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	if err := c.courseService.CompleteLesson(claims.UserID, lessonID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *CourseController) ListCompletions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	completions, err := c.courseService.ListCompletions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, completions)
}
