package controller

import (
	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/service"
	"campuslearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	assignments *service.AssignmentService
	authService *service.AuthService
}

func NewAssignmentController(assignments *service.AssignmentService, authService *service.AuthService) *AssignmentController {
	return &AssignmentController{assignments: assignments, authService: authService}
}

// Create adds an assignment to a course. Staff only.
// @Summary Create assignment
// @Tags Assignments
// @Security ApiKeyAuth
// @Router /api/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CreateAssignmentInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.assignments.Create(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, assignment)
}

func (c *AssignmentController) Get(ctx *gin.Context) {
	assignment, err := c.assignments.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == util.ErrAssignmentNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

func (c *AssignmentController) ListByCourse(ctx *gin.Context) {
	list, err := c.assignments.ListByCourse(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

func (c *AssignmentController) Delete(ctx *gin.Context) {
	if err := c.assignments.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if err == util.ErrAssignmentNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Submit records the current student's submission for an assignment.
// Resubmitting is rejected.
// @Summary Submit assignment
// @Tags Assignments
// @Security ApiKeyAuth
// @Router /api/assignments/{id}/submissions [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.SubmitInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.assignments.Submit(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		switch err {
		case util.ErrAssignmentNotFound:
			util.NotFound(ctx)
		case util.ErrAlreadySubmitted:
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, submission)
}

// ListSubmissions returns submissions scoped by role: staff see the queue for
// their assigned courses, students see their own history.
func (c *AssignmentController) ListSubmissions(ctx *gin.Context) {
	user := c.authService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var (
		list []model.Submission
		err  error
	)
	if user.IsStaff() {
		list, err = c.assignments.ListForStaff(user)
	} else {
		list, err = c.assignments.ListForStudent(user.ID)
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if list == nil {
		list = []model.Submission{}
	}
	util.Success(ctx, list)
}

// Grade marks a submission and notifies the student.
// @Summary Grade submission
// @Tags Assignments
// @Security ApiKeyAuth
// @Router /api/submissions/{id}/grade [post]
func (c *AssignmentController) Grade(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.GradeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.assignments.Grade(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if err == util.ErrSubmissionNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}
