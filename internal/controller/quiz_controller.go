package controller

import (
	"campuslearn_backend/internal/service"
	"campuslearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	quizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// Create stores a quiz with its questions. Staff only.
// @Summary Create quiz
// @Tags Quizzes
// @Security ApiKeyAuth
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CreateQuizInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.quizService.Create(claims.UserID, req)
	if err != nil {
		if err == util.ErrInvalidQuestion {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

func (c *QuizController) Get(ctx *gin.Context) {
	quiz, err := c.quizService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == util.ErrQuizNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

func (c *QuizController) ListByTopic(ctx *gin.Context) {
	quizzes, err := c.quizService.ListByTopic(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

func (c *QuizController) Delete(ctx *gin.Context) {
	if err := c.quizService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if err == util.ErrQuizNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type submitQuizRequest struct {
	Answers map[int]int `json:"answers" binding:"required"`
}

// Submit grades the answers, persists the attempt and returns the score.
// @Summary Submit quiz answers
// @Tags Quizzes
// @Security ApiKeyAuth
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req submitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.quizService.Submit(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Answers)
	if err != nil {
		switch err {
		case util.ErrQuizNotFound:
			util.NotFound(ctx)
		case util.ErrIncompleteAnswers:
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, attempt)
}

func (c *QuizController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	attempts, err := c.quizService.ListAttempts(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}
