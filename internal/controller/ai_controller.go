package controller

import (
	"errors"
	"net/http"

	"campuslearn_backend/internal/service"
	"campuslearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	flows *service.FlowService
}

func NewAIController(flows *service.FlowService) *AIController {
	return &AIController{flows: flows}
}

func (c *AIController) flowError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrAISchemaValidation) {
		util.Error(ctx, http.StatusBadGateway, err.Error())
		return
	}
	util.LogInternalError(ctx, err)
}

// GenerateFeedback drafts grading feedback for a submission. Staff only.
// @Summary Generate feedback draft
// @Tags AI
// @Security ApiKeyAuth
// @Router /api/ai/feedback [post]
func (c *AIController) GenerateFeedback(ctx *gin.Context) {
	var req service.FeedbackInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, err := c.flows.GenerateFeedback(req)
	if err != nil {
		c.flowError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// GenerateQuiz builds a multiple-choice quiz from source text. Staff only.
// @Summary Generate quiz
// @Tags AI
// @Security ApiKeyAuth
// @Router /api/ai/quiz [post]
func (c *AIController) GenerateQuiz(ctx *gin.Context) {
	var req service.QuizGenInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Count == 0 {
		req.Count = 5
	}

	out, err := c.flows.GenerateQuiz(req)
	if err != nil {
		c.flowError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// TutorAnswer answers a student question, grounded on matching topics when
// any exist.
// @Summary Ask the AI tutor
// @Tags AI
// @Security ApiKeyAuth
// @Router /api/ai/tutor [post]
func (c *AIController) TutorAnswer(ctx *gin.Context) {
	var req service.TutorInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, err := c.flows.TutorAnswer(req)
	if err != nil {
		c.flowError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// Summarize condenses lesson or topic content.
// @Summary Summarize content
// @Tags AI
// @Security ApiKeyAuth
// @Router /api/ai/summarize [post]
func (c *AIController) Summarize(ctx *gin.Context) {
	var req service.SummarizeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, err := c.flows.Summarize(req)
	if err != nil {
		c.flowError(ctx, err)
		return
	}
	util.Success(ctx, out)
}
