package controller

import (
	"fmt"
	"path/filepath"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/repository"
	"campuslearn_backend/internal/service"
	"campuslearn_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TopicController struct {
	topicService *service.TopicService
	authService  *service.AuthService
	storage      *service.StorageService
}

func NewTopicController(topicService *service.TopicService, authService *service.AuthService, storage *service.StorageService) *TopicController {
	return &TopicController{
		topicService: topicService,
		authService:  authService,
		storage:      storage,
	}
}

// Create opens a help topic authored by the current user.
// @Summary Create topic
// @Tags Topics
// @Security ApiKeyAuth
// @Router /api/topics [post]
func (c *TopicController) Create(ctx *gin.Context) {
	author := c.authService.GetCurrentUser(ctx)
	if author == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateTopicInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.topicService.Create(author, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, topic)
}

// List returns topics filtered by course, author or status.
func (c *TopicController) List(ctx *gin.Context) {
	f := repository.TopicFilter{
		CourseID: util.MustParseUint(ctx.Query("courseId")),
		AuthorID: util.MustParseUint(ctx.Query("authorId")),
		Status:   model.TopicStatus(ctx.Query("status")),
		Page:     int(util.MustParseUint(ctx.DefaultQuery("page", "1"))),
		Limit:    int(util.MustParseUint(ctx.DefaultQuery("limit", "20"))),
	}

	topics, total, err := c.topicService.List(f)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: topics, Total: total, Page: f.Page, Limit: f.Limit})
}

func (c *TopicController) Get(ctx *gin.Context) {
	topic, err := c.topicService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == util.ErrTopicNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

type replyRequest struct {
	Body string `json:"body" binding:"required"`
}

// Reply appends a reply and fans out notifications to subscribers and staff.
// @Summary Reply to topic
// @Tags Topics
// @Security ApiKeyAuth
// @Router /api/topics/{id}/replies [post]
func (c *TopicController) Reply(ctx *gin.Context) {
	author := c.authService.GetCurrentUser(ctx)
	if author == nil {
		util.Unauthorized(ctx)
		return
	}

	var req replyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.topicService.Reply(author, util.MustParseUint(ctx.Param("id")), req.Body)
	if err != nil {
		switch err {
		case util.ErrTopicNotFound:
			util.NotFound(ctx)
		case util.ErrTopicClosed:
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, reply)
}

type statusRequest struct {
	Status model.TopicStatus `json:"status" binding:"required"`
}

func (c *TopicController) SetStatus(ctx *gin.Context) {
	var req statusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.topicService.SetStatus(util.MustParseUint(ctx.Param("id")), req.Status); err != nil {
		switch err {
		case util.ErrTopicNotFound:
			util.NotFound(ctx)
		case util.ErrInvalidTopicStatus:
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

func (c *TopicController) Subscribe(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.topicService.Subscribe(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		if err == util.ErrTopicNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *TopicController) Unsubscribe(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.topicService.Unsubscribe(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		if err == util.ErrTopicNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadMaterial attaches a learning file to a topic.
// @Summary Upload topic material
// @Tags Topics
// @Security ApiKeyAuth
// @Router /api/topics/{id}/materials [post]
func (c *TopicController) UploadMaterial(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	topicID := util.MustParseUint(ctx.Param("id"))

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, util.AllowedMaterialMimeTypes)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	key := fmt.Sprintf("materials/%d/%s%s", topicID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	url, err := c.storage.Upload(ctx.Request.Context(), key, file, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	material := &model.Material{
		TopicID:     topicID,
		Name:        fileHeader.Filename,
		ContentType: mimeType,
		URL:         url,
		UploaderID:  claims.UserID,
	}
	if err := c.topicService.AttachMaterial(material); err != nil {
		if err == util.ErrTopicNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, material)
}
