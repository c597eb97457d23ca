package controller

import (
	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/service"
	"campuslearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// List returns users, optionally filtered by role. Admin only.
// @Summary List users
// @Tags Users
// @Security ApiKeyAuth
// @Produce json
// @Router /api/admin/users [get]
func (c *UserController) List(ctx *gin.Context) {
	role := model.UserRole(ctx.Query("role"))
	page := int(util.MustParseUint(ctx.DefaultQuery("page", "1")))
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "20")))

	users, total, err := c.userService.List(role, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// Get returns a single user's public record.
func (c *UserController) Get(ctx *gin.Context) {
	user, err := c.userService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == util.ErrUserNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile updates name/avatar of the current user.
// @Summary Update profile
// @Tags Users
// @Security ApiKeyAuth
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.UpdateProfileInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.userService.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UploadAvatar stores a profile image and returns its URL.
// @Summary Upload avatar
// @Tags Users
// @Security ApiKeyAuth
// @Router /api/user/avatar/upload [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

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

	if _, err := util.ValidateMimeType(file, util.AllowedAvatarMimeTypes); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := c.userService.UploadAvatar(ctx.Request.Context(), claims.UserID, file, fileHeader.Size, fileHeader.Filename, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}

// Subscribe follows another user's topics.
func (c *UserController) Subscribe(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	targetID := util.MustParseUint(ctx.Param("id"))

	if err := c.userService.Subscribe(claims.UserID, targetID); err != nil {
		if err == util.ErrUserNotFound {
			util.NotFound(ctx)
			return
		}
		if err == util.ErrPermissionDenied {
			util.BadRequest(ctx, "cannot subscribe to yourself")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *UserController) Unsubscribe(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	targetID := util.MustParseUint(ctx.Param("id"))

	if err := c.userService.Unsubscribe(claims.UserID, targetID); err != nil {
		if err == util.ErrUserNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type patchUserRequest struct {
	Role   model.UserRole   `json:"role"`
	Status model.UserStatus `json:"status"`
}

// Patch lets an admin change a user's role or status.
// @Summary Patch user
// @Tags Users
// @Security ApiKeyAuth
// @Router /api/admin/users/{id} [patch]
func (c *UserController) Patch(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("id"))

	var req patchUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var user *model.User
	var err error
	if req.Role != "" {
		user, err = c.userService.SetRole(userID, req.Role)
		if err != nil {
			c.patchError(ctx, err)
			return
		}
	}
	if req.Status != "" {
		user, err = c.userService.SetStatus(userID, req.Status)
		if err != nil {
			c.patchError(ctx, err)
			return
		}
	}

	if user == nil {
		util.BadRequest(ctx, "nothing to update")
		return
	}
	util.Success(ctx, user)
}

func (c *UserController) patchError(ctx *gin.Context, err error) {
	switch err {
	case util.ErrUserNotFound:
		util.NotFound(ctx)
	case util.ErrPermissionDenied:
		util.BadRequest(ctx, "invalid role or status")
	default:
		util.LogInternalError(ctx, err)
	}
}
