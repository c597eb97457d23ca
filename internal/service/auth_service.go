package service

import (
	"time"

	"campuslearn_backend/internal/config"
	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/repository"
	"campuslearn_backend/internal/util"
	"campuslearn_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Live     *config.Live
}

func NewAuthService(userRepo *repository.UserRepository, live *config.Live) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Live:     live,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	if user.Role == "" {
		user.Role = model.Student
	}
	user.Status = model.StatusActive
	return s.UserRepo.Create(user)
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrUserNotFound
	}

	if user.Status == model.StatusSuspended {
		return "", util.ErrAccountSuspended
	}

	user.LastLogin = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		logger.Log.Warn("last-login update failed", zap.Uint("user", user.ID), zap.Error(err))
	}

	jwtCfg := s.Live.Load().JWT
	return util.GenerateJWT(user, jwtCfg.Secret, jwtCfg.ExpireTime)
}

// GetCurrentUser resolves the request principal to a full user record.
func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
