package handler

import (
	"PriceTracker/internal/api/dto"
	"PriceTracker/internal/pkg/response"
	"PriceTracker/internal/pkg/security"
	"PriceTracker/internal/pkg/util"
	"PriceTracker/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register 记录用户并签发访问令牌
func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	if err := c.ShouldBind(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}

	isNew, err := s.userSvc.Register(c.Request.Context(), registerDTO.UserID, registerDTO.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := security.GenerateToken(registerDTO.UserID, registerDTO.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.TokenDTO{Token: token, IsNew: isNew})
}

// Broadcast 管理员向全部用户下发消息
func (s *UserHandler) Broadcast(c *gin.Context) {
	var broadcastDTO dto.BroadcastDTO
	if err := c.ShouldBind(&broadcastDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&broadcastDTO); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.userSvc.Broadcast(c.Request.Context(), broadcastDTO.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
