package service

import (
	"PriceTracker/internal/api/dto"
	"PriceTracker/internal/pkg/mongo"
	"PriceTracker/internal/pkg/telegram"
	"context"
	log "log/slog"
	"time"
)

// broadcastDelay 逐个收件人之间的限速间隔，避免触发 Bot API 限流
const broadcastDelay = time.Second

type UserService interface {
	Register(ctx context.Context, userID int64, username string) (bool, error)
	Broadcast(ctx context.Context, text string) (*dto.BroadcastResultDTO, error)
}

type UserServiceImpl struct {
	userRepo mongo.UserRepo
	sender   telegram.Sender
}

func NewUserService(userRepo mongo.UserRepo, sender telegram.Sender) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		sender:   sender,
	}
}

// Register 记录用户，返回是否首次出现
func (s *UserServiceImpl) Register(ctx context.Context, userID int64, username string) (bool, error) {
	isNew, err := s.userRepo.Upsert(ctx, userID, username)
	if err != nil {
		return false, err
	}
	if isNew {
		log.InfoContext(ctx, "new user registered", "user_id", userID, "username", username)
	}
	return isNew, nil
}

// Broadcast 向全部用户逐个下发消息，单个失败不阻断其余投递
func (s *UserServiceImpl) Broadcast(ctx context.Context, text string) (*dto.BroadcastResultDTO, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.BroadcastResultDTO{Total: len(users)}
	for i, user := range users {
		if ctx.Err() != nil {
			break
		}
		if err := s.sender.SendMessage(ctx, user.UserID, text); err != nil {
			log.ErrorContext(ctx, "broadcast to user failed", "user_id", user.UserID, "err", err)
			result.Failed++
		} else {
			result.Success++
		}
		if i < len(users)-1 {
			time.Sleep(broadcastDelay)
		}
	}

	return result, nil
}
