package dto

// RegisterDTO 用户注册/登录，user_id 为外部身份（如 Telegram chat id）
type RegisterDTO struct {
	UserID   int64  `json:"user_id" validate:"required"`
	Username string `json:"username,omitempty" validate:"omitempty,max=64"`
}

// TokenDTO 签发的访问令牌
type TokenDTO struct {
	Token string `json:"token"`
	IsNew bool   `json:"is_new"`
}

// BroadcastDTO 管理员广播
type BroadcastDTO struct {
	Text string `json:"text" validate:"required,max=4096"`
}

// BroadcastResultDTO 广播结果统计
type BroadcastResultDTO struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}
