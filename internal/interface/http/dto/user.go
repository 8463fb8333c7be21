package dto

// RegisterRequest HTTP注册请求
// validator tag说明:
// - required: 必填字段
// - email: 邮箱格式校验
// - min/max: 长度范围校验
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"password123"`
	Name     string `json:"name" binding:"required,min=2,max=50" example:"Alice"`
}

// RegisterResponse HTTP注册响应
type RegisterResponse struct {
	ID    uint   `json:"id" example:"1"`
	Email string `json:"email" example:"alice@example.com"`
	Name  string `json:"name" example:"Alice"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse HTTP登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in" example:"7200"` // Access Token有效期(秒)
}

// UserInfo 用户信息
type UserInfo struct {
	ID    uint   `json:"id" example:"1"`
	Email string `json:"email" example:"alice@example.com"`
	Name  string `json:"name" example:"Alice"`
}
