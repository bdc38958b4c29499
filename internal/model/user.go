// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User 对应 users 表，同时保存登录凭证与健康档案。
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Role     string `gorm:"type:varchar(20);not null;default:USER" json:"role"`
	FullName string `gorm:"type:varchar(100)" json:"fullName"`
	Phone    string `gorm:"type:varchar(30)" json:"phone"`
	Age      int    `json:"age"`
	// 身高（厘米）与体重（千克），0 表示未填写
	HeightCm  float64   `json:"heightCm"`
	WeightKg  float64   `json:"weightKg"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// BMI 是根据身高体重计算出的体质指数。
type BMI struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
	Valid    bool    `json:"valid"`
}
