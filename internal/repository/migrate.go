package repository

import (
	"health-dashboard-go/internal/model"

	"gorm.io/gorm"
)

// Migrate 为所有持久化模型创建或更新表结构。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Appointment{},
		&model.Medication{},
		&model.Activity{},
		&model.Disease{},
		&model.ChatRecord{},
	)
}
