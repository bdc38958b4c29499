package model

import "time"

// Disease 对应 diseases 表。四个文本列按行保存要点。
type Disease struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Symptoms     string    `gorm:"type:text;not null" json:"-"`
	WarningSigns string    `gorm:"type:text;not null" json:"-"`
	Management   string    `gorm:"type:text;not null" json:"-"`
	Diet         string    `gorm:"type:text;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Disease) TableName() string {
	return "diseases"
}

// DiseaseInfo 是返回给前端的疾病详情。
type DiseaseInfo struct {
	Name         string   `json:"name"`
	Symptoms     []string `json:"symptoms"`
	WarningSigns []string `json:"warningSigns"`
	Management   []string `json:"management"`
	Diet         []string `json:"diet"`
}
