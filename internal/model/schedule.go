package model

import "time"

// ItemType 区分日程条目的种类。
type ItemType string

const (
	ItemAppointment ItemType = "appointment"
	ItemMedication  ItemType = "medication"
	ItemActivity    ItemType = "activity"
)

// Appointment 对应 appointments 表。
type Appointment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Doctor    string    `gorm:"type:varchar(100)" json:"doctor"`
	Date      string    `gorm:"type:varchar(10)" json:"date"` // YYYY-MM-DD
	Time      string    `gorm:"type:varchar(5)" json:"time"`  // HH:MM
	Notes     string    `gorm:"type:text" json:"notes"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Medication 对应 medications 表。
type Medication struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Dosage    string    `gorm:"type:varchar(100);not null" json:"dosage"`
	Time      string    `gorm:"type:varchar(5)" json:"time"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Medication) TableName() string {
	return "medications"
}

// Activity 对应 activities 表。
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Type      string    `gorm:"type:varchar(100);not null" json:"type"`
	Duration  int       `gorm:"not null" json:"duration"` // 分钟
	Time      string    `gorm:"type:varchar(5)" json:"time"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Activity) TableName() string {
	return "activities"
}

// ScheduleItem 是合并日程中的一项，供前端统一渲染。
type ScheduleItem struct {
	ItemType    ItemType `json:"itemType"`
	ID          uint     `json:"id"`
	Time        string   `json:"time"`
	Title       string   `json:"title"`
	Detail      string   `json:"detail,omitempty"`
	Completed   bool     `json:"completed"`
	Completable bool     `json:"completable"`
}
