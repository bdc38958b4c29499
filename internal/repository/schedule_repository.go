package repository

import (
	"fmt"

	"health-dashboard-go/internal/model"

	"gorm.io/gorm"
)

// ScheduleRepository 定义了预约、用药与活动三类日程的持久化操作。
// 所有查询都按 userID 隔离。
type ScheduleRepository interface {
	CreateAppointment(a *model.Appointment) error
	CreateMedication(m *model.Medication) error
	CreateActivity(a *model.Activity) error
	ListAppointments(userID uint) ([]model.Appointment, error)
	ListMedications(userID uint) ([]model.Medication, error)
	ListActivities(userID uint) ([]model.Activity, error)
	// ToggleCompleted 翻转完成状态，返回是否找到该条目。
	ToggleCompleted(kind model.ItemType, userID, id uint) (bool, error)
	// Delete 删除条目，返回是否找到该条目。
	Delete(kind model.ItemType, userID, id uint) (bool, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository 创建一个新的 ScheduleRepository 实例。
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) CreateAppointment(a *model.Appointment) error {
	return r.db.Create(a).Error
}

func (r *scheduleRepository) CreateMedication(m *model.Medication) error {
	return r.db.Create(m).Error
}

func (r *scheduleRepository) CreateActivity(a *model.Activity) error {
	return r.db.Create(a).Error
}

func (r *scheduleRepository) ListAppointments(userID uint) ([]model.Appointment, error) {
	var items []model.Appointment
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&items).Error
	return items, err
}

func (r *scheduleRepository) ListMedications(userID uint) ([]model.Medication, error) {
	var items []model.Medication
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&items).Error
	return items, err
}

func (r *scheduleRepository) ListActivities(userID uint) ([]model.Activity, error) {
	var items []model.Activity
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&items).Error
	return items, err
}

func (r *scheduleRepository) ToggleCompleted(kind model.ItemType, userID, id uint) (bool, error) {
	m, err := modelFor(kind)
	if err != nil {
		return false, err
	}
	res := r.db.Model(m).
		Where("id = ? AND user_id = ?", id, userID).
		Update("completed", gorm.Expr("NOT completed"))
	return res.RowsAffected > 0, res.Error
}

func (r *scheduleRepository) Delete(kind model.ItemType, userID, id uint) (bool, error) {
	m, err := modelFor(kind)
	if err != nil {
		return false, err
	}
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(m)
	return res.RowsAffected > 0, res.Error
}

func modelFor(kind model.ItemType) (interface{}, error) {
	switch kind {
	case model.ItemAppointment:
		return &model.Appointment{}, nil
	case model.ItemMedication:
		return &model.Medication{}, nil
	case model.ItemActivity:
		return &model.Activity{}, nil
	default:
		return nil, fmt.Errorf("unknown schedule item type: %s", kind)
	}
}
