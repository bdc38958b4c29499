package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"health-dashboard-go/internal/model"
	"health-dashboard-go/internal/repository"
)

// ScheduleService 定义了日程（预约、用药、活动）的业务操作。
type ScheduleService interface {
	AddAppointment(userID uint, a *model.Appointment) error
	AddMedication(userID uint, m *model.Medication) error
	AddActivity(userID uint, a *model.Activity) error
	GetSchedule(userID uint) ([]model.ScheduleItem, error)
	ToggleComplete(userID uint, kind model.ItemType, id uint) error
	DeleteItem(userID uint, kind model.ItemType, id uint) error
}

type scheduleService struct {
	repo repository.ScheduleRepository
}

// NewScheduleService 创建一个新的 ScheduleService 实例。
func NewScheduleService(repo repository.ScheduleRepository) ScheduleService {
	return &scheduleService{repo: repo}
}

// ParseItemType 解析路径中的条目类型，单复数均可。
func ParseItemType(s string) (model.ItemType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "appointment", "appointments":
		return model.ItemAppointment, nil
	case "medication", "medications":
		return model.ItemMedication, nil
	case "activity", "activities":
		return model.ItemActivity, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownItemType, s)
	}
}

func (s *scheduleService) AddAppointment(userID uint, a *model.Appointment) error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return fmt.Errorf("%w: appointment title is required", ErrInvalidInput)
	}
	if a.Date != "" {
		if _, err := time.Parse("2006-01-02", a.Date); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	if err := checkClock(a.Time); err != nil {
		return err
	}
	a.ID, a.UserID, a.Completed = 0, userID, false
	return s.repo.CreateAppointment(a)
}

func (s *scheduleService) AddMedication(userID uint, m *model.Medication) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Dosage = strings.TrimSpace(m.Dosage)
	if m.Name == "" || m.Dosage == "" {
		return fmt.Errorf("%w: medication name and dosage are required", ErrInvalidInput)
	}
	if err := checkClock(m.Time); err != nil {
		return err
	}
	m.ID, m.UserID, m.Completed = 0, userID, false
	return s.repo.CreateMedication(m)
}

func (s *scheduleService) AddActivity(userID uint, a *model.Activity) error {
	a.Type = strings.TrimSpace(a.Type)
	if a.Type == "" {
		return fmt.Errorf("%w: activity type is required", ErrInvalidInput)
	}
	if a.Duration <= 0 {
		return fmt.Errorf("%w: duration must be a positive number of minutes", ErrInvalidInput)
	}
	if err := checkClock(a.Time); err != nil {
		return err
	}
	a.ID, a.UserID, a.Completed = 0, userID, false
	return s.repo.CreateActivity(a)
}

// GetSchedule 合并三类条目并按时间排序。时间相同的条目保持 预约、用药、活动 的顺序，
// 没有时间的条目排在最前。
func (s *scheduleService) GetSchedule(userID uint) ([]model.ScheduleItem, error) {
	appointments, err := s.repo.ListAppointments(userID)
	if err != nil {
		return nil, err
	}
	medications, err := s.repo.ListMedications(userID)
	if err != nil {
		return nil, err
	}
	activities, err := s.repo.ListActivities(userID)
	if err != nil {
		return nil, err
	}

	items := make([]model.ScheduleItem, 0, len(appointments)+len(medications)+len(activities))
	for _, a := range appointments {
		detail := a.Doctor
		if detail != "" {
			detail = "Doctor: " + detail
		}
		items = append(items, model.ScheduleItem{
			ItemType: model.ItemAppointment, ID: a.ID, Time: a.Time, Title: a.Title,
			Detail: detail, Completed: a.Completed, Completable: true,
		})
	}
	for _, m := range medications {
		items = append(items, model.ScheduleItem{
			ItemType: model.ItemMedication, ID: m.ID, Time: m.Time, Title: m.Name,
			Detail: "Dosage: " + m.Dosage, Completed: m.Completed, Completable: true,
		})
	}
	for _, a := range activities {
		items = append(items, model.ScheduleItem{
			ItemType: model.ItemActivity, ID: a.ID, Time: a.Time, Title: a.Type,
			Detail: fmt.Sprintf("Duration: %d minutes", a.Duration), Completed: a.Completed,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Time < items[j].Time })
	return items, nil
}

// ToggleComplete 翻转预约或用药的完成状态；活动没有完成状态。
func (s *scheduleService) ToggleComplete(userID uint, kind model.ItemType, id uint) error {
	switch kind {
	case model.ItemAppointment, model.ItemMedication:
	case model.ItemActivity:
		return ErrNotCompletable
	default:
		return ErrUnknownItemType
	}
	found, err := s.repo.ToggleCompleted(kind, userID, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrItemNotFound
	}
	return nil
}

func (s *scheduleService) DeleteItem(userID uint, kind model.ItemType, id uint) error {
	switch kind {
	case model.ItemAppointment, model.ItemMedication, model.ItemActivity:
	default:
		return ErrUnknownItemType
	}
	found, err := s.repo.Delete(kind, userID, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrItemNotFound
	}
	return nil
}

// checkClock 校验 "HH:MM"，空字符串表示未设置时间。
func checkClock(v string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse("15:04", v); err != nil || len(v) != 5 {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}
	return nil
}
