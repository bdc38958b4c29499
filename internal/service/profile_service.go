package service

import (
	"fmt"
	"math"
	"strings"

	"health-dashboard-go/internal/model"
	"health-dashboard-go/internal/repository"
)

// ProfileUpdate 是用户可修改的健康档案字段。邮箱不在此处修改。
type ProfileUpdate struct {
	FullName string  `json:"fullName"`
	Phone    string  `json:"phone"`
	Age      int     `json:"age"`
	HeightCm float64 `json:"heightCm"`
	WeightKg float64 `json:"weightKg"`
}

// ProfileService 定义了健康档案与 BMI 的业务操作。
type ProfileService interface {
	GetProfile(userID uint) (*model.User, error)
	UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error)
	GetBMI(userID uint) (model.BMI, error)
}

type profileService struct {
	userRepo repository.UserRepository
}

// NewProfileService 创建一个新的 ProfileService 实例。
func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *profileService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	if update.Age < 0 || update.Age > 150 {
		return nil, fmt.Errorf("%w: age must be between 0 and 150", ErrInvalidInput)
	}
	if update.HeightCm < 0 || update.WeightKg < 0 {
		return nil, fmt.Errorf("%w: height and weight cannot be negative", ErrInvalidInput)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user.FullName = strings.TrimSpace(update.FullName)
	user.Phone = strings.TrimSpace(update.Phone)
	user.Age = update.Age
	user.HeightCm = update.HeightCm
	user.WeightKg = update.WeightKg
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *profileService) GetBMI(userID uint) (model.BMI, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return model.BMI{}, ErrUserNotFound
	}
	return CalculateBMI(user.HeightCm, user.WeightKg), nil
}

// CalculateBMI 计算 体重 / (身高/100)^2 并保留一位小数。
// 身高或体重缺失时结果不可用：Value 为 0，Valid 为 false，没有分类。
func CalculateBMI(heightCm, weightKg float64) model.BMI {
	if heightCm <= 0 || weightKg <= 0 {
		return model.BMI{}
	}
	meters := heightCm / 100
	value := math.Round(weightKg/(meters*meters)*10) / 10
	return model.BMI{Value: value, Category: BMICategory(value), Valid: true}
}

// BMICategory 按保留一位小数后的 BMI 值分类。
func BMICategory(value float64) string {
	switch {
	case value < 18.5:
		return "Underweight"
	case value < 25:
		return "Normal weight"
	case value < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}
