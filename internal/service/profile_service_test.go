package service

import (
	"errors"
	"testing"

	"health-dashboard-go/internal/model"
)

func TestCalculateBMI(t *testing.T) {
	testCases := []struct {
		heightCm    float64
		weightKg    float64
		want        model.BMI
		description string
	}{
		{175, 70, model.BMI{Value: 22.9, Category: "Normal weight", Valid: true}, "Typical adult"},
		{180, 55, model.BMI{Value: 17, Category: "Underweight", Valid: true}, "Underweight"},
		{170, 80, model.BMI{Value: 27.7, Category: "Overweight", Valid: true}, "Overweight"},
		{160, 90, model.BMI{Value: 35.2, Category: "Obese", Valid: true}, "Obese"},
		{0, 70, model.BMI{}, "Missing height"},
		{175, 0, model.BMI{}, "Missing weight"},
		{-10, 70, model.BMI{}, "Negative height"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := CalculateBMI(tc.heightCm, tc.weightKg); got != tc.want {
				t.Errorf("Expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestBMICategoryBoundaries(t *testing.T) {
	testCases := []struct {
		value float64
		want  string
	}{
		{18.4, "Underweight"},
		{18.5, "Normal weight"},
		{24.9, "Normal weight"},
		{25, "Overweight"},
		{29.9, "Overweight"},
		{30, "Obese"},
	}

	for _, tc := range testCases {
		if got := BMICategory(tc.value); got != tc.want {
			t.Errorf("BMICategory(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestUpdateProfile(t *testing.T) {
	users := newFakeUserRepo()
	user := &model.User{Email: "amy@example.com", Role: model.RoleUser}
	if err := users.Create(user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	svc := NewProfileService(users)

	updated, err := svc.UpdateProfile(user.ID, ProfileUpdate{FullName: " Amy ", Phone: "555-0100", Age: 34, HeightCm: 175, WeightKg: 70})
	if err != nil {
		t.Fatalf("Failed to update profile: %v", err)
	}
	if updated.FullName != "Amy" || updated.Email != "amy@example.com" || updated.Age != 34 {
		t.Errorf("Unexpected profile: %+v", updated)
	}

	bmi, err := svc.GetBMI(user.ID)
	if err != nil {
		t.Fatalf("Failed to get BMI: %v", err)
	}
	if !bmi.Valid || bmi.Value != 22.9 {
		t.Errorf("Unexpected BMI: %+v", bmi)
	}

	for _, bad := range []ProfileUpdate{{Age: -1}, {Age: 151}, {HeightCm: -1}, {WeightKg: -5}} {
		if _, err := svc.UpdateProfile(user.ID, bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput for %+v, got %v", bad, err)
		}
	}
	if _, err := svc.GetProfile(42); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
