package service

import (
	"errors"
	"testing"

	"health-dashboard-go/internal/model"
)

func TestGetScheduleOrdering(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewScheduleService(repo)

	mustNil(t, svc.AddActivity(1, &model.Activity{Type: "Walking", Duration: 30, Time: "08:00"}))
	mustNil(t, svc.AddMedication(1, &model.Medication{Name: "Metformin", Dosage: "500mg", Time: "08:00"}))
	mustNil(t, svc.AddAppointment(1, &model.Appointment{Title: "Check-up", Doctor: "Dr. Rao", Date: "2024-05-01", Time: "14:30"}))
	mustNil(t, svc.AddAppointment(1, &model.Appointment{Title: "Call clinic"}))
	mustNil(t, svc.AddMedication(1, &model.Medication{Name: "Vitamin D", Dosage: "1000 IU", Time: "07:15"}))
	mustNil(t, svc.AddMedication(2, &model.Medication{Name: "Other user", Dosage: "1", Time: "06:00"}))

	items, err := svc.GetSchedule(1)
	if err != nil {
		t.Fatalf("Failed to get schedule: %v", err)
	}

	wantTitles := []string{"Call clinic", "Vitamin D", "Metformin", "Walking", "Check-up"}
	if len(items) != len(wantTitles) {
		t.Fatalf("Expected %d items, got %d", len(wantTitles), len(items))
	}
	for i, want := range wantTitles {
		if items[i].Title != want {
			t.Errorf("Item %d: expected %q, got %q", i, want, items[i].Title)
		}
	}

	walking := items[3]
	if walking.ItemType != model.ItemActivity || walking.Detail != "Duration: 30 minutes" || walking.Completable {
		t.Errorf("Unexpected activity item: %+v", walking)
	}
	metformin := items[2]
	if metformin.Detail != "Dosage: 500mg" || !metformin.Completable || metformin.Completed {
		t.Errorf("Unexpected medication item: %+v", metformin)
	}
}

func TestAddScheduleValidation(t *testing.T) {
	svc := NewScheduleService(&fakeScheduleRepo{})

	testCases := []struct {
		add         func() error
		description string
	}{
		{func() error { return svc.AddAppointment(1, &model.Appointment{Title: " "}) }, "Appointment without title"},
		{func() error { return svc.AddAppointment(1, &model.Appointment{Title: "x", Date: "01/05/2024"}) }, "Bad date"},
		{func() error { return svc.AddMedication(1, &model.Medication{Name: "Aspirin"}) }, "Medication without dosage"},
		{func() error { return svc.AddMedication(1, &model.Medication{Name: "Aspirin", Dosage: "1", Time: "25:00"}) }, "Bad time"},
		{func() error { return svc.AddMedication(1, &model.Medication{Name: "Aspirin", Dosage: "1", Time: "8:00"}) }, "Unpadded time"},
		{func() error { return svc.AddActivity(1, &model.Activity{Type: "Yoga"}) }, "Activity without duration"},
		{func() error { return svc.AddActivity(1, &model.Activity{Duration: 10}) }, "Activity without type"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if err := tc.add(); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestToggleAndDelete(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewScheduleService(repo)

	med := &model.Medication{Name: "Metformin", Dosage: "500mg", Completed: true}
	mustNil(t, svc.AddMedication(1, med))
	act := &model.Activity{Type: "Walking", Duration: 30}
	mustNil(t, svc.AddActivity(1, act))

	if repo.medications[0].Completed {
		t.Error("New items should start not completed")
	}
	mustNil(t, svc.ToggleComplete(1, model.ItemMedication, med.ID))
	if !repo.medications[0].Completed {
		t.Error("Expected medication to be completed after toggle")
	}
	mustNil(t, svc.ToggleComplete(1, model.ItemMedication, med.ID))
	if repo.medications[0].Completed {
		t.Error("Expected second toggle to clear completion")
	}

	if err := svc.ToggleComplete(1, model.ItemActivity, act.ID); !errors.Is(err, ErrNotCompletable) {
		t.Errorf("Expected ErrNotCompletable, got %v", err)
	}
	if err := svc.ToggleComplete(2, model.ItemMedication, med.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound for other user, got %v", err)
	}
	if err := svc.ToggleComplete(1, model.ItemType("meal"), 1); !errors.Is(err, ErrUnknownItemType) {
		t.Errorf("Expected ErrUnknownItemType, got %v", err)
	}

	mustNil(t, svc.DeleteItem(1, model.ItemActivity, act.ID))
	if err := svc.DeleteItem(1, model.ItemActivity, act.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound on second delete, got %v", err)
	}
}

func TestParseItemType(t *testing.T) {
	testCases := []struct {
		in   string
		want model.ItemType
	}{
		{"appointments", model.ItemAppointment},
		{"Medication", model.ItemMedication},
		{"activities", model.ItemActivity},
		{"activity", model.ItemActivity},
	}
	for _, tc := range testCases {
		got, err := ParseItemType(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseItemType(%q) = %q, %v", tc.in, got, err)
		}
	}
	if _, err := ParseItemType("meals"); !errors.Is(err, ErrUnknownItemType) {
		t.Errorf("Expected ErrUnknownItemType, got %v", err)
	}
}

func mustNil(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}
