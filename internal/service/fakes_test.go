package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"health-dashboard-go/internal/model"
	"health-dashboard-go/pkg/tasks"

	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*model.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(userID uint) (*model.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindWithPagination(offset, limit int) ([]model.User, int64, error) {
	ids := make([]uint, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []model.User
	for i := offset; i < len(ids) && i < offset+limit; i++ {
		out = append(out, *r.users[ids[i]])
	}
	return out, int64(len(ids)), nil
}

type fakeTokenRepo struct {
	blacklisted map[string]time.Duration
	checkErr    error
}

func (r *fakeTokenRepo) Blacklist(_ context.Context, token string, ttl time.Duration) error {
	if r.blacklisted == nil {
		r.blacklisted = map[string]time.Duration{}
	}
	r.blacklisted[token] = ttl
	return nil
}

func (r *fakeTokenRepo) IsBlacklisted(_ context.Context, token string) (bool, error) {
	if r.checkErr != nil {
		return false, r.checkErr
	}
	_, ok := r.blacklisted[token]
	return ok, nil
}

type fakeScheduleRepo struct {
	nextID       uint
	appointments []model.Appointment
	medications  []model.Medication
	activities   []model.Activity
}

func (r *fakeScheduleRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeScheduleRepo) CreateAppointment(a *model.Appointment) error {
	a.ID = r.id()
	r.appointments = append(r.appointments, *a)
	return nil
}

func (r *fakeScheduleRepo) CreateMedication(m *model.Medication) error {
	m.ID = r.id()
	r.medications = append(r.medications, *m)
	return nil
}

func (r *fakeScheduleRepo) CreateActivity(a *model.Activity) error {
	a.ID = r.id()
	r.activities = append(r.activities, *a)
	return nil
}

func (r *fakeScheduleRepo) ListAppointments(userID uint) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range r.appointments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) ListMedications(userID uint) ([]model.Medication, error) {
	var out []model.Medication
	for _, m := range r.medications {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) ListActivities(userID uint) ([]model.Activity, error) {
	var out []model.Activity
	for _, a := range r.activities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) ToggleCompleted(kind model.ItemType, userID, id uint) (bool, error) {
	switch kind {
	case model.ItemAppointment:
		for i := range r.appointments {
			if a := &r.appointments[i]; a.ID == id && a.UserID == userID {
				a.Completed = !a.Completed
				return true, nil
			}
		}
	case model.ItemMedication:
		for i := range r.medications {
			if m := &r.medications[i]; m.ID == id && m.UserID == userID {
				m.Completed = !m.Completed
				return true, nil
			}
		}
	default:
		return false, fmt.Errorf("unexpected kind %s", kind)
	}
	return false, nil
}

func (r *fakeScheduleRepo) Delete(kind model.ItemType, userID, id uint) (bool, error) {
	switch kind {
	case model.ItemAppointment:
		for i, a := range r.appointments {
			if a.ID == id && a.UserID == userID {
				r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
				return true, nil
			}
		}
	case model.ItemMedication:
		for i, m := range r.medications {
			if m.ID == id && m.UserID == userID {
				r.medications = append(r.medications[:i], r.medications[i+1:]...)
				return true, nil
			}
		}
	case model.ItemActivity:
		for i, a := range r.activities {
			if a.ID == id && a.UserID == userID {
				r.activities = append(r.activities[:i], r.activities[i+1:]...)
				return true, nil
			}
		}
	}
	return false, nil
}

type fakeConversationRepo struct {
	mu      sync.Mutex
	current map[uint]string
	history map[string][]model.ChatMessage
	failSet bool
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{current: map[uint]string{}, history: map[string][]model.ChatMessage{}}
}

func (r *fakeConversationRepo) GetOrCreateConversationID(_ context.Context, userID uint) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.current[userID]; ok {
		return id, nil
	}
	id := fmt.Sprintf("conv-%d", userID)
	r.current[userID] = id
	return id, nil
}

func (r *fakeConversationRepo) GetConversationID(_ context.Context, userID uint) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current[userID], nil
}

func (r *fakeConversationRepo) GetConversationHistory(_ context.Context, conversationID string) ([]model.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.ChatMessage{}, r.history[conversationID]...), nil
}

func (r *fakeConversationRepo) UpdateConversationHistory(_ context.Context, conversationID string, messages []model.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSet {
		return errors.New("redis unavailable")
	}
	r.history[conversationID] = messages
	return nil
}

func (r *fakeConversationRepo) GetAllUserConversationMappings(_ context.Context) (map[uint]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uint]string, len(r.current))
	for k, v := range r.current {
		out[k] = v
	}
	return out, nil
}

type fakeChatRecordRepo struct {
	records []model.ChatRecord
}

func (r *fakeChatRecordRepo) Create(_ context.Context, record *model.ChatRecord) error {
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeChatRecordRepo) FindRecentByUser(_ context.Context, userID uint, limit int) ([]model.ChatRecord, error) {
	var out []model.ChatRecord
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

type fakeDiseaseRepo struct {
	diseases []model.Disease
}

func (r *fakeDiseaseRepo) CreateIfAbsent(d *model.Disease) (bool, error) {
	for _, existing := range r.diseases {
		if existing.Name == d.Name {
			return false, nil
		}
	}
	d.ID = uint(len(r.diseases) + 1)
	r.diseases = append(r.diseases, *d)
	return true, nil
}

// FindByNameLike 模拟 MySQL 默认排序规则下不区分大小写的 LIKE。
func (r *fakeDiseaseRepo) FindByNameLike(name string) (*model.Disease, error) {
	for _, d := range r.diseases {
		if strings.Contains(strings.ToLower(d.Name), strings.ToLower(name)) {
			cp := d
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDiseaseRepo) ListNames() ([]string, error) {
	names := []string{}
	for _, d := range r.diseases {
		names = append(names, d.Name)
	}
	return names, nil
}

type fakePublisher struct {
	mu    sync.Mutex
	tasks []tasks.ChatTurnTask
}

func (p *fakePublisher) PublishTurn(_ context.Context, task tasks.ChatTurnTask) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tasks = append(p.tasks, task)
	return nil
}
