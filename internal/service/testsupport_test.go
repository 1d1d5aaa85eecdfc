package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"reflect360-be/internal/entity"
	"reflect360-be/internal/model"
	"reflect360-be/internal/repository/contract"
	"reflect360-be/internal/repository/specification"
	"reflect360-be/internal/repository/unitofwork"
	"reflect360-be/pkg/llm"

	"github.com/google/uuid"
)

// fakeLLM returns canned responses or a fixed error.
type fakeLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	calls    int
	lastMsgs []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastMsgs = history
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

// In-memory repositories. Specifications are interpreted by type switch since
// there is no SQL to apply them to.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.Id] = &cp
	return nil
}

func (r *fakeUserRepo) match(u *entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByEmail:
			if u.Email != spec.Email {
				return false
			}
		case specification.ByID:
			if u.Id != spec.ID {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if r.match(u, specs) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if r.match(u, specs) {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userId uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userId]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeFeedbackRepo struct {
	mu        sync.Mutex
	responses []*entity.FeedbackResponse
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, response *entity.FeedbackResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *response
	r.responses = append(r.responses, &cp)
	return nil
}

func (r *fakeFeedbackRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeedbackResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var surveyFilter *uuid.UUID
	relationshipFilter := ""
	desc := false
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.BySurveyID:
			id := spec.SurveyID
			surveyFilter = &id
		case specification.ByRelationship:
			relationshipFilter = spec.Relationship
		case specification.OrderBy:
			desc = spec.Desc
		}
	}

	out := []*entity.FeedbackResponse{}
	for _, resp := range r.responses {
		if surveyFilter != nil && resp.SurveyId != *surveyFilter {
			continue
		}
		if relationshipFilter != "" && string(resp.Relationship) != relationshipFilter {
			continue
		}
		cp := *resp
		out = append(out, &cp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeFeedbackRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeNotificationRepo struct {
	mu   sync.Mutex
	rows []*model.Notification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeNotificationRepo) FindByUser(ctx context.Context, userId uuid.UUID, limit int) ([]*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Notification{}
	for _, n := range r.rows {
		if n.UserId == userId {
			cp := *n
			out = append(out, &cp)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.rows {
		if n.Id == id && n.UserId == userId {
			n.Read = true
		}
	}
	return nil
}

// fakeUow satisfies UnitOfWork over the in-memory repos. Transactions are
// no-ops.
type fakeUow struct {
	users    *fakeUserRepo
	feedback *fakeFeedbackRepo
	notifs   *fakeNotificationRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return u.users }
func (u *fakeUow) FeedbackRepository() contract.FeedbackRepository         { return u.feedback }
func (u *fakeUow) NotificationRepository() contract.NotificationRepository { return u.notifs }

type fakeUowFactory struct {
	uow *fakeUow
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{
		uow: &fakeUow{
			users:    newFakeUserRepo(),
			feedback: &fakeFeedbackRepo{},
			notifs:   &fakeNotificationRepo{},
		},
	}
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// fakeMailer records sent mail.
type fakeMailer struct {
	mu      sync.Mutex
	invites []string
	notices []string
}

func (m *fakeMailer) SendSurveyInvite(toEmail, ownerName, surveyLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invites = append(m.invites, toEmail)
	return nil
}

func (m *fakeMailer) SendPasswordChanged(toEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, toEmail)
	return nil
}
