package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"promptly-be/internal/entity"
	"promptly-be/internal/pkg/logger"
	"promptly-be/internal/repository/contract"
	"promptly-be/internal/repository/specification"
	"promptly-be/internal/repository/unitofwork"
	"promptly-be/pkg/events"
	"promptly-be/pkg/llm"

	"github.com/google/uuid"
)

var testLogger = logger.NewNopLogger()

// fakeDB is an in-memory stand-in for the GORM repositories. It understands
// the specifications the services use.
type fakeDB struct {
	mu        sync.Mutex
	users     []*entity.User
	accounts  []*entity.Account
	providers []*entity.AccountProvider
	prompts   []*entity.Prompt
	usage     []*entity.PromptUsageRecord
	commits   int
	failWith  error
}

func newFakeDB() *fakeDB { return &fakeDB{} }

func (db *fakeDB) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return &fakeUow{db: db} }

type fakeUow struct{ db *fakeDB }

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error {
	u.db.mu.Lock()
	u.db.commits++
	u.db.mu.Unlock()
	return nil
}
func (u *fakeUow) Rollback() error { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository               { return fakeUsers{u.db} }
func (u *fakeUow) AccountRepository() contract.AccountRepository         { return fakeAccounts{u.db} }
func (u *fakeUow) PromptRepository() contract.PromptRepository           { return fakePrompts{u.db} }
func (u *fakeUow) PromptUsageRepository() contract.PromptUsageRepository { return fakeUsage{u.db} }

type fakeUsers struct{ db *fakeDB }

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByExternalID:
			if u.ExternalId != s.ExternalID {
				return false
			}
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.CompletedProfiles:
			if !u.ProfileCompleted {
				return false
			}
		}
	}
	return true
}

func (r fakeUsers) Create(ctx context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return r.db.failWith
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.db.users = append(r.db.users, &cp)
	return nil
}

func (r fakeUsers) Update(ctx context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, u := range r.db.users {
		if u.Id == user.Id {
			cp := *user
			r.db.users[i] = &cp
			return nil
		}
	}
	return errors.New("user not found")
}

func (r fakeUsers) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r fakeUsers) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r fakeUsers) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var res []*entity.User
	for _, u := range r.db.users {
		if matchUser(u, specs) {
			cp := *u
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r fakeUsers) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeAccounts struct{ db *fakeDB }

func (r fakeAccounts) Create(ctx context.Context, account *entity.Account) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *account
	r.db.accounts = append(r.db.accounts, &cp)
	return nil
}

func (r fakeAccounts) Update(ctx context.Context, account *entity.Account) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, a := range r.db.accounts {
		if a.Id == account.Id {
			cp := *account
			r.db.accounts[i] = &cp
			return nil
		}
	}
	return errors.New("account not found")
}

func (r fakeAccounts) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
outer:
	for _, a := range r.db.accounts {
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByEmail:
				if !strings.EqualFold(a.Email, s.Email) {
					continue outer
				}
			case specification.ByID:
				if a.Id != s.ID {
					continue outer
				}
			}
		}
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r fakeAccounts) SaveProvider(ctx context.Context, provider *entity.AccountProvider) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *provider
	r.db.providers = append(r.db.providers, &cp)
	return nil
}

func (r fakeAccounts) FindProvider(ctx context.Context, specs ...specification.Specification) (*entity.AccountProvider, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.providers {
		for _, spec := range specs {
			if s, ok := spec.(specification.ByProvider); ok && p.ProviderName == s.Name && p.ProviderUserId == s.UserID {
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, nil
}

type fakePrompts struct{ db *fakeDB }

func (r fakePrompts) Create(ctx context.Context, prompt *entity.Prompt) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	// Strictly increasing timestamps keep newest-first ordering deterministic.
	prompt.CreatedAt = time.Unix(int64(1000+len(r.db.prompts)), 0)
	cp := *prompt
	r.db.prompts = append(r.db.prompts, &cp)
	return nil
}

func (r fakePrompts) Update(ctx context.Context, prompt *entity.Prompt) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, p := range r.db.prompts {
		if p.Id == prompt.Id {
			cp := *prompt
			r.db.prompts[i] = &cp
			return nil
		}
	}
	return errors.New("prompt not found")
}

func (r fakePrompts) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prompt, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r fakePrompts) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prompt, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	newest := false
	var res []*entity.Prompt
outer:
	for _, p := range r.db.prompts {
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByID:
				if p.Id != s.ID {
					continue outer
				}
			case specification.UserOwnedBy:
				if p.UserId != s.UserID {
					continue outer
				}
			case specification.ActivePrompts:
				if p.Status != entity.PromptStatusActive {
					continue outer
				}
			case specification.NewestFirst:
				newest = true
			}
		}
		cp := *p
		res = append(res, &cp)
	}
	if newest {
		sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.Pagination); ok {
			if s.Offset >= len(res) {
				return nil, nil
			}
			res = res[s.Offset:]
			if s.Limit < len(res) {
				res = res[:s.Limit]
			}
		}
	}
	return res, nil
}

func (r fakePrompts) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeUsage struct{ db *fakeDB }

func (r fakeUsage) Create(ctx context.Context, record *entity.PromptUsageRecord) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	record.CreatedAt = time.Now()
	cp := *record
	r.db.usage = append(r.db.usage, &cp)
	return nil
}

func (r fakeUsage) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, u := range r.db.usage {
		ok := true
		for _, spec := range specs {
			if s, isPrompt := spec.(specification.ByPromptID); isPrompt && u.PromptId != s.PromptID {
				ok = false
			}
		}
		if ok {
			n++
		}
	}
	return n, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var res []string
	for _, e := range p.events {
		res = append(res, e.EventType())
	}
	return res
}

type recordingMailer struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (m *recordingMailer) SendVerificationCode(toEmail, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codes == nil {
		m.codes = map[string]string{}
	}
	m.codes[toEmail] = code
	return m.err
}

func (m *recordingMailer) code(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email]
}

type scriptedLLM struct {
	replies []string
	err     error
	calls   [][]llm.Message
	opts    []*llm.Options
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls = append(s.calls, history)
	s.opts = append(s.opts, llm.ResolveOptions(options...))
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (s *scriptedLLM) Name() string { return "scripted" }
