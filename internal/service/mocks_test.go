package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/repository"
	"github.com/spec-kit/job-tracker/internal/session"
)

type mockApplicationRepo struct {
	mu      sync.Mutex
	order   []string
	rows    map[string]domain.Application
	seq     int
	listErr error
	leak    *domain.Application
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{rows: make(map[string]domain.Application)}
}

func (m *mockApplicationRepo) ListAll(_ context.Context, ownerID string) ([]domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []domain.Application{}
	for _, id := range m.order {
		if row := m.rows[id]; row.OwnerID == ownerID {
			out = append(out, row)
		}
	}
	if m.leak != nil {
		out = append(out, *m.leak)
	}
	return out, nil
}

func (m *mockApplicationRepo) GetOne(_ context.Context, ownerID, id string) (*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (m *mockApplicationRepo) Insert(_ context.Context, app *domain.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	app.ID = "app-" + strconv.Itoa(m.seq)
	m.rows[app.ID] = *app
	m.order = append(m.order, app.ID)
	return nil
}

func (m *mockApplicationRepo) Replace(_ context.Context, app *domain.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[app.ID]
	if !ok || row.OwnerID != app.OwnerID {
		return repository.ErrNotFound
	}
	m.rows[app.ID] = *app
	return nil
}

func (m *mockApplicationRepo) Delete(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

type mockUserRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.User
	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byID: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.byID {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = "user-" + strconv.Itoa(len(m.byID)+1)
	stored := *user
	m.byID[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

var errStorageDown = errors.New("connection refused")

func ownerCtx(id string) context.Context {
	return session.WithContext(context.Background(), session.New(session.Identity{ID: id}, "token"))
}
