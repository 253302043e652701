package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/repository"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func createUser(t *testing.T, store *Store, email string) *domain.User {
	t.Helper()
	user := &domain.User{Name: "Test", Email: email, PasswordHash: "hash"}
	if err := store.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func newApplication(owner, company string, status domain.Status) *domain.Application {
	now := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	return &domain.Application{
		OwnerID:   owner,
		Company:   company,
		Role:      "Engineer",
		Status:    status,
		JobURL:    "https://jobs.example.com/" + company,
		AppliedAt: now,
		UpdatedAt: now,
	}
}

func TestApplicationRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	owner := createUser(t, store, "ada@example.com")

	app := newApplication(owner.ID, "Acme", domain.StatusApplied)
	app.Notes = "referral"
	if err := store.Insert(ctx, app); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if !repository.ValidID(app.ID) {
		t.Fatalf("expected assigned id, got %q", app.ID)
	}

	got, err := store.GetOne(ctx, owner.ID, app.ID)
	if err != nil {
		t.Fatalf("GetOne failed: %v", err)
	}
	if *got != *app {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", app, got)
	}

	got.Status = domain.StatusInterview
	got.UpdatedAt = got.UpdatedAt.Add(time.Hour)
	if err := store.Replace(ctx, got); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	again, err := store.GetOne(ctx, owner.ID, app.ID)
	if err != nil {
		t.Fatalf("GetOne after replace failed: %v", err)
	}
	if again.Status != domain.StatusInterview || !again.UpdatedAt.Equal(got.UpdatedAt) {
		t.Errorf("replace not persisted: %+v", again)
	}

	if err := store.Delete(ctx, owner.ID, app.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetOne(ctx, owner.ID, app.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, owner.ID, app.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListAllIsOwnerScopedAndOrdered(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	ada := createUser(t, store, "ada@example.com")
	bob := createUser(t, store, "bob@example.com")

	for _, company := range []string{"Zeta", "Alpha", "Mid"} {
		if err := store.Insert(ctx, newApplication(ada.ID, company, domain.StatusApplied)); err != nil {
			t.Fatalf("insert %s: %v", company, err)
		}
	}
	if err := store.Insert(ctx, newApplication(bob.ID, "Other", domain.StatusOffer)); err != nil {
		t.Fatalf("insert bob: %v", err)
	}

	list, err := store.ListAll(ctx, ada.ID)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	want := []string{"Zeta", "Alpha", "Mid"}
	if len(list) != len(want) {
		t.Fatalf("expected %d applications, got %d", len(want), len(list))
	}
	for i, company := range want {
		if list[i].Company != company {
			t.Errorf("position %d: expected %s, got %s", i, company, list[i].Company)
		}
		if list[i].OwnerID != ada.ID {
			t.Errorf("foreign record leaked: %+v", list[i])
		}
	}

	empty, err := store.ListAll(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListAll for unknown owner failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestCrossOwnerAccessLooksLikeNotFound(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	ada := createUser(t, store, "ada@example.com")
	bob := createUser(t, store, "bob@example.com")

	app := newApplication(ada.ID, "Acme", domain.StatusApplied)
	if err := store.Insert(ctx, app); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if _, err := store.GetOne(ctx, bob.ID, app.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign get, got %v", err)
	}
	stolen := *app
	stolen.OwnerID = bob.ID
	stolen.Company = "Hijacked"
	if err := store.Replace(ctx, &stolen); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign replace, got %v", err)
	}
	if err := store.Delete(ctx, bob.ID, app.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign delete, got %v", err)
	}

	still, err := store.GetOne(ctx, ada.ID, app.ID)
	if err != nil {
		t.Fatalf("owner lost access: %v", err)
	}
	if still.Company != "Acme" {
		t.Errorf("foreign replace leaked through: %+v", still)
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	ada := createUser(t, store, "ada@example.com")

	byEmail, err := store.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail.ID != ada.ID {
		t.Errorf("expected %s, got %s", ada.ID, byEmail.ID)
	}
	byID, err := store.GetByID(ctx, ada.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID.Email != "ada@example.com" || !byID.CreatedAt.Equal(ada.CreatedAt) {
		t.Errorf("unexpected user %+v", byID)
	}

	dup := &domain.User{Name: "Ada 2", Email: "ada@example.com", PasswordHash: "x"}
	if err := store.Create(ctx, dup); !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
	if _, err := store.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertRejectsInvalidStatus(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	ada := createUser(t, store, "ada@example.com")

	if err := store.Insert(ctx, newApplication(ada.ID, "Acme", domain.Status("BOGUS"))); err == nil {
		t.Fatal("expected check constraint failure")
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "jobs.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	user := &domain.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "h"}
	if err := first.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if _, err := second.GetByID(ctx, user.ID); err != nil {
		t.Fatalf("user lost after reopen: %v", err)
	}
}
