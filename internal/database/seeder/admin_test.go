package seeder

import (
	"context"
	"errors"
	"testing"

	"careerlink/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byEmail  map[string]user.User
	created  []user.User
	promoted map[uuid.UUID]string
}

func newFakeUsers(us ...user.User) *fakeUsers {
	f := &fakeUsers{byEmail: map[string]user.User{}, promoted: map[uuid.UUID]string{}}
	for _, u := range us {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u user.User) error {
	f.created = append(f.created, u)
	f.byEmail[u.Email] = u
	return nil
}
func (f *fakeUsers) GetByID(context.Context, uuid.UUID) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (f *fakeUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (f *fakeUsers) ListByRole(context.Context, user.Role) ([]user.User, error) { return nil, nil }
func (f *fakeUsers) SetApproval(context.Context, uuid.UUID, bool, bool) (user.User, error) {
	return user.User{}, nil
}
func (f *fakeUsers) Promote(_ context.Context, id uuid.UUID, hash string) error {
	f.promoted[id] = hash
	return nil
}
func (f *fakeUsers) Delete(context.Context, uuid.UUID) error { return nil }

func hashOf(t *testing.T, pw string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(b)
}

func TestAdminSeeder_CreatesMissingAdmin(t *testing.T) {
	users := newFakeUsers()
	s := AdminSeeder{Email: " Ops@Gmail.com", Password: "s3cret!", Users: users}

	if err := s.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(users.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(users.created))
	}
	u := users.created[0]
	if u.Email != "ops@gmail.com" || u.Role != user.RoleAdmin || !u.IsActive || !u.IsApproved {
		t.Fatalf("unexpected admin %+v", u)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret!")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestAdminSeeder_IdempotentForProvisionedAdmin(t *testing.T) {
	admin := user.User{ID: uuid.New(), Email: "ops@gmail.com", PasswordHash: hashOf(t, "s3cret!"), Role: user.RoleAdmin, IsActive: true, IsApproved: true}
	users := newFakeUsers(admin)
	s := AdminSeeder{Email: "ops@gmail.com", Password: "s3cret!", Users: users}

	if err := s.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(users.created) != 0 || len(users.promoted) != 0 {
		t.Fatalf("expected no writes, got created=%d promoted=%d", len(users.created), len(users.promoted))
	}
}

func TestAdminSeeder_PromotesExistingUser(t *testing.T) {
	stale := hashOf(t, "s3cret!")
	student := user.User{ID: uuid.New(), Email: "ops@gmail.com", PasswordHash: stale, Role: user.RoleStudent, IsActive: true, IsApproved: true}
	users := newFakeUsers(student)
	s := AdminSeeder{Email: "ops@gmail.com", Password: "s3cret!", Users: users}

	if err := s.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got, ok := users.promoted[student.ID]; !ok || got != stale {
		t.Fatalf("expected promotion keeping the matching hash, got %q ok=%v", got, ok)
	}
}

func TestAdminSeeder_ResetsDriftedPassword(t *testing.T) {
	admin := user.User{ID: uuid.New(), Email: "ops@gmail.com", PasswordHash: hashOf(t, "old-password"), Role: user.RoleAdmin, IsActive: true, IsApproved: true}
	users := newFakeUsers(admin)
	s := AdminSeeder{Email: "ops@gmail.com", Password: "new-password", Users: users}

	if err := s.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, ok := users.promoted[admin.ID]
	if !ok {
		t.Fatalf("expected promote call")
	}
	if bcrypt.CompareHashAndPassword([]byte(got), []byte("new-password")) != nil {
		t.Fatalf("expected hash of the new password")
	}
}

func TestAdminSeeder_RequiresCredentials(t *testing.T) {
	cases := []AdminSeeder{
		{Email: "", Password: "s3cret!"},
		{Email: "ops@gmail.com", Password: "  "},
	}
	for _, s := range cases {
		s.Users = newFakeUsers()
		if err := s.Run(context.Background(), nil); !errors.Is(err, ErrAdminCredentials) {
			t.Fatalf("expected ErrAdminCredentials for %+v, got %v", s, err)
		}
	}

	short := AdminSeeder{Email: "ops@gmail.com", Password: "abc", Users: newFakeUsers()}
	if err := short.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for short password")
	}
}
