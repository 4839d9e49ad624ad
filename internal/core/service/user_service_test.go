package service

import (
	"context"
	"errors"
	"testing"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

var adminActor = domain.Actor{ID: "s1", Role: domain.RoleAdmin}

func userFixture() (*UserService, *stubUserRepo, *stubPublisherRepo) {
	users := newStubUserRepo(
		&domain.User{ID: "s1", Username: "root", Role: domain.RoleAdmin},
		&domain.User{ID: "r1", Username: "rami", Email: "rami@example.com", Role: domain.RoleReader},
		&domain.User{ID: "j1", Username: "ana", Role: domain.RoleJournalist},
		&domain.User{ID: "e1", Username: "eva", Role: domain.RoleEditor},
	)
	publishers := newStubPublisherRepo(&domain.Publisher{ID: "pub_daily", Name: "The Daily"})
	return NewUserService(users, publishers, discardLogger), users, publishers
}

// ---------------------------------------------------------------------------
// SetRole
// ---------------------------------------------------------------------------

func TestUserService_SetRole_AdminOnly(t *testing.T) {
	svc, _, _ := userFixture()

	for _, role := range []domain.Role{domain.RoleReader, domain.RoleEditor, domain.RoleJournalist} {
		_, err := svc.SetRole(context.Background(), domain.Actor{ID: "x", Role: role}, "rami", domain.RoleEditor)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("role %q: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestUserService_SetRole_PromotesAndCreatesProfile(t *testing.T) {
	svc, users, _ := userFixture()

	user, err := svc.SetRole(context.Background(), adminActor, "rami", domain.RoleJournalist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleJournalist {
		t.Errorf("expected journalist, got %q", user.Role)
	}
	if users.byID["r1"].Role != domain.RoleJournalist {
		t.Error("role change must be persisted")
	}
	if _, err := users.FindProfile(context.Background(), "r1"); err != nil {
		t.Errorf("promotion to journalist must create the profile: %v", err)
	}
}

func TestUserService_SetRole_ProfileSurvivesDemotion(t *testing.T) {
	svc, users, _ := userFixture()

	if _, err := svc.SetRole(context.Background(), adminActor, "rami", domain.RoleJournalist); err != nil {
		t.Fatalf("promotion failed: %v", err)
	}
	if _, err := svc.SetRole(context.Background(), adminActor, "rami", domain.RoleEditor); err != nil {
		t.Fatalf("demotion failed: %v", err)
	}
	if _, err := users.FindProfile(context.Background(), "r1"); err != nil {
		t.Error("the journalist profile is never auto-deleted")
	}
}

func TestUserService_SetRole_ProfileWriteFailureKeepsRoleChange(t *testing.T) {
	svc, users, _ := userFixture()
	users.profileErr = errors.New("duplicate key")

	// The role change is already committed when the profile write runs, so
	// a failed profile write is logged and absorbed.
	user, err := svc.SetRole(context.Background(), adminActor, "rami", domain.RoleJournalist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleJournalist || users.byID["r1"].Role != domain.RoleJournalist {
		t.Error("role change must be persisted despite the profile failure")
	}
	if _, err := users.FindProfile(context.Background(), "r1"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("profile must stay absent after the failed write, got %v", err)
	}
}

func TestUserService_SetRole_BlocksJournalistWithSubscriptions(t *testing.T) {
	svc, users, _ := userFixture()
	users.byID["r1"].SubscribedPublisherIDs = []string{"pub_daily"}

	_, err := svc.SetRole(context.Background(), adminActor, "rami", domain.RoleJournalist)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("reader with subscriptions cannot become a journalist, got %v", err)
	}
	if users.byID["r1"].Role != domain.RoleReader {
		t.Error("rejected role change must not be persisted")
	}
}

func TestUserService_SetRole_UnknownRole(t *testing.T) {
	svc, _, _ := userFixture()

	_, err := svc.SetRole(context.Background(), adminActor, "rami", "owner")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Subscriptions
// ---------------------------------------------------------------------------

func TestUserService_SubscribeToPublisher(t *testing.T) {
	svc, users, _ := userFixture()
	actor := domain.Actor{ID: "r1", Role: domain.RoleReader}

	if err := svc.SubscribeToPublisher(context.Background(), actor, "pub_daily"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !containsStr(users.byID["r1"].SubscribedPublisherIDs, "pub_daily") {
		t.Error("subscription must be stored")
	}

	// Subscribing twice is a no-op, not an error.
	if err := svc.SubscribeToPublisher(context.Background(), actor, "pub_daily"); err != nil {
		t.Fatalf("repeat subscribe must succeed: %v", err)
	}
	if got := len(users.byID["r1"].SubscribedPublisherIDs); got != 1 {
		t.Errorf("expected a single subscription entry, got %d", got)
	}

	if err := svc.UnsubscribeFromPublisher(context.Background(), actor, "pub_daily"); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}
	if len(users.byID["r1"].SubscribedPublisherIDs) != 0 {
		t.Error("unsubscribe must remove the entry")
	}
}

func TestUserService_SubscribeToPublisher_UnknownPublisher(t *testing.T) {
	svc, _, _ := userFixture()

	err := svc.SubscribeToPublisher(context.Background(), domain.Actor{ID: "r1", Role: domain.RoleReader}, "pub_ghost")
	if !errors.Is(err, domain.ErrPublisherNotFound) {
		t.Fatalf("expected ErrPublisherNotFound, got %v", err)
	}
}

func TestUserService_Subscribe_ReadersOnly(t *testing.T) {
	svc, _, _ := userFixture()

	for _, tc := range []struct {
		id   string
		role domain.Role
	}{
		{"j1", domain.RoleJournalist},
		{"e1", domain.RoleEditor},
	} {
		err := svc.SubscribeToPublisher(context.Background(), domain.Actor{ID: tc.id, Role: tc.role}, "pub_daily")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("role %q: expected validation error, got %v", tc.role, err)
		}
	}
}

func TestUserService_SubscribeToJournalist_TargetMustBeJournalist(t *testing.T) {
	svc, users, _ := userFixture()
	actor := domain.Actor{ID: "r1", Role: domain.RoleReader}

	if err := svc.SubscribeToJournalist(context.Background(), actor, "j1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !containsStr(users.byID["r1"].SubscribedJournalistIDs, "j1") {
		t.Error("journalist subscription must be stored")
	}

	// The relation is one-way: nothing is written on the journalist.
	if len(users.byID["j1"].SubscribedJournalistIDs) != 0 {
		t.Error("subscription must not create a reciprocal edge")
	}

	err := svc.SubscribeToJournalist(context.Background(), actor, "e1")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("subscribing to an editor must fail, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Profile
// ---------------------------------------------------------------------------

func TestUserService_Profile(t *testing.T) {
	svc, users, _ := userFixture()
	users.profiles["j1"] = &domain.JournalistProfile{UserID: "j1", Bio: "covers city hall"}

	profile, user, err := svc.Profile(context.Background(), "ana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "j1" || profile.Bio != "covers city hall" {
		t.Errorf("unexpected profile: %+v for %+v", profile, user)
	}

	if _, _, err := svc.Profile(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("unknown username: expected ErrUserNotFound, got %v", err)
	}
	if _, _, err := svc.Profile(context.Background(), "rami"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("user without profile: expected ErrProfileNotFound, got %v", err)
	}
}
