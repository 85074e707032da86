package routeguard

import (
	"context"
	"testing"
	"time"

	"careerhub/client/internal/keystore"
	"careerhub/client/internal/log"
	"careerhub/client/internal/token"
)

func TestCanActivate(t *testing.T) {
	seekerRoutes := []token.Role{token.RoleJobSeeker}
	sharedRoutes := []token.Role{token.RoleJobSeeker, token.RoleEmployer, token.RoleTrainer}

	tests := []struct {
		name     string
		allowed  []token.Role
		role     token.Role
		wantAllow bool
		redirect string
	}{
		{"member allowed", seekerRoutes, token.RoleJobSeeker, true, ""},
		{"employer denied seeker route", seekerRoutes, token.RoleEmployer, false, RouteVacancyManager},
		{"trainer denied seeker route", seekerRoutes, token.RoleTrainer, false, RouteCourseManager},
		{"admin denied shared route", sharedRoutes, token.RoleAdmin, false, RouteAdminDashboard},
		{"shared route employer", sharedRoutes, token.RoleEmployer, true, ""},
		{"no role", seekerRoutes, "", false, RouteLogin},
		{"unknown role", seekerRoutes, token.Role("GHOST"), false, RouteLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanActivate(tt.allowed, tt.role)
			if d.Allowed != tt.wantAllow {
				t.Errorf("Allowed = %v, want %v", d.Allowed, tt.wantAllow)
			}
			if d.RedirectTo != tt.redirect {
				t.Errorf("RedirectTo = %q, want %q", d.RedirectTo, tt.redirect)
			}
		})
	}
}

func TestDefaultRouteForRoleIsTotal(t *testing.T) {
	tests := []struct {
		role token.Role
		want string
	}{
		{token.RoleJobSeeker, RouteHome},
		{token.RoleEmployer, RouteVacancyManager},
		{token.RoleTrainer, RouteCourseManager},
		{token.RoleAdmin, RouteAdminDashboard},
		{"", RouteLogin},
		{"SOMETHING_ELSE", RouteLogin},
	}

	for _, tt := range tests {
		if got := DefaultRouteForRole(tt.role); got != tt.want {
			t.Errorf("DefaultRouteForRole(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestWatcherReEvaluatesOnExternalChange(t *testing.T) {
	store := keystore.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.Save(ctx, keystore.Credentials{Token: "tok", Role: token.RoleJobSeeker}); err != nil {
		t.Fatal(err)
	}

	w := NewWatcher(store, log.Nop())
	go func() { _ = w.Run(ctx) }()

	// wait for the initial load
	deadline := time.Now().Add(time.Second)
	for w.Role() != token.RoleJobSeeker {
		if time.Now().After(deadline) {
			t.Fatal("watcher never primed role")
		}
		time.Sleep(5 * time.Millisecond)
	}

	decisions := make(chan Decision, 4)
	w.Register([]token.Role{token.RoleJobSeeker}, func(d Decision) {
		decisions <- d
	})

	if d := <-decisions; !d.Allowed {
		t.Fatalf("expected initial allow, got %+v", d)
	}

	// another process logs in as an employer
	if err := store.Save(ctx, keystore.Credentials{Token: "tok2", Role: token.RoleEmployer}); err != nil {
		t.Fatal(err)
	}

	select {
	case d := <-decisions:
		if d.Allowed {
			t.Error("expected deny after external role change")
		}
		if d.RedirectTo != RouteVacancyManager {
			t.Errorf("expected employer landing redirect, got %q", d.RedirectTo)
		}
	case <-time.After(time.Second):
		t.Fatal("watcher did not re-evaluate after external change")
	}
}
