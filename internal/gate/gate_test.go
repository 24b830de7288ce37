package gate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/successpath-portal/internal/models"
	"github.com/noah-isme/successpath-portal/internal/session"
)

func stateFor(role models.Role) session.State {
	if role == "" {
		return session.State{}
	}
	return session.State{Token: "tok", Identity: &models.Identity{ID: "1", Role: role}}
}

func TestLoadingAlwaysWaits(t *testing.T) {
	requirements := []Requirement{Open(), PublicOnly(), RequireRole(models.RoleAdmin), RequireRole(models.RoleStudent)}
	for _, role := range []models.Role{"", models.RoleAdmin, models.RoleStudent} {
		state := stateFor(role)
		state.Loading = true
		for _, req := range requirements {
			require.Equal(t, WaitForSession(), Decide(state, req))
		}
	}
}

func TestDecideScenarios(t *testing.T) {
	cases := []struct {
		name string
		role models.Role
		req  Requirement
		want Decision
	}{
		{"anonymous admin view", "", RequireRole(models.RoleAdmin), RedirectTo("/admin/login")},
		{"anonymous student view", "", RequireRole(models.RoleStudent), RedirectTo("/student/login")},
		{"student on admin view", models.RoleStudent, RequireRole(models.RoleAdmin), RedirectTo("/")},
		{"admin on student view", models.RoleAdmin, RequireRole(models.RoleStudent), RedirectTo("/")},
		{"admin on admin view", models.RoleAdmin, RequireRole(models.RoleAdmin), RenderView()},
		{"student on student view", models.RoleStudent, RequireRole(models.RoleStudent), RenderView()},
		{"admin on login page", models.RoleAdmin, PublicOnly(), RedirectTo("/admin/dashboard")},
		{"student on signup page", models.RoleStudent, PublicOnly(), RedirectTo("/student/dashboard")},
		{"anonymous on login page", "", PublicOnly(), RenderView()},
		{"anyone on open view", models.RoleStudent, Open(), RenderView()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Decide(stateFor(tc.role), tc.req))
		})
	}
}

func TestRequirementFor(t *testing.T) {
	req, ok := RequirementFor("/admin/students/65f0")
	require.True(t, ok)
	require.Equal(t, RequireRole(models.RoleAdmin), req)

	req, ok = RequirementFor("/student/login/")
	require.True(t, ok)
	require.Equal(t, PublicOnly(), req)

	req, ok = RequirementFor("/student/results")
	require.True(t, ok)
	require.Equal(t, RequireRole(models.RoleStudent), req)

	_, ok = RequirementFor("/teacher/dashboard")
	require.False(t, ok)
}

func TestRolePaths(t *testing.T) {
	require.Equal(t, "/admin/login", LoginPath(models.RoleAdmin))
	require.Equal(t, "/student/login", LoginPath(models.RoleStudent))
	require.Equal(t, LandingPath, LoginPath("teacher"))
	require.Equal(t, "/student/dashboard", DashboardPath(models.RoleStudent))
	require.Empty(t, DashboardPath("teacher"))
}

func TestMenu(t *testing.T) {
	menu := Menu(models.RoleAdmin, "/admin/marks")
	require.Len(t, menu, 4)
	for _, item := range menu {
		require.Equal(t, item.Path == "/admin/marks", item.Active, item.Path)
	}

	student := Menu(models.RoleStudent, "/student/profile")
	require.Equal(t, "My Profile", student[2].Label)
	require.True(t, student[2].Active)

	require.Empty(t, Menu("", "/"))
}
