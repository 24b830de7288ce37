package gate

import (
	"strings"

	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/models"
)

// LandingPath is the public entry view and the target of every fallback.
const LandingPath = "/"

type menuEntry struct {
	Label string
	Path  string
}

type roleProfile struct {
	LoginPath     string
	DashboardPath string
	Menu          []menuEntry
}

var profiles = map[models.Role]roleProfile{
	models.RoleAdmin: {
		LoginPath:     "/admin/login",
		DashboardPath: "/admin/dashboard",
		Menu: []menuEntry{
			{Label: "Dashboard", Path: "/admin/dashboard"},
			{Label: "Students", Path: "/admin/students"},
			{Label: "Marks", Path: "/admin/marks"},
			{Label: "Announcements", Path: "/admin/announcements"},
		},
	},
	models.RoleStudent: {
		LoginPath:     "/student/login",
		DashboardPath: "/student/dashboard",
		Menu: []menuEntry{
			{Label: "Dashboard", Path: "/student/dashboard"},
			{Label: "My Results", Path: "/student/results"},
			{Label: "My Profile", Path: "/student/profile"},
		},
	},
}

// View is a named page of the portal and its guard.
type View struct {
	Name        string
	Path        string
	Requirement Requirement
}

var views = []View{
	{Name: "landing", Path: LandingPath, Requirement: PublicOnly()},
	{Name: "admin_login", Path: "/admin/login", Requirement: PublicOnly()},
	{Name: "student_login", Path: "/student/login", Requirement: PublicOnly()},
	{Name: "student_signup", Path: "/student/signup", Requirement: PublicOnly()},
	{Name: "admin_dashboard", Path: "/admin/dashboard", Requirement: RequireRole(models.RoleAdmin)},
	{Name: "admin_students", Path: "/admin/students", Requirement: RequireRole(models.RoleAdmin)},
	{Name: "admin_marks", Path: "/admin/marks", Requirement: RequireRole(models.RoleAdmin)},
	{Name: "admin_announcements", Path: "/admin/announcements", Requirement: RequireRole(models.RoleAdmin)},
	{Name: "student_dashboard", Path: "/student/dashboard", Requirement: RequireRole(models.RoleStudent)},
	{Name: "student_results", Path: "/student/results", Requirement: RequireRole(models.RoleStudent)},
	{Name: "student_profile", Path: "/student/profile", Requirement: RequireRole(models.RoleStudent)},
	{Name: "student_change_password", Path: "/student/change-password", Requirement: RequireRole(models.RoleStudent)},
}

// Views returns a copy of the view table.
func Views() []View {
	out := make([]View, len(views))
	copy(out, views)
	return out
}

// RequirementFor finds the requirement of path. Sub-resources such as
// /admin/students/:id inherit the requirement of their section.
func RequirementFor(path string) (Requirement, bool) {
	path = normalise(path)
	var (
		best    View
		matched bool
	)
	for _, view := range views {
		if path == view.Path {
			return view.Requirement, true
		}
		if view.Path != LandingPath && strings.HasPrefix(path, view.Path+"/") {
			if !matched || len(view.Path) > len(best.Path) {
				best, matched = view, true
			}
		}
	}
	if matched {
		return best.Requirement, true
	}
	return Requirement{}, false
}

// LoginPath returns the login view of role, or the landing view for unknown roles.
func LoginPath(role models.Role) string {
	if profile, ok := profiles[role]; ok {
		return profile.LoginPath
	}
	return LandingPath
}

// DashboardPath returns the dashboard of role, empty for unknown roles.
func DashboardPath(role models.Role) string {
	return profiles[role].DashboardPath
}

// Menu returns the navigation of role with the entry matching current marked active.
func Menu(role models.Role, current string) []dto.MenuItem {
	profile, ok := profiles[role]
	if !ok {
		return []dto.MenuItem{}
	}

	current = normalise(current)
	items := make([]dto.MenuItem, 0, len(profile.Menu))
	for _, entry := range profile.Menu {
		items = append(items, dto.MenuItem{
			Label:  entry.Label,
			Path:   entry.Path,
			Active: current == entry.Path || strings.HasPrefix(current, entry.Path+"/"),
		})
	}
	return items
}

func normalise(path string) string {
	if path == "" {
		return LandingPath
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return LandingPath
		}
	}
	return path
}
