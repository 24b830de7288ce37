// Package gate decides, for a session state and a view requirement, whether the
// view renders, waits for session verification, or redirects elsewhere.
package gate

import (
	"github.com/noah-isme/successpath-portal/internal/models"
	"github.com/noah-isme/successpath-portal/internal/session"
)

// Access classifies what a view demands of the session.
type Access int

const (
	// AccessOpen views render for everybody once the session is settled.
	AccessOpen Access = iota
	// AccessPublicOnly views are only for visitors without a session.
	AccessPublicOnly
	// AccessRole views need an identity of a specific role.
	AccessRole
)

// Requirement is the declared guard of a view.
type Requirement struct {
	Access Access
	Role   models.Role
}

// Open returns the requirement of views available to anyone.
func Open() Requirement {
	return Requirement{Access: AccessOpen}
}

// PublicOnly returns the requirement of landing, login and signup views.
func PublicOnly() Requirement {
	return Requirement{Access: AccessPublicOnly}
}

// RequireRole returns the requirement of views reserved for role.
func RequireRole(role models.Role) Requirement {
	return Requirement{Access: AccessRole, Role: role}
}

// Outcome is the kind of gate decision.
type Outcome int

const (
	Render Outcome = iota
	Wait
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the gate verdict. Target is set for redirects only.
type Decision struct {
	Outcome Outcome
	Target  string
}

// RenderView lets the request through.
func RenderView() Decision { return Decision{Outcome: Render} }

// WaitForSession asks the caller to show the loading view.
func WaitForSession() Decision { return Decision{Outcome: Wait} }

// RedirectTo sends the caller to target.
func RedirectTo(target string) Decision { return Decision{Outcome: Redirect, Target: target} }

// Decide evaluates the rules in order: a loading session always waits, a
// missing identity goes to the role's login view, a different role goes to the
// landing view. Public-only views send an active session to its dashboard.
func Decide(state session.State, req Requirement) Decision {
	if state.Loading {
		return WaitForSession()
	}

	switch req.Access {
	case AccessRole:
		if state.Identity == nil {
			return RedirectTo(LoginPath(req.Role))
		}
		if state.Identity.Role != req.Role {
			return RedirectTo(LandingPath)
		}
	case AccessPublicOnly:
		if state.Identity != nil {
			if dashboard := DashboardPath(state.Identity.Role); dashboard != "" {
				return RedirectTo(dashboard)
			}
		}
	}
	return RenderView()
}
