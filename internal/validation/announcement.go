package validation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/models"
)

// AnnouncementForm is the admin announcement form.
type AnnouncementForm struct {
	Title         string `json:"title" form:"title"`
	Content       string `json:"content" form:"content"`
	Priority      string `json:"priority" form:"priority"`
	TargetClass   string `json:"targetClass" form:"targetClass"`
	TargetSection string `json:"targetSection" form:"targetSection"`
	ExpiryDate    string `json:"expiryDate" form:"expiryDate"`
}

// EffectivePriority applies the Medium default to an unset priority.
func (f AnnouncementForm) EffectivePriority() models.Priority {
	if f.Priority == "" {
		return models.PriorityMedium
	}
	return models.Priority(f.Priority)
}

// Rules returns the announcement rules.
func (f AnnouncementForm) Rules() []Rule {
	return []Rule{
		{Message: MsgAnnouncementRequired, Check: func() bool { return Present(f.Title, f.Content) }},
		{Message: MsgInvalidPriority, Check: func() bool { return f.EffectivePriority().Valid() }},
	}
}

// Validate evaluates Rules.
func (f AnnouncementForm) Validate() Result {
	return Evaluate(f.Rules()...)
}

var (
	titlePolicy   = bluemonday.StrictPolicy()
	contentPolicy = bluemonday.UGCPolicy()
)

// Payload converts a validated form into the wire body. Text without markup is
// sent as entered. Tags are stripped from the title, and content that carries
// markup is reduced to safe user content.
func (f AnnouncementForm) Payload() dto.AnnouncementPayload {
	content := f.Content
	if hasMarkup(content) {
		content = contentPolicy.Sanitize(content)
	}
	return dto.AnnouncementPayload{
		Title:         plainText(f.Title),
		Content:       content,
		Priority:      f.EffectivePriority(),
		TargetClass:   f.TargetClass,
		TargetSection: f.TargetSection,
		ExpiryDate:    f.ExpiryDate,
	}
}

// plainText strips every tag and undoes the entity escaping the policy applies
// to the remaining text.
func plainText(text string) string {
	return html.UnescapeString(titlePolicy.Sanitize(text))
}

func hasMarkup(text string) bool {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return plainText(text) != text
}
