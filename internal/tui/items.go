package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/collabintel/ci/internal/core/kb"
)

// agentItem wraps a profile for the bubbles list.
// Implements list.DefaultItem (Title + Description + FilterValue).
type agentItem struct {
	profile kb.Profile
	active  bool
}

func (i agentItem) Title() string {
	if i.active {
		return i.profile.Name + " " + activeStyle.Render("(active)")
	}
	return i.profile.Name
}

func (i agentItem) Description() string {
	if i.profile.Description != "" {
		return i.profile.Description
	}
	return "No description"
}

func (i agentItem) FilterValue() string { return i.profile.Name }

// agentsToItems converts profiles to list items, marking active agents.
func agentsToItems(profiles []kb.Profile, isActive func(string) bool) []list.Item {
	items := make([]list.Item, len(profiles))
	for i, p := range profiles {
		items[i] = agentItem{profile: p, active: isActive != nil && isActive(p.Name)}
	}
	return items
}
