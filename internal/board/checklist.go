package board

import (
	"strings"

	"github.com/google/uuid"
)

// NewChecklistItem returns an open item with trimmed text.
func NewChecklistItem(text string) ChecklistItem {
	return ChecklistItem{ID: uuid.NewString(), Text: strings.TrimSpace(text)}
}

// withItemIDs returns a copy of items where every empty or repeated ID is
// replaced by a fresh one. A nil slice becomes empty.
func withItemIDs(items []ChecklistItem) []ChecklistItem {
	out := make([]ChecklistItem, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if item.ID == "" || seen[item.ID] {
			item.ID = uuid.NewString()
		}
		seen[item.ID] = true
		out[i] = item
	}
	return out
}

var suggestions = map[Status][]string{
	StatusTodo:  {"Define the next step", "Gather materials and links", "Start with 5 minutes"},
	StatusDoing: {"Pick up from the last point", "Check progress", "Prepare to wrap up"},
}

// SuggestChecklist proposes small next steps for a task in status. Done tasks
// get none.
func SuggestChecklist(status Status) []ChecklistItem {
	texts := suggestions[status]
	items := make([]ChecklistItem, 0, len(texts))
	for _, text := range texts {
		items = append(items, NewChecklistItem(text))
	}
	return items
}

// NextChecklistItem returns the first open item, or false when all are done.
func NextChecklistItem(items []ChecklistItem) (ChecklistItem, bool) {
	for _, item := range items {
		if !item.Done {
			return item, true
		}
	}
	return ChecklistItem{}, false
}

// ChecklistProgress counts done and total items.
func ChecklistProgress(items []ChecklistItem) (done, total int) {
	for _, item := range items {
		if item.Done {
			done++
		}
	}
	return done, len(items)
}

// ToggleChecklistItem returns a patch flipping the item with itemID. It
// reports false when the task has no such item.
func ToggleChecklistItem(t Task, itemID string) (Patch, bool) {
	items := make([]ChecklistItem, len(t.Checklist))
	copy(items, t.Checklist)
	for i := range items {
		if items[i].ID == itemID {
			items[i].Done = !items[i].Done
			return Patch{Checklist: &items}, true
		}
	}
	return Patch{}, false
}
