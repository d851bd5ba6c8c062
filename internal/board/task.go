package board

import (
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Status is the Kanban column a task lives in.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Statuses lists the columns in board order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Priority is the visual and logical importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	return slices.Contains(Priorities, p)
}

// ChecklistItem is one small step of a task.
type ChecklistItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Task is a card on the board.
type Task struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      Status          `json:"status"`
	Priority    Priority        `json:"priority"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Checklist   []ChecklistItem `json:"checklist,omitempty"`
	// Order is the manual rank within the status column.
	Order *int `json:"order,omitempty"`
}

// Clone returns a deep copy.
func (t Task) Clone() Task {
	if t.Checklist != nil {
		t.Checklist = slices.Clone(t.Checklist)
	}
	if t.Order != nil {
		o := *t.Order
		t.Order = &o
	}
	return t
}

// Equal reports whether two tasks carry the same values.
func (t Task) Equal(o Task) bool {
	if t.ID != o.ID || t.Title != o.Title || t.Description != o.Description ||
		t.Status != o.Status || t.Priority != o.Priority ||
		!t.CreatedAt.Equal(o.CreatedAt) || !t.UpdatedAt.Equal(o.UpdatedAt) {
		return false
	}
	if (t.Order == nil) != (o.Order == nil) || (t.Order != nil && *t.Order != *o.Order) {
		return false
	}
	return slices.Equal(t.Checklist, o.Checklist)
}

// CreateInput is what a caller supplies to add a task. Identity and
// timestamps are assigned by the board.
type CreateInput struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Status      Status          `json:"status" validate:"required,oneof=todo doing done"`
	Priority    Priority        `json:"priority" validate:"required,oneof=low medium high"`
	Checklist   []ChecklistItem `json:"checklist,omitempty"`
}

// Patch is an explicit partial update. Nil fields are left alone.
type Patch struct {
	Title       *string          `validate:"omitempty,max=200"`
	Description *string          `validate:"omitempty,max=2000"`
	Status      *Status          `validate:"omitempty,oneof=todo doing done"`
	Priority    *Priority        `validate:"omitempty,oneof=low medium high"`
	Checklist   *[]ChecklistItem `validate:"-"`
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.Checklist == nil
}

var validate = validator.New()

func normalizeCreate(in CreateInput) (CreateInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.Status == "" {
		in.Status = StatusTodo
	}
	if err := validate.Struct(in); err != nil {
		return in, validationError(err)
	}
	return in, nil
}

func normalizePatch(p Patch) (Patch, error) {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return p, &ValidationError{Field: "title", Reason: "is required"}
		}
		p.Title = &title
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		p.Description = &desc
	}
	if p.Checklist != nil {
		items := withItemIDs(*p.Checklist)
		p.Checklist = &items
	}
	if err := validate.Struct(p); err != nil {
		return p, validationError(err)
	}
	return p, nil
}

func (p Patch) apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Checklist != nil {
		t.Checklist = slices.Clone(*p.Checklist)
	}
	return t
}
