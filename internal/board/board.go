// Package board keeps the Kanban partition of a user's tasks and computes the
// result of create, update, remove and move operations on it.
//
// The board owns its slice. Every mutation goes through a method here so that
// each task is always counted in exactly one column.
package board

import (
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Columns is the three-way partition of tasks by status.
type Columns map[Status][]Task

// Len returns the number of tasks across all columns.
func (c Columns) Len() int {
	n := 0
	for _, s := range Statuses {
		n += len(c[s])
	}
	return n
}

// Flatten concatenates the columns in board order.
func (c Columns) Flatten() []Task {
	out := make([]Task, 0, c.Len())
	for _, s := range Statuses {
		out = append(out, c[s]...)
	}
	return out
}

// Option configures a Board.
type Option func(*Board)

// WithClock replaces the UTC wall clock.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(b *Board) { b.newID = gen }
}

// Board is the in-memory partition of one user's tasks. It is not safe for
// concurrent use; the owning workspace serializes access.
type Board struct {
	items []Task
	now   func() time.Time
	newID func() string
}

// New builds a board from tasks in repository order. Within each column tasks
// carrying Order come first, sorted by it, followed by the rest in list
// position.
func New(tasks []Task, opts ...Option) *Board {
	b := &Board{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}

	cols := group(tasks)
	for _, s := range Statuses {
		col := cols[s]
		sort.SliceStable(col, func(i, j int) bool {
			oi, oj := col[i].Order, col[j].Order
			if oi == nil || oj == nil {
				return oi != nil && oj == nil
			}
			return *oi < *oj
		})
	}
	b.items = cols.Flatten()
	b.renumber()
	return b
}

// group splits tasks by status preserving relative order. Tasks with an
// unknown status land in todo.
func group(tasks []Task) Columns {
	cols := Columns{StatusTodo: {}, StatusDoing: {}, StatusDone: {}}
	for _, t := range tasks {
		t = t.Clone()
		if !t.Status.Valid() {
			t.Status = StatusTodo
		}
		cols[t.Status] = append(cols[t.Status], t)
	}
	return cols
}

// List returns a copy of every task in repository order.
func (b *Board) List() []Task {
	out := make([]Task, len(b.items))
	for i, t := range b.items {
		out[i] = t.Clone()
	}
	return out
}

// Columns returns a copy of the partition.
func (b *Board) Columns() Columns {
	return group(b.items)
}

// Counts returns the number of tasks in each column.
func (b *Board) Counts() map[Status]int {
	counts := map[Status]int{StatusTodo: 0, StatusDoing: 0, StatusDone: 0}
	for _, t := range b.items {
		counts[t.Status]++
	}
	return counts
}

func (b *Board) Len() int { return len(b.items) }

// Get returns the task with id.
func (b *Board) Get(id string) (Task, error) {
	i := b.index(id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}
	return b.items[i].Clone(), nil
}

// Create validates in, assigns identity and timestamps and puts the task at
// the front of its column.
func (b *Board) Create(in CreateInput) (Task, error) {
	in, err := normalizeCreate(in)
	if err != nil {
		return Task{}, err
	}

	now := b.now()
	t := Task{
		ID:          b.newID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
		Checklist:   withItemIDs(in.Checklist),
	}

	b.items = group(append([]Task{t}, b.items...)).Flatten()
	b.renumber()
	return b.items[b.index(t.ID)].Clone(), nil
}

// Update merges patch into the task with id. ID and CreatedAt never change.
func (b *Board) Update(id string, patch Patch) (Task, error) {
	i := b.index(id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}
	patch, err := normalizePatch(patch)
	if err != nil {
		return Task{}, err
	}

	prev := b.items[i]
	next := patch.apply(prev.Clone())
	next.ID = prev.ID
	next.CreatedAt = prev.CreatedAt
	next.UpdatedAt = b.touch(prev.UpdatedAt)

	b.items[i] = next
	if next.Status != prev.Status {
		b.items = group(b.items).Flatten()
	}
	b.renumber()
	return b.items[b.index(id)].Clone(), nil
}

// Remove deletes the task with id. Removing an absent id is not an error; the
// result reports whether anything was deleted.
func (b *Board) Remove(id string) bool {
	i := b.index(id)
	if i < 0 {
		return false
	}
	b.items = slices.Delete(b.items, i, i+1)
	b.renumber()
	return true
}

// Move places the task with id into toStatus at toIndex and returns the full
// ordered task set. toIndex is clamped to the target column. Same-column
// reorders and cross-column moves take the same path.
func (b *Board) Move(id string, toStatus Status, toIndex int) ([]Task, error) {
	i := b.index(id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}
	if !toStatus.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "must be one of todo doing done"}
	}

	moving := b.items[i].Clone()
	remaining := slices.Concat(b.items[:i], b.items[i+1:])
	cols := group(remaining)

	target := cols[toStatus]
	toIndex = max(0, min(toIndex, len(target)))

	moving.Status = toStatus
	moving.UpdatedAt = b.touch(moving.UpdatedAt)
	cols[toStatus] = slices.Insert(target, toIndex, moving)

	b.items = cols.Flatten()
	b.renumber()
	return b.List(), nil
}

// Snapshot returns a copy of the board state for Restore.
func (b *Board) Snapshot() []Task {
	return b.List()
}

// Restore replaces the board state with a previous Snapshot.
func (b *Board) Restore(snapshot []Task) {
	b.items = group(snapshot).Flatten()
	b.renumber()
}

func (b *Board) index(id string) int {
	return slices.IndexFunc(b.items, func(t Task) bool { return t.ID == id })
}

// touch returns a timestamp strictly after prev.
func (b *Board) touch(prev time.Time) time.Time {
	now := b.now()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

// renumber sets Order to the index within each column.
func (b *Board) renumber() {
	pos := map[Status]int{}
	for i := range b.items {
		s := b.items[i].Status
		o := pos[s]
		b.items[i].Order = &o
		pos[s]++
	}
}
