package board

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestBoard(t *testing.T, seed ...Task) *Board {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	n := 0
	return New(seed, WithClock(clock.now), WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}))
}

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func columnIDs(b *Board) map[Status][]string {
	cols := b.Columns()
	out := map[Status][]string{}
	for _, s := range Statuses {
		out[s] = ids(cols[s])
	}
	return out
}

func mustCreate(t *testing.T, b *Board, title string, status Status) Task {
	t.Helper()
	task, err := b.Create(CreateInput{Title: title, Status: status, Priority: PriorityMedium})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return task
}

// assertPartition checks every task appears in exactly one column.
func assertPartition(t *testing.T, b *Board) {
	t.Helper()
	seen := map[string]Status{}
	cols := b.Columns()
	for _, s := range Statuses {
		for i, task := range cols[s] {
			if task.Status != s {
				t.Fatalf("task %s in column %s has status %s", task.ID, s, task.Status)
			}
			if prev, dup := seen[task.ID]; dup {
				t.Fatalf("task %s in both %s and %s", task.ID, prev, s)
			}
			seen[task.ID] = s
			if task.Order == nil || *task.Order != i {
				t.Fatalf("task %s order = %v, want %d", task.ID, task.Order, i)
			}
		}
	}
	if len(seen) != b.Len() {
		t.Fatalf("partition covers %d tasks, board holds %d", len(seen), b.Len())
	}
}

func TestCreateAssignsIdentity(t *testing.T) {
	b := newTestBoard(t)
	task, err := b.Create(CreateInput{Title: "  Take a walk  ", Description: " gentle ", Status: StatusTodo, Priority: PriorityLow})
	if err != nil {
		t.Fatal(err)
	}
	if task.ID != "t1" {
		t.Fatalf("ID = %q, want t1", task.ID)
	}
	if task.Title != "Take a walk" || task.Description != "gentle" {
		t.Fatalf("text not trimmed: %+v", task)
	}
	if task.CreatedAt.IsZero() || !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Fatalf("timestamps not set: %+v", task)
	}
	if task.Checklist == nil {
		t.Fatal("checklist should be an empty slice")
	}
}

func TestCreateDefaults(t *testing.T) {
	b := newTestBoard(t)
	task, err := b.Create(CreateInput{Title: "Call friend"})
	if err != nil {
		t.Fatal(err)
	}
	if task.Status != StatusTodo || task.Priority != PriorityMedium {
		t.Fatalf("defaults not applied: %+v", task)
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	b := newTestBoard(t)
	_, err := b.Create(CreateInput{Title: "   ", Status: StatusTodo})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "title" {
		t.Fatalf("err = %#v, want title ValidationError", err)
	}
	if b.Len() != 0 {
		t.Fatal("invalid create reached the board")
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	b := newTestBoard(t)
	_, err := b.Create(CreateInput{Title: "x", Status: "blocked"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateInsertsAtFrontOfColumn(t *testing.T) {
	b := newTestBoard(t)
	mustCreate(t, b, "a", StatusTodo)
	mustCreate(t, b, "b", StatusDone)
	mustCreate(t, b, "c", StatusTodo)

	want := map[Status][]string{
		StatusTodo:  {"t3", "t1"},
		StatusDoing: {},
		StatusDone:  {"t2"},
	}
	if diff := cmp.Diff(want, columnIDs(b)); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"t3", "t1", "t2"}, ids(b.List())); diff != "" {
		t.Fatalf("list order mismatch (-want +got):\n%s", diff)
	}
	assertPartition(t, b)
}

func TestUpdateMergesPatch(t *testing.T) {
	b := newTestBoard(t)
	orig := mustCreate(t, b, "Review notes", StatusTodo)

	title := " Review project notes "
	prio := PriorityHigh
	got, err := b.Update(orig.ID, Patch{Title: &title, Priority: &prio})
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Review project notes" || got.Priority != PriorityHigh {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.ID != orig.ID || !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatal("id/createdAt must be preserved")
	}
	if !got.UpdatedAt.After(orig.UpdatedAt) {
		t.Fatal("updatedAt not refreshed")
	}
	if got.Description != orig.Description || got.Status != orig.Status {
		t.Fatal("untouched fields changed")
	}
}

func TestUpdateStatusKeepsPartition(t *testing.T) {
	b := newTestBoard(t)
	a := mustCreate(t, b, "a", StatusTodo)
	mustCreate(t, b, "b", StatusDoing)

	done := StatusDone
	if _, err := b.Update(a.ID, Patch{Status: &done}); err != nil {
		t.Fatal(err)
	}
	want := map[Status][]string{StatusTodo: {}, StatusDoing: {"t2"}, StatusDone: {"t1"}}
	if diff := cmp.Diff(want, columnIDs(b)); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	assertPartition(t, b)
}

func TestUpdateNotFound(t *testing.T) {
	b := newTestBoard(t)
	mustCreate(t, b, "a", StatusTodo)
	before := b.Snapshot()

	title := "x"
	_, err := b.Update("missing", Patch{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if diff := cmp.Diff(before, b.List()); diff != "" {
		t.Fatalf("board changed on failed update:\n%s", diff)
	}
}

func TestUpdateRejectsEmptyTitle(t *testing.T) {
	b := newTestBoard(t)
	a := mustCreate(t, b, "a", StatusTodo)
	empty := "  "
	if _, err := b.Update(a.ID, Patch{Title: &empty}); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	got, _ := b.Get(a.ID)
	if got.Title != "a" {
		t.Fatal("rejected patch was applied")
	}
}

func TestUpdatedAtIsMonotonicWithFrozenClock(t *testing.T) {
	frozen := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	b := New(nil, WithClock(func() time.Time { return frozen }))
	a, _ := b.Create(CreateInput{Title: "a"})

	prio := PriorityHigh
	u1, _ := b.Update(a.ID, Patch{Priority: &prio})
	tasks, _ := b.Move(a.ID, StatusDoing, 0)
	if !u1.UpdatedAt.After(a.UpdatedAt) || !tasks[0].UpdatedAt.After(u1.UpdatedAt) {
		t.Fatalf("timestamps not monotonic: %v %v %v", a.UpdatedAt, u1.UpdatedAt, tasks[0].UpdatedAt)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	b := newTestBoard(t)
	a := mustCreate(t, b, "a", StatusTodo)
	mustCreate(t, b, "b", StatusTodo)

	if !b.Remove(a.ID) {
		t.Fatal("first remove should report true")
	}
	if b.Remove(a.ID) {
		t.Fatal("second remove should report false")
	}
	if b.Len() != 1 {
		t.Fatalf("len = %d, want 1", b.Len())
	}
	assertPartition(t, b)
}

func TestMoveCrossColumn(t *testing.T) {
	b := newTestBoard(t)
	bTask := mustCreate(t, b, "B", StatusTodo)
	aTask := mustCreate(t, b, "A", StatusTodo) // todo = [A, B]

	tasks, err := b.Move(aTask.ID, StatusDoing, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := map[Status][]string{StatusTodo: {bTask.ID}, StatusDoing: {aTask.ID}, StatusDone: {}}
	if diff := cmp.Diff(want, columnIDs(b)); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	moved, _ := b.Get(aTask.ID)
	if moved.Status != StatusDoing {
		t.Fatalf("status = %s, want doing", moved.Status)
	}
	if diff := cmp.Diff([]string{bTask.ID, aTask.ID}, ids(tasks)); diff != "" {
		t.Fatalf("returned order mismatch:\n%s", diff)
	}
}

func TestMoveClampsIndex(t *testing.T) {
	b := newTestBoard(t)
	t1 := mustCreate(t, b, "only", StatusTodo)

	if _, err := b.Move(t1.ID, StatusTodo, 99); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{t1.ID}, columnIDs(b)[StatusTodo]); diff != "" {
		t.Fatalf("todo mismatch:\n%s", diff)
	}

	mustCreate(t, b, "two", StatusDone)
	mustCreate(t, b, "three", StatusDone) // done = [t3, t2]
	if _, err := b.Move(t1.ID, StatusDone, 42); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Move("t3", StatusDone, -5); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"t3", "t2", "t1"}, columnIDs(b)[StatusDone]); diff != "" {
		t.Fatalf("done mismatch:\n%s", diff)
	}
}

func TestMoveSameColumnReorder(t *testing.T) {
	b := newTestBoard(t)
	mustCreate(t, b, "c", StatusTodo)
	mustCreate(t, b, "b", StatusTodo)
	mustCreate(t, b, "a", StatusTodo) // todo = [t3, t2, t1]

	if _, err := b.Move("t3", StatusTodo, 2); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"t2", "t1", "t3"}, columnIDs(b)[StatusTodo]); diff != "" {
		t.Fatalf("todo mismatch:\n%s", diff)
	}
	if _, err := b.Move("t3", StatusTodo, 0); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"t3", "t2", "t1"}, columnIDs(b)[StatusTodo]); diff != "" {
		t.Fatalf("todo mismatch:\n%s", diff)
	}
}

func TestMoveNotFoundLeavesBoardUnchanged(t *testing.T) {
	b := newTestBoard(t)
	mustCreate(t, b, "a", StatusTodo)
	mustCreate(t, b, "b", StatusDoing)
	mustCreate(t, b, "c", StatusDone)
	before := b.Columns()

	_, err := b.Move("nope", StatusDone, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "nope" {
		t.Fatalf("err = %#v", err)
	}
	if diff := cmp.Diff(before, b.Columns()); diff != "" {
		t.Fatalf("columns changed:\n%s", diff)
	}
}

func TestNewOrdersByPersistedOrder(t *testing.T) {
	two, zero, one := 2, 0, 1
	seed := []Task{
		{ID: "x", Title: "x", Status: StatusDoing, Order: &two},
		{ID: "y", Title: "y", Status: StatusDoing, Order: &zero},
		{ID: "z", Title: "z", Status: StatusDone},
		{ID: "w", Title: "w", Status: StatusDoing, Order: &one},
		{ID: "v", Title: "v", Status: "archived"},
	}
	b := newTestBoard(t, seed...)

	want := map[Status][]string{StatusTodo: {"v"}, StatusDoing: {"y", "w", "x"}, StatusDone: {"z"}}
	if diff := cmp.Diff(want, columnIDs(b)); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	assertPartition(t, b)
}

func TestNewRanksUnorderedTasksLast(t *testing.T) {
	zero, one := 0, 1
	seed := []Task{
		{ID: "a", Title: "a", Status: StatusTodo},
		{ID: "b", Title: "b", Status: StatusTodo, Order: &one},
		{ID: "c", Title: "c", Status: StatusTodo},
		{ID: "d", Title: "d", Status: StatusTodo, Order: &zero},
	}
	b := newTestBoard(t, seed...)

	if diff := cmp.Diff([]string{"d", "b", "a", "c"}, columnIDs(b)[StatusTodo]); diff != "" {
		t.Fatalf("todo mismatch (-want +got):\n%s", diff)
	}
	for i, task := range b.Columns()[StatusTodo] {
		if task.Order == nil || *task.Order != i {
			t.Fatalf("task %s order = %v, want %d", task.ID, task.Order, i)
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	b := newTestBoard(t)
	mustCreate(t, b, "a", StatusTodo)
	snap := b.Snapshot()

	mustCreate(t, b, "b", StatusDoing)
	b.Restore(snap)

	if diff := cmp.Diff(snap, b.List()); diff != "" {
		t.Fatalf("restore mismatch:\n%s", diff)
	}
}

func TestReturnedTasksAreCopies(t *testing.T) {
	b := newTestBoard(t)
	task, _ := b.Create(CreateInput{Title: "a", Checklist: []ChecklistItem{{ID: "c1", Text: "step"}}})
	task.Checklist[0].Done = true

	got, _ := b.Get(task.ID)
	if got.Checklist[0].Done {
		t.Fatal("caller mutation leaked into the board")
	}
}

func TestPartitionInvariantUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := newTestBoard(t)

	for i := 0; i < 500; i++ {
		tasks := b.List()
		switch op := rng.Intn(4); {
		case op == 0 || len(tasks) == 0:
			mustCreate(t, b, fmt.Sprintf("task %d", i), Statuses[rng.Intn(3)])
		case op == 1:
			st := Statuses[rng.Intn(3)]
			if _, err := b.Update(tasks[rng.Intn(len(tasks))].ID, Patch{Status: &st}); err != nil {
				t.Fatal(err)
			}
		case op == 2:
			b.Remove(tasks[rng.Intn(len(tasks))].ID)
		default:
			if _, err := b.Move(tasks[rng.Intn(len(tasks))].ID, Statuses[rng.Intn(3)], rng.Intn(8)-2); err != nil {
				t.Fatal(err)
			}
		}
		assertPartition(t, b)
	}
}

func TestCounts(t *testing.T) {
	b := newTestBoard(t)
	mustCreate(t, b, "a", StatusTodo)
	mustCreate(t, b, "b", StatusTodo)
	mustCreate(t, b, "c", StatusDone)

	want := map[Status]int{StatusTodo: 2, StatusDoing: 0, StatusDone: 1}
	if diff := cmp.Diff(want, b.Counts()); diff != "" {
		t.Fatalf("counts mismatch:\n%s", diff)
	}
}
