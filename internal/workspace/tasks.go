package workspace

import (
	"context"
	"fmt"

	"github.com/sadopc/mindease/internal/board"
)

func (w *Workspace) Tasks() []board.Task {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.board.List()
}

func (w *Workspace) Columns() board.Columns {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.board.Columns()
}

func (w *Workspace) Task(id string) (board.Task, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.board.Get(id)
}

func (w *Workspace) CreateTask(ctx context.Context, in board.CreateInput) (board.Task, error) {
	var created board.Task
	err := w.mutate(ctx, "create task", func(b *board.Board) (err error) {
		created, err = b.Create(in)
		return err
	})
	if err != nil {
		return board.Task{}, err
	}
	w.log.Info("task created", "task", created.ID, "status", created.Status)
	return created, nil
}

func (w *Workspace) UpdateTask(ctx context.Context, id string, patch board.Patch) (board.Task, error) {
	var updated board.Task
	err := w.mutate(ctx, "update task", func(b *board.Board) (err error) {
		updated, err = b.Update(id, patch)
		return err
	})
	if err != nil {
		return board.Task{}, err
	}
	return updated, nil
}

// RemoveTask deletes the task. It reports false when there was no such task.
func (w *Workspace) RemoveTask(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := w.mutate(ctx, "remove task", func(b *board.Board) error {
		removed = b.Remove(id)
		return nil
	})
	if err != nil {
		return false, err
	}
	if removed {
		w.log.Info("task removed", "task", id)
	}
	return removed, nil
}

func (w *Workspace) MoveTask(ctx context.Context, id string, to board.Status, index int) ([]board.Task, error) {
	var tasks []board.Task
	err := w.mutate(ctx, "move task", func(b *board.Board) (err error) {
		tasks, err = b.Move(id, to, index)
		return err
	})
	if err != nil {
		return nil, err
	}
	w.log.Debug("task moved", "task", id, "status", to, "index", index)
	return tasks, nil
}

// ToggleChecklistItem flips one checklist item of a task.
func (w *Workspace) ToggleChecklistItem(ctx context.Context, taskID, itemID string) (board.Task, error) {
	var updated board.Task
	err := w.mutate(ctx, "toggle checklist item", func(b *board.Board) error {
		t, err := b.Get(taskID)
		if err != nil {
			return err
		}
		patch, ok := board.ToggleChecklistItem(t, itemID)
		if !ok {
			return &board.ValidationError{Field: "checklist", Reason: fmt.Sprintf("has no item %q", itemID)}
		}
		updated, err = b.Update(taskID, patch)
		return err
	})
	if err != nil {
		return board.Task{}, err
	}
	return updated, nil
}

// ImportTasks creates every input as one change. Nothing is kept if any
// input is invalid or the write fails.
func (w *Workspace) ImportTasks(ctx context.Context, inputs []board.CreateInput) ([]board.Task, error) {
	created := make([]board.Task, 0, len(inputs))
	err := w.mutate(ctx, "import tasks", func(b *board.Board) error {
		for i, in := range inputs {
			t, err := b.Create(in)
			if err != nil {
				return fmt.Errorf("task %d: %w", i+1, err)
			}
			created = append(created, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.log.Info("tasks imported", "count", len(created))
	return created, nil
}

// mutate applies fn to the board and persists the resulting difference in
// one write. When fn or the write fails the board is restored.
func (w *Workspace) mutate(ctx context.Context, op string, fn func(b *board.Board) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := w.board.Snapshot()
	if err := fn(w.board); err != nil {
		w.board.Restore(snap)
		return fmt.Errorf("%s: %w", op, err)
	}

	upserts, deletes := diffTasks(snap, w.board.List())
	if err := w.store.SyncTasks(ctx, w.userID, upserts, deletes); err != nil {
		w.board.Restore(snap)
		w.log.Warn("persisting tasks failed, reverted", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func diffTasks(prev, next []board.Task) (upserts []board.Task, deletes []string) {
	before := make(map[string]board.Task, len(prev))
	for _, t := range prev {
		before[t.ID] = t
	}
	for _, t := range next {
		old, ok := before[t.ID]
		if !ok || !old.Equal(t) {
			upserts = append(upserts, t)
		}
		delete(before, t.ID)
	}
	for id := range before {
		deletes = append(deletes, id)
	}
	return upserts, deletes
}
