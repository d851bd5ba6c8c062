package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sadopc/mindease/internal/board"
)

const tasksCollection = "tasks"

// ListTasks returns the user's tasks ordered by creation time.
func (s *Store) ListTasks(ctx context.Context, userID string) ([]board.Task, error) {
	docs, err := s.ListDocuments(ctx, userID, tasksCollection, "createdAt")
	if err != nil {
		return nil, err
	}
	tasks := make([]board.Task, 0, len(docs))
	for _, d := range docs {
		var t board.Task
		if err := json.Unmarshal(d.Data, &t); err != nil {
			return nil, fmt.Errorf("decode task %s: %w", d.ID, err)
		}
		t.ID = d.ID
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *Store) SaveTask(ctx context.Context, userID string, t board.Task) error {
	return s.PutDocument(ctx, userID, tasksCollection, t.ID, t)
}

func (s *Store) DeleteTask(ctx context.Context, userID, taskID string) error {
	return s.DeleteDocument(ctx, userID, tasksCollection, taskID)
}

// SyncTasks writes upserts and removes deletes in one transaction.
func (s *Store) SyncTasks(ctx context.Context, userID string, upserts []board.Task, deletes []string) error {
	if len(upserts) == 0 && len(deletes) == 0 {
		return nil
	}
	return s.WithTx(ctx, func(tx *Tx) error {
		for _, t := range upserts {
			if err := tx.PutDocument(ctx, userID, tasksCollection, t.ID, t); err != nil {
				return err
			}
		}
		for _, id := range deletes {
			if err := tx.DeleteDocument(ctx, userID, tasksCollection, id); err != nil {
				return err
			}
		}
		return nil
	})
}
