package board

import "testing"

func TestSuggestChecklist(t *testing.T) {
	tests := []struct {
		status Status
		want   int
	}{
		{StatusTodo, 3},
		{StatusDoing, 3},
		{StatusDone, 0},
	}
	for _, tt := range tests {
		items := SuggestChecklist(tt.status)
		if len(items) != tt.want {
			t.Errorf("SuggestChecklist(%s) = %d items, want %d", tt.status, len(items), tt.want)
		}
		seen := map[string]bool{}
		for _, item := range items {
			if item.ID == "" || item.Done {
				t.Errorf("suggested item not fresh: %+v", item)
			}
			if seen[item.ID] {
				t.Errorf("duplicate id %s", item.ID)
			}
			seen[item.ID] = true
		}
	}
}

func TestNextChecklistItem(t *testing.T) {
	items := []ChecklistItem{
		{ID: "a", Text: "one", Done: true},
		{ID: "b", Text: "two"},
		{ID: "c", Text: "three"},
	}
	next, ok := NextChecklistItem(items)
	if !ok || next.ID != "b" {
		t.Fatalf("next = %+v, %v; want b", next, ok)
	}

	items[1].Done, items[2].Done = true, true
	if _, ok := NextChecklistItem(items); ok {
		t.Fatal("expected no open item")
	}
	if _, ok := NextChecklistItem(nil); ok {
		t.Fatal("expected no open item for empty list")
	}
}

func TestChecklistProgress(t *testing.T) {
	done, total := ChecklistProgress([]ChecklistItem{{Done: true}, {}, {Done: true}})
	if done != 2 || total != 3 {
		t.Fatalf("progress = %d/%d, want 2/3", done, total)
	}
}

func TestToggleChecklistItem(t *testing.T) {
	task := Task{ID: "t", Checklist: []ChecklistItem{{ID: "a", Text: "one"}, {ID: "b", Text: "two"}}}

	patch, ok := ToggleChecklistItem(task, "b")
	if !ok {
		t.Fatal("expected item b to be found")
	}
	if !(*patch.Checklist)[1].Done {
		t.Fatal("item b not toggled")
	}
	if task.Checklist[1].Done {
		t.Fatal("toggle mutated the task")
	}

	if _, ok := ToggleChecklistItem(task, "zzz"); ok {
		t.Fatal("unknown item should not be found")
	}
}

func TestToggleThroughBoard(t *testing.T) {
	b := newTestBoard(t)
	task, err := b.Create(CreateInput{Title: "Write essay", Checklist: SuggestChecklist(StatusTodo)})
	if err != nil {
		t.Fatal(err)
	}
	first := task.Checklist[0]

	patch, _ := ToggleChecklistItem(task, first.ID)
	got, err := b.Update(task.ID, patch)
	if err != nil {
		t.Fatal(err)
	}
	if done, total := ChecklistProgress(got.Checklist); done != 1 || total != 3 {
		t.Fatalf("progress = %d/%d, want 1/3", done, total)
	}
	next, _ := NextChecklistItem(got.Checklist)
	if next.ID == first.ID {
		t.Fatal("next item should skip the completed one")
	}
}

func TestChecklistItemsWithoutIDs(t *testing.T) {
	b := newTestBoard(t)
	task, err := b.Create(CreateInput{Title: "Seeded", Checklist: []ChecklistItem{{Text: "a"}, {Text: "b"}}})
	if err != nil {
		t.Fatal(err)
	}
	if task.Checklist[0].ID == "" || task.Checklist[0].ID == task.Checklist[1].ID {
		t.Fatalf("checklist ids = %q, %q", task.Checklist[0].ID, task.Checklist[1].ID)
	}

	for range 2 {
		next, ok := NextChecklistItem(task.Checklist)
		if !ok {
			t.Fatal("ran out of open items")
		}
		patch, _ := ToggleChecklistItem(task, next.ID)
		if task, err = b.Update(task.ID, patch); err != nil {
			t.Fatal(err)
		}
	}
	if done, total := ChecklistProgress(task.Checklist); done != 2 || total != 2 {
		t.Fatalf("progress = %d/%d, want 2/2", done, total)
	}
}

func TestChecklistPatchDeduplicatesIDs(t *testing.T) {
	b := newTestBoard(t)
	task := mustCreate(t, b, "Patched", StatusTodo)
	items := []ChecklistItem{{ID: "same", Text: "a"}, {ID: "same", Text: "b"}, {Text: "c"}}

	got, err := b.Update(task.ID, Patch{Checklist: &items})
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, item := range got.Checklist {
		if item.ID == "" || seen[item.ID] {
			t.Fatalf("checklist = %+v, want unique ids", got.Checklist)
		}
		seen[item.ID] = true
	}
	if got.Checklist[0].ID != "same" {
		t.Fatalf("first id = %q, want it kept", got.Checklist[0].ID)
	}
	if items[1].ID != "same" || items[2].ID != "" {
		t.Fatal("caller's slice was modified")
	}
}

func TestNewChecklistItemTrims(t *testing.T) {
	item := NewChecklistItem("  breathe  ")
	if item.Text != "breathe" || item.ID == "" || item.Done {
		t.Fatalf("item = %+v", item)
	}
}
