package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"medicine-tracker/internal/domain/history"
	"medicine-tracker/internal/domain/medicines"
)

func TestMedicinesRepo_ListKeepsInsertionOrder(t *testing.T) {
	repo := NewMedicinesRepo()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		err := repo.Create(ctx, medicines.Medicine{ID: id, Name: "med-" + id, Times: []string{"08:00"}})
		if err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, want := range []string{"c", "a", "b"} {
		if all[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, all[i].ID)
		}
	}

	// update no reordena
	if err := repo.Update(ctx, medicines.Medicine{ID: "c", Name: "renamed", Times: []string{"09:00"}}); err != nil {
		t.Fatalf("update: %v", err)
	}
	all, _ = repo.List(ctx)
	if all[0].ID != "c" || all[0].Name != "renamed" {
		t.Fatalf("expected c first after update, got %v", all[0])
	}

	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, _ = repo.List(ctx)
	if len(all) != 2 || all[0].ID != "c" || all[1].ID != "b" {
		t.Fatalf("expected [c b] after delete, got %v", all)
	}
}

func TestMedicinesRepo_NotFound(t *testing.T) {
	repo := NewMedicinesRepo()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, medicines.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, medicines.Medicine{ID: "nope"}); !errors.Is(err, medicines.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "nope"); !errors.Is(err, medicines.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestMedicinesRepo_RejectsDuplicateCreate(t *testing.T) {
	repo := NewMedicinesRepo()
	ctx := context.Background()

	m := medicines.Medicine{ID: "1", Name: "Aspirin"}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, m); err == nil {
		t.Fatal("expected error on duplicate create")
	}
}

func TestHistoryRepo_EvictsBeyondCapacity(t *testing.T) {
	repo := NewHistoryRepo()
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	for i := 0; i <= history.Capacity; i++ { // Capacity+1 inserciones
		e := history.Entry{
			ID:           fmt.Sprintf("e%d", i),
			Action:       history.ActionAdded,
			MedicineName: "Aspirin",
			Timestamp:    base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Insert(ctx, e); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != history.Capacity {
		t.Fatalf("expected %d entries after overflow, got %d", history.Capacity, len(all))
	}
	// la más nueva primero, la más vieja (e0) evicted
	if all[0].ID != fmt.Sprintf("e%d", history.Capacity) {
		t.Fatalf("expected newest entry first, got %s", all[0].ID)
	}
	for _, e := range all {
		if e.ID == "e0" {
			t.Fatal("oldest entry should have been evicted")
		}
	}
}

func TestHistoryRepo_RecentClampsToSize(t *testing.T) {
	repo := NewHistoryRepo()
	ctx := context.Background()

	repo.Insert(ctx, history.Entry{ID: "1", Action: history.ActionAdded, MedicineName: "Aspirin"})

	got, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
}
