package store

import (
	"context"
	"errors"
	"testing"
)

// setupTestDB opens a fresh in-memory database.
func setupTestDB(t *testing.T) *Calculations {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	return NewCalculations(db)
}

func float(v float64) *float64 { return &v }

func TestCalculations_CreateAndFindByID(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t)

	c := &Calculation{Type: "add", A: 10, B: 5, Result: float(15)}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.ID == 0 {
		t.Fatal("expected ID to be assigned")
	}
	if c.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	found, err := repo.FindByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Type != "add" || found.A != 10 || found.B != 5 {
		t.Errorf("unexpected record %+v", found)
	}
	if found.Result == nil || *found.Result != 15 {
		t.Errorf("expected result 15, got %v", found.Result)
	}

	if _, err := repo.FindByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCalculations_FindAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t)

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty database, got %d rows", len(all))
	}

	for _, op := range []string{"add", "subtract", "multiply"} {
		if err := repo.Create(ctx, &Calculation{Type: op, A: 1, B: 1}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	all, err = repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all))
	}
	for i, want := range []string{"add", "subtract", "multiply"} {
		if all[i].Type != want {
			t.Errorf("row %d: expected %q, got %q", i, want, all[i].Type)
		}
	}
}

func TestCalculations_Update(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t)

	c := &Calculation{Type: "add", A: 1, B: 2, Result: float(3)}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("existing", func(t *testing.T) {
		c.Type = "multiply"
		c.A = 0
		c.Result = float(0)
		if err := repo.Update(ctx, c); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		found, err := repo.FindByID(ctx, c.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Type != "multiply" || found.A != 0 || found.B != 2 {
			t.Errorf("unexpected record after update %+v", found)
		}
	})

	t.Run("missing", func(t *testing.T) {
		err := repo.Update(ctx, &Calculation{ID: 404, Type: "add"})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCalculations_Delete(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t)

	c := &Calculation{Type: "subtract", A: 5, B: 3}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.FindByID(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUsers_CreateRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	users := NewUsers(db)

	u := &User{Email: "ada@example.com", PasswordHash: "hash"}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err = users.Create(ctx, &User{Email: "ada@example.com", PasswordHash: "other"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	found, err := users.FindByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if found.ID != u.ID {
		t.Errorf("expected id %d, got %d", u.ID, found.ID)
	}

	if _, err := users.FindByID(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
