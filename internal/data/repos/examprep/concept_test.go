package examprep

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/peak10/examprep-backend/internal/data/repos/testutil"
	"github.com/peak10/examprep-backend/internal/types"
)

func TestConceptRepoGetByChapterIDOrdersByOrderNumber(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewConceptRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	ch := testutil.SeedChapter(t, gdb, "Optics")
	otherCh := testutil.SeedChapter(t, gdb, "Waves")

	// Seeded out of order on purpose.
	testutil.SeedConcept(t, gdb, ch.ID, "refraction", 3)
	testutil.SeedConcept(t, gdb, ch.ID, "reflection", 1)
	testutil.SeedConcept(t, gdb, ch.ID, "dispersion", 2)
	testutil.SeedConcept(t, gdb, otherCh.ID, "interference", 1)

	got, err := repo.GetByChapterID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("GetByChapterID: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(got) = %d", len(got))
	}
	wantNames := []string{"reflection", "dispersion", "refraction"}
	for i, c := range got {
		if c.Name != wantNames[i] {
			t.Fatalf("got[%d].Name = %q, want %q", i, c.Name, wantNames[i])
		}
	}
}

func TestConceptRepoGetByChapterIDNilChapter(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewConceptRepo(gdb, testutil.Logger(t))

	got, err := repo.GetByChapterID(context.Background(), nil, uuid.Nil)
	if err != nil {
		t.Fatalf("GetByChapterID: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len(got) = %d", len(got))
	}
}

func TestConceptRepoFullDeleteByIDs(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewConceptRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	ch := testutil.SeedChapter(t, gdb, "Optics")
	a := testutil.SeedConcept(t, gdb, ch.ID, "reflection", 1)
	b := testutil.SeedConcept(t, gdb, ch.ID, "refraction", 2)

	if err := repo.FullDeleteByIDs(ctx, nil, []uuid.UUID{a.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}
	// Empty input is a no-op, not an error.
	if err := repo.FullDeleteByIDs(ctx, nil, nil); err != nil {
		t.Fatalf("FullDeleteByIDs(nil): %v", err)
	}

	remaining, err := repo.GetByChapterID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("GetByChapterID: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != b.ID {
		t.Fatalf("remaining = %+v", remaining)
	}
}

func TestConceptRepoFullDeleteByChapterID(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewConceptRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	ch := testutil.SeedChapter(t, gdb, "Optics")
	keep := testutil.SeedChapter(t, gdb, "Waves")
	testutil.SeedConcept(t, gdb, ch.ID, "reflection", 1)
	testutil.SeedConcept(t, gdb, ch.ID, "refraction", 2)
	kept := testutil.SeedConcept(t, gdb, keep.ID, "interference", 1)

	if err := repo.FullDeleteByChapterID(ctx, nil, ch.ID); err != nil {
		t.Fatalf("FullDeleteByChapterID: %v", err)
	}

	gone, err := repo.GetByChapterID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("GetByChapterID: %v", err)
	}
	if len(gone) != 0 {
		t.Fatalf("len(gone) = %d", len(gone))
	}
	still, err := repo.GetByChapterID(ctx, nil, keep.ID)
	if err != nil {
		t.Fatalf("GetByChapterID: %v", err)
	}
	if len(still) != 1 || still[0].ID != kept.ID {
		t.Fatalf("still = %+v", still)
	}
}

func TestConceptRepoCreateInTransactionRollsBack(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewConceptRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	ch := testutil.SeedChapter(t, gdb, "Optics")
	now := time.Now().UTC()

	tx := gdb.WithContext(ctx).Begin()
	if tx.Error != nil {
		t.Fatalf("begin: %v", tx.Error)
	}
	rows := []*types.Concept{{
		ID:                 uuid.New(),
		ChapterID:          ch.ID,
		Name:               "reflection",
		ConceptOrderNumber: 1,
		Weightage:          1,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}}
	if _, err := repo.Create(ctx, tx, rows); err != nil {
		t.Fatalf("Create in tx: %v", err)
	}
	if err := tx.Rollback().Error; err != nil {
		t.Fatalf("rollback: %v", err)
	}

	got, err := repo.GetByChapterID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("GetByChapterID: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("rolled-back create left %d rows", len(got))
	}
}
