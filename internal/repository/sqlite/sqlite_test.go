package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"familytree/internal/domain"
	"familytree/internal/loader"
	"familytree/internal/repository"
)

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func smallFamily(t *testing.T) *domain.Family {
	t.Helper()
	family := domain.NewFamily("Shan", "Anga")
	_, err := family.AddChild("Anga", "Chit", "Male")
	assertNoError(t, err)
	_, err = family.Marry("Chit", "Amba", "Female")
	assertNoError(t, err)
	_, err = family.AddChild("Amba", "Dritha", "Female")
	assertNoError(t, err)
	return family
}

func TestWriteFamily(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	assertNoError(t, repo.WriteFamily(ctx, smallFamily(t)))

	people, err := repo.ListPeople(ctx)
	assertNoError(t, err)

	expected := []repository.PersonRecord{
		{Position: 0, Name: "Shan", Gender: "MALE", Spouse: "Anga"},
		{Position: 1, Name: "Anga", Gender: "FEMALE", Spouse: "Shan"},
		{Position: 2, Name: "Chit", Gender: "MALE", Mother: "Anga", Spouse: "Amba"},
		{Position: 3, Name: "Amba", Gender: "FEMALE", Spouse: "Chit"},
		{Position: 4, Name: "Dritha", Gender: "FEMALE", Mother: "Amba"},
	}
	if !reflect.DeepEqual(expected, people) {
		t.Errorf("expected people %+v, got %+v", expected, people)
	}

	events, err := repo.ListEvents(ctx)
	assertNoError(t, err)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[1].Kind != "marriage" || events[1].Anchor != "Chit" || events[1].Name != "Amba" {
		t.Errorf("unexpected marriage event %+v", events[1])
	}

	father, mother, err := repo.Founders(ctx)
	assertNoError(t, err)
	if father != "Shan" || mother != "Anga" {
		t.Errorf("expected founders Shan and Anga, got %s and %s", father, mother)
	}
}

func TestWriteFamilyReplaces(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	kingShan, err := loader.KingShan()
	assertNoError(t, err)
	assertNoError(t, repo.WriteFamily(ctx, kingShan))

	people, err := repo.ListPeople(ctx)
	assertNoError(t, err)
	if len(people) != 31 {
		t.Fatalf("expected 31 people, got %d", len(people))
	}

	assertNoError(t, repo.WriteFamily(ctx, smallFamily(t)))

	people, err = repo.ListPeople(ctx)
	assertNoError(t, err)
	if len(people) != 5 {
		t.Errorf("expected snapshot to be replaced with 5 people, got %d", len(people))
	}
}

func TestEmptyRepository(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	people, err := repo.ListPeople(ctx)
	assertNoError(t, err)
	if people == nil || len(people) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", people)
	}

	father, mother, err := repo.Founders(ctx)
	assertNoError(t, err)
	if father != "" || mother != "" {
		t.Errorf("expected no founders, got %q %q", father, mother)
	}
}

func TestFileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "family.db")

	repo, err := New(path)
	assertNoError(t, err)
	assertNoError(t, repo.WriteFamily(ctx, smallFamily(t)))
	assertNoError(t, repo.Close())

	reopened, err := New(path)
	assertNoError(t, err)
	defer reopened.Close()

	events, err := reopened.ListEvents(ctx)
	assertNoError(t, err)
	if len(events) != 3 {
		t.Errorf("expected 3 events after reopen, got %d", len(events))
	}
}
