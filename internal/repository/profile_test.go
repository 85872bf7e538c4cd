package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devconnector/devconnector-go/internal/model"
)

func seedUser(t *testing.T, repo *UserRepository, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "User " + email, Email: email, Password: "hash", Avatar: "//" + email}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return user
}

func TestProfileRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	owner := seedUser(t, users, "owner@example.com")
	from := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)

	p := &model.Profile{
		UserID: owner.ID,
		Status: "Developer",
		Skills: []string{"go", "sql"},
		Bio:    "hello",
		Social: model.Social{Twitter: "https://twitter.com/ada"},
		Experience: []model.Experience{
			{ID: "e1", Title: "Engineer", Company: "Acme", From: from},
		},
	}
	if err := profiles.Create(ctx, p); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Fatal("Create() should assign an ID")
	}

	got, err := profiles.GetByUserID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetByUserID() unexpected error: %v", err)
	}
	if got.Status != "Developer" || got.Bio != "hello" || len(got.Skills) != 2 {
		t.Errorf("GetByUserID() = %+v", got)
	}
	if got.Social.Twitter != "https://twitter.com/ada" {
		t.Errorf("social = %+v", got.Social)
	}
	if len(got.Experience) != 1 || !got.Experience[0].From.Equal(from) {
		t.Errorf("experience = %+v", got.Experience)
	}
	if got.Education == nil {
		t.Error("education should be an empty slice, not nil")
	}
}

func TestProfileRepository_CreateNormalizesLists(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, NewUserRepository(db), "lists@example.com")
	profiles := NewProfileRepository(db)

	p := &model.Profile{UserID: owner.ID, Status: "dev"}
	if err := profiles.Create(context.Background(), p); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if p.Skills == nil || p.Experience == nil || p.Education == nil {
		t.Errorf("Create() should leave empty lists, got %+v", p)
	}
}

func TestProfileRepository_DuplicateProfile(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, NewUserRepository(db), "dup@example.com")
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	if err := profiles.Create(ctx, &model.Profile{UserID: owner.ID, Status: "a"}); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	err := profiles.Create(ctx, &model.Profile{UserID: owner.ID, Status: "b"})
	if !errors.Is(err, ErrDuplicateProfile) {
		t.Fatalf("expected ErrDuplicateProfile, got %v", err)
	}
}

func TestProfileRepository_Update(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, NewUserRepository(db), "upd@example.com")
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	p := &model.Profile{UserID: owner.ID, Status: "Junior"}
	if err := profiles.Create(ctx, p); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	p.Status = "Senior"
	p.Education = []model.Education{{ID: "ed1", School: "MIT", Degree: "BSc", FieldOfStudy: "CS"}}
	if err := profiles.Update(ctx, p); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}

	got, err := profiles.GetByUserID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetByUserID() unexpected error: %v", err)
	}
	if got.ID != p.ID || got.Status != "Senior" || len(got.Education) != 1 {
		t.Errorf("GetByUserID() after update = %+v", got)
	}
}

func TestProfileRepository_Populated(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	first := seedUser(t, users, "first@example.com")
	second := seedUser(t, users, "second@example.com")
	for _, u := range []*model.User{first, second} {
		if err := profiles.Create(ctx, &model.Profile{UserID: u.ID, Status: "dev"}); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
	}

	got, err := profiles.GetPopulatedByUserID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetPopulatedByUserID() unexpected error: %v", err)
	}
	if got.User == nil || got.User.Name != first.Name || got.User.Avatar != first.Avatar {
		t.Errorf("joined user = %+v", got.User)
	}

	list, err := profiles.ListPopulated(ctx)
	if err != nil {
		t.Fatalf("ListPopulated() unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListPopulated() returned %d profiles, want 2", len(list))
	}
	if list[0].UserID != first.ID || list[1].UserID != second.ID {
		t.Errorf("ListPopulated() should return creation order")
	}
}

func TestProfileRepository_PopulatedOrphan(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	owner := seedUser(t, users, "orphan@example.com")
	if err := profiles.Create(ctx, &model.Profile{UserID: owner.ID, Status: "dev"}); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if _, err := users.Delete(ctx, owner.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	got, err := profiles.GetPopulatedByUserID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetPopulatedByUserID() unexpected error: %v", err)
	}
	if got.User != nil {
		t.Errorf("expected nil joined user, got %+v", got.User)
	}
}

func TestProfileRepository_NotFoundAndDelete(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, NewUserRepository(db), "del@example.com")
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	if _, err := profiles.GetByUserID(ctx, owner.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if _, err := profiles.GetPopulatedByUserID(ctx, owner.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	if err := profiles.Create(ctx, &model.Profile{UserID: owner.ID, Status: "dev"}); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	removed, err := profiles.DeleteByUserID(ctx, owner.ID)
	if err != nil || !removed {
		t.Fatalf("DeleteByUserID() = %v, %v; want true, nil", removed, err)
	}
	removed, err = profiles.DeleteByUserID(ctx, owner.ID)
	if err != nil || removed {
		t.Fatalf("second DeleteByUserID() = %v, %v; want false, nil", removed, err)
	}
}

func TestProfileRepository_ListEmpty(t *testing.T) {
	list, err := NewProfileRepository(newTestDB(t)).ListPopulated(context.Background())
	if err != nil {
		t.Fatalf("ListPopulated() unexpected error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("ListPopulated() = %v, want empty non-nil slice", list)
	}
}
