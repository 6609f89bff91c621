package profiles

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fixedService() *Service {
	svc := NewService(NewMemoryRepo())
	svc.Now = func() time.Time { return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func strPtr(s string) *string { return &s }

func TestCreateAndGet(t *testing.T) {
	svc := fixedService()
	ctx := context.Background()

	created, err := svc.Create(ctx, Profile{ID: "u1", Email: " a@example.com ", FullName: "Ada", DateOfBirth: "1990-05-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Email != "a@example.com" {
		t.Fatalf("expected trimmed email, got %q", created.Email)
	}
	got, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FullName != "Ada" || got.DateOfBirth != "1990-05-01" {
		t.Fatalf("unexpected profile %+v", got)
	}
}

func TestCreateTwiceFails(t *testing.T) {
	svc := fixedService()
	ctx := context.Background()
	p := Profile{ID: "u1", Email: "a@example.com"}
	if _, err := svc.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, p); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestUpdateAppliesOnlyGivenFields(t *testing.T) {
	svc := fixedService()
	ctx := context.Background()
	if _, err := svc.Create(ctx, Profile{ID: "u1", Email: "a@example.com", FullName: "Ada", DateOfBirth: "1990-05-01"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, "u1", Update{FullName: strPtr("Ada Lovelace")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FullName != "Ada Lovelace" || updated.DateOfBirth != "1990-05-01" {
		t.Fatalf("unexpected profile %+v", updated)
	}
}

func TestUpdateRejectsInvalidInputWithoutWriting(t *testing.T) {
	svc := fixedService()
	ctx := context.Background()
	if _, err := svc.Create(ctx, Profile{ID: "u1", Email: "a@example.com", FullName: "Ada", DateOfBirth: "1990-05-01"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	cases := []Update{
		{FullName: strPtr("   ")},
		{DateOfBirth: strPtr("05/01/1990")},
		{DateOfBirth: strPtr("2020-01-01")},
		{FullName: strPtr("New"), DateOfBirth: strPtr("2030-01-01")},
	}
	for _, upd := range cases {
		if _, err := svc.Update(ctx, "u1", upd); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation for %+v, got %v", upd, err)
		}
	}
	got, _ := svc.Get(ctx, "u1")
	if got.FullName != "Ada" {
		t.Fatalf("profile changed after failed update: %+v", got)
	}
}

func TestUpdateMissingProfile(t *testing.T) {
	svc := fixedService()
	if _, err := svc.Update(context.Background(), "nobody", Update{FullName: strPtr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAgeCountsBirthdays(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		born string
		want int
	}{
		{born: "2013-03-10", want: 13},
		{born: "2013-03-11", want: 12},
		{born: "2000-12-31", want: 25},
	}
	for _, tt := range tests {
		born, _ := time.Parse(DateLayout, tt.born)
		if got := Age(born, now); got != tt.want {
			t.Fatalf("Age(%s) = %d, want %d", tt.born, got, tt.want)
		}
	}
}

func TestValidateDateOfBirthMinimumAge(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	if err := ValidateDateOfBirth("2013-03-10", now); err != nil {
		t.Fatalf("expected 13 year old to pass: %v", err)
	}
	if err := ValidateDateOfBirth("2013-03-11", now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected under-age rejection, got %v", err)
	}
}
