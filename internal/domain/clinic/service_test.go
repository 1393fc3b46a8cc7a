package clinic

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type mockProfileRepo struct {
	profiles map[uuid.UUID]*Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[uuid.UUID]*Profile)}
}

func (m *mockProfileRepo) Upsert(_ context.Context, p *Profile) error {
	if existing, ok := m.profiles[p.AccountID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = uuid.New()
	}
	cp := *p
	m.profiles[p.AccountID] = &cp
	return nil
}

func (m *mockProfileRepo) GetByAccount(_ context.Context, accountID uuid.UUID) (*Profile, error) {
	p, ok := m.profiles[accountID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func TestSave_StampsAccountID(t *testing.T) {
	svc := NewService(newMockProfileRepo())
	aid := uuid.New()

	p := &Profile{AccountID: uuid.New(), ClinicName: "East Wind Clinic"}
	if err := svc.Save(context.Background(), aid, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	if p.AccountID != aid {
		t.Error("payload account id not overridden by session account id")
	}

	got, err := svc.Get(context.Background(), aid)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ClinicName != "East Wind Clinic" {
		t.Errorf("clinic name = %q", got.ClinicName)
	}
}

func TestSave_UpsertKeepsOneProfile(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewService(repo)
	aid := uuid.New()

	if err := svc.Save(context.Background(), aid, &Profile{ClinicName: "First"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	firstID := repo.profiles[aid].ID

	if err := svc.Save(context.Background(), aid, &Profile{ClinicName: "Second"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(repo.profiles) != 1 {
		t.Fatalf("profiles = %d, want 1 per account", len(repo.profiles))
	}
	got, _ := svc.Get(context.Background(), aid)
	if got.ClinicName != "Second" || got.ID != firstID {
		t.Errorf("upsert did not replace in place: %+v", got)
	}
}

func TestGet_Absent(t *testing.T) {
	svc := NewService(newMockProfileRepo())
	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
