package chart

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockChartRepo struct {
	charts map[string]*Chart // keyed by accountID+"/"+fileNo
}

func newMockChartRepo() *mockChartRepo {
	return &mockChartRepo{charts: make(map[string]*Chart)}
}

func chartKey(accountID uuid.UUID, fileNo string) string {
	return accountID.String() + "/" + fileNo
}

func (m *mockChartRepo) Upsert(_ context.Context, ch *Chart, expectedVersion int) error {
	key := chartKey(ch.AccountID, ch.FileNo)
	existing, ok := m.charts[key]
	if !ok {
		ch.ID = uuid.New()
		ch.Version = 1
		ch.CreatedAt = time.Now()
		ch.UpdatedAt = ch.CreatedAt
		cp := *ch
		m.charts[key] = &cp
		return nil
	}
	if ch.ChartType != existing.ChartType {
		return ErrChartTypeImmutable
	}
	if expectedVersion != 0 && expectedVersion != existing.Version {
		return ErrConflict
	}
	ch.ID = existing.ID
	ch.CreatedAt = existing.CreatedAt
	ch.Version = existing.Version + 1
	ch.UpdatedAt = time.Now()
	cp := *ch
	m.charts[key] = &cp
	return nil
}

func (m *mockChartRepo) GetByFileNo(_ context.Context, accountID uuid.UUID, fileNo string) (*Chart, error) {
	ch, ok := m.charts[chartKey(accountID, fileNo)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *ch
	return &cp, nil
}

func (m *mockChartRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*Chart, error) {
	var out []*Chart
	for _, ch := range m.charts {
		if ch.AccountID == accountID {
			cp := *ch
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockChartRepo) Delete(_ context.Context, accountID uuid.UUID, fileNo string) error {
	key := chartKey(accountID, fileNo)
	if _, ok := m.charts[key]; !ok {
		return ErrNotFound
	}
	delete(m.charts, key)
	return nil
}

func validChart(fileNo string, ct ChartType) *Chart {
	ch := &Chart{
		FileNo:    fileNo,
		ChartType: ct,
		VisitDate: "2026-03-14",
	}
	ch.Data.Sex = "F"
	ch.Data.Age = "30"
	return ch
}

func TestSave_CreatesNewChart(t *testing.T) {
	repo := newMockChartRepo()
	svc := NewService(repo)
	aid := uuid.New()

	ch := validChart("CH-001", TypeNew)
	if err := svc.Save(context.Background(), aid, ch, 0); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ch.Version != 1 {
		t.Errorf("version = %d, want 1", ch.Version)
	}
	if ch.AccountID != aid {
		t.Errorf("account id not stamped from session")
	}

	got, err := svc.Get(context.Background(), aid, "CH-001")
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if got.ChartType != TypeNew {
		t.Errorf("chart type = %q, want %q", got.ChartType, TypeNew)
	}
}

func TestSave_SecondPayloadWins(t *testing.T) {
	repo := newMockChartRepo()
	svc := NewService(repo)
	aid := uuid.New()

	first := validChart("CH-001", TypeNew)
	first.Data.ChiefComplaint.SelectedComplaints = []string{"Headache"}
	if err := svc.Save(context.Background(), aid, first, 0); err != nil {
		t.Fatalf("first save: %v", err)
	}
	created := first.CreatedAt

	second := validChart("CH-001", TypeNew)
	second.Data.ChiefComplaint.SelectedComplaints = []string{"Low back pain"}
	if err := svc.Save(context.Background(), aid, second, first.Version); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := svc.Get(context.Background(), aid, "CH-001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Data.ChiefComplaint.SelectedComplaints) != 1 || got.Data.ChiefComplaint.SelectedComplaints[0] != "Low back pain" {
		t.Errorf("payload not replaced: %v", got.Data.ChiefComplaint.SelectedComplaints)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at changed on upsert")
	}
	if got.Version != 2 {
		t.Errorf("version = %d, want 2", got.Version)
	}
}

func TestSave_ValidationLeavesStoreUntouched(t *testing.T) {
	repo := newMockChartRepo()
	svc := NewService(repo)
	aid := uuid.New()

	ch := validChart("", TypeNew)
	ch.Data.Sex = ""
	err := svc.Save(context.Background(), aid, ch, 0)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(verr.Missing) != 2 {
		t.Errorf("missing = %v, want file_no and sex", verr.Missing)
	}
	if len(repo.charts) != 0 {
		t.Errorf("store has %d charts after failed validation, want 0", len(repo.charts))
	}
}

func TestSave_UnknownChartType(t *testing.T) {
	svc := NewService(newMockChartRepo())
	ch := validChart("CH-001", ChartType("annual"))
	if err := svc.Save(context.Background(), uuid.New(), ch, 0); err == nil {
		t.Fatal("expected error for unknown chart type")
	}
}

func TestSave_StaleVersionConflicts(t *testing.T) {
	repo := newMockChartRepo()
	svc := NewService(repo)
	aid := uuid.New()

	if err := svc.Save(context.Background(), aid, validChart("CH-001", TypeNew), 0); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.Save(context.Background(), aid, validChart("CH-001", TypeNew), 0); err != nil {
		t.Fatalf("bump: %v", err)
	}

	stale := validChart("CH-001", TypeNew)
	err := svc.Save(context.Background(), aid, stale, 1)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestSave_ChartTypeImmutable(t *testing.T) {
	repo := newMockChartRepo()
	svc := NewService(repo)
	aid := uuid.New()

	if err := svc.Save(context.Background(), aid, validChart("CH-001", TypeNew), 0); err != nil {
		t.Fatalf("seed: %v", err)
	}
	err := svc.Save(context.Background(), aid, validChart("CH-001", TypeFollowUp), 0)
	if !errors.Is(err, ErrChartTypeImmutable) {
		t.Fatalf("err = %v, want ErrChartTypeImmutable", err)
	}
}

func TestSave_DerivesCPT(t *testing.T) {
	repo := newMockChartRepo()
	svc := NewService(repo)
	aid := uuid.New()

	ch := validChart("CH-001", TypeFollowUp)
	ch.Data.Diagnosis.SelectedTreatment = "Cupping"
	if err := svc.Save(context.Background(), aid, ch, 0); err != nil {
		t.Fatalf("save: %v", err)
	}
	want := "99212, 97813, 97814, 97140"
	if ch.Data.Diagnosis.CPT != want {
		t.Errorf("cpt = %q, want %q", ch.Data.Diagnosis.CPT, want)
	}
}

func TestSave_NormalizesSelections(t *testing.T) {
	repo := newMockChartRepo()
	svc := NewService(repo)
	aid := uuid.New()

	ch := validChart("CH-001", TypeNew)
	ch.Data.ROS.Eye.Symptoms = []string{NormalSentinel, "dry"}
	ch.Data.Pulse.Overall = []string{"Floating", "Sinking"}
	ch.Data.Tongue.Coating.Quality = []string{"Thick", "Greasy", "Dry"}
	if err := svc.Save(context.Background(), aid, ch, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}

	stored, err := svc.Get(context.Background(), aid, "CH-001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(stored.Data.ROS.Eye.Symptoms, []string{"dry"}) {
		t.Errorf("stored eye symptoms = %v, want [dry]", stored.Data.ROS.Eye.Symptoms)
	}
	if !reflect.DeepEqual(stored.Data.Pulse.Overall, []string{"Sinking"}) {
		t.Errorf("stored pulse = %v, want [Sinking]", stored.Data.Pulse.Overall)
	}
	if !reflect.DeepEqual(stored.Data.Tongue.Coating.Quality, []string{"Greasy", "Dry"}) {
		t.Errorf("stored coating = %v, want [Greasy Dry]", stored.Data.Tongue.Coating.Quality)
	}
}

func TestGet_EmptyFileNo(t *testing.T) {
	svc := NewService(newMockChartRepo())
	if _, err := svc.Get(context.Background(), uuid.New(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete_Absent(t *testing.T) {
	svc := NewService(newMockChartRepo())
	if err := svc.Delete(context.Background(), uuid.New(), "CH-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestList_ScopedToAccount(t *testing.T) {
	repo := newMockChartRepo()
	svc := NewService(repo)
	alice, bob := uuid.New(), uuid.New()

	if err := svc.Save(context.Background(), alice, validChart("A-1", TypeNew), 0); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Save(context.Background(), bob, validChart("B-1", TypeNew), 0); err != nil {
		t.Fatalf("save: %v", err)
	}

	items, err := svc.List(context.Background(), alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].FileNo != "A-1" {
		t.Errorf("list = %v, want only A-1", items)
	}
}
