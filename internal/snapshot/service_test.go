package snapshot

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/acuchart/acuchart/internal/domain/chart"
	"github.com/acuchart/acuchart/internal/domain/clinic"
)

type memStore struct {
	charts   map[string]*chart.Chart
	profiles map[uuid.UUID]*clinic.Profile
}

func newMemStore() *memStore {
	return &memStore{
		charts:   make(map[string]*chart.Chart),
		profiles: make(map[uuid.UUID]*clinic.Profile),
	}
}

func (m *memStore) key(accountID uuid.UUID, fileNo string) string {
	return accountID.String() + "/" + fileNo
}

func (m *memStore) List(_ context.Context, accountID uuid.UUID) ([]*chart.Chart, error) {
	var out []*chart.Chart
	for _, ch := range m.charts {
		if ch.AccountID == accountID {
			cp := *ch
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) Save(_ context.Context, accountID uuid.UUID, ch *chart.Chart, _ int) error {
	key := m.key(accountID, ch.FileNo)
	if existing, ok := m.charts[key]; ok {
		if ch.ChartType != existing.ChartType {
			return chart.ErrChartTypeImmutable
		}
		ch.Version = existing.Version + 1
	} else {
		ch.Version = 1
	}
	ch.AccountID = accountID
	cp := *ch
	m.charts[key] = &cp
	return nil
}

func (m *memStore) Delete(_ context.Context, accountID uuid.UUID, fileNo string) error {
	key := m.key(accountID, fileNo)
	if _, ok := m.charts[key]; !ok {
		return chart.ErrNotFound
	}
	delete(m.charts, key)
	return nil
}

func (m *memStore) Get(_ context.Context, accountID uuid.UUID) (*clinic.Profile, error) {
	p, ok := m.profiles[accountID]
	if !ok {
		return nil, clinic.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) SaveProfile(_ context.Context, accountID uuid.UUID, p *clinic.Profile) error {
	p.AccountID = accountID
	cp := *p
	m.profiles[accountID] = &cp
	return nil
}

// profileStore adapts memStore to the ProfileStore method set without
// colliding with the chart Save.
type profileStore struct{ *memStore }

func (p profileStore) Save(ctx context.Context, accountID uuid.UUID, prof *clinic.Profile) error {
	return p.SaveProfile(ctx, accountID, prof)
}

func seedChart(fileNo string, ct chart.ChartType) *chart.Chart {
	ch := &chart.Chart{FileNo: fileNo, ChartType: ct}
	ch.Data.Sex = "F"
	ch.Data.Age = "42"
	return ch
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := newMemStore()
	svc := NewService(src, profileStore{src})
	aid := uuid.New()

	for _, ch := range []*chart.Chart{seedChart("CH-001", chart.TypeNew), seedChart("CH-002", chart.TypeFollowUp)} {
		if err := src.Save(context.Background(), aid, ch, 0); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if err := src.SaveProfile(context.Background(), aid, &clinic.Profile{ClinicName: "East Wind Clinic"}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	snap, err := svc.Export(context.Background(), aid)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(snap.Charts) != 2 || snap.ClinicProfile == nil {
		t.Fatalf("snapshot incomplete: %d charts, profile %v", len(snap.Charts), snap.ClinicProfile)
	}

	// the snapshot survives a trip through its JSON form
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored Snapshot
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	dst := newMemStore()
	dstSvc := NewService(dst, profileStore{dst})
	other := uuid.New()

	report, err := dstSvc.Import(context.Background(), other, &restored, false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Imported != 2 || len(report.Skipped) != 0 {
		t.Fatalf("report = %+v, want 2 imported", report)
	}

	charts, _ := dst.List(context.Background(), other)
	if len(charts) != 2 {
		t.Fatalf("restored %d charts, want 2", len(charts))
	}
	for _, ch := range charts {
		if ch.AccountID != other {
			t.Errorf("chart %s not re-keyed to importing account", ch.FileNo)
		}
	}
	if p, err := dst.Get(context.Background(), other); err != nil || p.ClinicName != "East Wind Clinic" {
		t.Errorf("profile not restored: %v %v", p, err)
	}
}

func TestImport_AdditiveKeepsExisting(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, profileStore{store})
	aid := uuid.New()

	if err := store.Save(context.Background(), aid, seedChart("LOCAL-1", chart.TypeNew), 0); err != nil {
		t.Fatalf("seed: %v", err)
	}

	snap := &Snapshot{
		SchemaVersion: SchemaVersion,
		Charts:        []*chart.Chart{seedChart("IMP-1", chart.TypeNew)},
	}
	report, err := svc.Import(context.Background(), aid, snap, false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Imported != 1 || report.Purged != 0 {
		t.Fatalf("report = %+v", report)
	}
	charts, _ := store.List(context.Background(), aid)
	if len(charts) != 2 {
		t.Fatalf("got %d charts, want existing plus imported", len(charts))
	}
}

func TestImport_PurgeReplacesStore(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, profileStore{store})
	aid := uuid.New()

	if err := store.Save(context.Background(), aid, seedChart("LOCAL-1", chart.TypeNew), 0); err != nil {
		t.Fatalf("seed: %v", err)
	}

	snap := &Snapshot{
		SchemaVersion: SchemaVersion,
		Charts:        []*chart.Chart{seedChart("IMP-1", chart.TypeFollowUp)},
	}
	report, err := svc.Import(context.Background(), aid, snap, true)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Purged != 1 || report.Imported != 1 {
		t.Fatalf("report = %+v", report)
	}
	charts, _ := store.List(context.Background(), aid)
	if len(charts) != 1 || charts[0].FileNo != "IMP-1" {
		t.Fatalf("store not replaced: %v", charts)
	}
}

func TestImport_ChartTypeMismatchSkipped(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, profileStore{store})
	aid := uuid.New()

	if err := store.Save(context.Background(), aid, seedChart("CH-001", chart.TypeNew), 0); err != nil {
		t.Fatalf("seed: %v", err)
	}

	snap := &Snapshot{
		SchemaVersion: SchemaVersion,
		Charts: []*chart.Chart{
			seedChart("CH-001", chart.TypeFollowUp),
			seedChart("CH-002", chart.TypeNew),
		},
	}
	report, err := svc.Import(context.Background(), aid, snap, false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Imported != 1 {
		t.Errorf("imported = %d, want 1", report.Imported)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].FileNo != "CH-001" {
		t.Errorf("skipped = %v, want CH-001", report.Skipped)
	}
}

func TestImport_FutureSchemaRejected(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, profileStore{store})

	snap := &Snapshot{SchemaVersion: SchemaVersion + 1}
	if _, err := svc.Import(context.Background(), uuid.New(), snap, false); err == nil {
		t.Fatal("expected error for future schema version")
	}
}
