package printout

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/acuchart/acuchart/internal/domain/chart"
	"github.com/acuchart/acuchart/internal/domain/clinic"
)

func sampleChart(ct chart.ChartType) *chart.Chart {
	ch := &chart.Chart{FileNo: "CH-001", ChartType: ct, VisitDate: "2026-03-14"}
	ch.Data.Name = "Jane Roe"
	ch.Data.Age = "30"
	ch.Data.Sex = "F"
	ch.Data.ChiefComplaint.SelectedComplaints = []string{"Low back pain", "Neck pain"}
	ch.Data.ChiefComplaint.OtherComplaint = "wrist stiffness"
	ch.Data.ChiefComplaint.OnsetValue = "3"
	ch.Data.ChiefComplaint.OnsetUnit = "weeks"
	ch.Data.ChiefComplaint.SeverityScore = "6"
	ch.Data.ChiefComplaint.SeverityDesc = "dull ache"
	ch.Data.Diagnosis.PractitionerName = "Kim Lee"
	ch.Data.Diagnosis.PractitionerLicNo = "12345"
	return ch
}

func findRow(doc *Document, label string) (Row, bool) {
	for _, page := range doc.Pages {
		for _, section := range page.Sections {
			for _, row := range section.Rows {
				if row.Label == label {
					return row, true
				}
			}
		}
	}
	return Row{}, false
}

func TestRender_NewChartHasThreePages(t *testing.T) {
	doc, err := Render(sampleChart(chart.TypeNew), &clinic.Profile{ClinicName: "East Wind Clinic"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(doc.Pages))
	}
	if doc.Title != "New Patient Chart" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.ClinicName != "East Wind Clinic" {
		t.Errorf("clinic name = %q", doc.ClinicName)
	}

	consent := doc.Pages[2].Sections[0]
	if consent.Title != "Consent for Treatments and Arbitration Agreement" {
		t.Errorf("consent heading = %q", consent.Title)
	}
	if !strings.Contains(consent.Text, "Agreement to Arbitrate") {
		t.Error("consent text missing")
	}
}

func TestRender_FollowUpOmitsConsent(t *testing.T) {
	doc, err := Render(sampleChart(chart.TypeFollowUp), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(doc.Pages))
	}
	if doc.Title != "Follow-up Patient Chart" {
		t.Errorf("title = %q", doc.Title)
	}
	if _, found := findRow(doc, "Address"); found {
		t.Error("follow-up chart should not repeat the address")
	}
	if _, found := findRow(doc, "Past Medical History"); found {
		t.Error("follow-up chart should not repeat the intake history")
	}
}

func TestRender_MissingFileNo(t *testing.T) {
	ch := sampleChart(chart.TypeNew)
	ch.FileNo = "  "
	if _, err := Render(ch, nil); !errors.Is(err, ErrRenderTargetMissing) {
		t.Fatalf("err = %v, want ErrRenderTargetMissing", err)
	}
}

func TestRender_TagJoinsIncludeOtherText(t *testing.T) {
	doc, err := Render(sampleChart(chart.TypeNew), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	row, ok := findRow(doc, "Chief Complaint(s)")
	if !ok {
		t.Fatal("complaint row missing")
	}
	if row.Value != "Low back pain, Neck pain, wrist stiffness" {
		t.Errorf("complaints = %q", row.Value)
	}

	if row, _ = findRow(doc, "Onset"); row.Value != "3 weeks" {
		t.Errorf("onset = %q", row.Value)
	}
	if row, _ = findRow(doc, "Severity"); row.Value != "P/L= 6 / 10, dull ache" {
		t.Errorf("severity = %q", row.Value)
	}
}

func TestRender_AbsentValuesShowNA(t *testing.T) {
	doc, err := Render(sampleChart(chart.TypeNew), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, label := range []string{"Address", "Phone", "Etiology", "TCM Diagnosis"} {
		row, ok := findRow(doc, label)
		if !ok {
			t.Errorf("row %q missing", label)
			continue
		}
		if row.Value != "N/A" {
			t.Errorf("%s = %q, want N/A", label, row.Value)
		}
	}
}

func TestRender_FemaleOnlyRows(t *testing.T) {
	male := sampleChart(chart.TypeNew)
	male.Data.Sex = "M"
	doc, err := Render(male, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, found := findRow(doc, "Menstruation"); found {
		t.Error("menstruation row rendered for a male chart")
	}

	female := sampleChart(chart.TypeNew)
	female.Data.ROS.Menstruation.Status = "menopause"
	female.Data.ROS.Menstruation.MenopauseAge = "52"
	doc, err = Render(female, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	row, ok := findRow(doc, "Menstruation")
	if !ok {
		t.Fatal("menstruation row missing for a female chart")
	}
	if row.Value != "Menopause (Age: 52)" {
		t.Errorf("menstruation = %q", row.Value)
	}
}

func TestOtherTreatmentsDisplay(t *testing.T) {
	tests := []struct {
		selected, otherText, want string
	}{
		{"", "", "None"},
		{"None", "ignored", "None"},
		{"Cupping", "explanation", "Cupping"},
		{"Other", "infrared sauna", "Other: infrared sauna"},
		{"Auricular Acupuncture", "Shen Men", "Auricular Acupuncture / Ear Seeds: Shen Men"},
		{"Auricular Acupuncture", "", "Auricular Acupuncture / Ear Seeds"},
	}
	for _, tt := range tests {
		if got := otherTreatmentsDisplay(tt.selected, tt.otherText); got != tt.want {
			t.Errorf("otherTreatmentsDisplay(%q, %q) = %q, want %q", tt.selected, tt.otherText, got, tt.want)
		}
	}
}

func TestFormulaName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Du Huo Ji Sheng Tang", "Du Huo Ji Sheng Tang"},
		{"Formula: Du Huo Ji Sheng Tang", "Du Huo Ji Sheng Tang"},
		{"Du Huo Ji Sheng Tang\nfor lower back", "Du Huo Ji Sheng Tang"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := formulaName(tt.in); got != tt.want {
			t.Errorf("formulaName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	doc := &Document{FileNo: "CH-001", PatientName: "Jane Roe"}
	if got := Filename(doc); got != "CH-001_Jane_Roe.pdf" {
		t.Errorf("filename = %q", got)
	}
	doc.PatientName = ""
	if got := Filename(doc); got != "CH-001.pdf" {
		t.Errorf("filename = %q", got)
	}
}

func TestExportPDF_WritesDocument(t *testing.T) {
	doc, err := Render(sampleChart(chart.TypeNew), &clinic.Profile{ClinicName: "East Wind Clinic"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var buf bytes.Buffer
	if err := ExportPDF(doc, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}
