package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/acuchart/acuchart/internal/domain/chart"
)

// DiagnosisFields is the parsed, post-processed result of a diagnosis
// synthesis, ready to be applied onto a chart's diagnosis section.
type DiagnosisFields struct {
	EightPrinciples    chart.EightPrinciples
	Etiology           string
	TCMDiagnosis       string
	TreatmentPrinciple string
	AcupuncturePoints  string
	HerbalTreatment    string
	SelectedTreatment  string
	OtherTreatmentText string
}

type diagnosisResponse struct {
	EightPrinciples struct {
		ExteriorInterior string `json:"exteriorInterior"`
		HeatCold         string `json:"heatCold"`
		ExcessDeficient  string `json:"excessDeficient"`
		YangYin          string `json:"yangYin"`
	} `json:"eightPrinciples"`
	Etiology           string `json:"etiology"`
	TCMDiagnosis       string `json:"tcmDiagnosis"`
	TreatmentPrinciple string `json:"treatmentPrinciple"`
	AcupuncturePoints  string `json:"acupuncturePoints"`
	HerbalTreatment    string `json:"herbalTreatment"`
	OtherTreatment     struct {
		Recommendation string `json:"recommendation"`
		Explanation    string `json:"explanation"`
	} `json:"otherTreatment"`
}

// parseDiagnosis decodes the structured completion and normalizes it:
// the treatment recommendation is mapped onto the adjunct-treatment set
// with a free-text fallback, and "Ashi points" is appended to the point
// list when the model left it out.
func parseDiagnosis(raw string) (*DiagnosisFields, error) {
	raw = stripCodeFence(raw)

	var resp diagnosisResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	fields := &DiagnosisFields{
		EightPrinciples: chart.EightPrinciples{
			ExteriorInterior: resp.EightPrinciples.ExteriorInterior,
			HeatCold:         resp.EightPrinciples.HeatCold,
			ExcessDeficient:  resp.EightPrinciples.ExcessDeficient,
			YangYin:          resp.EightPrinciples.YangYin,
		},
		Etiology:           resp.Etiology,
		TCMDiagnosis:       resp.TCMDiagnosis,
		TreatmentPrinciple: resp.TreatmentPrinciple,
		HerbalTreatment:    resp.HerbalTreatment,
		AcupuncturePoints:  withAshiPoints(resp.AcupuncturePoints),
	}
	fields.SelectedTreatment, fields.OtherTreatmentText = mapTreatment(
		resp.OtherTreatment.Recommendation, resp.OtherTreatment.Explanation)
	return fields, nil
}

// stripCodeFence tolerates models that wrap the JSON object in a
// markdown fence despite the json response hint.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func withAshiPoints(points string) string {
	points = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(points), ","))
	if points == "" {
		return "Ashi points"
	}
	if strings.Contains(strings.ToLower(points), "ashi") {
		return points
	}
	return points + ", Ashi points"
}

// mapTreatment matches the free-text recommendation against the adjunct
// treatment options. An unrecognized but non-empty recommendation falls
// back to "Other" carrying the full text.
func mapTreatment(recommendation, explanation string) (selected, otherText string) {
	rec := strings.ToLower(strings.ReplaceAll(recommendation, " ", ""))

	for _, opt := range chart.AdjunctTreatments {
		key := strings.ToLower(strings.ReplaceAll(opt, " ", ""))
		if !strings.Contains(rec, key) {
			continue
		}
		if opt == "Other" || opt == "Auricular Acupuncture" {
			detail := ""
			if i := strings.Index(recommendation, ":"); i >= 0 {
				detail = strings.TrimSpace(recommendation[i+1:])
			}
			if detail == "" {
				detail = explanation
			}
			return opt, detail
		}
		return opt, explanation
	}

	if recommendation != "" && !strings.EqualFold(recommendation, "none") {
		return "Other", fmt.Sprintf("%s (%s)", recommendation, explanation)
	}
	return "None", ""
}
