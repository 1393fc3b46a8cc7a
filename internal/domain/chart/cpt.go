package chart

import "strings"

// Base CPT code sets per visit type. New visits bill an initial E/M code
// plus initial acupuncture sets and infrared; follow-ups bill the
// established-patient equivalents.
var (
	cptBaseNew      = []string{"99202", "97810", "97811", "97026"}
	cptBaseFollowUp = []string{"99212", "97813", "97814"}

	// cptManualTherapy is added whenever an adjunct treatment involving
	// manual work is selected.
	cptManualTherapy = "97140"
)

// DeriveCPT recomputes the CPT code list for the chart's visit type and
// selected adjunct treatment. Codes the practitioner entered by hand that
// fall outside the managed set are preserved.
func DeriveCPT(chartType ChartType, selectedTreatment, existingCPT string) string {
	base := cptBaseNew
	if chartType == TypeFollowUp {
		base = cptBaseFollowUp
	}

	codes := make([]string, 0, len(base)+2)
	codes = append(codes, base...)

	manual := selectedTreatment != "" && selectedTreatment != "None" && selectedTreatment != "Acupressure"
	if manual {
		codes = append(codes, cptManualTherapy)
	}

	for _, code := range strings.Split(existingCPT, ",") {
		code = strings.TrimSpace(code)
		if code == "" || managedCPT(code) || contains(codes, code) {
			continue
		}
		codes = append(codes, code)
	}

	return strings.Join(codes, ", ")
}

func managedCPT(code string) bool {
	return code == cptManualTherapy || contains(cptBaseNew, code) || contains(cptBaseFollowUp, code)
}
