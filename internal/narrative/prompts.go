package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/acuchart/acuchart/internal/domain/chart"
)

func joinNonEmpty(parts []string, sep string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func tagLine(values []string, other string) string {
	return joinNonEmpty(append(append([]string{}, values...), other), ", ")
}

func sexWord(sex string) string {
	switch sex {
	case "M":
		return "Male"
	case "F":
		return "Female"
	default:
		return "Not specified"
	}
}

// presentIllnessPrompt assembles the HPI scribe prompt from the
// demographics and complaint fields. Empty fields are left out so the
// model never sees blank bullet lines.
func presentIllnessPrompt(ch *chart.Chart) string {
	cc := ch.Data.ChiefComplaint

	complaints := tagLine(cc.SelectedComplaints, cc.OtherComplaint)
	location := tagLine(cc.LocationDetails, cc.Location)
	onset := ""
	if cc.OnsetValue != "" && cc.OnsetUnit != "" {
		onset = cc.OnsetValue + " " + cc.OnsetUnit
	}
	quality := tagLine(cc.Quality, cc.QualityOther)
	severity := joinNonEmpty([]string{
		severityScoreDisplay(cc.SeverityScore),
		cc.SeverityDesc,
	}, " ")
	provocation := tagLine(cc.Provocation, cc.ProvocationOther)
	palliation := tagLine(cc.Palliation, cc.PalliationOther)
	cause := tagLine(cc.PossibleCause, cc.PossibleCauseOther)

	opening := `The patient is a [age]-year-old [sex] who presents with...`
	if ch.ChartType == chart.TypeFollowUp {
		opening = `The patient is a [age]-year-old [sex] who returns for a follow-up regarding...`
	}

	var b strings.Builder
	b.WriteString("You are a medical scribe creating a \"History of Present Illness\" (HPI) narrative. ")
	b.WriteString("Synthesize the following patient data into a clinical paragraph. Start with the patient's age and sex.\n\n")
	b.WriteString("**Patient Demographics:**\n")
	fmt.Fprintf(&b, "- Age: %s\n", ch.Data.Age)
	fmt.Fprintf(&b, "- Sex: %s\n", sexWord(ch.Data.Sex))
	b.WriteString("\n**Complaint Details:**\n")

	writeIf := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "- %s: %s\n", label, value)
		}
	}
	writeIf("Chief Complaint", complaints)
	writeIf("Location", location)
	if onset != "" {
		fmt.Fprintf(&b, "- Onset: Approximately %s ago\n", onset)
	}
	writeIf("Pain Quality", quality)
	writeIf("Severity", severity)
	writeIf("Frequency", cc.Frequency)
	writeIf("Timing", cc.Timing)
	writeIf("Aggravating Factors", provocation)
	writeIf("Alleviate Factors", palliation)
	writeIf("Radiation", cc.RegionRadiation)
	writeIf("Possible Cause", cause)
	writeIf("Remarks", cc.Remark)

	b.WriteString("\n**Instructions:**\n")
	b.WriteString("- Write a coherent paragraph in a professional, clinical tone.\n")
	fmt.Fprintf(&b, "- Start with an opening sentence like: %q\n", opening)
	b.WriteString("- Weave the details into a narrative, not just a list. For example, instead of \"Onset: 3 weeks ago\", write \"The symptoms began approximately 3 weeks ago.\"\n")
	b.WriteString("- Do not use markdown or bullet points in your final output.\n\n")
	b.WriteString("Generate the HPI paragraph below:\n")
	return b.String()
}

func severityScoreDisplay(score string) string {
	if score == "" {
		return ""
	}
	return score + "/10"
}

// diagnosisPrompt serializes the clinical sections as JSON and frames
// the structured output the model must return. Follow-up visits include
// response-to-care instead of the intake medical history.
func diagnosisPrompt(ch *chart.Chart) string {
	isFollowUp := ch.ChartType == chart.TypeFollowUp

	summary := map[string]any{
		"demographics": map[string]string{
			"age": ch.Data.Age,
			"sex": ch.Data.Sex,
		},
		"chiefComplaint":  ch.Data.ChiefComplaint,
		"reviewOfSystems": ch.Data.ROS,
		"tongue":          ch.Data.Tongue,
	}
	if isFollowUp {
		summary["respondToCare"] = ch.Data.RespondToCare
	} else {
		summary["medicalHistory"] = ch.Data.History
	}

	raw, _ := json.MarshalIndent(summary, "", "  ")

	var b strings.Builder
	b.WriteString("Based on the following comprehensive patient data, act as an expert TCM practitioner to generate a diagnosis and treatment plan. Provide the output in a structured JSON format.")
	if isFollowUp {
		b.WriteString(` This is a follow-up visit. Pay close attention to the "respondToCare" data to adjust the diagnosis and treatment plan accordingly.`)
	}
	b.WriteString("\n\nPatient Data:\n")
	b.Write(raw)

	etiologyHint := ""
	if isFollowUp {
		etiologyHint = " Consider changes since the last visit."
	}

	fmt.Fprintf(&b, `

JSON Output Structure:
{
  "eightPrinciples": {
    "exteriorInterior": "Exterior or Interior",
    "heatCold": "Heat or Cold",
    "excessDeficient": "Excess or Deficient",
    "yangYin": "Based on the three principles above (Exterior/Interior, Heat/Cold, Excess/Deficient), determine if the overall pattern is predominantly Yang or Yin. For example, a pattern of Interior, Cold, and Deficient is Yin."
  },
  "etiology": "Briefly describe the root cause and contributing factors.%s",
  "tcmDiagnosis": "Provide the primary TCM Syndrome/Differentiation diagnosis (e.g., Liver Qi Stagnation, Spleen Qi Deficiency with Dampness).",
  "treatmentPrinciple": "State the clear treatment principle (e.g., Soothe the Liver, tonify Spleen Qi, resolve dampness).",
  "acupuncturePoints": "Suggest a list of primary acupuncture points for body acupuncture, separated by commas (e.g., LI4, ST36, LV3). List only the point names, comma-separated, without any other explanation.",
  "herbalTreatment": "Recommend a classic herbal formula based on the 'Bangyakhappyeon'. Respond with only the formula name (e.g., 'Du Huo Ji Sheng Tang').",
  "otherTreatment": {
    "recommendation": "Suggest only the single most relevant treatment from this list: %s. If 'Other' or 'Auricular Acupuncture', specify what it is (e.g., 'Auricular Acupuncture: Shen Men, Liver').",
    "explanation": "Briefly explain why you recommend it."
  }
}

Instructions:
- Analyze the interconnected symptoms from all sections (ROS, tongue, chief complaint).
- Provide a concise and clinically relevant diagnosis and plan.
- For Eight Principles, choose only one from each pair and logically determine Yin/Yang.
- Ensure the output is a valid JSON object only.
`, etiologyHint, strings.Join(chart.AdjunctTreatments, ", "))

	return b.String()
}

// soapPrompt builds the SOAP-note prompt from the de-identified field
// set only: no name, address, phone or date of birth ever reaches the
// model.
func soapPrompt(ch *chart.Chart) string {
	summary := map[string]any{
		"fileNo":    ch.FileNo,
		"visitDate": ch.VisitDate,
		"chartType": ch.ChartType,
		"vitalSigns": map[string]string{
			"heightFt":    ch.Data.HeightFt,
			"heightIn":    ch.Data.HeightIn,
			"weight":      ch.Data.Weight,
			"temp":        ch.Data.Temp,
			"bpSystolic":  ch.Data.BPSystolic,
			"bpDiastolic": ch.Data.BPDiastolic,
			"heartRate":   ch.Data.HeartRate,
			"heartRhythm": ch.Data.HeartRhythm,
			"lungRate":    ch.Data.LungRate,
			"lungSound":   ch.Data.LungSound,
		},
		"chiefComplaint":        ch.Data.ChiefComplaint,
		"medicalHistory":        ch.Data.History,
		"diagnosisAndTreatment": ch.Data.Diagnosis,
		"tongue":                ch.Data.Tongue,
		"pulse":                 ch.Data.Pulse,
	}
	if ch.Data.RespondToCare != nil {
		summary["respondToCare"] = ch.Data.RespondToCare
	}

	raw, _ := json.MarshalIndent(summary, "", "  ")

	var b strings.Builder
	b.WriteString("You are a licensed acupuncturist writing a SOAP (Subjective, Objective, Assessment, Plan) clinical note. ")
	b.WriteString("Write the four sections as flowing clinical prose from the de-identified visit data below. ")
	b.WriteString("Refer to the patient only by file number. Do not invent findings that are not in the data.\n\n")
	b.WriteString("Visit Data:\n")
	b.Write(raw)
	b.WriteString("\n\nWrite the SOAP note below, with the section headings Subjective, Objective, Assessment and Plan:\n")
	return b.String()
}
