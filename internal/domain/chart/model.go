package chart

import (
	"time"

	"github.com/google/uuid"
)

// ChartType is fixed at creation. A follow-up chart shows the
// respond-to-care section and uses the follow-up billing codes.
type ChartType string

const (
	TypeNew      ChartType = "new"
	TypeFollowUp ChartType = "follow-up"
)

// Chart is one clinical encounter, stored per account and keyed by the
// practitioner-assigned file number.
type Chart struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	FileNo    string    `json:"file_no"`
	ChartType ChartType `json:"chart_type"`
	VisitDate string    `json:"visit_date"`
	Data      ChartData `json:"data"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChartData is the clinical payload. Field values are kept as entered on
// the form; vitals and scores are free-form strings, not parsed numbers.
type ChartData struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Occupation string `json:"occupation"`
	DOB        string `json:"dob"`
	Age        string `json:"age"`
	Sex        string `json:"sex"` // "M", "F" or empty

	HeightFt    string `json:"height_ft"`
	HeightIn    string `json:"height_in"`
	Weight      string `json:"weight"` // lbs
	Temp        string `json:"temp"`   // °F
	BPSystolic  string `json:"bp_systolic"`
	BPDiastolic string `json:"bp_diastolic"`
	HeartRate   string `json:"heart_rate"`
	HeartRhythm string `json:"heart_rhythm"`
	LungRate    string `json:"lung_rate"`
	LungSound   string `json:"lung_sound"`

	ChiefComplaint ChiefComplaint        `json:"chief_complaint"`
	History        MedicalHistory        `json:"medical_history"`
	ROS            ReviewOfSystems       `json:"review_of_systems"`
	Tongue         Tongue                `json:"tongue"`
	Pulse          Pulse                 `json:"pulse"`
	Diagnosis      DiagnosisAndTreatment `json:"diagnosis_and_treatment"`
	RespondToCare  *RespondToCare        `json:"respond_to_care,omitempty"`
}

type ChiefComplaint struct {
	SelectedComplaints []string `json:"selected_complaints"`
	OtherComplaint     string   `json:"other_complaint"`
	Location           string   `json:"location"`
	LocationDetails    []string `json:"location_details"`
	OnsetValue         string   `json:"onset_value"`
	OnsetUnit          string   `json:"onset_unit"` // days, weeks, months, years
	Provocation        []string `json:"provocation"`
	ProvocationOther   string   `json:"provocation_other"`
	Palliation         []string `json:"palliation"`
	PalliationOther    string   `json:"palliation_other"`
	Quality            []string `json:"quality"`
	QualityOther       string   `json:"quality_other"`
	RegionRadiation    string   `json:"region_radiation"`
	SeverityScore      string   `json:"severity_score"` // 0-10
	SeverityDesc       string   `json:"severity_description"`
	Frequency          string   `json:"frequency"` // Occasional, Intermittent, Frequent, Constant
	Timing             string   `json:"timing"`
	PossibleCause      []string `json:"possible_cause"`
	PossibleCauseOther string   `json:"possible_cause_other"`
	Remark             string   `json:"remark"`
	PresentIllness     string   `json:"present_illness"`
	WesternDiagnosis   string   `json:"western_medical_diagnosis"`
}

type MedicalHistory struct {
	PastMedicalHistory      []string `json:"past_medical_history"`
	PastMedicalHistoryOther string   `json:"past_medical_history_other"`
	Medication              []string `json:"medication"`
	MedicationOther         string   `json:"medication_other"`
	FamilyHistory           []string `json:"family_history"`
	FamilyHistoryOther      string   `json:"family_history_other"`
	Allergy                 []string `json:"allergy"`
	AllergyOther            string   `json:"allergy_other"`
}

// ReviewOfSystems holds the fourteen independent review sub-records. In
// every multi-select field the value "normal" excludes all other values;
// ApplyROSSelection maintains that invariant.
type ReviewOfSystems struct {
	ColdHot        ColdHot        `json:"cold_hot"`
	Sleep          Sleep          `json:"sleep"`
	Sweat          Sweat          `json:"sweat"`
	Eye            SymptomSet     `json:"eye"`
	MouthTongue    MouthTongue    `json:"mouth_tongue"`
	ThroatNose     ThroatNose     `json:"throat_nose"`
	Edema          PresenceSet    `json:"edema"`
	Drink          Drink          `json:"drink"`
	Digestion      SymptomSet     `json:"digestion"`
	AppetiteEnergy AppetiteEnergy `json:"appetite_energy"`
	Stool          Stool          `json:"stool"`
	Urine          Urine          `json:"urine"`
	Menstruation   Menstruation   `json:"menstruation"`
	Discharge      PresenceSet    `json:"discharge"`
}

type ColdHot struct {
	Sensation string   `json:"sensation"` // cold, hot, normal
	Parts     []string `json:"parts"`
	Other     string   `json:"other"`
}

type Sleep struct {
	Hours   string   `json:"hours"`
	Quality []string `json:"quality"`
	Issues  []string `json:"issues"`
	Other   string   `json:"other"`
}

type Sweat struct {
	Present string   `json:"present"` // yes, no
	Time    []string `json:"time"`
	Parts   []string `json:"parts"`
	Other   string   `json:"other"`
}

// SymptomSet covers the simple symptom-list sub-records (eye, digestion).
type SymptomSet struct {
	Symptoms []string `json:"symptoms"`
	Other    string   `json:"other"`
}

type MouthTongue struct {
	Symptoms []string `json:"symptoms"`
	Taste    []string `json:"taste"`
	Other    string   `json:"other"`
}

type ThroatNose struct {
	Symptoms   []string `json:"symptoms"`
	MucusColor []string `json:"mucus_color"`
	Other      string   `json:"other"`
}

// PresenceSet covers yes/no sub-records with an associated detail set
// (edema parts, discharge symptoms).
type PresenceSet struct {
	Present  string   `json:"present"` // yes, no
	Parts    []string `json:"parts,omitempty"`
	Symptoms []string `json:"symptoms,omitempty"`
	Other    string   `json:"other"`
}

type Drink struct {
	Thirsty    string `json:"thirsty"`    // thirsty, normal, no
	Preference string `json:"preference"` // cold, normal, hot
	Amount     string `json:"amount"`     // sip, washes mouth, drink large amount
	Other      string `json:"other"`
}

type AppetiteEnergy struct {
	Appetite string `json:"appetite"` // good, ok, sometimes bad, bad
	Energy   string `json:"energy"`
	Other    string `json:"other"`
}

type Stool struct {
	FrequencyValue string   `json:"frequency_value"`
	FrequencyUnit  string   `json:"frequency_unit"` // day, week
	Form           string   `json:"form"`           // normal, diarrhea, constipation, alternating
	Color          string   `json:"color"`
	Symptoms       []string `json:"symptoms"`
	Other          string   `json:"other"`
}

type Urine struct {
	FrequencyDay   string   `json:"frequency_day"`
	FrequencyNight string   `json:"frequency_night"`
	Amount         string   `json:"amount"` // much, normal, scanty
	Color          string   `json:"color"`
	Symptoms       []string `json:"symptoms"`
	Other          string   `json:"other"`
}

type Menstruation struct {
	Status       string   `json:"status"` // regular, irregular, menopause
	MenopauseAge string   `json:"menopause_age"`
	LMP          string   `json:"lmp"`
	CycleLength  string   `json:"cycle_length"`
	Duration     string   `json:"duration"`
	Amount       string   `json:"amount"` // normal, scanty, heavy
	Color        string   `json:"color"`  // fresh red, dark, pale
	Clots        string   `json:"clots"`  // yes, no
	Pain         string   `json:"pain"`   // yes, no
	PainDetails  string   `json:"pain_details"`
	PMS          []string `json:"pms"`
	Other        string   `json:"other"`
}

type Tongue struct {
	Body    TongueBody    `json:"body"`
	Coating TongueCoating `json:"coating"`
}

type TongueBody struct {
	Color            []string          `json:"color"`
	Shape            []string          `json:"shape"`
	Locations        []string          `json:"locations"`
	LocationComments map[string]string `json:"location_comments,omitempty"`
}

type TongueCoating struct {
	Color   []string `json:"color"`
	Quality []string `json:"quality"` // at most 2 simultaneous selections
	Notes   string   `json:"notes"`
}

// Pulse records overall pulse qualities. Opposed qualities (Floating vs
// Sinking and so on) cannot be selected together; ApplyPulseSelection
// maintains that invariant.
type Pulse struct {
	Overall []string `json:"overall"`
	Notes   string   `json:"notes"`
}

type EightPrinciples struct {
	ExteriorInterior string `json:"exterior_interior"` // Exterior, Interior
	HeatCold         string `json:"heat_cold"`         // Heat, Cold
	ExcessDeficient  string `json:"excess_deficient"`  // Excess, Deficient
	YangYin          string `json:"yang_yin"`          // Yang, Yin
}

type DiagnosisAndTreatment struct {
	EightPrinciples        EightPrinciples `json:"eight_principles"`
	Etiology               string          `json:"etiology"`
	TCMDiagnosis           string          `json:"tcm_diagnosis"`
	TreatmentPrinciple     string          `json:"treatment_principle"`
	AcupunctureMethod      []string        `json:"acupuncture_method"`
	AcupunctureMethodOther string          `json:"acupuncture_method_other"`
	AcupuncturePoints      string          `json:"acupuncture_points"`
	HerbalTreatment        string          `json:"herbal_treatment"`
	SelectedTreatment      string          `json:"selected_treatment"`
	OtherTreatmentText     string          `json:"other_treatment_text"`
	ICD                    string          `json:"icd"`
	CPT                    string          `json:"cpt"`
	PractitionerName       string          `json:"practitioner_name"`
	PractitionerLicNo      string          `json:"practitioner_lic_no"`
}

// AdjunctTreatments is the fixed set the "other treatment" selection and
// the narrative recommendation are mapped against.
var AdjunctTreatments = []string{
	"None", "Tui-Na", "Acupressure", "Moxa", "Cupping",
	"Electro Acupuncture", "Heat Pack", "Auricular Acupuncture", "Other",
}

type RespondToCare struct {
	Status       string `json:"status"` // Resolved, Improved, Same, Worse
	ImprovedDays string `json:"improved_days"`
	Notes        string `json:"notes"`
}
