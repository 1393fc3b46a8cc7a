package printout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/acuchart/acuchart/internal/domain/chart"
	"github.com/acuchart/acuchart/internal/domain/clinic"
)

var ErrRenderTargetMissing = errors.New("chart has no file number to render")

const notAvailable = "N/A"

// Render projects a chart and the optional clinic profile into a
// printable document. The projection is pure: neither input is mutated
// and the output is fully determined by them. Page one carries the
// visit header, demographics, vitals and complaint; page two the
// history, review of systems, tongue and diagnosis; page three the
// consent form, present on new-patient charts only.
func Render(ch *chart.Chart, profile *clinic.Profile) (*Document, error) {
	if strings.TrimSpace(ch.FileNo) == "" {
		return nil, ErrRenderTargetMissing
	}

	isFollowUp := ch.ChartType == chart.TypeFollowUp

	title := "New Patient Chart"
	if isFollowUp {
		title = "Follow-up Patient Chart"
	}

	doc := &Document{
		Title:       title,
		FileNo:      ch.FileNo,
		PatientName: ch.Data.Name,
	}
	if profile != nil {
		doc.ClinicName = profile.ClinicName
	}

	doc.Pages = append(doc.Pages, pageOne(ch, isFollowUp))
	doc.Pages = append(doc.Pages, pageTwo(ch, isFollowUp))
	if !isFollowUp {
		doc.Pages = append(doc.Pages, consentPage(ch))
	}
	return doc, nil
}

func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return notAvailable
	}
	return v
}

func joinTags(values []string, other string) string {
	parts := make([]string, 0, len(values)+1)
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, v)
		}
	}
	if strings.TrimSpace(other) != "" {
		parts = append(parts, other)
	}
	return strings.Join(parts, ", ")
}

func pageOne(ch *chart.Chart, isFollowUp bool) Page {
	d := ch.Data
	var page Page

	info := Section{Title: "PATIENT INFORMATION", Rows: []Row{
		{Label: "File No.", Value: ch.FileNo},
		{Label: "Name", Value: orNA(d.Name)},
		{Label: "Date", Value: orNA(ch.VisitDate)},
	}}
	if !isFollowUp {
		info.Rows = append(info.Rows,
			Row{Label: "Address", Value: orNA(d.Address)},
			Row{Label: "Phone", Value: orNA(d.Phone)},
		)
	}
	info.Rows = append(info.Rows,
		Row{Label: "Occupation", Value: orNA(d.Occupation)},
		Row{Label: "DOB", Value: orNA(d.DOB)},
		Row{Label: "Age", Value: orNA(d.Age)},
		Row{Label: "Sex", Value: orNA(d.Sex)},
	)
	page.Sections = append(page.Sections, info)

	page.Sections = append(page.Sections, Section{Title: "VITAL SIGNS", Rows: []Row{
		{Label: "HT.", Value: orNA(heightDisplay(d.HeightFt, d.HeightIn))},
		{Label: "WT.", Value: withUnit(d.Weight, "lbs")},
		{Label: "Temp.", Value: withUnit(d.Temp, "°F")},
		{Label: "Heart Rate", Value: withUnit(d.HeartRate, "BPM")},
		{Label: "Heart Rhythm", Value: orNA(d.HeartRhythm)},
		{Label: "B.P.", Value: orNA(bpDisplay(d.BPSystolic, d.BPDiastolic))},
		{Label: "Lung Rate", Value: withUnit(d.LungRate, "BPM")},
		{Label: "Lung Sound", Value: orNA(d.LungSound)},
	}})

	if isFollowUp {
		page.Sections = append(page.Sections, Section{
			Title: "RESPONSE TO PREVIOUS CARE",
			Text:  respondToCareDisplay(d.RespondToCare),
		})
	}

	cc := d.ChiefComplaint
	page.Sections = append(page.Sections, Section{Title: "CHIEF COMPLAINT(S)", Rows: []Row{
		{Label: "Chief Complaint(s)", Value: orNA(joinTags(cc.SelectedComplaints, cc.OtherComplaint))},
		{Label: "Location", Value: orNA(joinTags(cc.LocationDetails, cc.Location))},
		{Label: "Onset", Value: orNA(onsetDisplay(cc.OnsetValue, cc.OnsetUnit))},
		{Label: "Aggravate", Value: orNA(joinTags(cc.Provocation, cc.ProvocationOther))},
		{Label: "Alleviation", Value: orNA(joinTags(cc.Palliation, cc.PalliationOther))},
		{Label: "Quality", Value: orNA(joinTags(cc.Quality, cc.QualityOther))},
		{Label: "Radiation", Value: orNA(cc.RegionRadiation)},
		{Label: "Severity", Value: orNA(severityDisplay(cc.SeverityScore, cc.SeverityDesc))},
		{Label: "Frequency", Value: orNA(cc.Frequency)},
		{Label: "Timing", Value: orNA(cc.Timing)},
		{Label: "Possible Cause", Value: orNA(joinTags(cc.PossibleCause, cc.PossibleCauseOther))},
		{Label: "Remark", Value: orNA(cc.Remark)},
	}})

	illness := Section{Title: "PRESENT ILLNESS", Text: orNA(cc.PresentIllness)}
	if !isFollowUp && cc.WesternDiagnosis != "" {
		illness.Text += "\n\nWestern Medical Diagnosis: " + cc.WesternDiagnosis
	}
	page.Sections = append(page.Sections, illness)
	return page
}

func pageTwo(ch *chart.Chart, isFollowUp bool) Page {
	d := ch.Data
	var page Page

	if !isFollowUp {
		mh := d.History
		page.Sections = append(page.Sections, Section{Title: "MEDICAL HISTORY", Rows: []Row{
			{Label: "Past Medical History", Value: orNA(joinTags(mh.PastMedicalHistory, mh.PastMedicalHistoryOther))},
			{Label: "Medication", Value: orNA(joinTags(mh.Medication, mh.MedicationOther))},
			{Label: "Family Hx.", Value: orNA(joinTags(mh.FamilyHistory, mh.FamilyHistoryOther))},
			{Label: "Allergy", Value: orNA(joinTags(mh.Allergy, mh.AllergyOther))},
		}})
	}

	page.Sections = append(page.Sections, Section{
		Title: "REVIEW OF SYSTEMS",
		Rows:  rosRows(&d),
	})

	page.Sections = append(page.Sections, Section{Title: "INSPECTION OF THE TONGUE", Rows: []Row{
		{Label: "Body", Value: orNA(tongueBodyDisplay(d.Tongue.Body))},
		{Label: "Coating", Value: orNA(tongueCoatingDisplay(d.Tongue.Coating))},
	}})

	page.Sections = append(page.Sections, Section{Title: "PULSE", Rows: []Row{
		{Label: "Overall", Value: orNA(strings.Join(d.Pulse.Overall, ", "))},
		{Label: "Notes", Value: orNA(d.Pulse.Notes)},
	}})

	dx := d.Diagnosis
	page.Sections = append(page.Sections, Section{Title: "DIAGNOSIS", Rows: []Row{
		{Label: "Eight Principles", Value: orNA(eightPrinciplesDisplay(dx.EightPrinciples))},
		{Label: "Etiology", Value: orNA(dx.Etiology)},
		{Label: "TCM Diagnosis", Value: orNA(dx.TCMDiagnosis)},
	}})

	page.Sections = append(page.Sections, Section{Title: "TREATMENT", Rows: []Row{
		{Label: "Treatment Principle", Value: orNA(dx.TreatmentPrinciple)},
		{Label: "Acupuncture Method", Value: orNA(joinTags(dx.AcupunctureMethod, dx.AcupunctureMethodOther))},
		{Label: "Acupuncture Points", Value: orNA(dx.AcupuncturePoints)},
		{Label: "Herbal Treatment", Value: orNA(formulaName(dx.HerbalTreatment))},
		{Label: "Other Treatments", Value: otherTreatmentsDisplay(dx.SelectedTreatment, dx.OtherTreatmentText)},
		{Label: "ICD", Value: orNA(dx.ICD)},
		{Label: "CPT", Value: orNA(dx.CPT)},
	}})
	return page
}

const consentText = `Agreement to Arbitrate: It is understood that any dispute as to medical malpractice, including whether any medical services rendered under this contract were unnecessary or unauthorized or were improperly, negligently or incompetently rendered, will be determined by submission to arbitration as provided by state and federal law, and not by a lawsuit or resort to court process, except as state and federal law provides for judicial review of arbitration proceedings. Both parties to this contract, by entering into it, are giving up their constitutional right to have any such dispute decided in a court of law before a jury, and instead are accepting the use of arbitration.

All Claims Must be Arbitrated: It is also understood that any dispute that does not relate to medical malpractice, including disputes as to whether or not a dispute is subject to arbitration, as to whether this agreement is unconscionable, and any procedural disputes, will also be determined by submission to binding arbitration. It is intention of the parties that this agreement bind all parties as to all claims, including claims arising out of or relating to treatment or services provided by the health care provider, including any heirs or past, present or future spouse(s) of the patient in relation to all claims, including loss of consortium. This agreement is also intended to bind any children of the patient whether born or unborn at the time of the occurrence, giving rise to any claim. This agreement is intended to bind the patient and the health care provider and/or other licensed health care providers, preceptors, or interns who now or in the future treat the patient while employed by, working or associated with or serving as a backup for the health care provider, including those working at the health care provider's clinic or office or any other clinic or office whether signatories to this form or not. All claims for monetary damages exceeding the jurisdictional limit of the small claims court against the health care provider, and/or the health care provider's associates, corporation, partnership, employees, agents and estate, must be arbitrated including, without limitation, claims for loss of consortium, wrongful death, emotional distress, injunctive relief, or punitive damages. This agreement is intended to create an open book account unless and until revoked.

General provision: All claims based upon the same incident, transaction, or related circumstances shall be arbitrated in one proceeding. A claim shall be waived and forever barred if (1) on the date notice thereof is received, the claim, if asserted in a civil action, would be barred by the applicable legal statute of limitations, or (2) the claimant fails to pursue the arbitration claim in accordance with the procedures prescribed herein with reasonable diligence.

I, the undersigned, fully understand that there is no implied or stated guarantee of success or effectiveness of a specific treatment of series of treatment. Every attempt will be made to protect me from harm, but there may be unfavorable skin reaction, unexpected bleeding, and/or other complications not anticipated. I realize that I may withdraw from the program at any time. By voluntarily signing below, I show that I have read, or have had read to me, the above consent to treatment, have been told about the risks and benefits of acupuncture and other procedures, and have had an opportunity to ask questions. I intend this consent form to cover the entire course of treatment for my present condition and for any future condition(s) for which I seek treatment. Both parties to this contract, by entering it, are giving up their constitutional right to have any such dispute decided in court of law before jury and instead are accepting the use of arbitration. Further, the parties will not have the right to participate as a member of any class of claimants, and there shall be no authority for any dispute to be decided on a class action basis. Any arbitration can only decide a dispute between the parties and may not consolidate or join the claims of other persons who have similar claims. By Signing this contract, you are agreeing to have any issue of medical malpractice decided by neutral arbitration, and You are giving up your right to a jury or court trial.`

func consentPage(ch *chart.Chart) Page {
	dx := ch.Data.Diagnosis
	return Page{Sections: []Section{
		{Title: "Consent for Treatments and Arbitration Agreement", Text: consentText},
		{Rows: []Row{
			{Label: "Patient's signature : ×", Value: ""},
			{Label: "Date", Value: ""},
			{Label: "Therapist Name", Value: dx.PractitionerName},
			{Label: "Lic #: AC", Value: dx.PractitionerLicNo},
			{Label: "Signature", Value: ""},
		}},
	}}
}

func rosRows(d *chart.ChartData) []Row {
	ros := d.ROS
	rows := []Row{
		{Label: "Cold / Hot", Value: orNA(joinTags(ros.ColdHot.Parts, joinTags([]string{ros.ColdHot.Sensation}, ros.ColdHot.Other)))},
		{Label: "Sleep", Value: orNA(sleepDisplay(ros.Sleep))},
		{Label: "Sweat", Value: presenceDisplay(ros.Sweat.Present, joinTags(append(append([]string{}, ros.Sweat.Time...), ros.Sweat.Parts...), ros.Sweat.Other))},
		{Label: "Eye", Value: orNA(joinTags(ros.Eye.Symptoms, ros.Eye.Other))},
		{Label: "Mouth / Tongue", Value: orNA(joinTags(append(append([]string{}, ros.MouthTongue.Symptoms...), ros.MouthTongue.Taste...), ros.MouthTongue.Other))},
		{Label: "Throat / Nose", Value: orNA(joinTags(append(append([]string{}, ros.ThroatNose.Symptoms...), ros.ThroatNose.MucusColor...), ros.ThroatNose.Other))},
		{Label: "Edema", Value: presenceDisplay(ros.Edema.Present, joinTags(ros.Edema.Parts, ros.Edema.Other))},
		{Label: "Drink", Value: orNA(joinTags([]string{ros.Drink.Thirsty, ros.Drink.Preference, ros.Drink.Amount}, ros.Drink.Other))},
		{Label: "Digestion", Value: orNA(joinTags(ros.Digestion.Symptoms, ros.Digestion.Other))},
		{Label: "Appetite / Energy", Value: orNA(appetiteDisplay(ros.AppetiteEnergy))},
		{Label: "Urination", Value: orNA(urineDisplay(ros.Urine))},
		{Label: "Stool", Value: orNA(stoolDisplay(ros.Stool))},
	}
	if d.Sex == "F" {
		rows = append(rows,
			Row{Label: "Menstruation", Value: orNA(menstruationDisplay(ros.Menstruation))},
			Row{Label: "Discharge", Value: presenceDisplay(ros.Discharge.Present, joinTags(ros.Discharge.Symptoms, ros.Discharge.Other))},
		)
	}
	return rows
}

func heightDisplay(ft, in string) string {
	parts := []string{}
	if ft != "" {
		parts = append(parts, ft+"'")
	}
	if in != "" {
		parts = append(parts, in+`"`)
	}
	return strings.Join(parts, " ")
}

func withUnit(v, unit string) string {
	if strings.TrimSpace(v) == "" {
		return notAvailable
	}
	return v + " " + unit
}

func bpDisplay(sys, dia string) string {
	if sys == "" || dia == "" {
		return ""
	}
	return sys + "/" + dia + " mmHg"
}

func onsetDisplay(value, unit string) string {
	if value == "" {
		return ""
	}
	return strings.TrimSpace(value + " " + unit)
}

func severityDisplay(score, desc string) string {
	parts := []string{}
	if score != "" {
		parts = append(parts, "P/L= "+score+" / 10")
	}
	if desc != "" {
		parts = append(parts, desc)
	}
	return strings.Join(parts, ", ")
}

func respondToCareDisplay(rtc *chart.RespondToCare) string {
	if rtc == nil || rtc.Status == "" {
		return notAvailable
	}
	text := rtc.Status
	if rtc.Status == "Improved" && rtc.ImprovedDays != "" {
		text += fmt.Sprintf(" (Good for %s days)", rtc.ImprovedDays)
	}
	if rtc.Notes != "" {
		text += " - Notes: " + rtc.Notes
	}
	return text
}

func presenceDisplay(present, details string) string {
	if present != "yes" {
		return "No"
	}
	return orNA(details)
}

func sleepDisplay(s chart.Sleep) string {
	tags := append(append([]string{}, s.Quality...), s.Issues...)
	trail := []string{}
	if s.Hours != "" {
		trail = append(trail, s.Hours+" hrs")
	}
	if s.Other != "" {
		trail = append(trail, s.Other)
	}
	return joinTags(tags, strings.Join(trail, ", "))
}

func appetiteDisplay(a chart.AppetiteEnergy) string {
	parts := []string{}
	if a.Appetite != "" {
		parts = append(parts, "Appetite: "+a.Appetite)
	}
	if a.Energy != "" {
		parts = append(parts, "Energy: "+a.Energy+"/10")
	}
	if a.Other != "" {
		parts = append(parts, a.Other)
	}
	return strings.Join(parts, ", ")
}

func urineDisplay(u chart.Urine) string {
	parts := []string{}
	if u.FrequencyDay != "" {
		parts = append(parts, "Day: "+u.FrequencyDay)
	}
	if u.FrequencyNight != "" {
		parts = append(parts, "Night: "+u.FrequencyNight)
	}
	if u.Amount != "" {
		parts = append(parts, "Amount: "+u.Amount)
	}
	if u.Color != "" {
		parts = append(parts, "Color: "+u.Color)
	}
	if len(u.Symptoms) > 0 {
		parts = append(parts, strings.Join(u.Symptoms, ", "))
	}
	if u.Other != "" {
		parts = append(parts, u.Other)
	}
	return strings.Join(parts, ", ")
}

func stoolDisplay(s chart.Stool) string {
	parts := []string{}
	if s.FrequencyValue != "" {
		parts = append(parts, "Freq: "+s.FrequencyValue+" / "+s.FrequencyUnit)
	}
	if s.Form != "" {
		parts = append(parts, "Form: "+s.Form)
	}
	if s.Color != "" {
		parts = append(parts, "Color: "+s.Color)
	}
	if len(s.Symptoms) > 0 {
		parts = append(parts, strings.Join(s.Symptoms, ", "))
	}
	if s.Other != "" {
		parts = append(parts, s.Other)
	}
	return strings.Join(parts, ", ")
}

func menstruationDisplay(m chart.Menstruation) string {
	if m.Status == "menopause" {
		age := m.MenopauseAge
		if age == "" {
			age = notAvailable
		}
		return "Menopause (Age: " + age + ")"
	}
	if m.Status != "regular" && m.Status != "irregular" {
		return ""
	}
	parts := []string{"Status: " + m.Status}
	if m.LMP != "" {
		parts = append(parts, "LMP: "+m.LMP)
	}
	if m.CycleLength != "" {
		parts = append(parts, "Cycle: "+m.CycleLength+"d")
	}
	if m.Duration != "" {
		parts = append(parts, "Duration: "+m.Duration+"d")
	}
	if m.Amount != "" {
		parts = append(parts, "Amount: "+m.Amount)
	}
	if m.Color != "" {
		parts = append(parts, "Color: "+m.Color)
	}
	if m.Clots != "" {
		parts = append(parts, "Clots: "+m.Clots)
	}
	if m.Pain != "" {
		pain := "Pain: " + m.Pain
		if m.Pain == "yes" {
			pain += " (" + orNA(m.PainDetails) + ")"
		}
		parts = append(parts, pain)
	}
	if len(m.PMS) > 0 {
		parts = append(parts, "PMS: "+strings.Join(m.PMS, ", "))
	}
	if m.Other != "" {
		parts = append(parts, "Other: "+m.Other)
	}
	return strings.Join(parts, "; ")
}

func tongueBodyDisplay(b chart.TongueBody) string {
	locations := make([]string, 0, len(b.Locations))
	for _, loc := range b.Locations {
		if comment := b.LocationComments[loc]; comment != "" {
			locations = append(locations, loc+" ("+comment+")")
		} else {
			locations = append(locations, loc)
		}
	}
	parts := []string{}
	if len(b.Color) > 0 {
		parts = append(parts, "Color: "+strings.Join(b.Color, ", "))
	}
	if len(b.Shape) > 0 {
		parts = append(parts, "Shape: "+strings.Join(b.Shape, ", "))
	}
	if len(locations) > 0 {
		parts = append(parts, "Locations: "+strings.Join(locations, ", "))
	}
	return strings.Join(parts, "; ")
}

func tongueCoatingDisplay(c chart.TongueCoating) string {
	parts := []string{}
	if len(c.Color) > 0 {
		parts = append(parts, "Color: "+strings.Join(c.Color, ", "))
	}
	if len(c.Quality) > 0 {
		parts = append(parts, "Quality: "+strings.Join(c.Quality, ", "))
	}
	if c.Notes != "" {
		parts = append(parts, "Notes: "+c.Notes)
	}
	return strings.Join(parts, "; ")
}

func eightPrinciplesDisplay(ep chart.EightPrinciples) string {
	return joinTags([]string{ep.ExteriorInterior, ep.HeatCold, ep.ExcessDeficient, ep.YangYin}, "")
}

// formulaName strips a leading "Formula:" prefix and keeps the first
// line only, tolerating both model output and hand-typed entries.
func formulaName(treatment string) string {
	if treatment == "" {
		return ""
	}
	name := strings.TrimSpace(treatment)
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "formula:") {
		name = strings.TrimSpace(name[len("formula:"):])
	}
	if i := strings.IndexByte(name, '\n'); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	return name
}

func otherTreatmentsDisplay(selected, otherText string) string {
	if selected == "" || selected == "None" {
		return "None"
	}
	if selected == "Other" || selected == "Auricular Acupuncture" {
		label := selected
		if selected == "Auricular Acupuncture" {
			label = "Auricular Acupuncture / Ear Seeds"
		}
		if otherText != "" {
			return label + ": " + otherText
		}
		return label
	}
	return selected
}
