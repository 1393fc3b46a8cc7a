package chart

// NormalSentinel is the mutually-exclusive value used across the review
// multi-selects: selecting it clears every other value, and selecting any
// other value removes it.
const NormalSentinel = "normal"

// pulseOpposites lists pulse qualities that cannot coexist. Selecting one
// side of a pair removes the other.
var pulseOpposites = map[string]string{
	"Floating":  "Sinking",
	"Sinking":   "Floating",
	"Rapid":     "Slow",
	"Slow":      "Rapid",
	"Excess":    "Deficient",
	"Deficient": "Excess",
	"Slippery":  "Choppy",
	"Choppy":    "Slippery",
	"Tight":     "Moderate",
	"Moderate":  "Tight",
	"Long":      "Short",
	"Short":     "Long",
}

// maxCoatingQualities caps simultaneous tongue-coating quality
// selections.
const maxCoatingQualities = 2

// ApplyTagSelection adds or removes value from a plain tag set.
func ApplyTagSelection(values []string, value string, checked bool) []string {
	return applySelection(values, value, checked, "")
}

// ApplyROSSelection adds or removes value from a review-of-systems
// multi-select, enforcing the "normal" exclusivity invariant.
func ApplyROSSelection(values []string, value string, checked bool) []string {
	return applySelection(values, value, checked, NormalSentinel)
}

// ApplyExclusiveSelection behaves like ApplyROSSelection for tag sets
// whose sentinel spells differently (e.g. "Normal" in tongue shape,
// "None" in coating quality).
func ApplyExclusiveSelection(values []string, value string, checked bool, sentinel string) []string {
	return applySelection(values, value, checked, sentinel)
}

func applySelection(values []string, value string, checked bool, sentinel string) []string {
	if !checked {
		return remove(values, value)
	}
	if contains(values, value) {
		return values
	}
	if sentinel != "" {
		if value == sentinel {
			return []string{sentinel}
		}
		values = remove(values, sentinel)
	}
	return append(values, value)
}

// ApplyPulseSelection adds or removes a pulse quality, dropping the
// opposed quality when one is selected.
func ApplyPulseSelection(values []string, value string, checked bool) []string {
	if !checked {
		return remove(values, value)
	}
	if contains(values, value) {
		return values
	}
	if opp, ok := pulseOpposites[value]; ok {
		values = remove(values, opp)
	}
	return append(values, value)
}

// ApplyCoatingSelection adds or removes a tongue-coating quality. "None"
// excludes every other quality, and at most two qualities can be active;
// when a third is added the oldest selection is dropped.
func ApplyCoatingSelection(values []string, value string, checked bool) []string {
	values = applySelection(values, value, checked, "None")
	if checked && len(values) > maxCoatingQualities {
		values = values[len(values)-maxCoatingQualities:]
	}
	return values
}

// NormalizeData re-applies the selection invariants to a whole payload.
// Clients maintain them incrementally as boxes are toggled, but a save
// carries complete sets, so the stored model enforces them again here.
// When a sentinel arrives alongside concrete values the concrete values
// win.
func NormalizeData(d *ChartData) {
	ros := &d.ROS
	ros.ColdHot.Parts = normalizeExclusive(ros.ColdHot.Parts, NormalSentinel)
	ros.Sleep.Quality = normalizeExclusive(ros.Sleep.Quality, NormalSentinel)
	ros.Sleep.Issues = normalizeExclusive(ros.Sleep.Issues, NormalSentinel)
	ros.Sweat.Time = normalizeExclusive(ros.Sweat.Time, NormalSentinel)
	ros.Sweat.Parts = normalizeExclusive(ros.Sweat.Parts, NormalSentinel)
	ros.Eye.Symptoms = normalizeExclusive(ros.Eye.Symptoms, NormalSentinel)
	ros.MouthTongue.Symptoms = normalizeExclusive(ros.MouthTongue.Symptoms, NormalSentinel)
	ros.MouthTongue.Taste = normalizeExclusive(ros.MouthTongue.Taste, NormalSentinel)
	ros.ThroatNose.Symptoms = normalizeExclusive(ros.ThroatNose.Symptoms, NormalSentinel)
	ros.ThroatNose.MucusColor = normalizeExclusive(ros.ThroatNose.MucusColor, NormalSentinel)
	ros.Edema.Parts = normalizeExclusive(ros.Edema.Parts, NormalSentinel)
	ros.Edema.Symptoms = normalizeExclusive(ros.Edema.Symptoms, NormalSentinel)
	ros.Digestion.Symptoms = normalizeExclusive(ros.Digestion.Symptoms, NormalSentinel)
	ros.Stool.Symptoms = normalizeExclusive(ros.Stool.Symptoms, NormalSentinel)
	ros.Urine.Symptoms = normalizeExclusive(ros.Urine.Symptoms, NormalSentinel)
	ros.Menstruation.PMS = normalizeExclusive(ros.Menstruation.PMS, NormalSentinel)
	ros.Discharge.Parts = normalizeExclusive(ros.Discharge.Parts, NormalSentinel)
	ros.Discharge.Symptoms = normalizeExclusive(ros.Discharge.Symptoms, NormalSentinel)

	d.Tongue.Body.Color = dedupe(d.Tongue.Body.Color)
	d.Tongue.Body.Shape = normalizeExclusive(d.Tongue.Body.Shape, "Normal")
	d.Tongue.Body.Locations = dedupe(d.Tongue.Body.Locations)
	d.Tongue.Coating.Color = dedupe(d.Tongue.Coating.Color)
	d.Tongue.Coating.Quality = normalizeCoating(d.Tongue.Coating.Quality)

	d.Pulse.Overall = normalizePulse(d.Pulse.Overall)
}

func normalizeExclusive(values []string, sentinel string) []string {
	out := dedupe(values)
	if len(out) > 1 {
		out = remove(out, sentinel)
	}
	return out
}

func normalizeCoating(values []string) []string {
	out := normalizeExclusive(values, "None")
	if len(out) > maxCoatingQualities {
		out = out[len(out)-maxCoatingQualities:]
	}
	return out
}

// normalizePulse keeps the later of each opposed pair, mirroring the
// click order a selection sequence would have produced.
func normalizePulse(values []string) []string {
	var out []string
	for _, v := range values {
		if contains(out, v) {
			continue
		}
		if opp, ok := pulseOpposites[v]; ok {
			out = remove(out, opp)
		}
		out = append(out, v)
	}
	return out
}

func dedupe(values []string) []string {
	var out []string
	for _, v := range values {
		if !contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func remove(values []string, v string) []string {
	out := values[:0]
	for _, x := range values {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
