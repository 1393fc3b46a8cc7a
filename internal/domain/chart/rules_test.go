package chart

import (
	"reflect"
	"testing"
)

func TestApplyROSSelection_SymptomClearsNormal(t *testing.T) {
	got := ApplyROSSelection([]string{NormalSentinel}, "dry", true)
	if !reflect.DeepEqual(got, []string{"dry"}) {
		t.Errorf("got %v, want [dry]", got)
	}
}

func TestApplyROSSelection_NormalClearsSymptoms(t *testing.T) {
	got := ApplyROSSelection([]string{"dry", "itchy"}, NormalSentinel, true)
	if !reflect.DeepEqual(got, []string{NormalSentinel}) {
		t.Errorf("got %v, want [normal]", got)
	}
}

func TestApplyROSSelection_Uncheck(t *testing.T) {
	got := ApplyROSSelection([]string{"dry", "itchy"}, "dry", false)
	if !reflect.DeepEqual(got, []string{"itchy"}) {
		t.Errorf("got %v, want [itchy]", got)
	}
}

func TestApplyTagSelection_NoDuplicates(t *testing.T) {
	got := ApplyTagSelection([]string{"Headache"}, "Headache", true)
	if !reflect.DeepEqual(got, []string{"Headache"}) {
		t.Errorf("got %v, want [Headache]", got)
	}
}

func TestApplyPulseSelection_RemovesOpposite(t *testing.T) {
	values := ApplyPulseSelection(nil, "Floating", true)
	values = ApplyPulseSelection(values, "Rapid", true)
	values = ApplyPulseSelection(values, "Sinking", true)
	if contains(values, "Floating") {
		t.Errorf("Floating retained alongside Sinking: %v", values)
	}
	if !contains(values, "Sinking") || !contains(values, "Rapid") {
		t.Errorf("got %v, want Sinking and Rapid", values)
	}
}

func TestApplyPulseSelection_BothDirections(t *testing.T) {
	for a, b := range pulseOpposites {
		values := ApplyPulseSelection([]string{a}, b, true)
		if contains(values, a) {
			t.Errorf("selecting %q did not remove %q", b, a)
		}
	}
}

func TestApplyCoatingSelection_CapDropsOldest(t *testing.T) {
	values := ApplyCoatingSelection(nil, "Thick", true)
	values = ApplyCoatingSelection(values, "Greasy", true)
	values = ApplyCoatingSelection(values, "Dry", true)
	if len(values) != maxCoatingQualities {
		t.Fatalf("len = %d, want %d", len(values), maxCoatingQualities)
	}
	if !reflect.DeepEqual(values, []string{"Greasy", "Dry"}) {
		t.Errorf("got %v, want oldest dropped", values)
	}
}

func TestApplyCoatingSelection_NoneIsExclusive(t *testing.T) {
	values := ApplyCoatingSelection([]string{"Thick", "Greasy"}, "None", true)
	if !reflect.DeepEqual(values, []string{"None"}) {
		t.Errorf("got %v, want [None]", values)
	}
	values = ApplyCoatingSelection(values, "Thin", true)
	if contains(values, "None") {
		t.Errorf("None retained after picking a quality: %v", values)
	}
}

func TestNormalizeData_SentinelYieldsToSymptoms(t *testing.T) {
	var d ChartData
	d.ROS.Eye.Symptoms = []string{NormalSentinel, "dry"}
	d.ROS.Digestion.Symptoms = []string{NormalSentinel}
	NormalizeData(&d)
	if !reflect.DeepEqual(d.ROS.Eye.Symptoms, []string{"dry"}) {
		t.Errorf("eye symptoms = %v, want [dry]", d.ROS.Eye.Symptoms)
	}
	if !reflect.DeepEqual(d.ROS.Digestion.Symptoms, []string{NormalSentinel}) {
		t.Errorf("lone normal should survive: %v", d.ROS.Digestion.Symptoms)
	}
}

func TestNormalizeData_PulseAndCoating(t *testing.T) {
	var d ChartData
	d.Pulse.Overall = []string{"Floating", "Rapid", "Sinking"}
	d.Tongue.Coating.Quality = []string{"Thick", "Greasy", "Dry"}
	NormalizeData(&d)
	if !reflect.DeepEqual(d.Pulse.Overall, []string{"Rapid", "Sinking"}) {
		t.Errorf("pulse = %v, want [Rapid Sinking]", d.Pulse.Overall)
	}
	if !reflect.DeepEqual(d.Tongue.Coating.Quality, []string{"Greasy", "Dry"}) {
		t.Errorf("coating = %v, want [Greasy Dry]", d.Tongue.Coating.Quality)
	}
}

func TestNormalizeData_Dedupes(t *testing.T) {
	var d ChartData
	d.Tongue.Body.Color = []string{"Red", "Red", "Pale"}
	d.Tongue.Body.Shape = []string{"Normal", "Swollen"}
	NormalizeData(&d)
	if !reflect.DeepEqual(d.Tongue.Body.Color, []string{"Red", "Pale"}) {
		t.Errorf("body color = %v, want [Red Pale]", d.Tongue.Body.Color)
	}
	if !reflect.DeepEqual(d.Tongue.Body.Shape, []string{"Swollen"}) {
		t.Errorf("body shape = %v, want [Swollen]", d.Tongue.Body.Shape)
	}
}
