package core

import "testing"

func TestClassifyTrade(t *testing.T) {
	tests := []struct {
		name          string
		activityName  string
		explicitTrade string
		want          string
	}{
		{"explicit trade wins", "Pour footings level 2", "Electrical", "Electrical"},
		{"explicit trade canonicalized", "anything", "concrete", "Concrete"},
		{"explicit hvac uppercased", "anything", "hvac", "HVAC"},
		{"concrete keyword", "Pour slab on grade", "", "Concrete"},
		{"rebar keyword", "Install rebar mats", "", "Concrete"},
		{"steel keyword", "Erect structural steel frame", "", "Steel"},
		{"electrical keyword", "Electrical rough-in level 3", "", "Electrical"},
		{"plumbing keyword", "Underground piping", "", "Plumbing"},
		{"roofing keyword", "Roof membrane installation", "", "Roofing"},
		{"masonry keyword", "CMU block walls", "", "Masonry"},
		{"excavation keyword", "Mass excavation phase 1", "", "Excavation"},
		{"paving keyword", "Asphalt parking lot", "", "Paving"},
		{"glazing keyword", "Curtain wall install", "", "Glazing"},
		{"case insensitive", "PAINT CORRIDOR WALLS", "", "Painting"},
		{"no match falls back", "Owner walkthrough", "", GeneralResourceKey},
		{"empty name falls back", "", "", GeneralResourceKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTrade(tt.activityName, tt.explicitTrade); got != tt.want {
				t.Errorf("ClassifyTrade(%q, %q) = %q, want %q", tt.activityName, tt.explicitTrade, got, tt.want)
			}
		})
	}
}

func TestEquipmentKeys(t *testing.T) {
	tests := []struct {
		name         string
		activityName string
		want         []string
	}{
		{"crane", "Tower crane picks for steel", []string{"Crane"}},
		{"boom lift", "Boom lift for facade caulking", []string{"Aerial Lift"}},
		{"concrete pump", "Concrete pump for deck pour", []string{"Concrete Pump"}},
		{"excavator", "Excavator mobilization", []string{"Earthmoving Equipment"}},
		{"multiple", "Crane and hoist coordination", []string{"Crane", "Hoist"}},
		{"no duplicates", "Crane pick with second crane", []string{"Crane"}},
		{"none", "Drywall hanging level 4", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EquipmentKeys(tt.activityName)
			if len(got) != len(tt.want) {
				t.Fatalf("EquipmentKeys(%q) = %v, want %v", tt.activityName, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("EquipmentKeys(%q)[%d] = %q, want %q", tt.activityName, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIsCraneClass(t *testing.T) {
	if !IsCraneClass("Crane") || !IsCraneClass("Hoist") {
		t.Error("crane and hoist categories must be crane-class")
	}
	if IsCraneClass("Aerial Lift") || IsCraneClass("Concrete") {
		t.Error("only crane-class equipment should be flagged")
	}
}

func TestIsWeatherSensitive(t *testing.T) {
	sensitive := []string{"Concrete", "Roofing", "Painting", "Masonry", "Excavation", "Paving", "Waterproofing", "Landscaping"}
	for _, trade := range sensitive {
		if !IsWeatherSensitive(trade) {
			t.Errorf("%s must be weather-sensitive", trade)
		}
	}

	for _, trade := range []string{"Electrical", "Drywall", "HVAC", GeneralResourceKey} {
		if IsWeatherSensitive(trade) {
			t.Errorf("%s must not be weather-sensitive", trade)
		}
	}
}
