package core

import "strings"

// GeneralResourceKey is the fallback when no trade or equipment category can
// be inferred; unclassified work still participates in conflict detection.
const GeneralResourceKey = "General"

// tradePattern maps a name substring to a canonical trade key. Patterns are
// checked in order; the first match wins.
type tradePattern struct {
	keyword string
	key     string
}

// tradePatterns is the ordered classification table for labor trades.
// More specific keywords come before generic ones (e.g. "concrete pump" must
// hit the equipment table first, but "pour" alone means concrete work).
var tradePatterns = []tradePattern{
	{"concrete", "Concrete"},
	{"pour", "Concrete"},
	{"foundation", "Concrete"},
	{"slab", "Concrete"},
	{"rebar", "Concrete"},
	{"structural steel", "Steel"},
	{"steel", "Steel"},
	{"weld", "Steel"},
	{"electrical", "Electrical"},
	{"electric", "Electrical"},
	{"conduit", "Electrical"},
	{"plumbing", "Plumbing"},
	{"plumb", "Plumbing"},
	{"piping", "Plumbing"},
	{"hvac", "HVAC"},
	{"ductwork", "HVAC"},
	{"mechanical", "HVAC"},
	{"roofing", "Roofing"},
	{"roof", "Roofing"},
	{"paint", "Painting"},
	{"masonry", "Masonry"},
	{"brick", "Masonry"},
	{"block", "Masonry"},
	{"cmu", "Masonry"},
	{"drywall", "Drywall"},
	{"gypsum", "Drywall"},
	{"framing", "Carpentry"},
	{"carpentry", "Carpentry"},
	{"millwork", "Carpentry"},
	{"excavation", "Excavation"},
	{"excavate", "Excavation"},
	{"grading", "Excavation"},
	{"earthwork", "Excavation"},
	{"paving", "Paving"},
	{"asphalt", "Paving"},
	{"waterproofing", "Waterproofing"},
	{"waterproof", "Waterproofing"},
	{"landscaping", "Landscaping"},
	{"landscape", "Landscaping"},
	{"glazing", "Glazing"},
	{"curtain wall", "Glazing"},
	{"window", "Glazing"},
	{"insulation", "Insulation"},
	{"fireproofing", "Fire Protection"},
	{"sprinkler", "Fire Protection"},
	{"elevator", "Elevator"},
}

// equipmentPatterns maps name substrings to shared equipment categories.
// Each equipment category has a singleton capacity: one unit on site.
var equipmentPatterns = []tradePattern{
	{"tower crane", "Crane"},
	{"crane", "Crane"},
	{"hoist", "Hoist"},
	{"boom lift", "Aerial Lift"},
	{"scissor lift", "Aerial Lift"},
	{"man lift", "Aerial Lift"},
	{"concrete pump", "Concrete Pump"},
	{"pump truck", "Concrete Pump"},
	{"excavator", "Earthmoving Equipment"},
	{"backhoe", "Earthmoving Equipment"},
	{"dozer", "Earthmoving Equipment"},
	{"bulldozer", "Earthmoving Equipment"},
}

// craneClassKeys are equipment categories whose conflicts are always at least
// high severity; a double-booked crane stalls every trade that depends on it.
var craneClassKeys = map[string]bool{
	"Crane": true,
	"Hoist": true,
}

// weatherSensitiveTrades lists the trades that cannot work through inclement
// conditions.
var weatherSensitiveTrades = map[string]bool{
	"Concrete":      true,
	"Roofing":       true,
	"Painting":      true,
	"Masonry":       true,
	"Excavation":    true,
	"Paving":        true,
	"Waterproofing": true,
	"Landscaping":   true,
}

// ClassifyTrade derives the labor resource key for an activity. An explicit
// trade always wins; otherwise the activity name is matched against the
// ordered keyword table, falling back to GeneralResourceKey.
func ClassifyTrade(name, explicitTrade string) string {
	if trade := strings.TrimSpace(explicitTrade); trade != "" {
		return canonicalTradeName(trade)
	}

	lower := strings.ToLower(name)
	for _, p := range tradePatterns {
		if strings.Contains(lower, p.keyword) {
			return p.key
		}
	}

	return GeneralResourceKey
}

// EquipmentKeys returns the shared equipment categories an activity demands,
// inferred from its name. The result preserves table order and contains no
// duplicates; most activities return nil.
func EquipmentKeys(name string) []string {
	lower := strings.ToLower(name)

	var keys []string
	seen := map[string]bool{}
	for _, p := range equipmentPatterns {
		if strings.Contains(lower, p.keyword) && !seen[p.key] {
			keys = append(keys, p.key)
			seen[p.key] = true
		}
	}

	return keys
}

// IsCraneClass reports whether an equipment category is crane-class, i.e. its
// conflicts are floored at high severity.
func IsCraneClass(resourceKey string) bool {
	return craneClassKeys[resourceKey]
}

// IsWeatherSensitive reports whether a trade cannot work through inclement
// conditions.
func IsWeatherSensitive(tradeKey string) bool {
	return weatherSensitiveTrades[tradeKey]
}

// canonicalTradeName title-cases an explicit trade so that "concrete",
// "Concrete", and "CONCRETE" all land in the same demand bucket.
func canonicalTradeName(trade string) string {
	words := strings.Fields(strings.ToLower(trade))
	for i, w := range words {
		if w == "hvac" {
			words[i] = "HVAC"
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
