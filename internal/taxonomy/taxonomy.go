package taxonomy

import "strings"

// ZoneType identifies a functional category of warehouse floor space.
type ZoneType string

const (
	ZoneTravelLane     ZoneType = "travel_lane"
	ZoneAislePath      ZoneType = "aisle_path"
	ZoneRacking        ZoneType = "racking"
	ZoneBulkStorage    ZoneType = "bulk_storage"
	ZoneStagingArea    ZoneType = "staging_area"
	ZoneReceiving      ZoneType = "receiving"
	ZoneShipping       ZoneType = "shipping"
	ZoneAdministrative ZoneType = "administrative"
	ZoneObstacle       ZoneType = "obstacle"

	// ZoneUnknown is the terminal fallback. Detectors never emit it as a
	// positive guess; it only appears when parsing fails or no signal exists.
	ZoneUnknown ZoneType = "unknown"
)

// AllZoneTypes returns every zone type in declaration order.
func AllZoneTypes() []ZoneType {
	return []ZoneType{
		ZoneTravelLane,
		ZoneAislePath,
		ZoneRacking,
		ZoneBulkStorage,
		ZoneStagingArea,
		ZoneReceiving,
		ZoneShipping,
		ZoneAdministrative,
		ZoneObstacle,
		ZoneUnknown,
	}
}

// Default plausibility bounds applied to zone types without a tighter band.
const (
	DefaultTypicalMinArea = 1000
	DefaultTypicalMaxArea = 1000000
)

// ZoneProperties holds the static semantic facts for one zone type.
//
// The three boolean flags are not mutually exclusive by construction, though
// typical entries assign at most one of Storage/Operational. TypicalMinArea
// and TypicalMaxArea are pixel-area plausibility bounds used by the
// adjudicator as a sanity signal, never as a hard constraint.
type ZoneProperties struct {
	Travelable     bool     `json:"travelable"`
	Storage        bool     `json:"storage"`
	Operational    bool     `json:"operational"`
	TypicalMinArea int      `json:"typical_min_area"`
	TypicalMaxArea int      `json:"typical_max_area"`
	ExpectedShapes []string `json:"expected_shapes"`
}

// properties is the total lookup table: one entry per ZoneType, fixed at
// compile time. TestLookupTotality verifies completeness against
// AllZoneTypes.
var properties = map[ZoneType]ZoneProperties{
	ZoneTravelLane: {
		Travelable:     true,
		TypicalMinArea: 2000,
		TypicalMaxArea: DefaultTypicalMaxArea,
		ExpectedShapes: []string{"rectangle", "corridor"},
	},
	ZoneAislePath: {
		Travelable:     true,
		TypicalMinArea: DefaultTypicalMinArea,
		TypicalMaxArea: 200000,
		ExpectedShapes: []string{"corridor"},
	},
	ZoneRacking: {
		Storage:        true,
		TypicalMinArea: 5000,
		TypicalMaxArea: 500000,
		ExpectedShapes: []string{"rectangle"},
	},
	ZoneBulkStorage: {
		Storage:        true,
		TypicalMinArea: 5000,
		TypicalMaxArea: DefaultTypicalMaxArea,
		ExpectedShapes: []string{"rectangle"},
	},
	ZoneStagingArea: {
		Operational:    true,
		TypicalMinArea: 3000,
		TypicalMaxArea: DefaultTypicalMaxArea,
		ExpectedShapes: []string{"rectangle"},
	},
	ZoneReceiving: {
		Travelable:     true,
		Operational:    true,
		TypicalMinArea: 3000,
		TypicalMaxArea: DefaultTypicalMaxArea,
		ExpectedShapes: []string{"rectangle"},
	},
	ZoneShipping: {
		Travelable:     true,
		Operational:    true,
		TypicalMinArea: 3000,
		TypicalMaxArea: DefaultTypicalMaxArea,
		ExpectedShapes: []string{"rectangle"},
	},
	ZoneAdministrative: {
		Operational:    true,
		TypicalMinArea: DefaultTypicalMinArea,
		TypicalMaxArea: 100000,
		ExpectedShapes: []string{"rectangle"},
	},
	ZoneObstacle: {
		TypicalMinArea: 100,
		TypicalMaxArea: 100000,
		ExpectedShapes: []string{"rectangle"},
	},
	ZoneUnknown: {
		TypicalMinArea: DefaultTypicalMinArea,
		TypicalMaxArea: DefaultTypicalMaxArea,
		ExpectedShapes: []string{"rectangle"},
	},
}

// Lookup returns the property record for a zone type.
//
// Lookup is total: a ZoneType value outside the declared set (possible since
// the underlying type is a string) resolves to the ZoneUnknown entry.
func Lookup(t ZoneType) ZoneProperties {
	if p, ok := properties[t]; ok {
		return p
	}
	return properties[ZoneUnknown]
}

// Parse resolves free text to a ZoneType.
//
// Matching is case-insensitive and treats "-" and "_" as equivalent, so
// "TRAVEL_LANE", "travel-lane" and "Travel_Lane" all resolve to
// ZoneTravelLane. Surrounding whitespace is ignored. Unrecognized text
// resolves to ZoneUnknown; Parse never fails.
func Parse(text string) ZoneType {
	norm := strings.ToLower(strings.TrimSpace(text))
	norm = strings.ReplaceAll(norm, "-", "_")
	for _, t := range AllZoneTypes() {
		if norm == string(t) {
			return t
		}
	}
	return ZoneUnknown
}

// IsTravelable reports whether a vehicle or person can path through the zone.
// Pure table lookup; always agrees with Lookup(t).Travelable.
func IsTravelable(t ZoneType) bool { return Lookup(t).Travelable }

// IsStorage reports whether the zone holds inventory.
func IsStorage(t ZoneType) bool { return Lookup(t).Storage }

// IsOperational reports whether the zone is used for active handling or
// administrative work.
func IsOperational(t ZoneType) bool { return Lookup(t).Operational }
