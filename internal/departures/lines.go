package departures

import "strings"

// fallbackLineName is used when a trip carries no route ID at all.
const fallbackLineName = "Train"

// lineNames maps the 2-character segments of a route code to a display name.
// SEQ route IDs encode origin and destination line codes plus a version suffix,
// e.g. "RPSP-4484" is a Redcliffe Peninsula to Springfield service.
var lineNames = map[string]string{
	"RP": "Redcliffe Peninsula",
	"SP": "Springfield",
	"CA": "Caboolture",
	"NA": "Nambour",
	"IP": "Ipswich",
	"RW": "Rosewood",
	"BD": "Beenleigh",
	"CL": "Cleveland",
	"SH": "Shorncliffe",
	"FG": "Ferny Grove",
	"DB": "Doomben",
	"AP": "Airport",
	"GY": "Gympie North",
	"VL": "Varsity Lakes",
	"BR": "Brisbane City",
}

// platformNames maps a platform stop ID to its short display label.
// Entries are cosmetic; a missing ID just means no platform is shown.
var platformNames = map[string]string{
	"600012": "Platform 1",
	"600013": "Platform 2",
	"600014": "Platform 3",
	"600015": "Platform 4",
	"600016": "Platform 5",
	"600017": "Platform 6",
	"600822": "Platform 1",
	"600823": "Platform 2",
}

// LineName resolves the display name for a route ID. The portion of the
// (upper-cased) route ID before the first hyphen is the route code; its first
// two characters name the origin line, the next two the destination line.
// useDestination prefers the destination half when the code is long enough.
// Unknown codes fall back to the raw route ID so new lines still render.
func LineName(routeID string, useDestination bool) string {
	if routeID == "" {
		return fallbackLineName
	}
	code := strings.ToUpper(routeID)
	if i := strings.IndexByte(code, '-'); i >= 0 {
		code = code[:i]
	}
	if useDestination && len(code) >= 4 {
		if name, ok := lineNames[code[2:4]]; ok {
			return name
		}
	}
	if len(code) >= 2 {
		if name, ok := lineNames[code[:2]]; ok {
			return name
		}
	}
	return routeID
}

// PlatformName returns the display label for a platform stop ID, or "" when
// the stop has no configured label.
func PlatformName(stopID string) string {
	return platformNames[stopID]
}
