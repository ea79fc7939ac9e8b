package calendar

import (
	"strings"
	"time"

	"github.com/emersion/go-ical"
)

// Map of common Windows timezone names to IANA timezone names
var windowsToIANA = map[string]string{
	"Pacific Standard Time":        "America/Los_Angeles",
	"Mountain Standard Time":       "America/Denver",
	"Central Standard Time":        "America/Chicago",
	"Eastern Standard Time":        "America/New_York",
	"Atlantic Standard Time":       "America/Halifax",
	"Alaskan Standard Time":        "America/Anchorage",
	"Hawaiian Standard Time":       "Pacific/Honolulu",
	"GMT Standard Time":            "Europe/London",
	"W. Europe Standard Time":      "Europe/Berlin",
	"Central Europe Standard Time": "Europe/Budapest",
	"Romance Standard Time":        "Europe/Paris",
	"China Standard Time":          "Asia/Shanghai",
	"Tokyo Standard Time":          "Asia/Tokyo",
	"India Standard Time":          "Asia/Kolkata",
	"AUS Eastern Standard Time":    "Australia/Sydney",
}

// timedProps are the properties whose TZID parameter is rewritten
var timedProps = []string{
	ical.PropDateTimeStart,
	ical.PropDateTimeEnd,
	ical.PropExceptionDates,
	ical.PropRecurrenceDates,
}

// normalizeComponentTimezones rewrites Windows TZIDs to IANA names so the
// decoder can load them
func normalizeComponentTimezones(comp *ical.Component) {
	for _, name := range timedProps {
		for _, prop := range comp.Props.Values(name) {
			tzid := prop.Params.Get(ical.ParamTimezoneID)
			if ianaName, ok := windowsToIANA[tzid]; ok {
				prop.Params.Set(ical.ParamTimezoneID, ianaName)
			}
		}
	}
}

// getTimezoneFromComponent tries to determine the timezone of DTSTART.
// Unknown zones resolve to time.Local.
func getTimezoneFromComponent(comp *ical.Component) *time.Location {
	dtstart := comp.Props.Get(ical.PropDateTimeStart)
	if dtstart == nil {
		return time.Local
	}

	if tzid := dtstart.Params.Get(ical.ParamTimezoneID); tzid != "" {
		if ianaName, ok := windowsToIANA[tzid]; ok {
			tzid = ianaName
		}
		if loc, err := time.LoadLocation(tzid); err == nil {
			return loc
		}
	}

	if strings.HasSuffix(dtstart.Value, "Z") {
		return time.UTC
	}
	return time.Local
}
