package search

import (
	"strings"

	"jobboard/internal/domain/job"
)

// RegionAliases lists, per lower-case country code, the location labels a
// permissive source may use instead of the country itself.
type RegionAliases map[string][]string

// FixedRegions pins location-bound sources to the country codes they serve.
type FixedRegions map[job.Source][]string

var DefaultRegionAliases = RegionAliases{
	"us": {"america", "usa", "united states"},
	"gb": {"europe"},
	"de": {"europe"},
	"fr": {"europe"},
	"nl": {"europe"},
	"pl": {"europe"},
	"at": {"europe"},
	"ch": {"europe"},
	"ie": {"europe"},
	"in": {"asia"},
	"sg": {"asia"},
	"jp": {"asia"},
}

var DefaultFixedRegions = FixedRegions{
	job.SourceArbeitnow: {"de", "at", "ch"},
}

// PermissiveSources are remote-first boards whose location field is advisory.
var PermissiveSources = map[job.Source]struct{}{
	job.SourceRemotive: {},
}

// CountryNames maps supported country codes to the names providers print.
var CountryNames = map[string]string{
	"us": "united states",
	"gb": "united kingdom",
	"ca": "canada",
	"au": "australia",
	"de": "germany",
	"fr": "france",
	"nl": "netherlands",
	"in": "india",
	"sg": "singapore",
	"br": "brazil",
	"nz": "new zealand",
	"za": "south africa",
	"pl": "poland",
	"at": "austria",
	"ch": "switzerland",
	"jp": "japan",
	"ae": "united arab emirates",
	"ie": "ireland",
}

func (a RegionAliases) Matches(code, location string) bool {
	for _, alias := range a[code] {
		if strings.Contains(location, alias) {
			return true
		}
	}
	return false
}

func (f FixedRegions) Serves(src job.Source, code string) (bool, bool) {
	codes, ok := f[src]
	if !ok {
		return false, false
	}
	for _, c := range codes {
		if c == code {
			return true, true
		}
	}
	return false, true
}
