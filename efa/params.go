package efa

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Backend endpoints. Each takes a flat key/value query parameter set via GET.
const (
	endpointStopFinder = "XML_STOPFINDER_REQUEST"
	endpointDepartures = "XML_DM_REQUEST"
	endpointTrip       = "XML_TRIP_REQUEST2"
)

// params is the backend's flat wire parameter set. Absent keys signal "use
// backend default"; setters therefore drop empty values instead of sending
// empty strings.
type params map[string]string

func (p params) set(key, value string) {
	if value == "" {
		return
	}
	p[key] = value
}

// setBool encodes booleans as the literal "1"/"0" the backend expects.
func (p params) setBool(key string, value bool) {
	if value {
		p[key] = "1"
	} else {
		p[key] = "0"
	}
}

func (p params) setInt(key string, value int) {
	if value <= 0 {
		return
	}
	p[key] = strconv.Itoa(value)
}

// setList encodes a collection as comma-joined scalars, skipping empties.
func (p params) setList(key string, values []string) {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) > 0 {
		p[key] = strings.Join(kept, ",")
	}
}

// encode renders the parameter set as a URL query string with keys in sorted
// order, so the encoded form is deterministic.
func (p params) encode() string {
	v := url.Values{}
	for key, value := range p {
		v.Set(key, value)
	}
	return v.Encode()
}

// cacheKey derives the memoization key for an endpoint and parameter set.
// Values are stringified and sorted by key, so two logically identical
// requests map to the same key regardless of insertion order.
func cacheKey(endpoint string, p params) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(endpoint)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(p[k])
	}
	return b.String()
}

// baseParams carries the options every endpoint shares.
func baseParams(language, coordFormat string) params {
	p := params{}
	p.set("outputFormat", "rapidJSON")
	p.set("language", language)
	p.set("coordOutputFormat", coordFormat)
	p.set("SpEncId", "0")
	return p
}

func stopFinderParams(language, coordFormat, query string) params {
	p := baseParams(language, coordFormat)
	p.set("odvSugMacro", "true")
	p.set("name_sf", query)
	return p
}

func departureParams(language, coordFormat, stopID string, when time.Time, limit int, realtime bool) params {
	p := baseParams(language, coordFormat)
	p.set("locationServerActive", "1")
	p.set("stateless", "1")
	p.set("mode", "direct")
	p.set("type_dm", "stopID")
	p.set("name_dm", stopID)
	p.set("useAllStops", "1")
	p.setBool("useRealtime", realtime)
	p.set("itdDate", when.Format(serviceDateLayout))
	p.set("itdTime", when.Format(serviceTimeLayout))
	p.setInt("limit", limit)
	p.set("itdLPxx_depOnly", "1")
	return p
}

func tripParams(language, coordFormat string, origin, destination TripEndpoint, via *TripEndpoint,
	when time.Time, arriveBy bool, maxJourneys int, realtime bool, modes ModeFilter, longDistance bool) params {
	p := baseParams(language, coordFormat)
	p.set("locationServerActive", "1")
	p.set("stateless", "1")
	p.set("type_origin", origin.kind())
	p.set("name_origin", origin.StopID)
	p.set("type_destination", destination.kind())
	p.set("name_destination", destination.StopID)
	if via != nil {
		p.set("type_via", via.kind())
		p.set("name_via", via.StopID)
	}
	p.set("itdDate", when.Format(serviceDateLayout))
	p.set("itdTime", when.Format(serviceTimeLayout))
	if arriveBy {
		p.set("itdTripDateTimeDepArr", "arr")
	} else {
		p.set("itdTripDateTimeDepArr", "dep")
	}
	p.setInt("calcNumberOfTrips", maxJourneys)
	p.setBool("useRealtime", realtime)
	p.set("itOptionsActive", "1")
	p.set("ptOptionsActive", "1")

	// Mode restrictions use the checkbox encoding: each included product
	// class gets its own flag. A zero filter means no restriction.
	if modes != (ModeFilter{}) && modes != AllModes() {
		p.set("includedMeans", "checkbox")
		if modes.Bus {
			p.set("inclMOT_BUS", "true")
		}
		if modes.Rail {
			p.set("inclMOT_ZUG", "true")
		}
		if modes.CableCar {
			p.set("inclMOT_8", "true")
		}
	}
	if longDistance {
		p.set("lineRestriction", "400")
	} else {
		p.set("lineRestriction", "401")
	}
	return p
}

func (e TripEndpoint) kind() string {
	if e.Type == "" {
		return "stopID"
	}
	return e.Type
}
