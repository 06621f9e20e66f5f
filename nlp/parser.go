package nlp

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fugjoo/suedtirolmobil-go/efa"
)

// Query kinds a free-text request can resolve to.
const (
	KindTrip       = "trip"
	KindDepartures = "departures"
	KindStops      = "stops"
)

// ErrNoMatch is returned when a text matches none of the known query shapes.
var ErrNoMatch = errors.New("nlp: query not understood")

// Query is the structured form of a free-text transit request.
type Query struct {
	Kind         string
	From         string
	To           string
	Stop         string
	When         time.Time // zero means "now"
	ArriveBy     bool
	Modes        efa.ModeFilter
	LongDistance bool
	Language     string
}

var (
	timeRE = regexp.MustCompile(`(?i)\s*\b(?:um|at|alle)\s+(\d{1,2}):(\d{2})\b`)
	dateRE = regexp.MustCompile(`(?i)\b(heute|today|oggi|morgen|tomorrow|domani)\b`)

	tripRE     = regexp.MustCompile(`(?i)^.*?\b(?:von|from|da)\s+(.+?)\s+(?:nach|to|a)\s+(.+?)\s*$`)
	tripDashRE = regexp.MustCompile(`^\s*(.+?)\s*[-\x{2013}]\s*(.+?)\s*$`)
	departsRE  = regexp.MustCompile(`(?i)^\s*(?:abfahrten?|departures?|partenze)\s+(?:von\s+|from\s+|da\s+)?(.+?)\s*$`)
	stopsRE    = regexp.MustCompile(`(?i)^\s*(?:haltestelle|stop|fermata)\s+(.+?)\s*$`)
)

// All phrase stripping happens with case-insensitive regexes on the original
// text. Longer alternatives come first so a match never leaves a fragment of
// another word behind.
var (
	arrivalRE = regexp.MustCompile(`(?i)\b(?:ankommen|ankunft|arrival|arrivo|arrive)\b`)
	modeRE    = regexp.MustCompile(`(?i)\b(ohne|without|senza|nur|only|solo|mit|with|con)\s+(autobus|bus|seilbahn|cable ?car|funivia|treno|train|zug)\b`)

	longDistanceRE = regexp.MustCompile(`(?i)\b(?:(?:mit|with|con)\s+)?(?:fernverkehr|long[ -]distance|lunga distanza)\b`)
)

// Parse extracts a structured query from free text. Relative dates and clock
// times resolve against now. Understands short German, Italian and English
// phrasings; anything else yields ErrNoMatch.
func Parse(text string, now time.Time) (*Query, error) {
	q := &Query{Modes: efa.AllModes()}
	rest := strings.TrimSpace(text)
	if rest == "" {
		return nil, ErrNoMatch
	}
	q.Language = detectLanguage(rest)

	rest = extractWhen(rest, now, q)
	rest = extractModes(rest, q)
	rest = strings.TrimSpace(strings.Trim(rest, " ?!."))

	if m := departsRE.FindStringSubmatch(rest); m != nil {
		q.Kind = KindDepartures
		q.Stop = strings.TrimSpace(m[1])
		return q, nil
	}
	if m := stopsRE.FindStringSubmatch(rest); m != nil {
		q.Kind = KindStops
		q.Stop = strings.TrimSpace(m[1])
		return q, nil
	}
	if m := tripRE.FindStringSubmatch(rest); m != nil {
		q.Kind = KindTrip
		q.From = strings.TrimSpace(m[1])
		q.To = strings.TrimSpace(m[2])
		return q, nil
	}
	if m := tripDashRE.FindStringSubmatch(rest); m != nil && m[1] != "" && m[2] != "" {
		q.Kind = KindTrip
		q.From = strings.TrimSpace(m[1])
		q.To = strings.TrimSpace(m[2])
		return q, nil
	}
	return nil, ErrNoMatch
}

// extractWhen pulls relative dates, clock times and arrive-by markers out of
// the text and returns the remainder.
func extractWhen(text string, now time.Time, q *Query) string {
	day := now
	hasDate := false
	if m := dateRE.FindStringSubmatch(text); m != nil {
		switch strings.ToLower(m[1]) {
		case "morgen", "tomorrow", "domani":
			day = now.AddDate(0, 0, 1)
		}
		hasDate = true
		text = dateRE.ReplaceAllString(text, " ")
	}

	hasClock := false
	hour, minute := 0, 0
	if m := timeRE.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if h < 24 && min < 60 {
			hour, minute = h, min
			hasClock = true
		}
		text = timeRE.ReplaceAllString(text, " ")
	}

	switch {
	case hasClock:
		q.When = time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
	case hasDate:
		q.When = time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), 0, 0, now.Location())
	}

	if arrivalRE.MatchString(text) {
		q.ArriveBy = true
		text = arrivalRE.ReplaceAllString(text, " ")
	}
	return text
}

// extractModes interprets "mit/ohne/nur <mode>" phrases and the long
// distance keyword, returning the text with those phrases removed.
func extractModes(text string, q *Query) string {
	if longDistanceRE.MatchString(text) {
		q.LongDistance = true
		text = longDistanceRE.ReplaceAllString(text, " ")
	}

	for _, m := range modeRE.FindAllStringSubmatch(text, -1) {
		prefix := strings.ToLower(m[1])
		mode := strings.ToLower(m[2])
		isBus := mode == "bus" || mode == "autobus"
		isTrain := mode == "zug" || mode == "train" || mode == "treno"
		isCable := !isBus && !isTrain
		switch prefix {
		case "ohne", "without", "senza":
			if isBus {
				q.Modes.Bus = false
			}
			if isTrain {
				q.Modes.Rail = false
			}
			if isCable {
				q.Modes.CableCar = false
			}
		case "nur", "only", "solo":
			q.Modes = efa.ModeFilter{Bus: isBus, Rail: isTrain, CableCar: isCable}
		default: // mit/with/con: explicit inclusion, already the default
		}
	}
	return modeRE.ReplaceAllString(text, " ")
}

var germanMarkers = []string{"von ", "nach ", "abfahrt", "heute", "morgen", " um ", "haltestelle"}
var italianMarkers = []string{"da ", "partenze", "oggi", "domani", "alle ", "fermata", "funivia"}

// detectLanguage guesses the query language from marker words. The backend
// accepts it as a response-language hint, so a wrong guess only affects
// display strings.
func detectLanguage(text string) string {
	lower := " " + strings.ToLower(text) + " "
	score := func(markers []string) int {
		n := 0
		for _, m := range markers {
			if strings.Contains(lower, m) {
				n++
			}
		}
		return n
	}
	de, it := score(germanMarkers), score(italianMarkers)
	switch {
	case de >= it && de > 0:
		return "de"
	case it > 0:
		return "it"
	default:
		return "en"
	}
}
