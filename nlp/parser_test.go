package nlp

import (
	"errors"
	"testing"
	"time"

	"github.com/fugjoo/suedtirolmobil-go/efa"
)

var parseNow = time.Date(2024, time.May, 17, 8, 0, 0, 0, time.UTC)

func TestParseTrip(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		from, to string
		lang     string
	}{
		{"german", "von Bozen nach Meran", "Bozen", "Meran", "de"},
		{"german sentence", "wie komme ich von Bozen Bahnhof nach Meran", "Bozen Bahnhof", "Meran", "de"},
		{"english", "from Bolzano to Merano", "Bolzano", "Merano", "en"},
		{"italian", "da Bolzano a Merano", "Bolzano", "Merano", "it"},
		{"dash", "Bozen - Meran", "Bozen", "Meran", "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := Parse(tc.text, parseNow)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.text, err)
			}
			if q.Kind != KindTrip {
				t.Fatalf("kind = %q, want %q", q.Kind, KindTrip)
			}
			if q.From != tc.from || q.To != tc.to {
				t.Errorf("route = %q -> %q, want %q -> %q", q.From, q.To, tc.from, tc.to)
			}
			if q.Language != tc.lang {
				t.Errorf("language = %q, want %q", q.Language, tc.lang)
			}
			if !q.When.IsZero() {
				t.Errorf("When = %v, want zero (no time given)", q.When)
			}
			if q.Modes != efa.AllModes() {
				t.Errorf("modes = %+v, want all enabled", q.Modes)
			}
		})
	}
}

func TestParseDeparturesAndStops(t *testing.T) {
	q, err := Parse("Abfahrten Bozen", parseNow)
	if err != nil {
		t.Fatal(err)
	}
	if q.Kind != KindDepartures || q.Stop != "Bozen" {
		t.Fatalf("got kind=%q stop=%q", q.Kind, q.Stop)
	}

	q, err = Parse("departures from Bolzano", parseNow)
	if err != nil {
		t.Fatal(err)
	}
	if q.Kind != KindDepartures || q.Stop != "Bolzano" {
		t.Fatalf("got kind=%q stop=%q", q.Kind, q.Stop)
	}

	q, err = Parse("Haltestelle Meran", parseNow)
	if err != nil {
		t.Fatal(err)
	}
	if q.Kind != KindStops || q.Stop != "Meran" {
		t.Fatalf("got kind=%q stop=%q", q.Kind, q.Stop)
	}
}

func TestParseTimes(t *testing.T) {
	q, err := Parse("von Bozen nach Meran morgen um 8:30", parseNow)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, time.May, 18, 8, 30, 0, 0, time.UTC)
	if !q.When.Equal(want) {
		t.Errorf("When = %v, want %v", q.When, want)
	}
	if q.ArriveBy {
		t.Error("ArriveBy = true, want false")
	}

	q, err = Parse("Abfahrten Bozen heute", parseNow)
	if err != nil {
		t.Fatal(err)
	}
	if !q.When.Equal(parseNow) {
		t.Errorf("When = %v, want %v", q.When, parseNow)
	}

	q, err = Parse("von Bozen nach Meran Ankunft um 9:15", parseNow)
	if err != nil {
		t.Fatal(err)
	}
	if !q.ArriveBy {
		t.Error("ArriveBy = false, want true")
	}
	want = time.Date(2024, time.May, 17, 9, 15, 0, 0, time.UTC)
	if !q.When.Equal(want) {
		t.Errorf("When = %v, want %v", q.When, want)
	}
}

func TestParseModes(t *testing.T) {
	q, err := Parse("von Bozen nach Meran ohne bus", parseNow)
	if err != nil {
		t.Fatal(err)
	}
	if q.Modes.Bus || !q.Modes.Rail || !q.Modes.CableCar {
		t.Errorf("modes = %+v, want bus excluded", q.Modes)
	}
	if q.From != "Bozen" || q.To != "Meran" {
		t.Errorf("route = %q -> %q after mode stripping", q.From, q.To)
	}

	q, err = Parse("von Bozen nach Meran nur zug", parseNow)
	if err != nil {
		t.Fatal(err)
	}
	if want := (efa.ModeFilter{Rail: true}); q.Modes != want {
		t.Errorf("modes = %+v, want rail only", q.Modes)
	}

	q, err = Parse("von Bozen nach Meran mit Fernverkehr", parseNow)
	if err != nil {
		t.Fatal(err)
	}
	if !q.LongDistance {
		t.Error("LongDistance = false, want true")
	}
	if q.To != "Meran" {
		t.Errorf("To = %q, want Meran", q.To)
	}
}

func TestParseModesWithMultibyteText(t *testing.T) {
	// "İ" occupies more bytes lowercased than in its original form, so any
	// phrase stripping must not locate offsets in a lowercased copy.
	q, err := Parse("von İstanbul nach Meran ohne Bus", parseNow)
	if err != nil {
		t.Fatal(err)
	}
	if q.From != "İstanbul" || q.To != "Meran" {
		t.Errorf("route = %q -> %q, want İstanbul -> Meran", q.From, q.To)
	}
	if q.Modes.Bus || !q.Modes.Rail {
		t.Errorf("modes = %+v, want bus excluded", q.Modes)
	}

	q, err = Parse("von Müßiggang nach Meran Ankunft um 9:00", parseNow)
	if err != nil {
		t.Fatal(err)
	}
	if !q.ArriveBy || q.From != "Müßiggang" || q.To != "Meran" {
		t.Errorf("got arriveBy=%v route %q -> %q", q.ArriveBy, q.From, q.To)
	}
}

func TestParseNoMatch(t *testing.T) {
	for _, text := range []string{"", "   ", "hello there", "wetter in Bozen"} {
		if _, err := Parse(text, parseNow); !errors.Is(err, ErrNoMatch) {
			t.Errorf("Parse(%q) err = %v, want ErrNoMatch", text, err)
		}
	}
}

func TestBestCandidate(t *testing.T) {
	if got := BestCandidate(nil); got != nil {
		t.Fatalf("BestCandidate(nil) = %+v, want nil", got)
	}

	candidates := []efa.StopCandidate{
		{LocationSummary: efa.LocationSummary{Name: "Bozen Dom", Type: efa.LocationPOI}, MatchQuality: 950},
		{LocationSummary: efa.LocationSummary{Name: "Bozen", Type: efa.LocationStop}, MatchQuality: 700},
		{LocationSummary: efa.LocationSummary{Name: "Bozen Bahnhof", Type: efa.LocationStop}, MatchQuality: 820},
	}
	best := BestCandidate(candidates)
	if best == nil || best.Name != "Bozen Bahnhof" {
		t.Fatalf("best = %+v, want the highest scoring stop", best)
	}

	addresses := []efa.StopCandidate{
		{LocationSummary: efa.LocationSummary{Name: "Via Roma 1", Type: efa.LocationAddress}, MatchQuality: 400},
		{LocationSummary: efa.LocationSummary{Name: "Via Roma 2", Type: efa.LocationAddress}, MatchQuality: 600},
	}
	best = BestCandidate(addresses)
	if best == nil || best.Name != "Via Roma 2" {
		t.Fatalf("best = %+v, want the higher scoring address", best)
	}
}
