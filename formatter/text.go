package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/fugjoo/suedtirolmobil-go/efa"
)

const clockLayout = "15:04"

// Stops renders a stop finder result as one line per candidate.
func Stops(res *efa.StopFinderResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stops matching %q:\n", res.Query)
	for _, c := range res.Candidates {
		marker := " "
		if c.IsBest {
			marker = "*"
		}
		name := c.Name
		if c.Locality != "" && !strings.Contains(name, c.Locality) {
			name = name + ", " + c.Locality
		}
		fmt.Fprintf(&b, "%s %-40s %-12s id=%s", marker, name, c.Type, displayID(c.LocationSummary))
		if c.MatchQuality > 0 {
			fmt.Fprintf(&b, " (%d)", c.MatchQuality)
		}
		b.WriteByte('\n')
	}
	if len(res.Candidates) == 0 {
		b.WriteString("  no matches\n")
	}
	return b.String()
}

// Departures renders a departure board, one event per line:
//
//	08:15 +2'  B 201  -> Meran Bahnhof  (Pl. A)
func Departures(board *efa.DepartureBoard) string {
	var b strings.Builder
	stop := board.Stop.Name
	if stop == "" {
		stop = board.Query.StopID
	}
	fmt.Fprintf(&b, "Departures at %s (%s %s):\n", stop, board.Query.Date, board.Query.Time)
	for _, ev := range board.Events {
		fmt.Fprintf(&b, "%s %-5s %-8s -> %s", ev.PlannedTime.Format(clockLayout), delayTag(&ev), lineLabel(&ev.Transportation), destinationLabel(&ev.Transportation))
		if ev.Stop.Platform != "" {
			fmt.Fprintf(&b, "  (Pl. %s)", ev.Stop.Platform)
		}
		b.WriteByte('\n')
		for _, n := range ev.Notices {
			if n.Text != "" {
				fmt.Fprintf(&b, "      ! %s\n", n.Text)
			}
		}
	}
	if len(board.Events) == 0 {
		b.WriteString("  no departures\n")
	}
	return b.String()
}

// Trips renders a trip plan, one block per journey.
func Trips(plan *efa.TripPlan) string {
	var b strings.Builder
	dir := "departing"
	if plan.ArriveBy {
		dir = "arriving"
	}
	fmt.Fprintf(&b, "Trips %s -> %s, %s %s:\n", endpointLabel(plan.Origin), endpointLabel(plan.Destination), dir, plan.QueryTime.Format("2006-01-02 15:04"))
	for i, j := range plan.Journeys {
		fmt.Fprintf(&b, "\nOption %d: %s - %s (%s, %d changes)\n", i+1, clockOrDash(j.StartTime), clockOrDash(j.EndTime), durationLabel(j.DurationSeconds), j.Interchanges)
		for _, leg := range j.Legs {
			b.WriteString("  " + legLine(&leg) + "\n")
		}
		for _, f := range j.Fares {
			if f.Price > 0 {
				fmt.Fprintf(&b, "  fare: %s %.2f %s\n", f.Name, f.Price, f.Currency)
			}
		}
	}
	if len(plan.Journeys) == 0 {
		b.WriteString("  no connections found\n")
	}
	return b.String()
}

func legLine(leg *efa.TripLeg) string {
	var b strings.Builder
	from, to := "?", "?"
	var dep, arr *time.Time
	if leg.Origin != nil {
		from = leg.Origin.Name
	}
	if leg.Destination != nil {
		to = leg.Destination.Name
	}
	if n := len(leg.Stops); n > 0 {
		first, last := leg.Stops[0], leg.Stops[n-1]
		dep = firstNonNil(first.DepartureEstimated, first.DeparturePlanned)
		arr = firstNonNil(last.ArrivalEstimated, last.ArrivalPlanned)
	}
	if leg.Transportation == nil {
		fmt.Fprintf(&b, "walk %s -> %s", from, to)
	} else {
		fmt.Fprintf(&b, "%s %s -> %s", lineLabel(leg.Transportation), from, to)
	}
	if dep != nil || arr != nil {
		fmt.Fprintf(&b, " (%s - %s)", clockOrDash(dep), clockOrDash(arr))
	} else if leg.DurationSeconds > 0 {
		fmt.Fprintf(&b, " (%d min)", leg.DurationSeconds/60)
	}
	return b.String()
}

// delayTag formats the realtime delay: "+2'" late, "-1'" early, "." on time,
// blank when no realtime data exists.
func delayTag(ev *efa.DepartureEvent) string {
	if !ev.IsRealtime {
		return ""
	}
	min := ev.DelaySeconds / 60
	switch {
	case min > 0:
		return fmt.Sprintf("+%d'", min)
	case min < 0:
		return fmt.Sprintf("%d'", min)
	default:
		return "."
	}
}

func lineLabel(t *efa.TransportInfo) string {
	switch {
	case t.ShortName != "":
		return t.ShortName
	case t.Number != "":
		return t.Number
	default:
		return t.Name
	}
}

func destinationLabel(t *efa.TransportInfo) string {
	if t.Destination != nil && t.Destination.Name != "" {
		return t.Destination.Name
	}
	return t.Description
}

func endpointLabel(e efa.TripEndpoint) string {
	if e.Label != "" {
		return e.Label
	}
	return e.StopID
}

func durationLabel(seconds *int64) string {
	if seconds == nil {
		return "?"
	}
	d := time.Duration(*seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func clockOrDash(t *time.Time) string {
	if t == nil {
		return "--:--"
	}
	return t.Format(clockLayout)
}

func firstNonNil(a, b *time.Time) *time.Time {
	if a != nil {
		return a
	}
	return b
}

func displayID(loc efa.LocationSummary) string {
	if loc.StopID != "" {
		return loc.StopID
	}
	return loc.ID
}
