package suedtirolmobil

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fugjoo/suedtirolmobil-go/efa"
)

type handlers struct {
	client *efa.Client
	log    *zap.SugaredLogger
}

// GET /api/stops?q=bozen&limit=5&types=stop,poi&best=true
func (h *handlers) stops(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return writeBadRequest(c, "missing query parameter q")
	}
	opts := efa.StopSearchOptions{
		Limit:    c.QueryInt("limit"),
		BestOnly: c.QueryBool("best"),
	}
	if types := c.Query("types"); types != "" {
		opts.Types = splitList(types)
	}
	res, err := h.client.FindStops(c.UserContext(), query, opts)
	if err != nil {
		return writeClientError(c, h.log, err)
	}
	return c.JSON(res)
}

// GET /api/departures?stop=66000456&when=2024-05-17T08:00&limit=10&realtime=false
func (h *handlers) departures(c *fiber.Ctx) error {
	stopID := strings.TrimSpace(c.Query("stop"))
	if stopID == "" {
		return writeBadRequest(c, "missing query parameter stop")
	}
	when, err := parseWhen(c.Query("when"))
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	opts := efa.DepartureOptions{
		When:            when,
		Limit:           c.QueryInt("limit"),
		DisableRealtime: !c.QueryBool("realtime", true),
	}
	board, err := h.client.Departures(c.UserContext(), stopID, opts)
	if err != nil {
		return writeClientError(c, h.log, err)
	}
	return c.JSON(board)
}

// GET /api/trips?from=66000456&to=66000821&via=...&when=...&arriveby=true&
// max=3&realtime=false&modes=bus,rail&longdistance=true
func (h *handlers) trips(c *fiber.Ctx) error {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" || to == "" {
		return writeBadRequest(c, "missing query parameter from or to")
	}
	when, err := parseWhen(c.Query("when"))
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	opts := efa.TripOptions{
		When:                when,
		ArriveBy:            c.QueryBool("arriveby"),
		MaxJourneys:         c.QueryInt("max"),
		DisableRealtime:     !c.QueryBool("realtime", true),
		IncludeLongDistance: c.QueryBool("longdistance"),
	}
	if via := strings.TrimSpace(c.Query("via")); via != "" {
		opts.Via = &efa.TripEndpoint{StopID: via}
	}
	if modes := c.Query("modes"); modes != "" {
		filter, err := parseModes(modes)
		if err != nil {
			return writeBadRequest(c, err.Error())
		}
		opts.Modes = filter
	}
	plan, err := h.client.PlanTrip(c.UserContext(),
		efa.TripEndpoint{StopID: from}, efa.TripEndpoint{StopID: to}, opts)
	if err != nil {
		return writeClientError(c, h.log, err)
	}
	return c.JSON(plan)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseWhen accepts RFC 3339 or a zone-naive "2006-01-02T15:04" timestamp.
// Naive timestamps are civil times in the backend's service zone, whatever
// the host's zone is. Empty means "now".
func parseWhen(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", s, efa.ServiceLocation()); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid when %q, expected RFC 3339 or 2006-01-02T15:04", s)
}

func parseModes(s string) (efa.ModeFilter, error) {
	var f efa.ModeFilter
	for _, m := range splitList(s) {
		switch strings.ToLower(m) {
		case "bus":
			f.Bus = true
		case "rail", "train":
			f.Rail = true
		case "cablecar", "cable_car":
			f.CableCar = true
		default:
			return f, fmt.Errorf("unknown mode %q", m)
		}
	}
	return f, nil
}
