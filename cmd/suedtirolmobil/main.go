package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	suedtirolmobil "github.com/fugjoo/suedtirolmobil-go"
	"github.com/fugjoo/suedtirolmobil-go/config"
	"github.com/fugjoo/suedtirolmobil-go/efa"
	"github.com/fugjoo/suedtirolmobil-go/formatter"
	"github.com/fugjoo/suedtirolmobil-go/internal"
	"github.com/fugjoo/suedtirolmobil-go/nlp"
)

func main() {
	mode := flag.String("mode", "serve", "serve|stops|departures|trip|ask")
	query := flag.String("q", "", "stop search text (stops mode) or free-text question (ask mode)")
	stop := flag.String("stop", "", "stop id for the departures mode")
	from := flag.String("from", "", "origin stop id (trip mode)")
	to := flag.String("to", "", "destination stop id (trip mode)")
	via := flag.String("via", "", "optional via stop id (trip mode)")
	when := flag.String("when", "", "local time 2006-01-02T15:04, empty means now")
	arriveBy := flag.Bool("arriveby", false, "treat -when as the arrival time")
	limit := flag.Int("limit", 0, "result limit, 0 uses the default")
	noRealtime := flag.Bool("no-realtime", false, "request scheduled times only")
	flag.Parse()

	internal.InitLogging()
	defer internal.SyncLogging()
	log := internal.Logger()

	if err := config.LoadAppConfig(); err != nil {
		log.Fatalw("load config", "error", err)
	}

	if *mode == "serve" {
		server, err := suedtirolmobil.NewServer()
		if err != nil {
			log.Fatalw("build server", "error", err)
		}
		go func() {
			if err := server.Start(); err != nil {
				log.Fatalw("server", "error", err)
			}
		}()
		server.HandleGracefulShutdown()
		return
	}

	client := efa.New(clientOptions(config.Config))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch *mode {
	case "stops":
		err = runStops(ctx, client, *query, *limit)
	case "departures":
		err = runDepartures(ctx, client, *stop, *when, *limit, *noRealtime)
	case "trip":
		err = runTrip(ctx, client, *from, *to, *via, *when, *arriveBy, *limit, *noRealtime)
	case "ask":
		err = runAsk(ctx, client, strings.Join(append([]string{*query}, flag.Args()...), " "))
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func clientOptions(cfg config.AppConfig) efa.Options {
	return efa.Options{
		BaseURL:            cfg.Backend.BaseURL,
		Language:           cfg.Backend.Language,
		CoordFormat:        cfg.Backend.CoordFormat,
		RequestTimeout:     time.Duration(cfg.Backend.TimeoutMS) * time.Millisecond,
		MinRequestInterval: time.Duration(cfg.Backend.MinIntervalMS) * time.Millisecond,
		MaxConcurrent:      cfg.Backend.MaxConcurrent,
	}
}

func runStops(ctx context.Context, client *efa.Client, query string, limit int) error {
	if query == "" {
		return errors.New("stops mode requires -q")
	}
	res, err := client.FindStops(ctx, query, efa.StopSearchOptions{Limit: limit})
	if err != nil {
		return err
	}
	fmt.Print(formatter.Stops(res))
	return nil
}

func runDepartures(ctx context.Context, client *efa.Client, stopID, when string, limit int, noRealtime bool) error {
	if stopID == "" {
		return errors.New("departures mode requires -stop")
	}
	at, err := parseWhen(when)
	if err != nil {
		return err
	}
	board, err := client.Departures(ctx, stopID, efa.DepartureOptions{
		When:            at,
		Limit:           limit,
		DisableRealtime: noRealtime,
	})
	if err != nil {
		return err
	}
	fmt.Print(formatter.Departures(board))
	return nil
}

func runTrip(ctx context.Context, client *efa.Client, from, to, via, when string, arriveBy bool, limit int, noRealtime bool) error {
	if from == "" || to == "" {
		return errors.New("trip mode requires -from and -to")
	}
	at, err := parseWhen(when)
	if err != nil {
		return err
	}
	opts := efa.TripOptions{
		When:            at,
		ArriveBy:        arriveBy,
		MaxJourneys:     limit,
		DisableRealtime: noRealtime,
	}
	if via != "" {
		opts.Via = &efa.TripEndpoint{StopID: via}
	}
	plan, err := client.PlanTrip(ctx, efa.TripEndpoint{StopID: from}, efa.TripEndpoint{StopID: to}, opts)
	if err != nil {
		return err
	}
	fmt.Print(formatter.Trips(plan))
	return nil
}

// runAsk parses a free-text question, resolves the named stops via the stop
// finder and runs the resulting query.
func runAsk(ctx context.Context, client *efa.Client, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("ask mode requires a question, e.g. -q \"von Bozen nach Meran\"")
	}
	parsed, err := nlp.Parse(text, time.Now())
	if err != nil {
		return err
	}

	switch parsed.Kind {
	case nlp.KindStops:
		res, findErr := client.FindStops(ctx, parsed.Stop, efa.StopSearchOptions{})
		if findErr != nil {
			return findErr
		}
		fmt.Print(formatter.Stops(res))
		return nil

	case nlp.KindDepartures:
		stop, resolveErr := resolveStop(ctx, client, parsed.Stop)
		if resolveErr != nil {
			return resolveErr
		}
		board, depErr := client.Departures(ctx, stop.StopID, efa.DepartureOptions{When: parsed.When})
		if depErr != nil {
			return depErr
		}
		fmt.Print(formatter.Departures(board))
		return nil

	case nlp.KindTrip:
		origin, resolveErr := resolveStop(ctx, client, parsed.From)
		if resolveErr != nil {
			return resolveErr
		}
		destination, resolveErr := resolveStop(ctx, client, parsed.To)
		if resolveErr != nil {
			return resolveErr
		}
		plan, tripErr := client.PlanTrip(ctx, *origin, *destination, efa.TripOptions{
			When:                parsed.When,
			ArriveBy:            parsed.ArriveBy,
			Modes:               parsed.Modes,
			IncludeLongDistance: parsed.LongDistance,
		})
		if tripErr != nil {
			return tripErr
		}
		fmt.Print(formatter.Trips(plan))
		return nil
	}
	return fmt.Errorf("unsupported query kind %q", parsed.Kind)
}

// resolveStop turns a free-text stop name into a trip endpoint using the
// highest ranked stop finder candidate.
func resolveStop(ctx context.Context, client *efa.Client, name string) (*efa.TripEndpoint, error) {
	res, err := client.FindStops(ctx, name, efa.StopSearchOptions{})
	if err != nil {
		return nil, err
	}
	best := nlp.BestCandidate(res.Candidates)
	if best == nil {
		return nil, fmt.Errorf("no stop found for %q", name)
	}
	id := best.StopID
	if id == "" {
		id = best.ID
	}
	return &efa.TripEndpoint{StopID: id, Type: endpointType(best.Type), Label: best.Name}, nil
}

func endpointType(locationType string) string {
	switch locationType {
	case efa.LocationStop, "":
		return "stopID"
	default:
		return "any"
	}
}

// parseWhen reads a zone-naive timestamp as a civil time in the backend's
// service zone, whatever the host's zone is.
func parseWhen(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04", s, efa.ServiceLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -when %q, expected 2006-01-02T15:04", s)
	}
	return t, nil
}
