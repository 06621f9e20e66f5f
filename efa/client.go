package efa

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Defaults for the recognized configuration surface. None of the options is
// required.
const (
	DefaultBaseURL     = "https://efa.sta.bz.it/apb"
	DefaultLanguage    = "en"
	DefaultCoordFormat = "WGS84[DD.DDDDD]"

	DefaultRequestTimeout     = 15 * time.Second
	DefaultMinRequestInterval = 200 * time.Millisecond
	DefaultMaxConcurrent      = 4

	DefaultStopCacheTTL      = 30 * time.Second
	DefaultTripCacheTTL      = 15 * time.Second
	DefaultDepartureCacheTTL = 10 * time.Second

	DefaultDepartureLimit = 10
	DefaultMaxJourneys    = 5
)

// RequestObserver receives the description of every outbound request just
// before it is sent. Implementations must be safe for concurrent use.
type RequestObserver interface {
	ObserveRequest(endpoint, url string)
}

// Options configures a Client. The zero value is usable; every field has a
// default.
type Options struct {
	BaseURL     string
	Language    string
	CoordFormat string

	RequestTimeout     time.Duration
	MinRequestInterval time.Duration
	MaxConcurrent      int

	StopCacheTTL      time.Duration
	DepartureCacheTTL time.Duration
	TripCacheTTL      time.Duration

	HTTPClient *http.Client
	Clock      Clock
	Logger     *zap.SugaredLogger
	Observer   RequestObserver
}

func (o *Options) applyDefaults() {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.CoordFormat == "" {
		o.CoordFormat = DefaultCoordFormat
	}
	if o.RequestTimeout == 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
	if o.MinRequestInterval == 0 {
		o.MinRequestInterval = DefaultMinRequestInterval
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = DefaultMaxConcurrent
	}
	if o.StopCacheTTL == 0 {
		o.StopCacheTTL = DefaultStopCacheTTL
	}
	if o.DepartureCacheTTL == 0 {
		o.DepartureCacheTTL = DefaultDepartureCacheTTL
	}
	if o.TripCacheTTL == 0 {
		o.TripCacheTTL = DefaultTripCacheTTL
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: o.RequestTimeout}
	}
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop().Sugar()
	}
}

// StopSearchOptions tunes FindStops. The zero value returns all candidates.
type StopSearchOptions struct {
	Limit    int
	Types    []string
	BestOnly bool
}

// DepartureOptions tunes Departures. A zero When means "now" in the service
// time zone; realtime data is requested unless disabled.
type DepartureOptions struct {
	When            time.Time
	Limit           int
	DisableRealtime bool
}

// TripOptions tunes PlanTrip. A zero When means "now"; the zero ModeFilter
// places no restriction on transport modes. Long-distance services are
// excluded unless requested.
type TripOptions struct {
	Via                 *TripEndpoint
	When                time.Time
	ArriveBy            bool
	MaxJourneys         int
	DisableRealtime     bool
	Modes               ModeFilter
	IncludeLongDistance bool
}

// Client is the transit-backend client. One instance is safe for concurrent
// use by multiple callers; it owns the response cache and the transport gate
// for its lifetime.
type Client struct {
	opts  Options
	cache *responseCache
	gate  *transportGate
	log   *zap.SugaredLogger
}

// New creates a Client with the given options, filling in defaults for
// everything left unset.
func New(opts Options) *Client {
	opts.applyDefaults()
	return &Client{
		opts:  opts,
		cache: newResponseCache(opts.Clock),
		gate:  newTransportGate(opts.MaxConcurrent, opts.MinRequestInterval),
		log:   opts.Logger,
	}
}

// FindStops looks up stop, address and POI candidates for a free-text query.
// An empty candidate list is an error only when the backend also emitted an
// error-category message.
func (c *Client) FindStops(ctx context.Context, query string, opts StopSearchOptions) (*StopFinderResult, error) {
	p := stopFinderParams(c.opts.Language, c.opts.CoordFormat, query)
	payload, err := c.request(ctx, endpointStopFinder, p, c.opts.StopCacheTTL)
	if err != nil {
		return nil, err
	}
	messages := normalizeMessages(payload.SystemMessages)
	candidates := make([]StopCandidate, 0, len(payload.Locations))
	for _, loc := range payload.Locations {
		candidates = append(candidates, normalizeStopCandidate(loc))
	}
	if len(opts.Types) > 0 {
		candidates = filterTypes(candidates, opts.Types)
	}
	if opts.BestOnly {
		kept := candidates[:0]
		for _, cand := range candidates {
			if cand.IsBest {
				kept = append(kept, cand)
			}
		}
		candidates = kept
	}
	if opts.Limit > 0 && len(candidates) > opts.Limit {
		candidates = candidates[:opts.Limit]
	}
	if len(candidates) == 0 && hasErrorMessage(messages) {
		return nil, &BackendSignaledError{Reason: "no stop finder results", Messages: messages}
	}
	return &StopFinderResult{Query: query, Candidates: candidates, Messages: messages}, nil
}

// Departures returns the departure board for a stop.
func (c *Client) Departures(ctx context.Context, stopID string, opts DepartureOptions) (*DepartureBoard, error) {
	when := toServiceTime(opts.When, c.opts.Clock)
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultDepartureLimit
	}
	realtime := !opts.DisableRealtime
	p := departureParams(c.opts.Language, c.opts.CoordFormat, stopID, when, limit, realtime)
	payload, err := c.request(ctx, endpointDepartures, p, c.opts.DepartureCacheTTL)
	if err != nil {
		return nil, err
	}
	messages := normalizeMessages(payload.SystemMessages)
	events := make([]DepartureEvent, 0, len(payload.StopEvents))
	for _, raw := range payload.StopEvents {
		events = append(events, normalizeDepartureEvent(raw, c.opts.Clock))
	}
	if len(events) > limit {
		events = events[:limit]
	}
	if len(events) == 0 && hasErrorMessage(messages) {
		return nil, &BackendSignaledError{Reason: "no departures returned", Messages: messages}
	}
	return &DepartureBoard{
		Stop: headlineStop(payload.Locations, stopID),
		Query: DepartureQuery{
			StopID:   stopID,
			Date:     when.Format("2006-01-02"),
			Time:     when.Format(serviceTimeLayout),
			Limit:    limit,
			Realtime: realtime,
		},
		Events:   events,
		Messages: messages,
	}, nil
}

// PlanTrip plans journeys between two stops. The routing itself happens in
// the backend; the result is reshaped, never recomputed.
func (c *Client) PlanTrip(ctx context.Context, origin, destination TripEndpoint, opts TripOptions) (*TripPlan, error) {
	when := toServiceTime(opts.When, c.opts.Clock)
	maxJourneys := opts.MaxJourneys
	if maxJourneys <= 0 {
		maxJourneys = DefaultMaxJourneys
	}
	realtime := !opts.DisableRealtime
	p := tripParams(c.opts.Language, c.opts.CoordFormat, origin, destination, opts.Via,
		when, opts.ArriveBy, maxJourneys, realtime, opts.Modes, opts.IncludeLongDistance)
	payload, err := c.request(ctx, endpointTrip, p, c.opts.TripCacheTTL)
	if err != nil {
		return nil, err
	}
	messages := normalizeMessages(payload.SystemMessages)
	journeys := make([]TripJourney, 0, len(payload.Journeys))
	for _, raw := range payload.Journeys {
		journeys = append(journeys, normalizeJourney(raw))
	}
	if len(journeys) == 0 && hasErrorMessage(messages) {
		return nil, &BackendSignaledError{Reason: "trip planning failed", Messages: messages}
	}
	return &TripPlan{
		QueryTime:   c.opts.Clock.Now().UTC(),
		ArriveBy:    opts.ArriveBy,
		Origin:      origin,
		Destination: destination,
		Via:         opts.Via,
		Journeys:    journeys,
		Messages:    messages,
	}, nil
}

// request performs one backend call: cache lookup, gated fetch, status
// classification, decode, cache store. It is a single attempt; retry policy
// belongs to the caller.
func (c *Client) request(ctx context.Context, endpoint string, p params, ttl time.Duration) (*rawResponse, error) {
	key := cacheKey(endpoint, p)
	if ttl > 0 {
		if payload, ok := c.cache.get(key); ok {
			c.log.Debugw("cache hit", "endpoint", endpoint)
			return payload, nil
		}
	}

	if err := c.gate.acquire(ctx); err != nil {
		return nil, err
	}
	defer c.gate.release()

	url := c.opts.BaseURL + "/" + endpoint + "?" + p.encode()
	if c.opts.Observer != nil {
		c.opts.Observer.ObserveRequest(endpoint, url)
	}
	c.log.Debugw("backend request", "endpoint", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Op: endpoint, Err: err}
	}
	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if err := classifyStatus(endpoint, resp.StatusCode); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: endpoint, Err: err}
	}
	payload, err := decodeResponse(body)
	if err != nil {
		return nil, &BackendSignaledError{Reason: "undecodable response body"}
	}
	if ttl > 0 {
		c.cache.put(key, payload, ttl)
	}
	return payload, nil
}

func filterTypes(candidates []StopCandidate, types []string) []StopCandidate {
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[strings.ToLower(t)] = true
	}
	kept := candidates[:0]
	for _, cand := range candidates {
		if cand.Type != "" && allowed[strings.ToLower(cand.Type)] {
			kept = append(kept, cand)
		}
	}
	return kept
}
