package efa

import "time"

// System message categories used by the backend.
const (
	MessageError   = "error"
	MessageWarning = "warning"
	MessageInfo    = "info"
)

// Location types returned by the stop finder.
const (
	LocationStop    = "stop"
	LocationAddress = "address"
	LocationPOI     = "poi"
)

// SystemMessage is a backend-emitted diagnostic note accompanying a
// response, independent of the HTTP status.
type SystemMessage struct {
	Type    string `json:"type,omitempty"`
	Module  string `json:"module,omitempty"`
	Code    int    `json:"code,omitempty"`
	Text    string `json:"text,omitempty"`
	SubType string `json:"sub_type,omitempty"`
}

// LocationSummary is the compact representation of a location. Latitude and
// longitude are nil when the backend sent no usable coordinate pair.
type LocationSummary struct {
	ID         string         `json:"id,omitempty"`
	Name       string         `json:"name,omitempty"`
	Type       string         `json:"type,omitempty"`
	Latitude   *float64       `json:"latitude,omitempty"`
	Longitude  *float64       `json:"longitude,omitempty"`
	Locality   string         `json:"locality,omitempty"`
	StopID     string         `json:"stop_id,omitempty"`
	Platform   string         `json:"platform,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// StopCandidate is one stop finder result entry. IsBest is set only when the
// backend explicitly flags the entry; it is never inferred from MatchQuality.
type StopCandidate struct {
	LocationSummary
	MatchQuality   int   `json:"match_quality"`
	IsBest         bool  `json:"is_best"`
	ProductClasses []int `json:"product_classes,omitempty"`
}

// TransportProduct classifies a line (bus, regional train, cable car, ...).
type TransportProduct struct {
	ID     int    `json:"id,omitempty"`
	Class  int    `json:"class,omitempty"`
	Name   string `json:"name,omitempty"`
	IconID int    `json:"icon_id,omitempty"`
}

// TransportOperator identifies the operating company of a line.
type TransportOperator struct {
	ID   string `json:"id,omitempty"`
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}

// TransportReference points at a line's origin or destination stop.
type TransportReference struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

// TransportInfo describes the vehicle line serving a departure event or a
// trip leg.
type TransportInfo struct {
	ID          string              `json:"id,omitempty"`
	Name        string              `json:"name,omitempty"`
	ShortName   string              `json:"short_name,omitempty"`
	Number      string              `json:"number,omitempty"`
	Description string              `json:"description,omitempty"`
	Product     *TransportProduct   `json:"product,omitempty"`
	Operator    *TransportOperator  `json:"operator,omitempty"`
	Origin      *TransportReference `json:"origin,omitempty"`
	Destination *TransportReference `json:"destination,omitempty"`
	Properties  map[string]any      `json:"properties,omitempty"`
}

// Notice is an informational or disruption note attached to a departure
// event or trip leg.
type Notice struct {
	ID       string `json:"id,omitempty"`
	Type     string `json:"type,omitempty"`
	Priority string `json:"priority,omitempty"`
	Text     string `json:"text,omitempty"`
	URL      string `json:"url,omitempty"`
}

// DepartureEvent is one normalized departure monitor entry. DelaySeconds is
// estimated minus planned and may be negative; it is zero, and IsRealtime
// false, whenever either time is missing.
type DepartureEvent struct {
	Stop           LocationSummary `json:"stop"`
	PlannedTime    time.Time       `json:"planned_time"`
	EstimatedTime  *time.Time      `json:"estimated_time,omitempty"`
	DelaySeconds   int64           `json:"delay_seconds"`
	IsRealtime     bool            `json:"is_realtime"`
	RealtimeStatus string          `json:"realtime_status,omitempty"`
	Transportation TransportInfo   `json:"transportation"`
	Notices        []Notice        `json:"notices,omitempty"`
	Properties     map[string]any  `json:"properties,omitempty"`
}

// DepartureQuery echoes the resolved request back to the caller, with the
// reference instant already split into service-zone date and time strings.
type DepartureQuery struct {
	StopID   string `json:"stop_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Limit    int    `json:"limit,omitempty"`
	Realtime bool   `json:"realtime"`
}

// DepartureBoard is the result of a departure monitor request.
type DepartureBoard struct {
	Stop     LocationSummary  `json:"stop"`
	Query    DepartureQuery   `json:"query"`
	Events   []DepartureEvent `json:"events"`
	Messages []SystemMessage  `json:"messages,omitempty"`
}

// StopFinderResult is the result of a stop lookup.
type StopFinderResult struct {
	Query      string          `json:"query"`
	Candidates []StopCandidate `json:"candidates"`
	Messages   []SystemMessage `json:"messages,omitempty"`
}

// TripLegStop is one intermediate stop of a vehicle leg, with its own
// planned and estimated arrival and departure times.
type TripLegStop struct {
	LocationSummary
	ArrivalPlanned     *time.Time `json:"arrival_planned,omitempty"`
	ArrivalEstimated   *time.Time `json:"arrival_estimated,omitempty"`
	DeparturePlanned   *time.Time `json:"departure_planned,omitempty"`
	DepartureEstimated *time.Time `json:"departure_estimated,omitempty"`
	SequenceIndex      int        `json:"sequence_index"`
}

// TripStep is a turn-by-turn instruction of a walking leg.
type TripStep struct {
	Description              string  `json:"description,omitempty"`
	TurnDirection            string  `json:"turn_direction,omitempty"`
	Maneuver                 string  `json:"maneuver,omitempty"`
	DistanceMeters           float64 `json:"distance_meters,omitempty"`
	CumulativeDistanceMeters float64 `json:"cumulative_distance_meters,omitempty"`
	DurationSeconds          int     `json:"duration_seconds,omitempty"`
	CumulativeDurationSec    int     `json:"cumulative_duration_seconds,omitempty"`
}

// Coordinate is one point of a leg's path polyline.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TripLeg is one uninterrupted segment of a journey. Transportation is nil
// for walking legs.
type TripLeg struct {
	Mode            string           `json:"mode,omitempty"`
	DurationSeconds int              `json:"duration_seconds,omitempty"`
	Transportation  *TransportInfo   `json:"transportation,omitempty"`
	Origin          *LocationSummary `json:"origin,omitempty"`
	Destination     *LocationSummary `json:"destination,omitempty"`
	Stops           []TripLegStop    `json:"stops,omitempty"`
	Steps           []TripStep       `json:"steps,omitempty"`
	Notices         []Notice         `json:"notices,omitempty"`
	Path            []Coordinate     `json:"path,omitempty"`
	Properties      map[string]any   `json:"properties,omitempty"`
}

// FareOption is one ticket offer attached to a journey.
type FareOption struct {
	ID             string         `json:"id,omitempty"`
	Name           string         `json:"name,omitempty"`
	Price          float64        `json:"price,omitempty"`
	Currency       string         `json:"currency,omitempty"`
	Person         string         `json:"person,omitempty"`
	TravellerClass string         `json:"traveller_class,omitempty"`
	TimeValidity   string         `json:"time_validity,omitempty"`
	ValidMinutes   int            `json:"valid_minutes,omitempty"`
	FromLeg        int            `json:"from_leg,omitempty"`
	ToLeg          int            `json:"to_leg,omitempty"`
	Properties     map[string]any `json:"properties,omitempty"`
}

// TripJourney is one complete planned trip. StartTime and EndTime are
// derived from the first leg's departure and the last leg's arrival,
// preferring estimated over planned times; DurationSeconds is their
// difference when both are present.
type TripJourney struct {
	Rating          int            `json:"rating,omitempty"`
	IsAdditional    bool           `json:"is_additional,omitempty"`
	Interchanges    int            `json:"interchanges"`
	StartTime       *time.Time     `json:"start_time,omitempty"`
	EndTime         *time.Time     `json:"end_time,omitempty"`
	DurationSeconds *int64         `json:"duration_seconds,omitempty"`
	DaysOfService   map[string]any `json:"days_of_service,omitempty"`
	Legs            []TripLeg      `json:"legs"`
	Fares           []FareOption   `json:"fares,omitempty"`
}

// TripEndpoint specifies one end of a trip request, typically a stop id
// obtained from FindStops.
type TripEndpoint struct {
	StopID string `json:"stop_id"`
	Type   string `json:"type,omitempty"`
	Label  string `json:"label,omitempty"`
}

// TripPlan is the result of a trip planning request.
type TripPlan struct {
	QueryTime   time.Time       `json:"query_time"`
	ArriveBy    bool            `json:"arrive_by"`
	Origin      TripEndpoint    `json:"origin"`
	Destination TripEndpoint    `json:"destination"`
	Via         *TripEndpoint   `json:"via,omitempty"`
	Journeys    []TripJourney   `json:"journeys"`
	Messages    []SystemMessage `json:"messages,omitempty"`
}

// ModeFilter selects which transport products a trip request may use. The
// zero value means no restriction (all modes included).
type ModeFilter struct {
	Bus      bool `json:"bus"`
	Rail     bool `json:"rail"`
	CableCar bool `json:"cable_car"`
}

// AllModes returns a filter with every transport mode enabled.
func AllModes() ModeFilter {
	return ModeFilter{Bus: true, Rail: true, CableCar: true}
}
