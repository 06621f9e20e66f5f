package efa

import (
	"bytes"
	"encoding/json"
	"strings"
)

// The raw* types mirror the backend's response documents closely enough to
// decode them, and nothing more. All upstream irregularities are absorbed
// here: fields that arrive as a single object or a list, booleans encoded as
// strings, and identifiers that move between property keys depending on the
// endpoint. Domain values are built from these in normalize.go.

// oneOrMany decodes a JSON value that may be absent, null, a single object,
// or an array of objects into a possibly-empty slice.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = nil
		return nil
	}
	if data[0] == '[' {
		var list []T
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*o = list
		return nil
	}
	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*o = []T{single}
	return nil
}

// flexBool decodes a boolean that may arrive as a JSON bool, a number, or a
// string such as "true" or "1". Undecodable values stay false.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*f = true
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte("null")):
		*f = false
	default:
		s := strings.Trim(string(data), `"`)
		s = strings.ToLower(strings.TrimSpace(s))
		*f = s == "true" || s == "1"
	}
	return nil
}

// flexString decodes a value that may arrive as a string or as a list of
// strings, joining the list with ", ".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*f = flexString(strings.Join(list, ", "))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexString(s)
	return nil
}

type rawResponse struct {
	SystemMessages oneOrMany[rawSystemMessage] `json:"systemMessages"`
	Locations      oneOrMany[rawLocation]      `json:"locations"`
	StopEvents     oneOrMany[rawStopEvent]     `json:"stopEvents"`
	Journeys       oneOrMany[rawJourney]       `json:"journeys"`
}

type rawSystemMessage struct {
	Type    string `json:"type"`
	Module  string `json:"module"`
	Code    int    `json:"code"`
	Text    string `json:"text"`
	SubType string `json:"subType"`
}

type rawLocation struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	Coord          []float64      `json:"coord"`
	Parent         *rawLocation   `json:"parent"`
	Properties     map[string]any `json:"properties"`
	MatchQuality   int            `json:"matchQuality"`
	IsBest         flexBool       `json:"isBest"`
	ProductClasses []int          `json:"productClasses"`

	// Set only on stop sequence entries of trip legs.
	ArrivalTimePlanned     string `json:"arrivalTimePlanned"`
	ArrivalTimeEstimated   string `json:"arrivalTimeEstimated"`
	DepartureTimePlanned   string `json:"departureTimePlanned"`
	DepartureTimeEstimated string `json:"departureTimeEstimated"`
}

type rawProduct struct {
	ID     int    `json:"id"`
	Class  int    `json:"class"`
	Name   string `json:"name"`
	IconID int    `json:"iconId"`
}

type rawOperator struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type rawReference struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type rawTransport struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	DisassembledName string         `json:"disassembledName"`
	Number           string         `json:"number"`
	Description      string         `json:"description"`
	Product          *rawProduct    `json:"product"`
	Operator         *rawOperator   `json:"operator"`
	Origin           *rawReference  `json:"origin"`
	Destination      *rawReference  `json:"destination"`
	Properties       map[string]any `json:"properties"`
}

type rawInfoLink struct {
	URL string `json:"url"`
}

type rawInfo struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Priority  string                 `json:"priority"`
	Name      string                 `json:"name"`
	Text      string                 `json:"text"`
	InfoLinks oneOrMany[rawInfoLink] `json:"infoLinks"`
}

type rawStopEvent struct {
	Location               rawLocation        `json:"location"`
	DepartureTimePlanned   string             `json:"departureTimePlanned"`
	DepartureTimeEstimated string             `json:"departureTimeEstimated"`
	IsRealtimeControlled   flexBool           `json:"isRealtimeControlled"`
	RealtimeStatus         flexString         `json:"realtimeStatus"`
	Transportation         rawTransport       `json:"transportation"`
	Infos                  oneOrMany[rawInfo] `json:"infos"`
	Properties             map[string]any     `json:"properties"`
}

type rawStep struct {
	Description  string  `json:"description"`
	TurnDir      string  `json:"turnDirection"`
	Maneuver     string  `json:"manoeuvre"`
	Distance     float64 `json:"distance"`
	CumDistance  float64 `json:"cumDistance"`
	Duration     int     `json:"duration"`
	CumDuration  int     `json:"cumDuration"`
	ManeuverAlt  string  `json:"maneuver"`
	Name         string  `json:"name"`
	SkyDirection string  `json:"skyDirection"`
}

type rawLeg struct {
	Duration       int                     `json:"duration"`
	Transportation *rawTransport           `json:"transportation"`
	Origin         *rawLocation            `json:"origin"`
	Destination    *rawLocation            `json:"destination"`
	StopSequence   oneOrMany[rawLocation]  `json:"stopSequence"`
	PathDescs      oneOrMany[rawStep]      `json:"pathDescriptions"`
	Infos          oneOrMany[rawInfo]      `json:"infos"`
	Coords         [][]float64             `json:"coords"`
	Properties     map[string]any          `json:"properties"`
	FootPathInfo   oneOrMany[rawFootsteps] `json:"footPathInfo"`
}

type rawFootsteps struct {
	Position string `json:"position"`
	Duration int    `json:"duration"`
}

type rawTicket struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	PriceBrutto    float64        `json:"priceBrutto"`
	Currency       string         `json:"currency"`
	Person         string         `json:"person"`
	TravellerClass string         `json:"travellerClass"`
	TimeValidity   string         `json:"timeValidity"`
	ValidMinutes   int            `json:"validMinutes"`
	FromLeg        int            `json:"fromLeg"`
	ToLeg          int            `json:"toLeg"`
	Properties     map[string]any `json:"properties"`
}

type rawFare struct {
	Tickets oneOrMany[rawTicket] `json:"tickets"`
}

type rawJourney struct {
	Rating        int               `json:"rating"`
	IsAdditional  flexBool          `json:"isAdditional"`
	Interchanges  int               `json:"interchanges"`
	DaysOfService map[string]any    `json:"daysOfService"`
	Legs          oneOrMany[rawLeg] `json:"legs"`
	Fare          *rawFare          `json:"fare"`
}

func decodeResponse(data []byte) (*rawResponse, error) {
	var raw rawResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}
