package efa

import "time"

// Normalization maps raw backend documents into the domain model. Malformed
// or missing optional fields degrade to absent values; nothing in this file
// returns an error.

func normalizeMessages(raw []rawSystemMessage) []SystemMessage {
	if len(raw) == 0 {
		return nil
	}
	out := make([]SystemMessage, 0, len(raw))
	for _, m := range raw {
		out = append(out, SystemMessage{
			Type:    m.Type,
			Module:  m.Module,
			Code:    m.Code,
			Text:    m.Text,
			SubType: m.SubType,
		})
	}
	return out
}

// normalizeLocation builds a location summary. The internal stop identifier
// may live under different keys depending on the endpoint; the properties
// bag is consulted first, the generic id last.
func normalizeLocation(raw rawLocation) LocationSummary {
	loc := LocationSummary{
		ID:   raw.ID,
		Name: raw.Name,
		Type: raw.Type,
	}
	if len(raw.Coord) >= 2 {
		lat, lon := raw.Coord[0], raw.Coord[1]
		loc.Latitude = &lat
		loc.Longitude = &lon
	}
	if raw.Parent != nil {
		switch raw.Parent.Type {
		case "locality", "municipality":
			loc.Locality = raw.Parent.Name
		}
	}
	if raw.Properties != nil {
		loc.Properties = raw.Properties
		loc.StopID = stringProperty(raw.Properties, "stopId")
		loc.Platform = stringProperty(raw.Properties, "platform")
	}
	if loc.StopID == "" {
		loc.StopID = raw.ID
	}
	return loc
}

func stringProperty(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

func normalizeStopCandidate(raw rawLocation) StopCandidate {
	return StopCandidate{
		LocationSummary: normalizeLocation(raw),
		MatchQuality:    raw.MatchQuality,
		IsBest:          bool(raw.IsBest),
		ProductClasses:  raw.ProductClasses,
	}
}

func normalizeTransport(raw rawTransport) TransportInfo {
	info := TransportInfo{
		ID:          raw.ID,
		Name:        raw.Name,
		ShortName:   raw.DisassembledName,
		Number:      raw.Number,
		Description: raw.Description,
		Properties:  raw.Properties,
	}
	if raw.Product != nil {
		info.Product = &TransportProduct{
			ID:     raw.Product.ID,
			Class:  raw.Product.Class,
			Name:   raw.Product.Name,
			IconID: raw.Product.IconID,
		}
	}
	if raw.Operator != nil {
		info.Operator = &TransportOperator{ID: raw.Operator.ID, Code: raw.Operator.Code, Name: raw.Operator.Name}
	}
	if raw.Origin != nil {
		info.Origin = &TransportReference{ID: raw.Origin.ID, Name: raw.Origin.Name, Type: raw.Origin.Type}
	}
	if raw.Destination != nil {
		info.Destination = &TransportReference{ID: raw.Destination.ID, Name: raw.Destination.Name, Type: raw.Destination.Type}
	}
	return info
}

func normalizeNotice(raw rawInfo) Notice {
	n := Notice{
		ID:       raw.ID,
		Type:     raw.Type,
		Priority: raw.Priority,
		Text:     raw.Text,
	}
	if n.Text == "" {
		n.Text = raw.Name
	}
	if len(raw.InfoLinks) > 0 {
		n.URL = raw.InfoLinks[0].URL
	}
	return n
}

func normalizeNotices(raw []rawInfo) []Notice {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Notice, 0, len(raw))
	for _, info := range raw {
		out = append(out, normalizeNotice(info))
	}
	return out
}

// normalizeDepartureEvent derives the delay from planned and estimated
// times. The delay is defined only when both are present; otherwise it is
// zero and the realtime flag is forced off, whatever the backend claimed.
func normalizeDepartureEvent(raw rawStopEvent, clock Clock) DepartureEvent {
	planned := parseBackendTime(raw.DepartureTimePlanned)
	estimated := parseBackendTime(raw.DepartureTimeEstimated)

	event := DepartureEvent{
		Stop:           normalizeLocation(raw.Location),
		EstimatedTime:  estimated,
		RealtimeStatus: string(raw.RealtimeStatus),
		Transportation: normalizeTransport(raw.Transportation),
		Notices:        normalizeNotices(raw.Infos),
		Properties:     raw.Properties,
	}
	if planned != nil {
		event.PlannedTime = *planned
	} else {
		event.PlannedTime = clock.Now()
	}
	if planned != nil && estimated != nil {
		event.DelaySeconds = int64(estimated.Sub(*planned).Seconds())
		event.IsRealtime = bool(raw.IsRealtimeControlled)
	}
	return event
}

func normalizeStep(raw rawStep) TripStep {
	maneuver := raw.Maneuver
	if maneuver == "" {
		maneuver = raw.ManeuverAlt
	}
	return TripStep{
		Description:              raw.Description,
		TurnDirection:            raw.TurnDir,
		Maneuver:                 maneuver,
		DistanceMeters:           raw.Distance,
		CumulativeDistanceMeters: raw.CumDistance,
		DurationSeconds:          raw.Duration,
		CumulativeDurationSec:    raw.CumDuration,
	}
}

func normalizeLegStop(raw rawLocation, index int) TripLegStop {
	return TripLegStop{
		LocationSummary:    normalizeLocation(raw),
		ArrivalPlanned:     parseBackendTime(raw.ArrivalTimePlanned),
		ArrivalEstimated:   parseBackendTime(raw.ArrivalTimeEstimated),
		DeparturePlanned:   parseBackendTime(raw.DepartureTimePlanned),
		DepartureEstimated: parseBackendTime(raw.DepartureTimeEstimated),
		SequenceIndex:      index,
	}
}

// normalizeCoords keeps only pairs with at least two elements; shorter pairs
// carry no usable point.
func normalizeCoords(raw [][]float64) []Coordinate {
	out := make([]Coordinate, 0, len(raw))
	for _, pair := range raw {
		if len(pair) >= 2 {
			out = append(out, Coordinate{Latitude: pair[0], Longitude: pair[1]})
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeLeg(raw rawLeg) TripLeg {
	leg := TripLeg{
		DurationSeconds: raw.Duration,
		Notices:         normalizeNotices(raw.Infos),
		Path:            normalizeCoords(raw.Coords),
		Properties:      raw.Properties,
	}
	// Walking legs often carry their detail under footPathInfo instead of a
	// properties bag; fall back to it so the detail is not lost.
	if leg.Properties == nil && len(raw.FootPathInfo) > 0 {
		steps := make([]map[string]any, 0, len(raw.FootPathInfo))
		for _, f := range raw.FootPathInfo {
			steps = append(steps, map[string]any{"position": f.Position, "duration": f.Duration})
		}
		leg.Properties = map[string]any{"footPathInfo": steps}
	}
	if raw.Transportation != nil {
		info := normalizeTransport(*raw.Transportation)
		leg.Transportation = &info
		if info.Product != nil {
			leg.Mode = info.Product.Name
		}
	}
	if raw.Origin != nil {
		origin := normalizeLocation(*raw.Origin)
		leg.Origin = &origin
	}
	if raw.Destination != nil {
		destination := normalizeLocation(*raw.Destination)
		leg.Destination = &destination
	}
	for i, stop := range raw.StopSequence {
		leg.Stops = append(leg.Stops, normalizeLegStop(stop, i))
	}
	for _, step := range raw.PathDescs {
		leg.Steps = append(leg.Steps, normalizeStep(step))
	}
	return leg
}

// legDeparture returns the best-known departure of a leg, preferring the
// estimated time over the planned one.
func legDeparture(raw rawLeg) *time.Time {
	if raw.Origin == nil {
		return nil
	}
	if t := parseBackendTime(raw.Origin.DepartureTimeEstimated); t != nil {
		return t
	}
	return parseBackendTime(raw.Origin.DepartureTimePlanned)
}

// legArrival returns the best-known arrival of a leg, same preference order.
func legArrival(raw rawLeg) *time.Time {
	if raw.Destination == nil {
		return nil
	}
	if t := parseBackendTime(raw.Destination.ArrivalTimeEstimated); t != nil {
		return t
	}
	return parseBackendTime(raw.Destination.ArrivalTimePlanned)
}

// normalizeJourney derives start, end and duration instead of copying them:
// start is the first leg's best-known departure, end the last leg's
// best-known arrival.
func normalizeJourney(raw rawJourney) TripJourney {
	journey := TripJourney{
		Rating:        raw.Rating,
		IsAdditional:  bool(raw.IsAdditional),
		Interchanges:  raw.Interchanges,
		DaysOfService: raw.DaysOfService,
		Legs:          make([]TripLeg, 0, len(raw.Legs)),
	}
	for _, leg := range raw.Legs {
		journey.Legs = append(journey.Legs, normalizeLeg(leg))
	}
	if len(raw.Legs) > 0 {
		journey.StartTime = legDeparture(raw.Legs[0])
		journey.EndTime = legArrival(raw.Legs[len(raw.Legs)-1])
	}
	if journey.StartTime != nil && journey.EndTime != nil {
		seconds := int64(journey.EndTime.Sub(*journey.StartTime).Seconds())
		journey.DurationSeconds = &seconds
	}
	if raw.Fare != nil {
		for _, ticket := range raw.Fare.Tickets {
			journey.Fares = append(journey.Fares, FareOption{
				ID:             ticket.ID,
				Name:           ticket.Name,
				Price:          ticket.PriceBrutto,
				Currency:       ticket.Currency,
				Person:         ticket.Person,
				TravellerClass: ticket.TravellerClass,
				TimeValidity:   ticket.TimeValidity,
				ValidMinutes:   ticket.ValidMinutes,
				FromLeg:        ticket.FromLeg,
				ToLeg:          ticket.ToLeg,
				Properties:     ticket.Properties,
			})
		}
	}
	return journey
}

// headlineStop picks the board's stop summary from the payload's first
// location entry, falling back to a summary carrying only the requested stop
// id so the result stays structurally complete on degenerate payloads.
func headlineStop(locations []rawLocation, stopID string) LocationSummary {
	if len(locations) > 0 {
		return normalizeLocation(locations[0])
	}
	return LocationSummary{StopID: stopID}
}
