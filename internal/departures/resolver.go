package departures

import (
	"errors"
	"math"
	"sort"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// ErrUnknownMode is returned when a query names a mode that isn't configured.
// It is distinct from an empty result, which is a valid answer.
var ErrUnknownMode = errors.New("unknown mode")

// pastGrace tolerates minor clock/feed skew: a train whose departure is less
// than this far in the past still counts as upcoming.
const pastGrace = 60 * time.Second

// Departure is one upcoming train, projected for display.
type Departure struct {
	Line          string    `json:"line"`
	Minutes       int       `json:"minutes"`
	Platform      string    `json:"platform,omitempty"`
	DepartureTime time.Time `json:"departureTime"`
}

// Resolve derives the ranked departure list for one mode from a feed snapshot.
// It is a pure function: no I/O, no mutation of the snapshot or the mode, safe
// to call concurrently. Trips with bad per-stop data are skipped, never fatal.
func Resolve(feed *gtfs.FeedMessage, mode Mode, now time.Time) []Departure {
	limit := mode.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	seen := make(map[string]bool)
	var out []Departure

	for _, entity := range feed.GetEntity() {
		tu := entity.GetTripUpdate()
		if tu == nil {
			continue
		}
		trip := tu.GetTrip()

		// First record for a trip wins; trips without an ID never dedup.
		tripID := trip.GetTripId()
		if tripID != "" && seen[tripID] {
			continue
		}

		// A trip whose direction is unknown is never excluded by direction.
		if mode.DirectionID != nil && trip.DirectionId != nil && trip.GetDirectionId() != *mode.DirectionID {
			continue
		}

		stus := tu.GetStopTimeUpdate()
		matched, effective := matchStop(stus, &mode)
		if matched < 0 {
			continue
		}

		// The continuation check deliberately uses the raw scheduled stop
		// IDs, not platform reassignments, mirroring the feed's semantics.
		if len(mode.RequiredStopIDs) > 0 && !continuesTo(stus[matched+1:], &mode) {
			continue
		}

		when, ok := eventTime(stus[matched])
		if !ok || when.Before(now.Add(-pastGrace)) {
			continue
		}

		out = append(out, Departure{
			Line:          LineName(trip.GetRouteId(), mode.UseDestination),
			Minutes:       minutesUntil(when, now),
			Platform:      PlatformName(effective),
			DepartureTime: when,
		})
		if tripID != "" {
			seen[tripID] = true
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DepartureTime.Before(out[j].DepartureTime)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// matchStop finds the first stop-time update calling at one of the mode's
// stops. A realtime platform reassignment takes precedence over the scheduled
// stop ID, but either matching is enough. Returns the matched index and the
// effective (assignment-aware) stop ID, or -1 when the trip never calls there.
func matchStop(stus []*gtfs.TripUpdate_StopTimeUpdate, mode *Mode) (int, string) {
	for i, stu := range stus {
		eff := stu.GetStopId()
		if assigned := stu.GetStopTimeProperties().GetAssignedStopId(); assigned != "" {
			eff = assigned
		}
		if mode.hasStop(stu.GetStopId()) || mode.hasStop(eff) {
			return i, eff
		}
	}
	return -1, ""
}

// continuesTo reports whether any of the remaining stop-time updates calls at
// one of the mode's required downstream stops.
func continuesTo(rest []*gtfs.TripUpdate_StopTimeUpdate, mode *Mode) bool {
	for _, stu := range rest {
		if mode.requiresStop(stu.GetStopId()) {
			return true
		}
	}
	return false
}

// eventTime extracts the realtime estimate for a stop: departure when present,
// else arrival. Updates carrying neither are unusable.
func eventTime(stu *gtfs.TripUpdate_StopTimeUpdate) (time.Time, bool) {
	ev := stu.GetDeparture()
	if ev == nil || ev.Time == nil {
		ev = stu.GetArrival()
	}
	if ev == nil || ev.Time == nil {
		return time.Time{}, false
	}
	return time.Unix(ev.GetTime(), 0), true
}

// minutesUntil rounds the wait to the nearest whole minute.
func minutesUntil(when, now time.Time) int {
	return int(math.Round(float64(when.Unix()-now.Unix()) / 60))
}
