package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"nexttrain/internal/departures"
	"nexttrain/internal/feed"
	"nexttrain/internal/metrics"
)

type stubFeed struct {
	msg       *gtfs.FeedMessage
	fetchedAt time.Time
	err       error
}

func (s *stubFeed) Get(ctx context.Context) (*gtfs.FeedMessage, time.Time, error) {
	return s.msg, s.fetchedAt, s.err
}

func testMux(t *testing.T, src FeedSource) *http.ServeMux {
	t.Helper()
	modes, err := departures.NewModes(departures.DefaultModes())
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(src, modes, metrics.NewCollector(), logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/departures/{mode}", h.Departures)
	mux.HandleFunc("GET /healthz", h.Health)
	return mux
}

func cityboundFeed(now time.Time, n int) *gtfs.FeedMessage {
	var entities []*gtfs.FeedEntity
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		entities = append(entities, &gtfs.FeedEntity{
			Id: proto.String(id),
			TripUpdate: &gtfs.TripUpdate{
				Trip: &gtfs.TripDescriptor{
					TripId:      proto.String("trip-" + id),
					RouteId:     proto.String("SPRP-1000"),
					DirectionId: proto.Uint32(0),
				},
				StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{{
					StopId: proto.String("600822"),
					Departure: &gtfs.TripUpdate_StopTimeEvent{
						Time: proto.Int64(now.Add(time.Duration(i+1) * 5 * time.Minute).Unix()),
					},
				}},
			},
		})
	}
	return &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: entities,
	}
}

func TestDepartures_OK(t *testing.T) {
	now := time.Now()
	src := &stubFeed{msg: cityboundFeed(now, 2), fetchedAt: now}
	mux := testMux(t, src)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/departures/city", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Mode       string `json:"mode"`
		Departures []struct {
			Line     string `json:"line"`
			Minutes  int    `json:"minutes"`
			Platform string `json:"platform"`
		} `json:"departures"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Mode != "city" {
		t.Errorf("mode = %q, want city", resp.Mode)
	}
	if len(resp.Departures) != 2 {
		t.Fatalf("got %d departures, want 2", len(resp.Departures))
	}
	if resp.Departures[0].Line != "Springfield" {
		t.Errorf("line = %q, want Springfield", resp.Departures[0].Line)
	}
	if resp.Departures[0].Minutes != 5 {
		t.Errorf("minutes = %d, want 5", resp.Departures[0].Minutes)
	}
	if resp.Departures[0].Platform != "Platform 1" {
		t.Errorf("platform = %q, want 'Platform 1'", resp.Departures[0].Platform)
	}
}

func TestDepartures_EmptyIsSuccess(t *testing.T) {
	now := time.Now()
	src := &stubFeed{msg: cityboundFeed(now, 0), fetchedAt: now}
	mux := testMux(t, src)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/departures/city", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for zero departures", rec.Code)
	}
	var resp struct {
		Departures []json.RawMessage `json:"departures"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Departures == nil {
		t.Error("departures should encode as [], not null")
	}
}

func TestDepartures_UnknownMode(t *testing.T) {
	src := &stubFeed{msg: cityboundFeed(time.Now(), 1), fetchedAt: time.Now()}
	mux := testMux(t, src)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/departures/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDepartures_UpstreamFailure(t *testing.T) {
	src := &stubFeed{err: &feed.UpstreamError{Status: 503}}
	mux := testMux(t, src)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/departures/city", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestDepartures_DecodeFailure(t *testing.T) {
	src := &stubFeed{err: &feed.DecodeError{Err: errors.New("bad payload")}}
	mux := testMux(t, src)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/departures/city", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestDepartures_LimitParam(t *testing.T) {
	now := time.Now()
	src := &stubFeed{msg: cityboundFeed(now, 6), fetchedAt: now}
	mux := testMux(t, src)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/departures/city?limit=3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Departures []json.RawMessage `json:"departures"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Departures) != 3 {
		t.Errorf("got %d departures, want 3", len(resp.Departures))
	}
}

func TestDepartures_BadLimit(t *testing.T) {
	src := &stubFeed{msg: cityboundFeed(time.Now(), 1), fetchedAt: time.Now()}
	mux := testMux(t, src)

	for _, limit := range []string{"0", "-1", "21", "abc"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/departures/city?limit="+limit, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d, want 400", limit, rec.Code)
		}
	}
}

func TestHealth(t *testing.T) {
	mux := testMux(t, &stubFeed{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
