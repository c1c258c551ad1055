package officialapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goalfeed/goal-feed/internal/source/officialapi"
)

func TestFetchScheduleRekeysDayLabels(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/daddyapi.php" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success":true,"data":{
			"Saturday, 31 January 2026":{"Soccer":[
				{"time":"20:00","event":"Arsenal vs Chelsea",
				 "channels":[{"channel_name":"Sky Sports","channel_id":"302"}]}]}}}`))
	}))
	defer srv.Close()

	c := officialapi.New(srv.URL, "k123")
	c.HTTPClient = srv.Client()

	sched := c.FetchSchedule(context.Background())
	if sched == nil {
		t.Fatal("FetchSchedule returned nil")
	}
	events := sched["2026-01-31"]["Soccer"]
	if len(events) != 1 || events[0].Title != "Arsenal vs Chelsea" {
		t.Fatalf("day label not re-keyed to ISO: %+v", sched)
	}
	if events[0].Channels[0].ID != "302" {
		t.Errorf("channel = %+v", events[0].Channels)
	}
	if gotQuery != "endpoint=schedule&key=k123" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestFetchScheduleDisabledWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent despite missing key")
	}))
	defer srv.Close()

	c := officialapi.New(srv.URL, "")
	c.HTTPClient = srv.Client()
	if c.Enabled() {
		t.Error("Enabled() with empty key")
	}
	if sched := c.FetchSchedule(context.Background()); sched != nil {
		t.Fatalf("want nil, got %+v", sched)
	}
}

func TestFetchScheduleNilOnFailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	c := officialapi.New(srv.URL, "k")
	c.HTTPClient = srv.Client()
	if sched := c.FetchSchedule(context.Background()); sched != nil {
		t.Fatalf("want nil on success=false, got %+v", sched)
	}
}

func TestChannels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("endpoint") != "channels" {
			t.Errorf("endpoint = %q", r.URL.Query().Get("endpoint"))
		}
		w.Write([]byte(`{"success":true,"data":[
			{"channel_name":"DAZN 1","channel_id":"401","logo_url":"logos/dazn.png"}]}`))
	}))
	defer srv.Close()

	c := officialapi.New(srv.URL, "k")
	c.HTTPClient = srv.Client()

	channels, err := c.Channels(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(channels) != 1 || channels[0].ID != "401" {
		t.Fatalf("channels = %+v", channels)
	}
}
