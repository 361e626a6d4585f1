package externalapis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/internal/testutil"
)

func TestFetchSnapshots(t *testing.T) {
	var (
		mx      sync.Mutex
		queries []string
		paths   []string
		tokens  []string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mx.Lock()
		queries = append(queries, r.URL.Query().Get("user_ids"))
		paths = append(paths, r.URL.Path)
		tokens = append(tokens, r.URL.Query().Get("access_token"))
		mx.Unlock()

		_, _ = w.Write([]byte(`{"response":[
			{"id":1,"first_name":"A","last_name":"B","online":1,"last_seen":{"time":100,"platform":4}},
			{"id":2,"online":0,"last_seen":{"time":90,"platform":7}},
			{"id":3,"online":0,"deactivated":"banned"}
		]}`))
	}))
	defer srv.Close()

	c := NewPresenceClient(PresenceOptions{
		BaseURL:     srv.URL,
		AccessToken: "secret",
		Version:     "5.131",
		BatchSize:   2,
	})

	snapshots, err := c.FetchSnapshots(context.Background(), []int64{1, 2, 3})
	testutil.IsNil(t, err, "fetch")

	// two chunks, three users each from the canned response
	testutil.Assert(t, 6, len(snapshots), "snapshot count")
	testutil.Assert(t, 2, len(queries), "chunked requests")
	testutil.Assert(t, "1,2", queries[0], "first chunk")
	testutil.Assert(t, "3", queries[1], "second chunk")
	testutil.Assert(t, "/users.get", paths[0], "path")
	testutil.Assert(t, "secret", tokens[0], "token")

	testutil.Assert(t, true, snapshots[0].Online, "online")
	testutil.Assert(t, model.PlatformAndroid, snapshots[0].Platform, "platform")
	testutil.Assert(t, int64(100), *snapshots[0].LastSeen, "last seen")
	testutil.Assert(t, false, snapshots[1].Online, "offline")
	testutil.Assert(t, false, snapshots[2].Observable(), "deactivated account is unobservable")
}

func TestFetchSnapshotsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"error_code":6,"error_msg":"Too many requests per second"}}`))
	}))
	defer srv.Close()

	c := NewPresenceClient(PresenceOptions{BaseURL: srv.URL})

	_, err := c.FetchSnapshots(context.Background(), []int64{1})
	testutil.Assert(t, true, errors.Compare(err, model.ErrUpstreamUnavailable()), "upstream error")
}

func TestFetchSnapshotsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	c := NewPresenceClient(PresenceOptions{BaseURL: srv.URL + "/"})

	_, err := c.FetchSnapshots(context.Background(), []int64{1})
	testutil.IsNotNil(t, err, "error")
	testutil.Assert(t, true, strings.Contains(err.Error(), "Presence Source Unavailable"), "wrapped as upstream unavailable")
}
