package testutil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}

	clock := NewStepClock(now, time.Second)
	first, second := clock.Now(), clock.Now()
	if second.Sub(first) != time.Second {
		t.Fatalf("expected step of 1s, got %s", second.Sub(first))
	}
}

func TestFixturesHelper(t *testing.T) {
	g := SampleGame("id-1", jurisdiction.NY, 1.5)
	if g.ID != "id-1" || g.State != jurisdiction.NY || len(g.Results) == 0 {
		t.Fatalf("unexpected game fixture %+v", g)
	}

	list := SampleGames(jurisdiction.FL, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)
	if len(list) != 11 || list[0].ID != "g0" || list[10].ID != "g10" {
		t.Fatalf("unexpected ids %s .. %s", list[0].ID, list[len(list)-1].ID)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}
}

func TestRoundTripperFuncAndTextResponse(t *testing.T) {
	client := &http.Client{Transport: RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		return TextResponse(http.StatusTeapot, "short"), nil
	})}

	resp, err := client.Get("http://example.com")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusTeapot || string(body) != "short" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}
}

func TestProviders(t *testing.T) {
	good := GoodProvider{Games: map[jurisdiction.Code][]games.Game{jurisdiction.NY: SampleGames(jurisdiction.NY, 1)}}
	list, err := good.FetchRanking(context.Background(), jurisdiction.NY, 100, 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected good provider result %v %v", list, err)
	}

	boom := errors.New("boom")
	if _, err := (ErrProvider{Err: boom}).FetchRanking(context.Background(), jurisdiction.NY, 100, 0); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	gate := make(chan struct{})
	gated := &GatedProvider{
		Games: map[jurisdiction.Code][]games.Game{jurisdiction.FL: SampleGames(jurisdiction.FL, 2)},
		Gates: map[jurisdiction.Code]chan struct{}{jurisdiction.FL: gate},
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = gated.FetchRanking(context.Background(), jurisdiction.FL, 100, 0)
	}()
	select {
	case <-done:
		t.Fatal("expected gated fetch to block")
	case <-time.After(20 * time.Millisecond):
	}
	close(gate)
	<-done
	if calls := gated.Calls(); len(calls) != 1 || calls[0].Limit != 100 {
		t.Fatalf("unexpected calls %+v", calls)
	}
}
