package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
	"github.com/preston-bernstein/scratchers-service/internal/providers"
	"github.com/preston-bernstein/scratchers-service/internal/testutil"
)

const flMedia = "https://www.flalottery.com/"

func scores(list []games.Game) []float64 {
	out := make([]float64, len(list))
	for i, g := range list {
		out[i] = g.LuckyScore
	}
	return out
}

func ids(list []games.Game) []string {
	out := make([]string, len(list))
	for i, g := range list {
		out[i] = g.ID
	}
	return out
}

func TestFetchGamesSortsByScoreDescending(t *testing.T) {
	provider := testutil.GoodProvider{Games: map[jurisdiction.Code][]games.Game{
		jurisdiction.NY: testutil.SampleGames(jurisdiction.NY, 1.2, -0.3, 5.0),
	}}
	svc := NewService(provider, nil, nil)

	list, err := svc.FetchGames(context.Background(), jurisdiction.NY)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := scores(list)
	want := []float64{5.0, 1.2, -0.3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestFetchGamesSortIsStableForTies(t *testing.T) {
	provider := testutil.GoodProvider{Games: map[jurisdiction.Code][]games.Game{
		jurisdiction.NY: testutil.SampleGames(jurisdiction.NY, 1, 2, 1, 2, 1),
	}}
	svc := NewService(provider, nil, nil)

	list, err := svc.FetchGames(context.Background(), jurisdiction.NY)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"g1", "g3", "g0", "g2", "g4"}
	got := ids(list)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected stable order %v, got %v", want, got)
		}
	}
}

func TestFetchGamesRewritesImagesOnlyForMediaJurisdictions(t *testing.T) {
	fl := testutil.SampleGames(jurisdiction.FL, 1, 2)
	ny := testutil.SampleGames(jurisdiction.NY, 1)
	ny[0].Image = "https://cdn.example.com/ny.png"
	provider := testutil.GoodProvider{Games: map[jurisdiction.Code][]games.Game{
		jurisdiction.FL: fl,
		jurisdiction.NY: ny,
	}}
	svc := NewService(provider, nil, nil)

	flList, err := svc.FetchGames(context.Background(), jurisdiction.FL)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, g := range flList {
		if !strings.HasPrefix(g.Image, flMedia) {
			t.Fatalf("expected FL image under media origin, got %s", g.Image)
		}
	}
	if flList[0].Image != flMedia+"img/g1.png" {
		t.Fatalf("unexpected rewritten image %s", flList[0].Image)
	}

	nyList, err := svc.FetchGames(context.Background(), jurisdiction.NY)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if nyList[0].Image != "https://cdn.example.com/ny.png" {
		t.Fatalf("expected NY image byte-identical, got %s", nyList[0].Image)
	}
}

func TestFetchGamesRequestsFixedPage(t *testing.T) {
	provider := &testutil.GatedProvider{}
	svc := NewService(provider, nil, nil)

	if _, err := svc.FetchGames(context.Background(), jurisdiction.FL); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	calls := provider.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one upstream call, got %d", len(calls))
	}
	if calls[0] != (testutil.Call{Code: jurisdiction.FL, Limit: 100, Offset: 0}) {
		t.Fatalf("unexpected call %+v", calls[0])
	}
}

func TestFetchGamesWrapsFailuresAsFetchError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(testutil.ErrProvider{Err: boom}, nil, nil)

	_, err := svc.FetchGames(context.Background(), jurisdiction.NY)
	fe, ok := providers.AsFetchError(err)
	if !ok {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if fe.Jurisdiction != jurisdiction.NY || !errors.Is(err, boom) {
		t.Fatalf("unexpected fetch error %+v", fe)
	}
	if fe.UserMessage() == "" {
		t.Fatal("expected user-facing message")
	}
}

func TestFetchGamesRejectsUnsupportedJurisdiction(t *testing.T) {
	provider := &testutil.GatedProvider{}
	svc := NewService(provider, nil, nil)

	_, err := svc.FetchGames(context.Background(), "CA")
	if !errors.Is(err, jurisdiction.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if len(provider.Calls()) != 0 {
		t.Fatal("expected no upstream call for unsupported jurisdiction")
	}
}

func TestFetchAllMergesJurisdictions(t *testing.T) {
	provider := testutil.GoodProvider{Games: map[jurisdiction.Code][]games.Game{
		jurisdiction.NY: {testutil.SampleGame("ny-a", jurisdiction.NY, 2), testutil.SampleGame("ny-b", jurisdiction.NY, -1)},
		jurisdiction.FL: {testutil.SampleGame("fl-a", jurisdiction.FL, 3), testutil.SampleGame("fl-b", jurisdiction.FL, 2)},
	}}
	svc := NewService(provider, nil, nil)

	list, err := svc.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"fl-a", "ny-a", "fl-b", "ny-b"}
	got := ids(list)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if !strings.HasPrefix(list[0].Image, flMedia) {
		t.Fatalf("expected FL image rewritten in merged list, got %s", list[0].Image)
	}
}

func TestFetchAllFailsWhenAnyJurisdictionFails(t *testing.T) {
	provider := &testutil.GatedProvider{}
	provider.SetErr(jurisdiction.FL, errors.New("boom"))
	svc := NewService(provider, nil, nil)

	if _, err := svc.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestBuildExternalLink(t *testing.T) {
	svc := NewService(testutil.GoodProvider{}, nil, nil)

	link, err := svc.BuildExternalLink(games.Game{ID: "a", State: jurisdiction.NY, Number: "1611"})
	if err != nil || link != "https://nylottery.ny.gov/scratch-off-game?game=1611" {
		t.Fatalf("unexpected NY link %q (%v)", link, err)
	}

	link, err = svc.BuildExternalLink(games.Game{ID: "b", State: jurisdiction.FL, Number: "1500"})
	if err != nil || link != "https://floridalottery.com/games/scratch-offs/view?id=1500" {
		t.Fatalf("unexpected FL link %q (%v)", link, err)
	}

	if _, err := svc.BuildExternalLink(games.Game{ID: "c", State: "TX", Number: "1"}); !errors.Is(err, jurisdiction.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestSearchPreservesRankingOrder(t *testing.T) {
	list := []games.Game{
		{ID: "1", Name: "Gold Rush Supreme", Number: "1500"},
		{ID: "2", Name: "Bonus Cash", Number: "1512"},
		{ID: "3", Name: "Golden Ticket", Number: "1400"},
	}

	got := ids(Search(list, "gold"))
	if len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Fatalf("unexpected search result %v", got)
	}

	got = ids(Search(list, "151"))
	if len(got) != 1 || got[0] != "2" {
		t.Fatalf("expected number prefix match, got %v", got)
	}

	if len(Search(list, "  ")) != 3 {
		t.Fatal("expected empty query to return everything")
	}
	if len(Search(list, "zzz")) != 0 {
		t.Fatal("expected no matches")
	}
}
