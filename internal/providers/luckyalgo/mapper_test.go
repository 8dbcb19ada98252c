package luckyalgo

import (
	"encoding/json"
	"testing"

	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
)

func TestMapGameFallsBackToRequestedState(t *testing.T) {
	game := mapGame(gameResponse{ID: "x", Name: "No State"}, jurisdiction.NY)
	if game.State != jurisdiction.NY {
		t.Fatalf("expected requested state, got %s", game.State)
	}

	game = mapGame(gameResponse{ID: "y", State: "fl"}, jurisdiction.NY)
	if game.State != jurisdiction.FL {
		t.Fatalf("expected upstream state normalized to FL, got %s", game.State)
	}
}

func TestMapGameKeepsPrizeTierOrder(t *testing.T) {
	resp := gameResponse{
		ID: "z",
		GameResults: []resultResponse{
			{PrizeAmount: 100},
			{PrizeAmount: 1000000},
			{PrizeAmount: 5},
		},
	}
	game := mapGame(resp, jurisdiction.NY)
	want := []float64{100, 1000000, 5}
	for i, r := range game.Results {
		if r.PrizeAmount != want[i] {
			t.Fatalf("tier %d: expected %v, got %v", i, want[i], r.PrizeAmount)
		}
	}
}

func TestFlexStringAcceptsStringNumberAndNull(t *testing.T) {
	var v struct {
		A flexString `json:"a"`
		B flexString `json:"b"`
		C flexString `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"12.5","b":42.75,"c":null}`), &v); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if v.A != "12.5" || v.B != "42.75" || v.C != "" {
		t.Fatalf("unexpected values %+v", v)
	}

	if err := json.Unmarshal([]byte(`{"a":true}`), &v); err == nil {
		t.Fatal("expected bool to be rejected")
	}
}
