package games

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestGameJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}

	gameType := reflect.TypeOf(Game{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"State", "state"},
		{"Number", "number"},
		{"Results", "gameResults"},
		{"Image", "gameImage"},
		{"LuckyScore", "luckyAlgoScore"},
		{"Rate", "rate"},
		{"OverallOdds", "overallOdds"},
	}

	for _, f := range fields {
		field, ok := gameType.FieldByName(f.name)
		if !ok {
			t.Fatalf("missing field %s", f.name)
		}
		if got := field.Tag.Get("json"); got != f.tag {
			t.Fatalf("field %s expected tag %q got %q", f.name, f.tag, got)
		}
	}
}

func TestResultsKeepOrderThroughJSON(t *testing.T) {
	in := Game{
		ID: "g1",
		Results: []Result{
			{PrizeAmount: 1000, PrizeRemainingPercent: "50"},
			{PrizeAmount: 5, PrizeRemainingPercent: "90"},
			{PrizeAmount: 100, PrizeRemainingPercent: "10"},
		},
	}
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Game
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in.Results, out.Results) {
		t.Fatalf("expected prize tiers in original order, got %+v", out.Results)
	}
}

func TestFindByID(t *testing.T) {
	list := []Game{{ID: "a"}, {ID: "b"}}

	got, ok := FindByID(list, "b")
	if !ok || got.ID != "b" {
		t.Fatalf("expected to find b, got %+v (%v)", got, ok)
	}
	if _, ok := FindByID(list, "zzz"); ok {
		t.Fatal("expected missing id not to be found")
	}
}
