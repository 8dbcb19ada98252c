package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
	"github.com/preston-bernstein/scratchers-service/internal/testutil"
)

func benchHandler() *Handler {
	scores := make([]float64, 100)
	for i := range scores {
		scores[i] = float64(i%17) - 8
	}
	return newTestHandler(testutil.GoodProvider{Games: map[jurisdiction.Code][]games.Game{
		jurisdiction.NY: testutil.SampleGames(jurisdiction.NY, scores...),
	}}, nil)
}

func BenchmarkGames(b *testing.B) {
	h := benchHandler()
	req := httptest.NewRequest(http.MethodGet, "/games?state=NY", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		h.Games(rr, req)
	}
}

func BenchmarkGameDetail(b *testing.B) {
	h := benchHandler()
	req := httptest.NewRequest(http.MethodGet, "/games/g42?state=NY", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		h.GameRoutes(rr, req)
	}
}
