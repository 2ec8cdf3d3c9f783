package mcpserver

import (
	"context"
	"testing"
)

func FuzzHandleTrend(f *testing.F) {
	f.Add("GLUCOSIO", "values")
	f.Add("glucosio", "ma3")
	f.Add("", "delta")
	f.Add("  VITAMINA   D ", "MA")
	f.Add("\x00", "\xff")

	h := testHandlers(writeTestData(f))

	f.Fuzz(func(t *testing.T, param, mode string) {
		_, _, _ = h.handleTrend(context.Background(), nil, TrendInput{Parameter: param, Mode: mode})
	})
}
