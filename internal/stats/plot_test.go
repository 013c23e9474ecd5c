package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Test Plot", []Series{
		{Name: "Swap", Values: []float64{100, 50, 66, 75, 60}},
		{Name: "Stay", Values: []float64{0, 50, 33, 25, 40}},
	}, 10, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Test Plot", "Swap: last=60.0% min=50.0% max=100.0%", "Stay: last=40.0%", "Legend:", "100% │ "} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	expected := 1 + 2 + 4 + 1
	if len(lines) != expected {
		t.Fatalf("expected %d lines of output, got %d:\n%s", expected, len(lines), out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes for a buffer")
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", []Series{{Name: "Swap"}}, 10, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotUsesFixedPercentAxis(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "", []Series{{Name: "Swap", Values: []float64{100, 100}}}, 10, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	top := lines[1]
	bottom := lines[4]
	blank := string(brailleFromMask(0))
	if strings.Contains(top, blank) {
		t.Fatalf("expected a flat 100%% line on the top row:\n%s", buf.String())
	}
	if !strings.HasSuffix(bottom, strings.Repeat(blank, 10)) {
		t.Fatalf("expected an empty bottom row:\n%s", buf.String())
	}
}

func TestRenderTrendChart(t *testing.T) {
	games := scenarioGames()
	report := Report{
		SwapTrend: WinTrend(games, true, 2),
		StayTrend: WinTrend(games, false, 2),
	}
	var buf bytes.Buffer
	if err := RenderTrendChart(&buf, report, 40, 5, false); err != nil {
		t.Fatalf("RenderTrendChart failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{trendTitle, "Swap: last=0.0%", "Stay: last=50.0%", "Swap (solid)", "Stay (dashed)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
