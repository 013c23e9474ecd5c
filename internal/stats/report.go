package stats

import (
	"context"

	"github.com/verte-zerg/mohall/internal/model"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Games     []model.GameEntry `json:"games" yaml:"games"`
	Summary   Summary           `json:"summary" yaml:"summary"`
	SwapTrend []float64         `json:"-" yaml:"-"`
	StayTrend []float64         `json:"-" yaml:"-"`
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st GameStore, cfg model.StatsConfig) (Report, error) {
	games, err := st.ListGames(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Games:     games,
		Summary:   Summarize(games),
		SwapTrend: WinTrend(games, true, cfg.CurveWindow),
		StayTrend: WinTrend(games, false, cfg.CurveWindow),
	}, nil
}
