package score

import "fmt"

// needPerRound is the point quota that unlocks the next play cycle.
const needPerRound = 3340

// Result is the computed report for one screenshot. Derived, never stored.
type Result struct {
	Materials Materials
	Baseline  int
	Adjusted  int
	Total     int
	Rounds    int
	Shortfall int
}

// Adjust converts the carried-in baseline score into the point threshold for
// the currently indicated round. Bands are inclusive on their low end and
// checked from the highest baseline down; integer floor division throughout.
// Boundary values (6000/4000/2000/1000) must hit the higher band.
func Adjust(baseline int) int {
	switch {
	case baseline >= 6000:
		return 860 - (baseline-6000)/25*12
	case baseline >= 4000:
		return 1720 - (baseline-4000)/25*12
	case baseline >= 2000:
		return 2580 - (baseline-2000)/25*12
	case baseline >= 1000:
		return 480 - (baseline-1000)/25*12 + 2580
	default:
		return 3440
	}
}

// Compute applies the box weights and round math to the parsed counts.
func Compute(m Materials, baseline int) Result {
	total := m.Wooden + m.Silver*10 + m.Gold*20 + m.Platinum*50
	adjusted := Adjust(baseline)

	r := Result{Materials: m, Baseline: baseline, Adjusted: adjusted, Total: total}
	if total >= adjusted {
		remaining := total - adjusted
		r.Rounds = 1 + remaining/needPerRound
		r.Shortfall = needPerRound - remaining%needPerRound
	} else {
		r.Rounds = 0
		r.Shortfall = adjusted - total
	}
	return r
}

// RecommendedAttempts is the stage-run count suggested to close the
// shortfall, true division at one decimal of precision.
func (r Result) RecommendedAttempts() float64 {
	return float64(r.Shortfall) / 2.5
}

// Report renders the fixed-order user-facing result message.
func (r Result) Report() string {
	return fmt.Sprintf(
		"📦 木头箱: %d\n"+
			"🥈 白银箱: %d\n"+
			"🥇 黄金箱: %d\n"+
			"💎 铂金箱: %d\n"+
			"🔄 可完成轮数: %d\n"+
			"🎯 当前积分: %d\n"+
			"🚧 下一轮还需: %d\n"+
			"⚔ 推荐闯关数: %.1f",
		r.Materials.Wooden, r.Materials.Silver, r.Materials.Gold, r.Materials.Platinum,
		r.Rounds, r.Total, r.Shortfall, r.RecommendedAttempts())
}
