// Package milestones evaluates the smoke-free health recovery
// timeline. Milestones are fixed durations measured from the last
// logged puff; evaluation is pure and recomputed on demand.
package milestones

import "time"

// Milestone is one point on the recovery timeline.
type Milestone struct {
	ID       string        `json:"id"`
	After    time.Duration `json:"after"`
	Title    string        `json:"title"`
	Desc     string        `json:"desc"`
	Icon     string        `json:"icon"`
	Achieved bool          `json:"achieved"`
	// Remaining until achievement; zero once achieved.
	Remaining time.Duration `json:"remaining"`
}

// Timeline returns the recovery milestones in chronological order,
// with no achievement state filled in.
func Timeline() []Milestone {
	return []Milestone{
		{ID: "heart_rate", After: 20 * time.Minute, Icon: "❤️",
			Title: "Heart Rate Normalizes",
			Desc:  "Heart rate and blood pressure drop back toward normal"},
		{ID: "co_levels", After: 12 * time.Hour, Icon: "🫁",
			Title: "Carbon Monoxide Clears",
			Desc:  "Carbon monoxide in the blood drops to normal levels"},
		{ID: "nicotine_gone", After: 48 * time.Hour, Icon: "🧹",
			Title: "Nicotine Eliminated",
			Desc:  "Nicotine has fully left the body"},
		{ID: "taste_smell", After: 48 * time.Hour, Icon: "👃",
			Title: "Taste and Smell Return",
			Desc:  "Nerve endings regrow; taste and smell sharpen"},
		{ID: "breathing", After: 3 * 24 * time.Hour, Icon: "🌬️",
			Title: "Breathing Eases",
			Desc:  "Bronchial tubes relax and breathing gets easier"},
		{ID: "circulation", After: 14 * 24 * time.Hour, Icon: "🩸",
			Title: "Circulation Improves",
			Desc:  "Circulation improves and walking gets easier"},
		{ID: "withdrawal_over", After: 30 * 24 * time.Hour, Icon: "😌",
			Title: "Withdrawal Fades",
			Desc:  "Physical withdrawal symptoms have largely passed"},
		{ID: "lung_function", After: 90 * 24 * time.Hour, Icon: "📈",
			Title: "Lung Function +10%",
			Desc:  "Lung function has improved by up to 10%"},
		{ID: "lungs_healed", After: 270 * 24 * time.Hour, Icon: "✅",
			Title: "Lungs Largely Healed",
			Desc:  "Cilia regrown; coughing and shortness of breath way down"},
		{ID: "heart_risk", After: 365 * 24 * time.Hour, Icon: "🎉",
			Title: "Heart Risk Halved",
			Desc:  "Risk of coronary heart disease is half that of a smoker"},
	}
}

// Evaluate stamps the timeline with achievement state for the given
// smoke-free duration. A negative duration means no smoke-free run at
// all: nothing is achieved and Remaining counts from zero.
func Evaluate(smokeFreeFor time.Duration) []Milestone {
	if smokeFreeFor < 0 {
		smokeFreeFor = 0
	}
	out := Timeline()
	for i := range out {
		if smokeFreeFor >= out[i].After {
			out[i].Achieved = true
		} else {
			out[i].Remaining = out[i].After - smokeFreeFor
		}
	}
	return out
}

// AchievedCount returns how many milestones the duration covers.
func AchievedCount(smokeFreeFor time.Duration) int {
	n := 0
	for _, m := range Evaluate(smokeFreeFor) {
		if m.Achieved {
			n++
		}
	}
	return n
}
