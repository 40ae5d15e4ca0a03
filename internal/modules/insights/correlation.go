package insights

import (
	"context"
	"math"
	"sort"
	"strings"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/analyzer"
	"github.com/navneetha-rajan/mindmate/internal/modules/heuristics"
)

const dayLayout = "2006-01-02"

type HabitCorrelation struct {
	Habit       string  `json:"habit"`
	Correlation float64 `json:"correlation"`
	Impact      string  `json:"impact"`
	Aligned     bool    `json:"aligned"`
	AlignedDays int     `json:"aligned_days"`
	Occurrences int     `json:"occurrences"`
}

type HabitCorrelations struct {
	Correlations    []HabitCorrelation `json:"correlations"`
	PositiveHabits  []string           `json:"positive_habits"`
	NegativeHabits  []string           `json:"negative_habits"`
	Insights        []string           `json:"insights"`
	Recommendations []string           `json:"recommendations"`
	Message         string             `json:"message,omitempty"`
}

// HabitCorrelations correlates each habit with mood over days present in both
// series: habit values summed per UTC day, mood scores averaged per UTC day.
func (a *Agent) HabitCorrelations(ctx context.Context, moods []*types.MoodEntry, habits []*types.HabitEntry) HabitCorrelations {
	out := HabitCorrelations{
		Correlations:    []HabitCorrelation{},
		PositiveHabits:  []string{},
		NegativeHabits:  []string{},
		Insights:        []string{},
		Recommendations: []string{},
	}
	if len(moods) == 0 || len(habits) == 0 {
		out.Message = InsufficientMessage
		return out
	}

	moodByDay := dailyMoodMeans(moods)
	var order []string
	byHabit := map[string][]*types.HabitEntry{}
	for _, h := range habits {
		name := strings.TrimSpace(h.HabitName)
		if name == "" {
			continue
		}
		if _, ok := byHabit[name]; !ok {
			order = append(order, name)
		}
		byHabit[name] = append(byHabit[name], h)
	}

	signals := make([]analyzer.HabitSignal, 0, len(order))
	for _, name := range order {
		entries := byHabit[name]
		if len(entries) < correlationMinSamples {
			continue
		}
		c := correlate(name, entries, moodByDay)
		out.Correlations = append(out.Correlations, c)
		switch c.Impact {
		case heuristics.ImpactPositive:
			out.PositiveHabits = append(out.PositiveHabits, name)
		case heuristics.ImpactNegative:
			out.NegativeHabits = append(out.NegativeHabits, name)
		}
		signals = append(signals, analyzer.HabitSignal{Habit: name, Correlation: c.Correlation, Impact: c.Impact, Aligned: c.Aligned})
	}

	n := a.analyzer.HabitNarrative(ctx, analyzer.HabitFacts{Signals: signals})
	out.Insights, out.Recommendations = nonNil(n.Insights), nonNil(n.Recommendations)
	return out
}

func dailyMoodMeans(moods []*types.MoodEntry) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, m := range moods {
		day := m.CreatedAt.UTC().Format(dayLayout)
		sums[day] += m.MoodScore
		counts[day]++
	}
	out := make(map[string]float64, len(sums))
	for day, s := range sums {
		out[day] = s / float64(counts[day])
	}
	return out
}

func correlate(name string, entries []*types.HabitEntry, moodByDay map[string]float64) HabitCorrelation {
	daily := map[string]float64{}
	for _, h := range entries {
		daily[h.CreatedAt.UTC().Format(dayLayout)] += h.Value
	}
	days := make([]string, 0, len(daily))
	for day := range daily {
		if _, ok := moodByDay[day]; ok {
			days = append(days, day)
		}
	}
	sort.Strings(days)

	c := HabitCorrelation{
		Habit:       name,
		Impact:      heuristics.ImpactNeutral,
		AlignedDays: len(days),
		Occurrences: len(entries),
	}
	if len(days) < correlationMinSamples {
		return c
	}
	xs := make([]float64, len(days))
	ys := make([]float64, len(days))
	for i, day := range days {
		xs[i] = daily[day]
		ys[i] = moodByDay[day]
	}
	r, ok := heuristics.Pearson(xs, ys)
	if !ok {
		return c
	}
	c.Correlation = math.Round(r*1000) / 1000
	c.Aligned = true
	c.Impact = heuristics.CorrelationImpact(r)
	return c
}
