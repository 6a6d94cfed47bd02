package domain

import (
	"sort"
	"strconv"
	"time"
)

// DailyProgressDays bounds the daily progress series.
const DailyProgressDays = 30

const dateLayout = "2006-01-02"

// GroupStat aggregates attempts of a category, a difficulty or a day.
type GroupStat struct {
	Key      string
	Attempts int
	Correct  int
}

// Accuracy is the percentage of correct attempts, 0 when there are none.
func (g GroupStat) Accuracy() float64 {
	return Percentage(g.Correct, g.Attempts)
}

// UserStats is the learning dashboard of one user.
type UserStats struct {
	TotalAttempts  int
	CorrectAnswers int
	Accuracy       float64
	Streak         int
	ByCategory     []GroupStat // sorted by key
	ByDifficulty   []GroupStat // sorted by difficulty
	DailyProgress  []GroupStat // newest first, at most DailyProgressDays entries
}

// Percentage returns part/total*100, or 0 when total is 0.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// ComputeUserStats aggregates attempt facts. now anchors the streak calculation.
func ComputeUserStats(facts []AttemptFact, now time.Time) *UserStats {
	stats := &UserStats{}
	byCategory := map[string]*GroupStat{}
	byDifficulty := map[int]*GroupStat{}
	byDay := map[string]*GroupStat{}

	for _, f := range facts {
		stats.TotalAttempts++
		if f.IsCorrect {
			stats.CorrectAnswers++
		}
		bump(byCategory, f.Category, f.Category, f.IsCorrect)
		bump(byDifficulty, f.Difficulty, strconv.Itoa(f.Difficulty), f.IsCorrect)
		day := f.AttemptedAt.Local().Format(dateLayout)
		bump(byDay, day, day, f.IsCorrect)
	}
	stats.Accuracy = Percentage(stats.CorrectAnswers, stats.TotalAttempts)

	for _, g := range byCategory {
		stats.ByCategory = append(stats.ByCategory, *g)
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool { return stats.ByCategory[i].Key < stats.ByCategory[j].Key })

	difficulties := make([]int, 0, len(byDifficulty))
	for d := range byDifficulty {
		difficulties = append(difficulties, d)
	}
	sort.Ints(difficulties)
	for _, d := range difficulties {
		stats.ByDifficulty = append(stats.ByDifficulty, *byDifficulty[d])
	}

	for _, g := range byDay {
		stats.DailyProgress = append(stats.DailyProgress, *g)
	}
	// YYYY-MM-DD sorts lexically
	sort.Slice(stats.DailyProgress, func(i, j int) bool { return stats.DailyProgress[i].Key > stats.DailyProgress[j].Key })
	stats.Streak = streak(stats.DailyProgress, now)
	if len(stats.DailyProgress) > DailyProgressDays {
		stats.DailyProgress = stats.DailyProgress[:DailyProgressDays]
	}
	return stats
}

func bump[K comparable](groups map[K]*GroupStat, key K, label string, correct bool) {
	g, ok := groups[key]
	if !ok {
		g = &GroupStat{Key: label}
		groups[key] = g
	}
	g.Attempts++
	if correct {
		g.Correct++
	}
}

// streak counts consecutive active days ending today, or yesterday when nothing was answered today yet.
// days must be sorted newest first.
func streak(days []GroupStat, now time.Time) int {
	if len(days) == 0 {
		return 0
	}
	today := now.Local()
	expected := today.Format(dateLayout)
	if days[0].Key != expected {
		expected = today.AddDate(0, 0, -1).Format(dateLayout)
		if days[0].Key != expected {
			return 0
		}
	}

	count := 0
	cursor, _ := time.ParseInLocation(dateLayout, expected, time.Local)
	for _, d := range days {
		if d.Key != cursor.Format(dateLayout) {
			break
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return count
}
