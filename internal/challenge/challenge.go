// Package challenge scores training history against an exercise's
// configured challenge target (target sets x target value per session).
package challenge

import (
	"sort"
	"strings"
	"time"

	"github.com/meltforce/repshare/internal/models"
)

// Status is the ordinal outcome band of a challenge evaluation.
type Status string

const (
	StatusNoRecord    Status = "NoRecord"
	StatusNeedWork    Status = "NeedWork"
	StatusNearlyThere Status = "NearlyThere"
	StatusGood        Status = "Good"
	StatusPerfect     Status = "Perfect"
)

// Level returns the numeric ordinal of the band, 0 (NoRecord) to 4 (Perfect).
func (s Status) Level() int {
	switch s {
	case StatusNeedWork:
		return 1
	case StatusNearlyThere:
		return 2
	case StatusGood:
		return 3
	case StatusPerfect:
		return 4
	default:
		return 0
	}
}

// Result is the outcome of a challenge evaluation.
type Result struct {
	Level            int    `json:"level"`
	Status           Status `json:"status"`
	AchievementRate  int    `json:"achievement_rate"`
	LastAchievedDate string `json:"last_achieved_date,omitempty"`
}

const dateLayout = "2006-01-02"

// ComputeStatus evaluates the exercise's challenge against its training
// history. periodDays > 0 restricts history to the trailing window of that
// many calendar days ending today; 0 or negative means all history.
func ComputeStatus(ex models.ExerciseRow, records []models.TrainingRecordRow, periodDays int) Result {
	return computeStatusAt(ex, records, periodDays, time.Now())
}

// ComputeActualTotal returns the best raw session total (top-N summed
// values, not a percentage) over the filtered history, or 0 when there is
// no qualifying session or no challenge configured.
func ComputeActualTotal(ex models.ExerciseRow, records []models.TrainingRecordRow, periodDays int) int {
	return computeActualTotalAt(ex, records, periodDays, time.Now())
}

func computeStatusAt(ex models.ExerciseRow, records []models.TrainingRecordRow, periodDays int, now time.Time) Result {
	if !ex.HasChallenge() {
		return Result{Status: StatusNoRecord}
	}

	sessions := groupSessions(filterPeriod(records, periodDays, now))
	if len(sessions) == 0 {
		return Result{Status: StatusNoRecord}
	}

	targetSets := *ex.TargetSets
	targetTotal := targetSets * *ex.TargetValue

	// Session keys sort chronologically (ISO date + HH:MM time).
	keys := make([]string, 0, len(sessions))
	for k := range sessions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// A "clear" session meets or beats the target. Among clears the highest
	// rate wins (first chronologically on ties); otherwise the best
	// non-clear session determines the band.
	bestRate := -1
	clearKey, clearRate := "", -1
	for _, k := range keys {
		rate := sessionRate(sessions[k], ex.Laterality, targetSets, targetTotal)
		if rate > bestRate {
			bestRate = rate
		}
		if rate >= 100 && rate > clearRate {
			clearKey, clearRate = k, rate
		}
	}

	if clearRate >= 100 {
		res := Result{
			Status:           StatusPerfect,
			AchievementRate:  clearRate,
			LastAchievedDate: sessionDate(clearKey),
		}
		res.Level = res.Status.Level()
		return res
	}

	status := StatusNeedWork
	switch {
	case bestRate >= 75:
		status = StatusGood
	case bestRate >= 50:
		status = StatusNearlyThere
	}
	return Result{Level: status.Level(), Status: status, AchievementRate: bestRate}
}

func computeActualTotalAt(ex models.ExerciseRow, records []models.TrainingRecordRow, periodDays int, now time.Time) int {
	if !ex.HasChallenge() {
		return 0
	}
	sessions := groupSessions(filterPeriod(records, periodDays, now))

	targetSets := *ex.TargetSets
	best := 0
	for _, recs := range sessions {
		total := topSum(rightValues(recs), targetSets)
		if ex.Laterality == models.LateralityUnilateral {
			total += topSum(leftValues(recs), targetSets)
		}
		if total > best {
			best = total
		}
	}
	return best
}

// filterPeriod keeps records whose date falls inside the trailing window of
// periodDays calendar days ending today. Records with unparseable dates are
// dropped rather than failing the evaluation.
func filterPeriod(records []models.TrainingRecordRow, periodDays int, now time.Time) []models.TrainingRecordRow {
	if periodDays <= 0 {
		return records
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(periodDays - 1))

	var kept []models.TrainingRecordRow
	for _, r := range records {
		d, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			continue
		}
		if d.Before(start) || d.After(today) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// groupSessions buckets records by their "date-time" session key.
func groupSessions(records []models.TrainingRecordRow) map[string][]models.TrainingRecordRow {
	sessions := make(map[string][]models.TrainingRecordRow)
	for _, r := range records {
		key := r.SessionKey()
		sessions[key] = append(sessions[key], r)
	}
	return sessions
}

// sessionRate computes the integer achievement percentage of one session.
// Bilateral: the top targetSets right-side values count against the target
// total. Unilateral: right and left are rated independently and the two
// integer percentages are averaged; this two-step rounding is part of the
// scoring contract and must not be collapsed into a combined-total rate.
func sessionRate(recs []models.TrainingRecordRow, lat models.Laterality, targetSets, targetTotal int) int {
	if targetTotal <= 0 {
		return 0
	}
	rateRight := topSum(rightValues(recs), targetSets) * 100 / targetTotal
	if lat != models.LateralityUnilateral {
		return rateRight
	}
	rateLeft := topSum(leftValues(recs), targetSets) * 100 / targetTotal
	return (rateRight + rateLeft) / 2
}

// sessionDate is the date portion of a session key: the first three
// hyphen-delimited fields (YYYY-MM-DD).
func sessionDate(key string) string {
	parts := strings.SplitN(key, "-", 4)
	if len(parts) < 3 {
		return key
	}
	return strings.Join(parts[:3], "-")
}

// topSum sorts descending and sums the first n values.
func topSum(values []int, n int) int {
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	if len(values) > n {
		values = values[:n]
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum
}

func rightValues(recs []models.TrainingRecordRow) []int {
	values := make([]int, 0, len(recs))
	for _, r := range recs {
		values = append(values, r.ValueRight)
	}
	return values
}

func leftValues(recs []models.TrainingRecordRow) []int {
	var values []int
	for _, r := range recs {
		if r.ValueLeft != nil {
			values = append(values, *r.ValueLeft)
		}
	}
	return values
}
