package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"faithhub.app/configs"
	"faithhub.app/models"
	"faithhub.app/pkg/recurrence"
	"faithhub.app/pkg/timeperiod"
)

// The stats builders are pure functions over a fetched event slice and a
// half-open window. The service fetches rows, the builders do the arithmetic,
// so every formula is testable without a database.

// allDayMinutes is the working-time weight of an all-day event.
const allDayMinutes = 480

func eventMinutes(e *models.CalendarEvent) int {
	if e.IsAllDay {
		return allDayMinutes
	}
	return e.DurationMinutes()
}

// percentChange follows the reporting convention: from zero, any growth is
// 100% and staying at zero is 0%.
func percentChange(previous, current float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return round2((current - previous) / previous * 100)
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int(v*100-0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}

// OverviewStats is the headline block of the statistics dashboard.
type OverviewStats struct {
	TotalEvents        int            `json:"total_events"`
	TotalMinutes       int            `json:"total_minutes"`
	AvgDurationMinutes float64        `json:"avg_duration_minutes"`
	MeetingsCount      int            `json:"meetings_count"`
	AllDayCount        int            `json:"all_day_count"`
	RecurringCount     int            `json:"recurring_count"`
	EventsByType       map[string]int `json:"events_by_type"`
	EventsByStatus     map[string]int `json:"events_by_status"`
}

func buildOverview(events []models.CalendarEvent) OverviewStats {
	stats := OverviewStats{
		EventsByType:   make(map[string]int),
		EventsByStatus: make(map[string]int),
	}
	for i := range events {
		e := &events[i]
		stats.TotalEvents++
		stats.TotalMinutes += eventMinutes(e)
		if e.Type == models.EventTypeMeeting {
			stats.MeetingsCount++
		}
		if e.IsAllDay {
			stats.AllDayCount++
		}
		if e.IsRecurring {
			stats.RecurringCount++
		}
		stats.EventsByType[string(e.Type)]++
		stats.EventsByStatus[string(e.Status)]++
	}
	if stats.TotalEvents > 0 {
		stats.AvgDurationMinutes = round2(float64(stats.TotalMinutes) / float64(stats.TotalEvents))
	}
	return stats
}

// DayActivity is one calendar day's load.
type DayActivity struct {
	Date        string `json:"date"`
	EventsCount int    `json:"events_count"`
	Minutes     int    `json:"minutes"`
}

// BusyDaysStats ranks the busiest days of the window.
type BusyDaysStats struct {
	BusiestDays       []DayActivity `json:"busiest_days"`
	DaysWithEvents    int           `json:"days_with_events"`
	DaysWithoutEvents int           `json:"days_without_events"`
}

// buildBusyDays buckets activity per calendar day. Recurring rows are
// expanded into their concrete occurrences inside the window, so a weekly
// series loads every week it touches, not just the stored start.
func buildBusyDays(events []models.CalendarEvent, start, end time.Time, topN int) BusyDaysStats {
	limits := configs.Calendar().Recurrence
	byDay := make(map[string]*DayActivity)
	record := func(at time.Time, minutes int) {
		key := at.Format("2006-01-02")
		day, ok := byDay[key]
		if !ok {
			day = &DayActivity{Date: key}
			byDay[key] = day
		}
		day.EventsCount++
		day.Minutes += minutes
	}
	for i := range events {
		e := &events[i]
		if e.IsRecurring {
			occurrences, err := recurrence.Expand(e, start, end, limits.MaxOccurrences, limits.MaxYears)
			if err == nil {
				for _, at := range occurrences {
					record(at, eventMinutes(e))
				}
				continue
			}
		}
		record(e.StartTime, eventMinutes(e))
	}

	days := make([]DayActivity, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].EventsCount != days[j].EventsCount {
			return days[i].EventsCount > days[j].EventsCount
		}
		return days[i].Date < days[j].Date
	})
	if topN > 0 && len(days) > topN {
		days = days[:topN]
	}

	windowDays := timeperiod.Days(start, end)
	return BusyDaysStats{
		BusiestDays:       days,
		DaysWithEvents:    len(byDay),
		DaysWithoutEvents: windowDays - len(byDay),
	}
}

// TypeSlice is one event type's share of the window.
type TypeSlice struct {
	Type    string  `json:"type"`
	Count   int     `json:"count"`
	Minutes int     `json:"minutes"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

func buildTypeDistribution(events []models.CalendarEvent) []TypeSlice {
	cfg := configs.Calendar()
	byType := make(map[string]*TypeSlice)
	for i := range events {
		e := &events[i]
		key := string(e.Type)
		slice, ok := byType[key]
		if !ok {
			color := cfg.DefaultTypeColor
			if c, found := cfg.TypeColors[key]; found {
				color = c
			}
			slice = &TypeSlice{Type: key, Color: color}
			byType[key] = slice
		}
		slice.Count++
		slice.Minutes += eventMinutes(e)
	}

	out := make([]TypeSlice, 0, len(byType))
	for _, s := range byType {
		if len(events) > 0 {
			s.Percent = round2(float64(s.Count) / float64(len(events)) * 100)
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// PlatformUsage is one meeting platform's share of the online meetings.
type PlatformUsage struct {
	Platform string  `json:"platform"`
	Label    string  `json:"label"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

func buildPlatformUsage(events []models.CalendarEvent) []PlatformUsage {
	cfg := configs.Calendar()
	counts := make(map[string]int)
	total := 0
	for i := range events {
		e := &events[i]
		if e.MeetingLink == "" && e.MeetingPlatform == "" {
			continue
		}
		platform := e.MeetingPlatform
		if platform == "" {
			platform = "other"
		}
		counts[platform]++
		total++
	}

	out := make([]PlatformUsage, 0, len(counts))
	for platform, count := range counts {
		label := cfg.MeetingPlatforms[platform]
		if label == "" {
			label = platform
		}
		usage := PlatformUsage{Platform: platform, Label: label, Count: count}
		if total > 0 {
			usage.Percent = round2(float64(count) / float64(total) * 100)
		}
		out = append(out, usage)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Platform < out[j].Platform
	})
	return out
}

// durationBuckets are the fixed histogram ranges in minutes.
var durationBuckets = []struct {
	Label string
	Min   int
	Max   int // exclusive, 0 means unbounded
}{
	{"0-15", 0, 15},
	{"15-30", 15, 30},
	{"30-60", 30, 60},
	{"60-120", 60, 120},
	{"120-240", 120, 240},
	{"240+", 240, 0},
}

// DurationStats is the duration histogram plus extremes.
type DurationStats struct {
	Buckets    map[string]int `json:"buckets"`
	MinMinutes int            `json:"min_minutes"`
	MaxMinutes int            `json:"max_minutes"`
	AvgMinutes float64        `json:"avg_minutes"`
}

func buildDurationStats(events []models.CalendarEvent) DurationStats {
	stats := DurationStats{Buckets: make(map[string]int, len(durationBuckets))}
	for _, b := range durationBuckets {
		stats.Buckets[b.Label] = 0
	}
	total := 0
	for i := range events {
		minutes := eventMinutes(&events[i])
		total += minutes
		if i == 0 || minutes < stats.MinMinutes {
			stats.MinMinutes = minutes
		}
		if minutes > stats.MaxMinutes {
			stats.MaxMinutes = minutes
		}
		for _, b := range durationBuckets {
			if minutes >= b.Min && (b.Max == 0 || minutes < b.Max) {
				stats.Buckets[b.Label]++
				break
			}
		}
	}
	if len(events) > 0 {
		stats.AvgMinutes = round2(float64(total) / float64(len(events)))
	}
	return stats
}

// TimePatterns shows when events happen: by hour of day, by weekday and by
// ISO week.
type TimePatterns struct {
	Hourly  map[int]int    `json:"hourly"`
	Daily   map[string]int `json:"daily"`
	Weekly  map[string]int `json:"weekly"`
	PeakDay string         `json:"peak_day"`
}

func buildTimePatterns(events []models.CalendarEvent) TimePatterns {
	patterns := TimePatterns{
		Hourly: make(map[int]int),
		Daily:  make(map[string]int),
		Weekly: make(map[string]int),
	}
	for i := range events {
		e := &events[i]
		patterns.Hourly[e.StartTime.Hour()]++
		patterns.Daily[e.StartTime.Weekday().String()]++
		year, week := e.StartTime.ISOWeek()
		patterns.Weekly[fmt.Sprintf("%d-W%02d", year, week)]++
	}
	peak, peakCount := "", 0
	for day, count := range patterns.Daily {
		if count > peakCount || (count == peakCount && day < peak) {
			peak, peakCount = day, count
		}
	}
	patterns.PeakDay = peak
	return patterns
}

// Insight is one advisory line on the productivity report.
type Insight struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// ProductivityStats weighs meeting load against the window's working time.
type ProductivityStats struct {
	WorkingDays    int       `json:"working_days"`
	CapacityMin    int       `json:"capacity_minutes"`
	BusyMinutes    int       `json:"busy_minutes"`
	MeetingMinutes int       `json:"meeting_minutes"`
	FreeMinutes    int       `json:"free_minutes"`
	MeetingPercent float64   `json:"meeting_percent"`
	Insights       []Insight `json:"insights"`
}

func buildProductivity(events []models.CalendarEvent, start, end time.Time) ProductivityStats {
	stats := ProductivityStats{WorkingDays: timeperiod.WorkingDays(start, end)}
	stats.CapacityMin = stats.WorkingDays * allDayMinutes
	for i := range events {
		e := &events[i]
		minutes := eventMinutes(e)
		stats.BusyMinutes += minutes
		if e.Type == models.EventTypeMeeting {
			stats.MeetingMinutes += minutes
		}
	}
	stats.FreeMinutes = stats.CapacityMin - stats.BusyMinutes
	if stats.BusyMinutes > 0 {
		stats.MeetingPercent = round2(float64(stats.MeetingMinutes) / float64(stats.BusyMinutes) * 100)
	}

	if stats.MeetingPercent > 50 {
		stats.Insights = append(stats.Insights, Insight{
			Level:   "warning",
			Message: "more than half of your scheduled time goes to meetings",
		})
	}
	switch {
	case stats.FreeMinutes < 0:
		stats.Insights = append(stats.Insights, Insight{
			Level:   "critical",
			Message: "your schedule exceeds the working-time capacity of this period",
		})
	case stats.FreeMinutes < 120:
		stats.Insights = append(stats.Insights, Insight{
			Level:   "warning",
			Message: "less than two hours of free working time remain in this period",
		})
	}
	if stats.WorkingDays > 0 && stats.BusyMinutes/stats.WorkingDays > allDayMinutes {
		stats.Insights = append(stats.Insights, Insight{
			Level:   "info",
			Message: "your average scheduled day is longer than eight hours",
		})
	}
	return stats
}

// ComparisonMetric is one metric compared across two periods.
type ComparisonMetric struct {
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	ChangePercent float64 `json:"change_percent"`
	Improved      bool    `json:"improved"`
}

// PeriodComparison compares the current window against the one before it.
// For meetings_count a drop counts as an improvement.
type PeriodComparison struct {
	Metrics map[string]ComparisonMetric `json:"metrics"`
}

func buildPeriodComparison(current, previous []models.CalendarEvent) PeriodComparison {
	cur := buildOverview(current)
	prev := buildOverview(previous)

	metric := func(c, p float64, lowerIsBetter bool) ComparisonMetric {
		change := percentChange(p, c)
		improved := c >= p
		if lowerIsBetter {
			improved = c <= p
		}
		return ComparisonMetric{Current: c, Previous: p, ChangePercent: change, Improved: improved}
	}
	return PeriodComparison{Metrics: map[string]ComparisonMetric{
		"events_count":   metric(float64(cur.TotalEvents), float64(prev.TotalEvents), false),
		"total_minutes":  metric(float64(cur.TotalMinutes), float64(prev.TotalMinutes), false),
		"avg_duration":   metric(cur.AvgDurationMinutes, prev.AvgDurationMinutes, false),
		"meetings_count": metric(float64(cur.MeetingsCount), float64(prev.MeetingsCount), true),
	}}
}

// Collaborator is one user ranked by shared events.
type Collaborator struct {
	UserID       uint   `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	SharedEvents int    `json:"shared_events"`
}

func buildTopCollaborators(events []models.CalendarEvent, ownerID uint, topN int) []Collaborator {
	byUser := make(map[uint]*Collaborator)
	for i := range events {
		for j := range events[i].Subscriptions {
			sub := &events[i].Subscriptions[j]
			if sub.UserID == ownerID || sub.Status != models.SubscriptionAccepted {
				continue
			}
			c, ok := byUser[sub.UserID]
			if !ok {
				c = &Collaborator{UserID: sub.UserID, Name: sub.User.Name, Email: sub.User.Email}
				byUser[sub.UserID] = c
			}
			c.SharedEvents++
		}
	}
	out := make([]Collaborator, 0, len(byUser))
	for _, c := range byUser {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SharedEvents != out[j].SharedEvents {
			return out[i].SharedEvents > out[j].SharedEvents
		}
		return out[i].UserID < out[j].UserID
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// locationCategory maps a free-text location onto a fixed vocabulary.
func locationCategory(location string) string {
	l := strings.ToLower(location)
	switch {
	case l == "":
		return "other"
	case strings.Contains(l, "zoom"), strings.Contains(l, "meet"), strings.Contains(l, "online"),
		strings.Contains(l, "virtual"), strings.Contains(l, "webex"), strings.Contains(l, "teams"):
		return "virtual"
	case strings.Contains(l, "office"), strings.Contains(l, "headquarters"), strings.Contains(l, "hq"):
		return "office"
	case strings.Contains(l, "home"):
		return "home"
	case strings.Contains(l, "cafe"), strings.Contains(l, "coffee"), strings.Contains(l, "restaurant"):
		return "cafe"
	case strings.Contains(l, "church"), strings.Contains(l, "chapel"), strings.Contains(l, "mosque"),
		strings.Contains(l, "temple"), strings.Contains(l, "synagogue"), strings.Contains(l, "parish"):
		return "religious"
	case strings.Contains(l, "park"), strings.Contains(l, "garden"), strings.Contains(l, "outdoor"):
		return "outdoor"
	}
	return "other"
}

// LocationStats groups events by location category and lists the most used
// concrete locations.
type LocationStats struct {
	Categories   map[string]int `json:"categories"`
	TopLocations []struct {
		Location string `json:"location"`
		Count    int    `json:"count"`
	} `json:"top_locations"`
	WithoutLocation int `json:"without_location"`
}

func buildLocationStats(events []models.CalendarEvent, topN int) LocationStats {
	stats := LocationStats{Categories: make(map[string]int)}
	counts := make(map[string]int)
	for i := range events {
		e := &events[i]
		if e.Location == "" {
			stats.WithoutLocation++
			continue
		}
		stats.Categories[locationCategory(e.Location)]++
		counts[e.Location]++
	}
	type lc struct {
		Location string `json:"location"`
		Count    int    `json:"count"`
	}
	locations := make([]lc, 0, len(counts))
	for loc, count := range counts {
		locations = append(locations, lc{loc, count})
	}
	sort.Slice(locations, func(i, j int) bool {
		if locations[i].Count != locations[j].Count {
			return locations[i].Count > locations[j].Count
		}
		return locations[i].Location < locations[j].Location
	})
	if topN > 0 && len(locations) > topN {
		locations = locations[:topN]
	}
	for _, l := range locations {
		stats.TopLocations = append(stats.TopLocations, struct {
			Location string `json:"location"`
			Count    int    `json:"count"`
		}{l.Location, l.Count})
	}
	return stats
}

// eventCreationMinutes is the assumed cost of scheduling one event by hand,
// used to estimate the time a recurring series saves its owner.
const eventCreationMinutes = 5

// RecurringStats summarizes the recurring share of the window: the stored
// rows, the concrete occurrences they produce, and how the series have held
// up since they were created.
type RecurringStats struct {
	RecurringEvents  int            `json:"recurring_events"`
	OneTimeEvents    int            `json:"one_time_events"`
	ByFrequency      map[string]int `json:"by_frequency"`
	ExpectedPerYear  int            `json:"expected_per_year"`
	ChainsInProgress int            `json:"chains_in_progress"`
	TotalOccurrences int            `json:"total_occurrences"`
	AvgOccurrences   float64        `json:"avg_occurrences_per_event"`
	TimeSavedMinutes int            `json:"time_saved_minutes"`
	ConsistencyScore float64        `json:"consistency_score"`
	Recommendations  []string       `json:"recommendations"`
}

func buildRecurringStats(events []models.CalendarEvent, start, end, now time.Time) RecurringStats {
	limits := configs.Calendar().Recurrence
	stats := RecurringStats{ByFrequency: make(map[string]int)}
	chains := make(map[string]bool)
	var weekly, monthly, stale int
	var consistencySum float64
	var consistencyCount int
	for i := range events {
		e := &events[i]
		if !e.IsRecurring {
			stats.OneTimeEvents++
			continue
		}
		stats.RecurringEvents++
		stats.ByFrequency[string(e.Recurrence)]++
		stats.ExpectedPerYear += recurrence.PerYear(e.Recurrence)
		if e.RecurrenceChainID != nil {
			chains[*e.RecurrenceChainID] = true
		}
		stats.TotalOccurrences += recurrence.Count(e, start, end, limits.MaxOccurrences, limits.MaxYears)

		// Lifetime view: what the series has produced since it was created.
		lifetime := recurrence.Count(e, e.CreatedAt, now, limits.MaxOccurrences, limits.MaxYears)
		if lifetime > 1 {
			stats.TimeSavedMinutes += (lifetime - 1) * (eventCreationMinutes + eventMinutes(e))
		}
		ageDays := int(now.Sub(e.CreatedAt).Hours() / 24)
		if expected := recurrence.Expected(e.Recurrence, ageDays); expected > 0 {
			score := float64(lifetime) / float64(expected) * 100
			if score > 100 {
				score = 100
			}
			consistencySum += score
			consistencyCount++
		}
		switch e.Recurrence {
		case models.RecurrenceWeekly:
			weekly++
		case models.RecurrenceMonthly:
			monthly++
		}
		if now.Sub(e.CreatedAt) > 365*24*time.Hour {
			stale++
		}
	}
	stats.ChainsInProgress = len(chains)
	if stats.RecurringEvents > 0 {
		stats.AvgOccurrences = round2(float64(stats.TotalOccurrences) / float64(stats.RecurringEvents))
	}
	if consistencyCount > 0 {
		stats.ConsistencyScore = round2(consistencySum / float64(consistencyCount))
	}
	if weekly > 5 {
		stats.Recommendations = append(stats.Recommendations,
			fmt.Sprintf("you have %d weekly recurring events; consider consolidating some into bi-weekly or monthly", weekly))
	}
	if monthly > 3 {
		stats.Recommendations = append(stats.Recommendations,
			fmt.Sprintf("you have %d monthly recurring events; review whether any can move to a quarterly cadence", monthly))
	}
	if stale > 0 {
		stats.Recommendations = append(stats.Recommendations,
			fmt.Sprintf("%d recurring events are older than a year; review whether they are still relevant", stale))
	}
	if len(stats.Recommendations) == 0 && stats.RecurringEvents > 0 {
		stats.Recommendations = append(stats.Recommendations, "your recurring events look well managed")
	}
	return stats
}

// MediaStats summarizes image attachments.
type MediaStats struct {
	EventsWithImages int     `json:"events_with_images"`
	TotalImages      int     `json:"total_images"`
	PrimarySet       int     `json:"primary_set"`
	TotalBytes       int64   `json:"total_bytes"`
	AvgPerEvent      float64 `json:"avg_per_event"`
}

func buildMediaStats(events []models.CalendarEvent) MediaStats {
	var stats MediaStats
	for i := range events {
		e := &events[i]
		if len(e.Images) == 0 {
			continue
		}
		stats.EventsWithImages++
		stats.TotalImages += len(e.Images)
		for j := range e.Images {
			stats.TotalBytes += e.Images[j].Size
			if e.Images[j].IsPrimary {
				stats.PrimarySet++
			}
		}
	}
	if stats.EventsWithImages > 0 {
		stats.AvgPerEvent = round2(float64(stats.TotalImages) / float64(stats.EventsWithImages))
	}
	return stats
}

// StatusTrend compares one status count against the previous period.
type StatusTrend struct {
	Current       int     `json:"current"`
	Previous      int     `json:"previous"`
	ChangePercent float64 `json:"change_percent"`
	Direction     string  `json:"direction"`
}

// StatusStats counts lifecycle states, their share of the window, and how
// each status moved against the period before it.
type StatusStats struct {
	ByStatus        map[string]int         `json:"by_status"`
	Percentages     map[string]float64     `json:"percentages"`
	CompletionRate  float64                `json:"completion_rate"`
	CancelRate      float64                `json:"cancel_rate"`
	Trends          map[string]StatusTrend `json:"trends"`
	Recommendations []string               `json:"recommendations"`
}

func buildStatusStats(current, previous []models.CalendarEvent) StatusStats {
	stats := StatusStats{
		ByStatus:    make(map[string]int),
		Percentages: make(map[string]float64),
		Trends:      make(map[string]StatusTrend),
	}
	for i := range current {
		stats.ByStatus[string(current[i].Status)]++
	}
	prevCounts := make(map[string]int)
	for i := range previous {
		prevCounts[string(previous[i].Status)]++
	}

	total := len(current)
	if total > 0 {
		for status, count := range stats.ByStatus {
			stats.Percentages[status] = round2(float64(count) / float64(total) * 100)
		}
		stats.CompletionRate = round2(float64(stats.ByStatus[string(models.StatusCompleted)]) / float64(total) * 100)
		stats.CancelRate = round2(float64(stats.ByStatus[string(models.StatusCancelled)]) / float64(total) * 100)
	}

	for status, count := range stats.ByStatus {
		prev := prevCounts[status]
		change := percentChange(float64(prev), float64(count))
		direction := "stable"
		switch {
		case change > 0:
			direction = "up"
		case change < 0:
			direction = "down"
		}
		stats.Trends[status] = StatusTrend{Current: count, Previous: prev, ChangePercent: change, Direction: direction}
	}

	if total > 0 {
		if stats.CompletionRate < 80 {
			stats.Recommendations = append(stats.Recommendations,
				fmt.Sprintf("your completion rate is %.1f%%; aim for at least 80%% by following up on open events", stats.CompletionRate))
		}
		if scheduled := stats.ByStatus[string(models.StatusScheduled)]; scheduled > 20 {
			stats.Recommendations = append(stats.Recommendations,
				fmt.Sprintf("you have %d scheduled events; consider whether some can be combined or delegated", scheduled))
		}
		if cancelled := stats.ByStatus[string(models.StatusCancelled)]; cancelled > 0 {
			stats.Recommendations = append(stats.Recommendations,
				fmt.Sprintf("you cancelled %d events; review the reasons to improve planning", cancelled))
		}
		if len(stats.Recommendations) == 0 {
			stats.Recommendations = append(stats.Recommendations, "your status distribution looks healthy")
		}
	}
	return stats
}

// AttendanceStats summarizes invitation responses across the window.
type AttendanceStats struct {
	Invited        int     `json:"invited"`
	Accepted       int     `json:"accepted"`
	Declined       int     `json:"declined"`
	Pending        int     `json:"pending"`
	AcceptanceRate float64 `json:"acceptance_rate"`
}

func buildAttendanceStats(events []models.CalendarEvent) AttendanceStats {
	var stats AttendanceStats
	for i := range events {
		for j := range events[i].Subscriptions {
			stats.Invited++
			switch events[i].Subscriptions[j].Status {
			case models.SubscriptionAccepted:
				stats.Accepted++
			case models.SubscriptionDeclined:
				stats.Declined++
			default:
				stats.Pending++
			}
		}
	}
	answered := stats.Accepted + stats.Declined
	if answered > 0 {
		stats.AcceptanceRate = round2(float64(stats.Accepted) / float64(answered) * 100)
	}
	return stats
}

// AdminStats is the cross-user dashboard block.
type AdminStats struct {
	TotalEvents   int            `json:"total_events"`
	ActiveUsers   int            `json:"active_users"`
	TotalMinutes  int            `json:"total_minutes"`
	EventsByType  map[string]int `json:"events_by_type"`
	EventsPerUser map[uint]int   `json:"events_per_user"`
}

func buildAdminStats(events []models.CalendarEvent) AdminStats {
	stats := AdminStats{
		EventsByType:  make(map[string]int),
		EventsPerUser: make(map[uint]int),
	}
	for i := range events {
		e := &events[i]
		stats.TotalEvents++
		stats.TotalMinutes += eventMinutes(e)
		stats.EventsByType[string(e.Type)]++
		stats.EventsPerUser[e.UserID]++
	}
	stats.ActiveUsers = len(stats.EventsPerUser)
	return stats
}
