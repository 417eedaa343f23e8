package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"faithhub.app/configs"
	"faithhub.app/models"
	"faithhub.app/pkg/csvexport"
	"faithhub.app/pkg/queryparams"
	"faithhub.app/pkg/recurrence"
	"faithhub.app/pkg/timeperiod"
	"faithhub.app/repositories"
)

// StatsServiceError is the typed error vocabulary of the statistics service.
type StatsServiceError string

func (e StatsServiceError) Error() string { return string(e) }

const (
	ErrStatsInvalidInput StatsServiceError = "invalid statistics query"
	ErrStatsForbidden    StatsServiceError = "you are not allowed to view these statistics"
)

// StatsQuery selects the reporting window: a named period, or explicit dates
// that take precedence over it.
type StatsQuery struct {
	Period    string `query:"period" json:"period"`
	StartDate string `query:"start_date" json:"start_date"`
	EndDate   string `query:"end_date" json:"end_date"`
}

// The custom statistics endpoint accepts only these metrics and groupings.
// Anything else is rejected, never silently ignored.
var (
	customMetrics = map[string]bool{
		"events_count":  true,
		"duration_sum":  true,
		"avg_duration":  true,
		"max_attendees": true,
	}
	customGroupings = map[string]bool{
		"day":      true,
		"week":     true,
		"month":    true,
		"type":     true,
		"status":   true,
		"platform": true,
	}
)

// CustomStatsRequest is the body of the custom statistics endpoint.
type CustomStatsRequest struct {
	Metrics []string `json:"metrics"`
	GroupBy string   `json:"group_by"`
	StatsQuery
}

// CustomStatsRow is one group of a custom aggregation.
type CustomStatsRow struct {
	Group  string             `json:"group"`
	Values map[string]float64 `json:"values"`
}

// StatsDashboard is the full report used by the export endpoint.
type StatsDashboard struct {
	WindowStart  time.Time         `json:"window_start"`
	WindowEnd    time.Time         `json:"window_end"`
	Overview     OverviewStats     `json:"overview"`
	BusyDays     BusyDaysStats     `json:"busy_days"`
	Types        []TypeSlice       `json:"types"`
	Platforms    []PlatformUsage   `json:"platforms"`
	Durations    DurationStats     `json:"durations"`
	TimePatterns TimePatterns      `json:"time_patterns"`
	Productivity ProductivityStats `json:"productivity"`
	Status       StatusStats       `json:"status"`
	Attendance   AttendanceStats   `json:"attendance"`
	Recurring    RecurringStats    `json:"recurring"`
	Media        MediaStats        `json:"media"`
}

// IStatsService computes calendar statistics over the caller's own events.
type IStatsService interface {
	Overview(ctx context.Context, userID uint, q StatsQuery) (*OverviewStats, error)
	BusyDays(ctx context.Context, userID uint, q StatsQuery) (*BusyDaysStats, error)
	TypeDistribution(ctx context.Context, userID uint, q StatsQuery) ([]TypeSlice, error)
	Platforms(ctx context.Context, userID uint, q StatsQuery) ([]PlatformUsage, error)
	Durations(ctx context.Context, userID uint, q StatsQuery) (*DurationStats, error)
	TimePatterns(ctx context.Context, userID uint, q StatsQuery) (*TimePatterns, error)
	Productivity(ctx context.Context, userID uint, q StatsQuery) (*ProductivityStats, error)
	Comparison(ctx context.Context, userID uint, period string) (*PeriodComparison, error)
	TopCollaborators(ctx context.Context, userID uint, q StatsQuery) ([]Collaborator, error)
	Locations(ctx context.Context, userID uint, q StatsQuery) (*LocationStats, error)
	Recurring(ctx context.Context, userID uint, q StatsQuery) (*RecurringStats, error)
	Media(ctx context.Context, userID uint, q StatsQuery) (*MediaStats, error)
	Status(ctx context.Context, userID uint, q StatsQuery) (*StatusStats, error)
	Attendance(ctx context.Context, userID uint, q StatsQuery) (*AttendanceStats, error)
	Upcoming(ctx context.Context, userID uint, limit int) ([]Occurrence, error)
	Admin(ctx context.Context, q StatsQuery) (*AdminStats, error)
	Custom(ctx context.Context, userID uint, req CustomStatsRequest) ([]CustomStatsRow, error)
	Export(ctx context.Context, userID uint, q StatsQuery, format string) ([]byte, string, error)
}

// StatsService implements IStatsService. The clock is injected so windows are
// deterministic under test.
type StatsService struct {
	eventRepo repositories.ICalendarEventRepository
	now       func() time.Time
}

func NewStatsService() IStatsService {
	return &StatsService{
		eventRepo: repositories.NewCalendarEventRepository(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *StatsService) window(q StatsQuery) (time.Time, time.Time, error) {
	start, end, err := timeperiod.Resolve(q.Period, q.StartDate, q.EndDate, s.now())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrStatsInvalidInput, err)
	}
	return start, end, nil
}

func (s *StatsService) fetch(ctx context.Context, userID uint, q StatsQuery) ([]models.CalendarEvent, time.Time, time.Time, error) {
	start, end, err := s.window(q)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	events, err := s.eventRepo.FindOwnedBetween(ctx, userID, start, end)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	return events, start, end, nil
}

// fetchPrevious loads the window of equal length immediately before
// [start, end), for trend comparisons.
func (s *StatsService) fetchPrevious(ctx context.Context, userID uint, start, end time.Time) ([]models.CalendarEvent, error) {
	return s.eventRepo.FindOwnedBetween(ctx, userID, start.Add(-end.Sub(start)), start)
}

func (s *StatsService) Overview(ctx context.Context, userID uint, q StatsQuery) (*OverviewStats, error) {
	events, _, _, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	stats := buildOverview(events)
	return &stats, nil
}

func (s *StatsService) BusyDays(ctx context.Context, userID uint, q StatsQuery) (*BusyDaysStats, error) {
	events, start, end, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	stats := buildBusyDays(events, start, end, 10)
	return &stats, nil
}

func (s *StatsService) TypeDistribution(ctx context.Context, userID uint, q StatsQuery) ([]TypeSlice, error) {
	events, _, _, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	return buildTypeDistribution(events), nil
}

func (s *StatsService) Platforms(ctx context.Context, userID uint, q StatsQuery) ([]PlatformUsage, error) {
	events, _, _, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	return buildPlatformUsage(events), nil
}

func (s *StatsService) Durations(ctx context.Context, userID uint, q StatsQuery) (*DurationStats, error) {
	events, _, _, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	stats := buildDurationStats(events)
	return &stats, nil
}

func (s *StatsService) TimePatterns(ctx context.Context, userID uint, q StatsQuery) (*TimePatterns, error) {
	events, _, _, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	stats := buildTimePatterns(events)
	return &stats, nil
}

func (s *StatsService) Productivity(ctx context.Context, userID uint, q StatsQuery) (*ProductivityStats, error) {
	events, start, end, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	stats := buildProductivity(events, start, end)
	return &stats, nil
}

// Comparison compares the named period against the one immediately before it.
func (s *StatsService) Comparison(ctx context.Context, userID uint, period string) (*PeriodComparison, error) {
	p, err := timeperiod.Parse(period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsInvalidInput, err)
	}
	now := s.now()
	curStart, curEnd := p.Range(now)
	prevStart, prevEnd := p.Previous(now)

	current, err := s.eventRepo.FindOwnedBetween(ctx, userID, curStart, curEnd)
	if err != nil {
		return nil, err
	}
	previous, err := s.eventRepo.FindOwnedBetween(ctx, userID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	comparison := buildPeriodComparison(current, previous)
	return &comparison, nil
}

func (s *StatsService) TopCollaborators(ctx context.Context, userID uint, q StatsQuery) ([]Collaborator, error) {
	events, _, _, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	return buildTopCollaborators(events, userID, 10), nil
}

func (s *StatsService) Locations(ctx context.Context, userID uint, q StatsQuery) (*LocationStats, error) {
	events, _, _, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	stats := buildLocationStats(events, 10)
	return &stats, nil
}

func (s *StatsService) Recurring(ctx context.Context, userID uint, q StatsQuery) (*RecurringStats, error) {
	events, start, end, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	stats := buildRecurringStats(events, start, end, s.now())
	return &stats, nil
}

func (s *StatsService) Media(ctx context.Context, userID uint, q StatsQuery) (*MediaStats, error) {
	events, _, _, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	stats := buildMediaStats(events)
	return &stats, nil
}

func (s *StatsService) Status(ctx context.Context, userID uint, q StatsQuery) (*StatusStats, error) {
	events, start, end, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	previous, err := s.fetchPrevious(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	stats := buildStatusStats(events, previous)
	return &stats, nil
}

func (s *StatsService) Attendance(ctx context.Context, userID uint, q StatsQuery) (*AttendanceStats, error) {
	events, _, _, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	stats := buildAttendanceStats(events)
	return &stats, nil
}

// Upcoming expands the caller's next occurrences over the coming month.
func (s *StatsService) Upcoming(ctx context.Context, userID uint, limit int) ([]Occurrence, error) {
	if limit <= 0 {
		limit = 10
	}
	now := s.now()
	events, err := s.eventRepo.FindVisibleBetween(ctx, userID, now, now.AddDate(0, 1, 0), queryparams.ListParams{})
	if err != nil {
		return nil, err
	}
	limits := configs.Calendar().Recurrence

	var out []Occurrence
	for i := range events {
		event := &events[i]
		starts, err := recurrence.Expand(event, now, now.AddDate(0, 1, 0), limits.MaxOccurrences, limits.MaxYears)
		if err != nil {
			continue
		}
		duration := event.Duration()
		for _, st := range starts {
			out = append(out, Occurrence{Event: event, StartTime: st, EndTime: st.Add(duration)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Admin aggregates across every user; the handler gates it behind the admin
// middleware.
func (s *StatsService) Admin(ctx context.Context, q StatsQuery) (*AdminStats, error) {
	start, end, err := s.window(q)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.FindAllBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	stats := buildAdminStats(events)
	return &stats, nil
}

// Custom runs a caller-defined aggregation over the closed metric and
// grouping vocabularies. Unknown names are rejected.
func (s *StatsService) Custom(ctx context.Context, userID uint, req CustomStatsRequest) ([]CustomStatsRow, error) {
	if len(req.Metrics) == 0 {
		return nil, fmt.Errorf("%w: at least one metric is required", ErrStatsInvalidInput)
	}
	for _, m := range req.Metrics {
		if !customMetrics[m] {
			return nil, fmt.Errorf("%w: unknown metric %q", ErrStatsInvalidInput, m)
		}
	}
	if req.GroupBy == "" {
		req.GroupBy = "day"
	}
	if !customGroupings[req.GroupBy] {
		return nil, fmt.Errorf("%w: unknown group_by %q", ErrStatsInvalidInput, req.GroupBy)
	}

	events, _, _, err := s.fetch(ctx, userID, req.StatsQuery)
	if err != nil {
		return nil, err
	}
	return buildCustomStats(events, req.Metrics, req.GroupBy), nil
}

func customGroupKey(e *models.CalendarEvent, groupBy string) string {
	switch groupBy {
	case "day":
		return e.StartTime.Format("2006-01-02")
	case "week":
		year, week := e.StartTime.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case "month":
		return e.StartTime.Format("2006-01")
	case "type":
		return string(e.Type)
	case "status":
		return string(e.Status)
	case "platform":
		if e.MeetingPlatform == "" {
			return "none"
		}
		return e.MeetingPlatform
	}
	return ""
}

func buildCustomStats(events []models.CalendarEvent, metrics []string, groupBy string) []CustomStatsRow {
	type acc struct {
		count        int
		durationSum  int
		maxAttendees int
	}
	groups := make(map[string]*acc)
	for i := range events {
		e := &events[i]
		key := customGroupKey(e, groupBy)
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
		}
		a.count++
		a.durationSum += eventMinutes(e)
		if n := len(e.Attendees); n > a.maxAttendees {
			a.maxAttendees = n
		}
	}

	rows := make([]CustomStatsRow, 0, len(groups))
	for key, a := range groups {
		values := make(map[string]float64, len(metrics))
		for _, m := range metrics {
			switch m {
			case "events_count":
				values[m] = float64(a.count)
			case "duration_sum":
				values[m] = float64(a.durationSum)
			case "avg_duration":
				if a.count > 0 {
					values[m] = round2(float64(a.durationSum) / float64(a.count))
				}
			case "max_attendees":
				values[m] = float64(a.maxAttendees)
			}
		}
		rows = append(rows, CustomStatsRow{Group: key, Values: values})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Group < rows[j].Group })
	return rows
}

// Export renders the full dashboard as JSON or CSV and returns the payload
// with its content type.
func (s *StatsService) Export(ctx context.Context, userID uint, q StatsQuery, format string) ([]byte, string, error) {
	events, start, end, err := s.fetch(ctx, userID, q)
	if err != nil {
		return nil, "", err
	}
	previous, err := s.fetchPrevious(ctx, userID, start, end)
	if err != nil {
		return nil, "", err
	}
	dashboard := StatsDashboard{
		WindowStart:  start,
		WindowEnd:    end,
		Overview:     buildOverview(events),
		BusyDays:     buildBusyDays(events, start, end, 10),
		Types:        buildTypeDistribution(events),
		Platforms:    buildPlatformUsage(events),
		Durations:    buildDurationStats(events),
		TimePatterns: buildTimePatterns(events),
		Productivity: buildProductivity(events, start, end),
		Status:       buildStatusStats(events, previous),
		Attendance:   buildAttendanceStats(events),
		Recurring:    buildRecurringStats(events, start, end, s.now()),
		Media:        buildMediaStats(events),
	}

	switch format {
	case "", "json":
		body, err := json.MarshalIndent(dashboard, "", "  ")
		if err != nil {
			return nil, "", err
		}
		return body, "application/json", nil
	case "csv":
		records := make([]*csvexport.Record, 0, len(events))
		for i := range events {
			e := &events[i]
			records = append(records, csvexport.NewRecord().
				Set("id", e.ID).
				Set("title", e.Title).
				Set("type", e.Type).
				Set("status", e.Status).
				Set("start_time", e.StartTime.Format(time.RFC3339)).
				Set("end_time", e.EndTime.Format(time.RFC3339)).
				Set("duration_minutes", eventMinutes(e)).
				Set("is_all_day", e.IsAllDay).
				Set("is_recurring", e.IsRecurring).
				Set("location", e.Location))
		}
		var buf bytes.Buffer
		if err := csvexport.Write(&buf, records); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "text/csv", nil
	}
	return nil, "", fmt.Errorf("%w: unknown export format %q", ErrStatsInvalidInput, format)
}

var _ IStatsService = (*StatsService)(nil)
