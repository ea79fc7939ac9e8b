package calendar

import (
	"time"

	"go.uber.org/zap"
)

type filterStats struct {
	totalComponents       int
	totalEvents           int
	filteredMissingTime   int
	filteredCancelled     int
	filteredAllDay        int
	filteredOutsideWindow int
	filteredDuplicates    int
	cappedRecurrences     int
}

func (s *filterStats) filtered() int {
	return s.filteredMissingTime + s.filteredCancelled + s.filteredAllDay + s.filteredOutsideWindow + s.filteredDuplicates
}

func (s *filterStats) logSummary(logger *zap.Logger, includedCount int) {
	logger.Info("calendar imported",
		zap.Int("components", s.totalComponents),
		zap.Int("events", s.totalEvents),
		zap.Int("included", includedCount),
		zap.Int("filtered", s.filtered()))
	if s.filtered() > 0 || s.cappedRecurrences > 0 {
		logger.Debug("filtered breakdown",
			zap.Int("cancelled", s.filteredCancelled),
			zap.Int("all_day", s.filteredAllDay),
			zap.Int("outside_window", s.filteredOutsideWindow),
			zap.Int("missing_time", s.filteredMissingTime),
			zap.Int("duplicates", s.filteredDuplicates),
			zap.Int("capped_recurrences", s.cappedRecurrences))
	}
}

// shouldIncludeEvent drops events the timeline cannot show: no times,
// cancelled, all-day or multi-day, or outside [from, to) when a window is set
func shouldIncludeEvent(event vevent, from, to time.Time, stats *filterStats, logger *zap.Logger) bool {
	if event.Start.IsZero() || event.End.IsZero() {
		stats.filteredMissingTime++
		logger.Debug("filtered: missing time", zap.String("title", event.Title))
		return false
	}

	if event.Status == "CANCELLED" {
		stats.filteredCancelled++
		logger.Debug("filtered: cancelled", zap.String("title", event.Title), zap.Time("start", event.Start))
		return false
	}

	if isAllDayEvent(event) {
		stats.filteredAllDay++
		logger.Debug("filtered: all-day", zap.String("title", event.Title),
			zap.Time("start", event.Start), zap.Duration("duration", event.End.Sub(event.Start)))
		return false
	}

	if !to.IsZero() && !(event.Start.Before(to) && event.End.After(from)) {
		stats.filteredOutsideWindow++
		logger.Debug("filtered: outside window", zap.String("title", event.Title),
			zap.Time("start", event.Start), zap.Time("from", from), zap.Time("to", to))
		return false
	}

	return true
}

func isAllDayEvent(event vevent) bool {
	if event.AllDay {
		return true
	}
	startDate := event.Start.Format("2006-01-02")
	endDate := event.End.Format("2006-01-02")
	duration := event.End.Sub(event.Start)

	// An event is considered all-day if it spans multiple days and is >= 24 hours
	return startDate != endDate && duration >= 24*time.Hour
}

func isDuplicate(event vevent, seenEventIDs, seenEventKeys map[string]bool, stats *filterStats, logger *zap.Logger) bool {
	if event.UID != "" && seenEventIDs[event.UID] {
		stats.filteredDuplicates++
		logger.Debug("filtered: duplicate uid", zap.String("title", event.Title), zap.String("uid", event.UID))
		return true
	}

	eventKey := event.Title + "|" + event.Start.Format(time.RFC3339)
	if seenEventKeys[eventKey] {
		stats.filteredDuplicates++
		logger.Debug("filtered: duplicate title and start", zap.String("title", event.Title), zap.Time("start", event.Start))
		return true
	}

	if event.UID != "" {
		seenEventIDs[event.UID] = true
	}
	seenEventKeys[eventKey] = true
	return false
}
