package calendar

import (
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"
)

// expandRecurringEvent expands an RRULE into instances starting inside
// [from, to). It returns at most limit instances and reports whether the
// limit cut the expansion short.
func expandRecurringEvent(base vevent, from, to time.Time, limit int, logger *zap.Logger) ([]vevent, bool) {
	r, err := rrule.StrToRRule(base.RRule)
	if err != nil {
		logger.Warn("unparsable RRULE, event skipped",
			zap.String("uid", base.UID), zap.String("rrule", base.RRule), zap.Error(err))
		return nil, false
	}
	r.DTStart(base.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range base.ExDates {
		set.ExDate(ex)
	}

	starts := set.Between(from, to, true)
	capped := false
	if limit > 0 && len(starts) > limit {
		starts = starts[:limit]
		capped = true
	}

	duration := base.End.Sub(base.Start)
	events := make([]vevent, 0, len(starts))
	for _, start := range starts {
		instance := base
		instance.RRule = ""
		instance.ExDates = nil
		instance.Start = start
		instance.End = start.Add(duration)
		instance.UID = base.UID + "-" + start.Format(time.RFC3339)
		events = append(events, instance)
	}

	logger.Debug("recurring event expanded",
		zap.String("uid", base.UID), zap.String("rrule", base.RRule),
		zap.Int("instances", len(events)), zap.Bool("capped", capped))
	return events, capped
}
