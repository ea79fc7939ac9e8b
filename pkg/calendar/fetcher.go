// Package calendar moves events between the timeline and iCalendar (.ics)
// documents.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"go.uber.org/zap"

	"github.com/borgmon/resource-timeline/pkg/models"
)

const (
	// DefaultHorizon bounds the expansion of recurring events when no window is set
	DefaultHorizon = 52 * 7 * 24 * time.Hour
	// DefaultMaxOccurrences caps the instances produced by one RRULE
	DefaultMaxOccurrences = 500

	maxBodySize = 10 << 20
	bom         = "\ufeff"
)

// ErrNotICalendar is returned for documents that are not iCalendar data
var ErrNotICalendar = errors.New("not an iCalendar document")

// Options control how VEVENTs become timeline events
type Options struct {
	// DefaultResource is used for events without X-RESOURCE-ID
	DefaultResource int

	// From and To restrict events to a floating window. A zero To disables
	// the window; recurring events then expand over DefaultHorizon from
	// their first start.
	From, To time.Time

	// Location gives zoned times their wall clock. Defaults to time.Local.
	Location *time.Location

	MaxOccurrences int
	Client         *http.Client // Fetch only, defaults to http.DefaultClient
	Logger         *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.MaxOccurrences <= 0 {
		o.MaxOccurrences = DefaultMaxOccurrences
	}
	if o.Client == nil {
		o.Client = http.DefaultClient
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Fetch downloads an iCalendar feed and imports it
func Fetch(ctx context.Context, icalURL string, opts Options) ([]models.CalendarEvent, error) {
	opts = opts.withDefaults()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, icalURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := opts.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	opts.Logger.Debug("calendar fetched", zap.String("url", icalURL), zap.Int("bytes", len(body)))
	return Import(strings.NewReader(string(body)), opts)
}

// Import decodes every VEVENT of an iCalendar document. Recurring events are
// expanded, and cancelled, all-day, multi-day and duplicate events dropped.
func Import(r io.Reader, opts Options) ([]models.CalendarEvent, error) {
	opts = opts.withDefaults()
	logger := opts.Logger

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}
	bodyStr := strings.TrimLeft(strings.TrimPrefix(string(raw), bom), " \t\r\n")
	if err := validateICalFormat(bodyStr); err != nil {
		return nil, err
	}

	decoder := ical.NewDecoder(strings.NewReader(bodyStr))
	events := []models.CalendarEvent{}
	seenEventIDs := make(map[string]bool)
	seenEventKeys := make(map[string]bool)
	stats := &filterStats{}

	include := func(ev vevent) {
		if !shouldIncludeEvent(ev, opts.From, opts.To, stats, logger) {
			return
		}
		if isDuplicate(ev, seenEventIDs, seenEventKeys, stats, logger) {
			return
		}
		events = append(events, ev.toCalendarEvent(opts.DefaultResource))
	}

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			stats.totalComponents++
			if comp.Name != ical.CompEvent {
				continue
			}
			stats.totalEvents++

			event := parseEvent(comp, opts.Location)
			if event.RRule == "" {
				include(event)
				continue
			}
			if event.Start.IsZero() || event.End.IsZero() {
				include(event)
				continue
			}

			from, to := opts.From, opts.To
			if to.IsZero() {
				from, to = event.Start, event.Start.Add(DefaultHorizon)
			}
			instances, capped := expandRecurringEvent(event, from, to, opts.MaxOccurrences, logger)
			if capped {
				stats.cappedRecurrences++
			}
			for _, instance := range instances {
				include(instance)
			}
		}
	}

	stats.logSummary(logger, len(events))
	return events, nil
}

func validateICalFormat(bodyStr string) error {
	trimmed := strings.TrimSpace(strings.TrimPrefix(bodyStr, bom))
	upperBody := strings.ToUpper(trimmed)
	if strings.HasPrefix(upperBody, "<!DOCTYPE") || strings.HasPrefix(upperBody, "<HTML") {
		return fmt.Errorf("%w: received HTML, check if the URL requires authentication", ErrNotICalendar)
	}

	if !strings.HasPrefix(upperBody, "BEGIN:VCALENDAR") {
		previewLen := 100
		if len(trimmed) < previewLen {
			previewLen = len(trimmed)
		}
		return fmt.Errorf("%w: expected BEGIN:VCALENDAR, got: %s", ErrNotICalendar, trimmed[:previewLen])
	}

	return nil
}
