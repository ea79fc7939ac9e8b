package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"go.uber.org/zap"

	"github.com/borgmon/resource-timeline/pkg/calendar"
	"github.com/borgmon/resource-timeline/pkg/config"
	"github.com/borgmon/resource-timeline/pkg/models"
	"github.com/borgmon/resource-timeline/pkg/store"
	"github.com/borgmon/resource-timeline/pkg/ui"
	"github.com/borgmon/resource-timeline/pkg/week"
)

const (
	appID        = "io.github.borgmon.resource-timeline"
	syncInterval = 15 * time.Minute
	fetchTimeout = 30 * time.Second
)

// AppOptions are the command line inputs of the desktop app
type AppOptions struct {
	ConfigPath string
	EventsPath string
	ICSURL     string
	Week       string // YYYY-MM-DD
	Logger     *zap.Logger
}

// TimelineApp hosts the timeline: it owns the event list the timeline is
// fed with and keeps it in step with the timeline callbacks
type TimelineApp struct {
	app    fyne.App
	logger *zap.Logger
	opts   AppOptions

	prefs     *store.ConfigStore
	config    *models.Config
	resources []models.Resource
	host      *hostEvents

	store    *store.EventStore
	timeline *ui.Timeline
	window   fyne.Window

	syncTicker *time.Ticker
	cancel     context.CancelFunc
}

// NewTimelineApp loads configuration and data and builds the main window
func NewTimelineApp(opts AppOptions) (*TimelineApp, error) {
	return newTimelineApp(app.NewWithID(appID), opts)
}

func newTimelineApp(a fyne.App, opts AppOptions) (*TimelineApp, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ta := &TimelineApp{
		app:    a,
		logger: logger,
		opts:   opts,
		prefs:  store.NewConfigStore(a),
		host:   &hostEvents{},
	}
	if err := ta.initialize(); err != nil {
		return nil, err
	}
	return ta, nil
}

func (ta *TimelineApp) initialize() error {
	if err := ta.loadConfig(); err != nil {
		return err
	}
	if err := ta.loadDataset(); err != nil {
		return err
	}

	weekStart := week.StartOfDay(time.Now())
	if ta.opts.Week != "" {
		t, err := time.Parse("2006-01-02", ta.opts.Week)
		if err != nil {
			return fmt.Errorf("invalid --week %q: %w", ta.opts.Week, err)
		}
		weekStart = t
	}

	ta.store = store.NewEventStore(store.Options{
		Config:    ta.config,
		Resources: ta.resources,
		Events:    ta.host.all(),
		WeekStart: weekStart,
		Callbacks: store.Callbacks{
			OnAddEvent:    ta.onAddEvent,
			OnDeleteEvent: ta.onDeleteEvent,
			OnEventClick:  ta.onEventClick,
		},
		Logger: ta.logger.Named("store"),
	})

	ta.window = ta.app.NewWindow("Resource Timeline")
	prompt := ui.NewDeletePrompt(ta.window, ta.config.HoldToDelete)
	ta.timeline = ui.NewTimeline(ta.store, prompt, ta.logger.Named("ui"))
	ta.window.SetContent(ta.timeline.Content())
	ta.window.SetMainMenu(ta.mainMenu())
	ta.window.Resize(fyne.NewSize(1280, 640))
	ta.window.SetOnClosed(ta.shutdown)
	ta.window.SetMaster()
	return nil
}

func (ta *TimelineApp) loadConfig() error {
	if ta.opts.ConfigPath != "" {
		cfg, err := config.Load(ta.opts.ConfigPath)
		if err != nil {
			return err
		}
		ta.config = cfg
	} else {
		ta.config = ta.prefs.Load(nil)
	}
	if ta.opts.ICSURL != "" {
		ta.config.ICSURL = ta.opts.ICSURL
	}
	return nil
}

func (ta *TimelineApp) loadDataset() error {
	if ta.opts.EventsPath == "" {
		ta.resources = ta.prefs.LoadResources()
		if len(ta.resources) == 0 {
			ta.resources = demoResources
		}
		ta.host.setLocal(demoEvents)
		return nil
	}

	ds, err := config.LoadDataset(ta.opts.EventsPath)
	if err != nil {
		return err
	}
	ta.resources = ds.Resources
	ta.host.setLocal(ds.Events)
	return nil
}

func (ta *TimelineApp) mainMenu() *fyne.MainMenu {
	return fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Sync Calendar", func() { go ta.syncCalendar() }),
			fyne.NewMenuItem("Export iCalendar...", ta.showExportDialog),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Settings...", ta.showSettingsWindow),
		),
	)
}

// Run starts background sync and blocks until the window closes
func (ta *TimelineApp) Run() {
	ta.startBackgroundSync()
	ta.window.ShowAndRun()
}

func (ta *TimelineApp) onAddEvent(ev models.TimedEvent) {
	ta.logger.Info("add event",
		zap.String("title", ev.Title), zap.String("start", ev.Start), zap.String("end", ev.End), zap.Int("resource", ev.Resource))
	ta.host.add(ev.External())
}

func (ta *TimelineApp) onDeleteEvent(ev models.TimedEvent) {
	ta.logger.Info("delete event", zap.String("title", ev.Title), zap.String("start", ev.Start), zap.Int("resource", ev.Resource))
	if !ta.host.remove(ev) {
		ta.logger.Debug("deleted event was not in the host list", zap.Int("id", ev.ID))
	}
}

func (ta *TimelineApp) onEventClick(ev models.TimedEvent) {
	ta.logger.Info("click event", zap.String("title", ev.Title), zap.String("start", ev.Start), zap.Int("id", ev.ID))
}

func (ta *TimelineApp) startBackgroundSync() {
	if ta.config.ICSURL == "" {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	ta.cancel = cancel

	ta.syncTicker = time.NewTicker(syncInterval)
	go func() {
		ta.syncCalendarContext(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ta.syncTicker.C:
				ta.syncCalendarContext(ctx)
			}
		}
	}()
}

func (ta *TimelineApp) syncCalendar() {
	ta.syncCalendarContext(context.Background())
}

// syncCalendarContext fetches the feed and hands the merged host list to
// the store. Events edited on the timeline keep their edits.
func (ta *TimelineApp) syncCalendarContext(ctx context.Context) {
	if ta.config.ICSURL == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	defaultResource := 0
	if len(ta.resources) > 0 {
		defaultResource = ta.resources[0].ID
	}
	events, err := calendar.Fetch(ctx, ta.config.ICSURL, calendar.Options{
		DefaultResource: defaultResource,
		Logger:          ta.logger.Named("calendar"),
	})
	if err != nil {
		ta.logger.Error("calendar sync failed", zap.String("url", ta.config.ICSURL), zap.Error(err))
		return
	}

	ta.host.setRemote(events)
	fyne.Do(func() { ta.store.Sync(ta.host.all()) })
	ta.logger.Info("calendar synced", zap.Int("events", len(events)))
}

func (ta *TimelineApp) showSettingsWindow() {
	sw := ui.NewSettingsWindow(ta.app, ta.config, ta.resources, func(cfg *models.Config, resources []models.Resource) {
		if ta.opts.ConfigPath != "" {
			if err := config.Save(ta.opts.ConfigPath, cfg); err != nil {
				ta.logger.Error("saving config failed", zap.Error(err))
				dialog.ShowError(err, ta.window)
				return
			}
		} else {
			ta.prefs.Save(cfg)
		}
		ta.prefs.SaveResources(resources)
		ta.logger.Info("settings saved")
	})
	sw.Show()
}

func (ta *TimelineApp) showExportDialog() {
	if len(ta.store.Events()) == 0 {
		dialog.ShowInformation("Export iCalendar", "There are no events to export.", ta.window)
		return
	}
	dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ta.window)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()

		if err := calendar.Export(w, ta.snapshot(), time.Now()); err != nil {
			ta.logger.Error("export failed", zap.Error(err))
			dialog.ShowError(err, ta.window)
			return
		}
		ta.logger.Info("exported events", zap.String("uri", w.URI().String()))
	}, ta.window)
}

// snapshot returns the timeline events in id order, including unsaved edits
func (ta *TimelineApp) snapshot() []models.CalendarEvent {
	events := ta.store.Events()
	out := make([]models.CalendarEvent, 0, len(events))
	for _, id := range events.IDs() {
		out = append(out, events[id].External())
	}
	return out
}

func (ta *TimelineApp) shutdown() {
	if ta.cancel != nil {
		ta.cancel()
	}
	if ta.syncTicker != nil {
		ta.syncTicker.Stop()
	}
	ta.timeline.Close()

	if ta.opts.EventsPath == "" {
		return
	}
	ds := &config.Dataset{Resources: ta.resources, Events: ta.snapshot()}
	if err := config.SaveDataset(ta.opts.EventsPath, ds); err != nil {
		ta.logger.Error("saving events failed", zap.String("path", ta.opts.EventsPath), zap.Error(err))
		return
	}
	ta.logger.Info("events saved", zap.String("path", ta.opts.EventsPath), zap.Int("events", len(ds.Events)))
}

// hostEvents is the host side event list: the dataset plus events created on
// the timeline, and the last calendar fetch
type hostEvents struct {
	mu     sync.Mutex
	local  []models.CalendarEvent
	remote []models.CalendarEvent
}

func (h *hostEvents) setLocal(events []models.CalendarEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.local = append([]models.CalendarEvent(nil), events...)
}

func (h *hostEvents) setRemote(events []models.CalendarEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remote = append([]models.CalendarEvent(nil), events...)
}

func (h *hostEvents) add(ev models.CalendarEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.local = append(h.local, ev)
}

// remove drops the first entry matching ev. The ingested span is matched
// for events that were moved before deletion.
func (h *hostEvents) remove(ev models.TimedEvent) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	matches := func(c models.CalendarEvent) bool {
		if c.Title != ev.Title || c.Resource != ev.Resource {
			return false
		}
		if c.SameSpan(ev.CalendarEvent) {
			return true
		}
		return ev.Origin.Start != "" && c.Start == ev.Origin.Start && c.End == ev.Origin.End
	}
	for _, list := range []*[]models.CalendarEvent{&h.local, &h.remote} {
		for i, c := range *list {
			if matches(c) {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return true
			}
		}
	}
	return false
}

func (h *hostEvents) all() []models.CalendarEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.CalendarEvent, 0, len(h.local)+len(h.remote))
	out = append(out, h.local...)
	return append(out, h.remote...)
}
