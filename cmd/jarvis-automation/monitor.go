// Package main provides the Jarvis meeting automation daemon. It reacts to
// meeting.recorded events and sweeps the meeting provider on a schedule so
// meetings recorded while the daemon was down are still scanned.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jarvishq/jarvis/pkg/eventbus"
	"github.com/jarvishq/jarvis/pkg/events"
	"github.com/jarvishq/jarvis/pkg/services"
)

type MeetingMonitor struct {
	id           string
	automation   *services.Automation
	eventBus     eventbus.EventBus
	logger       *slog.Logger
	pollSchedule string

	mu        sync.Mutex
	lastSweep time.Time
}

func NewMeetingMonitor(
	id string,
	automation *services.Automation,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	pollSchedule string,
) *MeetingMonitor {
	return &MeetingMonitor{
		id:           id,
		automation:   automation,
		eventBus:     eventBus,
		logger:       logger.With("module", "jarvis-automation", "monitor_id", id),
		pollSchedule: pollSchedule,
		lastSweep:    time.Now().UTC(),
	}
}

func (mm *MeetingMonitor) Start(ctx context.Context) {
	mmCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	mm.logger.InfoContext(mmCtx, "Starting meeting monitor")

	if err := mm.subscribe(mmCtx); err != nil {
		mm.logger.ErrorContext(mmCtx, "Failed to subscribe to events", "error", err)

		return
	}

	scheduler, err := mm.schedule(mmCtx)
	if err != nil {
		mm.logger.ErrorContext(mmCtx, "Failed to start sweep scheduler", "error", err)

		return
	}
	defer scheduler.Stop()

	mm.signals(mmCtx, cancel)

	<-mmCtx.Done()
	mm.logger.Info("Meeting monitor stopped")
}

func (mm *MeetingMonitor) subscribe(ctx context.Context) error {
	err := mm.eventBus.Handle(events.MeetingRecordedEvent, func(ctx context.Context, event any) error {
		recorded, ok := event.(*events.MeetingRecorded)
		if !ok {
			return fmt.Errorf("unexpected event payload %T", event)
		}

		mm.logger.InfoContext(ctx, "Meeting recorded",
			"meeting_id", recorded.MeetingID, "contact_id", recorded.ContactID)

		outcomes, err := mm.automation.ScanMeeting(ctx, recorded.MeetingID)
		if err != nil {
			return err
		}

		mm.logger.InfoContext(ctx, "Meeting scanned",
			"meeting_id", recorded.MeetingID, "outcomes", len(outcomes))

		return nil
	})
	if err != nil {
		return err
	}

	return mm.eventBus.Subscribe(ctx)
}

func (mm *MeetingMonitor) schedule(ctx context.Context) (*cron.Cron, error) {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(mm.pollSchedule, func() {
		mm.sweep(ctx)
	})
	if err != nil {
		return nil, err
	}

	scheduler.Start()

	return scheduler, nil
}

// sweep scans every meeting that ended since the previous sweep. The window
// only advances on success, so a failed sweep is retried in full.
func (mm *MeetingMonitor) sweep(ctx context.Context) {
	mm.mu.Lock()
	since := mm.lastSweep
	mm.mu.Unlock()

	start := time.Now().UTC()

	if err := mm.automation.ScanRecent(ctx, since); err != nil {
		mm.logger.ErrorContext(ctx, "Recent meeting sweep failed", "error", err, "since", since)

		return
	}

	mm.mu.Lock()
	mm.lastSweep = start
	mm.mu.Unlock()
}

func (mm *MeetingMonitor) signals(ctx context.Context, cancel context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-signals
		mm.logger.InfoContext(ctx, "Received signal", "signal", sig)
		mm.logger.InfoContext(ctx, "Shutting down gracefully...")
		cancel()
	}()
}
