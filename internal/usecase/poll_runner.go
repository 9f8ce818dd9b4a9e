package usecase

import (
	"context"
	"fmt"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
	"flightwatch-service/pkg/utils"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// PollRunnerConfig holds the scheduler knobs
type PollRunnerConfig struct {
	// CycleInterval is the period between poll cycles (default 6h)
	CycleInterval time.Duration
	// MaxSamplesPerCycle bounds the dates queried per tracker (default 5)
	MaxSamplesPerCycle int
	// InterCallDelay is the fixed pacing between consecutive lookups for
	// the same tracker (default 2s)
	InterCallDelay time.Duration
	// LookupMinInterval feeds the shared limiter across all trackers
	LookupMinInterval time.Duration
	// MaxConcurrentTrackers bounds per-cycle tracker fan-out
	MaxConcurrentTrackers int
}

// PollRunner is the poll cycle scheduler. A single loop drives cycles off a
// ticker, so cycles can never overlap; within a cycle trackers are checked
// with bounded concurrency, and every per-date and per-tracker failure is
// isolated.
type PollRunner struct {
	store      repository.TrackerStore
	flightRepo repository.FlightSearchRepository
	dispatcher *NotificationDispatcher
	history    repository.PriceRecordRepository
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	logger     logger.Logger
	cfg        PollRunnerConfig
}

// NewPollRunner creates a new poll cycle runner
func NewPollRunner(
	store repository.TrackerStore,
	flightRepo repository.FlightSearchRepository,
	dispatcher *NotificationDispatcher,
	history repository.PriceRecordRepository,
	m *metrics.Metrics,
	logger logger.Logger,
	cfg PollRunnerConfig,
) *PollRunner {
	if cfg.MaxSamplesPerCycle <= 0 {
		cfg.MaxSamplesPerCycle = 5
	}
	if cfg.MaxConcurrentTrackers <= 0 {
		cfg.MaxConcurrentTrackers = 1
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.LookupMinInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.LookupMinInterval), 1)
	}

	return &PollRunner{
		store:      store,
		flightRepo: flightRepo,
		dispatcher: dispatcher,
		history:    history,
		limiter:    limiter,
		metrics:    m,
		logger:     logger,
		cfg:        cfg,
	}
}

// Start blocks on the readiness signal, then runs the cycle loop until the
// context is canceled. An in-flight cycle always finishes before Start
// returns. The only fatal condition is an interval the timer cannot be
// armed with.
func (r *PollRunner) Start(ctx context.Context, ready <-chan struct{}) error {
	if r.cfg.CycleInterval <= 0 {
		return fmt.Errorf("cannot arm cycle timer: invalid interval %v", r.cfg.CycleInterval)
	}

	select {
	case <-ctx.Done():
		return nil
	case <-ready:
	}

	r.logger.Info("Poll cycle scheduler started",
		"interval", r.cfg.CycleInterval,
		"maxSamples", r.cfg.MaxSamplesPerCycle,
		"interCallDelay", r.cfg.InterCallDelay)

	// First cycle runs at readiness; the ticker paces the rest
	r.RunCycle(ctx)

	ticker := time.NewTicker(r.cfg.CycleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Poll cycle scheduler stopped")
			return nil
		case <-ticker.C:
			r.RunCycle(ctx)
		}
	}
}

// RunCycle checks every tracker in the current snapshot once. An empty
// store is a no-op. Failures are confined to the tracker they occur in.
func (r *PollRunner) RunCycle(ctx context.Context) {
	trackers := r.store.SnapshotAll()
	if len(trackers) == 0 {
		r.logger.Debug("No active trackers, skipping cycle")
		return
	}

	start := time.Now()
	r.logger.Info("Checking tracked flights", "trackers", len(trackers))

	g := new(errgroup.Group)
	g.SetLimit(r.cfg.MaxConcurrentTrackers)
	for _, tracker := range trackers {
		tracker := tracker
		g.Go(func() error {
			r.checkTracker(ctx, tracker)
			return nil
		})
	}
	g.Wait()

	r.metrics.CyclesTotal.Inc()
	r.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	r.logger.Info("Poll cycle completed", "trackers", len(trackers), "elapsed", time.Since(start))
}

// checkTracker runs one tracker's observation, state update and
// notification decision
func (r *PollRunner) checkTracker(ctx context.Context, tracker *entity.Tracker) {
	obs := r.observe(ctx, tracker)
	checkedAt := time.Now()

	// last_checked_at advances every cycle; the price only moves when a
	// date yielded a usable one.
	r.store.UpdateObservation(tracker.ID, checkedAt, obs.BestPrice)
	r.metrics.TrackersChecked.Inc()

	alerted := false
	if obs.BestPrice != nil && *obs.BestPrice <= tracker.MaxPrice {
		alerted = r.dispatcher.Dispatch(ctx, &entity.PriceAlert{
			Tracker:       tracker,
			BestPrice:     *obs.BestPrice,
			BestDate:      obs.BestDate,
			BestItinerary: obs.BestItinerary,
		})
		if alerted {
			r.metrics.AlertsSent.Inc()
		} else {
			r.metrics.ErrorsCount.WithLabelValues("dispatch").Inc()
		}
	}

	r.recordObservation(ctx, tracker, obs, checkedAt, alerted)
}

// observe samples the tracker's date window and folds lookup results into
// the cycle's best price. A failed date is skipped; it never aborts the
// remaining dates.
func (r *PollRunner) observe(ctx context.Context, tracker *entity.Tracker) entity.CycleObservation {
	dates := utils.SampleDates(tracker.StartDate, tracker.EndDate, r.cfg.MaxSamplesPerCycle)
	obs := entity.CycleObservation{SampledDates: len(dates)}

	for i, date := range dates {
		if i > 0 && r.cfg.InterCallDelay > 0 {
			select {
			case <-time.After(r.cfg.InterCallDelay):
			case <-ctx.Done():
			}
		}

		if err := r.limiter.Wait(ctx); err != nil {
			obs.FailedDates++
			continue
		}

		itineraries, err := r.flightRepo.Search(ctx, repository.FlightQuery{
			Origin:      tracker.Origin,
			Destination: tracker.Destination,
			Date:        date,
			Adults:      tracker.Adults,
			SeatClass:   tracker.SeatClass,
			MaxStops:    tracker.MaxStops,
		})
		r.metrics.LookupsTotal.Inc()
		if err != nil {
			r.logger.Warn("Price lookup failed",
				"trackerId", tracker.ShortID(),
				"route", tracker.Origin+"-"+tracker.Destination,
				"date", date.Format(utils.DateLayout),
				"error", err)
			r.metrics.ErrorsCount.WithLabelValues("lookup").Inc()
			obs.FailedDates++
			continue
		}

		for _, itinerary := range itineraries {
			price, ok := utils.ParsePrice(itinerary.Price)
			if !ok {
				continue
			}
			if obs.BestPrice == nil || price < *obs.BestPrice {
				p := price
				it := itinerary
				obs.BestPrice = &p
				obs.BestDate = date
				obs.BestItinerary = &it
			}
		}
	}

	return obs
}

// recordObservation appends the cycle's result to the observation history.
// History is an audit trail; a write failure never affects the cycle.
func (r *PollRunner) recordObservation(ctx context.Context, tracker *entity.Tracker, obs entity.CycleObservation, checkedAt time.Time, alerted bool) {
	if r.history == nil {
		return
	}

	record := &entity.PriceRecord{
		TrackerID:    tracker.ID,
		OwnerUserID:  tracker.OwnerUserID,
		Origin:       tracker.Origin,
		Destination:  tracker.Destination,
		BestPrice:    obs.BestPrice,
		SampledDates: obs.SampledDates,
		FailedDates:  obs.FailedDates,
		Alerted:      alerted,
		CheckedAt:    checkedAt,
	}
	if obs.BestPrice != nil {
		bestDate := obs.BestDate
		record.BestDate = &bestDate
	}

	if err := r.history.Save(ctx, record); err != nil {
		r.logger.Warn("Failed to record observation history",
			"trackerId", tracker.ShortID(),
			"error", err)
		r.metrics.ErrorsCount.WithLabelValues("history").Inc()
	}
}
