// Package daemon provides the long-running background budget monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mikeintech/budgetterrr/internal/engine"
	"github.com/mikeintech/budgetterrr/internal/goal"
	"github.com/mikeintech/budgetterrr/internal/model"
	"github.com/mikeintech/budgetterrr/internal/store"
)

// Schedules for the background jobs.
const (
	// autoSaveSchedule applies goal auto-save contributions on the
	// first of every month.
	autoSaveSchedule = "0 0 1 * *"
	// alertSchedule re-evaluates goal alerts every midnight.
	alertSchedule = "0 0 * * *"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Thresholds   goal.AlertThresholds
}

// Snapshot is a compact budget state for status/event payloads.
type Snapshot struct {
	At              time.Time `json:"at"`
	CurrentCash     float64   `json:"current_cash"`
	SavingsBalance  float64   `json:"savings_balance"`
	NextPayDate     time.Time `json:"next_pay_date"`
	MonthlyIncome   float64   `json:"monthly_income"`
	MonthlyExpenses float64   `json:"monthly_expenses"`
	TargetSavings   float64   `json:"target_savings"`
	Goals           int       `json:"goals"`
	Alerts          int       `json:"alerts"`
	DebtBalance     float64   `json:"debt_balance"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	CurrentCash    float64 `json:"current_cash"`
	SavingsBalance float64 `json:"savings_balance"`
	Alerts         int     `json:"alerts"`
	DebtBalance    float64 `json:"debt_balance"`
}

func (d Delta) isZero() bool {
	return d.CurrentCash == 0 &&
		d.SavingsBalance == 0 &&
		d.Alerts == 0 &&
		d.DebtBalance == 0
}

// Event is emitted whenever the budget snapshot updates.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	log *logrus.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 10*time.Second {
		cfg.Interval = time.Minute
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if len(cfg.Thresholds.Milestones) == 0 {
		cfg.Thresholds = goal.DefaultThresholds()
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return &Service{
		cfg:       cfg,
		log:       log,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints, scheduled jobs, and polling until ctx is
// canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	jobs := cron.New()
	if _, err := jobs.AddFunc(autoSaveSchedule, s.runAutoSave); err != nil {
		return fmt.Errorf("scheduling auto-save job: %w", err)
	}
	if _, err := jobs.AddFunc(alertSchedule, s.runAlertCheck); err != nil {
		return fmt.Errorf("scheduling alert job: %w", err)
	}
	jobs.Start()
	defer jobs.Stop()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// pollOnce loads the snapshot, applies any elapsed pay periods, and
// persists the result when it changed.
func (s *Service) pollOnce() {
	now := time.Now()

	data, changed, err := s.withSnapshot(func(data model.UserData) (model.UserData, bool) {
		advanced := engine.CatchUp(data, now)
		return advanced, !advanced.Budget.PaySchedule.NextPayDate.Equal(data.Budget.PaySchedule.NextPayDate)
	})
	if err != nil {
		s.recordError(now, err)
		return
	}
	if changed {
		s.log.WithFields(logrus.Fields{
			"cash":          data.Budget.CurrentCash,
			"next_pay_date": data.Budget.PaySchedule.NextPayDate.Format("2006-01-02"),
		}).Info("applied elapsed pay periods")
	}

	s.record(snapshotFromData(data, now), now)
}

// runAutoSave applies monthly contributions to goals with auto-save
// enabled and logs each transfer as a savings transaction.
func (s *Service) runAutoSave() {
	now := time.Now()

	data, applied, err := s.withSnapshot(func(data model.UserData) (model.UserData, bool) {
		out := data.Clone()
		var count int
		for i, g := range out.SavingsGoal.Goals {
			if !g.AutoSave || g.MonthlyContribution <= 0 {
				continue
			}
			out.SavingsGoal.Goals[i].CurrentAmount = g.CurrentAmount + g.MonthlyContribution
			out.Transactions = append(out.Transactions, model.Transaction{
				ID:          model.NewID(),
				Amount:      g.MonthlyContribution,
				Category:    "savings",
				Date:        now,
				Type:        model.TransactionIncome,
				Description: "auto-save: " + g.Name,
			})
			count++
		}
		return out, count > 0
	})
	if err != nil {
		s.recordError(now, err)
		return
	}
	if applied {
		s.log.Info("applied monthly auto-save contributions")
		s.record(snapshotFromData(data, now), now)
	}
}

// runAlertCheck re-evaluates every goal's alerts and persists any that
// fired.
func (s *Service) runAlertCheck() {
	now := time.Now()

	data, fired, err := s.withSnapshot(func(data model.UserData) (model.UserData, bool) {
		out := data.Clone()
		var newAlerts int
		for i, g := range out.SavingsGoal.Goals {
			updated := goal.ApplyAlerts(g, now, s.cfg.Thresholds)
			newAlerts += len(updated.Alerts) - len(g.Alerts)
			out.SavingsGoal.Goals[i] = updated
		}
		return out, newAlerts > 0
	})
	if err != nil {
		s.recordError(now, err)
		return
	}
	if fired {
		s.log.Info("goal alerts fired")
		s.record(snapshotFromData(data, now), now)
	}
}

// withSnapshot loads the snapshot, applies fn, and saves the result
// when fn reports a change. The store is opened per call so the daemon
// never holds the database across idle intervals.
func (s *Service) withSnapshot(fn func(model.UserData) (model.UserData, bool)) (model.UserData, bool, error) {
	st, err := store.Open(s.cfg.DBPath)
	if err != nil {
		return model.UserData{}, false, err
	}
	defer func() { _ = st.Close() }()

	data, err := st.Load()
	if err != nil {
		return model.UserData{}, false, err
	}

	out, changed := fn(data)
	if changed {
		if err := st.Save(out); err != nil {
			return model.UserData{}, false, err
		}
	}
	return out, changed, nil
}

func (s *Service) recordError(now time.Time, err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.lastPollAt = now
	s.pollCount++
	s.mu.Unlock()
	s.log.WithError(err).Error("daemon poll failed")
}

// record stores the snapshot, diffs it against the previous one, and
// publishes an event when anything moved.
func (s *Service) record(snap Snapshot, now time.Time) {
	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     Delta{},
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "budget_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func snapshotFromData(data model.UserData, at time.Time) Snapshot {
	var alerts int
	for _, g := range data.SavingsGoal.Goals {
		alerts += len(g.Alerts)
	}
	var debtBalance float64
	for _, d := range data.Debts {
		debtBalance += d.Balance
	}
	return Snapshot{
		At:              at,
		CurrentCash:     data.Budget.CurrentCash,
		SavingsBalance:  data.SavingsGoal.CurrentAmount,
		NextPayDate:     data.Budget.PaySchedule.NextPayDate,
		MonthlyIncome:   data.Budget.Income,
		MonthlyExpenses: data.Budget.MonthlyExpenses(),
		TargetSavings:   data.Budget.TargetSavings,
		Goals:           len(data.SavingsGoal.Goals),
		Alerts:          alerts,
		DebtBalance:     debtBalance,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		CurrentCash:    curr.CurrentCash - prev.CurrentCash,
		SavingsBalance: curr.SavingsBalance - prev.SavingsBalance,
		Alerts:         curr.Alerts - prev.Alerts,
		DebtBalance:    curr.DebtBalance - prev.DebtBalance,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
