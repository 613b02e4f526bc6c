package daemon

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikeintech/budgetterrr/internal/model"
	"github.com/mikeintech/budgetterrr/internal/store"
)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		CurrentCash:    1000,
		SavingsBalance: 500,
		Alerts:         2,
		DebtBalance:    3000,
	}
	curr := Snapshot{
		CurrentCash:    1800,
		SavingsBalance: 750,
		Alerts:         3,
		DebtBalance:    2800,
	}

	delta := diffSnapshots(prev, curr)
	if math.Abs(delta.CurrentCash-800) > 1e-9 {
		t.Fatalf("CurrentCash delta = %.2f, want 800", delta.CurrentCash)
	}
	if math.Abs(delta.SavingsBalance-250) > 1e-9 {
		t.Fatalf("SavingsBalance delta = %.2f, want 250", delta.SavingsBalance)
	}
	if delta.Alerts != 1 {
		t.Fatalf("Alerts delta = %d, want 1", delta.Alerts)
	}
	if math.Abs(delta.DebtBalance+200) > 1e-9 {
		t.Fatalf("DebtBalance delta = %.2f, want -200", delta.DebtBalance)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestSnapshotFromData(t *testing.T) {
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	data := model.DefaultUserData(now)
	data.Budget.CurrentCash = 1234
	data.SavingsGoal.CurrentAmount = 567
	data.SavingsGoal.Goals = []model.Goal{
		{ID: "g1", Alerts: []model.GoalAlert{{ID: "a1"}, {ID: "a2"}}},
	}
	data.Debts = []model.DebtAccount{
		{ID: "d1", Balance: 1000},
		{ID: "d2", Balance: 250},
	}

	snap := snapshotFromData(data, now)
	if snap.CurrentCash != 1234 || snap.SavingsBalance != 567 {
		t.Errorf("snapshot figures: %+v", snap)
	}
	if snap.Goals != 1 || snap.Alerts != 2 {
		t.Errorf("goals %d alerts %d", snap.Goals, snap.Alerts)
	}
	if snap.DebtBalance != 1250 {
		t.Errorf("DebtBalance = %.0f", snap.DebtBalance)
	}
}

func TestRunAutoSaveAppliesContributions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "budgetterrr.db")

	seed := model.DefaultUserData(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	seed.SavingsGoal.Goals = []model.Goal{
		{ID: "g1", Name: "vacation", AutoSave: true, MonthlyContribution: 150, TargetAmount: 3000},
		{ID: "g2", Name: "car", AutoSave: false, MonthlyContribution: 200, TargetAmount: 8000},
	}
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Save(seed); err != nil {
		t.Fatal(err)
	}
	_ = st.Close()

	s := New(Config{DBPath: dbPath})
	s.runAutoSave()

	st, err = store.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = st.Close() }()
	got, err := st.Load()
	if err != nil {
		t.Fatal(err)
	}

	byID := map[string]model.Goal{}
	for _, g := range got.SavingsGoal.Goals {
		byID[g.ID] = g
	}
	if byID["g1"].CurrentAmount != 150 {
		t.Errorf("auto-save goal balance = %.0f, want 150", byID["g1"].CurrentAmount)
	}
	if byID["g2"].CurrentAmount != 0 {
		t.Errorf("non-auto-save goal funded: %.0f", byID["g2"].CurrentAmount)
	}
	if len(got.Transactions) != 1 || got.Transactions[0].Category != "savings" {
		t.Errorf("transactions = %+v", got.Transactions)
	}
}

func TestPollOncePersistsCatchUp(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "budgetterrr.db")

	seed := model.DefaultUserData(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	seed.Budget.CurrentCash = 1000
	seed.Budget.TargetSavings = 500
	seed.Budget.Expenses = map[string]float64{"housing": 1200}
	seed.Budget.PaySchedule = model.PaySchedule{
		Frequency:   model.Monthly,
		NextPayDate: time.Now().AddDate(0, 0, -35),
		Amount:      3000,
	}
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Save(seed); err != nil {
		t.Fatal(err)
	}
	_ = st.Close()

	s := New(Config{DBPath: dbPath})
	s.pollOnce()

	st, err = store.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = st.Close() }()
	got, err := st.Load()
	if err != nil {
		t.Fatal(err)
	}

	// One 30-day period elapsed: 3000 - 1200 - 500 = +1300.
	if got.Budget.CurrentCash != 2300 {
		t.Errorf("cash after poll = %.0f, want 2300", got.Budget.CurrentCash)
	}
	if !got.Budget.PaySchedule.NextPayDate.After(seed.Budget.PaySchedule.NextPayDate) {
		t.Error("next pay date did not advance")
	}

	status := s.snapshotStatus()
	if status.PollCount != 1 {
		t.Errorf("PollCount = %d", status.PollCount)
	}
	if status.Summary.CurrentCash != 2300 {
		t.Errorf("summary cash = %.0f", status.Summary.CurrentCash)
	}
}
