package debt

import (
	"math"
	"testing"
	"time"

	"github.com/mikeintech/budgetterrr/internal/model"
)

var start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAmortizeFirstPeriod(t *testing.T) {
	d := model.DebtAccount{Name: "card", Balance: 1200, InterestRate: 12, Type: model.DebtCreditCard}
	schedule := Amortize(d, 200, start)

	if len(schedule) == 0 {
		t.Fatal("empty schedule")
	}
	first := schedule[0]
	// 1200 * 1% monthly = 12 interest, 188 principal, 1012 remaining.
	if math.Abs(first.Interest-12) > 1e-9 {
		t.Errorf("period-1 interest = %.4f, want 12", first.Interest)
	}
	if math.Abs(first.Principal-188) > 1e-9 {
		t.Errorf("period-1 principal = %.4f, want 188", first.Principal)
	}
	if math.Abs(first.RemainingBalance-1012) > 1e-9 {
		t.Errorf("period-1 remaining = %.4f, want 1012", first.RemainingBalance)
	}
	if !first.Date.Equal(start) {
		t.Errorf("period-1 date = %s, want %s", first.Date, start)
	}
	if !schedule[1].Date.Equal(start.AddDate(0, 1, 0)) {
		t.Errorf("period-2 date = %s, want one month later", schedule[1].Date)
	}
}

func TestAmortizeRetiresDebt(t *testing.T) {
	d := model.DebtAccount{Balance: 1200, InterestRate: 12}
	schedule := Amortize(d, 200, start)

	if !PaidOff(schedule) {
		t.Fatal("debt should be paid off")
	}
	last := schedule[len(schedule)-1]
	if last.RemainingBalance > 0 {
		t.Errorf("final balance = %.4f, want <= 0", last.RemainingBalance)
	}
	// Final principal never exceeds the remaining balance.
	if last.Principal > 200 {
		t.Errorf("final principal = %.4f, want <= payment", last.Principal)
	}
	if got := PayoffDate(schedule); !got.Equal(last.Date) {
		t.Errorf("PayoffDate = %s, want %s", got, last.Date)
	}
}

func TestAmortizeInsufficientPaymentTerminates(t *testing.T) {
	// 10% APR on 100k accrues ~833/mo interest; a 50 payment never
	// converges and must stop via the insufficiency guard, not loop.
	d := model.DebtAccount{Balance: 100000, InterestRate: 10}
	schedule := Amortize(d, 50, start)

	if len(schedule) != 1 {
		t.Fatalf("schedule length = %d, want 1 (guard fires after first entry)", len(schedule))
	}
	if PaidOff(schedule) {
		t.Error("underwater schedule reported as paid off")
	}
	if schedule[0].RemainingBalance <= d.Balance {
		t.Error("balance should grow when payment is below interest")
	}
}

func TestAmortizeHardCap(t *testing.T) {
	// Payment barely above first-month interest: amortizes in theory but
	// takes far longer than 30 years, so the cap applies.
	d := model.DebtAccount{Balance: 100000, InterestRate: 10}
	schedule := Amortize(d, 840, start)

	if len(schedule) > MaxPeriods {
		t.Fatalf("schedule length = %d, exceeds cap %d", len(schedule), MaxPeriods)
	}
	if len(schedule) != MaxPeriods {
		t.Fatalf("schedule length = %d, want cap %d", len(schedule), MaxPeriods)
	}
	if PaidOff(schedule) {
		t.Error("capped schedule reported as paid off")
	}
}

func TestAmortizeTermination(t *testing.T) {
	// Any positive balance and payment yields a finite schedule <= 360.
	cases := []struct {
		balance, rate, payment float64
	}{
		{500, 0, 100},
		{5000, 22.9, 120},
		{250000, 6.5, 1580},
		{100, 99, 1},
	}
	for _, c := range cases {
		d := model.DebtAccount{Balance: c.balance, InterestRate: c.rate}
		schedule := Amortize(d, c.payment, start)
		if len(schedule) == 0 || len(schedule) > MaxPeriods {
			t.Errorf("Amortize(balance=%.0f rate=%.1f payment=%.0f) length = %d",
				c.balance, c.rate, c.payment, len(schedule))
		}
	}
}

func TestAmortizeZeroInterest(t *testing.T) {
	d := model.DebtAccount{Balance: 600, InterestRate: 0}
	schedule := Amortize(d, 200, start)

	if len(schedule) != 3 {
		t.Fatalf("schedule length = %d, want 3", len(schedule))
	}
	if got := TotalInterest(schedule); got != 0 {
		t.Errorf("TotalInterest = %.4f, want 0", got)
	}
}

func TestTotalInterest(t *testing.T) {
	d := model.DebtAccount{Balance: 1200, InterestRate: 12}
	schedule := Amortize(d, 200, start)

	var want float64
	for _, e := range schedule {
		want += e.Interest
	}
	if got := TotalInterest(schedule); math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalInterest = %.4f, want %.4f", got, want)
	}
	if want <= 0 {
		t.Error("expected positive total interest")
	}
}

func TestPayoffDateEmptySchedule(t *testing.T) {
	if got := PayoffDate(nil); !got.IsZero() {
		t.Errorf("PayoffDate(nil) = %s, want zero time", got)
	}
}

func TestMinimumPaymentTotal(t *testing.T) {
	debts := []model.DebtAccount{
		{MinimumPayment: 35},
		{MinimumPayment: 210.50},
		{MinimumPayment: 0},
	}
	if got := MinimumPaymentTotal(debts); math.Abs(got-245.50) > 1e-9 {
		t.Errorf("MinimumPaymentTotal = %.2f, want 245.50", got)
	}
}

func TestTypeLabel(t *testing.T) {
	if got := TypeLabel(model.DebtStudentLoan); got != "Student Loan" {
		t.Errorf("TypeLabel(student_loan) = %q", got)
	}
	if got := TypeLabel(model.DebtType("unknown")); got != "Other" {
		t.Errorf("TypeLabel(unknown) = %q, want Other", got)
	}
}
