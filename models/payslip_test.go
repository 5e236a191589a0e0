package models

import "testing"

func TestComputePayslip(t *testing.T) {
	guard := &Guard{
		ID:                  5,
		MonthlyBaseCents:    100000, // 1000.00
		OvertimeHourlyCents: 1000,   // 10.00/h
		DeductionPercent:    10,
	}

	t.Run("base month, no extras", func(t *testing.T) {
		p := ComputePayslip(guard, 2026, 8, 0, 0, 26)
		if p.OvertimeCents != 0 || p.UnpaidLeaveCents != 0 {
			t.Errorf("extras = %d/%d, want 0/0", p.OvertimeCents, p.UnpaidLeaveCents)
		}
		if p.DeductionCents != 10000 {
			t.Errorf("DeductionCents = %d, want 10000", p.DeductionCents)
		}
		if p.NetCents != 90000 {
			t.Errorf("NetCents = %d, want 90000", p.NetCents)
		}
	})

	t.Run("overtime and unpaid leave", func(t *testing.T) {
		p := ComputePayslip(guard, 2026, 8, 10, 2, 26)
		if p.OvertimeCents != 10000 {
			t.Errorf("OvertimeCents = %d, want 10000", p.OvertimeCents)
		}
		// 100000/26 per day, 2 days, rounded
		if p.UnpaidLeaveCents != 7692 {
			t.Errorf("UnpaidLeaveCents = %d, want 7692", p.UnpaidLeaveCents)
		}
		// gross = 100000 + 10000 - 7692 = 102308
		if p.DeductionCents != 10231 {
			t.Errorf("DeductionCents = %d, want 10231", p.DeductionCents)
		}
		if p.NetCents != 92077 {
			t.Errorf("NetCents = %d, want 92077", p.NetCents)
		}
	})

	t.Run("gross never negative", func(t *testing.T) {
		p := ComputePayslip(guard, 2026, 8, 0, 60, 26)
		if p.NetCents != 0 || p.DeductionCents != 0 {
			t.Errorf("net/deduction = %d/%d, want 0/0", p.NetCents, p.DeductionCents)
		}
	})

	t.Run("fractional overtime hours rounded once", func(t *testing.T) {
		p := ComputePayslip(guard, 2026, 8, 1.5, 0, 26)
		if p.OvertimeCents != 1500 {
			t.Errorf("OvertimeCents = %d, want 1500", p.OvertimeCents)
		}
	})

	t.Run("zero working days skips pro-rata", func(t *testing.T) {
		p := ComputePayslip(guard, 2026, 8, 0, 2, 0)
		if p.UnpaidLeaveCents != 0 {
			t.Errorf("UnpaidLeaveCents = %d, want 0", p.UnpaidLeaveCents)
		}
	})
}
