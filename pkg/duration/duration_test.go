package duration

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name string
		c    Components
		want float64
	}{
		{"empty", Components{}, 0},
		{"years and days", Components{Years: 1, Days: 1}, 31536000000 + 86400000},
		{
			"all units",
			Components{Years: 1, Months: 1, Days: 1, Hours: 1, Minutes: 1, Seconds: 1, Milliseconds: 1},
			31536000000 + 2592000000 + 86400000 + 3600000 + 60000 + 1000 + 1,
		},
		{"month", Components{Months: 1}, 2592000000},
		{"fractional hours", Components{Hours: 1.5}, 5400000},
		{"hours minutes seconds", Components{Hours: 2, Minutes: 30, Seconds: 45}, 9045000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := From(tt.c).Milliseconds()
			if got != tt.want {
				t.Errorf("From(%+v).Milliseconds() = %v, want %v", tt.c, got, tt.want)
			}
			if tt.c.Total() != tt.want {
				t.Errorf("Total() = %v, want %v", tt.c.Total(), tt.want)
			}
		})
	}
}

func TestFromString(t *testing.T) {
	d, err := FromString("1s")
	if err != nil {
		t.Fatalf("FromString(1s) error: %v", err)
	}
	if d.Milliseconds() != 1000 {
		t.Errorf("Milliseconds() = %v, want 1000", d.Milliseconds())
	}

	d, err = FromString("1y")
	if err != nil {
		t.Fatalf("FromString(1y) error: %v", err)
	}
	if d.Milliseconds() != 31536000000 {
		t.Errorf("Milliseconds() = %v, want 31536000000", d.Milliseconds())
	}
}

func TestFromString_Invalid(t *testing.T) {
	d, err := FromString("invalid")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("FromString(invalid) error = %v, want ErrInvalidFormat", err)
	}
	if !d.IsZero() {
		t.Errorf("FromString(invalid) = %v, want zero", d.Milliseconds())
	}
}

func TestMustParse(t *testing.T) {
	if got := MustParse("2h").Hours(); got != 2 {
		t.Errorf("MustParse(2h).Hours() = %v, want 2", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustParse(bad) should panic")
		}
	}()
	MustParse("bad")
}

func TestUnitConstructors(t *testing.T) {
	tests := []struct {
		name string
		d    Duration
		want float64
	}{
		{"milliseconds", FromMilliseconds(42), 42},
		{"seconds", FromSeconds(2), 2000},
		{"minutes", FromMinutes(3), 180000},
		{"hours", FromHours(1.5), 5400000},
		{"days", FromDays(2), 172800000},
		{"weeks", FromWeeks(0.5), 302400000},
		{"months", FromMonths(1), 2592000000},
		{"years", FromYears(1), 31536000000},
		{"new", New(5000), 5000},
		{"negative", FromSeconds(-3), -3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Milliseconds(); got != tt.want {
				t.Errorf("Milliseconds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"milliseconds", New(100).Milliseconds(), 100},
		{"seconds", MustParse("1s").Seconds(), 1},
		{"minutes", MustParse("1m").Minutes(), 1},
		{"hours", MustParse("1h").Hours(), 1},
		{"days", MustParse("1d").Days(), 1},
		{"weeks", MustParse("1w").Weeks(), 1},
		{"months", MustParse("30d").Months(), 1},
		{"years", MustParse("365d").Years(), 1},
		{"fractional hours", New(5400000).Hours(), 1.5},
		{"fractional minutes", FromSeconds(90).Minutes(), 1.5},
		{"weeks in days", FromWeeks(0.5).Days(), 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	a := MustParse("1s")
	b := MustParse("2s")

	got := a.Add(b)
	if got.Seconds() != 3 {
		t.Errorf("Add().Seconds() = %v, want 3", got.Seconds())
	}

	// Operands are unchanged.
	if a.Seconds() != 1 || b.Seconds() != 2 {
		t.Errorf("operands changed: a=%v b=%v", a.Seconds(), b.Seconds())
	}

	if got := MustParse("5s").Add(New(0)); got.Seconds() != 5 {
		t.Errorf("Add(zero).Seconds() = %v, want 5", got.Seconds())
	}
}

func TestSubtract(t *testing.T) {
	got := MustParse("5s").Subtract(MustParse("2s"))
	if got.Milliseconds() != 3000 {
		t.Errorf("Subtract() = %v, want 3000", got.Milliseconds())
	}

	neg := MustParse("2s").Subtract(MustParse("5s"))
	if neg.Seconds() != -3 {
		t.Errorf("Subtract() negative = %v, want -3", neg.Seconds())
	}
	if neg.Milliseconds() != -3000 {
		t.Errorf("Subtract() negative ms = %v, want -3000", neg.Milliseconds())
	}
}

func TestMultiply(t *testing.T) {
	d := MustParse("2s")

	tests := []struct {
		factor float64
		want   float64
	}{
		{3, 6000},
		{0, 0},
		{-1, -2000},
		{0.5, 1000},
		{1, 2000},
	}
	for _, tt := range tests {
		if got := d.Multiply(tt.factor).Milliseconds(); got != tt.want {
			t.Errorf("Multiply(%v) = %v, want %v", tt.factor, got, tt.want)
		}
	}

	if d.Seconds() != 2 {
		t.Errorf("receiver changed: %v", d.Seconds())
	}
}

func TestDivide(t *testing.T) {
	d := MustParse("6s")

	got, err := d.Divide(2)
	if err != nil {
		t.Fatalf("Divide(2) error: %v", err)
	}
	if got.Seconds() != 3 {
		t.Errorf("Divide(2).Seconds() = %v, want 3", got.Seconds())
	}

	got, err = d.Divide(-3)
	if err != nil {
		t.Fatalf("Divide(-3) error: %v", err)
	}
	if got.Seconds() != -2 {
		t.Errorf("Divide(-3).Seconds() = %v, want -2", got.Seconds())
	}

	got, err = d.Divide(0.5)
	if err != nil {
		t.Fatalf("Divide(0.5) error: %v", err)
	}
	if got.Seconds() != 12 {
		t.Errorf("Divide(0.5).Seconds() = %v, want 12", got.Seconds())
	}
}

func TestDivide_ByZero(t *testing.T) {
	_, err := MustParse("5s").Divide(0)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Divide(0) error = %v, want ErrDivisionByZero", err)
	}

	_, err = MustParse("5s").Divide(math.Copysign(0, -1))
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Divide(-0) error = %v, want ErrDivisionByZero", err)
	}
}

var identityValues = []Duration{
	New(0),
	New(1),
	New(-1500),
	MustParse("1y"),
	From(Components{Days: 2, Hours: 3, Minutes: 45, Seconds: 30}),
	FromHours(1.5),
}

func TestArithmeticIdentities(t *testing.T) {
	for _, a := range identityValues {
		for _, b := range identityValues {
			if !a.Add(b).Subtract(b).Equal(a) {
				t.Errorf("%v + %v - %v != %v", a.Milliseconds(), b.Milliseconds(), b.Milliseconds(), a.Milliseconds())
			}
		}

		if !a.Multiply(1).Equal(a) {
			t.Errorf("%v * 1 != itself", a.Milliseconds())
		}

		// Reciprocals of powers of two are exact.
		for _, f := range []float64{2, 4, 0.5, -8} {
			q, err := a.Divide(f)
			if err != nil {
				t.Fatalf("Divide(%v) error: %v", f, err)
			}
			if !q.Equal(a.Multiply(1 / f)) {
				t.Errorf("%v / %v != %v * (1/%v)", a.Milliseconds(), f, a.Milliseconds(), f)
			}
		}
	}
}

func TestComparisons(t *testing.T) {
	one := MustParse("1s")
	two := MustParse("2s")

	if !one.Equal(MustParse("1000ms")) {
		t.Error("1s should equal 1000ms")
	}
	if one.Equal(two) {
		t.Error("1s should not equal 2s")
	}
	if !two.GreaterThan(one) || one.GreaterThan(two) {
		t.Error("GreaterThan wrong")
	}
	if !one.LessThan(two) || two.LessThan(one) {
		t.Error("LessThan wrong")
	}
	if !one.GreaterThanOrEqual(one) || !two.GreaterThanOrEqual(one) || one.GreaterThanOrEqual(two) {
		t.Error("GreaterThanOrEqual wrong")
	}
	if !one.LessThanOrEqual(one) || !one.LessThanOrEqual(two) || two.LessThanOrEqual(one) {
		t.Error("LessThanOrEqual wrong")
	}
}

func TestOrderingTotality(t *testing.T) {
	for _, a := range identityValues {
		for _, b := range identityValues {
			holds := 0
			for _, ok := range []bool{a.Equal(b), a.GreaterThan(b), a.LessThan(b)} {
				if ok {
					holds++
				}
			}
			if holds != 1 {
				t.Errorf("a=%v b=%v: %d of Equal/GreaterThan/LessThan hold, want 1", a.Milliseconds(), b.Milliseconds(), holds)
			}

			if a.GreaterThanOrEqual(b) != (a.GreaterThan(b) || a.Equal(b)) {
				t.Errorf("a=%v b=%v: GreaterThanOrEqual mismatch", a.Milliseconds(), b.Milliseconds())
			}
			if a.LessThanOrEqual(b) != (a.LessThan(b) || a.Equal(b)) {
				t.Errorf("a=%v b=%v: LessThanOrEqual mismatch", a.Milliseconds(), b.Milliseconds())
			}

			want := 0
			switch {
			case a.LessThan(b):
				want = -1
			case a.GreaterThan(b):
				want = 1
			}
			if got := a.Compare(b); got != want {
				t.Errorf("Compare(%v, %v) = %d, want %d", a.Milliseconds(), b.Milliseconds(), got, want)
			}
		}
	}
}

func TestStd(t *testing.T) {
	if got := FromStd(1500 * time.Millisecond).Milliseconds(); got != 1500 {
		t.Errorf("FromStd(1.5s) = %v, want 1500", got)
	}
	if got := New(1.5).Std(); got != 1500*time.Microsecond {
		t.Errorf("New(1.5).Std() = %v, want 1.5ms", got)
	}
	if got := MustParse("2h").Std(); got != 2*time.Hour {
		t.Errorf("Std() = %v, want 2h", got)
	}
	if got := New(math.Inf(1)).Std(); got != time.Duration(math.MaxInt64) {
		t.Errorf("Std() of +Inf = %v, want max", got)
	}
	if got := New(math.Inf(-1)).Std(); got != time.Duration(math.MinInt64) {
		t.Errorf("Std() of -Inf = %v, want min", got)
	}
	if got := New(math.NaN()).Std(); got != 0 {
		t.Errorf("Std() of NaN = %v, want 0", got)
	}
}

func TestConcurrentReads(t *testing.T) {
	d := From(Components{Days: 1, Hours: 2, Minutes: 30})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = d.Add(New(float64(j)))
				_ = d.Format(FormatOptions{Short: true})
			}
		}()
	}
	wg.Wait()

	if d.Milliseconds() != 95400000 {
		t.Errorf("shared value changed: %v", d.Milliseconds())
	}
}
