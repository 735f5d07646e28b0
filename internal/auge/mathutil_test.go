package auge

import (
	"math"
	"testing"
	"time"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name        string
		v, min, max float64
		want        float64
	}{
		{"below", -5, 0, 100, 0},
		{"above", 140, 0, 100, 100},
		{"inside", 42, 0, 100, 42},
		{"at min", 0, 0, 100, 0},
		{"at max", 100, 0, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clamp(tt.v, tt.min, tt.max); got != tt.want {
				t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestSafeExp(t *testing.T) {
	if got := safeExp(0); got != 1 {
		t.Errorf("safeExp(0) = %v, want 1", got)
	}
	if got := safeExp(-1); !approx(got, 0.3679, 0.001) {
		t.Errorf("safeExp(-1) = %v, want ~0.3679", got)
	}
	if got := safeExp(1e6); got != 0 {
		t.Errorf("safeExp(1e6) = %v, want 0 (overflow coerced)", got)
	}
	if got := safeExp(math.NaN()); got != 0 {
		t.Errorf("safeExp(NaN) = %v, want 0", got)
	}
	if got := safeExp(math.Inf(1)); got != 0 {
		t.Errorf("safeExp(+Inf) = %v, want 0", got)
	}
}

func TestDecayFactor(t *testing.T) {
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		window  float64
		want    float64
	}{
		{"fresh", 0, 72, 1},
		{"future timestamp", -2 * time.Hour, 72, 1},
		{"half window", 36 * time.Hour, 72, 0.5},
		{"window elapsed", 72 * time.Hour, 72, 0},
		{"beyond window", 100 * time.Hour, 72, 0},
		{"zero window", time.Hour, 0, 0},
		{"negative window", time.Hour, -5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decayFactor(base.Add(tt.elapsed), base, tt.window)
			if !approx(got, tt.want, 1e-9) {
				t.Errorf("decayFactor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHalfLifeDecay(t *testing.T) {
	if got := halfLifeDecay(0, 28); got != 1 {
		t.Errorf("no elapsed time should retain full load, got %v", got)
	}
	if got := halfLifeDecay(28, 28); !approx(got, 0.5, 1e-6) {
		t.Errorf("one half-life = %v, want 0.5", got)
	}
	if got := halfLifeDecay(56, 28); !approx(got, 0.25, 1e-6) {
		t.Errorf("two half-lives = %v, want 0.25", got)
	}
	if got := halfLifeDecay(10, 0); got != 0 {
		t.Errorf("zero half-life must be guarded, got %v", got)
	}
	if got := halfLifeDecay(10, -4); got != 0 {
		t.Errorf("negative half-life must be guarded, got %v", got)
	}
	if got := halfLifeDecay(-1, 28); got != 0 {
		t.Errorf("negative elapsed hours must be guarded, got %v", got)
	}
}

func TestHoursSince(t *testing.T) {
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if got := hoursSince(base, base.Add(-3*time.Hour)); !approx(got, 3, 1e-9) {
		t.Errorf("hoursSince = %v, want 3", got)
	}
	if got := hoursSince(base, base.Add(2*time.Hour)); got != 0 {
		t.Errorf("future timestamps should floor at 0, got %v", got)
	}
}
