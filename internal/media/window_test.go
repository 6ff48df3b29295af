package media

import (
	"testing"
	"time"
)

func TestPlanWindows(t *testing.T) {
	tests := []struct {
		name      string
		total     time.Duration
		size      time.Duration
		wantDurs  []time.Duration
		wantError bool
	}{
		{
			name:     "45 minute lecture in 20 minute windows",
			total:    45 * time.Minute,
			size:     20 * time.Minute,
			wantDurs: []time.Duration{1200 * time.Second, 1200 * time.Second, 300 * time.Second},
		},
		{
			name:     "exact multiple has no empty tail",
			total:    40 * time.Minute,
			size:     20 * time.Minute,
			wantDurs: []time.Duration{20 * time.Minute, 20 * time.Minute},
		},
		{
			name:     "shorter than one window",
			total:    90 * time.Second,
			size:     20 * time.Minute,
			wantDurs: []time.Duration{90 * time.Second},
		},
		{
			name:     "fractional duration",
			total:    2*time.Second + 500*time.Millisecond,
			size:     time.Second,
			wantDurs: []time.Duration{time.Second, time.Second, 500 * time.Millisecond},
		},
		{
			name:     "empty track",
			total:    0,
			size:     time.Minute,
			wantDurs: nil,
		},
		{
			name:      "zero window",
			total:     time.Minute,
			size:      0,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows, err := PlanWindows(tt.total, tt.size)
			if (err != nil) != tt.wantError {
				t.Fatalf("PlanWindows() error = %v, wantError %v", err, tt.wantError)
			}
			if len(windows) != len(tt.wantDurs) {
				t.Fatalf("len(windows) = %d, want %d", len(windows), len(tt.wantDurs))
			}
			for i, w := range windows {
				if w.Index != i {
					t.Errorf("windows[%d].Index = %d", i, w.Index)
				}
				if w.Duration() != tt.wantDurs[i] {
					t.Errorf("windows[%d].Duration() = %s, want %s", i, w.Duration(), tt.wantDurs[i])
				}
			}
		})
	}
}

func TestPlanWindowsCoversTrack(t *testing.T) {
	size := 7 * time.Second
	for total := time.Second; total <= 60*time.Second; total += 500 * time.Millisecond {
		windows, err := PlanWindows(total, size)
		if err != nil {
			t.Fatal(err)
		}

		want := int((total + size - 1) / size)
		if len(windows) != want {
			t.Fatalf("total %s: %d windows, want %d", total, len(windows), want)
		}

		var next, sum time.Duration
		for _, w := range windows {
			if w.Start != next {
				t.Fatalf("total %s: window %d starts at %s, want %s", total, w.Index, w.Start, next)
			}
			if d := w.Duration(); d <= 0 || d > size {
				t.Fatalf("total %s: window %d has duration %s", total, w.Index, d)
			}
			next = w.End
			sum += w.Duration()
		}
		if next != total || sum != total {
			t.Fatalf("total %s: windows end at %s, sum %s", total, next, sum)
		}
	}
}
