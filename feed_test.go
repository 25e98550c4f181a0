package pie

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func newSyncFeed(t *testing.T, ctx context.Context, clock *clockz.FakeClock, initial string) (*Feed, *Chart, chan []byte) {
	t.Helper()
	ch := make(chan []byte, 16)
	ch <- []byte(initial)

	chart := newSyncChart(clock)
	feed := NewFeed(chart, NewSyncChannelSource(ch)).SyncMode()
	if err := feed.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return feed, chart, ch
}

func TestFeedInitialDataset(t *testing.T) {
	ctx := context.Background()
	clock := clockz.NewFakeClock()
	_, chart, _ := newSyncFeed(t, ctx, clock, `{"values": [10]}`)

	if chart.State() != StateAnimating {
		t.Fatalf("state = %v, want StateAnimating after initial dataset", chart.State())
	}
	settle(t, ctx, chart, clock)

	got := chart.Values()
	if len(got) != 1 || got[0] != 10 {
		t.Errorf("Values() = %v, want [10]", got)
	}
}

func TestFeedSerializesGrowth(t *testing.T) {
	ctx := context.Background()
	clock := clockz.NewFakeClock()
	feed, chart, ch := newSyncFeed(t, ctx, clock, `{"values": [10]}`)
	settle(t, ctx, chart, clock)

	// A three-slice dataset against a one-slice chart needs two single-step
	// reloads; the settle callback chains them.
	ch <- []byte(`{"values": [1, 2, 3]}`)
	if !feed.Process(ctx) {
		t.Fatal("Process() found no pending change")
	}
	if got := chart.Values(); !reflect.DeepEqual(got, []float64{1, 2}) {
		t.Fatalf("first step Values() = %v, want [1 2]", got)
	}

	settle(t, ctx, chart, clock)
	if chart.State() != StateAnimating {
		t.Fatal("settle did not chain the next step")
	}
	if got := chart.Values(); !reflect.DeepEqual(got, []float64{1, 2, 3}) {
		t.Fatalf("second step Values() = %v, want [1 2 3]", got)
	}

	settle(t, ctx, chart, clock)
	if feed.LastError() != nil {
		t.Errorf("LastError() = %v, want nil", feed.LastError())
	}
}

func TestFeedSerializesShrinkage(t *testing.T) {
	ctx := context.Background()
	clock := clockz.NewFakeClock()
	feed, chart, ch := newSyncFeed(t, ctx, clock, `{"values": [1, 2, 3]}`)
	for chart.State() == StateAnimating {
		settle(t, ctx, chart, clock)
	}

	ch <- []byte(`{"values": [5]}`)
	if !feed.Process(ctx) {
		t.Fatal("Process() found no pending change")
	}
	// First step truncates to [1 2], the second lands on the target.
	if got := chart.Values(); !reflect.DeepEqual(got, []float64{1, 2}) {
		t.Fatalf("first step Values() = %v, want [1 2]", got)
	}
	settle(t, ctx, chart, clock)
	settle(t, ctx, chart, clock)
	if got := chart.Values(); !reflect.DeepEqual(got, []float64{5}) {
		t.Errorf("final Values() = %v, want [5]", got)
	}
}

func TestFeedRejectsInvalidDataset(t *testing.T) {
	ctx := context.Background()
	clock := clockz.NewFakeClock()
	feed, chart, ch := newSyncFeed(t, ctx, clock, `{"values": [10]}`)
	settle(t, ctx, chart, clock)

	ch <- []byte(`{"values": [-1]}`)
	feed.Process(ctx)
	if !errors.Is(feed.LastError(), ErrInvalidInput) {
		t.Errorf("LastError() = %v, want ErrInvalidInput", feed.LastError())
	}
	if got := chart.Values(); !reflect.DeepEqual(got, []float64{10}) {
		t.Errorf("Values() = %v, want untouched [10]", got)
	}

	ch <- []byte(`not: [valid`)
	feed.Process(ctx)
	if feed.LastError() == nil {
		t.Error("LastError() = nil, want decode error")
	}
}

func TestFeedSpeedSetsDuration(t *testing.T) {
	ctx := context.Background()
	clock := clockz.NewFakeClock()
	_, chart, _ := newSyncFeed(t, ctx, clock, `{"values": [10], "speed": 0.25}`)

	if chart.duration != 250*time.Millisecond {
		t.Errorf("duration = %v, want 250ms", chart.duration)
	}
	clock.Advance(250 * time.Millisecond)
	if !chart.Pump(ctx) {
		t.Error("chart did not settle within the configured speed")
	}
}

func TestFeedYAMLDataset(t *testing.T) {
	ctx := context.Background()
	clock := clockz.NewFakeClock()
	_, chart, _ := newSyncFeed(t, ctx, clock, "values:\n  - 10\n  - 30\n")
	settle(t, ctx, chart, clock)

	if got := chart.Values(); !reflect.DeepEqual(got, []float64{10, 30}) {
		t.Errorf("Values() = %v, want [10 30]", got)
	}
}

func TestFeedStartTwice(t *testing.T) {
	ctx := context.Background()
	clock := clockz.NewFakeClock()
	feed, chart, _ := newSyncFeed(t, ctx, clock, `{"values": [10]}`)
	settle(t, ctx, chart, clock)

	if err := feed.Start(ctx); err == nil {
		t.Error("second Start() succeeded, want error")
	}
}

func TestSerializeSteps(t *testing.T) {
	tests := []struct {
		name    string
		current []float64
		target  []float64
		want    [][]float64
	}{
		{"same values", []float64{1, 2}, []float64{1, 2}, nil},
		{"update only", []float64{1, 2}, []float64{3, 4}, [][]float64{{3, 4}}},
		{"grow by one", []float64{1}, []float64{1, 2}, [][]float64{{1, 2}}},
		{"grow by two", nil, []float64{1, 2}, [][]float64{{1}, {1, 2}}},
		{"grow by three", []float64{9}, []float64{1, 2, 3, 4}, [][]float64{{1, 2}, {1, 2, 3}, {1, 2, 3, 4}}},
		{"shrink by one", []float64{1, 2}, []float64{5}, [][]float64{{5}}},
		{"shrink by two", []float64{1, 2, 3}, []float64{5}, [][]float64{{1, 2}, {5}}},
		{"shrink to empty", []float64{1, 2, 3}, nil, [][]float64{{1, 2}, {1}, nil}},
		{"empty to empty", nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializeSteps(tt.current, tt.target)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("serializeSteps(%v, %v) = %v, want %v", tt.current, tt.target, got, tt.want)
			}
		})
	}
}

func TestDatasetValidate(t *testing.T) {
	tests := []struct {
		name string
		ds   Dataset
		want error
	}{
		{"valid", Dataset{Values: []float64{1, 2}}, nil},
		{"empty", Dataset{}, nil},
		{"negative value", Dataset{Values: []float64{-1}}, ErrInvalidInput},
		{"zero total", Dataset{Values: []float64{0, 0}}, ErrZeroTotal},
		{"negative speed", Dataset{Values: []float64{1}, Speed: -1}, ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ds.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCodecs(t *testing.T) {
	var ds Dataset
	if err := (JSONCodec{}).Unmarshal([]byte(`{"values": [1, 2]}`), &ds); err != nil {
		t.Fatalf("JSONCodec.Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(ds.Values, []float64{1, 2}) {
		t.Errorf("JSON values = %v, want [1 2]", ds.Values)
	}

	ds = Dataset{}
	if err := (YAMLCodec{}).Unmarshal([]byte("values: [3, 4]\n"), &ds); err != nil {
		t.Fatalf("YAMLCodec.Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(ds.Values, []float64{3, 4}) {
		t.Errorf("YAML values = %v, want [3 4]", ds.Values)
	}

	// AutoCodec sniffs the format per payload.
	for _, raw := range []string{`{"values": [5]}`, "values: [5]\n"} {
		ds = Dataset{}
		if err := (AutoCodec{}).Unmarshal([]byte(raw), &ds); err != nil {
			t.Fatalf("AutoCodec.Unmarshal(%q) error = %v", raw, err)
		}
		if !reflect.DeepEqual(ds.Values, []float64{5}) {
			t.Errorf("auto values for %q = %v, want [5]", raw, ds.Values)
		}
	}
}
