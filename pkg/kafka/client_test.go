package kafka

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"health-dashboard-go/pkg/tasks"
)

func TestBrokerList(t *testing.T) {
	testCases := []struct {
		in          string
		want        []string
		description string
	}{
		{"localhost:9092", []string{"localhost:9092"}, "Single broker"},
		{"a:9092, b:9092 ,", []string{"a:9092", "b:9092"}, "Comma separated with blanks"},
		{"", nil, "Empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := brokerList(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

type flakyProcessor struct {
	failures int
	calls    int
	onCall   func()
}

func (p *flakyProcessor) Process(ctx context.Context, task tasks.ChatTurnTask) error {
	p.calls++
	if p.onCall != nil {
		p.onCall()
	}
	if p.calls <= p.failures {
		return errors.New("insert failed")
	}
	return nil
}

type memoryCounter struct {
	counts map[string]int64
	err    error
	resets int
}

func (c *memoryCounter) Incr(ctx context.Context, key string) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.counts[key]++
	return c.counts[key], nil
}

func (c *memoryCounter) Reset(ctx context.Context, key string) {
	c.resets++
	delete(c.counts, key)
}

func TestProcessWithRetry(t *testing.T) {
	const key = "kafka:attempts:chat-turns:0:7"

	testCases := []struct {
		failures    int
		prior       int64
		counterErr  error
		wantCommit  bool
		wantCalls   int
		description string
	}{
		{0, 0, nil, true, 1, "Succeeds first time"},
		{2, 0, nil, true, 3, "Succeeds on third attempt"},
		{5, 0, nil, true, maxAttempts, "Gives up after max attempts"},
		{5, 2, nil, true, 1, "Attempts carried over from a previous run"},
		{5, 0, errors.New("redis down"), true, maxAttempts, "Counts locally when Redis fails"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			p := &flakyProcessor{failures: tc.failures}
			counter := &memoryCounter{counts: map[string]int64{key: tc.prior}, err: tc.counterErr}

			got := processWithRetry(context.Background(), p, counter, key, tasks.ChatTurnTask{UserID: 1}, 0)
			if got != tc.wantCommit {
				t.Errorf("Expected commit=%v, got %v", tc.wantCommit, got)
			}
			if p.calls != tc.wantCalls {
				t.Errorf("Expected %d calls, got %d", tc.wantCalls, p.calls)
			}
			if tc.counterErr == nil {
				if _, ok := counter.counts[key]; ok {
					t.Errorf("Expected attempt counter to be cleared, got %d", counter.counts[key])
				}
			}
		})
	}
}

func TestProcessWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &flakyProcessor{failures: 10, onCall: cancel}
	counter := &memoryCounter{counts: map[string]int64{}}

	if processWithRetry(ctx, p, counter, "k", tasks.ChatTurnTask{UserID: 1}, 0) {
		t.Error("Expected no commit after cancellation")
	}
	if p.calls != 1 {
		t.Errorf("Expected a single attempt, got %d", p.calls)
	}
}
