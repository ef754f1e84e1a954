package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")
var errFatal = errors.New("fatal")

func TestExecuteRetriesUntilSuccess(t *testing.T) {
	calls := 0
	p := NewPolicy(3, time.Millisecond, nil)
	err := p.Execute(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}

func TestExecuteGivesUp(t *testing.T) {
	calls := 0
	p := NewPolicy(2, time.Millisecond, nil)
	err := p.Execute(context.Background(), func(context.Context) error {
		calls++
		return errTransient
	})
	if !errors.Is(err, errTransient) || calls != 2 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}

func TestExecuteStopsOnNonRetryable(t *testing.T) {
	calls := 0
	p := NewPolicy(5, time.Millisecond, func(err error) bool { return !errors.Is(err, errFatal) })
	err := p.Execute(context.Background(), func(context.Context) error {
		calls++
		return errFatal
	})
	if err != errFatal || calls != 1 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}

func TestExecuteHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPolicy(5, time.Hour, nil)
	calls := 0
	err := p.Execute(ctx, func(context.Context) error {
		calls++
		cancel()
		return errTransient
	})
	if !errors.Is(err, context.Canceled) || calls != 1 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}
