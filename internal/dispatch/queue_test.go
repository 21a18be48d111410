package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	t.Parallel()
	q := newQueue[int]()
	for i := 0; i < 100; i++ {
		if err := q.push(i); err != nil {
			t.Fatal(err)
		}
	}
	if q.len() != 100 {
		t.Fatalf("len = %d, want 100", q.len())
	}
	for i := 0; i < 100; i++ {
		v, err := q.pop(context.Background())
		if err != nil || v != i {
			t.Fatalf("pop = %d, %v; want %d", v, err, i)
		}
	}
}

func TestQueue_PopWaitsForPush(t *testing.T) {
	t.Parallel()
	q := newQueue[string]()
	got := make(chan string, 1)
	go func() {
		v, _ := q.pop(context.Background())
		got <- v
	}()

	select {
	case v := <-got:
		t.Fatalf("pop returned %q before any push", v)
	case <-time.After(20 * time.Millisecond):
	}

	_ = q.push("job")
	select {
	case v := <-got:
		if v != "job" {
			t.Errorf("pop = %q", v)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("pop did not wake up after push")
	}
}

func TestQueue_CloseDrainsThenFails(t *testing.T) {
	t.Parallel()
	q := newQueue[int]()
	_ = q.push(1)
	_ = q.push(2)
	q.close()
	q.close()

	if err := q.push(3); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("push after close: %v", err)
	}
	for _, want := range []int{1, 2} {
		if v, err := q.pop(context.Background()); err != nil || v != want {
			t.Fatalf("pop = %d, %v; want %d", v, err, want)
		}
	}
	if _, err := q.pop(context.Background()); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("pop on drained closed queue: %v", err)
	}
}

func TestQueue_CloseWakesBlockedPop(t *testing.T) {
	t.Parallel()
	q := newQueue[int]()
	done := make(chan error, 1)
	go func() {
		_, err := q.pop(context.Background())
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	q.close()

	select {
	case err := <-done:
		if !errors.Is(err, ErrQueueClosed) {
			t.Errorf("err = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("blocked pop not released by close")
	}
}

func TestQueue_PopHonoursContext(t *testing.T) {
	t.Parallel()
	q := newQueue[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := q.pop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}
