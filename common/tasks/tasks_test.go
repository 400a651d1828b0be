package tasks

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	var count int32
	task := NewTask("count", 5*time.Millisecond, func() {
		atomic.AddInt32(&count, 1)
	})
	time.Sleep(50 * time.Millisecond)
	task.Stop()
	got := atomic.LoadInt32(&count)
	if got == 0 {
		t.Fatal("task never ran")
	}
	time.Sleep(20 * time.Millisecond)
	if atomic.LoadInt32(&count) != got {
		t.Fatal("task kept running after Stop")
	}
	task.Stop()
}

func TestTaskSurvivesPanic(t *testing.T) {
	var count int32
	task := NewTask("panic", 5*time.Millisecond, func() {
		if atomic.AddInt32(&count, 1) == 1 {
			panic("boom")
		}
	})
	time.Sleep(50 * time.Millisecond)
	task.Stop()
	if atomic.LoadInt32(&count) < 2 {
		t.Fatal("task stopped after panic")
	}
}
