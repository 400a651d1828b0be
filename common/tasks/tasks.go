package tasks

import (
	"sync"
	"time"

	"miniroom/common/logs"
)

// Task 周期任务 每个interval执行一次job 直到Stop
type Task struct {
	Name     string
	ticker   *time.Ticker
	stopChan chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewTask 创建并立即启动一个周期任务
func NewTask(name string, interval time.Duration, job func()) *Task {
	task := &Task{
		ticker:   time.NewTicker(interval),
		stopChan: make(chan struct{}),
		Name:     name,
	}

	task.wg.Add(1)
	go func() {
		defer task.wg.Done()
		for {
			select {
			case <-task.ticker.C:
				task.run(job)
			case <-task.stopChan:
				return
			}
		}
	}()
	return task
}

// run 单次执行 panic不会终止后续的tick
func (t *Task) run(job func()) {
	defer func() {
		if err := recover(); err != nil {
			logs.Error("task %s panic:%v", t.Name, err)
		}
	}()
	job()
}

// Stop 停止任务 等待正在执行的job结束
func (t *Task) Stop() {
	t.ticker.Stop()
	t.once.Do(func() {
		close(t.stopChan)
	})
	t.wg.Wait()
}
