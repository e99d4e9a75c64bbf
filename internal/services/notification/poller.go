package notification

import (
	"context"
	"sync"
	"time"
)

// Poller периодически обновляет счётчик непрочитанных уведомлений.
// Владелец обязан вызвать Stop при завершении работы, иначе горутина
// опроса останется висеть на отброшенном контексте.
type Poller struct {
	counter  *Counter
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// StartPoller запускает фоновый опрос счётчика с заданным интервалом
func StartPoller(counter *Counter, interval time.Duration) *Poller {
	p := &Poller{
		counter:  counter,
		interval: interval,
		done:     make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Poller) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Первое значение загружаем сразу, не дожидаясь тика
	p.refresh()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.refresh()
		}
	}
}

// refresh выполняет один опрос, ограниченный интервалом по времени
func (p *Poller) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()
	p.counter.Refresh(ctx)
}

// Stop останавливает опрос. Повторный вызов безопасен.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
}
