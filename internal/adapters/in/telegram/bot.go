package telegram

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	pollTimeoutSeconds = 60
	workerQueueSize    = 64
	drainTimeout       = 10 * time.Second
)

// ErrUpdatesClosed is returned by Run when the update stream ends while the
// bot is still supposed to be polling.
var ErrUpdatesClosed = errors.New("telegram update stream closed")

type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

// Bot long-polls for updates and fans them out to a fixed set of workers.
// Updates of one user always land on the same worker, so they are handled in
// the order they arrived while different users proceed in parallel.
type Bot struct {
	api     API
	handler UpdateHandler
	workers int
	logger  *slog.Logger
}

func NewBot(api API, handler UpdateHandler, workers int, logger *slog.Logger) *Bot {
	if workers < 1 {
		workers = 1
	}
	return &Bot{
		api:     api,
		handler: handler,
		workers: workers,
		logger:  logger.With("component", "telegram_bot"),
	}
}

// Run polls until ctx is cancelled. Queued updates are drained before it returns;
// they keep a live context for up to drainTimeout after ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds

	b.logger.Info("Polling for updates", "workers", b.workers)
	err := b.dispatch(ctx, b.api.GetUpdatesChan(cfg))
	b.logger.Info("Stopped polling")
	return err
}

func (b *Bot) dispatch(ctx context.Context, updates <-chan tgbotapi.Update) error {
	workCtx, cancelWork := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelWork()
	stopDrainTimer := context.AfterFunc(ctx, func() {
		time.AfterFunc(drainTimeout, cancelWork)
	})
	defer stopDrainTimer()

	queues := make([]chan tgbotapi.Update, b.workers)
	var wg sync.WaitGroup
	for i := range queues {
		queues[i] = make(chan tgbotapi.Update, workerQueueSize)
		wg.Add(1)
		go func(queue <-chan tgbotapi.Update) {
			defer wg.Done()
			for u := range queue {
				b.process(workCtx, u)
			}
		}(queues[i])
	}

	defer func() {
		for _, q := range queues {
			close(q)
		}
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case u, ok := <-updates:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrUpdatesClosed
			}
			select {
			case queues[shard(u, b.workers)] <- u:
			case <-ctx.Done():
				b.api.StopReceivingUpdates()
				return nil
			}
		}
	}
}

// process isolates a panicking handler to the update that caused it.
func (b *Bot) process(ctx context.Context, u tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "Update handler panicked",
				"update_id", u.UpdateID, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	b.handler.HandleUpdate(ctx, u)
}

func shard(u tgbotapi.Update, n int) int {
	id := senderID(u)
	if id < 0 {
		id = -id
	}
	return int(id % int64(n))
}

func senderID(u tgbotapi.Update) int64 {
	switch {
	case u.Message != nil && u.Message.From != nil:
		return u.Message.From.ID
	case u.CallbackQuery != nil && u.CallbackQuery.From != nil:
		return u.CallbackQuery.From.ID
	default:
		return 0
	}
}
