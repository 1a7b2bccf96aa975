package kafka

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fluxfeed/streaming/v1/observability"
)

// State is the consumer lifecycle state.
type State int32

// Consumer lifecycle states. The normal path is
// Stopped -> Connecting -> Subscribed -> Running -> Stopped; an
// unrecoverable subscription error moves Running -> Failed, from which Stop
// transitions back to Stopped.
const (
	StateStopped State = iota
	StateConnecting
	StateSubscribed
	StateRunning
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateConnecting:
		return "connecting"
	case StateSubscribed:
		return "subscribed"
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Consumer subscribes to one or more topics with a consumer group,
// deserializes each received message through the schema registry, and
// dispatches it to the handler registered for the record's full name.
//
// A message that fails to decode is reported through the observer and logger
// and then skipped; one poison message never halts the stream. Whether its
// offset is committed is governed by Config.CommitPolicy.
//
// With Workers = 1 (the default), handlers observe messages in
// broker-assigned order within each partition. With Workers > 1, messages
// are processed concurrently and cross-message ordering within a partition
// is not guaranteed.
type Consumer struct {
	// cfg stores the configuration for this consumer
	cfg Config

	// reader is the Kafka reader used for consuming messages. It is
	// guarded by readerMu: Stop detaches it so a later Start builds a
	// fresh subscription. The run loops never read this field; they hold
	// the reader they were started with.
	reader   messageReader
	readerMu sync.Mutex

	// decoder deserializes wire-format payloads
	decoder Decoder

	// handlers maps Avro record full names to their handlers
	handlers   map[string]Handler
	handlersMu sync.RWMutex

	// state holds the current lifecycle State
	state atomic.Int32

	// run-loop plumbing, re-created by each Start
	queue         chan kafka.Message
	stopping      chan struct{}
	done          chan struct{}
	pollCancel    context.CancelFunc
	handlerCancel context.CancelFunc
	stopOnce      *sync.Once

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	// logger is the optional structured logger
	logger Logger
}

// NewConsumer creates a consumer that decodes messages with the given
// decoder. Handlers are registered with RegisterHandler before Start.
//
// Example:
//
//	consumer, err := kafka.NewConsumer(kafka.Config{
//	    Brokers: []string{"localhost:9092"},
//	    Topics:  []string{"user-registration"},
//	    GroupID: "stream-core-group",
//	}, serializer)
//	if err != nil {
//	    return err
//	}
//	consumer.RegisterHandler("com.fluxfeed.streaming.UserRegistration", onUserRegistration)
//	if err := consumer.Start(ctx); err != nil {
//	    return err
//	}
//	defer consumer.Stop()
func NewConsumer(cfg Config, decoder Decoder) (*Consumer, error) {
	cfg = applyConsumerDefaults(cfg)

	if len(cfg.Topics) == 0 {
		return nil, ErrNoTopics
	}
	if cfg.CommitPolicy != CommitAlways && cfg.CommitPolicy != CommitOnSuccess {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCommitPolicy, cfg.CommitPolicy)
	}

	return &Consumer{
		cfg:      cfg,
		decoder:  decoder,
		handlers: make(map[string]Handler),
	}, nil
}

// WithObserver attaches an observer to the consumer for tracking operations.
// Returns the consumer for method chaining.
func (c *Consumer) WithObserver(observer observability.Observer) *Consumer {
	c.observer = observer
	return c
}

// WithLogger attaches a structured logger.
// Returns the consumer for method chaining.
func (c *Consumer) WithLogger(logger Logger) *Consumer {
	c.logger = logger
	return c
}

// RegisterHandler registers the handler invoked for every decoded record
// whose Avro full name matches name. Registering the same name again
// replaces the previous handler. Decoded records without a handler are
// reported through the observer (ErrNoHandler) and skipped.
func (c *Consumer) RegisterHandler(name string, handler Handler) {
	c.handlersMu.Lock()
	c.handlers[name] = handler
	c.handlersMu.Unlock()
}

// State returns the consumer's current lifecycle state.
func (c *Consumer) State() State {
	return State(c.state.Load())
}

// Start subscribes to the configured topics and launches the poll loop and
// handler workers. It returns ErrNotStopped when the consumer is already
// started, and a subscription error when the reader cannot be created.
//
// The passed context cancels polling only; handler shutdown is governed by
// Stop and ShutdownGrace.
func (c *Consumer) Start(ctx context.Context) error {
	if !c.state.CompareAndSwap(int32(StateStopped), int32(StateConnecting)) {
		return fmt.Errorf("%w: state %s", ErrNotStopped, c.State())
	}

	c.readerMu.Lock()
	if c.reader == nil {
		reader, err := createReader(c.cfg, c.logger)
		if err != nil {
			c.readerMu.Unlock()
			c.state.Store(int32(StateStopped))
			return err
		}
		c.reader = reader
	}
	reader := c.reader
	c.readerMu.Unlock()
	c.state.Store(int32(StateSubscribed))

	pollCtx, pollCancel := context.WithCancel(ctx)
	// Handlers get their own context so that canceling the poll loop does
	// not interrupt in-flight work; Stop cancels it after the grace period.
	handlerCtx, handlerCancel := context.WithCancel(context.Background())

	c.pollCancel = pollCancel
	c.handlerCancel = handlerCancel
	c.queue = make(chan kafka.Message, c.cfg.QueueDepth)
	c.stopping = make(chan struct{})
	c.done = make(chan struct{})
	c.stopOnce = &sync.Once{}

	// The loops receive the reader and channels they run against rather
	// than reading them off the struct: workers abandoned by a forced Stop
	// must keep a valid reader even after a later Start replaces the
	// struct fields.
	queue, stopping, done := c.queue, c.stopping, c.done

	var workers sync.WaitGroup
	for i := 0; i < c.cfg.Workers; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			c.workerLoop(handlerCtx, reader, queue, stopping)
		}()
	}

	go func() {
		workers.Wait()
		close(done)
	}()

	go c.pollLoop(pollCtx, reader, queue)

	c.state.Store(int32(StateRunning))

	if c.logger != nil {
		c.logger.InfoWithContext(ctx, "Consumer started", nil, map[string]interface{}{
			"topics":   c.cfg.Topics,
			"group_id": c.cfg.GroupID,
			"workers":  c.cfg.Workers,
		})
	}
	return nil
}

// pollLoop fetches messages from the broker and feeds the worker queue
// until the context is canceled or the subscription fails.
func (c *Consumer) pollLoop(ctx context.Context, reader messageReader, queue chan<- kafka.Message) {
	defer close(queue)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				if c.logger != nil {
					c.logger.InfoWithContext(ctx, "Stopping poll loop due to cancellation", nil, map[string]interface{}{
						"group_id": c.cfg.GroupID,
					})
				}
				return
			}

			// Unrecoverable subscription error: the stream is over.
			c.state.Store(int32(StateFailed))
			c.observeOperation("subscribe", c.cfg.GroupID, "", 0, err, 0)
			if c.logger != nil {
				c.logger.ErrorWithContext(ctx, "Consumer subscription failed", err, map[string]interface{}{
					"topics":   c.cfg.Topics,
					"group_id": c.cfg.GroupID,
				})
			}
			return
		}

		select {
		case queue <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// workerLoop pulls messages off the internal queue and processes them until
// the queue closes or the consumer begins stopping.
func (c *Consumer) workerLoop(ctx context.Context, reader messageReader, queue <-chan kafka.Message, stopping <-chan struct{}) {
	for {
		select {
		case <-stopping:
			return
		case msg, ok := <-queue:
			if !ok {
				return
			}
			c.handleMessage(ctx, reader, msg)
		}
	}
}

// handleMessage decodes one message and dispatches it to its handler.
// Decode failures and handler errors are reported and skipped; they never
// stop the worker.
func (c *Consumer) handleMessage(ctx context.Context, reader messageReader, msg kafka.Message) {
	start := time.Now()
	msgSize := int64(len(msg.Value))

	record, err := c.decoder.Decode(ctx, msg.Value)
	if err != nil {
		c.observeOperation("decode", msg.Topic, "", time.Since(start), err, msgSize)
		if c.logger != nil {
			c.logger.ErrorWithContext(ctx, "Skipping undecodable message", err, map[string]interface{}{
				"topic":     msg.Topic,
				"partition": msg.Partition,
				"offset":    msg.Offset,
			})
		}
		c.maybeCommitFailed(ctx, reader, msg)
		return
	}

	c.handlersMu.RLock()
	handler, ok := c.handlers[record.Name]
	c.handlersMu.RUnlock()
	if !ok {
		err := fmt.Errorf("%w: %s", ErrNoHandler, record.Name)
		c.observeOperation("dispatch", msg.Topic, record.Name, time.Since(start), err, msgSize)
		if c.logger != nil {
			c.logger.WarnWithContext(ctx, "No handler registered for record", err, map[string]interface{}{
				"record":    record.Name,
				"topic":     msg.Topic,
				"partition": msg.Partition,
				"offset":    msg.Offset,
			})
		}
		c.maybeCommitFailed(ctx, reader, msg)
		return
	}

	err = handler(ctx, ConsumedMessage{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Key:       msg.Key,
		Headers:   headerMap(msg.Headers),
		Record:    record,
	})
	c.observeOperation("dispatch", msg.Topic, record.Name, time.Since(start), err, msgSize)

	if err != nil {
		if c.logger != nil {
			c.logger.ErrorWithContext(ctx, "Handler failed", err, map[string]interface{}{
				"record":    record.Name,
				"topic":     msg.Topic,
				"partition": msg.Partition,
				"offset":    msg.Offset,
			})
		}
		c.maybeCommitFailed(ctx, reader, msg)
		return
	}

	c.commit(ctx, reader, msg)
}

// maybeCommitFailed commits a failed message's offset under CommitAlways;
// under CommitOnSuccess the offset stays uncommitted and the message is
// redelivered after a restart or rebalance.
func (c *Consumer) maybeCommitFailed(ctx context.Context, reader messageReader, msg kafka.Message) {
	if c.cfg.CommitPolicy == CommitAlways {
		c.commit(ctx, reader, msg)
	}
}

// commit commits the message's offset, logging on failure. Commit errors
// are not surfaced further: the message was already processed, and the
// worst case is redelivery.
func (c *Consumer) commit(ctx context.Context, reader messageReader, msg kafka.Message) {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		if c.logger != nil {
			c.logger.WarnWithContext(ctx, "Failed to commit offset", err, map[string]interface{}{
				"topic":     msg.Topic,
				"partition": msg.Partition,
				"offset":    msg.Offset,
			})
		}
	}
}

// Stop cancels polling, waits up to ShutdownGrace for in-flight handlers to
// finish, then abandons any still running and transitions to Stopped.
// Abandonment is best-effort: the handler goroutines cannot be killed, but
// their context is canceled so well-behaved handlers return promptly, and
// the subscription is torn down once the last of them has exited. No
// message is retried automatically on forced shutdown.
//
// Stop is safe to call multiple times and from any state; it is a no-op on
// a consumer that never started.
func (c *Consumer) Stop() {
	if c.stopOnce == nil {
		return
	}

	c.stopOnce.Do(func() {
		ctx := context.Background()
		if c.logger != nil {
			c.logger.InfoWithContext(ctx, "Stopping consumer", nil, map[string]interface{}{
				"group_id": c.cfg.GroupID,
			})
		}

		close(c.stopping)
		c.pollCancel()

		graceful := true
		select {
		case <-c.done:
		case <-time.After(c.cfg.ShutdownGrace):
			graceful = false
			if c.logger != nil {
				c.logger.WarnWithContext(ctx, "Shutdown grace exceeded, abandoning in-flight handlers", nil, map[string]interface{}{
					"grace": c.cfg.ShutdownGrace.String(),
				})
			}
		}
		c.handlerCancel()

		// Detach the reader so a later Start builds a fresh subscription.
		c.readerMu.Lock()
		reader := c.reader
		c.reader = nil
		c.readerMu.Unlock()

		if graceful {
			if err := reader.Close(); err != nil && c.logger != nil {
				c.logger.WarnWithContext(ctx, "Failed to close reader", err, nil)
			}
		} else {
			// Abandoned handlers still hold this reader for their final
			// commit; close it only once the last worker has exited.
			done := c.done
			logger := c.logger
			go func() {
				<-done
				if err := reader.Close(); err != nil && logger != nil {
					logger.WarnWithContext(context.Background(), "Failed to close reader", err, nil)
				}
			}()
		}

		c.state.Store(int32(StateStopped))
	})
}

// headerMap converts kafka-go headers into a string map.
func headerMap(headers []kafka.Header) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		m[h.Key] = string(h.Value)
	}
	return m
}
