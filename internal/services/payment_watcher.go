// internal/services/payment_watcher.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zipstore/zip-storefront/internal/gateway"
	"github.com/zipstore/zip-storefront/internal/models"
)

// WatchOutcome is the recorded end state of a finished watch.
type WatchOutcome struct {
	OrderCode   string               `json:"orderCode"`
	OrderNumber string               `json:"orderNumber,omitempty"`
	Status      models.PaymentStatus `json:"status"`
	Reason      string               `json:"reason,omitempty"`
	Amount      int64                `json:"amount,omitempty"`
	PaidAt      string               `json:"paidAt,omitempty"`
	Polls       int                  `json:"polls"`
	FinishedAt  time.Time            `json:"finishedAt"`
}

// OrderNotifier sends the customer's order confirmation once a payment
// completes. Satisfied by NotificationService.
type OrderNotifier interface {
	SendOrderConfirmation(email, orderNumber string, amount int64) error
}

// PaymentWatcher polls the gateway for an order's payment status until it
// reaches a terminal state. At most one watch loop runs per order code.
// Watches outlive the request that started them and are torn down through
// Stop or StopAll.
type PaymentWatcher struct {
	db       *gorm.DB
	gateway  gateway.Gateway
	cart     *CartService
	notifier OrderNotifier
	interval time.Duration
	log      logrus.FieldLogger

	mu       sync.Mutex
	active   map[string]context.CancelFunc
	outcomes map[string]*WatchOutcome
	wg       sync.WaitGroup
}

func NewPaymentWatcher(db *gorm.DB, gw gateway.Gateway, cart *CartService, notifier OrderNotifier, interval time.Duration, log logrus.FieldLogger) *PaymentWatcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PaymentWatcher{
		db:       db,
		gateway:  gw,
		cart:     cart,
		notifier: notifier,
		interval: interval,
		log:      log,
		active:   make(map[string]context.CancelFunc),
		outcomes: make(map[string]*WatchOutcome),
	}
}

// Watch starts a polling loop for the order. It returns false when a watch
// for the same order code is already running.
func (w *PaymentWatcher) Watch(sessionID, orderCode string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, running := w.active[orderCode]; running {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.active[orderCode] = cancel

	w.wg.Add(1)
	go w.run(ctx, sessionID, orderCode)
	return true
}

// Stop cancels the watch for the order, if one is running.
func (w *PaymentWatcher) Stop(orderCode string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	cancel, running := w.active[orderCode]
	if !running {
		return false
	}
	cancel()
	delete(w.active, orderCode)
	return true
}

// StopAll cancels every running watch and waits for the loops to exit.
// Called during server shutdown.
func (w *PaymentWatcher) StopAll() {
	w.mu.Lock()
	for code, cancel := range w.active {
		cancel()
		delete(w.active, code)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

// Watching reports whether a watch loop is running for the order.
func (w *PaymentWatcher) Watching(orderCode string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, running := w.active[orderCode]
	return running
}

// Outcome returns the recorded end state of a finished watch.
func (w *PaymentWatcher) Outcome(orderCode string) (*WatchOutcome, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	outcome, ok := w.outcomes[orderCode]
	return outcome, ok
}

// run polls immediately, then at the configured interval, until the status
// is terminal or the watch is cancelled.
func (w *PaymentWatcher) run(ctx context.Context, sessionID, orderCode string) {
	defer w.wg.Done()
	defer w.release(orderCode)

	polls := 0
	for {
		state, err := w.gateway.GetStatus(ctx, orderCode)
		polls++
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.WithError(err).WithField("order_code", orderCode).Error("Payment status check failed")
			w.finishFailed(sessionID, orderCode, models.PaymentStatusFailed, err.Error(), polls)
			return
		}

		if state.PaymentStatus == models.PaymentStatusCompleted {
			w.finishCompleted(sessionID, orderCode, state, polls)
			return
		}
		if state.PaymentStatus.Terminal() {
			w.finishFailed(sessionID, orderCode, state.PaymentStatus, string(state.PaymentStatus), polls)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.interval):
		}
	}
}

// finishCompleted clears the session's cart, sends the customer's order
// confirmation and removes the pending order reference, then records the
// outcome.
func (w *PaymentWatcher) finishCompleted(sessionID, orderCode string, state *models.PaymentState, polls int) {
	w.cart.ClearCart(sessionID)

	// The email lives on the pending order row, so read it before deleting.
	var customerEmail string
	if w.db != nil {
		var pending models.PendingOrder
		if err := w.db.Where("order_code = ?", orderCode).First(&pending).Error; err == nil {
			customerEmail = pending.CustomerEmail
		}
		if err := w.db.Where("order_code = ?", orderCode).Delete(&models.PendingOrder{}).Error; err != nil {
			w.log.WithError(err).WithField("order_code", orderCode).Error("Failed to remove pending order")
		}
	}

	if w.notifier != nil {
		if err := w.notifier.SendOrderConfirmation(customerEmail, state.OrderNumber, state.Amount); err != nil {
			w.log.WithError(err).WithField("order_code", orderCode).Error("Failed to send order confirmation")
		}
	}

	w.log.WithFields(logrus.Fields{
		"order_code": orderCode,
		"session_id": sessionID,
		"polls":      polls,
	}).Info("Payment completed")

	w.record(&WatchOutcome{
		OrderCode:   orderCode,
		OrderNumber: state.OrderNumber,
		Status:      models.PaymentStatusCompleted,
		Amount:      state.Amount,
		PaidAt:      state.PaidAt,
		Polls:       polls,
		FinishedAt:  time.Now(),
	})
}

// finishFailed records the failure. The cart is left untouched and the
// pending order reference is kept so the attempt can be retried.
func (w *PaymentWatcher) finishFailed(sessionID, orderCode string, status models.PaymentStatus, reason string, polls int) {
	if w.db != nil {
		err := w.db.Model(&models.PendingOrder{}).
			Where("order_code = ?", orderCode).
			Updates(map[string]interface{}{"status": status, "reason": reason}).Error
		if err != nil {
			w.log.WithError(err).WithField("order_code", orderCode).Error("Failed to update pending order")
		}
	}

	w.log.WithFields(logrus.Fields{
		"order_code": orderCode,
		"session_id": sessionID,
		"status":     status,
		"reason":     reason,
	}).Warn("Payment did not complete")

	w.record(&WatchOutcome{
		OrderCode:  orderCode,
		Status:     status,
		Reason:     reason,
		Polls:      polls,
		FinishedAt: time.Now(),
	})
}

func (w *PaymentWatcher) record(outcome *WatchOutcome) {
	w.mu.Lock()
	w.outcomes[outcome.OrderCode] = outcome
	w.mu.Unlock()
}

func (w *PaymentWatcher) release(orderCode string) {
	w.mu.Lock()
	if cancel, ok := w.active[orderCode]; ok {
		cancel()
		delete(w.active, orderCode)
	}
	w.mu.Unlock()
}
