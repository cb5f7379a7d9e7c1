// internal/services/payment_watcher_test.go
package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipstore/zip-storefront/internal/models"
)

const watchInterval = 10 * time.Millisecond

type confirmationCall struct {
	email       string
	orderNumber string
	amount      int64
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []confirmationCall
}

func (n *fakeNotifier) SendOrderConfirmation(email, orderNumber string, amount int64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, confirmationCall{email, orderNumber, amount})
	return nil
}

func (n *fakeNotifier) confirmations() []confirmationCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]confirmationCall(nil), n.calls...)
}

func TestWatchPollsUntilCompleted(t *testing.T) {
	gw := &fakeGateway{statuses: []models.PaymentStatus{
		models.PaymentStatusPending,
		models.PaymentStatusPending,
		models.PaymentStatusCompleted,
	}}
	cart := NewCartService(nil, nil)
	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 1, nil)

	watcher := NewPaymentWatcher(nil, gw, cart, nil, watchInterval, nil)
	require.True(t, watcher.Watch("s1", "123456"))

	assert.Eventually(t, func() bool {
		_, done := watcher.Outcome("123456")
		return done
	}, time.Second, watchInterval/2)

	outcome, _ := watcher.Outcome("123456")
	assert.Equal(t, models.PaymentStatusCompleted, outcome.Status)
	assert.Equal(t, 3, outcome.Polls)

	_, statusCalls := gw.counts()
	assert.Equal(t, 3, statusCalls)

	// A confirmed payment empties the cart.
	assert.Empty(t, cart.Items("s1"))
	assert.False(t, watcher.Watching("123456"))
}

func TestWatchSendsOrderConfirmationOnCompletion(t *testing.T) {
	gw := &fakeGateway{statuses: []models.PaymentStatus{models.PaymentStatusCompleted}}
	cart := NewCartService(nil, nil)
	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 1, nil)
	notifier := &fakeNotifier{}

	watcher := NewPaymentWatcher(nil, gw, cart, notifier, watchInterval, nil)
	require.True(t, watcher.Watch("s1", "123456"))

	assert.Eventually(t, func() bool {
		_, done := watcher.Outcome("123456")
		return done
	}, time.Second, watchInterval/2)

	calls := notifier.confirmations()
	require.Len(t, calls, 1)
	assert.Equal(t, "ZIP-20260829-0001", calls[0].orderNumber)
	assert.Equal(t, int64(330000), calls[0].amount)
}

func TestWatchDoesNotNotifyOnFailure(t *testing.T) {
	gw := &fakeGateway{statuses: []models.PaymentStatus{models.PaymentStatusCancelled}}
	cart := NewCartService(nil, nil)
	notifier := &fakeNotifier{}

	watcher := NewPaymentWatcher(nil, gw, cart, notifier, watchInterval, nil)
	require.True(t, watcher.Watch("s1", "123456"))

	assert.Eventually(t, func() bool {
		_, done := watcher.Outcome("123456")
		return done
	}, time.Second, watchInterval/2)

	assert.Empty(t, notifier.confirmations())
}

func TestWatchStopsOnFirstTerminalFailure(t *testing.T) {
	gw := &fakeGateway{statuses: []models.PaymentStatus{models.PaymentStatusCancelled}}
	cart := NewCartService(nil, nil)
	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 2, nil)

	watcher := NewPaymentWatcher(nil, gw, cart, nil, watchInterval, nil)
	require.True(t, watcher.Watch("s1", "123456"))

	assert.Eventually(t, func() bool {
		_, done := watcher.Outcome("123456")
		return done
	}, time.Second, watchInterval/2)

	outcome, _ := watcher.Outcome("123456")
	assert.Equal(t, models.PaymentStatusCancelled, outcome.Status)
	assert.Equal(t, 1, outcome.Polls)

	_, statusCalls := gw.counts()
	assert.Equal(t, 1, statusCalls)

	// A failed payment leaves the cart untouched.
	assert.Len(t, cart.Items("s1"), 1)
	assert.Equal(t, 2, cart.TotalItems("s1"))
}

func TestWatchRecordsGatewayError(t *testing.T) {
	gw := &fakeGateway{statusErr: errors.New("gateway unreachable")}
	cart := NewCartService(nil, nil)
	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 1, nil)

	watcher := NewPaymentWatcher(nil, gw, cart, nil, watchInterval, nil)
	require.True(t, watcher.Watch("s1", "123456"))

	assert.Eventually(t, func() bool {
		_, done := watcher.Outcome("123456")
		return done
	}, time.Second, watchInterval/2)

	outcome, _ := watcher.Outcome("123456")
	assert.Equal(t, models.PaymentStatusFailed, outcome.Status)
	assert.Contains(t, outcome.Reason, "unreachable")
	assert.Len(t, cart.Items("s1"), 1)
}

func TestWatchIsGuardedPerOrderCode(t *testing.T) {
	gw := &fakeGateway{statuses: []models.PaymentStatus{models.PaymentStatusPending}}
	cart := NewCartService(nil, nil)

	watcher := NewPaymentWatcher(nil, gw, cart, nil, time.Minute, nil)
	defer watcher.StopAll()

	require.True(t, watcher.Watch("s1", "123456"))
	assert.False(t, watcher.Watch("s1", "123456"))
	assert.True(t, watcher.Watching("123456"))
}

func TestStopCancelsWatch(t *testing.T) {
	gw := &fakeGateway{statuses: []models.PaymentStatus{models.PaymentStatusPending}}
	cart := NewCartService(nil, nil)

	watcher := NewPaymentWatcher(nil, gw, cart, nil, time.Minute, nil)

	require.True(t, watcher.Watch("s1", "123456"))
	assert.True(t, watcher.Stop("123456"))

	assert.Eventually(t, func() bool {
		return !watcher.Watching("123456")
	}, time.Second, time.Millisecond)

	// No outcome is recorded for a cancelled watch.
	_, done := watcher.Outcome("123456")
	assert.False(t, done)
	assert.False(t, watcher.Stop("123456"))
}
