// internal/i18n/keys.go
package i18n

// Translation keys constants. Not-found messages have no constants here;
// utils.NotFoundResponse derives "<resource>.not_found" from the resource
// name.
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"

	// Cart
	KeyCartItemAdded   = "cart.item_added"
	KeyCartItemRemoved = "cart.item_removed"
	KeyCartUpdated     = "cart.updated"
	KeyCartCleared     = "cart.cleared"
	KeyCartEmpty       = "cart.empty"

	// Checkout
	KeyCheckoutMissingFields   = "checkout.missing_fields"
	KeyCheckoutUnknownProvince = "checkout.unknown_province"
	KeyCheckoutUnknownDistrict = "checkout.unknown_district"
	KeyCheckoutLinkFailed      = "checkout.link_failed"
	KeyCheckoutSubmitted       = "checkout.submitted"

	// Payments
	KeyPaymentSuccess      = "payment.success"
	KeyPaymentFailed       = "payment.failed"
	KeyPaymentPending      = "payment.pending"
	KeyPaymentWatchStarted = "payment.watch_started"
	KeyPaymentWatchStopped = "payment.watch_stopped"

	// Products
	KeyProductCreated = "product.created"
	KeyProductUpdated = "product.updated"
	KeyProductDeleted = "product.deleted"

	// Orders
	KeyOrderUpdated = "order.updated"

	// Contact
	KeyContactReceived = "contact.received"
	KeyContactUpdated  = "contact.updated"
	KeyContactDeleted  = "contact.deleted"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"
	KeyAdminLoginSuccess = "admin.login_success"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Upstream / transport
	KeyUpstreamUnavailable = "upstream.unavailable"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
)
