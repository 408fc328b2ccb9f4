// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthForbidden          = "auth.forbidden"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Stores
	KeyStoreCreated       = "store.created"
	KeyStoreUpdated       = "store.updated"
	KeyStoreDeleted       = "store.deleted"
	KeyStoreNotFound      = "store.not_found"
	KeyStoreSlugTaken     = "store.slug_taken"

	// Categories
	KeyCategoryCreated  = "category.created"
	KeyCategoryUpdated  = "category.updated"
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"

	// Products
	KeyProductCreated        = "product.created"
	KeyProductUpdated        = "product.updated"
	KeyProductDeleted        = "product.deleted"
	KeyProductNotFound       = "product.not_found"
	KeyProductStockUpdated   = "product.stock_updated"
	KeyVariantCreated        = "product.variant_created"
	KeyVariantUpdated        = "product.variant_updated"
	KeyVariantDeleted        = "product.variant_deleted"
	KeyVariantNotFound       = "product.variant_not_found"

	// Orders
	KeyOrderCreated           = "order.created"
	KeyOrderNotFound          = "order.not_found"
	KeyOrderStatusUpdated     = "order.status_updated"
	KeyOrderInsufficientStock = "order.insufficient_stock"
	KeyOrderInvalidTransition = "order.invalid_transition"

	// Uploads
	KeyFileUploadFailed = "upload.failed"
	KeyFileUploaded     = "upload.success"
)
