package constants

// HTTP Header Names
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXRealIP       = "X-Real-IP"
	BearerPrefix        = "Bearer"
)

// HTTP Content Types
const (
	ContentTypeJSON      = "application/json"
	ContentTypeText      = "text/plain"
	ContentTypeHTML      = "text/html"
	ContentTypeMultipart = "multipart/form-data"
)

// Common HTTP Error Messages
const (
	MsgUnauthorized       = "Unauthorized"
	MsgForbidden          = "Access forbidden"
	MsgNotFound           = "Resource not found"
	MsgBadRequest         = "Invalid request format"
	MsgValidationFailed   = "Validation failed"
	MsgInternalError      = "Internal server error"
	MsgServiceUnavailable = "Service temporarily unavailable"
)

// HTTP Success Messages
const (
	MsgCategoryDeleted    = "Category deleted successfully"
	MsgDressDeleted       = "Dress deleted successfully"
	MsgVariantDeleted     = "Variant deleted successfully"
	MsgImageDeleted       = "Image deleted successfully"
	MsgImageUploaded      = "Image uploaded successfully"
	MsgUserActivated      = "User activated successfully"
	MsgUserDeactivated    = "User deactivated successfully"
	MsgProfileCompleted   = "Profile completed successfully"
	MsgEmailVerified      = "Email verified successfully"
	MsgVerificationResent = "Verification email sent"
	MsgPasswordResetSent  = "Password reset email sent"
	MsgPasswordResetDone  = "Password reset successfully"
	MsgLogoutSuccessful   = "Logged out successfully"
)
