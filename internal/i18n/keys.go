// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyInternalError = "error.internal"
	KeyRateLimited   = "error.rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthResetRequested     = "auth.reset_requested"
	KeyAuthPasswordReset      = "auth.password_reset"
	KeyAuthResetTokenInvalid  = "auth.reset_token_invalid"
	KeyAuthResetTokenExpired  = "auth.reset_token_expired"
	KeyAccessDenied           = "auth.access_denied"

	// Users
	KeyUserCreated         = "user.created"
	KeyUserUpdated         = "user.updated"
	KeyUserDeleted         = "user.deleted"
	KeyUserNotFound        = "user.not_found"
	KeyUserProfileUpdated  = "user.profile_updated"
	KeyUserPasswordChanged = "user.password_changed"
	KeyUserPasswordWrong   = "user.password_incorrect"
	KeyUserEmailTaken      = "user.email_taken"
	KeyUserLastRemaining   = "user.last_remaining"

	// Licenses
	KeyLicenseCreated           = "license.created"
	KeyLicenseUpdated           = "license.updated"
	KeyLicenseDeleted           = "license.deleted"
	KeyLicenseNotFound          = "license.not_found"
	KeyLicenseStatusChanged     = "license.status_changed"
	KeyLicenseInvalidTransition = "license.invalid_transition"
	KeyLicenseSigned            = "license.signed"
	KeyLicenseRefRequired       = "license.ref_required"
	KeyLicenseConcurrentChange  = "license.concurrent_change"

	// Sample analysis
	KeySampleCreated  = "sample.created"
	KeySampleUpdated  = "sample.updated"
	KeySampleDeleted  = "sample.deleted"
	KeySampleNotFound = "sample.not_found"
	KeySampleSigned   = "sample.signed"

	// Regions
	KeyRegionNotFound   = "region.not_found"
	KeyDistrictNotFound = "district.not_found"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
	KeyFileRequired      = "file.required"
)
