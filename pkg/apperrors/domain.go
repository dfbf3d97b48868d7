package apperrors

import (
	"net/http"
)

// Factories for the error taxonomy the resource services share.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and friends)
// into a 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrDuplicateSlug is the slug-uniqueness conflict for categories and
// portfolios.
func ErrDuplicateSlug(domain, message string) *AppError {
	return New(CodeAlreadyExists, domain, message, http.StatusConflict)
}

// ErrInUse refuses a delete while other rows still reference the target.
// Details carry the referencing count.
func ErrInUse(domain, message string, count int64) *AppError {
	return New(CodeConflict, domain, message, http.StatusConflict).
		WithDetails(map[string]int64{"total_projects": count})
}

// ErrInvalidImagePlan rejects an image plan the reconciler cannot apply:
// a non-new slot in a create, or a planned upload with no file payload.
func ErrInvalidImagePlan(message string) *AppError {
	return New(CodeInvalidImagePlan, "portfolio", message, http.StatusBadRequest)
}

// ErrRemoteAsset wraps a remote-storage upload failure. Post-commit delete
// failures never go through here; they are logged and swallowed.
func ErrRemoteAsset(err error, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, "assets", message, http.StatusBadGateway)
}

// ErrMailDelivery wraps an SMTP failure surfaced to the caller.
func ErrMailDelivery(err error, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, "mail", message, http.StatusBadGateway)
}

// ErrInvalidCredentials is the uniform login failure; it does not say whether
// the email or the password was wrong.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)
