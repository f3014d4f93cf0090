package apperrors

import "errors"

// Input errors represent requests that cannot be estimated or delivered as sent.
// These are reported back to the caller and can be retried after correction.
var (
	// ErrInvalidTransactionType indicates a transaction type outside purchase, sale and refinance.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidPropertyType indicates a property type outside resale, new and condo.
	ErrInvalidPropertyType = errors.New("invalid property type")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrAmountTooLarge indicates an amount above the largest value the estimator accepts.
	ErrAmountTooLarge = errors.New("amount is too large")

	// ErrInvalidAmount indicates a numeric field that could not be parsed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrMissingEmail indicates the email request did not name a recipient.
	ErrMissingEmail = errors.New("Please enter an email address.")

	// ErrInvalidEmail indicates the recipient is not a valid email address.
	ErrInvalidEmail = errors.New("Please enter a valid email address.")

	// ErrNoCalculation indicates an email was requested before any estimate was calculated.
	ErrNoCalculation = errors.New("Please calculate results before emailing.")

	// ErrMissingReference indicates a verification request without a reference token.
	ErrMissingReference = errors.New("reference is required")
)

// Reference token errors.
var (
	// ErrInvalidReference indicates a reference token that is malformed, forged or expired.
	ErrInvalidReference = errors.New("estimate reference is invalid or expired")

	// ErrInvalidReferenceKey indicates a configured reference key that is not a valid fernet key.
	ErrInvalidReferenceKey = errors.New("invalid reference key")
)

// Configuration errors are fatal for the affected feature and are not retryable.
var (
	// ErrMailNotConfigured indicates that no SendGrid API key has been configured.
	ErrMailNotConfigured = errors.New("SendGrid API key not configured. Set SENDGRID_API_KEY in env.")
)

// Operation failure errors represent failures of collaborators while serving a request.
var (
	ErrFailedToCalculate     = errors.New("failed to calculate estimate")
	ErrFailedToRenderReport  = errors.New("failed to render estimate document")
	ErrFailedToSendEmail     = errors.New("Failed to send email")
	ErrFailedToGetVersion    = errors.New("failed to get version information")
	ErrFailedToSealReference = errors.New("failed to seal estimate reference")
)
