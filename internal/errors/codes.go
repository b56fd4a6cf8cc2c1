package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationUnknownField  ErrorCode = "VALIDATION_004"
)

// MCC error codes (MCC_*)
const (
	MCCNotFound      ErrorCode = "MCC_001"
	MCCInvalidFormat ErrorCode = "MCC_002"
	MCCDenied        ErrorCode = "MCC_003"
)

// Range error codes (RANGE_*)
const (
	RangeNotFound ErrorCode = "RANGE_001"
	RangeInvalid  ErrorCode = "RANGE_002"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound ErrorCode = "CATEGORY_001"
)

// Dataset error codes (DATASET_*)
const (
	DatasetLoadFailed   ErrorCode = "DATASET_001"
	DatasetReloadFailed ErrorCode = "DATASET_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemConfigurationError ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationUnknownField:  "Unknown filter field",

	MCCNotFound:      "MCC code not found",
	MCCInvalidFormat: "Value is not a valid 4-digit MCC code",
	MCCDenied:        "MCC code is in a denied category",

	RangeNotFound: "MCC range not found",
	RangeInvalid:  "MCC range start exceeds its end",

	CategoryNotFound: "MCC category not found",

	DatasetLoadFailed:   "MCC dataset could not be loaded",
	DatasetReloadFailed: "MCC dataset reload failed",

	SystemInternalError:      "An internal error occurred",
	SystemConfigurationError: "Service configuration is invalid",
	SystemServiceUnavailable: "Service is temporarily unavailable",
	SystemRateLimitExceeded:  "Too many requests, please try again later",
	SystemUnexpectedError:    "An unexpected error occurred",
}

// GetErrorMessage returns the default message for an error code
func GetErrorMessage(code ErrorCode) string {
	if message, exists := errorMessages[code]; exists {
		return message
	}
	return errorMessages[SystemUnexpectedError]
}
