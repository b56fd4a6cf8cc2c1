package errors

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

// TestCodesTestSuite runs the test suite
func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

// TestGetErrorMessage_ValidCode tests getting message for valid error codes
func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{
			name:     "Validation General",
			code:     ValidationGeneral,
			expected: "Validation failed",
		},
		{
			name:     "MCC Not Found",
			code:     MCCNotFound,
			expected: "MCC code not found",
		},
		{
			name:     "MCC Invalid Format",
			code:     MCCInvalidFormat,
			expected: "Value is not a valid 4-digit MCC code",
		},
		{
			name:     "MCC Denied",
			code:     MCCDenied,
			expected: "MCC code is in a denied category",
		},
		{
			name:     "Range Not Found",
			code:     RangeNotFound,
			expected: "MCC range not found",
		},
		{
			name:     "Category Not Found",
			code:     CategoryNotFound,
			expected: "MCC category not found",
		},
		{
			name:     "Dataset Load Failed",
			code:     DatasetLoadFailed,
			expected: "MCC dataset could not be loaded",
		},
		{
			name:     "System Internal Error",
			code:     SystemInternalError,
			expected: "An internal error occurred",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

// TestGetErrorMessage_UnknownCode tests fallback for unknown error codes
func (s *CodesTestSuite) TestGetErrorMessage_UnknownCode() {
	message := GetErrorMessage(ErrorCode("NOPE_999"))
	s.Equal("An unexpected error occurred", message)
}

// TestErrorCodes_AllHaveMessages tests that every declared code has a message
func (s *CodesTestSuite) TestErrorCodes_AllHaveMessages() {
	codes := []ErrorCode{
		ValidationGeneral, ValidationRequiredField, ValidationInvalidFormat, ValidationUnknownField,
		MCCNotFound, MCCInvalidFormat, MCCDenied,
		RangeNotFound, RangeInvalid,
		CategoryNotFound,
		DatasetLoadFailed, DatasetReloadFailed,
		SystemInternalError, SystemConfigurationError, SystemServiceUnavailable,
		SystemRateLimitExceeded, SystemUnexpectedError,
	}

	for _, code := range codes {
		_, exists := errorMessages[code]
		s.True(exists, "code %s has no message", code)
	}
}
