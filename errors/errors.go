package errors

import "fmt"

// Application error types organized by category for better error handling

type ErrorType string

// Input Errors - bad CLI arguments, caught before any I/O
const (
	ValidationError ErrorType = "VALIDATION_ERROR"
)

// Upstream Errors - failures talking to the geocoding and weather APIs
const (
	GeocodingError     ErrorType = "GEOCODING_ERROR"
	WeatherAPIError    ErrorType = "WEATHER_API_ERROR"
	MalformedDataError ErrorType = "MALFORMED_DATA_ERROR"
)

// System/Configuration Errors - missing credentials, cache problems
const (
	ConfigurationError ErrorType = "CONFIGURATION_ERROR"
	CacheError         ErrorType = "CACHE_ERROR"
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errorType ErrorType) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Type == errorType
}

// Input Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

// Upstream Error Constructors
func NewGeocodingError(message string, cause error) *AppError {
	return Wrap(GeocodingError, message, cause)
}

func NewWeatherAPIError(message string, cause error) *AppError {
	return Wrap(WeatherAPIError, message, cause)
}

func NewMalformedDataError(message string) *AppError {
	return New(MalformedDataError, message)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

func NewCacheError(message string, cause error) *AppError {
	return Wrap(CacheError, message, cause)
}
