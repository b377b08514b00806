package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPrice         ErrorCode = 102
	ErrCodeInvalidQuantity      ErrorCode = 103
	ErrCodeInvalidThreshold     ErrorCode = 104
	ErrCodeInvalidPeriod        ErrorCode = 105
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidSpread        ErrorCode = 107

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeIngestFailed          ErrorCode = 203

	// Strategy errors (300-399)
	ErrCodeStrategyNotFound      ErrorCode = 300
	ErrCodeStrategyAlreadyExists ErrorCode = 301

	// Position/exit errors (400-499)
	ErrCodePositionNotFound ErrorCode = 400
	ErrCodePositionExists   ErrorCode = 401
	ErrCodeInvalidPosition  ErrorCode = 402

	// Simulation errors (500-599)
	ErrCodeSimulationFailed ErrorCode = 500
	ErrCodeNoBars           ErrorCode = 501

	// Calibration errors (600-699)
	ErrCodeCalibrationFailed ErrorCode = 600
	ErrCodeVersionMismatch   ErrorCode = 601
	ErrCodeArtifactInvalid   ErrorCode = 602
)
