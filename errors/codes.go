package errors

// ErrorCode is a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeInvalidAudio indicates missing or unusable audio input.
	ErrCodeInvalidAudio ErrorCode = "INVALID_AUDIO"
	// ErrCodeDiarizationFailed indicates the diarization collaborator failed.
	ErrCodeDiarizationFailed ErrorCode = "DIARIZATION_FAILED"
	// ErrCodeTranscriptionFailed indicates the transcription collaborator failed.
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
	// ErrCodeSummarizationDegraded indicates summarization fell back to truncation.
	ErrCodeSummarizationDegraded ErrorCode = "SUMMARIZATION_DEGRADED"
	// ErrCodeExportFailed indicates document export failed.
	ErrCodeExportFailed ErrorCode = "EXPORT_FAILED"
	// ErrCodeCollaboratorFailed indicates an unclassified external-call failure.
	ErrCodeCollaboratorFailed ErrorCode = "COLLABORATOR_FAILED"
	// ErrCodeNotFound indicates a missing resource.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUnauthorized indicates failed authentication.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeValidation indicates a rejected request payload.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// retryableCodes are codes for which a retry may succeed.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeDiarizationFailed:   true,
	ErrCodeTranscriptionFailed: true,
	ErrCodeCollaboratorFailed:  true,
	ErrCodeExportFailed:        false,
}

// IsRetryableCode reports whether operations failing with code may be retried.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
