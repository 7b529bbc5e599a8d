package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Security (SEC) ----

func ErrInvalidAPIKey() *AppError {
	return New("SEC_001", "Invalid API key", http.StatusUnauthorized)
}

// ---- On-chain anchoring (CHAIN) ----

func ErrNoEligibleUTXO(minLovelace int64) *AppError {
	return New("CHAIN_001",
		fmt.Sprintf("No unspent output holds the required reserve (%d lovelace)", minLovelace),
		http.StatusConflict)
}

func ErrAnchorSubmission(err error) *AppError {
	return Wrap("CHAIN_002", "On-chain anchor submission failed", http.StatusBadGateway, err)
}

// ErrCommitInconsistency marks the two-phase gap: the root is anchored on-chain but the
// local commit record could not be written. Retrying does not help; the recovery scan
// (or manual reconciliation) must repair it.
func ErrCommitInconsistency(err error) *AppError {
	return Wrap("CHAIN_003", "Anchored commit could not be persisted locally", http.StatusInternalServerError, err)
}

func ErrMetadataUnavailable(err error) *AppError {
	return Wrap("CHAIN_004", "Anchored metadata unavailable", http.StatusBadGateway, err)
}

// ---- Ledger store (LEDGER) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("LEDGER_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrNotFound(entity string) *AppError {
	return New("LEDGER_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ErrIntentMismatch means a submitted intent's root no longer matches a rebuild of its
// batch. The off-chain rows changed after anchoring; manual reconciliation required.
func ErrIntentMismatch(intentID string) *AppError {
	return New("LEDGER_003",
		fmt.Sprintf("Recovery rebuild does not reproduce the anchored root for intent %s", intentID),
		http.StatusInternalServerError)
}

// ---- Verification (VERIFY) ----

func ErrEmptyVerifyRequest() *AppError {
	return New("VERIFY_001", "No transaction ids supplied", http.StatusBadRequest)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrLockHeld() *AppError {
	return New("SYS_002", "A commit cycle is already running", http.StatusConflict)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("SYS_003", message, http.StatusBadRequest)
}
