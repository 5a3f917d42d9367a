package client

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"tcm-webshop/models"
)

// ErrRegistrationInFlight means a registration attempt is already pending.
var ErrRegistrationInFlight = errors.New("client: registration already in progress")

// RegState identifies a stage of the registration pipeline.
type RegState int

const (
	StateIdle RegState = iota
	StateValidatingFormat
	StateVerifyingAddress
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s RegState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidatingFormat:
		return "validating_format"
	case StateVerifyingAddress:
		return "verifying_address"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("RegState(%d)", int(s))
	}
}

// Field error codes.
const (
	FieldCodeFormat         = "format"
	FieldCodeVerification   = "verification"
	FieldCodeDuplicateEmail = "duplicate_email"
)

// FieldError attaches a registration failure to a single form field.
type FieldError struct {
	Field  string // "email", "postalcode", "address"
	Code   string
	Reason string
	cause  error
}

func (e *FieldError) Error() string { return e.Reason }

func (e *FieldError) Unwrap() error { return e.cause }

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postalPattern = regexp.MustCompile(`^\d{4}$`)
)

// Registrar runs the registration pipeline: local format checks, external
// address verification, then the account-creation call. Checks run in order
// and short-circuit; nothing is retried automatically.
type Registrar struct {
	api      *API
	geocoder *Geocoder
	logger   *zap.Logger
	inFlight atomic.Bool

	// OnStatus, when set, receives one user-visible message per state
	// transition.
	OnStatus func(state RegState, message string)
}

// NewRegistrar creates a Registrar.
func NewRegistrar(api *API, geocoder *Geocoder, logger *zap.Logger) *Registrar {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registrar{api: api, geocoder: geocoder, logger: logger}
}

func (r *Registrar) status(state RegState, message string) {
	r.logger.Info("registration state", zap.Stringer("state", state), zap.String("message", message))
	if r.OnStatus != nil {
		r.OnStatus(state, message)
	}
}

func (r *Registrar) fail(err error) error {
	r.status(StateFailed, err.Error())
	return err
}

// Register runs the pipeline for a draft. Field-level failures come back as
// *FieldError; overlapping calls as ErrRegistrationInFlight. Address
// verification is fail-closed: an unreachable geocoder blocks registration
// exactly like an unknown address.
func (r *Registrar) Register(ctx context.Context, draft models.RegistrationDraft) error {
	if !r.inFlight.CompareAndSwap(false, true) {
		return ErrRegistrationInFlight
	}
	defer r.inFlight.Store(false)

	draft.Email = strings.TrimSpace(draft.Email)
	draft.FullName = strings.TrimSpace(draft.FullName)
	draft.Address = strings.TrimSpace(draft.Address)
	draft.City = strings.TrimSpace(draft.City)
	draft.PostalCode = strings.TrimSpace(draft.PostalCode)

	r.status(StateValidatingFormat, "Eingaben werden geprüft...")
	if !emailPattern.MatchString(draft.Email) {
		return r.fail(&FieldError{
			Field:  "email",
			Code:   FieldCodeFormat,
			Reason: "Bitte geben Sie eine gültige E-Mail Adresse ein.",
		})
	}
	if !postalPattern.MatchString(draft.PostalCode) {
		return r.fail(&FieldError{
			Field:  "postalcode",
			Code:   FieldCodeFormat,
			Reason: "Die PLZ muss eine 4-stellige Zahl sein.",
		})
	}

	r.status(StateVerifyingAddress, "Überprüfe Adresse...")
	exists, err := r.geocoder.AddressExists(ctx, draft.Address, draft.City, draft.PostalCode)
	if err != nil || !exists {
		return r.fail(&FieldError{
			Field:  "address",
			Code:   FieldCodeVerification,
			Reason: "Die Adresse konnte nicht verifiziert werden. Bitte überprüfen Sie Strasse, PLZ und Stadt.",
			cause:  err,
		})
	}

	r.status(StateSubmitting, "Registrierung wird durchgeführt...")
	if err := r.api.Do(ctx, "POST", "/api/register", draft, nil); err != nil {
		return r.fail(r.mapRegisterError(err))
	}

	r.status(StateSuccess, "Registrierung erfolgreich")
	return nil
}

// mapRegisterError turns a duplicate-email rejection into a field error on
// the email field. Matching prefers the structured code; the message
// substring is only a compatibility shim for boundaries without codes.
func (r *Registrar) mapRegisterError(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	duplicate := apiErr.Code == FieldCodeDuplicateEmail ||
		strings.Contains(apiErr.Message, "bereits registriert")
	if !duplicate {
		return err
	}
	return &FieldError{
		Field:  "email",
		Code:   FieldCodeDuplicateEmail,
		Reason: apiErr.Message,
		cause:  err,
	}
}
