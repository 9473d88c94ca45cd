package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
)

// Wizard confirmation messages.
const (
	MessageRegistered = "Registration completed successfully! Welcome to the workshop."
	MessageCodeResent = "Verification code resent to your email address."
)

const (
	stateStep1 = "step1"
	stateStep2 = "step2"
	stateStep3 = "step3"

	eventNext  = "next"
	eventBack  = "back"
	eventReset = "reset"
)

var stepByState = map[string]int{stateStep1: 1, stateStep2: 2, stateStep3: 3}

// RegistrationRepository persists submitted registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
}

type passIssuer interface {
	Issue(reg models.Registration) (*models.IssuedPass, error)
}

// RegistrationService drives the three step registration wizard. Position lives in a looplab
// FSM; the draft and field errors live beside it under the same lock.
type RegistrationService struct {
	mu        sync.Mutex
	machine   *fsm.FSM
	draft     map[string]string
	errors    map[string]models.FieldError
	repo      RegistrationRepository
	passes    passIssuer
	validator *validator.Validate
	notifier  viewNotifier
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewRegistrationService constructs the wizard at step 1 with an empty draft.
func NewRegistrationService(repo RegistrationRepository, passes passIssuer, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		machine:   newWizardMachine(),
		draft:     make(map[string]string),
		errors:    make(map[string]models.FieldError),
		repo:      repo,
		passes:    passes,
		validator: validate,
		notifier:  nopNotifier{},
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

func newWizardMachine() *fsm.FSM {
	return fsm.NewFSM(stateStep1, fsm.Events{
		{Name: eventNext, Src: []string{stateStep1}, Dst: stateStep2},
		{Name: eventNext, Src: []string{stateStep2}, Dst: stateStep3},
		{Name: eventBack, Src: []string{stateStep2}, Dst: stateStep1},
		{Name: eventBack, Src: []string{stateStep3}, Dst: stateStep2},
		{Name: eventReset, Src: []string{stateStep2, stateStep3}, Dst: stateStep1},
	}, fsm.Callbacks{})
}

// SetNotifier wires the view layer once it exists.
func (s *RegistrationService) SetNotifier(n viewNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n == nil {
		n = nopNotifier{}
	}
	s.notifier = n
}

// State returns the wizard position, draft, errors and available actions.
func (s *RegistrationService) State() models.RegistrationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *RegistrationService) stateLocked() models.RegistrationState {
	step := stepByState[s.machine.Current()]
	draft := make(map[string]string, len(s.draft))
	for k, v := range s.draft {
		draft[k] = v
	}
	errs := make(map[string]models.FieldError, len(s.errors))
	for k, v := range s.errors {
		errs[k] = v
	}
	return models.RegistrationState{
		Step:      step,
		Draft:     draft,
		Errors:    errs,
		CanBack:   s.machine.Can(eventBack),
		CanNext:   s.machine.Can(eventNext),
		CanSubmit: step == models.LastStep,
	}
}

// UpdateField stores a draft value on the active step and clears that field's error only.
func (s *RegistrationService) UpdateField(ctx context.Context, name, value string) (models.RegistrationState, error) {
	def, ok := models.LookupField(name)
	if !ok {
		return models.RegistrationState{}, unknownField(name)
	}
	s.mu.Lock()
	if err := s.checkFieldStepLocked(def); err != nil {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, err
	}
	s.draft[name] = value
	delete(s.errors, name)
	state := s.stateLocked()
	s.mu.Unlock()

	s.touch(ctx, "registration.field")
	return state, nil
}

// BlurField validates one field and surfaces or clears only its error.
func (s *RegistrationService) BlurField(ctx context.Context, name string) (models.RegistrationState, error) {
	def, ok := models.LookupField(name)
	if !ok {
		return models.RegistrationState{}, unknownField(name)
	}
	s.mu.Lock()
	if err := s.checkFieldStepLocked(def); err != nil {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, err
	}
	ferr := validateField(s.validator, def, s.draft[name])
	if ferr != nil {
		s.errors[name] = *ferr
	} else {
		delete(s.errors, name)
	}
	state := s.stateLocked()
	s.mu.Unlock()

	s.touch(ctx, "registration.blur")
	if ferr != nil {
		return state, appErrors.WithDetails(appErrors.ErrStepInvalid, map[string]models.FieldError{name: *ferr})
	}
	return state, nil
}

// Next advances one step when every field of the current step validates.
func (s *RegistrationService) Next(ctx context.Context) (models.RegistrationState, error) {
	s.mu.Lock()
	if !s.machine.Can(eventNext) {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, appErrors.Clone(appErrors.ErrInvalidTransition, "already on the last step")
	}
	step := stepByState[s.machine.Current()]
	if failures := s.validateStepLocked(step); len(failures) > 0 {
		state := s.stateLocked()
		s.mu.Unlock()
		s.touch(ctx, "registration.invalid")
		return state, appErrors.WithDetails(appErrors.ErrStepInvalid, failures)
	}
	if err := s.machine.Event(ctx, eventNext); err != nil {
		s.mu.Unlock()
		return models.RegistrationState{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to advance wizard")
	}
	state := s.stateLocked()
	s.mu.Unlock()

	s.touch(ctx, "registration.next")
	return state, nil
}

// Back returns to the previous step without validating.
func (s *RegistrationService) Back(ctx context.Context) (models.RegistrationState, error) {
	s.mu.Lock()
	if !s.machine.Can(eventBack) {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, appErrors.Clone(appErrors.ErrInvalidTransition, "already on the first step")
	}
	if err := s.machine.Event(ctx, eventBack); err != nil {
		s.mu.Unlock()
		return models.RegistrationState{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to go back")
	}
	state := s.stateLocked()
	s.mu.Unlock()

	s.touch(ctx, "registration.back")
	return state, nil
}

// Submit validates every step, persists the registration and issues a pass. On success the
// wizard returns to step 1 with an empty draft.
func (s *RegistrationService) Submit(ctx context.Context) (*dto.SubmitRegistrationResponse, error) {
	s.mu.Lock()
	resp, err := s.submitLocked(ctx)
	s.mu.Unlock()

	var stepErr *appErrors.Error
	switch {
	case err == nil:
		s.metrics.RecordRegistration()
		s.logger.Info("registration submitted", zap.String("registration_id", resp.Registration.ID))
		s.touch(ctx, "registration.submitted")
	case errors.As(err, &stepErr) && stepErr.Code == appErrors.ErrStepInvalid.Code:
		s.touch(ctx, "registration.invalid")
	}
	return resp, err
}

func (s *RegistrationService) submitLocked(ctx context.Context) (*dto.SubmitRegistrationResponse, error) {
	if s.machine.Current() != stateStep3 {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "submit is only available on the last step")
	}
	failures := make(map[string]models.FieldError)
	for step := models.FirstStep; step <= models.LastStep; step++ {
		for name, ferr := range s.validateStepLocked(step) {
			failures[name] = ferr
		}
	}
	if len(failures) > 0 {
		return nil, appErrors.WithDetails(appErrors.ErrStepInvalid, failures)
	}

	reg, err := s.buildRegistration()
	if err != nil {
		return nil, err
	}
	if s.repo != nil {
		if err := s.repo.Create(ctx, reg); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store registration")
		}
	}

	var pass *models.IssuedPass
	if s.passes != nil {
		pass, err = s.passes.Issue(*reg)
		if err != nil {
			s.logger.Warn("failed to issue attendee pass", zap.String("registration_id", reg.ID), zap.Error(err))
		}
	}

	if err := s.machine.Event(ctx, eventReset); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset wizard")
	}
	s.draft = make(map[string]string)
	s.errors = make(map[string]models.FieldError)
	return &dto.SubmitRegistrationResponse{Registration: *reg, Pass: pass, State: s.stateLocked()}, nil
}

// ResendCode acknowledges a request for a fresh verification code.
func (s *RegistrationService) ResendCode() string {
	return MessageCodeResent
}

// validateStepLocked replaces the errors of step's fields with a fresh validation result.
func (s *RegistrationService) validateStepLocked(step int) map[string]models.FieldError {
	failures := validateStep(s.validator, step, s.draft)
	for _, def := range models.FieldsForStep(step) {
		if ferr, failed := failures[def.Name]; failed {
			s.errors[def.Name] = ferr
		} else {
			delete(s.errors, def.Name)
		}
	}
	return failures
}

func (s *RegistrationService) buildRegistration() (*models.Registration, error) {
	field := func(name string) string { return strings.TrimSpace(s.draft[name]) }
	hash, err := bcrypt.GenerateFromPassword([]byte(field("verificationCode")), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash verification code")
	}
	return &models.Registration{
		ID:           uuid.NewString(),
		FirstName:    field("firstName"),
		LastName:     field("lastName"),
		Email:        strings.ToLower(field("email")),
		Phone:        field("phone"),
		Organization: field("organization"),
		Role:         field("role"),
		Experience:   field("experience"),
		CodeHash:     string(hash),
		CreatedAt:    s.now().UTC(),
	}, nil
}

func (s *RegistrationService) touch(ctx context.Context, reason string) {
	s.mu.Lock()
	n := s.notifier
	s.mu.Unlock()
	n.Touch(ctx, reason, models.ViewRegistration)
}

// checkFieldStepLocked rejects edits to fields that are not on the active step.
func (s *RegistrationService) checkFieldStepLocked(def models.FieldDef) error {
	step := stepByState[s.machine.Current()]
	if def.Step == step {
		return nil
	}
	return appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("field %q belongs to step %d, wizard is on step %d", def.Name, def.Step, step))
}

func unknownField(name string) error {
	return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown registration field %q", name))
}
