package services

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"frontend/internal/domain"
	"frontend/internal/domain/models"

	"github.com/go-playground/validator/v10"
)

type Step int

const (
	StepReview       Step = 1
	StepTravelerInfo Step = 2
	StepPayment      Step = 3
)

func (s Step) String() string {
	switch s {
	case StepReview:
		return "review"
	case StepTravelerInfo:
		return "traveler-info"
	case StepPayment:
		return "payment"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// WizardState is the booking flow persisted between requests.
type WizardState struct {
	Step      Step                    `json:"step"`
	Booking   models.BookingData      `json:"bookingData"`
	Travelers []models.TravelerDetail `json:"travelerDetails"`
}

// StartWizard opens the flow at the review step with one empty traveler slot
// per passenger.
func StartWizard(draft models.BookingDraft) (WizardState, error) {
	p := draft.Passengers
	if p.Adults < 0 || p.Children < 0 || p.Infants < 0 {
		return WizardState{}, domain.ValidationError{Field: "passengers", Msg: "counts must not be negative"}
	}
	total := p.Total()
	if total < 1 {
		return WizardState{}, domain.ValidationError{Field: "passengers", Msg: "at least one passenger is required"}
	}
	if draft.FlightSchedule.ID <= 0 {
		return WizardState{}, domain.ValidationError{Field: "flightSchedule.id", Msg: "schedule is required"}
	}
	return WizardState{
		Step:      StepReview,
		Booking:   models.BookingDataFromDraft(draft),
		Travelers: make([]models.TravelerDetail, total),
	}, nil
}

func (w *WizardState) Next() {
	if w.Step < StepPayment {
		w.Step++
	}
}

func (w *WizardState) Prev() {
	if w.Step > StepReview {
		w.Step--
	}
}

// SetTravelers replaces every slot after validating the full list.
func (w *WizardState) SetTravelers(details []models.TravelerDetail) error {
	if len(details) != len(w.Travelers) {
		return domain.ValidationError{
			Field: "travelerDetails",
			Msg:   fmt.Sprintf("expected %d travelers, got %d", len(w.Travelers), len(details)),
		}
	}
	clean := make([]models.TravelerDetail, len(details))
	for i, d := range details {
		clean[i] = normalizeTraveler(d)
	}
	if err := ValidateTravelers(clean); err != nil {
		return err
	}
	w.Travelers = clean
	return nil
}

// AdvanceFromTravelers is the traveler step's submit: validate, store, move on.
func (w *WizardState) AdvanceFromTravelers(details []models.TravelerDetail) error {
	if w.Step != StepTravelerInfo {
		return domain.ConflictError{Resource: "booking", Msg: fmt.Sprintf("travelers are edited on the traveler step, not %s", w.Step)}
	}
	if err := w.SetTravelers(details); err != nil {
		return err
	}
	w.Next()
	return nil
}

// Ticket merges the payment outcome into the booking record.
func (w WizardState) Ticket(result models.BookingResult) models.TicketData {
	b := w.Booking
	b.BookingNo = result.BookingNo
	b.PNR = result.PNR
	b.BookingStatus = result.BookingStatus
	b.PaymentStatus = result.PaymentStatus
	b.IsPaid = result.IsPaid
	b.IsConfirmed = result.IsConfirmed

	travelers := make([]models.TravelerDetail, len(w.Travelers))
	copy(travelers, w.Travelers)
	res := result
	return models.TicketData{BookingData: b, TravelerDetails: travelers, Payment: &res}
}

func normalizeTraveler(d models.TravelerDetail) models.TravelerDetail {
	d.Title = strings.TrimSpace(d.Title)
	d.FullName = strings.Join(strings.Fields(d.FullName), " ")
	d.DateOfBirth = strings.TrimSpace(d.DateOfBirth)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Address = strings.TrimSpace(d.Address)
	d.GSTNumber = strings.ToUpper(strings.TrimSpace(d.GSTNumber))
	return d
}

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

	// today is swapped in tests.
	today = func() time.Time { return time.Now() }

	travelerValidator = newTravelerValidator()
)

func newTravelerValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return gstinPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		dob, err := time.ParseInLocation("2006-01-02", fl.Field().String(), time.Local)
		if err != nil {
			return false
		}
		return !dob.After(today())
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateTravelers reports the first invalid field as travelerDetails[i].field.
func ValidateTravelers(details []models.TravelerDetail) error {
	if len(details) == 0 {
		return domain.ValidationError{Field: "travelerDetails", Msg: "no travelers"}
	}
	for i, d := range details {
		err := travelerValidator.Struct(d)
		if err == nil {
			continue
		}
		verrs, ok := err.(validator.ValidationErrors)
		if !ok || len(verrs) == 0 {
			return domain.ValidationError{Field: "travelerDetails", Msg: "invalid traveler", Err: err}
		}
		fe := verrs[0]
		return domain.ValidationError{
			Field: fmt.Sprintf("travelerDetails[%d].%s", i, fe.Field()),
			Msg:   travelerMessage(fe),
			Err:   err,
		}
	}
	return nil
}

func travelerMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "phone10":
		return "must be a 10-digit phone number"
	case "gstin":
		return "must be a valid 15-character GST number"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "notfuture":
		return "must not be in the future"
	case "min", "max":
		return fmt.Sprintf("length must satisfy %s=%s", fe.Tag(), fe.Param())
	default:
		return "is invalid"
	}
}
