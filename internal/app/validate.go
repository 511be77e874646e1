package app

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"apsny_travel/internal/domain"
)

// intlPhone matches the raw contact; separators such as spaces, dashes and
// parentheses are rejected, not stripped.
var intlPhone = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)

// BookingValidator checks a payload against the struct tags on
// domain.BookingPayload plus the custom rules registered here.
type BookingValidator struct {
	v   *validator.Validate
	loc *time.Location
	now func() time.Time
}

func NewBookingValidator(loc *time.Location, now func() time.Time) *BookingValidator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	bv := &BookingValidator{v: validator.New(validator.WithRequiredStructEnabled()), loc: loc, now: now}

	// report json names so messages attach to the form fields
	bv.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(bv.v, "intl_phone", func(fl validator.FieldLevel) bool {
		return intlPhone.MatchString(fl.Field().String())
	})
	mustRegister(bv.v, "future_date", func(fl validator.FieldLevel) bool {
		return bv.isFutureDate(fl.Field().String())
	})
	mustRegister(bv.v, "is_true", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.Bool && fl.Field().Bool()
	})
	return bv
}

// mustRegister panics on a rejected tag so a broken rule never goes unchecked.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// isFutureDate reports whether s names a calendar day after today in the
// configured zone; today itself is rejected.
func (bv *BookingValidator) isFutureDate(s string) bool {
	d, err := time.ParseInLocation(time.DateOnly, s, bv.loc)
	if err != nil {
		return false
	}
	y, m, day := bv.now().In(bv.loc).Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, bv.loc)
	return d.After(today)
}

// Validate returns nil or a ValidationFailed error with one localized message
// per offending field.
func (bv *BookingValidator) Validate(p domain.BookingPayload, locale string) error {
	err := bv.v.Struct(p)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return &domain.Error{Kind: domain.KindValidationFailed, Msg: "invalid booking payload", Err: err}
	}
	seen := make(map[string]bool, len(ves))
	fields := make([]domain.FieldError, 0, len(ves))
	for _, fe := range ves {
		if seen[fe.Field()] {
			continue
		}
		seen[fe.Field()] = true
		fields = append(fields, domain.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: Message(locale, fe.Field(), fe.Tag()),
		})
	}
	return &domain.Error{Kind: domain.KindValidationFailed, Msg: "booking payload is invalid", Fields: fields}
}

// Normalize trims surrounding whitespace from the free-text fields.
func Normalize(p domain.BookingPayload) domain.BookingPayload {
	p.TourTitle = strings.TrimSpace(p.TourTitle)
	p.ClientName = strings.TrimSpace(p.ClientName)
	p.ClientContact = strings.TrimSpace(p.ClientContact)
	p.DesiredDate = strings.TrimSpace(p.DesiredDate)
	p.ClientMessage = strings.TrimSpace(p.ClientMessage)
	return p
}
