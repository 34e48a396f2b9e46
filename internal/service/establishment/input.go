package establishment

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "us_state", func(fl validator.FieldLevel) bool {
		return domain.IsUSStateCode(fl.Field().String())
	})
	mustRegister(v, "us_zip", func(fl validator.FieldLevel) bool {
		return zipPattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// fieldRules are applied identically on create and to every field present
// in an update. String lengths are counted in runes.
var fieldRules = map[domain.EstablishmentField]string{
	domain.FieldName:                fmt.Sprintf("required,max=%d", domain.MaxNameLength),
	domain.FieldAddress:             fmt.Sprintf("required,max=%d", domain.MaxAddressLength),
	domain.FieldCity:                fmt.Sprintf("required,max=%d", domain.MaxCityLength),
	domain.FieldState:               "required,len=2,us_state",
	domain.FieldZip:                 "required,us_zip",
	domain.FieldNAICSCode:           "len=6,number",
	domain.FieldIndustryDescription: fmt.Sprintf("max=%d", domain.MaxIndustryDescriptionLength),
	domain.FieldAverageEmployees:    fmt.Sprintf("min=0,max=%d", domain.MaxAverageEmployees),
}

// CreateInput holds the parameters for creating an establishment.
// AverageEmployees is a pointer so that a missing value is reported as
// required instead of silently becoming zero.
type CreateInput struct {
	Name                string
	Address             string
	City                string
	State               string
	Zip                 string
	NAICSCode           *string
	IndustryDescription *string
	AverageEmployees    *int
}

// Normalize trims text, uppercases the state code and turns blank optional
// fields into absent ones.
func (i CreateInput) Normalize() CreateInput {
	return CreateInput{
		Name:                strings.TrimSpace(i.Name),
		Address:             strings.TrimSpace(i.Address),
		City:                strings.TrimSpace(i.City),
		State:               domain.NormalizeStateCode(i.State),
		Zip:                 strings.TrimSpace(i.Zip),
		NAICSCode:           trimOrNil(i.NAICSCode),
		IndustryDescription: trimOrNil(i.IndustryDescription),
		AverageEmployees:    i.AverageEmployees,
	}
}

// Validate checks the normalized form of all fields and collects all errors.
func (i CreateInput) Validate() error {
	n := i.Normalize()

	var errs []domain.FieldError
	errs = appendFieldError(errs, domain.FieldName, n.Name)
	errs = appendFieldError(errs, domain.FieldAddress, n.Address)
	errs = appendFieldError(errs, domain.FieldCity, n.City)
	errs = appendFieldError(errs, domain.FieldState, n.State)
	errs = appendFieldError(errs, domain.FieldZip, n.Zip)
	errs = appendFieldError(errs, domain.FieldNAICSCode, n.NAICSCode)
	errs = appendFieldError(errs, domain.FieldIndustryDescription, n.IndustryDescription)
	if n.AverageEmployees == nil {
		errs = append(errs, domain.FieldError{Field: domain.FieldAverageEmployees.String(), Message: "required"})
	} else {
		errs = appendFieldError(errs, domain.FieldAverageEmployees, *n.AverageEmployees)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// establishment builds the row to insert for owner. Call on normalized input.
func (i CreateInput) establishment(owner domain.OwnerID) domain.Establishment {
	e := domain.Establishment{
		UserID:              owner,
		Name:                i.Name,
		Address:             i.Address,
		City:                i.City,
		State:               i.State,
		Zip:                 i.Zip,
		NAICSCode:           i.NAICSCode,
		IndustryDescription: i.IndustryDescription,
	}
	if i.AverageEmployees != nil {
		e.AverageEmployees = *i.AverageEmployees
	}
	return e
}

// NormalizePatch returns a copy of p with the same normalization as
// CreateInput.Normalize applied to every present field. A blank optional
// text field becomes an explicit clear.
func NormalizePatch(p domain.EstablishmentPatch) domain.EstablishmentPatch {
	var out domain.EstablishmentPatch
	for _, f := range p.Fields() {
		v, _ := p.Get(f)
		switch f {
		case domain.FieldName:
			out.SetName(strings.TrimSpace(v.(string)))
		case domain.FieldAddress:
			out.SetAddress(strings.TrimSpace(v.(string)))
		case domain.FieldCity:
			out.SetCity(strings.TrimSpace(v.(string)))
		case domain.FieldState:
			out.SetState(domain.NormalizeStateCode(v.(string)))
		case domain.FieldZip:
			out.SetZip(strings.TrimSpace(v.(string)))
		case domain.FieldNAICSCode:
			out.SetNAICSCode(trimOrNil(v.(*string)))
		case domain.FieldIndustryDescription:
			out.SetIndustryDescription(trimOrNil(v.(*string)))
		case domain.FieldAverageEmployees:
			out.SetAverageEmployees(v.(int))
		}
	}
	return out
}

// ValidatePatch checks the normalized form of every present field with the
// create rules. An empty patch is rejected.
func ValidatePatch(p domain.EstablishmentPatch) error {
	if p.Len() == 0 {
		return domain.NewValidationError("input", "at least one field must be provided")
	}

	n := NormalizePatch(p)

	var errs []domain.FieldError
	for _, f := range n.Fields() {
		v, _ := n.Get(f)
		errs = appendFieldError(errs, f, v)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// appendFieldError validates value against the rule for f. A nil optional
// value is absent and always valid.
func appendFieldError(errs []domain.FieldError, f domain.EstablishmentField, value any) []domain.FieldError {
	if s, ok := value.(*string); ok {
		if s == nil {
			return errs
		}
		value = *s
	}

	err := validate.Var(value, fieldRules[f])
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return append(errs, domain.FieldError{Field: f.String(), Message: "invalid value"})
	}
	return append(errs, domain.FieldError{Field: f.String(), Message: fieldMessage(f, verrs[0])})
}

func fieldMessage(f domain.EstablishmentField, fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "required"
	case "max":
		if isText {
			return fmt.Sprintf("max %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "len":
		if f == domain.FieldNAICSCode {
			return "must be exactly 6 digits"
		}
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "number":
		return "must contain only digits"
	case "us_state":
		return "must be a valid US state code"
	case "us_zip":
		return "must be a 5-digit ZIP code or ZIP+4"
	default:
		return "invalid value"
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
