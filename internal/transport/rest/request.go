package rest

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
	"github.com/heartmarshall/safetylog-backend/internal/service/establishment"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = domain.NewValidationError("body", "invalid JSON body")

// createRequest is the POST body. Pointer fields distinguish absent from
// zero so the service can report "required".
type createRequest struct {
	Name                *string `json:"name"`
	Address             *string `json:"address"`
	City                *string `json:"city"`
	State               *string `json:"state"`
	Zip                 *string `json:"zip"`
	NAICSCode           *string `json:"naicsCode"`
	IndustryDescription *string `json:"industryDescription"`
	AverageEmployees    *int    `json:"averageEmployees"`
}

func (req createRequest) input() establishment.CreateInput {
	return establishment.CreateInput{
		Name:                deref(req.Name),
		Address:             deref(req.Address),
		City:                deref(req.City),
		State:               deref(req.State),
		Zip:                 deref(req.Zip),
		NAICSCode:           req.NAICSCode,
		IndustryDescription: req.IndustryDescription,
		AverageEmployees:    req.AverageEmployees,
	}
}

func decodeCreate(w http.ResponseWriter, r *http.Request) (establishment.CreateInput, error) {
	var req createRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return establishment.CreateInput{}, decodeError(err)
	}
	if dec.More() {
		return establishment.CreateInput{}, errInvalidBody
	}

	return req.input(), nil
}

// decodePatch reads a PATCH body into a patch holding only the keys the
// caller sent. A JSON null clears an optional field.
func decodePatch(w http.ResponseWriter, r *http.Request) (domain.EstablishmentPatch, error) {
	var raw map[string]json.RawMessage
	var patch domain.EstablishmentPatch

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return patch, errInvalidBody
	}
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return patch, errInvalidBody
	}

	var fieldErrs []domain.FieldError
	for key, value := range raw {
		f := domain.EstablishmentField(key)
		if !f.IsValid() {
			fieldErrs = append(fieldErrs, domain.FieldError{Field: key, Message: "unknown field"})
			continue
		}
		if msg := setPatchField(&patch, f, value); msg != "" {
			fieldErrs = append(fieldErrs, domain.FieldError{Field: key, Message: msg})
		}
	}
	if len(fieldErrs) > 0 {
		sortFieldErrors(fieldErrs)
		return patch, domain.NewValidationErrors(fieldErrs)
	}

	return patch, nil
}

// setPatchField decodes value into patch and returns a field message on failure.
func setPatchField(patch *domain.EstablishmentPatch, f domain.EstablishmentField, value json.RawMessage) string {
	isNull := bytes.Equal(bytes.TrimSpace(value), []byte("null"))

	switch f {
	case domain.FieldNAICSCode, domain.FieldIndustryDescription:
		var s *string
		if !isNull {
			var v string
			if err := json.Unmarshal(value, &v); err != nil {
				return "must be a string"
			}
			s = &v
		}
		if f == domain.FieldNAICSCode {
			patch.SetNAICSCode(s)
		} else {
			patch.SetIndustryDescription(s)
		}

	case domain.FieldAverageEmployees:
		if isNull {
			return "must not be null"
		}
		var n int
		if err := json.Unmarshal(value, &n); err != nil {
			return "must be an integer"
		}
		patch.SetAverageEmployees(n)

	default:
		if isNull {
			return "must not be null"
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return "must be a string"
		}
		switch f {
		case domain.FieldName:
			patch.SetName(s)
		case domain.FieldAddress:
			patch.SetAddress(s)
		case domain.FieldCity:
			patch.SetCity(s)
		case domain.FieldState:
			patch.SetState(s)
		case domain.FieldZip:
			patch.SetZip(s)
		}
	}
	return ""
}

func decodeError(err error) error {
	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return domain.NewValidationError(strings.Trim(field, `"`), "unknown field")
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewValidationError(typeErr.Field, "must be "+jsonKind(typeErr.Type.Kind().String()))
	}
	return errInvalidBody
}

func jsonKind(goKind string) string {
	switch goKind {
	case "int", "int64", "int32":
		return "an integer"
	default:
		return fmt.Sprintf("a %s", goKind)
	}
}

func sortFieldErrors(errs []domain.FieldError) {
	rank := func(name string) int {
		if i := slices.Index(domain.EstablishmentFields, domain.EstablishmentField(name)); i >= 0 {
			return i
		}
		return len(domain.EstablishmentFields)
	}
	slices.SortFunc(errs, func(a, b domain.FieldError) int {
		return cmp.Or(cmp.Compare(rank(a.Field), rank(b.Field)), strings.Compare(a.Field, b.Field))
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
