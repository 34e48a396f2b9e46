package domain

// EstablishmentField names an establishment attribute that an update may set.
// The string value is the API field name.
type EstablishmentField string

const (
	FieldName                EstablishmentField = "name"
	FieldAddress             EstablishmentField = "address"
	FieldCity                EstablishmentField = "city"
	FieldState               EstablishmentField = "state"
	FieldZip                 EstablishmentField = "zip"
	FieldNAICSCode           EstablishmentField = "naicsCode"
	FieldIndustryDescription EstablishmentField = "industryDescription"
	FieldAverageEmployees    EstablishmentField = "averageEmployees"
)

// EstablishmentFields lists every patchable field in canonical order.
var EstablishmentFields = []EstablishmentField{
	FieldName,
	FieldAddress,
	FieldCity,
	FieldState,
	FieldZip,
	FieldNAICSCode,
	FieldIndustryDescription,
	FieldAverageEmployees,
}

func (f EstablishmentField) String() string { return string(f) }

// Column returns the database column backing the field.
func (f EstablishmentField) Column() string {
	switch f {
	case FieldNAICSCode:
		return "naics_code"
	case FieldIndustryDescription:
		return "industry_description"
	case FieldAverageEmployees:
		return "average_employees"
	default:
		return string(f)
	}
}

// IsValid reports whether f is a known patchable field.
func (f EstablishmentField) IsValid() bool {
	for _, known := range EstablishmentFields {
		if f == known {
			return true
		}
	}
	return false
}

// EstablishmentPatch holds only the fields present in an update request.
// Absent fields are untouched; optional text fields set to nil are cleared.
//
// Value types: string for required text fields, *string for NAICSCode and
// IndustryDescription, int for AverageEmployees.
type EstablishmentPatch struct {
	values map[EstablishmentField]any
}

func (p *EstablishmentPatch) set(f EstablishmentField, v any) {
	if p.values == nil {
		p.values = make(map[EstablishmentField]any, len(EstablishmentFields))
	}
	p.values[f] = v
}

func (p *EstablishmentPatch) SetName(v string)    { p.set(FieldName, v) }
func (p *EstablishmentPatch) SetAddress(v string) { p.set(FieldAddress, v) }
func (p *EstablishmentPatch) SetCity(v string)    { p.set(FieldCity, v) }
func (p *EstablishmentPatch) SetState(v string)   { p.set(FieldState, v) }
func (p *EstablishmentPatch) SetZip(v string)     { p.set(FieldZip, v) }

// SetNAICSCode sets the classification code; nil clears it.
func (p *EstablishmentPatch) SetNAICSCode(v *string) { p.set(FieldNAICSCode, v) }

// SetIndustryDescription sets the description; nil clears it.
func (p *EstablishmentPatch) SetIndustryDescription(v *string) {
	p.set(FieldIndustryDescription, v)
}

func (p *EstablishmentPatch) SetAverageEmployees(v int) { p.set(FieldAverageEmployees, v) }

// Get returns the value for f and whether it is present.
func (p EstablishmentPatch) Get(f EstablishmentField) (any, bool) {
	v, ok := p.values[f]
	return v, ok
}

// Has reports whether f is present.
func (p EstablishmentPatch) Has(f EstablishmentField) bool {
	_, ok := p.values[f]
	return ok
}

// Len returns the number of present fields.
func (p EstablishmentPatch) Len() int { return len(p.values) }

// Fields returns the present fields in canonical order.
func (p EstablishmentPatch) Fields() []EstablishmentField {
	fields := make([]EstablishmentField, 0, len(p.values))
	for _, f := range EstablishmentFields {
		if _, ok := p.values[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Apply returns a copy of e with the present fields replaced.
func (p EstablishmentPatch) Apply(e Establishment) Establishment {
	for f, v := range p.values {
		switch f {
		case FieldName:
			e.Name = v.(string)
		case FieldAddress:
			e.Address = v.(string)
		case FieldCity:
			e.City = v.(string)
		case FieldState:
			e.State = v.(string)
		case FieldZip:
			e.Zip = v.(string)
		case FieldNAICSCode:
			e.NAICSCode = v.(*string)
		case FieldIndustryDescription:
			e.IndustryDescription = v.(*string)
		case FieldAverageEmployees:
			e.AverageEmployees = v.(int)
		}
	}
	return e
}
