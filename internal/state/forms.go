package state

import (
	"strconv"
	"strings"

	"github.com/mmynk/motoledger/internal/apperr"
	"github.com/mmynk/motoledger/internal/models"
)

// Form field names accepted by FieldUpdate.
const (
	FieldName              = "name"
	FieldInitialCost       = "initial_cost"
	FieldTanyaInitialCost  = "tanya_initial_cost"
	FieldGeraldInitialCost = "gerald_initial_cost"
	FieldBuyer             = "buyer"
	FieldMotorbikeID       = "motorbike_id"
	FieldSource            = "source"
	FieldCost              = "cost"
	FieldIsSold            = "is_sold"
	FieldSoldValue         = "sold_value"
	FieldIgnore            = "ignore_from_calculations"
)

// FieldUpdate is one edit to a form input. Values are textual, as typed;
// boolean fields take "true" or "false".
type FieldUpdate struct {
	Field string
	Value string
}

func unknownField(form, field string) error {
	return apperr.Validation("Unknown %s field %q.", form, field)
}

func parseFlag(field, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, apperr.Validation("Invalid value %q for %s.", value, field)
	}
	return b, nil
}

// MotorbikeInput is the add-motorbike form.
type MotorbikeInput struct {
	Name              string
	InitialCost       string
	TanyaInitialCost  string
	GeraldInitialCost string
	Buyer             string
}

// Apply returns a copy of the form with u applied.
func (f MotorbikeInput) Apply(u FieldUpdate) (MotorbikeInput, error) {
	switch u.Field {
	case FieldName:
		f.Name = u.Value
	case FieldInitialCost:
		f.InitialCost = u.Value
	case FieldTanyaInitialCost:
		f.TanyaInitialCost = u.Value
	case FieldGeraldInitialCost:
		f.GeraldInitialCost = u.Value
	case FieldBuyer:
		f.Buyer = u.Value
	default:
		return f, unknownField("motorbike", u.Field)
	}
	return f, nil
}

// PartInput is the add-part form. MotorbikeID is the selected target bike.
type PartInput struct {
	MotorbikeID string
	Name        string
	Source      string
	Buyer       string
	Cost        string
}

func newPartInput(motorbikeID string) PartInput {
	return PartInput{MotorbikeID: motorbikeID, Buyer: models.DefaultBuyer()}
}

// Apply returns a copy of the form with u applied.
func (f PartInput) Apply(u FieldUpdate) (PartInput, error) {
	switch u.Field {
	case FieldMotorbikeID:
		f.MotorbikeID = u.Value
	case FieldName:
		f.Name = u.Value
	case FieldSource:
		f.Source = u.Value
	case FieldBuyer:
		f.Buyer = u.Value
	case FieldCost:
		f.Cost = u.Value
	default:
		return f, unknownField("part", u.Field)
	}
	return f, nil
}

// EditMotorbikeForm holds the motorbike being edited. MotorbikeID is empty
// while no edit is in progress.
type EditMotorbikeForm struct {
	MotorbikeID            string
	Name                   string
	InitialCost            string
	TanyaInitialCost       string
	GeraldInitialCost      string
	Buyer                  string
	IsSold                 bool
	SoldValue              string
	IgnoreFromCalculations bool
}

func editMotorbikeFormFrom(bike models.Motorbike) EditMotorbikeForm {
	f := EditMotorbikeForm{
		MotorbikeID:            bike.ID,
		Name:                   bike.Name,
		InitialCost:            bike.InitialCost.StringFixed(2),
		TanyaInitialCost:       bike.TanyaInitialCost.StringFixed(2),
		GeraldInitialCost:      bike.GeraldInitialCost.StringFixed(2),
		Buyer:                  bike.Buyer,
		IsSold:                 bike.IsSold,
		IgnoreFromCalculations: bike.IgnoreFromCalculations,
	}
	if v, ok := bike.EffectiveSoldValue(); ok {
		f.SoldValue = v.StringFixed(2)
	}
	return f
}

// Apply returns a copy of the form with u applied. Clearing the sold flag
// clears the sold value.
func (f EditMotorbikeForm) Apply(u FieldUpdate) (EditMotorbikeForm, error) {
	switch u.Field {
	case FieldName:
		f.Name = u.Value
	case FieldInitialCost:
		f.InitialCost = u.Value
	case FieldTanyaInitialCost:
		f.TanyaInitialCost = u.Value
	case FieldGeraldInitialCost:
		f.GeraldInitialCost = u.Value
	case FieldBuyer:
		f.Buyer = u.Value
	case FieldSoldValue:
		f.SoldValue = u.Value
	case FieldIsSold:
		sold, err := parseFlag(u.Field, u.Value)
		if err != nil {
			return f, err
		}
		f.IsSold = sold
		if !sold {
			f.SoldValue = ""
		}
	case FieldIgnore:
		ignore, err := parseFlag(u.Field, u.Value)
		if err != nil {
			return f, err
		}
		f.IgnoreFromCalculations = ignore
	default:
		return f, unknownField("motorbike", u.Field)
	}
	return f, nil
}

// EditPartForm holds the part being edited.
type EditPartForm struct {
	MotorbikeID string
	PartID      string
	Name        string
	Source      string
	Buyer       string
	Cost        string
}

func newEditPartForm() EditPartForm {
	return EditPartForm{Buyer: models.DefaultBuyer()}
}

func editPartFormFrom(part models.Part) EditPartForm {
	return EditPartForm{
		MotorbikeID: part.MotorbikeID,
		PartID:      part.ID,
		Name:        part.Name,
		Source:      part.Source,
		Buyer:       part.Buyer,
		Cost:        part.Cost.StringFixed(2),
	}
}

// Apply returns a copy of the form with u applied.
func (f EditPartForm) Apply(u FieldUpdate) (EditPartForm, error) {
	switch u.Field {
	case FieldName:
		f.Name = u.Value
	case FieldSource:
		f.Source = u.Value
	case FieldBuyer:
		f.Buyer = u.Value
	case FieldCost:
		f.Cost = u.Value
	default:
		return f, unknownField("part", u.Field)
	}
	return f, nil
}
