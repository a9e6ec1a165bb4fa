package state

import "github.com/mmynk/motoledger/internal/apperr"

// UpdateMotorbikeForm applies one field edit to the add-motorbike form.
func (w *Workspace) UpdateMotorbikeForm(u FieldUpdate) (MotorbikeInput, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	form, err := w.motorbikeForm.Apply(u)
	if err != nil {
		return w.motorbikeForm, err
	}
	w.motorbikeForm = form
	return form, nil
}

// UpdatePartForm applies one field edit to the add-part form. Changing the
// target motorbike goes through the same checks as SelectPartFormMotorbike.
func (w *Workspace) UpdatePartForm(u FieldUpdate) (PartInput, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if u.Field == FieldMotorbikeID {
		return w.selectTarget(u.Value)
	}
	form, err := w.partForm.Apply(u)
	if err != nil {
		return w.partForm, err
	}
	w.partForm = form
	return form, nil
}

// SelectPartFormMotorbike sets the add-part target. Only unsold motorbikes
// can be selected.
func (w *Workspace) SelectPartFormMotorbike(id string) (PartInput, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectTarget(id)
}

func (w *Workspace) selectTarget(id string) (PartInput, error) {
	bike, ok := w.mirrored(id)
	if !ok {
		return w.partForm, apperr.NotFound("Motorbike with ID %s not found.", id)
	}
	if bike.IsSold {
		return w.partForm, apperr.InvalidState("Cannot add parts to '%s' as it is already sold.", bike.Name)
	}
	w.partForm.MotorbikeID = id
	return w.partForm, nil
}

// UpdateEditMotorbikeForm applies one field edit to the open edit-motorbike
// form.
func (w *Workspace) UpdateEditMotorbikeForm(u FieldUpdate) (EditMotorbikeForm, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.editMotorbikeOpen {
		return w.editMotorbike, apperr.Validation("No motorbike selected for editing.")
	}
	form, err := w.editMotorbike.Apply(u)
	if err != nil {
		return w.editMotorbike, err
	}
	w.editMotorbike = form
	return form, nil
}

// UpdateEditPartForm applies one field edit to the open edit-part form.
func (w *Workspace) UpdateEditPartForm(u FieldUpdate) (EditPartForm, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.editPartOpen {
		return w.editPart, apperr.Validation("No part selected for editing.")
	}
	form, err := w.editPart.Apply(u)
	if err != nil {
		return w.editPart, err
	}
	w.editPart = form
	return form, nil
}
