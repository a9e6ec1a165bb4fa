// Package state is the command layer of the ledger. A Workspace mirrors
// the stored motorbikes for one session, holds the transient form state and
// runs every command: validate, write to the store, reload the mirror.
package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mmynk/motoledger/internal/apperr"
	"github.com/mmynk/motoledger/internal/calculator"
	"github.com/mmynk/motoledger/internal/metrics"
	"github.com/mmynk/motoledger/internal/models"
	"github.com/mmynk/motoledger/internal/storage"
)

// Workspace is the state of one signed-in session.
// Commands are serialized: each one holds the lock from validation until
// the mirror has been reloaded.
type Workspace struct {
	mu    sync.Mutex
	store storage.Store

	motorbikes []models.Motorbike

	motorbikeForm MotorbikeInput
	partForm      PartInput

	editMotorbike     EditMotorbikeForm
	editMotorbikeOpen bool
	editPart          EditPartForm
	editPartOpen      bool
}

// NewWorkspace creates an empty workspace. Call Load before use.
func NewWorkspace(store storage.Store) *Workspace {
	return &Workspace{
		store:    store,
		partForm: newPartInput(""),
		editPart: newEditPartForm(),
	}
}

func (w *Workspace) run(command string, fn func() (string, error)) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	msg, err := fn()
	outcome := apperr.KindName(err)
	metrics.ObserveCommand(command, outcome)
	if err != nil {
		slog.Debug("Command rejected", "command", command, "outcome", outcome, "error", err)
	}
	return msg, err
}

// reload replaces the mirror with the stored motorbikes.
func (w *Workspace) reload(ctx context.Context) error {
	bikes, err := w.store.ListMotorbikes(ctx)
	if err != nil {
		return apperr.Storage(err)
	}
	w.motorbikes = bikes
	w.reconcileTarget()
	return nil
}

// refresh reloads after a command found the mirror stale and returns err.
// A reload failure is logged; err is what the caller reports.
func (w *Workspace) refresh(ctx context.Context, err error) error {
	if rerr := w.reload(ctx); rerr != nil {
		slog.Warn("Failed to reload motorbikes", "error", rerr)
	}
	return err
}

// reconcileTarget keeps the part-form target pointed at an unsold bike:
// the current one if still valid, else the first unsold bike, else none.
func (w *Workspace) reconcileTarget() {
	unsold := calculator.Unsold(w.motorbikes)
	for _, b := range unsold {
		if b.ID == w.partForm.MotorbikeID {
			return
		}
	}
	if len(unsold) > 0 {
		w.partForm.MotorbikeID = unsold[0].ID
	} else {
		w.partForm.MotorbikeID = ""
	}
}

// storeErr classifies a store failure. Not-found becomes notFound; anything
// else is a storage error.
func storeErr(err, notFound error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return notFound
	}
	return apperr.Storage(err)
}

func (w *Workspace) mirrored(id string) (models.Motorbike, bool) {
	for _, b := range w.motorbikes {
		if b.ID == id {
			return b, true
		}
	}
	return models.Motorbike{}, false
}

// Load reloads the mirror from the store.
func (w *Workspace) Load(ctx context.Context) error {
	_, err := w.run("load", func() (string, error) {
		return "", w.reload(ctx)
	})
	return err
}

// AddMotorbike creates a motorbike with no parts and clears the add form.
func (w *Workspace) AddMotorbike(ctx context.Context, in MotorbikeInput) (string, error) {
	return w.run("add_motorbike", func() (string, error) {
		return w.addMotorbike(ctx, in)
	})
}

// SubmitMotorbikeForm adds a motorbike from the current add form.
func (w *Workspace) SubmitMotorbikeForm(ctx context.Context) (string, error) {
	return w.run("add_motorbike", func() (string, error) {
		return w.addMotorbike(ctx, w.motorbikeForm)
	})
}

func (w *Workspace) addMotorbike(ctx context.Context, in MotorbikeInput) (string, error) {
	fields, err := validateMotorbike(in.Name, in.InitialCost, in.TanyaInitialCost, in.GeraldInitialCost, in.Buyer)
	if err != nil {
		return "", err
	}

	bike := &models.Motorbike{}
	fields.applyTo(bike)
	if err := w.store.CreateMotorbike(ctx, bike); err != nil {
		return "", apperr.Storage(err)
	}

	w.motorbikeForm = MotorbikeInput{}
	if err := w.reload(ctx); err != nil {
		return "", err
	}

	slog.Info("Motorbike added", "motorbike_id", bike.ID, "name", bike.Name)
	return fmt.Sprintf("Motorbike '%s' added.", bike.Name), nil
}

// AddPart adds a part to an unsold motorbike and clears the add-part form,
// keeping the selected target bike.
func (w *Workspace) AddPart(ctx context.Context, in PartInput) (string, error) {
	return w.run("add_part", func() (string, error) {
		return w.addPart(ctx, in)
	})
}

// SubmitPartForm adds a part from the current add-part form.
func (w *Workspace) SubmitPartForm(ctx context.Context) (string, error) {
	return w.run("add_part", func() (string, error) {
		return w.addPart(ctx, w.partForm)
	})
}

func (w *Workspace) addPart(ctx context.Context, in PartInput) (string, error) {
	motorbikeID := strings.TrimSpace(in.MotorbikeID)
	if motorbikeID == "" {
		return "", apperr.Validation("Please select or specify a motorbike.")
	}
	fields, err := validatePart(in.Name, in.Source, in.Buyer, in.Cost)
	if err != nil {
		return "", err
	}

	notFound := apperr.NotFound("Motorbike with ID %s not found.", motorbikeID)
	bike, err := w.store.GetMotorbike(ctx, motorbikeID)
	if err != nil {
		return "", w.refresh(ctx, storeErr(err, notFound))
	}
	if bike.IsSold {
		return "", apperr.InvalidState("Cannot add parts to '%s' as it is already sold.", bike.Name)
	}

	part := &models.Part{MotorbikeID: bike.ID}
	fields.applyTo(part)
	if err := w.store.CreatePart(ctx, part); err != nil {
		return "", w.refresh(ctx, storeErr(err, notFound))
	}

	w.partForm = newPartInput(w.partForm.MotorbikeID)
	if err := w.reload(ctx); err != nil {
		return "", err
	}

	slog.Info("Part added", "motorbike_id", bike.ID, "part_id", part.ID)
	return fmt.Sprintf("Part '%s' added to %s.", part.Name, bike.Name), nil
}

// OpenEditMotorbike loads a motorbike into the edit form and opens the dialog.
func (w *Workspace) OpenEditMotorbike(id string) error {
	_, err := w.run("open_edit_motorbike", func() (string, error) {
		bike, ok := w.mirrored(id)
		if !ok {
			return "", apperr.NotFound("Motorbike not found for editing.")
		}
		w.editMotorbike = editMotorbikeFormFrom(bike)
		w.editMotorbikeOpen = true
		return "", nil
	})
	return err
}

// SaveEditedMotorbike validates the edit form and writes it back. A sold
// value is only read while the sold flag is set; a blank one is stored as
// absent. The dialog stays open on validation errors so they can be fixed.
func (w *Workspace) SaveEditedMotorbike(ctx context.Context) (string, error) {
	return w.run("save_edited_motorbike", func() (string, error) {
		f := w.editMotorbike
		if !w.editMotorbikeOpen || f.MotorbikeID == "" {
			return "", apperr.Validation("No motorbike selected for editing.")
		}

		fields, err := validateMotorbike(f.Name, f.InitialCost, f.TanyaInitialCost, f.GeraldInitialCost, f.Buyer)
		if err != nil {
			return "", err
		}
		var soldValue decimal.NullDecimal
		if f.IsSold && strings.TrimSpace(f.SoldValue) != "" {
			v, err := parseNonNegative(soldValueField, strings.TrimSpace(f.SoldValue))
			if err != nil {
				return "", err
			}
			soldValue = decimal.NewNullDecimal(v)
		}

		notFound := apperr.NotFound("Motorbike not found in database for update.")
		bike, err := w.store.GetMotorbike(ctx, f.MotorbikeID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				w.closeEditMotorbike()
			}
			return "", w.refresh(ctx, storeErr(err, notFound))
		}

		fields.applyTo(bike)
		bike.IsSold = f.IsSold
		bike.SoldValue = soldValue
		bike.IgnoreFromCalculations = f.IgnoreFromCalculations
		if err := w.store.UpdateMotorbike(ctx, bike); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				w.closeEditMotorbike()
			}
			return "", w.refresh(ctx, storeErr(err, notFound))
		}

		w.closeEditMotorbike()
		if err := w.reload(ctx); err != nil {
			return "", err
		}

		slog.Info("Motorbike updated", "motorbike_id", bike.ID, "sold", bike.IsSold)
		return "Motorbike details updated.", nil
	})
}

// CloseEditMotorbikeDialog clears the edit form and hides the dialog.
func (w *Workspace) CloseEditMotorbikeDialog() {
	w.run("close_edit_motorbike", func() (string, error) {
		w.closeEditMotorbike()
		return "", nil
	})
}

func (w *Workspace) closeEditMotorbike() {
	w.editMotorbike = EditMotorbikeForm{}
	w.editMotorbikeOpen = false
}

// OpenEditPart loads a part into the edit form. Parts of sold motorbikes
// cannot be edited.
func (w *Workspace) OpenEditPart(motorbikeID, partID string) error {
	_, err := w.run("open_edit_part", func() (string, error) {
		bike, ok := w.mirrored(motorbikeID)
		if ok && bike.IsSold {
			return "", apperr.InvalidState("Cannot edit parts of '%s' as it is sold.", bike.Name)
		}
		part, found := bike.FindPart(partID)
		if !ok || !found {
			return "", apperr.NotFound("Part or motorbike not found for editing.")
		}
		w.editPart = editPartFormFrom(part)
		w.editPartOpen = true
		return "", nil
	})
	return err
}

// SaveEditedPart validates the edit form and writes the part back. The part
// must still belong to the same unsold motorbike.
func (w *Workspace) SaveEditedPart(ctx context.Context) (string, error) {
	return w.run("save_edited_part", func() (string, error) {
		f := w.editPart
		if !w.editPartOpen || f.MotorbikeID == "" || f.PartID == "" {
			return "", apperr.Validation("No part selected for editing.")
		}

		fields, err := validatePart(f.Name, f.Source, f.Buyer, f.Cost)
		if err != nil {
			return "", err
		}

		partGone := apperr.NotFound("Part not found in database for update.")
		part, err := w.store.GetPart(ctx, f.PartID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				w.closeEditPart()
			}
			return "", w.refresh(ctx, storeErr(err, partGone))
		}
		if part.MotorbikeID != f.MotorbikeID {
			w.closeEditPart()
			return "", w.refresh(ctx, partGone)
		}

		bike, err := w.store.GetMotorbike(ctx, f.MotorbikeID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				w.closeEditPart()
			}
			return "", w.refresh(ctx, storeErr(err, apperr.NotFound("Motorbike not found in database for update.")))
		}
		if bike.IsSold {
			w.closeEditPart()
			return "", w.refresh(ctx, apperr.InvalidState("Cannot edit parts of '%s' as it is sold.", bike.Name))
		}

		fields.applyTo(part)
		if err := w.store.UpdatePart(ctx, part); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				w.closeEditPart()
			}
			return "", w.refresh(ctx, storeErr(err, partGone))
		}

		w.closeEditPart()
		if err := w.reload(ctx); err != nil {
			return "", err
		}

		slog.Info("Part updated", "motorbike_id", bike.ID, "part_id", part.ID)
		return "Part details updated.", nil
	})
}

// CloseEditPartDialog clears the edit form and hides the dialog.
func (w *Workspace) CloseEditPartDialog() {
	w.run("close_edit_part", func() (string, error) {
		w.closeEditPart()
		return "", nil
	})
}

func (w *Workspace) closeEditPart() {
	w.editPart = newEditPartForm()
	w.editPartOpen = false
}

// DeleteMotorbike deletes a motorbike and its parts.
func (w *Workspace) DeleteMotorbike(ctx context.Context, id string) (string, error) {
	return w.run("delete_motorbike", func() (string, error) {
		if err := w.store.DeleteMotorbike(ctx, id); err != nil {
			return "", w.refresh(ctx, storeErr(err, apperr.NotFound("Motorbike not found in database for deletion.")))
		}

		if w.editMotorbike.MotorbikeID == id {
			w.closeEditMotorbike()
		}
		if w.editPart.MotorbikeID == id {
			w.closeEditPart()
		}
		if err := w.reload(ctx); err != nil {
			return "", err
		}

		slog.Info("Motorbike deleted", "motorbike_id", id)
		return "Motorbike deleted.", nil
	})
}

// DeletePart deletes a part from an unsold motorbike.
func (w *Workspace) DeletePart(ctx context.Context, motorbikeID, partID string) (string, error) {
	return w.run("delete_part", func() (string, error) {
		bike, err := w.store.GetMotorbike(ctx, motorbikeID)
		if err != nil {
			return "", w.refresh(ctx, storeErr(err, apperr.NotFound("Part or motorbike not found for deletion.")))
		}
		if bike.IsSold {
			return "", apperr.InvalidState("Cannot delete parts from '%s' as it is already sold.", bike.Name)
		}

		partGone := apperr.NotFound("Part not found in database.")
		part, err := w.store.GetPart(ctx, partID)
		if err != nil {
			return "", w.refresh(ctx, storeErr(err, partGone))
		}
		if part.MotorbikeID != motorbikeID {
			return "", apperr.NotFound("Part does not belong to the specified motorbike.")
		}

		if err := w.store.DeletePart(ctx, partID); err != nil {
			return "", w.refresh(ctx, storeErr(err, partGone))
		}

		if w.editPart.PartID == partID {
			w.closeEditPart()
		}
		if err := w.reload(ctx); err != nil {
			return "", err
		}

		slog.Info("Part deleted", "motorbike_id", motorbikeID, "part_id", partID)
		return "Part deleted.", nil
	})
}
