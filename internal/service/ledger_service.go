package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/motoledger/internal/apperr"
	"github.com/mmynk/motoledger/internal/calculator"
	"github.com/mmynk/motoledger/internal/middleware"
	"github.com/mmynk/motoledger/internal/state"
)

// LedgerService implements the LedgerService RPC interface. Each session
// works on its own workspace.
type LedgerService struct {
	registry   *state.Registry
	authorizer middleware.Authorizer
}

// NewLedgerService creates a ledger service. authorizer resolves the bearer
// token of every call to a session.
func NewLedgerService(registry *state.Registry, authorizer middleware.Authorizer) *LedgerService {
	return &LedgerService{registry: registry, authorizer: authorizer}
}

func (s *LedgerService) workspace(ctx context.Context) (*state.Workspace, error) {
	sessionID := middleware.GetSessionID(ctx)
	if sessionID == "" {
		return nil, apperr.Auth("Please sign in.", nil)
	}
	return s.registry.Get(ctx, sessionID)
}

// respond builds the reply shared by every command: its message and a
// fresh snapshot of the workspace.
func respond(ws *state.Workspace, msg string) *connect.Response[StateResponse] {
	return connect.NewResponse(&StateResponse{
		Message: msg,
		State:   toStateView(ws.View()),
	})
}

// Load reloads the session's motorbikes from storage.
func (s *LedgerService) Load(ctx context.Context, req *connect.Request[LoadRequest]) (*connect.Response[StateResponse], error) {
	slog.Info("Load request received", "session_id", middleware.GetSessionID(ctx))

	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}
	if err := ws.Load(ctx); err != nil {
		slog.Error("Load failed", "error", err)
		return nil, err
	}
	return respond(ws, ""), nil
}

// GetDashboard returns the headline totals.
func (s *LedgerService) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[DashboardResponse], error) {
	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&DashboardResponse{Dashboard: toDashboardView(ws.Dashboard())}), nil
}

// GetAnalytics returns the per-investor breakdown for the filtered bikes.
func (s *LedgerService) GetAnalytics(ctx context.Context, req *connect.Request[GetAnalyticsRequest]) (*connect.Response[AnalyticsResponse], error) {
	slog.Info("GetAnalytics request received", "filter", req.Msg.Filter)

	filter, err := calculator.ParseFilter(req.Msg.Filter)
	if err != nil {
		return nil, apperr.Validation("Unknown filter %q.", req.Msg.Filter)
	}
	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&AnalyticsResponse{Analytics: toAnalyticsView(ws.Analytics(filter))}), nil
}

// GetMotorbike returns one motorbike with its parts and derived costs.
func (s *LedgerService) GetMotorbike(ctx context.Context, req *connect.Request[GetMotorbikeRequest]) (*connect.Response[MotorbikeResponse], error) {
	slog.Info("GetMotorbike request received", "motorbike_id", req.Msg.MotorbikeID)

	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}
	bike, err := ws.Detail(req.Msg.MotorbikeID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&MotorbikeResponse{Motorbike: toMotorbikeView(bike)}), nil
}

// AddMotorbike adds a motorbike from the request form, or from the session's
// add form when none is given.
func (s *LedgerService) AddMotorbike(ctx context.Context, req *connect.Request[AddMotorbikeRequest]) (*connect.Response[StateResponse], error) {
	slog.Info("AddMotorbike request received", "inline_form", req.Msg.Form != nil)

	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}

	var msg string
	if f := req.Msg.Form; f != nil {
		msg, err = ws.AddMotorbike(ctx, state.MotorbikeInput{
			Name:              f.Name,
			InitialCost:       f.InitialCost,
			TanyaInitialCost:  f.TanyaInitialCost,
			GeraldInitialCost: f.GeraldInitialCost,
			Buyer:             f.Buyer,
		})
	} else {
		msg, err = ws.SubmitMotorbikeForm(ctx)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("Motorbike added", "message", msg)
	return respond(ws, msg), nil
}

// AddPart adds a part from the request form, or from the session's part form
// when none is given.
func (s *LedgerService) AddPart(ctx context.Context, req *connect.Request[AddPartRequest]) (*connect.Response[StateResponse], error) {
	slog.Info("AddPart request received", "inline_form", req.Msg.Form != nil)

	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}

	var msg string
	if f := req.Msg.Form; f != nil {
		msg, err = ws.AddPart(ctx, state.PartInput{
			MotorbikeID: f.MotorbikeID,
			Name:        f.Name,
			Source:      f.Source,
			Buyer:       f.Buyer,
			Cost:        f.Cost,
		})
	} else {
		msg, err = ws.SubmitPartForm(ctx)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("Part added", "message", msg)
	return respond(ws, msg), nil
}

// UpdateForm applies one field edit to one of the session's forms.
func (s *LedgerService) UpdateForm(ctx context.Context, req *connect.Request[UpdateFormRequest]) (*connect.Response[StateResponse], error) {
	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}

	u := state.FieldUpdate{Field: req.Msg.Field, Value: req.Msg.Value}
	switch req.Msg.Form {
	case FormMotorbike:
		_, err = ws.UpdateMotorbikeForm(u)
	case FormPart:
		_, err = ws.UpdatePartForm(u)
	case FormEditMotorbike:
		_, err = ws.UpdateEditMotorbikeForm(u)
	case FormEditPart:
		_, err = ws.UpdateEditPartForm(u)
	default:
		err = apperr.Validation("Unknown form %q.", req.Msg.Form)
	}
	if err != nil {
		return nil, err
	}
	return respond(ws, ""), nil
}

// OpenEditMotorbike opens the edit dialog for a motorbike.
func (s *LedgerService) OpenEditMotorbike(ctx context.Context, req *connect.Request[OpenEditMotorbikeRequest]) (*connect.Response[StateResponse], error) {
	slog.Info("OpenEditMotorbike request received", "motorbike_id", req.Msg.MotorbikeID)

	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}
	if err := ws.OpenEditMotorbike(req.Msg.MotorbikeID); err != nil {
		return nil, err
	}
	return respond(ws, ""), nil
}

// SaveEditedMotorbike persists the motorbike edit dialog.
func (s *LedgerService) SaveEditedMotorbike(ctx context.Context, req *connect.Request[SaveEditedMotorbikeRequest]) (*connect.Response[StateResponse], error) {
	slog.Info("SaveEditedMotorbike request received")

	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := ws.SaveEditedMotorbike(ctx)
	if err != nil {
		return nil, err
	}
	return respond(ws, msg), nil
}

// CloseEditMotorbikeDialog discards the motorbike edit dialog.
func (s *LedgerService) CloseEditMotorbikeDialog(ctx context.Context, req *connect.Request[CloseDialogRequest]) (*connect.Response[StateResponse], error) {
	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}
	ws.CloseEditMotorbikeDialog()
	return respond(ws, ""), nil
}

// OpenEditPart opens the edit dialog for a part.
func (s *LedgerService) OpenEditPart(ctx context.Context, req *connect.Request[OpenEditPartRequest]) (*connect.Response[StateResponse], error) {
	slog.Info("OpenEditPart request received",
		"motorbike_id", req.Msg.MotorbikeID,
		"part_id", req.Msg.PartID,
	)

	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}
	if err := ws.OpenEditPart(req.Msg.MotorbikeID, req.Msg.PartID); err != nil {
		return nil, err
	}
	return respond(ws, ""), nil
}

// SaveEditedPart persists the part edit dialog.
func (s *LedgerService) SaveEditedPart(ctx context.Context, req *connect.Request[SaveEditedPartRequest]) (*connect.Response[StateResponse], error) {
	slog.Info("SaveEditedPart request received")

	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := ws.SaveEditedPart(ctx)
	if err != nil {
		return nil, err
	}
	return respond(ws, msg), nil
}

// CloseEditPartDialog discards the part edit dialog.
func (s *LedgerService) CloseEditPartDialog(ctx context.Context, req *connect.Request[CloseDialogRequest]) (*connect.Response[StateResponse], error) {
	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}
	ws.CloseEditPartDialog()
	return respond(ws, ""), nil
}

// DeleteMotorbike deletes a motorbike and its parts.
func (s *LedgerService) DeleteMotorbike(ctx context.Context, req *connect.Request[DeleteMotorbikeRequest]) (*connect.Response[StateResponse], error) {
	slog.Info("DeleteMotorbike request received", "motorbike_id", req.Msg.MotorbikeID)

	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := ws.DeleteMotorbike(ctx, req.Msg.MotorbikeID)
	if err != nil {
		return nil, err
	}
	return respond(ws, msg), nil
}

// DeletePart deletes one part of an unsold motorbike.
func (s *LedgerService) DeletePart(ctx context.Context, req *connect.Request[DeletePartRequest]) (*connect.Response[StateResponse], error) {
	slog.Info("DeletePart request received",
		"motorbike_id", req.Msg.MotorbikeID,
		"part_id", req.Msg.PartID,
	)

	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := ws.DeletePart(ctx, req.Msg.MotorbikeID, req.Msg.PartID)
	if err != nil {
		return nil, err
	}
	return respond(ws, msg), nil
}
