package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/motoledger/internal/middleware"
)

const (
	// AuthServiceName is the fully-qualified name of the AuthService service.
	AuthServiceName = "motoledger.v1.AuthService"
	// LedgerServiceName is the fully-qualified name of the LedgerService service.
	LedgerServiceName = "motoledger.v1.LedgerService"
)

// Procedure paths. They follow the Connect convention of
// /<service>/<method>.
const (
	AuthServiceSignUpProcedure       = "/motoledger.v1.AuthService/SignUp"
	AuthServiceSignInProcedure       = "/motoledger.v1.AuthService/SignIn"
	AuthServiceSignOutProcedure      = "/motoledger.v1.AuthService/SignOut"
	AuthServiceCheckSessionProcedure = "/motoledger.v1.AuthService/CheckSession"

	LedgerServiceLoadProcedure                     = "/motoledger.v1.LedgerService/Load"
	LedgerServiceGetDashboardProcedure             = "/motoledger.v1.LedgerService/GetDashboard"
	LedgerServiceGetAnalyticsProcedure             = "/motoledger.v1.LedgerService/GetAnalytics"
	LedgerServiceGetMotorbikeProcedure             = "/motoledger.v1.LedgerService/GetMotorbike"
	LedgerServiceAddMotorbikeProcedure             = "/motoledger.v1.LedgerService/AddMotorbike"
	LedgerServiceAddPartProcedure                  = "/motoledger.v1.LedgerService/AddPart"
	LedgerServiceUpdateFormProcedure               = "/motoledger.v1.LedgerService/UpdateForm"
	LedgerServiceOpenEditMotorbikeProcedure        = "/motoledger.v1.LedgerService/OpenEditMotorbike"
	LedgerServiceSaveEditedMotorbikeProcedure      = "/motoledger.v1.LedgerService/SaveEditedMotorbike"
	LedgerServiceCloseEditMotorbikeDialogProcedure = "/motoledger.v1.LedgerService/CloseEditMotorbikeDialog"
	LedgerServiceOpenEditPartProcedure             = "/motoledger.v1.LedgerService/OpenEditPart"
	LedgerServiceSaveEditedPartProcedure           = "/motoledger.v1.LedgerService/SaveEditedPart"
	LedgerServiceCloseEditPartDialogProcedure      = "/motoledger.v1.LedgerService/CloseEditPartDialog"
	LedgerServiceDeleteMotorbikeProcedure          = "/motoledger.v1.LedgerService/DeleteMotorbike"
	LedgerServiceDeletePartProcedure               = "/motoledger.v1.LedgerService/DeletePart"
)

// handle registers a unary procedure on mux. Every procedure speaks the JSON
// codec and maps application errors to connect codes.
func handle[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
	interceptors ...connect.Interceptor,
) {
	handlerOpts := append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	interceptors = append([]connect.Interceptor{middleware.ErrorInterceptor()}, interceptors...)
	handlerOpts = append(handlerOpts, connect.WithInterceptors(interceptors...))
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, handlerOpts...))
}

// NewAuthServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself. SignOut requires a live session.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	requireSession := middleware.RequireSession(svc.gate)

	handle(mux, AuthServiceSignUpProcedure, svc.SignUp, opts)
	handle(mux, AuthServiceSignInProcedure, svc.SignIn, opts)
	handle(mux, AuthServiceSignOutProcedure, svc.SignOut, opts, requireSession)
	handle(mux, AuthServiceCheckSessionProcedure, svc.CheckSession, opts)

	return "/" + AuthServiceName + "/", mux
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. Every procedure requires a live session.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	requireSession := middleware.RequireSession(svc.authorizer)

	handle(mux, LedgerServiceLoadProcedure, svc.Load, opts, requireSession)
	handle(mux, LedgerServiceGetDashboardProcedure, svc.GetDashboard, opts, requireSession)
	handle(mux, LedgerServiceGetAnalyticsProcedure, svc.GetAnalytics, opts, requireSession)
	handle(mux, LedgerServiceGetMotorbikeProcedure, svc.GetMotorbike, opts, requireSession)
	handle(mux, LedgerServiceAddMotorbikeProcedure, svc.AddMotorbike, opts, requireSession)
	handle(mux, LedgerServiceAddPartProcedure, svc.AddPart, opts, requireSession)
	handle(mux, LedgerServiceUpdateFormProcedure, svc.UpdateForm, opts, requireSession)
	handle(mux, LedgerServiceOpenEditMotorbikeProcedure, svc.OpenEditMotorbike, opts, requireSession)
	handle(mux, LedgerServiceSaveEditedMotorbikeProcedure, svc.SaveEditedMotorbike, opts, requireSession)
	handle(mux, LedgerServiceCloseEditMotorbikeDialogProcedure, svc.CloseEditMotorbikeDialog, opts, requireSession)
	handle(mux, LedgerServiceOpenEditPartProcedure, svc.OpenEditPart, opts, requireSession)
	handle(mux, LedgerServiceSaveEditedPartProcedure, svc.SaveEditedPart, opts, requireSession)
	handle(mux, LedgerServiceCloseEditPartDialogProcedure, svc.CloseEditPartDialog, opts, requireSession)
	handle(mux, LedgerServiceDeleteMotorbikeProcedure, svc.DeleteMotorbike, opts, requireSession)
	handle(mux, LedgerServiceDeletePartProcedure, svc.DeletePart, opts, requireSession)

	return "/" + LedgerServiceName + "/", mux
}

func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	clientOpts := append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return connect.NewClient[Req, Res](httpClient, baseURL+procedure, clientOpts...)
}

// AuthServiceClient is a client for the motoledger.v1.AuthService service.
type AuthServiceClient struct {
	signUp       *connect.Client[SignUpRequest, SignInResponse]
	signIn       *connect.Client[SignInRequest, SignInResponse]
	signOut      *connect.Client[SignOutRequest, SignOutResponse]
	checkSession *connect.Client[CheckSessionRequest, CheckSessionResponse]
}

// NewAuthServiceClient constructs a client for the motoledger.v1.AuthService
// service. The URL should be the base URL of the server, e.g.
// http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	return &AuthServiceClient{
		signUp:       newClient[SignUpRequest, SignInResponse](httpClient, baseURL, AuthServiceSignUpProcedure, opts),
		signIn:       newClient[SignInRequest, SignInResponse](httpClient, baseURL, AuthServiceSignInProcedure, opts),
		signOut:      newClient[SignOutRequest, SignOutResponse](httpClient, baseURL, AuthServiceSignOutProcedure, opts),
		checkSession: newClient[CheckSessionRequest, CheckSessionResponse](httpClient, baseURL, AuthServiceCheckSessionProcedure, opts),
	}
}

// SignUp calls motoledger.v1.AuthService.SignUp.
func (c *AuthServiceClient) SignUp(ctx context.Context, req *connect.Request[SignUpRequest]) (*connect.Response[SignInResponse], error) {
	return c.signUp.CallUnary(ctx, req)
}

// SignIn calls motoledger.v1.AuthService.SignIn.
func (c *AuthServiceClient) SignIn(ctx context.Context, req *connect.Request[SignInRequest]) (*connect.Response[SignInResponse], error) {
	return c.signIn.CallUnary(ctx, req)
}

// SignOut calls motoledger.v1.AuthService.SignOut.
func (c *AuthServiceClient) SignOut(ctx context.Context, req *connect.Request[SignOutRequest]) (*connect.Response[SignOutResponse], error) {
	return c.signOut.CallUnary(ctx, req)
}

// CheckSession calls motoledger.v1.AuthService.CheckSession.
func (c *AuthServiceClient) CheckSession(ctx context.Context, req *connect.Request[CheckSessionRequest]) (*connect.Response[CheckSessionResponse], error) {
	return c.checkSession.CallUnary(ctx, req)
}

// LedgerServiceClient is a client for the motoledger.v1.LedgerService
// service. Requests must carry the bearer token from SignIn.
type LedgerServiceClient struct {
	load                     *connect.Client[LoadRequest, StateResponse]
	getDashboard             *connect.Client[GetDashboardRequest, DashboardResponse]
	getAnalytics             *connect.Client[GetAnalyticsRequest, AnalyticsResponse]
	getMotorbike             *connect.Client[GetMotorbikeRequest, MotorbikeResponse]
	addMotorbike             *connect.Client[AddMotorbikeRequest, StateResponse]
	addPart                  *connect.Client[AddPartRequest, StateResponse]
	updateForm               *connect.Client[UpdateFormRequest, StateResponse]
	openEditMotorbike        *connect.Client[OpenEditMotorbikeRequest, StateResponse]
	saveEditedMotorbike      *connect.Client[SaveEditedMotorbikeRequest, StateResponse]
	closeEditMotorbikeDialog *connect.Client[CloseDialogRequest, StateResponse]
	openEditPart             *connect.Client[OpenEditPartRequest, StateResponse]
	saveEditedPart           *connect.Client[SaveEditedPartRequest, StateResponse]
	closeEditPartDialog      *connect.Client[CloseDialogRequest, StateResponse]
	deleteMotorbike          *connect.Client[DeleteMotorbikeRequest, StateResponse]
	deletePart               *connect.Client[DeletePartRequest, StateResponse]
}

// NewLedgerServiceClient constructs a client for the
// motoledger.v1.LedgerService service.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	return &LedgerServiceClient{
		load:                     newClient[LoadRequest, StateResponse](httpClient, baseURL, LedgerServiceLoadProcedure, opts),
		getDashboard:             newClient[GetDashboardRequest, DashboardResponse](httpClient, baseURL, LedgerServiceGetDashboardProcedure, opts),
		getAnalytics:             newClient[GetAnalyticsRequest, AnalyticsResponse](httpClient, baseURL, LedgerServiceGetAnalyticsProcedure, opts),
		getMotorbike:             newClient[GetMotorbikeRequest, MotorbikeResponse](httpClient, baseURL, LedgerServiceGetMotorbikeProcedure, opts),
		addMotorbike:             newClient[AddMotorbikeRequest, StateResponse](httpClient, baseURL, LedgerServiceAddMotorbikeProcedure, opts),
		addPart:                  newClient[AddPartRequest, StateResponse](httpClient, baseURL, LedgerServiceAddPartProcedure, opts),
		updateForm:               newClient[UpdateFormRequest, StateResponse](httpClient, baseURL, LedgerServiceUpdateFormProcedure, opts),
		openEditMotorbike:        newClient[OpenEditMotorbikeRequest, StateResponse](httpClient, baseURL, LedgerServiceOpenEditMotorbikeProcedure, opts),
		saveEditedMotorbike:      newClient[SaveEditedMotorbikeRequest, StateResponse](httpClient, baseURL, LedgerServiceSaveEditedMotorbikeProcedure, opts),
		closeEditMotorbikeDialog: newClient[CloseDialogRequest, StateResponse](httpClient, baseURL, LedgerServiceCloseEditMotorbikeDialogProcedure, opts),
		openEditPart:             newClient[OpenEditPartRequest, StateResponse](httpClient, baseURL, LedgerServiceOpenEditPartProcedure, opts),
		saveEditedPart:           newClient[SaveEditedPartRequest, StateResponse](httpClient, baseURL, LedgerServiceSaveEditedPartProcedure, opts),
		closeEditPartDialog:      newClient[CloseDialogRequest, StateResponse](httpClient, baseURL, LedgerServiceCloseEditPartDialogProcedure, opts),
		deleteMotorbike:          newClient[DeleteMotorbikeRequest, StateResponse](httpClient, baseURL, LedgerServiceDeleteMotorbikeProcedure, opts),
		deletePart:               newClient[DeletePartRequest, StateResponse](httpClient, baseURL, LedgerServiceDeletePartProcedure, opts),
	}
}

func (c *LedgerServiceClient) Load(ctx context.Context, req *connect.Request[LoadRequest]) (*connect.Response[StateResponse], error) {
	return c.load.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[DashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetAnalytics(ctx context.Context, req *connect.Request[GetAnalyticsRequest]) (*connect.Response[AnalyticsResponse], error) {
	return c.getAnalytics.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetMotorbike(ctx context.Context, req *connect.Request[GetMotorbikeRequest]) (*connect.Response[MotorbikeResponse], error) {
	return c.getMotorbike.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddMotorbike(ctx context.Context, req *connect.Request[AddMotorbikeRequest]) (*connect.Response[StateResponse], error) {
	return c.addMotorbike.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddPart(ctx context.Context, req *connect.Request[AddPartRequest]) (*connect.Response[StateResponse], error) {
	return c.addPart.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) UpdateForm(ctx context.Context, req *connect.Request[UpdateFormRequest]) (*connect.Response[StateResponse], error) {
	return c.updateForm.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) OpenEditMotorbike(ctx context.Context, req *connect.Request[OpenEditMotorbikeRequest]) (*connect.Response[StateResponse], error) {
	return c.openEditMotorbike.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SaveEditedMotorbike(ctx context.Context, req *connect.Request[SaveEditedMotorbikeRequest]) (*connect.Response[StateResponse], error) {
	return c.saveEditedMotorbike.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) CloseEditMotorbikeDialog(ctx context.Context, req *connect.Request[CloseDialogRequest]) (*connect.Response[StateResponse], error) {
	return c.closeEditMotorbikeDialog.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) OpenEditPart(ctx context.Context, req *connect.Request[OpenEditPartRequest]) (*connect.Response[StateResponse], error) {
	return c.openEditPart.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SaveEditedPart(ctx context.Context, req *connect.Request[SaveEditedPartRequest]) (*connect.Response[StateResponse], error) {
	return c.saveEditedPart.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) CloseEditPartDialog(ctx context.Context, req *connect.Request[CloseDialogRequest]) (*connect.Response[StateResponse], error) {
	return c.closeEditPartDialog.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteMotorbike(ctx context.Context, req *connect.Request[DeleteMotorbikeRequest]) (*connect.Response[StateResponse], error) {
	return c.deleteMotorbike.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeletePart(ctx context.Context, req *connect.Request[DeletePartRequest]) (*connect.Response[StateResponse], error) {
	return c.deletePart.CallUnary(ctx, req)
}
