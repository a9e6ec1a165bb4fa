package service

// Request and response messages of motoledger.v1.AuthService and
// motoledger.v1.LedgerService. Money travels as fixed two-decimal strings.

// SignUpRequest creates an account and signs it in.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest signs an existing account in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse carries the bearer token for later calls.
type SignInResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"`
	Redirect  string `json:"redirect"`
}

type SignOutRequest struct{}

type SignOutResponse struct {
	Redirect string `json:"redirect"`
}

type CheckSessionRequest struct{}

type CheckSessionResponse struct {
	InSession bool   `json:"in_session"`
	Email     string `json:"email,omitempty"`
	Redirect  string `json:"redirect,omitempty"`
}

type LoadRequest struct{}

// StateResponse is returned by every ledger command: the outcome message
// and a fresh snapshot of the session's state.
type StateResponse struct {
	Message string     `json:"message,omitempty"`
	State   *StateView `json:"state"`
}

type GetDashboardRequest struct{}

type DashboardResponse struct {
	Dashboard DashboardView `json:"dashboard"`
}

type GetAnalyticsRequest struct {
	// Filter is all, sold or unsold. Empty means all.
	Filter string `json:"filter"`
}

type AnalyticsResponse struct {
	Analytics AnalyticsView `json:"analytics"`
}

type GetMotorbikeRequest struct {
	MotorbikeID string `json:"motorbike_id"`
}

type MotorbikeResponse struct {
	Motorbike MotorbikeView `json:"motorbike"`
}

// AddMotorbikeRequest adds a motorbike from Form, or from the session's
// add-motorbike form when Form is nil.
type AddMotorbikeRequest struct {
	Form *MotorbikeFormView `json:"form,omitempty"`
}

// AddPartRequest adds a part from Form, or from the session's add-part form
// when Form is nil.
type AddPartRequest struct {
	Form *PartFormView `json:"form,omitempty"`
}

// Forms addressed by UpdateFormRequest.
const (
	FormMotorbike     = "motorbike"
	FormPart          = "part"
	FormEditMotorbike = "edit_motorbike"
	FormEditPart      = "edit_part"
)

// UpdateFormRequest applies one field edit to a form.
type UpdateFormRequest struct {
	Form  string `json:"form"`
	Field string `json:"field"`
	Value string `json:"value"`
}

type OpenEditMotorbikeRequest struct {
	MotorbikeID string `json:"motorbike_id"`
}

type SaveEditedMotorbikeRequest struct{}

type CloseDialogRequest struct{}

type OpenEditPartRequest struct {
	MotorbikeID string `json:"motorbike_id"`
	PartID      string `json:"part_id"`
}

type SaveEditedPartRequest struct{}

type DeleteMotorbikeRequest struct {
	MotorbikeID string `json:"motorbike_id"`
}

type DeletePartRequest struct {
	MotorbikeID string `json:"motorbike_id"`
	PartID      string `json:"part_id"`
}

// PartView is a part as sent to clients.
type PartView struct {
	ID          string `json:"id"`
	MotorbikeID string `json:"motorbike_id"`
	Name        string `json:"name"`
	Source      string `json:"source"`
	Buyer       string `json:"buyer"`
	Cost        string `json:"cost"`
}

// ProfitView is the resale result of a sold motorbike.
type ProfitView struct {
	Profit      string `json:"profit"`
	TanyaShare  string `json:"tanya_share"`
	GeraldShare string `json:"gerald_share"`
}

// MotorbikeView is a motorbike with its derived costs.
type MotorbikeView struct {
	ID                     string      `json:"id"`
	Name                   string      `json:"name"`
	InitialCost            string      `json:"initial_cost"`
	TanyaInitialCost       string      `json:"tanya_initial_cost"`
	GeraldInitialCost      string      `json:"gerald_initial_cost"`
	Buyer                  string      `json:"buyer"`
	IsSold                 bool        `json:"is_sold"`
	SoldValue              string      `json:"sold_value,omitempty"`
	IgnoreFromCalculations bool        `json:"ignore_from_calculations"`
	Parts                  []PartView  `json:"parts"`
	TotalPartsCost         string      `json:"total_parts_cost"`
	TotalCost              string      `json:"total_cost"`
	TanyaPartsCost         string      `json:"tanya_parts_cost"`
	GeraldPartsCost        string      `json:"gerald_parts_cost"`
	Profit                 *ProfitView `json:"profit,omitempty"`
}

type DashboardView struct {
	TotalCost     string `json:"total_cost"`
	ProjectedSale string `json:"projected_sale"`
	ActualProfit  string `json:"actual_profit"`
	HasMotorbikes bool   `json:"has_motorbikes"`
}

type MotorbikeFormView struct {
	Name              string `json:"name"`
	InitialCost       string `json:"initial_cost"`
	TanyaInitialCost  string `json:"tanya_initial_cost"`
	GeraldInitialCost string `json:"gerald_initial_cost"`
	Buyer             string `json:"buyer"`
}

type PartFormView struct {
	MotorbikeID string `json:"motorbike_id"`
	Name        string `json:"name"`
	Source      string `json:"source"`
	Buyer       string `json:"buyer"`
	Cost        string `json:"cost"`
}

type EditMotorbikeFormView struct {
	MotorbikeID            string `json:"motorbike_id"`
	Name                   string `json:"name"`
	InitialCost            string `json:"initial_cost"`
	TanyaInitialCost       string `json:"tanya_initial_cost"`
	GeraldInitialCost      string `json:"gerald_initial_cost"`
	Buyer                  string `json:"buyer"`
	IsSold                 bool   `json:"is_sold"`
	SoldValue              string `json:"sold_value"`
	IgnoreFromCalculations bool   `json:"ignore_from_calculations"`
}

type EditPartFormView struct {
	MotorbikeID string `json:"motorbike_id"`
	PartID      string `json:"part_id"`
	Name        string `json:"name"`
	Source      string `json:"source"`
	Buyer       string `json:"buyer"`
	Cost        string `json:"cost"`
}

// StateView is the snapshot of one session's ledger state.
type StateView struct {
	Motorbikes        []MotorbikeView       `json:"motorbikes"`
	Display           []MotorbikeView       `json:"display"`
	Unsold            []MotorbikeView       `json:"unsold"`
	Dashboard         DashboardView         `json:"dashboard"`
	Buyers            []string              `json:"buyers"`
	MotorbikeForm     MotorbikeFormView     `json:"motorbike_form"`
	PartForm          PartFormView          `json:"part_form"`
	EditMotorbike     EditMotorbikeFormView `json:"edit_motorbike"`
	EditMotorbikeOpen bool                  `json:"edit_motorbike_open"`
	EditPart          EditPartFormView      `json:"edit_part"`
	EditPartOpen      bool                  `json:"edit_part_open"`
}

// BikeAnalyticsView is one analytics row.
type BikeAnalyticsView struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	InitialCost      string      `json:"initial_cost"`
	BikeBuyer        string      `json:"bike_buyer"`
	TotalCost        string      `json:"total_cost"`
	TanyaInvestment  string      `json:"tanya_investment"`
	GeraldInvestment string      `json:"gerald_investment"`
	TanyaPartsCost   string      `json:"tanya_parts_cost"`
	GeraldPartsCost  string      `json:"gerald_parts_cost"`
	IsSold           bool        `json:"is_sold"`
	Profit           *ProfitView `json:"profit,omitempty"`
}

type AnalyticsView struct {
	Filter                 string              `json:"filter"`
	TotalCost              string              `json:"total_cost"`
	ProjectedSale          string              `json:"projected_sale"`
	ActualProfit           string              `json:"actual_profit"`
	TotalTanyaInvestment   string              `json:"total_tanya_investment"`
	TotalGeraldInvestment  string              `json:"total_gerald_investment"`
	TotalTanyaProfitShare  string              `json:"total_tanya_profit_share"`
	TotalGeraldProfitShare string              `json:"total_gerald_profit_share"`
	Bikes                  []BikeAnalyticsView `json:"bikes"`
}
