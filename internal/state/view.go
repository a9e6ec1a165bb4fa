package state

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/motoledger/internal/apperr"
	"github.com/mmynk/motoledger/internal/calculator"
	"github.com/mmynk/motoledger/internal/models"
)

// BikeView is a motorbike with its derived costs.
type BikeView struct {
	models.Motorbike

	TotalPartsCost  decimal.Decimal
	TotalCost       decimal.Decimal
	TanyaPartsCost  decimal.Decimal
	GeraldPartsCost decimal.Decimal

	// Profit is nil unless the bike is sold with a sold value.
	Profit *calculator.Profit
}

func newBikeView(bike models.Motorbike) BikeView {
	v := BikeView{
		Motorbike:       bike.Clone(),
		TotalPartsCost:  calculator.TotalPartsCost(bike),
		TotalCost:       calculator.TotalMotorbikeCost(bike),
		TanyaPartsCost:  calculator.CostByBuyer(bike, models.BuyerTanya),
		GeraldPartsCost: calculator.CostByBuyer(bike, models.BuyerGerald),
	}
	if p, ok := calculator.ProfitAndShares(bike); ok {
		v.Profit = &p
	}
	return v
}

func newBikeViews(bikes []models.Motorbike) []BikeView {
	out := make([]BikeView, 0, len(bikes))
	for _, b := range bikes {
		out = append(out, newBikeView(b))
	}
	return out
}

// Dashboard holds the headline totals. Ignored bikes are left out.
type Dashboard struct {
	TotalCost     decimal.Decimal
	ProjectedSale decimal.Decimal
	ActualProfit  decimal.Decimal
	HasMotorbikes bool
}

// View is a snapshot of a workspace. It shares no memory with the workspace.
type View struct {
	// Motorbikes in store order.
	Motorbikes []BikeView
	// Display is unsold first, then by name.
	Display []BikeView
	// Unsold are the motorbikes parts can be added to.
	Unsold []BikeView

	Dashboard Dashboard
	Buyers    []string

	MotorbikeForm     MotorbikeInput
	PartForm          PartInput
	EditMotorbike     EditMotorbikeForm
	EditMotorbikeOpen bool
	EditPart          EditPartForm
	EditPartOpen      bool
}

// View returns a snapshot of the mirror, derived values and forms.
func (w *Workspace) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	buyers := make([]string, len(models.Buyers))
	copy(buyers, models.Buyers)

	return View{
		Motorbikes:        newBikeViews(w.motorbikes),
		Display:           newBikeViews(calculator.SortForDisplay(w.motorbikes)),
		Unsold:            newBikeViews(calculator.Unsold(w.motorbikes)),
		Dashboard:         w.dashboard(),
		Buyers:            buyers,
		MotorbikeForm:     w.motorbikeForm,
		PartForm:          w.partForm,
		EditMotorbike:     w.editMotorbike,
		EditMotorbikeOpen: w.editMotorbikeOpen,
		EditPart:          w.editPart,
		EditPartOpen:      w.editPartOpen,
	}
}

func (w *Workspace) dashboard() Dashboard {
	return Dashboard{
		TotalCost:     calculator.TotalCost(w.motorbikes),
		ProjectedSale: calculator.ProjectedSale(w.motorbikes),
		ActualProfit:  calculator.ActualProfit(w.motorbikes),
		HasMotorbikes: len(w.motorbikes) > 0,
	}
}

// Dashboard returns the headline totals.
func (w *Workspace) Dashboard() Dashboard {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dashboard()
}

// Detail returns one motorbike with its derived values.
func (w *Workspace) Detail(id string) (BikeView, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	bike, ok := w.mirrored(id)
	if !ok {
		return BikeView{}, apperr.NotFound("Motorbike not found.")
	}
	return newBikeView(bike), nil
}

// Analytics aggregates the mirror for the analytics view.
func (w *Workspace) Analytics(filter calculator.Filter) calculator.Summary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return calculator.Aggregate(w.motorbikes, filter)
}
