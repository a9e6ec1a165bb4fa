package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/motoledger/internal/calculator"
	"github.com/mmynk/motoledger/internal/state"
)

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toProfitView(p *calculator.Profit) *ProfitView {
	if p == nil {
		return nil
	}
	return &ProfitView{
		Profit:      amount(p.Profit),
		TanyaShare:  amount(p.TanyaShare),
		GeraldShare: amount(p.GeraldShare),
	}
}

func toMotorbikeView(b state.BikeView) MotorbikeView {
	v := MotorbikeView{
		ID:                     b.ID,
		Name:                   b.Name,
		InitialCost:            amount(b.InitialCost),
		TanyaInitialCost:       amount(b.TanyaInitialCost),
		GeraldInitialCost:      amount(b.GeraldInitialCost),
		Buyer:                  b.Buyer,
		IsSold:                 b.IsSold,
		IgnoreFromCalculations: b.IgnoreFromCalculations,
		Parts:                  make([]PartView, 0, len(b.Parts)),
		TotalPartsCost:         amount(b.TotalPartsCost),
		TotalCost:              amount(b.TotalCost),
		TanyaPartsCost:         amount(b.TanyaPartsCost),
		GeraldPartsCost:        amount(b.GeraldPartsCost),
		Profit:                 toProfitView(b.Profit),
	}
	if sold, ok := b.EffectiveSoldValue(); ok {
		v.SoldValue = amount(sold)
	}
	for _, p := range b.Parts {
		v.Parts = append(v.Parts, PartView{
			ID:          p.ID,
			MotorbikeID: p.MotorbikeID,
			Name:        p.Name,
			Source:      p.Source,
			Buyer:       p.Buyer,
			Cost:        amount(p.Cost),
		})
	}
	return v
}

func toMotorbikeViews(bikes []state.BikeView) []MotorbikeView {
	out := make([]MotorbikeView, 0, len(bikes))
	for _, b := range bikes {
		out = append(out, toMotorbikeView(b))
	}
	return out
}

func toDashboardView(d state.Dashboard) DashboardView {
	return DashboardView{
		TotalCost:     amount(d.TotalCost),
		ProjectedSale: amount(d.ProjectedSale),
		ActualProfit:  amount(d.ActualProfit),
		HasMotorbikes: d.HasMotorbikes,
	}
}

func toStateView(v state.View) *StateView {
	return &StateView{
		Motorbikes: toMotorbikeViews(v.Motorbikes),
		Display:    toMotorbikeViews(v.Display),
		Unsold:     toMotorbikeViews(v.Unsold),
		Dashboard:  toDashboardView(v.Dashboard),
		Buyers:     v.Buyers,
		MotorbikeForm: MotorbikeFormView{
			Name:              v.MotorbikeForm.Name,
			InitialCost:       v.MotorbikeForm.InitialCost,
			TanyaInitialCost:  v.MotorbikeForm.TanyaInitialCost,
			GeraldInitialCost: v.MotorbikeForm.GeraldInitialCost,
			Buyer:             v.MotorbikeForm.Buyer,
		},
		PartForm: PartFormView{
			MotorbikeID: v.PartForm.MotorbikeID,
			Name:        v.PartForm.Name,
			Source:      v.PartForm.Source,
			Buyer:       v.PartForm.Buyer,
			Cost:        v.PartForm.Cost,
		},
		EditMotorbike: EditMotorbikeFormView{
			MotorbikeID:            v.EditMotorbike.MotorbikeID,
			Name:                   v.EditMotorbike.Name,
			InitialCost:            v.EditMotorbike.InitialCost,
			TanyaInitialCost:       v.EditMotorbike.TanyaInitialCost,
			GeraldInitialCost:      v.EditMotorbike.GeraldInitialCost,
			Buyer:                  v.EditMotorbike.Buyer,
			IsSold:                 v.EditMotorbike.IsSold,
			SoldValue:              v.EditMotorbike.SoldValue,
			IgnoreFromCalculations: v.EditMotorbike.IgnoreFromCalculations,
		},
		EditMotorbikeOpen: v.EditMotorbikeOpen,
		EditPart: EditPartFormView{
			MotorbikeID: v.EditPart.MotorbikeID,
			PartID:      v.EditPart.PartID,
			Name:        v.EditPart.Name,
			Source:      v.EditPart.Source,
			Buyer:       v.EditPart.Buyer,
			Cost:        v.EditPart.Cost,
		},
		EditPartOpen: v.EditPartOpen,
	}
}

func toAnalyticsView(s calculator.Summary) AnalyticsView {
	v := AnalyticsView{
		Filter:                 string(s.Filter),
		TotalCost:              amount(s.TotalCost),
		ProjectedSale:          amount(s.ProjectedSale),
		ActualProfit:           amount(s.ActualProfit),
		TotalTanyaInvestment:   amount(s.TotalTanyaInvestment),
		TotalGeraldInvestment:  amount(s.TotalGeraldInvestment),
		TotalTanyaProfitShare:  amount(s.TotalTanyaProfitShare),
		TotalGeraldProfitShare: amount(s.TotalGeraldProfitShare),
		Bikes:                  make([]BikeAnalyticsView, 0, len(s.Bikes)),
	}
	for _, b := range s.Bikes {
		row := BikeAnalyticsView{
			ID:               b.ID,
			Name:             b.Name,
			InitialCost:      amount(b.InitialCost),
			BikeBuyer:        b.BikeBuyer,
			TotalCost:        amount(b.TotalCost),
			TanyaInvestment:  amount(b.TanyaInvestment),
			GeraldInvestment: amount(b.GeraldInvestment),
			TanyaPartsCost:   amount(b.TanyaPartsCost),
			GeraldPartsCost:  amount(b.GeraldPartsCost),
			IsSold:           b.IsSold,
		}
		if b.HasProfit {
			row.Profit = &ProfitView{
				Profit:      amount(b.Profit),
				TanyaShare:  amount(b.TanyaProfitShare),
				GeraldShare: amount(b.GeraldProfitShare),
			}
		}
		v.Bikes = append(v.Bikes, row)
	}
	return v
}
