package reports

import (
	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// AggregateWeekly сворачивает записи заработка в сводный отчет по мастерам.
// Мастера и типы работ идут в порядке первого появления в records.
func AggregateWeekly(records []domain.EarningRecord) []domain.MasterWeeklyReport {
	reports := make([]domain.MasterWeeklyReport, 0)
	masterIdx := make(map[int64]int)
	workIdx := make(map[int64]map[int64]int)

	for _, rec := range records {
		mi, ok := masterIdx[rec.MasterID]
		if !ok {
			mi = len(reports)
			masterIdx[rec.MasterID] = mi
			workIdx[rec.MasterID] = make(map[int64]int)
			reports = append(reports, domain.MasterWeeklyReport{
				MasterID:        rec.MasterID,
				MasterFirstName: rec.MasterFirstName,
				MasterLastName:  rec.MasterLastName,
				Earnings:        []domain.MasterWorkTypeEarning{},
			})
		}

		report := &reports[mi]
		wi, ok := workIdx[rec.MasterID][rec.WorkTypeID]
		if !ok {
			wi = len(report.Earnings)
			workIdx[rec.MasterID][rec.WorkTypeID] = wi
			report.Earnings = append(report.Earnings, domain.MasterWorkTypeEarning{
				WorkTypeID:   rec.WorkTypeID,
				WorkTypeName: rec.WorkTypeName,
			})
		}

		report.Earnings[wi].TotalEarnings = domain.RoundMoney(report.Earnings[wi].TotalEarnings + rec.Earning)
		report.TotalMasterEarnings = domain.RoundMoney(report.TotalMasterEarnings + rec.Earning)
	}

	return reports
}

// AggregateDetail сворачивает записи одного мастера в детальный отчет:
// тип работ -> заработок по каждому заказу. Несколько работ одного типа
// в одном заказе суммируются.
func AggregateDetail(master *domain.User, records []domain.EarningRecord) *domain.MasterDetailReport {
	report := &domain.MasterDetailReport{
		MasterID:        master.ID,
		MasterFirstName: master.FirstName,
		MasterLastName:  master.LastName,
		ReportDetails:   []domain.MasterDetailEarning{},
	}

	workIdx := make(map[int64]int)
	orderIdx := make(map[int64]map[int64]int)

	for _, rec := range records {
		if rec.MasterID != master.ID {
			continue
		}

		wi, ok := workIdx[rec.WorkTypeID]
		if !ok {
			wi = len(report.ReportDetails)
			workIdx[rec.WorkTypeID] = wi
			orderIdx[rec.WorkTypeID] = make(map[int64]int)
			report.ReportDetails = append(report.ReportDetails, domain.MasterDetailEarning{
				WorkTypeID:      rec.WorkTypeID,
				WorkTypeName:    rec.WorkTypeName,
				EarningsByOrder: []domain.OrderEarning{},
			})
		}

		detail := &report.ReportDetails[wi]
		oi, ok := orderIdx[rec.WorkTypeID][rec.OrderID]
		if !ok {
			oi = len(detail.EarningsByOrder)
			orderIdx[rec.WorkTypeID][rec.OrderID] = oi
			detail.EarningsByOrder = append(detail.EarningsByOrder, domain.OrderEarning{
				OrderID:       rec.OrderID,
				ClientName:    rec.ClientName,
				ExecutionDate: rec.ExecutionDate,
			})
		}

		detail.EarningsByOrder[oi].Earning = domain.RoundMoney(detail.EarningsByOrder[oi].Earning + rec.Earning)
	}

	return report
}
