package models

import (
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// MasterWorkTypeEarning заработок мастера по типу работ
type MasterWorkTypeEarning struct {
	WorkTypeID    int64   `json:"workTypeId"`
	WorkTypeName  string  `json:"workTypeName"`
	TotalEarnings float64 `json:"totalEarnings"`
}

// MasterWeeklyReport сводный отчет по мастеру
type MasterWeeklyReport struct {
	MasterID            int64                   `json:"masterId"`
	MasterFirstName     string                  `json:"masterFirstName"`
	MasterLastName      string                  `json:"masterLastName"`
	Earnings            []MasterWorkTypeEarning `json:"earnings"`
	TotalMasterEarnings float64                 `json:"totalMasterEarnings"`
}

// OrderEarning заработок по заказу
type OrderEarning struct {
	OrderID       int64     `json:"orderId"`
	ClientName    string    `json:"clientName"`
	ExecutionDate time.Time `json:"executionDate"`
	Earning       float64   `json:"earning"`
}

// MasterDetailEarning заработок по типу работ с разбивкой по заказам
type MasterDetailEarning struct {
	WorkTypeID      int64          `json:"workTypeId"`
	WorkTypeName    string         `json:"workTypeName"`
	EarningsByOrder []OrderEarning `json:"earningsByOrder"`
}

// MasterDetailReport детальный отчет по мастеру
type MasterDetailReport struct {
	MasterID        int64                 `json:"masterId"`
	MasterFirstName string                `json:"masterFirstName"`
	MasterLastName  string                `json:"masterLastName"`
	ReportDetails   []MasterDetailEarning `json:"reportDetails"`
}

// FromWeeklyReports сериализует сводный отчет
func FromWeeklyReports(reports []domain.MasterWeeklyReport) []MasterWeeklyReport {
	result := make([]MasterWeeklyReport, 0, len(reports))
	for _, r := range reports {
		earnings := make([]MasterWorkTypeEarning, 0, len(r.Earnings))
		for _, e := range r.Earnings {
			earnings = append(earnings, MasterWorkTypeEarning(e))
		}
		result = append(result, MasterWeeklyReport{
			MasterID:            r.MasterID,
			MasterFirstName:     r.MasterFirstName,
			MasterLastName:      r.MasterLastName,
			Earnings:            earnings,
			TotalMasterEarnings: r.TotalMasterEarnings,
		})
	}
	return result
}

// ToDomainWeekly восстанавливает сводный отчет
func ToDomainWeekly(reports []MasterWeeklyReport) []domain.MasterWeeklyReport {
	result := make([]domain.MasterWeeklyReport, 0, len(reports))
	for _, r := range reports {
		earnings := make([]domain.MasterWorkTypeEarning, 0, len(r.Earnings))
		for _, e := range r.Earnings {
			earnings = append(earnings, domain.MasterWorkTypeEarning(e))
		}
		result = append(result, domain.MasterWeeklyReport{
			MasterID:            r.MasterID,
			MasterFirstName:     r.MasterFirstName,
			MasterLastName:      r.MasterLastName,
			Earnings:            earnings,
			TotalMasterEarnings: r.TotalMasterEarnings,
		})
	}
	return result
}

// FromDetailReport сериализует детальный отчет
func FromDetailReport(r *domain.MasterDetailReport) *MasterDetailReport {
	result := &MasterDetailReport{
		MasterID:        r.MasterID,
		MasterFirstName: r.MasterFirstName,
		MasterLastName:  r.MasterLastName,
		ReportDetails:   make([]MasterDetailEarning, 0, len(r.ReportDetails)),
	}
	for _, d := range r.ReportDetails {
		orders := make([]OrderEarning, 0, len(d.EarningsByOrder))
		for _, o := range d.EarningsByOrder {
			orders = append(orders, OrderEarning(o))
		}
		result.ReportDetails = append(result.ReportDetails, MasterDetailEarning{
			WorkTypeID:      d.WorkTypeID,
			WorkTypeName:    d.WorkTypeName,
			EarningsByOrder: orders,
		})
	}
	return result
}

// ToDomain восстанавливает детальный отчет
func (r *MasterDetailReport) ToDomain() *domain.MasterDetailReport {
	result := &domain.MasterDetailReport{
		MasterID:        r.MasterID,
		MasterFirstName: r.MasterFirstName,
		MasterLastName:  r.MasterLastName,
		ReportDetails:   make([]domain.MasterDetailEarning, 0, len(r.ReportDetails)),
	}
	for _, d := range r.ReportDetails {
		orders := make([]domain.OrderEarning, 0, len(d.EarningsByOrder))
		for _, o := range d.EarningsByOrder {
			orders = append(orders, domain.OrderEarning(o))
		}
		result.ReportDetails = append(result.ReportDetails, domain.MasterDetailEarning{
			WorkTypeID:      d.WorkTypeID,
			WorkTypeName:    d.WorkTypeName,
			EarningsByOrder: orders,
		})
	}
	return result
}
