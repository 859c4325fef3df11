package pivot

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

func washWaxReports() []domain.MasterWeeklyReport {
	return []domain.MasterWeeklyReport{
		{
			MasterID:        1,
			MasterFirstName: "A",
			Earnings: []domain.MasterWorkTypeEarning{
				{WorkTypeID: 1, WorkTypeName: "Wash", TotalEarnings: 10},
				{WorkTypeID: 2, WorkTypeName: "Wax", TotalEarnings: 5},
			},
			TotalMasterEarnings: 15,
		},
		{
			MasterID:        2,
			MasterFirstName: "B",
			Earnings: []domain.MasterWorkTypeEarning{
				{WorkTypeID: 1, WorkTypeName: "Wash", TotalEarnings: 7},
			},
			TotalMasterEarnings: 7,
		},
	}
}

func TestBuildWeekly_WashWax(t *testing.T) {
	table := BuildWeekly(washWaxReports(), domain.DateRange{})

	assert.Equal(t, []string{"Мастер", "Wash", "Wax", "Итого"}, table.Header())

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "A", table.Rows[0].Label)
	assert.Equal(t, []string{"10.00", "5.00", "15.00"}, cellStrings(table.Rows[0].Cells))
	assert.Equal(t, "B", table.Rows[1].Label)
	assert.Equal(t, []string{"7.00", "–", "7.00"}, cellStrings(table.Rows[1].Cells))
	assert.Equal(t, []string{"17.00", "5.00", "22.00"}, cellStrings(table.Footer))
}

func TestBuildWeekly_ZeroIsNotNoData(t *testing.T) {
	reports := []domain.MasterWeeklyReport{
		{MasterID: 1, Earnings: []domain.MasterWorkTypeEarning{{WorkTypeName: "Wash", TotalEarnings: 0}}},
		{MasterID: 2},
	}

	table := BuildWeekly(reports, domain.DateRange{})

	assert.Equal(t, Amount(0), table.Rows[0].Cells[0])
	assert.False(t, table.Rows[1].Cells[0].Present)
	assert.Equal(t, "0.00", table.Rows[0].Cells[0].String())
	assert.Equal(t, NoData, table.Rows[1].Cells[0].String())
}

func TestBuildWeekly_ColumnsSortedRowsStable(t *testing.T) {
	reports := []domain.MasterWeeklyReport{
		{MasterID: 9, MasterFirstName: "Z", Earnings: []domain.MasterWorkTypeEarning{{WorkTypeName: "Полировка", TotalEarnings: 1}}},
		{MasterID: 3, MasterFirstName: "A", Earnings: []domain.MasterWorkTypeEarning{{WorkTypeName: "Антидождь", TotalEarnings: 100}}},
	}

	table := BuildWeekly(reports, domain.DateRange{})

	assert.Equal(t, []string{"Мастер", "Антидождь", "Полировка", "Итого"}, table.Header())
	assert.Equal(t, int64(9), table.Rows[0].ID)
	assert.Equal(t, int64(3), table.Rows[1].ID)
}

func TestBuildWeekly_Empty(t *testing.T) {
	table := BuildWeekly(nil, domain.DateRange{})

	assert.True(t, table.IsEmpty())
	assert.Equal(t, []string{"Мастер", "Итого"}, table.Header())
	assert.Equal(t, Amount(0), table.GrandTotal())
}

func TestBuildDetail_OrdersByExecutionDateStable(t *testing.T) {
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	report := &domain.MasterDetailReport{
		MasterID:        5,
		MasterFirstName: "Иван",
		MasterLastName:  "Петров",
		ReportDetails: []domain.MasterDetailEarning{
			{
				WorkTypeID:   1,
				WorkTypeName: "Мойка",
				EarningsByOrder: []domain.OrderEarning{
					{OrderID: 30, ClientName: "В", ExecutionDate: day.Add(48 * time.Hour), Earning: 3},
					{OrderID: 20, ClientName: "Б", ExecutionDate: day, Earning: 2},
				},
			},
			{
				WorkTypeID:   2,
				WorkTypeName: "Воск",
				EarningsByOrder: []domain.OrderEarning{
					{OrderID: 10, ClientName: "А", ExecutionDate: day, Earning: 1.25},
					{OrderID: 30, ClientName: "В", ExecutionDate: day.Add(48 * time.Hour), Earning: 4},
				},
			},
		},
	}

	table := BuildDetail(report, domain.DateRange{})

	ids := make([]int64, 0, len(table.Columns))
	for _, c := range table.Columns {
		ids = append(ids, c.ID)
	}
	// 20 и 10 в одно время: порядок первого появления
	assert.Equal(t, []int64{20, 10, 30, 0}, ids)
	assert.Equal(t, "Заказ №20 (Б, 10.03)", table.Columns[0].Label)

	assert.Equal(t, []string{"2.00", "–", "3.00", "5.00"}, cellStrings(table.Rows[0].Cells))
	assert.Equal(t, "Воск", table.Rows[1].Label)
	assert.False(t, table.Rows[1].Cells[0].Present)
	assert.Equal(t, []string{"2.00", "1.25", "7.00", "10.25"}, cellStrings(table.Footer))
	assert.Equal(t, 10.25, table.GrandTotal().Value)
	assert.True(t, strings.HasPrefix(table.Title, "Детальный отчет: Иван Петров"))
}

func TestWriteText(t *testing.T) {
	period := domain.WeekRange(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	var buf bytes.Buffer

	require.NoError(t, WriteText(&buf, BuildWeekly(washWaxReports(), period)))

	out := buf.String()
	assert.Contains(t, out, "за 10.03.2025 - 16.03.2025")
	assert.Contains(t, out, "Wash")
	assert.Contains(t, out, "–")
	assert.Contains(t, out, "22.00")
}

func TestExportXLSX(t *testing.T) {
	data, err := ExportXLSX(BuildWeekly(washWaxReports(), domain.DateRange{}))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Wash", header)

	noData, err := f.GetCellValue(sheetName, "C4")
	require.NoError(t, err)
	assert.Equal(t, NoData, noData)

	total, err := f.GetCellValue(sheetName, "D5")
	require.NoError(t, err)
	assert.Equal(t, "22", total)
}
