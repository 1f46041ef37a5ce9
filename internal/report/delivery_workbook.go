package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/xuri/excelize/v2"
)

var ErrNoSheet = errors.New("workbook has no sheets")

// DeliveryImport is one parsed row of the seed workbook.
type DeliveryImport struct {
	Delivery     model.Delivery
	Distribution model.CommissionDistribution
}

// DeliverySheetColumns is the expected header row, in order.
var DeliverySheetColumns = []string{
	"merchant_id", "rider_id", "amount", "delivery_fee", "delivered_at",
	"platform", "hub", "station", "rider", "shareholder",
}

// ParseDeliveryWorkbook reads the first sheet. Rows that are short or fail to
// parse are skipped and counted.
func ParseDeliveryWorkbook(f *excelize.File) ([]DeliveryImport, int, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, 0, ErrNoSheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}

	var imports []DeliveryImport
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		item, ok := parseDeliveryRow(row)
		if !ok {
			skipped++
			continue
		}
		imports = append(imports, item)
	}
	return imports, skipped, nil
}

func parseDeliveryRow(row []string) (DeliveryImport, bool) {
	if len(row) < len(DeliverySheetColumns) {
		return DeliveryImport{}, false
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	merchantID := row[0]
	if merchantID == "" {
		return DeliveryImport{}, false
	}

	amounts := make([]float64, 0, 7)
	for _, idx := range []int{2, 3, 5, 6, 7, 8, 9} {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil || v < 0 {
			return DeliveryImport{}, false
		}
		amounts = append(amounts, v)
	}

	deliveredAt, err := time.Parse(time.RFC3339, row[4])
	if err != nil {
		if deliveredAt, err = time.Parse("2006-01-02", row[4]); err != nil {
			return DeliveryImport{}, false
		}
	}

	var riderID *string
	if row[1] != "" {
		id := row[1]
		riderID = &id
	}

	delivery := model.Delivery{
		MerchantID:  merchantID,
		RiderID:     riderID,
		Status:      model.DeliveryStatusDelivered,
		Amount:      amounts[0],
		DeliveryFee: amounts[1],
		DeliveredAt: &deliveredAt,
	}
	distribution := model.CommissionDistribution{
		PlatformAmount:    amounts[2],
		HubAmount:         amounts[3],
		StationAmount:     amounts[4],
		RiderAmount:       amounts[5],
		ShareholderAmount: amounts[6],
	}
	distribution.TotalAmount = distribution.PlatformAmount + distribution.HubAmount +
		distribution.StationAmount + distribution.RiderAmount + distribution.ShareholderAmount

	return DeliveryImport{Delivery: delivery, Distribution: distribution}, true
}
