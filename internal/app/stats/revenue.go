package stats

import (
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
)

type RevenuePeriod string

const (
	PeriodDaily   RevenuePeriod = "daily"
	PeriodWeekly  RevenuePeriod = "weekly"
	PeriodMonthly RevenuePeriod = "monthly"
)

func ParseRevenuePeriod(s string) (RevenuePeriod, bool) {
	switch RevenuePeriod(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return RevenuePeriod(s), true
	}
	return "", false
}

// RevenueBucket covers [Start, End).
type RevenueBucket struct {
	Key        string    `json:"key"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Revenue    float64   `json:"revenue"`
	Deliveries int       `json:"deliveries"`
}

// Revenue buckets deliveries for the period with the default window count:
// 30 days, 12 weeks or 12 months.
func Revenue(period RevenuePeriod, deliveries []model.Delivery, asOf time.Time) []RevenueBucket {
	switch period {
	case PeriodWeekly:
		return WeeklyRevenue(deliveries, asOf, 12)
	case PeriodMonthly:
		return MonthlyRevenue(deliveries, asOf, 12)
	default:
		return DailyRevenue(deliveries, asOf, 30)
	}
}

// DailyRevenue returns one bucket per calendar day, the last one being the
// day of asOf. Buckets are oldest first.
func DailyRevenue(deliveries []model.Delivery, asOf time.Time, days int) []RevenueBucket {
	end := startOfDay(asOf).AddDate(0, 0, 1)
	buckets := make([]RevenueBucket, days)
	for i := 0; i < days; i++ {
		start := end.AddDate(0, 0, i-days)
		buckets[i] = RevenueBucket{
			Key:   start.Format("2006-01-02"),
			Start: start,
			End:   start.AddDate(0, 0, 1),
		}
	}
	fill(buckets, deliveries, asOf.Location())
	return buckets
}

// WeeklyRevenue returns rolling 7-day windows; the last window ends with the
// day of asOf.
func WeeklyRevenue(deliveries []model.Delivery, asOf time.Time, weeks int) []RevenueBucket {
	end := startOfDay(asOf).AddDate(0, 0, 1)
	buckets := make([]RevenueBucket, weeks)
	for i := 0; i < weeks; i++ {
		start := end.AddDate(0, 0, 7*(i-weeks))
		buckets[i] = RevenueBucket{
			Key:   start.Format("2006-01-02"),
			Start: start,
			End:   start.AddDate(0, 0, 7),
		}
	}
	fill(buckets, deliveries, asOf.Location())
	return buckets
}

// MonthlyRevenue returns one bucket per calendar month, the last one being
// the month of asOf.
func MonthlyRevenue(deliveries []model.Delivery, asOf time.Time, months int) []RevenueBucket {
	first := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	buckets := make([]RevenueBucket, months)
	for i := 0; i < months; i++ {
		start := first.AddDate(0, i-months+1, 0)
		buckets[i] = RevenueBucket{
			Key:   start.Format("2006-01"),
			Start: start,
			End:   start.AddDate(0, 1, 0),
		}
	}
	fill(buckets, deliveries, asOf.Location())
	return buckets
}

// fill assumes buckets are contiguous and sorted.
func fill(buckets []RevenueBucket, deliveries []model.Delivery, loc *time.Location) {
	if len(buckets) == 0 {
		return
	}
	first, last := buckets[0].Start, buckets[len(buckets)-1].End
	for i := range deliveries {
		at := deliveries[i].RevenueTime().In(loc)
		if at.Before(first) || !at.Before(last) {
			continue
		}
		for j := range buckets {
			if at.Before(buckets[j].End) {
				buckets[j].Revenue += deliveries[i].Amount
				buckets[j].Deliveries++
				break
			}
		}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
