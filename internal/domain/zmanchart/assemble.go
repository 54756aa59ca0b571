package zmanchart

import (
	"fmt"
	"time"
)

const hoverMissing = "N/A"

// Assemble reshapes the store into the chart artifact: one series per
// (location, zman) pair, locations in store order, zmanim in caller order,
// points in date order. Dates a location never resolved for are absent from
// its series, not null-filled, so each series may carry its own x set.
func Assemble(store *SeriesStore, zmanIDs []string) ChartSpec {
	var series []ChartSeries
	for _, displayName := range store.Locations() {
		dates := store.Dates(displayName)
		for _, zmanID := range zmanIDs {
			points := make([]NumericSeriesPoint, 0, len(dates))
			for _, date := range dates {
				value, _ := store.Value(displayName, date, zmanID)
				points = append(points, makePoint(date, value))
			}
			series = append(series, ChartSeries{
				Label:  fmt.Sprintf("%s in %s", zmanID, displayName),
				Points: points,
			})
		}
	}
	return ChartSpec{Series: series, YAxisTicks: yAxisTicks()}
}

func makePoint(date string, value *time.Time) NumericSeriesPoint {
	if value == nil {
		return NumericSeriesPoint{X: date, Y: nil, HoverText: hoverMissing}
	}
	y := HoursFraction(*value)
	return NumericSeriesPoint{X: date, Y: &y, HoverText: ClockString(y)}
}

// yAxisTicks builds the 25 integer-hour tick marks. Hour 24 renders as
// "00:00:00" because ClockString wraps the hour field; kept to match the
// reference chart.
func yAxisTicks() []AxisTick {
	ticks := make([]AxisTick, 0, 25)
	for hour := 0; hour <= 24; hour++ {
		ticks = append(ticks, AxisTick{
			Value: float64(hour),
			Label: ClockString(float64(hour)),
		})
	}
	return ticks
}
