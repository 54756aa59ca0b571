package zmancalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zmanhub/zmanim-chart/internal/domain/zmanchart"
)

const (
	jerusalemLat = 31.7683
	jerusalemLng = 35.2137
	jerusalemTZ  = "Asia/Jerusalem"
)

func jerusalemZman(t *testing.T, calc *Calculator, date time.Time, zmanID string) time.Time {
	t.Helper()
	value, ok := calc.Calculate(jerusalemLat, jerusalemLng, jerusalemTZ, date, zmanID)
	require.True(t, ok, "expected %s to be defined", zmanID)
	return value
}

func TestCalculateDayOrdering(t *testing.T) {
	calc := NewCalculator()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	ordered := []string{
		zmanchart.ZmanAlos,
		zmanchart.ZmanMisheyakir,
		zmanchart.ZmanSunrise,
		zmanchart.ZmanSofZmanShmaGRA,
		zmanchart.ZmanSofZmanTfilaGRA,
		zmanchart.ZmanChatzos,
		zmanchart.ZmanMinchaGedola,
		zmanchart.ZmanMinchaKetana,
		zmanchart.ZmanPlagHamincha,
		zmanchart.ZmanCandleLighting,
		zmanchart.ZmanSunset,
		zmanchart.ZmanTzais,
		zmanchart.ZmanTzais72,
	}

	previous := jerusalemZman(t, calc, date, ordered[0])
	previousID := ordered[0]
	for _, zmanID := range ordered[1:] {
		current := jerusalemZman(t, calc, date, zmanID)
		require.True(t, previous.Before(current), "%s should precede %s", previousID, zmanID)
		previous = current
		previousID = zmanID
	}
}

func TestCalculateLocalizesToTimezone(t *testing.T) {
	calc := NewCalculator()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rise := jerusalemZman(t, calc, date, zmanchart.ZmanSunrise)
	require.Equal(t, jerusalemTZ, rise.Location().String())
	// Early June sunrise in Jerusalem lands in the 05:00 local hour.
	require.Equal(t, 5, rise.Hour())
}

func TestCalculateMGAHourRelations(t *testing.T) {
	calc := NewCalculator()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rise := jerusalemZman(t, calc, date, zmanchart.ZmanSunrise)
	alos72 := jerusalemZman(t, calc, date, zmanchart.ZmanAlos72)
	shmaMGA := jerusalemZman(t, calc, date, zmanchart.ZmanSofZmanShmaMGA)
	shmaGRA := jerusalemZman(t, calc, date, zmanchart.ZmanSofZmanShmaGRA)

	require.Equal(t, rise.Add(-72*time.Minute), alos72)
	// The MGA day starts earlier, so its shma deadline precedes the GRA one.
	require.True(t, shmaMGA.Before(shmaGRA))
}

func TestCalculateUnknownZmanID(t *testing.T) {
	calc := NewCalculator()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, ok := calc.Calculate(jerusalemLat, jerusalemLng, jerusalemTZ, date, "lunch_time")
	require.False(t, ok)
}

func TestCalculateUnloadableTimezone(t *testing.T) {
	calc := NewCalculator()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, ok := calc.Calculate(jerusalemLat, jerusalemLng, "Not/AZone", date, zmanchart.ZmanSunrise)
	require.False(t, ok)
}

func TestCalculatePolarDayUndefined(t *testing.T) {
	calc := NewCalculator()
	// Longyearbyen at midsummer: the sun neither rises nor sets.
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	_, ok := calc.Calculate(78.2232, 15.6267, "Arctic/Longyearbyen", date, zmanchart.ZmanSunrise)
	require.False(t, ok)

	_, ok = calc.Calculate(78.2232, 15.6267, "Arctic/Longyearbyen", date, zmanchart.ZmanAlos)
	require.False(t, ok)
}
