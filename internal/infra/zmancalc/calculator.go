package zmancalc

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/zmanhub/zmanim-chart/internal/domain/zmanchart"
)

// Solar elevation angles (degrees below the horizon) behind the
// elevation-based zmanim.
const (
	alosElevation       = -16.1
	misheyakirElevation = -11.5
	tzaisElevation      = -8.5
)

const candleLightingOffset = 18 * time.Minute
const mgaOffset = 72 * time.Minute

// Calculator derives the zmanim catalog from solar geometry. It is
// stateless and safe for concurrent use.
type Calculator struct{}

// NewCalculator returns the zmanim calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate computes one zman for the given coordinates, timezone, and
// calendar date. The boolean is false when the zman is undefined there:
// polar day or night leaves the sun outside the required elevation, and an
// unknown timezone makes localization impossible. The returned time is in
// the location's zone.
func (c *Calculator) Calculate(lat, lng float64, tzID string, date time.Time, zmanID string) (time.Time, bool) {
	loc, err := time.LoadLocation(tzID)
	if err != nil {
		return time.Time{}, false
	}

	year, month, day := date.Date()
	rise, set := sunrise.SunriseSunset(lat, lng, year, month, day)
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, false
	}

	dayLength := set.Sub(rise)
	shaahGRA := dayLength / 12

	var t time.Time
	switch zmanID {
	case zmanchart.ZmanSunrise:
		t = rise
	case zmanchart.ZmanSunset:
		t = set
	case zmanchart.ZmanAlos:
		var ok bool
		if t, ok = c.risingElevation(lat, lng, alosElevation, year, month, day); !ok {
			return time.Time{}, false
		}
	case zmanchart.ZmanMisheyakir:
		var ok bool
		if t, ok = c.risingElevation(lat, lng, misheyakirElevation, year, month, day); !ok {
			return time.Time{}, false
		}
	case zmanchart.ZmanTzais:
		var ok bool
		if t, ok = c.settingElevation(lat, lng, tzaisElevation, year, month, day); !ok {
			return time.Time{}, false
		}
	case zmanchart.ZmanAlos72:
		t = rise.Add(-mgaOffset)
	case zmanchart.ZmanTzais72:
		t = set.Add(mgaOffset)
	case zmanchart.ZmanChatzos:
		t = rise.Add(dayLength / 2)
	case zmanchart.ZmanSofZmanShmaGRA:
		t = rise.Add(3 * shaahGRA)
	case zmanchart.ZmanSofZmanTfilaGRA:
		t = rise.Add(4 * shaahGRA)
	case zmanchart.ZmanMinchaGedola:
		t = rise.Add(shaahGRA * 13 / 2)
	case zmanchart.ZmanMinchaKetana:
		t = rise.Add(shaahGRA * 19 / 2)
	case zmanchart.ZmanPlagHamincha:
		t = rise.Add(shaahGRA * 43 / 4)
	case zmanchart.ZmanSofZmanShmaMGA:
		t = c.mgaHour(rise, set, 3)
	case zmanchart.ZmanSofZmanTfilaMGA:
		t = c.mgaHour(rise, set, 4)
	case zmanchart.ZmanCandleLighting:
		t = set.Add(-candleLightingOffset)
	default:
		return time.Time{}, false
	}

	return t.In(loc), true
}

// mgaHour measures proportional hours on the Magen Avraham day, which runs
// from 72 minutes before sunrise to 72 minutes after sunset.
func (c *Calculator) mgaHour(rise, set time.Time, hours time.Duration) time.Time {
	dawn := rise.Add(-mgaOffset)
	dusk := set.Add(mgaOffset)
	shaah := dusk.Sub(dawn) / 12
	return dawn.Add(hours * shaah)
}

func (c *Calculator) risingElevation(lat, lng, elevation float64, year int, month time.Month, day int) (time.Time, bool) {
	rising, _ := sunrise.TimeOfElevation(lat, lng, elevation, year, month, day)
	if rising.IsZero() {
		return time.Time{}, false
	}
	return rising, true
}

func (c *Calculator) settingElevation(lat, lng, elevation float64, year int, month time.Month, day int) (time.Time, bool) {
	_, setting := sunrise.TimeOfElevation(lat, lng, elevation, year, month, day)
	if setting.IsZero() {
		return time.Time{}, false
	}
	return setting, true
}
