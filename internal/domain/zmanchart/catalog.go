package zmanchart

// Zman identifiers accepted by the comparison request. The ids double as
// series labels, so they keep the traditional transliterated names.
const (
	ZmanSunrise         = "sunrise"
	ZmanSunset          = "sunset"
	ZmanAlos            = "alos"
	ZmanAlos72          = "alos_72"
	ZmanMisheyakir      = "misheyakir"
	ZmanSofZmanShmaGRA  = "sof_zman_shma_gra"
	ZmanSofZmanShmaMGA  = "sof_zman_shma_mga"
	ZmanSofZmanTfilaGRA = "sof_zman_tfila_gra"
	ZmanSofZmanTfilaMGA = "sof_zman_tfila_mga"
	ZmanChatzos         = "chatzos"
	ZmanMinchaGedola    = "mincha_gedola"
	ZmanMinchaKetana    = "mincha_ketana"
	ZmanPlagHamincha    = "plag_hamincha"
	ZmanCandleLighting  = "candle_lighting"
	ZmanTzais           = "tzais"
	ZmanTzais72         = "tzais_72"
)

// ZmanOption describes one selectable time-point.
type ZmanOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var catalog = []ZmanOption{
	{ID: ZmanAlos, Label: "Alos HaShachar (dawn, 16.1°)"},
	{ID: ZmanAlos72, Label: "Alos (72 minutes before sunrise)"},
	{ID: ZmanMisheyakir, Label: "Misheyakir (11.5°)"},
	{ID: ZmanSunrise, Label: "Sunrise (HaNetz)"},
	{ID: ZmanSofZmanShmaMGA, Label: "Sof Zman Shma (MGA)"},
	{ID: ZmanSofZmanShmaGRA, Label: "Sof Zman Shma (GRA)"},
	{ID: ZmanSofZmanTfilaMGA, Label: "Sof Zman Tfila (MGA)"},
	{ID: ZmanSofZmanTfilaGRA, Label: "Sof Zman Tfila (GRA)"},
	{ID: ZmanChatzos, Label: "Chatzos (midday)"},
	{ID: ZmanMinchaGedola, Label: "Mincha Gedola"},
	{ID: ZmanMinchaKetana, Label: "Mincha Ketana"},
	{ID: ZmanPlagHamincha, Label: "Plag HaMincha"},
	{ID: ZmanCandleLighting, Label: "Candle Lighting (18 minutes)"},
	{ID: ZmanSunset, Label: "Sunset (Shkia)"},
	{ID: ZmanTzais, Label: "Tzais (8.5°)"},
	{ID: ZmanTzais72, Label: "Tzais (72 minutes after sunset)"},
}

// ZmanCatalog lists the selectable time-points in display order.
func ZmanCatalog() []ZmanOption {
	out := make([]ZmanOption, len(catalog))
	copy(out, catalog)
	return out
}

// KnownZman reports whether id names a supported time-point.
func KnownZman(id string) bool {
	for _, opt := range catalog {
		if opt.ID == id {
			return true
		}
	}
	return false
}
