package chinacal

import "fmt"

// Holiday identifies a Chinese statutory holiday. The set is closed: the
// dataset loader rejects any name outside it, so an unknown holiday cannot
// appear at runtime.
type Holiday string

const (
	NewYearsDay        Holiday = "new_years_day"
	SpringFestival     Holiday = "spring_festival"
	TombSweepingDay    Holiday = "tomb_sweeping_day"
	LabourDay          Holiday = "labour_day"
	DragonBoatFestival Holiday = "dragon_boat_festival"
	NationalDay        Holiday = "national_day"
	MidAutumnFestival  Holiday = "mid_autumn_festival"
	// One-off commemoration holiday in 2015.
	AntiFascistDay Holiday = "anti_fascist_70th_day"
)

var holidayNames = map[Holiday]string{
	NewYearsDay:        "New Year's Day",
	SpringFestival:     "Spring Festival",
	TombSweepingDay:    "Tomb-sweeping Day",
	LabourDay:          "Labour Day",
	DragonBoatFestival: "Dragon Boat Festival",
	NationalDay:        "National Day",
	MidAutumnFestival:  "Mid-autumn Festival",
	AntiFascistDay:     "Anti-Fascist 70th Day",
}

// Name returns the English display name, e.g. "Labour Day".
func (h Holiday) Name() string {
	return holidayNames[h]
}

// ParseHoliday validates s against the closed holiday set.
func ParseHoliday(s string) (Holiday, error) {
	h := Holiday(s)
	if _, ok := holidayNames[h]; !ok {
		return "", fmt.Errorf("unknown holiday %q", s)
	}
	return h, nil
}
