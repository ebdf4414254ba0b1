package schedule

// MonthPartition is a fixed block of months displayed as one bucket.
type MonthPartition struct {
	Name   string
	Months []string
}

// Quarters partitions the year for the "quartalsmäßig" frequency.
var Quarters = []MonthPartition{
	{Name: "Jan - Mrz", Months: []string{"Jan", "Feb", "Mrz"}},
	{Name: "Apr - Jun", Months: []string{"Apr", "Mai", "Jun"}},
	{Name: "Jul - Sep", Months: []string{"Jul", "Aug", "Sep"}},
	{Name: "Okt - Dez", Months: []string{"Okt", "Nov", "Dez"}},
}

// HalfYears partitions the year for the "halbjährlich" frequency.
var HalfYears = []MonthPartition{
	{Name: "Jan - Jun", Months: []string{"Jan", "Feb", "Mrz", "Apr", "Mai", "Jun"}},
	{Name: "Jul - Dez", Months: []string{"Jul", "Aug", "Sep", "Okt", "Nov", "Dez"}},
}

// KWRanges maps each month to its calendar-week span. Presentation metadata
// for the frontend legend; not used by the bucketing logic itself.
var KWRanges = map[string]string{
	"Jan": "KW: 1-5",
	"Feb": "KW: 5-9",
	"Mrz": "KW: 9-13",
	"Apr": "KW: 14-17",
	"Mai": "KW: 18-22",
	"Jun": "KW: 23-26",
	"Jul": "KW: 27-31",
	"Aug": "KW: 32-35",
	"Sep": "KW: 36-39",
	"Okt": "KW: 40-44",
	"Nov": "KW: 45-48",
	"Dez": "KW: 49-52",
}

// Frequency labels with dedicated bucketing behavior. Any other label falls
// through to plain per-month rendering.
const (
	FreqDaily       = "täglich"
	FreqTwiceWeekly = "zweimalig pro woche"
	FreqQuarterly   = "quartalsmäßig"
	FreqHalfYearly  = "halbjährlich"
	FreqYearly      = "jährlich"
	FreqIrregular   = "unregelmäßig"
)
