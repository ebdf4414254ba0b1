package schedule

import (
	"strings"

	"github.com/twmlab/probenplan-go/internal/models"
	"github.com/twmlab/probenplan-go/internal/spreadsheet"
)

// Buckets turns one parameter's twelve months of raw cells into the ordered
// display buckets for its sampling frequency:
//
//   - quartalsmäßig: four fixed quarter buckets, one sample each
//   - halbjährlich: two fixed half-year buckets, one sample each
//   - jährlich / unregelmäßig when every present month is planned "m":
//     single-occurrence handling over the whole year
//   - everything else: per-month buckets, split further into calendar-week
//     or fixed-day buckets when the planned cell lists them
//
// Empty buckets for untouched periods are emitted only while the parameter
// as a whole is still short of its planned total.
func Buckets(p *models.ParameterRecord) []models.Bucket {
	freq := strings.ToLower(strings.TrimSpace(p.Frequency))

	switch freq {
	case FreqQuarterly:
		return partitionBuckets(p, Quarters)
	case FreqHalfYearly:
		return partitionBuckets(p, HalfYears)
	}

	if (freq == FreqYearly || freq == FreqIrregular) && allEveryMonth(p) {
		return singleOccurrenceBuckets(p, freq)
	}

	return perMonthBuckets(p, freq)
}

// partitionBuckets implements the quarterly and half-yearly displays: sum
// the actual counts of each partition's present months against one required
// sample. Partitions with no data at all still show as open while the
// parameter is incomplete; fully satisfied parameters omit them.
func partitionBuckets(p *models.ParameterRecord, parts []MonthPartition) []models.Bucket {
	var buckets []models.Bucket
	for _, part := range parts {
		taken := 0
		var dates []string
		present := false
		for _, month := range part.Months {
			rec, ok := p.Months[month]
			if !ok {
				continue
			}
			present = true
			taken += rec.ActualCount
			dates = append(dates, rec.Dates...)
		}

		if !present {
			if p.Completed < p.Planned {
				buckets = append(buckets, newBucket(part.Name, 0, 1, nil, p.PN))
			}
			continue
		}

		if taken == 0 {
			dates = nil
		}
		buckets = append(buckets, newBucket(part.Name, taken, 1, dates, p.PN))
	}
	return buckets
}

// singleOccurrenceBuckets handles jährlich and unregelmäßig parameters whose
// planned cells are all the literal "m": one occurrence somewhere in the
// year is what matters, not a particular month.
func singleOccurrenceBuckets(p *models.ParameterRecord, freq string) []models.Bucket {
	months := presentMonths(p)
	var sampled []string
	for _, month := range months {
		if p.Months[month].ActualCount > 0 {
			sampled = append(sampled, month)
		}
	}

	// Nothing taken yet: one grouped bucket spanning the whole range.
	if len(sampled) == 0 {
		return []models.Bucket{newBucket(rangeLabel(months), 0, 1, nil, p.PN)}
	}

	// Yearly: once any month has a sample only that month is shown, at most
	// one occurrence matters.
	if freq == FreqYearly {
		rec := p.Months[sampled[0]]
		return []models.Bucket{newBucket(sampled[0], rec.ActualCount, 1, rec.Dates, p.PN)}
	}

	// Irregular: every sampled month individually, plus one trailing group
	// for the untouched months after the last sample while the parameter is
	// still short.
	var buckets []models.Bucket
	for _, month := range sampled {
		rec := p.Months[month]
		buckets = append(buckets, newBucket(month, rec.ActualCount, 1, rec.Dates, p.PN))
	}

	if p.Completed < p.Planned {
		lastSampled := -1
		for i, month := range months {
			if p.Months[month].ActualCount > 0 {
				lastSampled = i
			}
		}
		var remaining []string
		for i := lastSampled + 1; i < len(months); i++ {
			if p.Months[months[i]].ActualCount == 0 {
				remaining = append(remaining, months[i])
			}
		}
		if len(remaining) > 0 {
			buckets = append(buckets, newBucket(rangeLabel(remaining), 0, 1, nil, p.PN))
		}
	}
	return buckets
}

// perMonthBuckets is the default rendering: one bucket per present month,
// expanded into per-week or per-day buckets when the planned cell lists
// calendar weeks or fixed days.
func perMonthBuckets(p *models.ParameterRecord, freq string) []models.Bucket {
	complete := p.Completed >= p.Planned
	var buckets []models.Bucket

	for _, month := range presentMonths(p) {
		rec := p.Months[month]

		// Completed parameters only show months with actual evidence of a
		// sample; incomplete ones show every tracked month.
		if complete && !rec.HasSampleEvidence() {
			continue
		}

		switch rec.Planned.Kind {
		case models.PlannedWeekList:
			buckets = append(buckets, tokenBuckets(rec, rec.Planned.Weeks, func(week string) string {
				return month + " KW" + week
			}, freq, p.PN)...)
		case models.PlannedDayList:
			buckets = append(buckets, tokenBuckets(rec, rec.Planned.Days, func(day string) string {
				return day + " " + month
			}, freq, p.PN)...)
		default:
			required := rec.Planned.Count
			if required < 1 {
				required = 1
			}
			dates := rec.Dates
			if suppressDates(freq) {
				dates = nil
			}
			buckets = append(buckets, newBucket(month, rec.ActualCount, required, dates, p.PN))
		}
	}
	return buckets
}

// tokenBuckets emits one bucket per listed week or day. A single token gets
// the month's whole actual count; with several tokens the count is consumed
// left to right, one sample per token. Dates attach positionally.
func tokenBuckets(rec models.SampleRecord, tokens []string, label func(string) string, freq string, pn models.PNType) []models.Bucket {
	var buckets []models.Bucket
	for idx, tok := range tokens {
		taken := rec.ActualCount
		if len(tokens) > 1 {
			if idx < rec.ActualCount {
				taken = 1
			} else {
				taken = 0
			}
		}

		var dates []string
		if !suppressDates(freq) && idx < len(rec.Dates) {
			dates = []string{rec.Dates[idx]}
		}

		buckets = append(buckets, newBucket(label(tok), taken, 1, dates, pn))
	}
	return buckets
}

// allEveryMonth reports whether every present month's planned cell is the
// literal "m" token.
func allEveryMonth(p *models.ParameterRecord) bool {
	if len(p.Months) == 0 {
		return false
	}
	for _, rec := range p.Months {
		if rec.Planned.Kind != models.PlannedEveryMonth {
			return false
		}
	}
	return true
}

// presentMonths returns the record's months in calendar order.
func presentMonths(p *models.ParameterRecord) []string {
	var months []string
	for _, month := range spreadsheet.MonthCodes {
		if _, ok := p.Months[month]; ok {
			months = append(months, month)
		}
	}
	return months
}

// rangeLabel renders a month span as "first - last", or the single month.
func rangeLabel(months []string) string {
	if len(months) == 0 {
		return ""
	}
	if len(months) == 1 {
		return months[0]
	}
	return months[0] + " - " + months[len(months)-1]
}

// suppressDates hides date lists for frequencies where they carry no
// information beyond the bucket itself.
func suppressDates(freq string) bool {
	return freq == FreqDaily || freq == FreqTwiceWeekly
}

func newBucket(label string, taken, required int, dates []string, pn models.PNType) models.Bucket {
	state := Classify(taken, required, pn)
	return models.Bucket{
		Label:    label,
		Taken:    taken,
		Required: required,
		Dates:    dates,
		State:    state,
		Colors:   ColorsFor(state),
	}
}
