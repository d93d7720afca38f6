package algo

import (
	"slices"

	"github.com/huangsam/teamcap/schema"
)

// AnalyzeCoverage walks every workday of the range and counts who is available.
// Days with nobody available are critical; days below minCoverage are warnings.
// A minCoverage of 0 reports only critical days.
func AnalyzeCoverage(events []schema.PTOEvent, teamSize int, dateRange schema.DateRange, minCoverage int, policy schema.CalendarPolicy) (schema.CoverageReport, error) {
	if teamSize < 0 {
		return schema.CoverageReport{}, &schema.ValidationError{Field: "team_size", Reason: "team size cannot be negative"}
	}
	if minCoverage < 0 {
		return schema.CoverageReport{}, &schema.ValidationError{Field: "min_coverage", Reason: "minimum coverage cannot be negative"}
	}
	if err := schema.ValidateRange("coverage", dateRange.Start, dateRange.End); err != nil {
		return schema.CoverageReport{}, err
	}
	for _, e := range events {
		if err := schema.ValidateRange("pto "+e.PersonID, e.StartDate, e.EndDate); err != nil {
			return schema.CoverageReport{}, err
		}
	}
	report := schema.CoverageReport{TeamSize: teamSize, MinCoverage: minCoverage, Days: []schema.CoverageDay{}}
	end := schema.TruncateDay(dateRange.End)
	for d := schema.TruncateDay(dateRange.Start); !d.After(end); d = d.AddDate(0, 0, 1) {
		if !policy.IsWorkday(d) {
			continue
		}

		var out []string
		for _, e := range events {
			if e.Covers(d) && !slices.Contains(out, e.PersonID) {
				out = append(out, e.PersonID)
			}
		}
		slices.Sort(out)

		available := teamSize - len(out)
		report.Days = append(report.Days, schema.CoverageDay{
			Date:      d,
			Available: available,
			PeopleOut: out,
			Severity:  coverageSeverity(available, minCoverage),
		})
	}
	return report, nil
}

func coverageSeverity(available, minCoverage int) schema.Severity {
	switch {
	case available <= 0:
		return schema.CriticalSeverity
	case available < minCoverage:
		return schema.WarningSeverity
	default:
		return schema.NoneSeverity
	}
}
