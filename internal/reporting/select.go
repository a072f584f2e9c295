package reporting

import "time"

const dayLayout = "2006-01-02"

// TargetDay returns the calendar day daysBack days before now
func TargetDay(now time.Time, daysBack int) string {
	return now.AddDate(0, 0, -daysBack).Format(dayLayout)
}

// Select partitions exports created on day. An export is eligible when its
// file name is on the allowlist and it has a download URL. Exports created on
// other days are ignored.
func Select(exports []Export, day string, allowlist []string) Selection {
	allowed := make(map[string]struct{}, len(allowlist))
	for _, name := range allowlist {
		allowed[name] = struct{}{}
	}

	var sel Selection
	for _, export := range exports {
		if export.CreatedDay() != day {
			continue
		}
		if _, ok := allowed[export.FileName()]; !ok {
			sel.OutsideAllowlist = append(sel.OutsideAllowlist, export)
			continue
		}
		if export.DownloadURL == "" {
			sel.MissingURL = append(sel.MissingURL, export)
			continue
		}
		sel.Eligible = append(sel.Eligible, export)
	}
	return sel
}
