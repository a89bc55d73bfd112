package bot

import (
	"strings"

	"github.com/theroslabs/vitals-tracker/internal/services"
)

// parseVitalsLine turns a one-line entry like
//
//	hr=62 hrv=48.5 rr=14 temp=36.6 spo2=98 slept badly
//
// into a measurement input. Recognized keys map to metrics; everything
// else becomes the notes text. Values are passed through as strings so
// the store's coercion rules apply: an unparseable value ends up
// absent, not rejected.
func parseVitalsLine(line string) services.MeasurementInput {
	var input services.MeasurementInput
	var notes []string

	for _, token := range strings.Fields(line) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			notes = append(notes, token)
			continue
		}
		switch strings.ToLower(key) {
		case "hr", "resting_hr":
			input.RestingHR = value
		case "hrv":
			input.HRV = value
		case "rr", "respiratory_rate":
			input.RespiratoryRate = value
		case "temp", "body_temp":
			input.BodyTemp = value
		case "spo2":
			input.SpO2 = value
		case "date", "measured_at":
			input.MeasuredAt = value
		default:
			notes = append(notes, token)
		}
	}

	input.Notes = strings.Join(notes, " ")
	return input
}

// hasVitals reports whether at least one metric field was recognized.
func hasVitals(in services.MeasurementInput) bool {
	return in.RestingHR != nil || in.HRV != nil || in.RespiratoryRate != nil ||
		in.BodyTemp != nil || in.SpO2 != nil
}
