package editor

import (
	"regexp"

	"github.com/five82/trapmeta/internal/state"
	"github.com/five82/trapmeta/internal/trapapi"
)

const manualTemperatureKey = "Temperature"

var temperaturePattern = regexp.MustCompile(`(-?\d{1,3})\s*°?\s*C\s*(-?\d{1,3})\s*°?\s*F`)

// splitTemperature rewrites the combined "23°C 73°F" value returned by the
// manual footer parser into the Temperature_C and Temperature_F fields that
// automatic extraction produces. Other keys pass through.
func splitTemperature(parsed trapapi.Metadata) trapapi.Metadata {
	out := trapapi.Metadata{}
	for _, f := range parsed {
		if f.Key == manualTemperatureKey {
			if m := temperaturePattern.FindStringSubmatch(f.Value); m != nil {
				out = out.With(state.FieldTemperatureC, m[1]+"°C")
				out = out.With(state.FieldTemperatureF, m[2]+"°F")
				continue
			}
		}
		out = out.With(f.Key, f.Value)
	}
	return out
}
