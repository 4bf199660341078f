// Package answer maps free-form model output onto the fixed
// procedure/theory/safety schema.
package answer

import (
	"encoding/json"
	"strings"
)

// Sentinel values filled in when the model response carried no usable
// JSON. The raw response is still surfaced in Procedure so the user
// always sees something displayable.
const (
	NoJSONSentinel    = "Model did not return JSON."
	MalformedSentinel = "Malformed JSON."
)

// Generated is the structured form of one experiment.
type Generated struct {
	Procedure string `json:"procedure"`
	Theory    string `json:"theory"`
	Safety    string `json:"safety"`
}

// Normalize extracts a JSON object embedded in raw model output and
// maps it onto Generated. Models often wrap the object in prose or
// code fences, so the object is located by the first '{' and the last
// '}' rather than parsed from position zero. Normalize never fails:
// when no object is found or it does not parse, the raw text is
// returned in Procedure with sentinel values for the other fields.
func Normalize(raw string) Generated {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")

	if start == -1 || end == -1 {
		return Generated{
			Procedure: raw,
			Theory:    NoJSONSentinel,
			Safety:    NoJSONSentinel,
		}
	}

	// end < start ("}" before "{") cannot hold an object; treat it the
	// same as a parse failure.
	var fields map[string]string
	if end < start {
		return Generated{
			Procedure: raw,
			Theory:    MalformedSentinel,
			Safety:    MalformedSentinel,
		}
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
		return Generated{
			Procedure: raw,
			Theory:    MalformedSentinel,
			Safety:    MalformedSentinel,
		}
	}

	return Generated{
		Procedure: fields["procedure"],
		Theory:    fields["theory"],
		Safety:    fields["safety"],
	}
}
