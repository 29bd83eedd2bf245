// Package conversion translates between the admin console's flat form
// encoding and the structured domain types. The forms join multi-value
// fields with commas; the core model only ever sees native slices, so
// the CSV handling stays here.
package conversion

import (
	"strconv"
	"strings"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
	"github.com/tablewise/setup-api/internal/errors"
)

// StepConditionForm mirrors the flat fields of the admin step form.
// Multi-value fields are comma-joined; RequireNoExpansions carries
// whatever the form checkbox submitted ("true", "on", "1", or empty).
type StepConditionForm struct {
	PlayerCounts        string
	IncludeExpansions   string
	ExcludeExpansions   string
	IncludeModules      string
	ExcludeModules      string
	RequireNoExpansions string
}

// ParseStepConditionForm decodes the form into a StepCondition,
// validating every field before anything reaches a write or the
// resolver. A form with no constraints at all decodes to nil.
func ParseStepConditionForm(form *StepConditionForm) (*boardgame.StepCondition, error) {
	if form == nil {
		return nil, nil
	}

	vb := errors.NewValidationBuilder()

	counts := parsePlayerCounts(form.PlayerCounts, vb)
	includeExp := parseIDList("IncludeExpansions", form.IncludeExpansions, vb)
	excludeExp := parseIDList("ExcludeExpansions", form.ExcludeExpansions, vb)
	includeMod := parseIDList("IncludeModules", form.IncludeModules, vb)
	excludeMod := parseIDList("ExcludeModules", form.ExcludeModules, vb)
	requireNone := parseCheckbox("RequireNoExpansions", form.RequireNoExpansions, vb)

	if err := vb.Build(); err != nil {
		return nil, err
	}

	cond := &boardgame.StepCondition{
		PlayerCounts:        counts,
		IncludeExpansions:   includeExp,
		ExcludeExpansions:   excludeExp,
		IncludeModules:      includeMod,
		ExcludeModules:      excludeMod,
		RequireNoExpansions: requireNone,
	}
	if cond.IsEmpty() {
		return nil, nil
	}
	return cond, nil
}

// FormatStepConditionForm encodes a condition back into form fields for
// editing. A nil condition yields an all-empty form.
func FormatStepConditionForm(cond *boardgame.StepCondition) *StepConditionForm {
	form := &StepConditionForm{}
	if cond == nil {
		return form
	}

	counts := make([]string, 0, len(cond.PlayerCounts))
	for _, c := range cond.PlayerCounts {
		counts = append(counts, strconv.Itoa(int(c)))
	}
	form.PlayerCounts = strings.Join(counts, ",")
	form.IncludeExpansions = strings.Join(cond.IncludeExpansions, ",")
	form.ExcludeExpansions = strings.Join(cond.ExcludeExpansions, ",")
	form.IncludeModules = strings.Join(cond.IncludeModules, ",")
	form.ExcludeModules = strings.Join(cond.ExcludeModules, ",")
	if cond.RequireNoExpansions {
		form.RequireNoExpansions = "true"
	}
	return form
}

func parsePlayerCounts(raw string, vb *errors.ValidationBuilder) []int32 {
	var counts []int32
	for _, part := range splitCSV(raw) {
		n, err := strconv.Atoi(part)
		if err != nil {
			vb.Fieldf("PlayerCounts", "%q is not a number", part)
			continue
		}
		if n < 1 {
			vb.Fieldf("PlayerCounts", "%d is not a valid player count", n)
			continue
		}
		counts = append(counts, int32(n)) // #nosec G115 -- just range checked
	}
	return counts
}

func parseIDList(field, raw string, vb *errors.ValidationBuilder) []string {
	parts := splitCSV(raw)
	seen := make(map[string]struct{}, len(parts))
	ids := make([]string, 0, len(parts))
	for _, id := range parts {
		if _, dup := seen[id]; dup {
			vb.Fieldf(field, "duplicate id %q", id)
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}

func parseCheckbox(field, raw string, vb *errors.ValidationBuilder) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return false
	case "on":
		// HTML checkboxes submit "on" when checked.
		return true
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		vb.Fieldf(field, "%q is not a boolean", raw)
		return false
	}
	return v
}

// splitCSV splits a comma-joined field, trimming whitespace and
// dropping empty segments so trailing commas are harmless.
func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
