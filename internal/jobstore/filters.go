package jobstore

import (
	"strconv"
	"strings"

	"careerhub/client/internal/api"
)

// Filters are the client-side narrowing fields. Salary bounds arrive as
// strings from form input; non-numeric values are ignored rather than
// rejected.
type Filters struct {
	Location      string
	Industry      string
	MinSalary     string
	MaxSalary     string
	TitleContains string
}

func (f Filters) Empty() bool {
	return f == Filters{}
}

// Apply is the pure derivation of the filtered view from a source set. The
// source slice is never mutated.
func Apply(jobs []api.Job, f Filters) []api.Job {
	if f.Empty() {
		return append([]api.Job(nil), jobs...)
	}

	minSalary, hasMin := parseSalary(f.MinSalary)
	maxSalary, hasMax := parseSalary(f.MaxSalary)
	title := strings.ToLower(strings.TrimSpace(f.TitleContains))

	out := make([]api.Job, 0, len(jobs))
	for _, job := range jobs {
		if f.Location != "" && job.Location != f.Location {
			continue
		}
		if f.Industry != "" && job.Industry != f.Industry {
			continue
		}
		if hasMin && job.Salary < minSalary {
			continue
		}
		if hasMax && job.Salary > maxSalary {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(job.Title), title) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func parseSalary(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
