package application

import (
	"strings"

	"github.com/linskybing/programhub/internal/domain/program"
)

// Buckets partitions a collection into drafts, active and completed.
type Buckets struct {
	Drafts    []program.Application
	Active    []program.Application
	Completed []program.Application
}

func (b Buckets) Total() int {
	return len(b.Drafts) + len(b.Active) + len(b.Completed)
}

// Search matches text case-insensitively against the program name.
// Blank text matches everything.
func Search(apps []program.Application, text string) []program.Application {
	needle := strings.ToLower(strings.TrimSpace(text))
	return filter(apps, func(a program.Application) bool {
		return needle == "" || strings.Contains(strings.ToLower(a.ProgramName), needle)
	})
}

// FilterByStatus keeps exact status matches; "all" (or empty) keeps everything.
func FilterByStatus(apps []program.Application, status string) []program.Application {
	status = strings.TrimSpace(status)
	return filter(apps, func(a program.Application) bool {
		return status == "" || status == program.StatusAll || string(a.Status) == status
	})
}

// Query applies Search and FilterByStatus together.
func Query(apps []program.Application, text, status string) []program.Application {
	return FilterByStatus(Search(apps, text), status)
}

func GroupByBucket(apps []program.Application) Buckets {
	b := Buckets{
		Drafts:    []program.Application{},
		Active:    []program.Application{},
		Completed: []program.Application{},
	}
	for _, a := range apps {
		switch a.Status.Bucket() {
		case program.BucketDrafts:
			b.Drafts = append(b.Drafts, a)
		case program.BucketActive:
			b.Active = append(b.Active, a)
		default:
			b.Completed = append(b.Completed, a)
		}
	}
	return b
}

// ValidStatusFilter reports whether s can be passed to FilterByStatus.
func ValidStatusFilter(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == program.StatusAll || program.Status(s).Valid()
}

func filter(apps []program.Application, keep func(program.Application) bool) []program.Application {
	out := make([]program.Application, 0, len(apps))
	for _, a := range apps {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
