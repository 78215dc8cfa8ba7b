package models

import "fmt"

type FileKind string

const (
	FileKindSummary FileKind = "summary"
	FileKindTest    FileKind = "test"
)

// UserFile records a document that produced a summary or a test.
type UserFile struct {
	Name string   `json:"name"`
	Size string   `json:"size"`
	Type FileKind `json:"type"`
}

// UserPlan records a generated study plan.
type UserPlan struct {
	Title string    `json:"title"`
	Date  string    `json:"date"`
	Data  StudyPlan `json:"data"`
}

// UserActivity is the per-user activity log. Lists are append-only and
// Tests only grows.
type UserActivity struct {
	Files []UserFile `json:"files"`
	Plans []UserPlan `json:"plans"`
	Tests int        `json:"tests"`
}

// EmptyActivity is the value used when no record exists. Its slices are
// non-nil so it encodes as {"files":[],"plans":[],"tests":0}.
func EmptyActivity() UserActivity {
	return UserActivity{Files: []UserFile{}, Plans: []UserPlan{}}
}

// Normalize replaces nil slices with empty ones.
func (a UserActivity) Normalize() UserActivity {
	if a.Files == nil {
		a.Files = []UserFile{}
	}
	if a.Plans == nil {
		a.Plans = []UserPlan{}
	}
	return a
}

// RecentFiles returns up to n files, newest first.
func (a UserActivity) RecentFiles(n int) []UserFile {
	return lastReversed(a.Files, n)
}

// RecentPlans returns up to n plans, newest first.
func (a UserActivity) RecentPlans(n int) []UserPlan {
	return lastReversed(a.Plans, n)
}

// LatestPlan returns the most recently appended plan, or nil.
func (a UserActivity) LatestPlan() *UserPlan {
	if len(a.Plans) == 0 {
		return nil
	}
	p := a.Plans[len(a.Plans)-1]
	return &p
}

func lastReversed[T any](items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	out := make([]T, 0, n)
	for i := len(items) - 1; i >= len(items)-n; i-- {
		out = append(out, items[i])
	}
	return out
}

// FormatFileSize renders a byte count as kilobytes with two decimals,
// e.g. 12636 -> "12.34 KB".
func FormatFileSize(size int64) string {
	return fmt.Sprintf("%.2f KB", float64(size)/1024)
}
