package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProfileUpdate_Apply(t *testing.T) {
	u := User{Name: "Sara", Email: "sara@x.io", Major: "CS"}

	got := ProfileUpdate{Major: strPtr("Math")}.Apply(u)
	assert.Equal(t, User{Name: "Sara", Email: "sara@x.io", Major: "Math"}, got)

	got = ProfileUpdate{Name: strPtr("Sara A."), Email: strPtr("sara@y.io"), Major: strPtr("")}.Apply(u)
	assert.Equal(t, User{Name: "Sara A.", Email: "sara@y.io"}, got)

	assert.Equal(t, u, ProfileUpdate{}.Apply(u))
	assert.True(t, ProfileUpdate{}.IsEmpty())
	assert.False(t, ProfileUpdate{Major: strPtr("")}.IsEmpty())
}

func TestAccount_UserDropsCredentials(t *testing.T) {
	a := Account{Name: "Sara", Email: "sara@x.io", Major: "CS", Salt: []byte{1}, Verifier: []byte{2}}
	assert.Equal(t, User{Name: "Sara", Email: "sara@x.io", Major: "CS"}, a.User())
}

func TestEmptyActivity_EncodesEmptyLists(t *testing.T) {
	b, err := json.Marshal(EmptyActivity())
	require.NoError(t, err)
	assert.JSONEq(t, `{"files":[],"plans":[],"tests":0}`, string(b))

	b, err = json.Marshal(UserActivity{}.Normalize())
	require.NoError(t, err)
	assert.JSONEq(t, `{"files":[],"plans":[],"tests":0}`, string(b))
}

func TestRecentFilesAndPlans_NewestFirst(t *testing.T) {
	a := EmptyActivity()
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		a.Files = append(a.Files, UserFile{Name: n})
		a.Plans = append(a.Plans, UserPlan{Title: n})
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"dashboard", 4, []string{"e", "d", "c", "b"}},
		{"profile", 3, []string{"e", "d", "c"}},
		{"more than available", 10, []string{"e", "d", "c", "b", "a"}},
		{"zero", 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]string, 0)
			for _, f := range a.RecentFiles(tt.n) {
				got = append(got, f.Name)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RecentFiles mismatch (-want +got):\n%s", diff)
			}
		})
	}

	plans := a.RecentPlans(2)
	require.Len(t, plans, 2)
	assert.Equal(t, "e", plans[0].Title)
	assert.Equal(t, "d", plans[1].Title)

	assert.Equal(t, "e", a.LatestPlan().Title)
	assert.Nil(t, EmptyActivity().LatestPlan())
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "12.34 KB", FormatFileSize(12636))
	assert.Equal(t, "0.00 KB", FormatFileSize(0))
	assert.Equal(t, "1.00 KB", FormatFileSize(1024))
}

func TestQuizQuestion_MarshalIncludesType(t *testing.T) {
	qs := []QuizQuestion{
		&MCQQuestion{Question: "2+2?", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: "4"},
		&EssayQuestion{Question: "Explain."},
	}
	b, err := json.Marshal(qs)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"MCQ","question":"2+2?","options":["1","2","3","4"],"correctAnswer":"4"},
		{"type":"Essay","question":"Explain."}
	]`, string(b))

	assert.Equal(t, QuestionMCQ, qs[0].Kind())
	assert.Equal(t, "Explain.", qs[1].Text())
}

func TestScore_CountsOnlyMCQ(t *testing.T) {
	qs := []QuizQuestion{
		&MCQQuestion{Question: "a", Options: []string{"x", "y"}, CorrectAnswer: "x"},
		&EssayQuestion{Question: "b"},
		&MCQQuestion{Question: "c", Options: []string{"x", "y"}, CorrectAnswer: "y"},
	}

	correct, total := Score(qs, map[int]string{0: "x", 2: "x"})
	assert.Equal(t, 1, correct)
	assert.Equal(t, 2, total)

	correct, total = Score(qs, nil)
	assert.Equal(t, 0, correct)
	assert.Equal(t, 2, total)
}

func TestResearchResult_Empty(t *testing.T) {
	assert.True(t, ResearchResult{}.Empty())
	assert.False(t, ResearchResult{Text: "x"}.Empty())
	assert.False(t, ResearchResult{Sources: []ResearchSource{{URI: "u"}}}.Empty())
}

func TestNavigation(t *testing.T) {
	n := DefaultNavigation()
	assert.Equal(t, PageDashboard, n.CurrentPage)
	assert.Equal(t, FeatureAIAssistant, n.ActiveFeature)

	n.NavigateTo(PageProfile, "")
	assert.Equal(t, PageProfile, n.CurrentPage)
	assert.Equal(t, FeatureAIAssistant, n.ActiveFeature)

	n.NavigateTo(PageDashboard, FeatureStudyPlanner)
	assert.Equal(t, FeatureStudyPlanner, n.ActiveFeature)

	f, ok := ParseFeature("summarizer")
	assert.True(t, ok)
	assert.Equal(t, FeatureSummarizer, f)

	_, ok = ParseFeature("unknown")
	assert.False(t, ok)
}
