package models

type Page string

const (
	PageDashboard Page = "dashboard"
	PageProfile   Page = "profile"
	PageUpdates   Page = "updates"
)

type Feature string

const (
	FeatureHome              Feature = "home-dashboard"
	FeatureAIAssistant       Feature = "ai-assistant"
	FeatureSummarizer        Feature = "summarizer"
	FeatureTestGenerator     Feature = "test-generator"
	FeatureStudyPlanner      Feature = "study-planner"
	FeatureResearchAssistant Feature = "research-assistant"
)

// Features lists the selectable dashboard features in menu order.
var Features = []Feature{
	FeatureHome,
	FeatureAIAssistant,
	FeatureSummarizer,
	FeatureTestGenerator,
	FeatureStudyPlanner,
	FeatureResearchAssistant,
}

// Navigation is the in-memory view position. It is never persisted.
type Navigation struct {
	CurrentPage   Page
	ActiveFeature Feature
}

func DefaultNavigation() Navigation {
	return Navigation{CurrentPage: PageDashboard, ActiveFeature: FeatureAIAssistant}
}

// NavigateTo switches page and, when feature is non-empty, the active feature.
func (n *Navigation) NavigateTo(page Page, feature Feature) {
	n.CurrentPage = page
	if feature != "" {
		n.ActiveFeature = feature
	}
}

// ParseFeature matches name against the known features.
func ParseFeature(name string) (Feature, bool) {
	for _, f := range Features {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}
