package cli

import (
	"context"

	"github.com/dmitrijs2005/studymate/internal/i18n"
	"github.com/dmitrijs2005/studymate/internal/models"
)

type releaseNote struct {
	Version  string
	Date     string
	Features []string
}

var releaseNotes = map[i18n.Language][]releaseNote{
	i18n.English: {
		{
			Version: "Version 1.2.0: AI Assistant Upgrade",
			Date:    "October 10, 2025",
			Features: []string{
				"The AI Assistant can now analyze images (JPG, PNG).",
				"Improved accuracy in lecture summaries.",
				"UI enhancements for a smoother experience.",
			},
		},
		{
			Version: "Version 1.1.0: Profile & Dashboard Enhancements",
			Date:    "September 22, 2025",
			Features: []string{
				"New user profile page with activity stats.",
				"Redesigned Home Dashboard with quick actions.",
				"Added auto-save for profile changes.",
			},
		},
		{
			Version: "Version 1.0.0: Welcome to StudyMate!",
			Date:    "August 15, 2025",
			Features: []string{
				"Initial release of StudyMate.",
				"Core features: Summarizer, Test Generator, Study Planner, and Research Assistant.",
			},
		},
	},
	i18n.Arabic: {
		{
			Version: "الإصدار 1.2.0: ترقية المساعد الذكي",
			Date:    "10 أكتوبر 2025",
			Features: []string{
				"المساعد الذكي يستطيع الآن تحليل الصور (JPG, PNG).",
				"تحسين دقة ملخصات المحاضرات.",
				"تحسينات في واجهة المستخدم لتجربة أكثر سلاسة.",
			},
		},
		{
			Version: "الإصدار 1.1.0: تحسينات الملف الشخصي ولوحة التحكم",
			Date:    "22 سبتمبر 2025",
			Features: []string{
				"صفحة ملف شخصي جديدة مع إحصائيات النشاط.",
				"إعادة تصميم لوحة التحكم الرئيسية بإجراءات سريعة.",
				"إضافة الحفظ التلقائي لتغييرات الملف الشخصي.",
			},
		},
		{
			Version: "الإصدار 1.0.0: أهلاً بك في StudyMate!",
			Date:    "15 أغسطس 2025",
			Features: []string{
				"الإصدار الأولي لتطبيق StudyMate.",
				"الميزات الأساسية: ملخص المحاضرات، مولد الاختبارات، منظم الدراسة، ومساعد البحث.",
			},
		},
	},
}

func (a *App) Updates(_ context.Context) error {
	a.nav.NavigateTo(models.PageUpdates, "")

	a.println(title(a.t("page.updates.title")))
	a.println(muted(a.t("page.updates.description")))
	for _, n := range releaseNotes[a.tr.Language()] {
		a.println()
		a.println(title(n.Version) + "  " + muted(n.Date))
		for _, f := range n.Features {
			a.println("  ✓ " + f)
		}
	}
	return nil
}
