package pipeline

import (
	"fmt"
	"strings"

	"github.com/daleel-app/daleel/internal/model"
)

// Composer appends tier-gated advisory notes to the final answer. Only
// premium subscribers see the advisory block; other tiers receive the
// answer unmodified.
type Composer struct{}

// NewComposer creates a composer
func NewComposer() *Composer {
	return &Composer{}
}

var advisoryHeader = model.LocalizedMessage{
	AR: "ملاحظات حول جودة الاستشهاد:",
	FR: "Remarques sur la qualité des citations :",
	EN: "Notes on citation quality:",
}

var advisoryClosing = model.LocalizedMessage{
	AR: "يُنصح بمراجعة المصادر الأصلية للتحقق من هذه الاستشهادات.",
	FR: "Il est recommandé de vérifier ces citations dans les sources originales.",
	EN: "Please verify these citations against the original sources.",
}

// Compose returns the final answer text. For premium users with at least
// one warning, a localized advisory block is appended: divider, enumerated
// warnings, and a closing recommendation to verify original sources.
func (c *Composer) Compose(answer, lang string, tier model.Tier, analysis model.QualityAnalysis) string {
	if tier != model.TierPremium || len(analysis.Warnings) == 0 {
		return answer
	}

	var b strings.Builder
	b.WriteString(answer)
	b.WriteString("\n\n---\n")
	b.WriteString(advisoryHeader.In(lang))
	b.WriteString("\n")
	for i, w := range analysis.Warnings {
		fmt.Fprintf(&b, "%d. %s\n", i+1, w.Message.In(lang))
	}
	b.WriteString("\n")
	b.WriteString(advisoryClosing.In(lang))

	return b.String()
}
