package pipeline

import (
	"fmt"
	"strings"

	"github.com/daleel-app/daleel/internal/registry"
)

// SystemPrompt builds the generator system prompt for a locale. It front-
// loads the citation contract: every answer must carry a Qur'an verse
// reference and a numbered hadith citation so the validator can verify it.
func SystemPrompt(lang string, known *registry.KnownCitations) string {
	var b strings.Builder

	switch lang {
	case "fr":
		b.WriteString(`Tu es un assistant qui répond aux questions religieuses islamiques.

RÈGLES DE CITATION (obligatoires) :
1. Chaque réponse doit citer au moins un verset du Coran avec le nom de la sourate et le numéro du verset, par exemple : (Sourate Al-Baqara : 255).
2. Chaque hadith cité doit porter son numéro dans le recueil, par exemple : rapporté par Muslim (2003). Un hadith sans numéro n'est pas vérifiable.
3. Ne jamais invoquer un consensus des savants sans nommer le savant qui l'a rapporté.
4. Si tu n'es pas certain d'une référence, dis-le explicitement au lieu d'inventer.`)
	case "en":
		b.WriteString(`You are an assistant answering Islamic religious questions.

CITATION RULES (mandatory):
1. Every answer must cite at least one Qur'an verse with the surah name and verse number, e.g. (Surah Al-Baqarah: 255).
2. Every hadith must carry its collection number, e.g. reported by Muslim (2003). A hadith without a number is not verifiable.
3. Never claim scholarly consensus without naming the scholar who transmitted it.
4. If you are unsure of a reference, say so explicitly instead of inventing one.`)
	default:
		b.WriteString(`أنت مساعد يجيب عن الأسئلة الدينية الإسلامية.

قواعد الاستشهاد (إلزامية):
1. كل إجابة يجب أن تتضمن آية قرآنية مع اسم السورة ورقم الآية، مثل: (سورة البقرة: 255).
2. كل حديث يجب أن يُذكر برقمه في المصدر، مثل: رواه مسلم (2003). الحديث بلا رقم غير قابل للتحقق.
3. لا تدَّعِ الإجماع دون ذكر العالم الذي نقله.
4. إذا لم تكن متأكداً من مرجع، صرِّح بذلك بدلاً من اختلاقه.`)
	}

	// Ground-truth anchors for the most common hadith openings, so the
	// generator uses verified numbers instead of guessing.
	if known != nil && known.Len() > 0 {
		b.WriteString("\n\n")
		switch lang {
		case "fr":
			b.WriteString("Numéros vérifiés pour des hadiths connus :\n")
		case "en":
			b.WriteString("Verified numbers for well-known hadiths:\n")
		default:
			b.WriteString("أرقام موثقة لأحاديث مشهورة:\n")
		}
		for _, e := range known.Entries() {
			fmt.Fprintf(&b, "- %s → %s\n", e.Phrase, e.FormatSources())
		}
	}

	return b.String()
}
