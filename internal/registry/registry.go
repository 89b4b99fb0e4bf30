package registry

import (
	"regexp"
	"strings"

	"github.com/daleel-app/daleel/internal/model"
)

// Tier splits recognizers into citations that count as evidence and
// citation-like phrases that gesture at evidence without being verifiable.
type Tier string

const (
	TierValid Tier = "valid"
	TierWeak  Tier = "weak"
)

// LocaleGroup identifies which language family a rule targets. French and
// English share one group: their citation conventions are close enough that
// a single pattern covers both.
type LocaleGroup string

const (
	LocaleArabic LocaleGroup = "ar"
	LocaleLatin  LocaleGroup = "fr-en"
)

// Rule is a single declarative recognizer. Adding a locale or a collection
// name is a data change here, never new control flow in the extractor.
type Rule struct {
	ID          string
	LocaleGroup LocaleGroup
	Tier        Tier
	Class       model.RefType
	Priority    int
	Pattern     *regexp.Regexp

	// Warning is the defect class reported for weak-tier hits
	Warning model.WarningType

	// NumericAnchorAware cancels a weak hit when digits directly follow
	// the match ("متفق عليه (1907)" is anchored, hence not weak)
	NumericAnchorAware bool

	// TransmitterAware cancels a weak hit when a transmission verb
	// precedes the match ("نقل ابن المنذر الإجماع" names its source)
	TransmitterAware bool
}

// Registry is a versioned, read-only table of recognizer rules. It is pure
// data, safe for unlimited concurrent readers, and injected into the
// pipeline so tests can substitute alternate rule sets.
type Registry struct {
	version string
	rules   []Rule
}

// New builds a registry from a declarative rule list
func New(version string, rules []Rule) *Registry {
	return &Registry{version: version, rules: rules}
}

// Version returns the registry version string
func (r *Registry) Version() string {
	return r.version
}

// Rules returns all rules in declaration order
func (r *Registry) Rules() []Rule {
	return r.rules
}

// Valid returns the valid-tier rules in declaration order
func (r *Registry) Valid() []Rule {
	return r.tier(TierValid)
}

// Weak returns the weak-tier rules in declaration order
func (r *Registry) Weak() []Rule {
	return r.tier(TierWeak)
}

func (r *Registry) tier(t Tier) []Rule {
	var out []Rule
	for _, rule := range r.rules {
		if rule.Tier == t {
			out = append(out, rule)
		}
	}
	return out
}

// Canonical collection and scholar name alternations. Longer variants come
// first: Go's regexp alternation is leftmost-first.
const (
	arCollections = `البخاري|مسلم|الترمذي|أبي داود|أبو داود|النسائي|ابن ماجه|ابن ماجة`

	latinCollections = `al-bukhari|bukhari|boukhari|muslim|mouslim|at-tirmidhi|tirmidhi|abu dawud|abou daoud|abu dawood|an-nasa'i|nasa'i|nasai|ibn majah|ibn maja`

	arScholars = `ابن تيمية|ابن القيم|ابن كثير|ابن حجر|ابن قدامة|ابن عثيمين|ابن باز|النووي|الشافعي|الألباني|القرطبي|الطبري|الشوكاني|مالك|أبو حنيفة|أحمد بن حنبل`

	latinScholars = `ibn taymiyyah|ibn taymiyya|ibn al-qayyim|ibn kathir|ibn hajar|ibn qudamah|ibn uthaymin|ibn uthaymeen|ibn baz|an-nawawi|al-nawawi|nawawi|ash-shafi'i|al-shafi'i|shafi'i|al-albani|albani|al-qurtubi|at-tabari|ash-shawkani|malik|abu hanifa`

	arHonorific = `(?:الإمام\s+|الشيخ\s+|الحافظ\s+|العلامة\s+)?`
)

var (
	msgCitationMissingNumber = model.LocalizedMessage{
		AR: "استشهاد بحديث دون رقم: أضف رقم الحديث في المصدر حتى يمكن التحقق منه",
		FR: "Hadith cité sans numéro : ajoutez le numéro du hadith dans le recueil pour qu'il soit vérifiable",
		EN: "Hadith cited without a number: add the hadith number in the collection so it can be verified",
	}
	msgConsensusWithoutSource = model.LocalizedMessage{
		AR: "ادعاء إجماع دون ذكر من نقله: سمِّ العالم الذي حكى الإجماع",
		FR: "Consensus invoqué sans source : nommez le savant qui a rapporté ce consensus",
		EN: "Consensus claimed without a source: name the scholar who transmitted it",
	}
)

// WarningMessage returns the localized triple for a defect class
func WarningMessage(t model.WarningType) model.LocalizedMessage {
	switch t {
	case model.WarnConsensusWithoutSource:
		return msgConsensusWithoutSource
	default:
		return msgCitationMissingNumber
	}
}

// Default builds the production registry. Priority weights come from the
// scoring configuration so the ranking stays tunable.
func Default(sc model.ScoringConfig) *Registry {
	rules := []Rule{
		// --- Valid tier: numbered hadith ---
		{
			ID:          "ar-hadith-number",
			LocaleGroup: LocaleArabic,
			Tier:        TierValid,
			Class:       model.RefHadithNumbered,
			Priority:    sc.PriorityHadithNumbered,
			Pattern: regexp.MustCompile(
				`(?:رواه|أخرجه|صحيح|سنن)\s+(?:` + arCollections + `)(?:\s+و(?:` + arCollections + `))?[^()\d\n]{0,25}[\(\[]?\s*(?:رقم\s*|ح\s*)?(\d+)\s*[\)\]]?`),
		},
		{
			ID:          "latin-hadith-number",
			LocaleGroup: LocaleLatin,
			Tier:        TierValid,
			Class:       model.RefHadithNumbered,
			Priority:    sc.PriorityHadithNumbered,
			Pattern: regexp.MustCompile(
				`(?i)(?:sahih|sunan|jami|rapporté par|reported by|narrated by|recorded by)\s+(?:` + latinCollections + `)[^()\d\n]{0,25}[\(\[]?\s*(?:no\.?\s*|n°\s*|#\s*)?(\d+)\s*[\)\]]?`),
		},

		// --- Valid tier: Qur'an references ---
		{
			ID:          "quran-glyph",
			LocaleGroup: LocaleArabic,
			Tier:        TierValid,
			Class:       model.RefQuran,
			Priority:    sc.PriorityQuran,
			Pattern: regexp.MustCompile(
				`﴿[^﴾]{1,300}﴾(?:\s*[\(\[][^\)\]\n]{1,60}[\)\]])?`),
		},
		{
			ID:          "ar-quran-surah",
			LocaleGroup: LocaleArabic,
			Tier:        TierValid,
			Class:       model.RefQuran,
			Priority:    sc.PriorityQuran,
			Pattern: regexp.MustCompile(
				`سورة\s+(?:آل\s+)?\p{Arabic}+\s*(?:[،,]\s*)?(?:الآية|الآيات|آية)?\s*[:：]?\s*[\(\[]?\s*(\d+)(?:\s*[-–]\s*\d+)?\s*[\)\]]?`),
		},
		{
			ID:          "ar-quran-paren",
			LocaleGroup: LocaleArabic,
			Tier:        TierValid,
			Class:       model.RefQuran,
			Priority:    sc.PriorityQuran,
			Pattern: regexp.MustCompile(
				`[\(\[]\s*(?:سورة\s+)?(?:آل\s+)?\p{Arabic}{2,}\s*[:：]\s*(\d+)(?:\s*[-–]\s*\d+)?\s*[\)\]]`),
		},
		{
			ID:          "latin-quran-surah",
			LocaleGroup: LocaleLatin,
			Tier:        TierValid,
			Class:       model.RefQuran,
			Priority:    sc.PriorityQuran,
			Pattern: regexp.MustCompile(
				`(?i)\b(?:sourate|surah|surat|sura)\s+[a-z'’-]+\s*[,:]?\s*(?:verset|verse|ayah|ayat|aya)?\s*:?\s*(\d+)(?:\s*[-–]\s*\d+)?`),
		},
		{
			ID:          "latin-quran-ref",
			LocaleGroup: LocaleLatin,
			Tier:        TierValid,
			Class:       model.RefQuran,
			Priority:    sc.PriorityQuran,
			Pattern: regexp.MustCompile(
				`(?i)\b(?:quran|qur['’]an|coran)\s*[\(\[]?\s*(\d+)\s*[:.]\s*(\d+)\s*[\)\]]?`),
		},

		// --- Valid tier: scholar with book source ---
		{
			ID:          "ar-scholar-book",
			LocaleGroup: LocaleArabic,
			Tier:        TierValid,
			Class:       model.RefScholarBook,
			Priority:    sc.PriorityScholarBook,
			Pattern: regexp.MustCompile(
				`(?:قال|ذكر|نقل|أفتى|رجح)\s+` + arHonorific + `(?:` + arScholars + `)\s+في\s+[«"]?\p{Arabic}[\p{Arabic}\s]{2,40}`),
		},
		{
			ID:          "latin-scholar-book",
			LocaleGroup: LocaleLatin,
			Tier:        TierValid,
			Class:       model.RefScholarBook,
			Priority:    sc.PriorityScholarBook,
			Pattern: regexp.MustCompile(
				`(?i)\b(?:imam\s+|sheikh\s+|shaykh\s+|cheikh\s+)?(?:` + latinScholars + `)\s+(?:said|stated|wrote|a dit|écrit)?\s*(?:in|dans)\s+[«"a-z][^,.;\n]{2,60}`),
		},

		// --- Valid tier: named scholar in context (no book) ---
		{
			ID:          "ar-scholar-opinion",
			LocaleGroup: LocaleArabic,
			Tier:        TierValid,
			Class:       model.RefScholarOpinion,
			Priority:    sc.PriorityScholarOpinion,
			Pattern: regexp.MustCompile(
				`(?:قال|أفتى|ذهب|رجح|سئل)\s+` + arHonorific + `(?:` + arScholars + `)`),
		},
		{
			ID:          "latin-scholar-opinion",
			LocaleGroup: LocaleLatin,
			Tier:        TierValid,
			Class:       model.RefScholarOpinion,
			Priority:    sc.PriorityScholarOpinion,
			Pattern: regexp.MustCompile(
				`(?i)\b(?:imam|sheikh|shaykh|cheikh)\s+(?:` + latinScholars + `)`),
		},

		// --- Weak tier: hadith graded but not numbered ---
		{
			ID:          "ar-hadith-graded",
			LocaleGroup: LocaleArabic,
			Tier:        TierWeak,
			Class:       model.RefHadithGraded,
			Warning:     model.WarnCitationMissingNumber,
			Pattern: regexp.MustCompile(
				`(?:رواه|أخرجه)\s+(?:` + arCollections + `)\s*(?:[\(\[]\s*(?:صحيح|حسن صحيح|حسن|ضعيف)\s*[\)\]]|وهو\s+(?:صحيح|حسن|ضعيف))`),
		},
		{
			ID:                 "ar-agreed-upon",
			LocaleGroup:        LocaleArabic,
			Tier:               TierWeak,
			Class:              model.RefHadithGraded,
			Warning:            model.WarnCitationMissingNumber,
			NumericAnchorAware: true,
			Pattern:            regexp.MustCompile(`متفق\s+عليه`),
		},
		{
			ID:          "latin-hadith-graded",
			LocaleGroup: LocaleLatin,
			Tier:        TierWeak,
			Class:       model.RefHadithGraded,
			Warning:     model.WarnCitationMissingNumber,
			Pattern: regexp.MustCompile(
				`(?i)(?:rapporté par|reported by|narrated by|recorded by)\s+(?:` + latinCollections + `)\s*[\(\[]\s*(?:sahih|sahîh|authentique|authentic|hasan|hassan|da'if|weak)\s*[\)\]]`),
		},
		{
			ID:                 "latin-agreed-upon",
			LocaleGroup:        LocaleLatin,
			Tier:               TierWeak,
			Class:              model.RefHadithGraded,
			Warning:            model.WarnCitationMissingNumber,
			NumericAnchorAware: true,
			Pattern:            regexp.MustCompile(`(?i)\bagreed upon\b`),
		},

		// --- Weak tier: consensus without a named transmitter ---
		{
			ID:               "ar-consensus",
			LocaleGroup:      LocaleArabic,
			Tier:             TierWeak,
			Class:            model.RefScholarOpinion,
			Warning:          model.WarnConsensusWithoutSource,
			TransmitterAware: true,
			Pattern: regexp.MustCompile(
				`(?:أجمع|اتفق)\s+(?:العلماء|أهل العلم|الفقهاء|الأمة)|إجماع\s+(?:العلماء|أهل العلم)|بالإجماع`),
		},
		{
			ID:               "latin-consensus",
			LocaleGroup:      LocaleLatin,
			Tier:             TierWeak,
			Class:            model.RefScholarOpinion,
			Warning:          model.WarnConsensusWithoutSource,
			TransmitterAware: true,
			Pattern: regexp.MustCompile(
				`(?i)(?:scholars\s+(?:have\s+)?(?:unanimously\s+)?agreed?|unanimous\s+consensus|consensus\s+(?:of\s+the\s+scholars|des\s+savants)|à\s+l['’]unanimité|by\s+(?:scholarly\s+)?consensus)`),
		},
	}

	return New("v1", rules)
}

var (
	numericAnchor  = regexp.MustCompile(`^\s*[\(\[]?\s*(?:رقم\s*|no\.?\s*|n°\s*|#\s*)?\d`)
	transmitterSig = regexp.MustCompile(`(?i)نقل|حكى|transmitted by|rapporté par|narrated by`)
)

// HasNumericAnchor reports whether digits directly follow text[end:],
// allowing an opening bracket and a number-word prefix in between.
func HasNumericAnchor(text string, end int) bool {
	if end >= len(text) {
		return false
	}
	tail := text[end:]
	if len(tail) > 24 {
		tail = tail[:24]
	}
	return numericAnchor.MatchString(tail)
}

// HasNamedTransmitter reports whether a transmission verb appears shortly
// before text[start:], meaning the consensus claim names its source.
func HasNamedTransmitter(text string, start int) bool {
	from := start - 64
	if from < 0 {
		from = 0
	}
	window := text[from:start]
	// A clipped leading rune cannot produce a false match: the verbs we
	// look for are whole words.
	return transmitterSig.MatchString(strings.ToValidUTF8(window, ""))
}
