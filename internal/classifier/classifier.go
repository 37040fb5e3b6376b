// Package classifier 通过姓名的字符串形态推断性别和语言
// 纯函数、表驱动，规则顺序即匹配优先级，下游过滤行为依赖这个顺序，不要重排
package classifier

import "strings"

// 性别取值
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderUnknown = "unknown"
)

// 语言取值
const (
	LangKazakh  = "kazakh"
	LangRussian = "russian"
	LangEnglish = "english"
	LangOther   = "other"
	LangUnknown = "unknown"
)

// 女性姓氏/父称后缀与男性后缀不相交，case-insensitive 匹配
var (
	femaleSurnameSuffixes    = []string{"ова", "ева", "ина", "ая", "ская", "цкая"}
	femalePatronymicSuffixes = []string{"овна", "евна", "ична", "қызы", "кызы", "гызи", "гулы"}
	maleSurnameSuffixes      = []string{"ов", "ев", "ин", "ский", "цкий"}
	malePatronymicSuffixes   = []string{"ович", "евич", "ич", "улы", "оглы"}
)

var (
	kazakhLetters  = "әөүқғңұhі"
	kazakhEndings  = []string{"улы", "қызы", "кызы", "оглы", "гулы", "бек", "хан", "бай", "жан", "гали", "мырза", "нур"}
	russianEndings = []string{
		"ов", "ова", "ев", "ева", "ин", "ина", "ский", "ская", "цкий", "цкая",
		"ович", "овна", "евич", "евна", "ич", "ична",
	}
)

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// InferGender 按 ФИО 推断性别
// 少于两个词返回 unknown；第一个词视作姓，三个词以上时最后一个词视作父称
func InferGender(fullName string) string {
	parts := strings.Fields(strings.TrimSpace(fullName))
	if len(parts) < 2 {
		return GenderUnknown
	}

	surname := strings.ToLower(parts[0])
	patronymic := ""
	if len(parts) > 2 {
		patronymic = strings.ToLower(parts[len(parts)-1])
	}

	if hasAnySuffix(surname, femaleSurnameSuffixes) || (patronymic != "" && hasAnySuffix(patronymic, femalePatronymicSuffixes)) {
		return GenderFemale
	}
	if hasAnySuffix(surname, maleSurnameSuffixes) || (patronymic != "" && hasAnySuffix(patronymic, malePatronymicSuffixes)) {
		return GenderMale
	}
	return GenderUnknown
}

// InferLanguage 按 ФИО 推断语言
// 先查哈萨克语特有字母，再查哈萨克语后缀，最后查俄语后缀；检查顺序有意义
func InferLanguage(fullName string) string {
	name := strings.ToLower(strings.TrimSpace(fullName))
	if name == "" {
		return LangUnknown
	}

	if strings.ContainsAny(name, kazakhLetters) {
		return LangKazakh
	}
	if hasAnySuffix(name, kazakhEndings) {
		return LangKazakh
	}
	if hasAnySuffix(name, russianEndings) {
		return LangRussian
	}
	return LangUnknown
}

// genderSynonyms 过滤请求里性别取值的同义写法
var genderSynonyms = map[string]string{
	"male":       GenderMale,
	"female":     GenderFemale,
	"unknown":    GenderUnknown,
	"мужчина":    GenderMale,
	"женщина":    GenderFemale,
	"муж":        GenderMale,
	"жен":        GenderFemale,
	"мужской":    GenderMale,
	"женский":    GenderFemale,
	"неизвестно": GenderUnknown,
}

// CanonicalGender 把请求或记录里的性别写法统一到规范取值
func CanonicalGender(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return GenderUnknown
	}
	if canonical, ok := genderSynonyms[v]; ok {
		return canonical
	}
	return v
}

// languageSynonyms 语言取值的同义写法
var languageSynonyms = map[string]string{
	"kazakh":          LangKazakh,
	"russian":         LangRussian,
	"english":         LangEnglish,
	"other":           LangOther,
	"unknown":         LangUnknown,
	"казахский":       LangKazakh,
	"русский":         LangRussian,
	"английский":      LangEnglish,
	"английский язык": LangEnglish,
	"другой":          LangOther,
	"неизвестно":      LangUnknown,
}

// CanonicalLanguage 把语言写法统一到规范取值
func CanonicalLanguage(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return LangUnknown
	}
	if canonical, ok := languageSynonyms[v]; ok {
		return canonical
	}
	return v
}

// KnownLanguages "другой" 桶之外的已知语言集合
var KnownLanguages = map[string]bool{
	LangKazakh:  true,
	LangRussian: true,
	LangEnglish: true,
}
