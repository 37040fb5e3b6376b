// Package filter 记录集合的多维组合过滤
// 各维度之间取交集，维度内多个取值取并集；处理顺序固定为
// 来源 → 频次档 → 日期区间 → 金额区间 → 性别 → 语言，
// 频次档必须在来源过滤之后计算，因为来源过滤会改变分组基数
package filter

import (
	"errors"
	"fmt"
	"strings"

	"donorcrm/internal/classifier"
	"donorcrm/internal/model"
	"donorcrm/internal/parser"
)

// 捐赠频次档位
const (
	TierSingle   = "single"
	TierPeriodic = "periodic"
	TierFrequent = "frequent"
)

// ErrInvalidTier 请求了合法集合之外的档位取值
var ErrInvalidTier = errors.New("unsupported tier value")

// Options 过滤条件，零值维度不参与过滤
type Options struct {
	Tiers      []string
	DateFrom   string
	DateTo     string
	AmountFrom *float64
	AmountTo   *float64
	Genders    []string
	Languages  []string
	Sources    []string
}

// Apply 在记录集合上执行一遍完整过滤
func Apply(records []model.Record, opts Options) ([]model.Record, error) {
	filtered := records

	if len(opts.Sources) > 0 {
		filtered = bySources(filtered, opts.Sources)
	}

	if len(opts.Tiers) > 0 {
		var err error
		filtered, err = ByTiers(filtered, opts.Tiers)
		if err != nil {
			return nil, err
		}
	}

	if opts.DateFrom != "" && opts.DateTo != "" {
		filtered = byDateRange(filtered, opts.DateFrom, opts.DateTo)
	}

	if opts.AmountFrom != nil || opts.AmountTo != nil {
		filtered = byAmountRange(filtered, opts.AmountFrom, opts.AmountTo)
	}

	if len(opts.Genders) > 0 {
		filtered = byGenders(filtered, opts.Genders)
	}

	if len(opts.Languages) > 0 {
		filtered = byLanguages(filtered, opts.Languages)
	}

	return filtered, nil
}

// bySources 按来源过滤，大小写不敏感的精确匹配
func bySources(records []model.Record, sources []string) []model.Record {
	accepted := make(map[string]bool, len(sources))
	for _, s := range sources {
		accepted[strings.ToLower(strings.TrimSpace(s))] = true
	}

	var out []model.Record
	for _, rec := range records {
		src := strings.ToLower(rec.StringField(model.FieldSource))
		if accepted[src] {
			out = append(out, rec)
		}
	}
	return out
}

// identityGroup 同一身份键下的记录组
type identityGroup struct {
	key  string
	rows []model.Record
}

// groupByIdentity 按身份键（ФИО，缺失时退回 E-mail）分组
// 两个键都缺失的记录不参与分组；组按首次出现顺序排列，组内保持原始顺序
func groupByIdentity(records []model.Record) []identityGroup {
	index := make(map[string]int)
	var groups []identityGroup
	for _, rec := range records {
		key := rec.StringField(model.FieldFullName)
		if key == "" {
			key = rec.StringField(model.FieldEmail)
		}
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			index[key] = len(groups)
			groups = append(groups, identityGroup{key: key})
			i = len(groups) - 1
		}
		groups[i].rows = append(groups[i].rows, rec)
	}
	return groups
}

// TierOf 按组基数划分频次档
func TierOf(count int) string {
	switch {
	case count == 1:
		return TierSingle
	case count >= 2 && count <= 4:
		return TierPeriodic
	default:
		return TierFrequent
	}
}

// ByTiers 返回属于任一请求档位的分组的全部记录
// 档位取值超出合法集合视为客户端错误，而不是静默忽略
func ByTiers(records []model.Record, tiers []string) ([]model.Record, error) {
	accepted := make(map[string]bool, len(tiers))
	for _, t := range tiers {
		v := strings.ToLower(strings.TrimSpace(t))
		if v != TierSingle && v != TierPeriodic && v != TierFrequent {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTier, t)
		}
		accepted[v] = true
	}

	var out []model.Record
	for _, g := range groupByIdentity(records) {
		if accepted[TierOf(len(g.rows))] {
			out = append(out, g.rows...)
		}
	}
	return out, nil
}

// byDateRange 按日期区间过滤（闭区间）
// 任一边界解析失败时整个日期维度被跳过，而不是让请求失败
func byDateRange(records []model.Record, from, to string) []model.Record {
	dtFrom, okFrom := parser.ParseDate(from)
	dtTo, okTo := parser.ParseDate(to)
	if !okFrom || !okTo {
		return records
	}

	var out []model.Record
	for _, rec := range records {
		dt, ok := parser.ParseDate(rec.StringField(model.FieldDate))
		if !ok {
			continue
		}
		if !dt.Before(dtFrom) && !dt.After(dtTo) {
			out = append(out, rec)
		}
	}
	return out
}

// byAmountRange 按金额区间过滤（闭区间）
// 金额缺失或不可转换的记录被排除，不按零处理
func byAmountRange(records []model.Record, from, to *float64) []model.Record {
	var out []model.Record
	for _, rec := range records {
		amount, ok := rec.FloatField(model.FieldAmount)
		if !ok {
			continue
		}
		if from != nil && amount < *from {
			continue
		}
		if to != nil && amount > *to {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// byGenders 按性别过滤
// 请求值先过同义词表；记录未显式标注性别时按姓名现场推断
func byGenders(records []model.Record, genders []string) []model.Record {
	accepted := make(map[string]bool, len(genders))
	for _, g := range genders {
		accepted[classifier.CanonicalGender(g)] = true
	}

	var out []model.Record
	for _, rec := range records {
		g := rec.StringField(model.FieldGender)
		if g == "" {
			g = classifier.InferGender(rec.StringField(model.FieldFullName))
		}
		if accepted[classifier.CanonicalGender(g)] {
			out = append(out, rec)
		}
	}
	return out
}

// recordLanguages 记录的语言集合
// 语言字段可能以逗号分隔存多个值；缺失按 unknown 处理
func recordLanguages(rec model.Record) []string {
	raw := rec.StringField(model.FieldLanguage)
	if raw == "" {
		return []string{classifier.LangUnknown}
	}
	parts := strings.Split(raw, ",")
	langs := make([]string, 0, len(parts))
	for _, p := range parts {
		langs = append(langs, classifier.CanonicalLanguage(p))
	}
	return langs
}

// byLanguages 按语言过滤
// 请求值里出现空串表示"任意语言"，整个语言维度被关闭。
// 只请求一种语言时做包含匹配，"other" 桶匹配已知集合之外的语言；
// 请求两种以上语言时要求记录的语言集合与请求集合完全相等（与单值
// 的包含语义不对称，沿用既有行为，调整前需要产品确认）
func byLanguages(records []model.Record, languages []string) []model.Record {
	for _, l := range languages {
		if strings.TrimSpace(l) == "" {
			return records
		}
	}

	accepted := make(map[string]bool, len(languages))
	for _, l := range languages {
		accepted[classifier.CanonicalLanguage(l)] = true
	}

	var out []model.Record
	for _, rec := range records {
		langs := recordLanguages(rec)

		matched := false
		if len(accepted) > 1 {
			matched = sameLanguageSet(langs, accepted)
		} else {
			for _, l := range langs {
				if accepted[classifier.LangOther] {
					if !classifier.KnownLanguages[l] && l != classifier.LangUnknown {
						matched = true
						break
					}
				}
				if accepted[l] {
					matched = true
					break
				}
			}
		}

		if matched {
			out = append(out, rec)
		}
	}
	return out
}

// sameLanguageSet 记录语言集合与请求集合是否完全相等（忽略顺序）
func sameLanguageSet(langs []string, accepted map[string]bool) bool {
	seen := make(map[string]bool, len(langs))
	for _, l := range langs {
		if !accepted[l] {
			return false
		}
		seen[l] = true
	}
	return len(seen) == len(accepted)
}
