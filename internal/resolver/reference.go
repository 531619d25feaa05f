package resolver

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/shop"
)

var ordinalIndex = map[string]int{
	"first": 0, "1st": 0,
	"second": 1, "2nd": 1,
	"third": 2, "3rd": 2,
	"fourth": 3, "4th": 3,
	"fifth": 4, "5th": 4,
	"sixth": 5, "6th": 5,
	"seventh": 6, "7th": 6,
	"eighth": 7, "8th": 7,
	"ninth": 8, "9th": 8,
	"tenth": 9, "10th": 9,
}

var demonstratives = map[string]struct{}{
	"this": {},
	"that": {},
	"it":   {},
}

var firstInteger = regexp.MustCompile(`\d+`)

// ResolveReference 将文本引用解析为候选商品
// 优先级：指示代词+已选商品 > 序号 > 无引用时取首个候选 > 详情页已选商品
func ResolveReference(ref string, candidates shop.CandidateSet, selected *shop.Product, view string) *shop.Product {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref != "" {
		if selected != nil && isDemonstrative(ref) {
			p := *selected
			return &p
		}
		idx, ok := ReferenceIndex(ref, len(candidates))
		if !ok {
			return nil
		}
		return candidates.At(idx)
	}
	if len(candidates) > 0 {
		return candidates.At(0)
	}
	if selected != nil && view == constants.ViewDetail {
		p := *selected
		return &p
	}
	return nil
}

// ReferenceIndex 将引用文本映射为零基下标；越界或无法识别时返回 false
func ReferenceIndex(ref string, n int) (int, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return -1, false
	}
	idx, ok := ordinalOf(ref, n)
	if !ok {
		for _, token := range tokenize(ref) {
			if idx, ok = ordinalOf(token, n); ok {
				break
			}
		}
	}
	if !ok {
		match := firstInteger.FindString(ref)
		if match == "" {
			return -1, false
		}
		v, err := strconv.Atoi(match)
		if err != nil {
			return -1, false
		}
		idx, ok = v-1, true
	}
	if idx < 0 || idx >= n {
		return -1, false
	}
	return idx, true
}

func ordinalOf(token string, n int) (int, bool) {
	if idx, ok := ordinalIndex[token]; ok {
		return idx, true
	}
	if token == "last" {
		return n - 1, true
	}
	return 0, false
}

func isDemonstrative(ref string) bool {
	tokens := tokenize(ref)
	if len(tokens) == 0 {
		return false
	}
	_, ok := demonstratives[tokens[0]]
	return ok
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
