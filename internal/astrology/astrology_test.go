package astrology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		birthdate string
		wantSign  string
		wantElem  string
	}{
		{"taurus", "1990-04-21", "Taurus", "Earth"},
		{"aries start", "1990-03-21", "Aries", "Fire"},
		{"aries end", "1990-04-19", "Aries", "Fire"},
		{"capricorn wraps year end", "1995-12-25", "Capricorn", "Earth"},
		{"capricorn wraps year start", "1995-01-10", "Capricorn", "Earth"},
		{"aquarius start", "2000-01-20", "Aquarius", "Air"},
		{"pisces leap day", "2000-02-29", "Pisces", "Water"},
		{"scorpio", "1988-11-01", "Scorpio", "Water"},
		{"leo", "1991-08-01", "Leo", "Fire"},
		{"empty", "", "Unknown", "Void"},
		{"garbage", "not-a-date", "Unknown", "Void"},
		{"missing day", "1990-04", "Unknown", "Void"},
		{"non numeric month", "1990-xx-21", "Unknown", "Void"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sign, elem := Analyze(tt.birthdate)
			assert.Equal(t, tt.wantSign, sign)
			assert.Equal(t, tt.wantElem, elem)
		})
	}
}

func TestElementConsistency(t *testing.T) {
	// 每个星座对应的元素由固定表唯一确定
	elements := map[string]string{
		"Aquarius": "Air", "Pisces": "Water", "Aries": "Fire", "Taurus": "Earth",
		"Gemini": "Air", "Cancer": "Water", "Leo": "Fire", "Virgo": "Earth",
		"Libra": "Air", "Scorpio": "Water", "Sagittarius": "Fire", "Capricorn": "Earth",
	}

	for _, r := range zodiacRanges {
		assert.Equal(t, elements[r.sign], r.element, "element mismatch for %s", r.sign)
	}
}

func TestHint(t *testing.T) {
	assert.NotEmpty(t, Hint("Fire"))
	assert.NotEmpty(t, Hint("Void"))
	assert.Empty(t, Hint("Plasma"))
}

func TestElementTrait(t *testing.T) {
	assert.Contains(t, ElementTrait("Water"), "intuitive")
	// 未知元素回落到 Void 描述
	assert.Equal(t, ElementTrait("Void"), ElementTrait("Plasma"))
}
