package serializer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yasinhessnawi1/migrationpack/internal/serializer"
)

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"email", "john.doe@example.com", "john-doe-example.com"},
		{"slash in local part", "a/b@x.com", "a-b-x.com"},
		{"dot in local part", "a.b@x.com", "a-b-x.com"},
		{"display name", "Premium Members", "premium-members"},
		{"diacritics", "Zoë Ångström", "zoe-angstrom"},
		{"underscore kept", "member_type", "member_type"},
		{"reserved characters", `con:<>"|?*`, "con"},
		{"only punctuation", "@@@", "untitled"},
		{"empty", "", "untitled"},
		{"leading dot", ".hidden", "hidden"},
		{"traversal", "../../etc/passwd", "untitled.etc-passwd"},
		{"cyrillic", "Премиум", "премиум"},
		{"cyrillic email", "Иван@пример.рф", "иван-пример.рф"},
		{"greek folds accents", "Πελάτες VIP", "πελατες-vip"},
		{"cjk", "会员", "会员"},
		{"cjk with separators", "会员/金卡", "会员-金卡"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.SafeFileName(tt.key)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "/")
			assert.NotContains(t, got, `\`)
			assert.NotContains(t, got, "..")
		})
	}
}

func TestDocumentFileName(t *testing.T) {
	assert.Equal(t, "a-b-x.com.config", serializer.DocumentFileName("a/b@x.com"))
	assert.Equal(t, "memberstab.config", serializer.DocumentFileName("membersTab"))
	assert.Equal(t, "site.config", serializer.DocumentFileName("site.config"), "existing extension is not doubled")
}

func TestSafeAlias(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two words", "Premium Members", "premiumMembers"},
		{"upper case first word", "VIP club", "vipClub"},
		{"leading digits dropped", "2024 Gold members", "goldMembers"},
		{"punctuation splits words", "gold-tier_members", "goldTierMembers"},
		{"diacritics folded", "Équipe Rouge", "equipeRouge"},
		{"digits inside kept", "Tier 2 members", "tier2Members"},
		{"cyrillic", "Золото клуб", "золотоКлуб"},
		{"greek folds accents", "Πελάτες", "πελατες"},
		{"cjk", "会员 金卡", "会员金卡"},
		{"no letters", "1234", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serializer.SafeAlias(tt.in))
		})
	}
}
