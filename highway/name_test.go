package highway

import (
	"routrace/util"
	"testing"
)

func assertNormalizedName(t *testing.T, expected string, name string) {
	normalized, ok := NormalizeName(name)
	if !ok {
		t.Errorf("Expected '%s' to be normalized to '%s' but it was rejected", name, expected)
		return
	}
	util.AssertEqual(t, expected, normalized)
}

func assertRejectedName(t *testing.T, name string) {
	normalized, ok := NormalizeName(name)
	if ok {
		t.Errorf("Expected '%s' to be rejected but got '%s'", name, normalized)
	}
}

func TestNormalizeName(t *testing.T) {
	assertNormalizedName(t, "東名高速道路", "東名高速道路")
	assertNormalizedName(t, "名神高速道路", "名神高速道路")
	assertNormalizedName(t, "首都高速1号上野線", "首都高速1号上野線")
	assertNormalizedName(t, "京葉道路", "京葉道路")
}

func TestNormalizeName_directionSuffixes(t *testing.T) {
	assertNormalizedName(t, "中央自動車道", "中央自動車道上り")
	assertNormalizedName(t, "中央自動車道", "中央自動車道下り")
	assertNormalizedName(t, "首都高速中央環状線", "首都高速中央環状線外回り")
	assertNormalizedName(t, "首都高速中央環状線", "首都高速中央環状線内回り")
	assertNormalizedName(t, "阪神高速5号湾岸線", "阪神高速5号湾岸線西行き")
	assertNormalizedName(t, "阪神高速5号湾岸線", "阪神高速5号湾岸線 東行き")
}

func TestNormalizeName_parentheses(t *testing.T) {
	assertNormalizedName(t, "東名高速道路", "東名高速道路（上り）")
	assertNormalizedName(t, "東名高速道路", "東名高速道路(下り)")
	assertNormalizedName(t, "東北自動車道", "東北自動車道 (北行き)")
}

func TestNormalizeName_nestedAndUnclosedParentheses(t *testing.T) {
	assertNormalizedName(t, "東名高速道路", "東名高速道路（上り(E1)）")
	assertNormalizedName(t, "東名高速道路", "東名高速道路（上り")
	assertNormalizedName(t, "東名高速道路", "東名高速道路(下り")
	assertNormalizedName(t, "東名高速道路", "東名高速道路（上り）（E1）")
}

func TestNormalizeName_nonHighways(t *testing.T) {
	assertRejectedName(t, "一般道路")
	assertRejectedName(t, "国道1号")
	assertRejectedName(t, "県道○○線")
	assertRejectedName(t, "市道")
	assertRejectedName(t, "")
}

func TestNormalizeName_excluded(t *testing.T) {
	assertRejectedName(t, "東名高速道路入口")
	assertRejectedName(t, "首都高速出口")
	assertRejectedName(t, "○○高速高架橋")
	assertRejectedName(t, "△△自動車道新設工事")
	assertRejectedName(t, "名古屋高速道路16号一宮線-6号線-4号東海線高架路")
	assertRejectedName(t, "名古屋高速道路小牧-大高線高架路")
	assertRejectedName(t, "京葉道路船橋ＩＣ連絡道路")
	assertRejectedName(t, "東名高速道路ランプ")
}

func TestNormalizeName_compoundRoutes(t *testing.T) {
	assertRejectedName(t, "首都高速川口線-中央環状線")
	assertRejectedName(t, "○○高速△△線-□□線")
}

func TestNormalizeName_branchAndTunnelRoutes(t *testing.T) {
	assertNormalizedName(t, "名古屋第二環状自動車道支線", "名古屋第二環状自動車道支線")
	assertNormalizedName(t, "山陽自動車道倉敷早島支線", "山陽自動車道倉敷早島支線")
	assertNormalizedName(t, "山陽自動車道木見支線", "山陽自動車道木見支線")
	assertNormalizedName(t, "阪神高速32号新神戸トンネル", "阪神高速32号新神戸トンネル")
}

func TestNormalizeName_onlyAnnotation(t *testing.T) {
	assertRejectedName(t, "（高速）")
}
