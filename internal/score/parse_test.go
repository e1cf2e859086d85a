package score

import (
	"errors"
	"testing"
)

func TestParseBaselineFirstDigitRun(t *testing.T) {
	n, err := ParseBaseline("分数: 4521分")
	if err != nil || n != 4521 {
		t.Fatalf("got %d err=%v, want 4521", n, err)
	}
	n, err = ParseBaseline("abc 12 then 999")
	if err != nil || n != 12 {
		t.Fatalf("got %d err=%v, want 12", n, err)
	}
}

func TestParseBaselineNoDigits(t *testing.T) {
	if _, err := ParseBaseline("积分未知"); !errors.Is(err, ErrNoBaseline) {
		t.Fatalf("err = %v, want ErrNoBaseline", err)
	}
}

func TestParseMaterialsConfusionCorrection(t *testing.T) {
	m, err := ParseMaterials("l2O\n!!\n3\n4\n")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if m.Wooden != 120 {
		t.Errorf("wooden = %d, want 120 (from l2O)", m.Wooden)
	}
	if m.Silver != 11 {
		t.Errorf("silver = %d, want 11 (from !!)", m.Silver)
	}
	if m.Gold != 3 || m.Platinum != 4 {
		t.Errorf("gold/platinum = %d/%d, want 3/4", m.Gold, m.Platinum)
	}
}

func TestParseMaterialsSkipsBlankLines(t *testing.T) {
	m, err := ParseMaterials("\n  \n10\n\n20\n30\n40\nextra 50")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	want := Materials{Wooden: 10, Silver: 20, Gold: 30, Platinum: 40}
	if m != want {
		t.Fatalf("got %+v, want %+v", m, want)
	}
}

func TestParseMaterialsInsufficientLines(t *testing.T) {
	if _, err := ParseMaterials("1\n2\n3"); !errors.Is(err, ErrInsufficientLines) {
		t.Fatalf("err = %v, want ErrInsufficientLines", err)
	}
}

func TestParseMaterialsEmptyAfterCleaning(t *testing.T) {
	if _, err := ParseMaterials("1\n2\n3\n宝箱"); !errors.Is(err, ErrEmptyMaterial) {
		t.Fatalf("err = %v, want ErrEmptyMaterial", err)
	}
}

func TestParseMaterialsStripsUnitNoise(t *testing.T) {
	m, err := ParseMaterials("x1 23个\n45 个\n6,7\n8")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if m.Wooden != 123 || m.Silver != 45 || m.Gold != 67 || m.Platinum != 8 {
		t.Fatalf("got %+v", m)
	}
}
