package analysis

import (
	"testing"

	"GoldPulse/internal/domain/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		code string
		want models.InstrumentKind
	}{
		{"Au9999", models.KindGold},
		{"GC=F", models.KindGold},
		{"GLD", models.KindGold},
		{"GOLD", models.KindGold},
		{"NEM", models.KindGold},
		{"au9999", models.KindGold},
		{"gc=f", models.KindGold},
		{"SPDR-Gold-Shares", models.KindGold},
		{"barrick gold corp", models.KindGold},
		{"AAPL", models.KindStock},
		{"600519", models.KindStock},
		{"GS", models.KindStock},
		{"", models.KindStock},
	}

	for _, tc := range cases {
		if got := Classify(tc.code); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.code, got, tc.want)
		}
	}
}

func TestParamsFor(t *testing.T) {
	gold := ParamsFor(models.KindGold)
	if gold.BiasThreshold != 3.0 || gold.VolumeHeavyRatio != 1.8 || gold.VolumeShrinkRatio != 0.7 {
		t.Fatalf("unexpected gold params: %+v", gold)
	}
	if gold.MASupportTolerance != 0.02 {
		t.Fatalf("unexpected gold MA tolerance: %v", gold.MASupportTolerance)
	}

	stock := ParamsFor(models.KindStock)
	if stock.BiasThreshold != 5.0 || stock.VolumeHeavyRatio != 1.5 || stock.VolumeShrinkRatio != 0.7 {
		t.Fatalf("unexpected stock params: %+v", stock)
	}
	if stock.MASupportTolerance != 0.02 {
		t.Fatalf("unexpected stock MA tolerance: %v", stock.MASupportTolerance)
	}
}
