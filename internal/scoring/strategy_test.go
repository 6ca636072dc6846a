package scoring

import (
	"errors"
	"testing"
)

func TestFromConfig(t *testing.T) {
	rules := DefaultInteractionRules()

	tests := []struct {
		name string
		want string
	}{
		{StrategyInteraction, StrategyInteraction},
		{StrategyAdditive, StrategyAdditive},
		{StrategyEarlyDiscovery, StrategyEarlyDiscovery},
	}
	for _, tt := range tests {
		s, err := FromConfig(tt.name, rules)
		if err != nil {
			t.Fatalf("FromConfig(%q): %v", tt.name, err)
		}
		if s.Name() != tt.want {
			t.Errorf("FromConfig(%q).Name() = %q", tt.name, s.Name())
		}
	}

	if _, err := FromConfig("adaptive", rules); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestAdditiveStrategy_NoFindings(t *testing.T) {
	bd := NewAdditiveStrategy().Score(healthyRecord(), nil)

	if bd.Findings != nil {
		t.Error("additive strategy must not emit findings")
	}
	if bd.Factors != nil {
		t.Error("additive strategy must not extract factors")
	}
	if bd.FinalScore != bd.Components.Sum() {
		t.Errorf("additive score %f != component sum %f", bd.FinalScore, bd.Components.Sum())
	}
}

func TestEarlyDiscoveryStrategy_ReweightsComponents(t *testing.T) {
	rec := healthyRecord()

	standard := NewInteractionStrategy(DefaultInteractionRules()).Score(rec, nil)
	early := NewEarlyDiscoveryStrategy(DefaultInteractionRules()).Score(rec, nil)

	if early.Components.Overview >= standard.Components.Overview {
		t.Error("early discovery should down-weight the overview component")
	}
	if early.Components.Whale >= standard.Components.Whale {
		t.Error("early discovery should down-weight the whale component")
	}
	if early.Components.VLR <= standard.Components.VLR {
		t.Error("early discovery should add the freshness bonus to VLR")
	}
	if early.Components.VolumePrice > volumePriceMax || early.Components.VLR > vlrMax {
		t.Error("reweighting must respect component bounds")
	}
}

func TestEarlyDiscoveryStrategy_DegradedFallback(t *testing.T) {
	bd := NewEarlyDiscoveryStrategy(DefaultInteractionRules()).Score(failedRecord(), nil)

	if !bd.DegradedMode {
		t.Error("fully failed record should degrade under any strategy")
	}
}
