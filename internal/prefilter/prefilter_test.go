package prefilter

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/mr-tron/base58"

	"token-radar/internal/domain"
)

// testAddr builds a distinct valid 32-byte base58 mint address.
func testAddr(n byte) string {
	raw := make([]byte, 32)
	raw[0] = n
	raw[31] = n
	return base58.Encode(raw)
}

func testConfig() Config {
	return Config{
		MinMarketCap:                    30_000,
		MaxMarketCap:                    50_000_000,
		MinVolume:                       10_000,
		MinValidatedPlatforms:           2,
		MaxSurvivors:                    25,
		MissedOpportunityScoreThreshold: 80,
	}
}

func passingCandidate(n byte, score float64) domain.Candidate {
	return domain.Candidate{
		Address:            testAddr(n),
		Symbol:             fmt.Sprintf("TKN%d", n),
		Platforms:          []string{"dexscreener", "jupiter"},
		CrossPlatformScore: score,
		MarketCap:          500_000,
		Volume24h:          100_000,
		Liquidity:          200_000,
	}
}

func TestApply_AllFilteredOnLowMarketCap(t *testing.T) {
	f := New(testConfig())

	candidates := make([]domain.Candidate, 50)
	for i := range candidates {
		c := passingCandidate(byte(i+1), 50)
		c.MarketCap = 5_000
		candidates[i] = c
	}

	survivors, stats := f.Apply(candidates)

	if len(survivors) != 0 {
		t.Fatalf("expected no survivors, got %d", len(survivors))
	}
	if stats.Evaluated != 50 || stats.Passed != 0 || stats.Filtered != 50 {
		t.Errorf("bad accounting: evaluated=%d passed=%d filtered=%d",
			stats.Evaluated, stats.Passed, stats.Filtered)
	}
	if stats.Reasons[ReasonMarketCapTooLow] != 50 {
		t.Errorf("expected 50 %s rejections, got %d",
			ReasonMarketCapTooLow, stats.Reasons[ReasonMarketCapTooLow])
	}
	if stats.PassRate != 0 {
		t.Errorf("expected pass rate 0, got %f", stats.PassRate)
	}
	if stats.AvgScoreFiltered != 50 {
		t.Errorf("expected avg filtered score 50, got %f", stats.AvgScoreFiltered)
	}
}

func TestApply_AccountingAlwaysBalances(t *testing.T) {
	f := New(testConfig())

	candidates := []domain.Candidate{
		passingCandidate(1, 90),
		passingCandidate(2, 70),
		{Address: "not-base58!", CrossPlatformScore: 60},
		func() domain.Candidate {
			c := passingCandidate(3, 85)
			c.Volume24h = 100
			return c
		}(),
	}

	survivors, stats := f.Apply(candidates)

	if stats.Passed+stats.Filtered != stats.Evaluated {
		t.Errorf("passed %d + filtered %d != evaluated %d",
			stats.Passed, stats.Filtered, stats.Evaluated)
	}
	if len(survivors) != stats.Passed {
		t.Errorf("survivor count %d != passed %d", len(survivors), stats.Passed)
	}
}

func TestApply_DeterministicOrdering(t *testing.T) {
	f := New(testConfig())

	// Two candidates share a score; the lexicographically smaller address
	// must come first, every run.
	a := passingCandidate(9, 80)
	b := passingCandidate(4, 80)
	c := passingCandidate(7, 95)
	input := []domain.Candidate{a, b, c}

	first, _ := f.Apply(input)
	second, _ := f.Apply(input)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("two runs over identical input produced different orderings")
	}
	if first[0].Address != c.Address {
		t.Errorf("expected highest score first, got %s", first[0].Address)
	}
	lo, hi := a.Address, b.Address
	if lo > hi {
		lo, hi = hi, lo
	}
	if first[1].Address != lo || first[2].Address != hi {
		t.Errorf("tie not broken by ascending address: got %s, %s", first[1].Address, first[2].Address)
	}
}

func TestApply_SurvivorCapTruncatesLowestScores(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSurvivors = 2
	f := New(cfg)

	input := []domain.Candidate{
		passingCandidate(1, 60),
		passingCandidate(2, 90),
		passingCandidate(3, 70),
		passingCandidate(4, 80),
	}

	survivors, stats := f.Apply(input)

	if len(survivors) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(survivors))
	}
	if survivors[0].CrossPlatformScore != 90 || survivors[1].CrossPlatformScore != 80 {
		t.Errorf("cap kept wrong candidates: %v", survivors)
	}
	if stats.Reasons[ReasonCapLimit] != 2 {
		t.Errorf("expected 2 cap-limit rejections, got %d", stats.Reasons[ReasonCapLimit])
	}
	if stats.Passed != 2 || stats.Filtered != 2 {
		t.Errorf("cap not reflected in stats: passed=%d filtered=%d", stats.Passed, stats.Filtered)
	}
	if stats.AvgScorePassed != 85 {
		t.Errorf("expected avg passed score 85, got %f", stats.AvgScorePassed)
	}
}

func TestApply_InvalidAddressSkipsFinancialChecks(t *testing.T) {
	f := New(testConfig())

	survivors, stats := f.Apply([]domain.Candidate{
		{Address: "", CrossPlatformScore: 50},
		{Address: "0O0O0O", CrossPlatformScore: 50},                // illegal base58 alphabet
		{Address: base58.Encode([]byte{1, 2, 3}), MarketCap: 1},   // wrong payload length
	})

	if len(survivors) != 0 {
		t.Fatalf("expected no survivors, got %d", len(survivors))
	}
	if stats.Reasons[ReasonInvalidAddress] != 3 {
		t.Errorf("expected 3 invalid_address rejections, got %d", stats.Reasons[ReasonInvalidAddress])
	}
	if stats.Reasons[ReasonMarketCapTooLow] != 0 {
		t.Error("financial reasons recorded for malformed addresses")
	}
}

func TestApply_MissedOpportunities(t *testing.T) {
	f := New(testConfig())

	high := passingCandidate(1, 92)
	high.Volume24h = 500 // filtered despite the high score
	low := passingCandidate(2, 40)
	low.Volume24h = 500

	_, stats := f.Apply([]domain.Candidate{high, low})

	if len(stats.MissedOpportunities) != 1 {
		t.Fatalf("expected 1 missed opportunity, got %d", len(stats.MissedOpportunities))
	}
	mo := stats.MissedOpportunities[0]
	if mo.Candidate.Address != high.Address || mo.Reason != ReasonVolumeTooLow || mo.Score != 92 {
		t.Errorf("unexpected missed opportunity: %+v", mo)
	}
}

func TestValidatedPlatformCount(t *testing.T) {
	f := New(testConfig())

	tests := []struct {
		name string
		cand domain.Candidate
		want int
	}{
		{
			name: "non-financial validators count without financials",
			cand: domain.Candidate{Platforms: []string{"rugcheck", "jupiter", "dexscreener"}},
			want: 3,
		},
		{
			name: "unknown platform without financials does not count",
			cand: domain.Candidate{Platforms: []string{"birdeye"}},
			want: 0,
		},
		{
			name: "unknown platform with financials counts",
			cand: domain.Candidate{Platforms: []string{"birdeye"}, MarketCap: 100_000},
			want: 1,
		},
		{
			name: "duplicate platforms count once",
			cand: domain.Candidate{Platforms: []string{"jupiter", "jupiter", "rugcheck"}},
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ValidatedPlatformCount(&tt.cand); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApply_InsufficientPlatformValidation(t *testing.T) {
	f := New(testConfig())

	c := passingCandidate(1, 70)
	c.Platforms = []string{"jupiter"}
	c.MarketCap, c.Volume24h, c.Liquidity = 0, 0, 0

	survivors, stats := f.Apply([]domain.Candidate{c})

	if len(survivors) != 0 {
		t.Fatal("expected candidate filtered")
	}
	if stats.Reasons[ReasonPlatformValidation] != 1 {
		t.Errorf("expected platform validation rejection, got %v", stats.Reasons)
	}
}
