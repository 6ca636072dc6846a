package scoring

import (
	"fmt"
	"sort"

	"token-radar/internal/domain"
)

// detectFindings runs the three ordered interaction passes over the factor
// set: danger overrides, then amplifications, then contradictions.
func detectFindings(f *domain.FactorValues, rules InteractionRules) []domain.InteractionFinding {
	var findings []domain.InteractionFinding
	findings = append(findings, detectDangers(f, rules)...)
	findings = append(findings, detectAmplifications(f, rules)...)
	findings = append(findings, detectContradictions(f, rules)...)
	return findings
}

// detectDangers flags known adverse signal combinations. Critical findings
// carry a hard score ceiling that overrides every later step.
func detectDangers(f *domain.FactorValues, rules InteractionRules) []domain.InteractionFinding {
	var findings []domain.InteractionFinding

	if f.Raw.VLR >= rules.VLRManipulationMin && f.Raw.LiquidityUSD < rules.VLRManipulationMaxLiq {
		findings = append(findings, domain.InteractionFinding{
			Type:            domain.FindingDangerOverride,
			Rule:            "vlr_manipulation",
			Risk:            domain.RiskCritical,
			OverrideCeiling: rules.ManipulationCeiling,
			Explanation: fmt.Sprintf(
				"volume/liquidity ratio %.1f against $%.0f liquidity is a wash-trading signature",
				f.Raw.VLR, f.Raw.LiquidityUSD),
		})
	}

	if f.SecurityScore < rules.RugSecurityMax && f.WhaleConcentration > rules.RugWhaleMin {
		findings = append(findings, domain.InteractionFinding{
			Type:            domain.FindingDangerOverride,
			Rule:            "rug_signature",
			Risk:            domain.RiskCritical,
			OverrideCeiling: rules.RugCeiling,
			Explanation: fmt.Sprintf(
				"security %.2f with %.0f%% top-holder concentration matches a rug-pull setup",
				f.SecurityScore, f.Raw.Top10Pct),
		})
	}

	if f.Raw.VLR >= rules.ThinLiqVLRMin && f.Raw.VLR < rules.VLRManipulationMin &&
		f.Raw.LiquidityUSD < rules.ThinLiqMaxLiq {
		findings = append(findings, domain.InteractionFinding{
			Type:          domain.FindingDangerOverride,
			Rule:          "elevated_vlr_thin_liquidity",
			Risk:          domain.RiskHigh,
			ScoreModifier: rules.ThinLiqModifier,
			Explanation: fmt.Sprintf(
				"elevated volume/liquidity ratio %.1f on a thin $%.0f pool",
				f.Raw.VLR, f.Raw.LiquidityUSD),
		})
	}

	return findings
}

// detectAmplifications flags reinforcing combinations. Modifiers are bounded
// to [MinAmplification, MaxAmplification].
func detectAmplifications(f *domain.FactorValues, rules InteractionRules) []domain.InteractionFinding {
	var findings []domain.InteractionFinding

	amp := func(rule, explanation string, modifier float64) {
		findings = append(findings, domain.InteractionFinding{
			Type:          domain.FindingAmplification,
			Rule:          rule,
			Risk:          domain.RiskLow,
			ScoreModifier: clampRange(modifier, rules.MinAmplification, rules.MaxAmplification),
			Explanation:   explanation,
		})
	}

	if f.SmartMoneyScore >= rules.SmartMoneyAmpMin && f.VolumeMomentum >= rules.VolumeSurgeAmpMin {
		amp("smart_money_volume_surge",
			"smart-money wallets accumulating during a volume surge",
			rules.SmartVolumeModifier)
	}
	if f.CrossPlatformValidation >= rules.ValidationAmpMin && f.SecurityScore >= rules.SecurityAmpMin {
		amp("validated_and_secure",
			"broad cross-platform validation backed by a clean security report",
			rules.ValidationSecurityModifier)
	}
	if f.AgeFactor >= rules.FreshAgeMin && f.PriceMomentum >= rules.FreshMomentumMin {
		amp("fresh_momentum",
			"young token with sustained price momentum",
			rules.FreshMomentumModifier)
	}

	return findings
}

// detectContradictions flags conflicting combinations; modifiers are < 1.
func detectContradictions(f *domain.FactorValues, rules InteractionRules) []domain.InteractionFinding {
	var findings []domain.InteractionFinding

	contra := func(rule, explanation string, modifier float64, risk domain.RiskLevel) {
		findings = append(findings, domain.InteractionFinding{
			Type:          domain.FindingContradiction,
			Rule:          rule,
			Risk:          risk,
			ScoreModifier: modifier,
			Explanation:   explanation,
		})
	}

	if f.VolumeMomentum >= rules.VolumeContraMin && f.CrossPlatformValidation < rules.ValidationContraMax {
		contra("volume_without_validation",
			"heavy volume on a token few platforms have validated",
			rules.VolumeValidationModifier, domain.RiskMedium)
	}
	if f.WhaleConcentration >= rules.WhaleContraMin && f.SecurityScore >= rules.SecurityContraMin {
		contra("whales_despite_security",
			"nominally clean security report contradicted by heavy whale concentration",
			rules.WhaleSecurityModifier, domain.RiskMedium)
	}
	if f.PriceMomentum >= rules.PriceContraMin && f.Liquidity < rules.LiquidityContraMax {
		contra("price_liquidity_divergence",
			"strong price move on liquidity too thin to support it",
			rules.PriceLiquidityModifier, domain.RiskHigh)
	}

	return findings
}

// sortFindings orders findings deterministically: by type, then by rule
// identifier. Aggregation and reporting both rely on this order.
func sortFindings(findings []domain.InteractionFinding) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Type != findings[j].Type {
			return findings[i].Type < findings[j].Type
		}
		return findings[i].Rule < findings[j].Rule
	})
}
