// Package scoring computes bounded, explainable conviction scores from
// analysis records. The engine is pure: no I/O, no clock, deterministic for
// identical inputs.
package scoring

// InteractionRules holds the tunable constants behind the danger,
// amplification, and contradiction passes. The boundaries are heuristic and
// deliberately configuration, not literals; defaults below are starting
// points to validate empirically.
type InteractionRules struct {
	// Danger overrides. Raw-value thresholds unless noted.
	VLRManipulationMin    float64 `yaml:"vlr_manipulation_min"`           // raw VLR at or above this ...
	VLRManipulationMaxLiq float64 `yaml:"vlr_manipulation_max_liquidity"` // ... with raw liquidity below this is a manipulation signature
	ManipulationCeiling   float64 `yaml:"manipulation_ceiling"`
	RugSecurityMax        float64 `yaml:"rug_security_max"` // normalized security below this ...
	RugWhaleMin           float64 `yaml:"rug_whale_min"`    // ... with normalized concentration above this is a rug signature
	RugCeiling            float64 `yaml:"rug_ceiling"`
	ThinLiqVLRMin         float64 `yaml:"thin_liquidity_vlr_min"`
	ThinLiqMaxLiq         float64 `yaml:"thin_liquidity_max_liquidity"`
	ThinLiqModifier       float64 `yaml:"thin_liquidity_modifier"`

	// Amplifications. Normalized factor thresholds; modifiers > 1.
	SmartMoneyAmpMin    float64 `yaml:"smart_money_amp_min"`
	VolumeSurgeAmpMin   float64 `yaml:"volume_surge_amp_min"`
	SmartVolumeModifier float64 `yaml:"smart_volume_modifier"`
	ValidationAmpMin    float64 `yaml:"validation_amp_min"`
	SecurityAmpMin      float64 `yaml:"security_amp_min"`
	ValidationSecurityModifier float64 `yaml:"validation_security_modifier"`
	FreshAgeMin           float64 `yaml:"fresh_age_min"`
	FreshMomentumMin      float64 `yaml:"fresh_momentum_min"`
	FreshMomentumModifier float64 `yaml:"fresh_momentum_modifier"`
	MinAmplification      float64 `yaml:"min_amplification"`
	MaxAmplification      float64 `yaml:"max_amplification"`

	// Contradictions. Normalized factor thresholds; modifiers < 1.
	VolumeContraMin          float64 `yaml:"volume_contra_min"`
	ValidationContraMax      float64 `yaml:"validation_contra_max"`
	VolumeValidationModifier float64 `yaml:"volume_validation_modifier"`
	WhaleContraMin           float64 `yaml:"whale_contra_min"`
	SecurityContraMin        float64 `yaml:"security_contra_min"`
	WhaleSecurityModifier    float64 `yaml:"whale_security_modifier"`
	PriceContraMin           float64 `yaml:"price_contra_min"`
	LiquidityContraMax       float64 `yaml:"liquidity_contra_max"`
	PriceLiquidityModifier   float64 `yaml:"price_liquidity_modifier"`
}

// DefaultInteractionRules returns the default rule constants.
func DefaultInteractionRules() InteractionRules {
	return InteractionRules{
		VLRManipulationMin:    15,
		VLRManipulationMaxLiq: 50_000,
		ManipulationCeiling:   10,
		RugSecurityMax:        0.3,
		RugWhaleMin:           0.8,
		RugCeiling:            12,
		ThinLiqVLRMin:         8,
		ThinLiqMaxLiq:         100_000,
		ThinLiqModifier:       0.7,

		SmartMoneyAmpMin:           0.6,
		VolumeSurgeAmpMin:          0.6,
		SmartVolumeModifier:        1.3,
		ValidationAmpMin:           0.8,
		SecurityAmpMin:             0.7,
		ValidationSecurityModifier: 1.2,
		FreshAgeMin:                0.7,
		FreshMomentumMin:           0.6,
		FreshMomentumModifier:      1.1,
		MinAmplification:           1.1,
		MaxAmplification:           1.4,

		VolumeContraMin:          0.7,
		ValidationContraMax:      0.4,
		VolumeValidationModifier: 0.8,
		WhaleContraMin:           0.7,
		SecurityContraMin:        0.7,
		WhaleSecurityModifier:    0.85,
		PriceContraMin:           0.7,
		LiquidityContraMax:       0.05,
		PriceLiquidityModifier:   0.75,
	}
}
