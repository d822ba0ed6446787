package font

// Constant enumerates the entries of the OpenType MATH constants
// table, in table order.
type Constant int

// OpenType MATH constants.
// https://docs.microsoft.com/en-us/typography/opentype/spec/math#mathconstants-table
const (
	ScriptPercentScaleDown Constant = iota
	ScriptScriptPercentScaleDown
	DelimitedSubFormulaMinHeight
	DisplayOperatorMinHeight
	MathLeading
	AxisHeight
	AccentBaseHeight
	FlattenedAccentBaseHeight
	SubscriptShiftDown
	SubscriptTopMax
	SubscriptBaselineDropMin
	SuperscriptShiftUp
	SuperscriptShiftUpCramped
	SuperscriptBottomMin
	SuperscriptBaselineDropMax
	SubSuperscriptGapMin
	SuperscriptBottomMaxWithSubscript
	SpaceAfterScript
	UpperLimitGapMin
	UpperLimitBaselineRiseMin
	LowerLimitGapMin
	LowerLimitBaselineDropMin
	StackTopShiftUp
	StackTopDisplayStyleShiftUp
	StackBottomShiftDown
	StackBottomDisplayStyleShiftDown
	StackGapMin
	StackDisplayStyleGapMin
	StretchStackTopShiftUp
	StretchStackBottomShiftDown
	StretchStackGapAboveMin
	StretchStackGapBelowMin
	FractionNumeratorShiftUp
	FractionNumeratorDisplayStyleShiftUp
	FractionDenominatorShiftDown
	FractionDenominatorDisplayStyleShiftDown
	FractionNumeratorGapMin
	FractionNumDisplayStyleGapMin
	FractionRuleThickness
	FractionDenominatorGapMin
	FractionDenomDisplayStyleGapMin
	SkewedFractionHorizontalGap
	SkewedFractionVerticalGap
	OverbarVerticalGap
	OverbarRuleThickness
	OverbarExtraAscender
	UnderbarVerticalGap
	UnderbarRuleThickness
	UnderbarExtraAscender
	RadicalVerticalGap
	RadicalDisplayStyleVerticalGap
	RadicalRuleThickness
	RadicalExtraAscender
	RadicalKernBeforeDegree
	RadicalKernAfterDegree
	RadicalDegreeBottomRaisePercent
	constantCount
)

var constantNames = [...]string{
	"ScriptPercentScaleDown",
	"ScriptScriptPercentScaleDown",
	"DelimitedSubFormulaMinHeight",
	"DisplayOperatorMinHeight",
	"MathLeading",
	"AxisHeight",
	"AccentBaseHeight",
	"FlattenedAccentBaseHeight",
	"SubscriptShiftDown",
	"SubscriptTopMax",
	"SubscriptBaselineDropMin",
	"SuperscriptShiftUp",
	"SuperscriptShiftUpCramped",
	"SuperscriptBottomMin",
	"SuperscriptBaselineDropMax",
	"SubSuperscriptGapMin",
	"SuperscriptBottomMaxWithSubscript",
	"SpaceAfterScript",
	"UpperLimitGapMin",
	"UpperLimitBaselineRiseMin",
	"LowerLimitGapMin",
	"LowerLimitBaselineDropMin",
	"StackTopShiftUp",
	"StackTopDisplayStyleShiftUp",
	"StackBottomShiftDown",
	"StackBottomDisplayStyleShiftDown",
	"StackGapMin",
	"StackDisplayStyleGapMin",
	"StretchStackTopShiftUp",
	"StretchStackBottomShiftDown",
	"StretchStackGapAboveMin",
	"StretchStackGapBelowMin",
	"FractionNumeratorShiftUp",
	"FractionNumeratorDisplayStyleShiftUp",
	"FractionDenominatorShiftDown",
	"FractionDenominatorDisplayStyleShiftDown",
	"FractionNumeratorGapMin",
	"FractionNumDisplayStyleGapMin",
	"FractionRuleThickness",
	"FractionDenominatorGapMin",
	"FractionDenomDisplayStyleGapMin",
	"SkewedFractionHorizontalGap",
	"SkewedFractionVerticalGap",
	"OverbarVerticalGap",
	"OverbarRuleThickness",
	"OverbarExtraAscender",
	"UnderbarVerticalGap",
	"UnderbarRuleThickness",
	"UnderbarExtraAscender",
	"RadicalVerticalGap",
	"RadicalDisplayStyleVerticalGap",
	"RadicalRuleThickness",
	"RadicalExtraAscender",
	"RadicalKernBeforeDegree",
	"RadicalKernAfterDegree",
	"RadicalDegreeBottomRaisePercent",
}

func (c Constant) String() string {
	if c < 0 || int(c) >= len(constantNames) {
		return "<undefined MATH constant>"
	}
	return constantNames[c]
}

// ByName returns the constant with the given OpenType name.
func ByName(name string) (Constant, bool) {
	for i, n := range constantNames {
		if n == name {
			return Constant(i), true
		}
	}
	return 0, false
}
