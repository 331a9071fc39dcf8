package models

// ScalarField maps one crs tag onto an Adjustments field. Exactly one of
// Float and Int is set; it returns the address of the field so callers can
// both read and assign it.
type ScalarField struct {
	Tag   string
	Name  string
	Float func(a *Adjustments) **float64
	Int   func(a *Adjustments) **int
}

// IsSet reports whether the field has a value in a
func (f ScalarField) IsSet(a *Adjustments) bool {
	if f.Float != nil {
		return *f.Float(a) != nil
	}
	return *f.Int(a) != nil
}

// ScalarFields is the tag table shared by the importer and the exporter,
// in Lightroom's panel order.
var ScalarFields = []ScalarField{
	{Tag: "Exposure2012", Name: "exposure", Float: func(a *Adjustments) **float64 { return &a.Exposure }},
	{Tag: "Contrast2012", Name: "contrast", Int: func(a *Adjustments) **int { return &a.Contrast }},
	{Tag: "Highlights2012", Name: "highlights", Int: func(a *Adjustments) **int { return &a.Highlights }},
	{Tag: "Shadows2012", Name: "shadows", Int: func(a *Adjustments) **int { return &a.Shadows }},
	{Tag: "Whites2012", Name: "whites", Int: func(a *Adjustments) **int { return &a.Whites }},
	{Tag: "Blacks2012", Name: "blacks", Int: func(a *Adjustments) **int { return &a.Blacks }},
	{Tag: "Temperature", Name: "temperature", Int: func(a *Adjustments) **int { return &a.Temperature }},
	{Tag: "Tint", Name: "tint", Int: func(a *Adjustments) **int { return &a.Tint }},
	{Tag: "Vibrance", Name: "vibrance", Int: func(a *Adjustments) **int { return &a.Vibrance }},
	{Tag: "Saturation", Name: "saturation", Int: func(a *Adjustments) **int { return &a.Saturation }},
	{Tag: "Clarity2012", Name: "clarity", Int: func(a *Adjustments) **int { return &a.Clarity }},
	{Tag: "Dehaze", Name: "dehaze", Int: func(a *Adjustments) **int { return &a.Dehaze }},
	{Tag: "Texture", Name: "texture", Int: func(a *Adjustments) **int { return &a.Texture }},
	{Tag: "Sharpness", Name: "sharpness", Int: func(a *Adjustments) **int { return &a.Sharpness }},
	{Tag: "LuminanceSmoothing", Name: "luminance_noise_reduction", Int: func(a *Adjustments) **int { return &a.LuminanceNoiseReduction }},
	{Tag: "ColorNoiseReduction", Name: "color_noise_reduction", Int: func(a *Adjustments) **int { return &a.ColorNoiseReduction }},
	{Tag: "PostCropVignetteAmount", Name: "vignette_amount", Int: func(a *Adjustments) **int { return &a.VignetteAmount }},
	{Tag: "GrainAmount", Name: "grain_amount", Int: func(a *Adjustments) **int { return &a.GrainAmount }},
}

// Tone curve tags
const (
	TagToneCurve      = "ToneCurvePV2012"
	TagToneCurveRed   = "ToneCurvePV2012Red"
	TagToneCurveGreen = "ToneCurvePV2012Green"
	TagToneCurveBlue  = "ToneCurvePV2012Blue"
)

// ChannelCurve returns the address of the opaque per-channel curve for tag,
// or nil if tag is not a channel curve.
func (a *Adjustments) ChannelCurve(tag string) **RawCurve {
	switch tag {
	case TagToneCurveRed:
		return &a.ToneCurveRed
	case TagToneCurveGreen:
		return &a.ToneCurveGreen
	case TagToneCurveBlue:
		return &a.ToneCurveBlue
	}
	return nil
}
