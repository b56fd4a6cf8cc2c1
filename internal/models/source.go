package models

// DescriptionSource identifies one of the authoritative description sources
// aggregated into a Code.
type DescriptionSource string

const (
	SourceISO        DescriptionSource = "iso"
	SourceUSDA       DescriptionSource = "usda"
	SourceStripe     DescriptionSource = "stripe"
	SourceVisa       DescriptionSource = "visa"
	SourceMastercard DescriptionSource = "mastercard"
	SourceAmex       DescriptionSource = "amex"
	SourceAlipay     DescriptionSource = "alipay"
	SourceIRS        DescriptionSource = "irs"
)

// DescriptionSources returns all recognized sources in the fixed fallback
// order used by Code.Description.
func DescriptionSources() []DescriptionSource {
	return []DescriptionSource{
		SourceISO,
		SourceUSDA,
		SourceStripe,
		SourceVisa,
		SourceMastercard,
		SourceAmex,
		SourceAlipay,
		SourceIRS,
	}
}

// IsValidDescriptionSource checks if a source identifier is recognized
func IsValidDescriptionSource(source string) bool {
	for _, s := range DescriptionSources() {
		if DescriptionSource(source) == s {
			return true
		}
	}
	return false
}
