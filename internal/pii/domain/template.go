package domain

// TemplateStyle selects how PartialMask renders a span.
type TemplateStyle string

const (
	// StyleEmail keeps VisiblePrefix runes of the local part and of the domain
	// label and the whole top-level domain: j***@e***.com.
	StyleEmail TemplateStyle = "email"

	// StyleDigits masks digits only, keeps separators and VisiblePrefix/VisibleSuffix digits.
	StyleDigits TemplateStyle = "digits"

	// StyleEdges keeps VisiblePrefix and VisibleSuffix runes and masks the middle.
	StyleEdges TemplateStyle = "edges"
)

// MaskTemplate configures partial masking for one category.
type MaskTemplate struct {
	Style         TemplateStyle
	VisiblePrefix int
	VisibleSuffix int
}

// DefaultTemplate is used for categories without a registered template.
var DefaultTemplate = MaskTemplate{Style: StyleEdges, VisiblePrefix: 2, VisibleSuffix: 2}
