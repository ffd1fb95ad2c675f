package state

// TemplateKind names a document template. It is always passed as a typed
// argument and never recovered from rendered text.
type TemplateKind int

const (
	TemplateNone TemplateKind = iota
	TemplateSaleAgreement
	TemplateLeaseAgreement
	TemplateEmploymentContract
	TemplateNonDisclosure
	TemplatePlaint
	TemplateAffidavit
	TemplateDemandLetter
	TemplatePowerOfAttorney
	TemplateBoardResolution
)

var templateNames = map[TemplateKind]string{
	TemplateSaleAgreement:      "Sale Agreement",
	TemplateLeaseAgreement:     "Lease Agreement",
	TemplateEmploymentContract: "Employment Contract",
	TemplateNonDisclosure:      "Non-Disclosure Agreement",
	TemplatePlaint:             "Plaint",
	TemplateAffidavit:          "Affidavit",
	TemplateDemandLetter:       "Demand Letter",
	TemplatePowerOfAttorney:    "Power of Attorney",
	TemplateBoardResolution:    "Board Resolution",
}

func (k TemplateKind) String() string {
	if name, ok := templateNames[k]; ok {
		return name
	}
	return "Document"
}

// TemplateCategory groups templates in the Templates view.
type TemplateCategory struct {
	Name      string
	Templates []TemplateKind
}

// TemplateCatalog is the fixed template list in display order.
var TemplateCatalog = []TemplateCategory{
	{Name: "Contracts", Templates: []TemplateKind{
		TemplateSaleAgreement, TemplateLeaseAgreement, TemplateEmploymentContract, TemplateNonDisclosure,
	}},
	{Name: "Litigation", Templates: []TemplateKind{
		TemplatePlaint, TemplateAffidavit, TemplateDemandLetter,
	}},
	{Name: "Corporate", Templates: []TemplateKind{
		TemplatePowerOfAttorney, TemplateBoardResolution,
	}},
}
