// Package types provides type definitions for structured data used throughout the rfp-proposal system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// NotAvailable is the reserved sentinel written in place of missing data.
// It is part of the on-disk artifact contract.
const NotAvailable = "غير متوفر"

// Field keys of the company profile artifact.
const (
	KeyCompanyName     = "اسم_الشركة"
	KeyEnglishName     = "الاسم_بالإنجليزية"
	KeyAbout           = "نبذة_عن_الشركة"
	KeyServices        = "الخدمات"
	KeyIndustries      = "المجالات"
	KeyVision          = "الرؤية"
	KeyMission         = "الرسالة"
	KeyGoals           = "الأهداف"
	KeyValues          = "القيم"
	KeyLicenses        = "التراخيص"
	KeyBranches        = "فروع_الشركة"
	KeyFoundedYear     = "سنة_التأسيس"
	KeyExperience      = "الخبرات_المتراكمة"
	KeyExtensiveExpert = "Extensive_Expertise"
	KeyConsultations   = "الاستشارات"
	KeyProjects        = "مشاريع_سابقة"
	KeyPartners        = "شركاء_النجاح"
	KeyWhyUs           = "لماذا_نحن"
	KeyContact         = "التواصل"
	KeyAdditionalInfo  = "معلومات_إضافية"
	KeyContactPhones   = "الهواتف"
	KeyContactEmails   = "الإيميلات"
	KeyContactSocials  = "وسائل_التواصل"
)

// ListFieldKeys returns the profile keys whose values are string sequences, in artifact order.
func ListFieldKeys() []string {
	return []string{
		KeyServices, KeyIndustries, KeyGoals, KeyValues, KeyLicenses,
		KeyBranches, KeyProjects, KeyPartners, KeyWhyUs,
	}
}

// StringFieldKeys returns the profile keys whose values are single strings, in artifact order.
func StringFieldKeys() []string {
	return []string{
		KeyCompanyName, KeyEnglishName, KeyAbout, KeyVision, KeyMission,
		KeyFoundedYear, KeyExperience, KeyExtensiveExpert, KeyConsultations, KeyAdditionalInfo,
	}
}

// ContactBundle holds the normalized contact data harvested for one company.
type ContactBundle struct {
	Phones  []string `json:"الهواتف"`
	Emails  []string `json:"الإيميلات"`
	Socials []string `json:"وسائل_التواصل"`
}

// Union returns the sorted, deduplicated union of b and other. Neither input is modified.
func (b *ContactBundle) Union(other *ContactBundle) *ContactBundle {
	out := &ContactBundle{}
	if b == nil {
		b = &ContactBundle{}
	}
	if other == nil {
		other = &ContactBundle{}
	}
	out.Phones = unionSorted(b.Phones, other.Phones)
	out.Emails = unionSorted(b.Emails, other.Emails)
	out.Socials = unionSorted(b.Socials, other.Socials)
	return out
}

// IsEmpty reports whether the bundle carries no contact data at all.
func (b *ContactBundle) IsEmpty() bool {
	return b == nil || (IsNotAvailable(b.Phones) && IsNotAvailable(b.Emails) && IsNotAvailable(b.Socials))
}

func unionSorted(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if v == "" || v == NotAvailable || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// CompanyProfile is the coerced company record. Every field is always populated;
// missing data is represented by NotAvailable.
type CompanyProfile struct {
	CompanyName        string        `json:"اسم_الشركة"`
	EnglishName        string        `json:"الاسم_بالإنجليزية"`
	About              string        `json:"نبذة_عن_الشركة"`
	Services           []string      `json:"الخدمات"`
	Industries         []string      `json:"المجالات"`
	Vision             string        `json:"الرؤية"`
	Mission            string        `json:"الرسالة"`
	Goals              []string      `json:"الأهداف"`
	Values             []string      `json:"القيم"`
	Licenses           []string      `json:"التراخيص"`
	Branches           []string      `json:"فروع_الشركة"`
	FoundedYear        string        `json:"سنة_التأسيس"`
	Experience         string        `json:"الخبرات_المتراكمة"`
	ExtensiveExpertise string        `json:"Extensive_Expertise"`
	Consultations      string        `json:"الاستشارات"`
	Projects           []string      `json:"مشاريع_سابقة"`
	Partners           []string      `json:"شركاء_النجاح"`
	WhyUs              []string      `json:"لماذا_نحن"`
	Contact            ContactBundle `json:"التواصل"`
	AdditionalInfo     string        `json:"معلومات_إضافية"`
	Sources            []Source      `json:"sources,omitempty"`
}

// ListField returns a pointer to the list field stored under key, or nil for unknown keys.
func (p *CompanyProfile) ListField(key string) *[]string {
	switch key {
	case KeyServices:
		return &p.Services
	case KeyIndustries:
		return &p.Industries
	case KeyGoals:
		return &p.Goals
	case KeyValues:
		return &p.Values
	case KeyLicenses:
		return &p.Licenses
	case KeyBranches:
		return &p.Branches
	case KeyProjects:
		return &p.Projects
	case KeyPartners:
		return &p.Partners
	case KeyWhyUs:
		return &p.WhyUs
	}
	return nil
}

// StringField returns a pointer to the string field stored under key, or nil for unknown keys.
func (p *CompanyProfile) StringField(key string) *string {
	switch key {
	case KeyCompanyName:
		return &p.CompanyName
	case KeyEnglishName:
		return &p.EnglishName
	case KeyAbout:
		return &p.About
	case KeyVision:
		return &p.Vision
	case KeyMission:
		return &p.Mission
	case KeyFoundedYear:
		return &p.FoundedYear
	case KeyExperience:
		return &p.Experience
	case KeyExtensiveExpert:
		return &p.ExtensiveExpertise
	case KeyConsultations:
		return &p.Consultations
	case KeyAdditionalInfo:
		return &p.AdditionalInfo
	}
	return nil
}

// IsNotAvailable reports whether a list carries no usable data.
func IsNotAvailable(values []string) bool {
	if len(values) == 0 {
		return true
	}
	return len(values) == 1 && values[0] == NotAvailable
}
