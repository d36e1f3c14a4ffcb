package domain

import "strings"

type StaffMember struct {
	ID             string   `json:"id"`
	StaffID        string   `json:"staffId"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	FullName       string   `json:"fullName"`
	JobTitle       string   `json:"jobTitle"`
	Phone          string   `json:"phone,omitempty"`
	Email          string   `json:"email,omitempty"`
	OfficeLocation string   `json:"officeLocation,omitempty"`
	PolicyAreas    []string `json:"policyAreas"`
	Website        string   `json:"website,omitempty"`
	OfficialLink   string   `json:"officialLink,omitempty"`
	BioguideID     string   `json:"bioguideId,omitempty"`
	ValidFromDate  string   `json:"validFromDate,omitempty"`
	ValidToDate    string   `json:"validToDate,omitempty"`
	DataSource     string   `json:"dataSource,omitempty"`
	LastUpdated    string   `json:"lastUpdated,omitempty"`
}

// StaffGroups agrupa al staff por tipo de rol.
type StaffGroups struct {
	Leadership     []StaffMember `json:"leadership"`
	Communications []StaffMember `json:"communications"`
	Policy         []StaffMember `json:"policy"`
	Operations     []StaffMember `json:"operations"`
	Other          []StaffMember `json:"other"`
}

// GroupStaffByRole clasifica por palabras clave del cargo; el primer grupo que coincide gana.
func GroupStaffByRole(staff []StaffMember) StaffGroups {
	groups := StaffGroups{
		Leadership:     []StaffMember{},
		Communications: []StaffMember{},
		Policy:         []StaffMember{},
		Operations:     []StaffMember{},
		Other:          []StaffMember{},
	}
	for _, member := range staff {
		title := strings.ToLower(member.JobTitle)
		switch {
		case containsAny(title, "chief", "director", "deputy"):
			groups.Leadership = append(groups.Leadership, member)
		case containsAny(title, "communication", "press", "media"):
			groups.Communications = append(groups.Communications, member)
		case containsAny(title, "policy", "legislative", "advisor"):
			groups.Policy = append(groups.Policy, member)
		case containsAny(title, "admin", "scheduler", "assistant"):
			groups.Operations = append(groups.Operations, member)
		default:
			groups.Other = append(groups.Other, member)
		}
	}
	return groups
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// SplitList parte una lista separada por comas, descartando vacios.
func SplitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
