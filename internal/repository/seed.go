package repository

import (
	"strings"

	"ratemyrep/internal/domain"
)

// SeedOfficials devuelve los funcionarios de ejemplo para desarrollo local.
// Los puntajes estan en la escala 0-100 de las calificaciones.
func SeedOfficials() []domain.Official {
	return []domain.Official{
		seedOfficial("OFF_0001", "A000370", "Alma", "Adams", domain.PartyDemocratic, "NC", "12th District",
			"(202) 225-1510", "alma.adams@mail.house.gov", "https://adams.house.gov/",
			"Democratic Representative from North Carolina's 12th district. Former educator and advocate for historically black colleges and universities.",
			[]string{"Education", "Healthcare", "Economic Justice"}, 84, 1847,
			domain.SocialMedia{Twitter: "@RepAdams", Instagram: "@repadams", Facebook: "RepAdams"}),
		seedOfficial("OFF_0002", "A000055", "Robert", "Aderholt", domain.PartyRepublican, "AL", "4th District",
			"(202) 225-4876", "robert.aderholt@mail.house.gov", "https://aderholt.house.gov/",
			"Republican Representative from Alabama's 4th district. Senior member focusing on appropriations and fiscal responsibility.",
			[]string{"Fiscal Responsibility", "Defense", "Agriculture"}, 76, 1243,
			domain.SocialMedia{Twitter: "@RobertAderholt", Facebook: "RepAderholt"}),
		seedOfficial("OFF_0003", "B001297", "Ken", "Buck", domain.PartyRepublican, "CO", "4th District",
			"(202) 225-4676", "ken.buck@mail.house.gov", "https://buck.house.gov/",
			"Republican Representative from Colorado's 4th district. Former prosecutor with focus on judiciary and technology issues.",
			[]string{"Judiciary", "Technology", "Small Business"}, 72, 892,
			domain.SocialMedia{Twitter: "@RepKenBuck", Facebook: "RepKenBuck"}),
		seedOfficial("OFF_0004", "C001053", "Tom", "Cole", domain.PartyRepublican, "OK", "4th District",
			"(202) 225-6165", "tom.cole@mail.house.gov", "https://cole.house.gov/",
			"Republican Representative from Oklahoma's 4th district. Senior appropriator and former state legislator with Native American heritage.",
			[]string{"Appropriations", "Native American Affairs", "Defense"}, 80, 1456,
			domain.SocialMedia{Twitter: "@TomColeOK04", Facebook: "TomColeOK04"}),
		seedOfficial("OFF_0005", "D000624", "Debbie", "Dingell", domain.PartyDemocratic, "MI", "6th District",
			"(202) 225-4071", "debbie.dingell@mail.house.gov", "https://debbiedingell.house.gov/",
			"Democratic Representative from Michigan's 6th district. Advocate for healthcare, environment, and women's rights.",
			[]string{"Healthcare", "Environment", "Women's Rights"}, 90, 2134,
			domain.SocialMedia{Twitter: "@RepDebDingell", Instagram: "@repdebdingell", Facebook: "RepDebDingell"}),
		seedOfficial("OFF_0006", "S001185", "Terri", "Sewell", domain.PartyDemocratic, "AL", "7th District",
			"(202) 225-2665", "terri.sewell@mail.house.gov", "https://sewell.house.gov/",
			"Democratic Representative from Alabama's 7th district. First African American woman elected to Congress from Alabama.",
			[]string{"Civil Rights", "Rural Development", "Healthcare"}, 86, 1672,
			domain.SocialMedia{Twitter: "@RepTerriSewell", Instagram: "@repterrisewell", Facebook: "RepTerriSewell"}),
		seedOfficial("OFF_0007", "W000826", "Susan", "Wild", domain.PartyDemocratic, "PA", "7th District",
			"(202) 225-6411", "susan.wild@mail.house.gov", "https://wild.house.gov/",
			"Democratic Representative from Pennsylvania's 7th district. Former solicitor focused on healthcare and government accountability.",
			[]string{"Government Accountability", "Healthcare", "Infrastructure"}, 82, 1289,
			domain.SocialMedia{Twitter: "@RepSusanWild", Instagram: "@repsusan_wild", Facebook: "RepSusanWild"}),
		seedOfficial("OFF_0008", "Y000033", "Don", "Young", domain.PartyRepublican, "AK", "At Large",
			"(202) 225-5765", "don.young@mail.house.gov", "https://donyoung.house.gov/",
			"Republican Representative from Alaska's at-large district. Dean of the House with focus on transportation and natural resources.",
			[]string{"Transportation", "Natural Resources", "Alaska Issues"}, 74, 1567,
			domain.SocialMedia{Twitter: "@RepDonYoung", Facebook: "CongressmanDonYoung"}),
	}
}

func seedOfficial(
	officialID, bioguideID, first, last string,
	party domain.Party,
	state, district, phone, email, website, bio string,
	issues []string,
	rating float64,
	total int,
	social domain.SocialMedia,
) domain.Official {
	return domain.Official{
		OfficialID:   officialID,
		BioguideID:   bioguideID,
		Name:         first + " " + last,
		FirstName:    first,
		LastName:     last,
		Party:        party,
		State:        state,
		District:     district,
		Chamber:      "House",
		OfficeLevel:  domain.OfficeLevelFederal,
		Bio:          bio,
		Phone:        phone,
		Email:        email,
		Website:      website,
		KeyIssues:    issues,
		Rating:       rating,
		TotalRatings: total,
		SocialMedia:  social,
		LastUpdated:  "2025-07-08",
	}
}

// SeedStaff devuelve el staff de ejemplo de la oficina de Alma Adams.
func SeedStaff() []domain.StaffMember {
	base := func(staffID, first, last, title, phone, office, from string, areas []string) domain.StaffMember {
		return domain.StaffMember{
			StaffID:        staffID,
			FirstName:      first,
			LastName:       last,
			FullName:       first + " " + last,
			JobTitle:       title,
			Phone:          phone,
			Email:          strings.ToLower(first+"."+last) + "@mail.house.gov",
			OfficeLocation: office,
			PolicyAreas:    areas,
			OfficialLink:   "OFF_0001",
			BioguideID:     "A000370",
			ValidFromDate:  from,
			DataSource:     "Demo Data",
			LastUpdated:    "2025-07-08",
		}
	}
	return []domain.StaffMember{
		base("STF_DEMO_001", "Sarah", "Johnson", "Chief of Staff", "(202) 225-0001", "Washington, DC", "2023-01-01",
			[]string{"Administration", "Strategy", "Operations"}),
		base("STF_DEMO_002", "Michael", "Chen", "Communications Director", "(202) 225-0002", "Washington, DC", "2023-01-01",
			[]string{"Media Relations", "Public Affairs", "Social Media"}),
		base("STF_DEMO_003", "Emily", "Rodriguez", "Legislative Assistant", "(202) 225-0003", "Washington, DC", "2023-06-01",
			[]string{"Healthcare", "Education", "Immigration"}),
		base("STF_DEMO_004", "David", "Thompson", "District Director", "(704) 344-9500", "Charlotte, NC", "2022-01-01",
			[]string{"Constituent Services", "Community Outreach", "Local Issues"}),
	}
}
