package models

// All returns every persisted model, in dependency order, for migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&SurplusListing{},
		&DemandListing{},
		&Match{},
		&Article{},
		&Resource{},
		&MagazineIssue{},
		&PopularArticle{},
		&Collaboration{},
		&Contribution{},
		&FoundersList{},
	}
}
