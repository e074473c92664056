package database

import "github.com/nao1215/ycscrape/internal/model"

// Diff compares two runs by company detail URL.
// added holds companies of newer missing from older, removed the reverse;
// both keep the listing order of the run they come from. A nil run counts
// as a run without companies.
func Diff(older, newer *model.Run) (added, removed []model.Company) {
	return missingFrom(older, newer), missingFrom(newer, older)
}

// missingFrom returns the companies of run that base does not list.
func missingFrom(base, run *model.Run) []model.Company {
	if run == nil {
		return nil
	}
	var missing []model.Company
	for _, c := range run.Companies {
		if base != nil {
			if _, ok := base.CompanyByURL(c.DetailURL()); ok {
				continue
			}
		}
		missing = append(missing, c)
	}
	return missing
}
