package usecase

import (
	"slices"

	"doctor-directory/internal/domain/entity"
)

// FilterDoctors returns the doctors holding at least one selected speciality,
// in source order. An empty selection returns every doctor. Neither argument
// is modified.
func FilterDoctors(doctors []entity.Doctor, selection *entity.FilterSelection) []entity.Doctor {
	if selection.IsEmpty() {
		return slices.Clone(doctors)
	}

	filtered := make([]entity.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		if doctor.HasAnySpeciality(selection) {
			filtered = append(filtered, doctor)
		}
	}
	return filtered
}

// SortDoctors returns a copy of doctors ordered by the requested key.
// Price sorts ascending and experience descending; records whose value
// cannot be parsed keep their relative order after the parsed ones.
func SortDoctors(doctors []entity.Doctor, order entity.SortOrder) []entity.Doctor {
	sorted := slices.Clone(doctors)

	switch order {
	case entity.SortPrice:
		slices.SortStableFunc(sorted, func(a, b entity.Doctor) int {
			feeA, okA := a.FeeAmount()
			feeB, okB := b.FeeAmount()
			if c := compareParsed(okA, okB); c != 0 || !okA {
				return c
			}
			return feeA.Cmp(feeB)
		})
	case entity.SortExperience:
		slices.SortStableFunc(sorted, func(a, b entity.Doctor) int {
			yearsA, okA := a.ExperienceYears()
			yearsB, okB := b.ExperienceYears()
			if c := compareParsed(okA, okB); c != 0 || !okA {
				return c
			}
			return yearsB - yearsA
		})
	}

	return sorted
}

// compareParsed orders parsed values ahead of unparsed ones.
func compareParsed(okA, okB bool) int {
	switch {
	case okA && !okB:
		return -1
	case !okA && okB:
		return 1
	default:
		return 0
	}
}
