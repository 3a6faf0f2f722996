package entity

// ExtractSpecialities flattens every doctor's speciality names into a
// duplicate-free list ordered by first occurrence.
func ExtractSpecialities(doctors []Doctor) []string {
	seen := make(map[string]struct{})
	specialities := make([]string, 0)
	for _, doctor := range doctors {
		for _, s := range doctor.Specialities {
			if _, ok := seen[s.Name]; ok {
				continue
			}
			seen[s.Name] = struct{}{}
			specialities = append(specialities, s.Name)
		}
	}
	return specialities
}
