package entity

// Doctor is one practitioner record as delivered by the remote directory.
type Doctor struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Specialities []Speciality `json:"specialities"`
	Experience   string       `json:"experience"`
	Fees         string       `json:"fees"`
	Clinic       Clinic       `json:"clinic"`
	Photo        string       `json:"photo,omitempty"`
	Introduction string       `json:"doctor_introduction,omitempty"`
	Languages    []string     `json:"languages,omitempty"`
	VideoConsult bool         `json:"video_consult,omitempty"`
	InClinic     bool         `json:"in_clinic,omitempty"`
}

type Speciality struct {
	Name string `json:"name"`
}

type Clinic struct {
	Name    string        `json:"name"`
	Address ClinicAddress `json:"address"`
}

type ClinicAddress struct {
	Locality     string `json:"locality"`
	City         string `json:"city,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
}

// SpecialityNames returns the doctor's speciality names in record order.
func (d Doctor) SpecialityNames() []string {
	names := make([]string, 0, len(d.Specialities))
	for _, s := range d.Specialities {
		names = append(names, s.Name)
	}
	return names
}

// HasAnySpeciality reports whether at least one of the doctor's specialities is selected.
func (d Doctor) HasAnySpeciality(selection *FilterSelection) bool {
	for _, s := range d.Specialities {
		if selection.Has(s.Name) {
			return true
		}
	}
	return false
}
