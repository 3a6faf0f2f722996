package converter

import (
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
)

// DoctorToCardResponse converts a Doctor entity to the card shown in the directory
func DoctorToCardResponse(doctor *entity.Doctor) *dto.DoctorCardResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorCardResponse{
		ID:           doctor.ID,
		Name:         doctor.Name,
		Specialities: doctor.SpecialityNames(),
		Experience:   doctor.Experience,
		Fees:         doctor.Fees,
		ClinicName:   doctor.Clinic.Name,
		Locality:     doctor.Clinic.Address.Locality,
		City:         doctor.Clinic.Address.City,
		Photo:        doctor.Photo,
		Languages:    doctor.Languages,
		VideoConsult: doctor.VideoConsult,
		InClinic:     doctor.InClinic,
	}
}

// DoctorsToCardResponses converts a slice of Doctor entities to card DTOs
func DoctorsToCardResponses(doctors []entity.Doctor) []dto.DoctorCardResponse {
	responses := make([]dto.DoctorCardResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToCardResponse(&doctors[i])
	}
	return responses
}

// DirectoryPageToResponse converts a derived DirectoryPage to the response DTO,
// echoing the display-only query values back.
func DirectoryPageToResponse(page *entity.DirectoryPage, query *dto.DirectoryQuery) *dto.DirectoryResponse {
	if page == nil {
		return nil
	}

	options := make([]dto.SpecialityOption, len(page.Specialities))
	for i, name := range page.Specialities {
		options[i] = dto.SpecialityOption{
			Name:     name,
			Selected: page.Selection.Has(name),
		}
	}

	response := &dto.DirectoryResponse{
		Status:       string(page.State.Status),
		Reason:       page.State.Reason,
		Specialities: options,
		Selected:     page.Selection.Names(),
		Doctors:      DoctorsToCardResponses(page.Doctors),
		Count:        len(page.Doctors),
		Total:        page.Total,
	}

	if query != nil {
		response.Sort = query.Sort
		response.Search = query.Search
		response.Mode = query.Mode
	}

	return response
}
