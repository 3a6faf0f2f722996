package view

import (
	"net/url"
	"testing"

	"doctor-directory/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDirectory_Loading(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	body, err := r.RenderDirectory(&dto.DirectoryResponse{Status: "loading"}, url.Values{})
	require.NoError(t, err)

	page := string(body)
	assert.Contains(t, page, `http-equiv="refresh"`)
	assert.Contains(t, page, "Loading doctors")
	assert.NotContains(t, page, "No doctors match the selected filters.")
}

func TestRenderDirectory_Cards(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	directory := &dto.DirectoryResponse{
		Status:       "loaded",
		Specialities: []dto.SpecialityOption{{Name: "Dentist", Selected: true}, {Name: "General Physician"}},
		Doctors: []dto.DoctorCardResponse{{
			ID:           "1",
			Name:         "Dr. <script>",
			Specialities: []string{"Dentist", "Orthodontist"},
			Experience:   "13 Years of experience",
			Fees:         "₹ 500",
			ClinicName:   "Smile Care",
			Locality:     "Indiranagar",
			Photo:        "https://example.com/a.png",
		}},
		Sort: "price",
	}

	body, err := r.RenderDirectory(directory, url.Values{"sort": {"price"}})
	require.NoError(t, err)

	page := string(body)
	assert.NotContains(t, page, "<script>")
	assert.Contains(t, page, "Dr. &lt;script&gt;")
	assert.Contains(t, page, "Dentist, Orthodontist")
	assert.Contains(t, page, "Indiranagar")
	assert.Contains(t, page, `src="https://example.com/a.png"`)
	assert.Contains(t, page, `action="/filters/specialities/toggle?sort=price"`)
	assert.Contains(t, page, `action="/filters/clear?sort=price"`)
	assert.Contains(t, page, `value="price" checked`)
	assert.Contains(t, page, `value="in-clinic" checked`)
	assert.NotContains(t, page, `http-equiv="refresh"`)
	assert.Contains(t, page, `id="speciality-general-physician"`)
	assert.NotContains(t, page, `id="speciality-General Physician"`)
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Dentist":               "dentist",
		"General Physician":     "general-physician",
		"  Ear-Nose & Throat  ": "ear-nose-throat",
		"":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug(in), "slug(%q)", in)
	}
}

func TestRenderDirectory_FailedShowsNoticeAndEmptyState(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	body, err := r.RenderDirectory(&dto.DirectoryResponse{Status: "failed", Reason: "boom"}, url.Values{})
	require.NoError(t, err)

	page := string(body)
	assert.Contains(t, page, "The doctor list could not be loaded.")
	assert.Contains(t, page, "No doctors match the selected filters.")
	assert.Contains(t, page, `action="/filters/clear"`)
}
