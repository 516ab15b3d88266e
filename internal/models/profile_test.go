package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeProfile() Profile {
	return Profile{
		Age:           "28",
		ProfileFor:    "Self",
		MaritalStatus: "Never Married",
		Gotra:         "Kashyap",
		Education:     "B.Tech",
		Occupation:    "Software Engineer",
		HeightFeet:    "5",
		HeightInches:  "9",
		FatherName:    "Ramesh",
		MotherName:    "Sunita",
		Region:        "Marwar",
		FamilyType:    "Joint",
		Images:        []string{"https://example.com/a.jpg"},
	}
}

func TestProfileInputValidate(t *testing.T) {
	t.Run("accepts values inside the closed sets", func(t *testing.T) {
		in := ProfileInput{
			ProfileFor:     "Self",
			MaritalStatus:  "Never Married",
			Gotra:          "Bharadwaj",
			HeightFeet:     "5",
			HeightInches:   "11",
			BodyType:       "Athletic",
			Complexion:     "Wheatish Brown",
			PhysicalStatus: "Normal",
			OccupationType: "Self Employed",
			FoodPreference: "Vegetarian",
			Smoking:        "No",
			Drinking:       "Occasionally",
			Manglik:        "Anshik",
			FamilyType:     "Nuclear",
			Region:         "Shekhawati",
		}
		require.NoError(t, in.Validate())
	})

	t.Run("empty input is valid", func(t *testing.T) {
		in := ProfileInput{}
		require.NoError(t, in.Validate())
	})

	t.Run("rejects out-of-set values naming the field", func(t *testing.T) {
		cases := []struct {
			field string
			in    ProfileInput
		}{
			{"gotra", ProfileInput{Gotra: "Unknown"}},
			{"marital_status", ProfileInput{MaritalStatus: "Single"}},
			{"height_feet", ProfileInput{HeightFeet: "8"}},
			{"height_inches", ProfileInput{HeightInches: "12"}},
			{"body_type", ProfileInput{BodyType: "Muscular"}},
			{"complexion", ProfileInput{Complexion: "Pale"}},
			{"physical_status", ProfileInput{PhysicalStatus: "Fit"}},
			{"occupation_type", ProfileInput{OccupationType: "Freelance"}},
			{"food_preference", ProfileInput{FoodPreference: "Pescatarian"}},
			{"smoking", ProfileInput{Smoking: "Sometimes"}},
			{"drinking", ProfileInput{Drinking: "Socially"}},
			{"manglik", ProfileInput{Manglik: "Maybe"}},
			{"family_type", ProfileInput{FamilyType: "Extended"}},
			{"region", ProfileInput{Region: "North"}},
			{"profile_for", ProfileInput{ProfileFor: "Cousin"}},
		}

		for _, tc := range cases {
			err := tc.in.Validate()
			require.Error(t, err, "field %s", tc.field)
			assert.Contains(t, err.Error(), tc.field)
		}
	})

	t.Run("reports the first violating field only", func(t *testing.T) {
		in := ProfileInput{Gotra: "Unknown", Region: "Nowhere"}
		err := in.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gotra")
		assert.NotContains(t, err.Error(), "region")
	})
}

func TestProfileInputApplyTo(t *testing.T) {
	t.Run("non-empty values overwrite, empty values keep stored", func(t *testing.T) {
		p := completeProfile()
		in := ProfileInput{Occupation: "Doctor"}
		in.ApplyTo(&p)

		assert.Equal(t, "Doctor", p.Occupation)
		assert.Equal(t, "Kashyap", p.Gotra)
		assert.Equal(t, "28", p.Age)
		assert.Equal(t, "Ramesh", p.FatherName)
	})

	t.Run("values are trimmed", func(t *testing.T) {
		p := Profile{}
		in := ProfileInput{City: "  Jodhpur  "}
		in.ApplyTo(&p)
		assert.Equal(t, "Jodhpur", p.City)
	})

	t.Run("list fields are replaced in full", func(t *testing.T) {
		p := Profile{Hobbies: []string{"Reading", "Cricket"}, Languages: []string{"Hindi"}}
		in := ProfileInput{Hobbies: []string{"Cooking"}}
		in.ApplyTo(&p)

		assert.Equal(t, []string{"Cooking"}, p.Hobbies)
		assert.Empty(t, p.Languages, "omitted list field is emptied")
	})
}

func TestRecomputeCompletion(t *testing.T) {
	t.Run("complete profile with one image", func(t *testing.T) {
		p := completeProfile()
		p.RecomputeCompletion()
		assert.True(t, p.IsCompleted)
	})

	t.Run("each missing required field flips it false", func(t *testing.T) {
		clear := map[string]func(*Profile){
			"age":            func(p *Profile) { p.Age = "" },
			"profile_for":    func(p *Profile) { p.ProfileFor = "" },
			"marital_status": func(p *Profile) { p.MaritalStatus = "" },
			"gotra":          func(p *Profile) { p.Gotra = "" },
			"education":      func(p *Profile) { p.Education = "" },
			"occupation":     func(p *Profile) { p.Occupation = "" },
			"height_feet":    func(p *Profile) { p.HeightFeet = "" },
			"height_inches":  func(p *Profile) { p.HeightInches = "" },
			"father_name":    func(p *Profile) { p.FatherName = "" },
			"mother_name":    func(p *Profile) { p.MotherName = "" },
			"region":         func(p *Profile) { p.Region = "" },
			"family_type":    func(p *Profile) { p.FamilyType = "" },
		}

		for name, mutate := range clear {
			p := completeProfile()
			mutate(&p)
			p.RecomputeCompletion()
			assert.False(t, p.IsCompleted, "missing %s should fail completion", name)
		}
	})

	t.Run("whitespace-only does not count as populated", func(t *testing.T) {
		p := completeProfile()
		p.Education = "   "
		p.RecomputeCompletion()
		assert.False(t, p.IsCompleted)
	})

	t.Run("no images flips it false", func(t *testing.T) {
		p := completeProfile()
		p.Images = nil
		p.RecomputeCompletion()
		assert.False(t, p.IsCompleted)
	})

	t.Run("recomputation overrides a stale stored flag", func(t *testing.T) {
		p := completeProfile()
		p.IsCompleted = true
		p.Gotra = ""
		p.RecomputeCompletion()
		assert.False(t, p.IsCompleted)
	})
}

func TestProfileFileInfo(t *testing.T) {
	p := completeProfile()
	p.IsPaymentDone = true
	p.RecomputeCompletion()

	info := p.FileInfo()
	assert.Equal(t, 1, info.ImageCount)
	assert.Equal(t, p.Images, info.ImageURLs)
	assert.True(t, info.IsCompleted)
	assert.True(t, info.IsPaymentDone)
}

func TestAdminCreateProfileRequestValidate(t *testing.T) {
	req := AdminCreateProfileRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Gender:   "Female",
		Password: "secret1",
	}
	assert.Empty(t, req.Validate())

	req.Gender = "Other"
	errs := req.Validate()
	assert.Contains(t, errs, "gender")

	req.Gender = "Female"
	req.Profile = ProfileInput{Gotra: "Nope"}
	errs = req.Validate()
	if assert.Contains(t, errs, "profile") {
		assert.True(t, strings.Contains(errs["profile"], "gotra"))
	}
}
