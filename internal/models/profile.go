package models

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the matrimonial attribute record owned one-to-one by a User. It
// is created empty at registration and filled incrementally; IsCompleted is
// recomputed on every save and never trusted from client input on the
// self-service paths.
type Profile struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID primitive.ObjectID `json:"user_id" bson:"user_id"`

	ProfileFor    string `json:"profile_for" bson:"profile_for,omitempty"`
	Age           string `json:"age" bson:"age,omitempty"`
	MaritalStatus string `json:"marital_status" bson:"marital_status,omitempty"`
	Gotra         string `json:"gotra" bson:"gotra,omitempty"`

	HeightFeet     string `json:"height_feet" bson:"height_feet,omitempty"`
	HeightInches   string `json:"height_inches" bson:"height_inches,omitempty"`
	BodyType       string `json:"body_type" bson:"body_type,omitempty"`
	Complexion     string `json:"complexion" bson:"complexion,omitempty"`
	PhysicalStatus string `json:"physical_status" bson:"physical_status,omitempty"`

	Education      string `json:"education" bson:"education,omitempty"`
	Occupation     string `json:"occupation" bson:"occupation,omitempty"`
	OccupationType string `json:"occupation_type" bson:"occupation_type,omitempty"`
	Income         string `json:"income" bson:"income,omitempty"`

	FoodPreference string `json:"food_preference" bson:"food_preference,omitempty"`
	Smoking        string `json:"smoking" bson:"smoking,omitempty"`
	Drinking       string `json:"drinking" bson:"drinking,omitempty"`

	Manglik   string `json:"manglik" bson:"manglik,omitempty"`
	Rashi     string `json:"rashi" bson:"rashi,omitempty"`
	Nakshatra string `json:"nakshatra" bson:"nakshatra,omitempty"`

	FatherName       string `json:"father_name" bson:"father_name,omitempty"`
	MotherName       string `json:"mother_name" bson:"mother_name,omitempty"`
	FatherOccupation string `json:"father_occupation" bson:"father_occupation,omitempty"`
	MotherOccupation string `json:"mother_occupation" bson:"mother_occupation,omitempty"`
	Siblings         string `json:"siblings" bson:"siblings,omitempty"`
	FamilyType       string `json:"family_type" bson:"family_type,omitempty"`
	Region           string `json:"region" bson:"region,omitempty"`

	Address string `json:"address" bson:"address,omitempty"`
	City    string `json:"city" bson:"city,omitempty"`
	State   string `json:"state" bson:"state,omitempty"`

	Hobbies   []string `json:"hobbies" bson:"hobbies,omitempty"`
	Languages []string `json:"languages" bson:"languages,omitempty"`
	About     string   `json:"about" bson:"about,omitempty"`

	Images []string `json:"images" bson:"images,omitempty"`

	IsCompleted   bool `json:"is_completed" bson:"is_completed"`
	IsPaymentDone bool `json:"is_payment_done" bson:"is_payment_done"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ProfileInput is the flat candidate field set accepted by the create/update
// endpoints. Enumerated fields validate against a closed value set; empty
// values are skipped (merge keeps the stored value).
type ProfileInput struct {
	ProfileFor    string `json:"profile_for" validate:"omitempty,oneof=Self Son Daughter Brother Sister Relative Friend"`
	Age           string `json:"age" validate:"omitempty,numeric"`
	MaritalStatus string `json:"marital_status" validate:"omitempty,oneof='Never Married' Divorced Widowed 'Awaiting Divorce'"`
	Gotra         string `json:"gotra" validate:"omitempty,oneof=Bharadwaj Kashyap Vashistha Gautam Atri Vishvamitra Jamadagni Agastya Shandilya Parashar Kaushik Other"`

	HeightFeet     string `json:"height_feet" validate:"omitempty,oneof=3 4 5 6 7"`
	HeightInches   string `json:"height_inches" validate:"omitempty,oneof=0 1 2 3 4 5 6 7 8 9 10 11"`
	BodyType       string `json:"body_type" validate:"omitempty,oneof=Slim Athletic Average Heavy"`
	Complexion     string `json:"complexion" validate:"omitempty,oneof='Very Fair' Fair Wheatish 'Wheatish Brown' Dark"`
	PhysicalStatus string `json:"physical_status" validate:"omitempty,oneof=Normal 'Physically Challenged'"`

	Education      string `json:"education"`
	Occupation     string `json:"occupation"`
	OccupationType string `json:"occupation_type" validate:"omitempty,oneof=Private Government Business 'Self Employed' 'Not Working' Student"`
	Income         string `json:"income"`

	FoodPreference string `json:"food_preference" validate:"omitempty,oneof=Vegetarian Non-Vegetarian Eggetarian Vegan"`
	Smoking        string `json:"smoking" validate:"omitempty,oneof=Yes No Occasionally"`
	Drinking       string `json:"drinking" validate:"omitempty,oneof=Yes No Occasionally"`

	Manglik   string `json:"manglik" validate:"omitempty,oneof=Yes No Anshik"`
	Rashi     string `json:"rashi"`
	Nakshatra string `json:"nakshatra"`

	FatherName       string `json:"father_name"`
	MotherName       string `json:"mother_name"`
	FatherOccupation string `json:"father_occupation"`
	MotherOccupation string `json:"mother_occupation"`
	Siblings         string `json:"siblings"`
	FamilyType       string `json:"family_type" validate:"omitempty,oneof=Joint Nuclear"`
	Region           string `json:"region" validate:"omitempty,oneof=Marwar Mewar Godwad Dhundhar Hadoti Shekhawati Other"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`

	Hobbies   []string `json:"hobbies"`
	Languages []string `json:"languages"`
	About     string   `json:"about"`
}

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New()
	// Report json names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every enumerated field against its closed value set and
// returns an error naming the first offending field.
func (in *ProfileInput) Validate() error {
	err := profileValidator.Struct(in)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid value %q for field %s", fmt.Sprintf("%v", fe.Value()), fe.Field())
	}
	return err
}

// ApplyTo merges the input into an existing profile. Scalar fields follow
// last-non-empty-wins: a present, non-empty value overwrites, anything else
// keeps the stored value. Hobbies and languages are list-valued and always
// fully replaced by the payload, emptied when omitted.
func (in *ProfileInput) ApplyTo(p *Profile) {
	set := func(dst *string, v string) {
		if s := strings.TrimSpace(v); s != "" {
			*dst = s
		}
	}

	set(&p.ProfileFor, in.ProfileFor)
	set(&p.Age, in.Age)
	set(&p.MaritalStatus, in.MaritalStatus)
	set(&p.Gotra, in.Gotra)
	set(&p.HeightFeet, in.HeightFeet)
	set(&p.HeightInches, in.HeightInches)
	set(&p.BodyType, in.BodyType)
	set(&p.Complexion, in.Complexion)
	set(&p.PhysicalStatus, in.PhysicalStatus)
	set(&p.Education, in.Education)
	set(&p.Occupation, in.Occupation)
	set(&p.OccupationType, in.OccupationType)
	set(&p.Income, in.Income)
	set(&p.FoodPreference, in.FoodPreference)
	set(&p.Smoking, in.Smoking)
	set(&p.Drinking, in.Drinking)
	set(&p.Manglik, in.Manglik)
	set(&p.Rashi, in.Rashi)
	set(&p.Nakshatra, in.Nakshatra)
	set(&p.FatherName, in.FatherName)
	set(&p.MotherName, in.MotherName)
	set(&p.FatherOccupation, in.FatherOccupation)
	set(&p.MotherOccupation, in.MotherOccupation)
	set(&p.Siblings, in.Siblings)
	set(&p.FamilyType, in.FamilyType)
	set(&p.Region, in.Region)
	set(&p.Address, in.Address)
	set(&p.City, in.City)
	set(&p.State, in.State)
	set(&p.About, in.About)

	p.Hobbies = in.Hobbies
	p.Languages = in.Languages
}

// RecomputeCompletion derives IsCompleted from the profile's own fields: the
// full required set must be non-empty and at least one image uploaded.
func (p *Profile) RecomputeCompletion() {
	required := []string{
		p.Age,
		p.ProfileFor,
		p.MaritalStatus,
		p.Gotra,
		p.Education,
		p.Occupation,
		p.HeightFeet,
		p.HeightInches,
		p.FatherName,
		p.MotherName,
		p.Region,
		p.FamilyType,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			p.IsCompleted = false
			return
		}
	}
	p.IsCompleted = len(p.Images) > 0
}

// ProfileFileInfo is the moderation metadata block attached to admin listings.
type ProfileFileInfo struct {
	ImageCount    int       `json:"image_count"`
	ImageURLs     []string  `json:"image_urls"`
	IsCompleted   bool      `json:"is_completed"`
	IsPaymentDone bool      `json:"is_payment_done"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AdminProfileView is the enriched listing entry only admins receive.
type AdminProfileView struct {
	Profile
	FileInfo    ProfileFileInfo `json:"fileInfo"`
	UserDetails UserDetails     `json:"userDetails"`
}

func (p *Profile) FileInfo() ProfileFileInfo {
	return ProfileFileInfo{
		ImageCount:    len(p.Images),
		ImageURLs:     p.Images,
		IsCompleted:   p.IsCompleted,
		IsPaymentDone: p.IsPaymentDone,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// AdminCreateProfileRequest is the admin bulk-create payload. Unlike the
// self-service paths, IsCompleted here is stored as sent so imported records
// keep the completeness judged at their source.
type AdminCreateProfileRequest struct {
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Mobile      string       `json:"mobile"`
	Gender      string       `json:"gender"`
	Password    string       `json:"password"`
	Profile     ProfileInput `json:"profile"`
	Images      []string     `json:"images"`
	IsCompleted bool         `json:"is_completed"`
}

func (r *AdminCreateProfileRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Gender != "Male" && r.Gender != "Female" {
		errors["gender"] = "Gender must be Male or Female"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}
	if err := r.Profile.Validate(); err != nil {
		errors["profile"] = err.Error()
	}

	return errors
}
