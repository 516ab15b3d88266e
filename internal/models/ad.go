package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Positions an ad can occupy on a page.
var AdPositions = []string{"popup", "bottom"}

// Pages an ad can target.
var AdPages = []string{"home", "about", "contact"}

// Ad is an admin-managed promotional unit.
type Ad struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description,omitempty"`
	ImageURL    string             `json:"image_url" bson:"image_url,omitempty"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	Positions   []string           `json:"positions" bson:"positions"`
	Pages       []string           `json:"pages" bson:"pages"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// VisibleOn reports whether an active ad targets the given page.
func (a *Ad) VisibleOn(page string) bool {
	if !a.IsActive {
		return false
	}
	for _, p := range a.Pages {
		if p == page {
			return true
		}
	}
	return false
}

type AdInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Positions   []string `json:"positions"`
	Pages       []string `json:"pages"`
}

func (r *AdInput) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Title is required"
	}
	if len(r.Positions) == 0 {
		errors["positions"] = "At least one position is required"
	} else if !subsetOf(r.Positions, AdPositions) {
		errors["positions"] = "Positions must be a subset of popup, bottom"
	}
	if len(r.Pages) == 0 {
		errors["pages"] = "At least one page is required"
	} else if !subsetOf(r.Pages, AdPages) {
		errors["pages"] = "Pages must be a subset of home, about, contact"
	}

	return errors
}

func subsetOf(values, allowed []string) bool {
	for _, v := range values {
		found := false
		for _, a := range allowed {
			if v == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
