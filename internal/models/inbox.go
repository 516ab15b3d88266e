package models

import (
	"net/mail"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a simple inbound note from a logged-in member.
type Message struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Sender    string             `json:"sender" bson:"sender"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Contact is a public contact-form submission.
type Contact struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Mobile    string             `json:"mobile" bson:"mobile,omitempty"`
	Message   string             `json:"message" bson:"message"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type CreateMessageRequest struct {
	Content string `json:"content"`
}

func (r *CreateMessageRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Content == "" {
		errors["content"] = "Message content is required"
	} else if len(r.Content) > 4000 {
		errors["content"] = "Message is too long"
	}

	return errors
}

type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Message string `json:"message"`
}

func (r *CreateContactRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	} else if len(r.Name) > 120 {
		errors["name"] = "Name is too long"
	}

	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		errors["email"] = "Email is invalid"
	}

	if r.Message == "" {
		errors["message"] = "Message is required"
	} else if len(r.Message) > 4000 {
		errors["message"] = "Message is too long"
	}

	return errors
}
