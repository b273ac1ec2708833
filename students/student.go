// Package students implements the student entity service. It mirrors the
// courses package: the same read-through cache discipline over its own key
// scheme, plus an age-aware statistics summary.
package students

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is a stored student record.
type Student struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	FirstName   string             `bson:"firstName" json:"firstName"`
	LastName    string             `bson:"lastName" json:"lastName"`
	Email       string             `bson:"email" json:"email"`
	DateOfBirth time.Time          `bson:"dateOfBirth" json:"dateOfBirth"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Stats is the aggregate summary over the student collection. AverageAge is
// the mean of calendar-year differences against the current year, rounded to
// the nearest whole year.
type Stats struct {
	StudentCount int `json:"studentCount"`
	AverageAge   int `json:"averageAge"`
}

// CreateInput carries the fields for a new student. All four are required.
type CreateInput struct {
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth time.Time
}

// Validate implements the create schema.
func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.Required),
		validation.Field(&in.LastName, validation.Required),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.DateOfBirth, validation.Required),
	)
}

// ErrNoFields rejects an update that carries none of the student fields.
var ErrNoFields = validation.NewError(
	"validation_no_fields",
	"at least one field (firstName, lastName, email, dateOfBirth) is required",
)

// UpdateInput carries a partial field set for an update. Nil fields retain
// their prior value.
type UpdateInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	DateOfBirth *time.Time
}

// Validate requires at least one field and re-checks the email shape when it
// is being replaced.
func (in UpdateInput) Validate() error {
	if in.FirstName == nil && in.LastName == nil && in.Email == nil && in.DateOfBirth == nil {
		return ErrNoFields
	}
	if in.Email != nil {
		return validation.Validate(*in.Email, validation.Required, is.Email)
	}
	return nil
}

// apply merges the update into student and refreshes its update timestamp.
func (in UpdateInput) apply(student Student) Student {
	if in.FirstName != nil {
		student.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		student.LastName = *in.LastName
	}
	if in.Email != nil {
		student.Email = *in.Email
	}
	if in.DateOfBirth != nil {
		student.DateOfBirth = *in.DateOfBirth
	}
	now := time.Now().UTC()
	student.UpdatedAt = &now
	return student
}
