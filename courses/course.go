// Package courses implements the course entity service: CRUD plus a
// statistics summary, orchestrating the document store and the cache per the
// read-through / invalidate-on-write discipline described in the cache
// package.
package courses

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a stored course record. UpdatedAt stays null until the first
// update.
type Course struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Instructor  string             `bson:"instructor" json:"instructor"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"`
	EndDate     time.Time          `bson:"endDate" json:"endDate"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Stats is the aggregate summary over the course collection.
type Stats struct {
	TotalCourses int `json:"totalCourses"`
}

// CreateInput carries the fields for a new course. All six are required and
// the set is rejected atomically when any is absent.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	Instructor  string
	StartDate   time.Time
	EndDate     time.Time
}

// Validate implements the create schema.
func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Description, validation.Required),
		validation.Field(&in.Category, validation.Required),
		validation.Field(&in.Instructor, validation.Required),
		validation.Field(&in.StartDate, validation.Required),
		validation.Field(&in.EndDate, validation.Required),
	)
}

// ErrNoFields rejects an update that carries none of the course fields.
var ErrNoFields = validation.NewError(
	"validation_no_fields",
	"at least one field (title, description, category, instructor, startDate, endDate) is required",
)

// UpdateInput carries a partial field set for an update. Nil fields retain
// their prior value.
type UpdateInput struct {
	Title       *string
	Description *string
	Category    *string
	Instructor  *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Validate requires at least one field to be present.
func (in UpdateInput) Validate() error {
	if in.Title == nil && in.Description == nil && in.Category == nil &&
		in.Instructor == nil && in.StartDate == nil && in.EndDate == nil {
		return ErrNoFields
	}
	return nil
}

// apply merges the update into course and refreshes its update timestamp.
func (in UpdateInput) apply(course Course) Course {
	if in.Title != nil {
		course.Title = *in.Title
	}
	if in.Description != nil {
		course.Description = *in.Description
	}
	if in.Category != nil {
		course.Category = *in.Category
	}
	if in.Instructor != nil {
		course.Instructor = *in.Instructor
	}
	if in.StartDate != nil {
		course.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		course.EndDate = *in.EndDate
	}
	now := time.Now().UTC()
	course.UpdatedAt = &now
	return course
}
