package catalog

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elimu/core"
)

// Enrollment statuses
const (
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Instructor  string    `json:"instructor"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// Enrollment ties a student to a course. Student and course attributes
// are denormalized so list screens render without joins.
type Enrollment struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	CourseID     string    `json:"course_id"`
	CourseTitle  string    `json:"course_title"`
	Instructor   string    `json:"instructor"`
	EnrolledAt   time.Time `json:"enrolled_at"` // UTC
	Progress     int       `json:"progress"`    // 0 - 100
	Status       string    `json:"status"`
	LastActivity time.Time `json:"last_activity"` // UTC
}

func (e Enrollment) IsCompleted() bool { return e.Status == StatusCompleted }

type Certificate struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	CourseID   string    `json:"course_id"`
	CourseName string    `json:"course_name"`
	Instructor string    `json:"instructor"`
	IssuedAt   time.Time `json:"issued_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title       string `json:"title" validate:"required"`
	Instructor  string `json:"instructor" validate:"required"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Category    string `json:"category" validate:"required"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Instructor = core.CleanString(nc.Instructor)
	nc.Category = core.CleanString(nc.Category)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an
// existing Course. Empty fields keep their current values.
type UpdateCourse struct {
	Title       string `json:"title"`
	Instructor  string `json:"instructor"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Category    string `json:"category"`
}

func (uc *UpdateCourse) Validate(orig Course, validate *validator.Validate) error {
	if title := core.CleanString(uc.Title); title != "" {
		uc.Title = title
	} else {
		uc.Title = orig.Title
	}
	if instr := core.CleanString(uc.Instructor); instr != "" {
		uc.Instructor = instr
	} else {
		uc.Instructor = orig.Instructor
	}
	if cat := core.CleanString(uc.Category); cat != "" {
		uc.Category = cat
	} else {
		uc.Category = orig.Category
	}
	if uc.Description == "" {
		uc.Description = orig.Description
	}
	if uc.Duration == "" {
		uc.Duration = orig.Duration
	}
	return validate.Struct(uc)
}

// NewEnrollment is an admin-side enrollment of a student into a course.
type NewEnrollment struct {
	StudentID string `json:"student_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
}

func (ne *NewEnrollment) Validate(validate *validator.Validate) error {
	ne.StudentID = core.CleanString(ne.StudentID)
	ne.CourseID = core.CleanString(ne.CourseID)
	return validate.Struct(ne)
}

// UpdateProgress moves an enrollment's progress; 100 completes it.
type UpdateProgress struct {
	Progress int `json:"progress" validate:"min=0,max=100"`
}

func (up *UpdateProgress) Validate(validate *validator.Validate) error {
	return validate.Struct(up)
}

type CourseFilter struct {
	Search   string `query:"search"` // case-insensitive match on Title, Instructor or Category
	Category string `query:"category"`
}

func (cf *CourseFilter) IsEmpty() bool {
	return cf.Search == "" && cf.Category == ""
}

func (cf *CourseFilter) Clean() {
	cf.Search = core.CleanString(cf.Search)
	cf.Category = core.CleanString(cf.Category)
}

type EnrollmentFilter struct {
	Search   string `query:"search"` // case-insensitive match on StudentName, StudentEmail or CourseTitle
	CourseID string `query:"course_id"`
	Status   string `query:"status"`
}

func (ef *EnrollmentFilter) IsEmpty() bool {
	return ef.Search == "" && ef.CourseID == "" && ef.Status == ""
}

func (ef *EnrollmentFilter) Clean() {
	ef.Search = core.CleanString(ef.Search)
	ef.CourseID = core.CleanString(ef.CourseID)
	ef.Status = core.CleanString(ef.Status)
}

// Ordering is a declarative sort instruction bound from query params.
type Ordering struct {
	Field     string
	Ascending bool
}
