package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("student is already enrolled in this course")
)

type (
	CourseRepository interface {
		CreateCourse(course Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		// FilterCourses applies AND operation on available CourseFilter fields.
		FilterCourses(filter CourseFilter, orderings ...Ordering) ([]Course, error)
		UpdateCourse(course Course) (Course, error)
		DeleteCoursesByID(ids ...string) error
	}

	EnrollmentRepository interface {
		CreateEnrollment(enr Enrollment) (Enrollment, error)
		QueryAllEnrollments() ([]Enrollment, error)
		GetEnrollmentByID(id string) (Enrollment, error)
		GetStudentEnrollments(studentID string) ([]Enrollment, error)
		FilterEnrollments(filter EnrollmentFilter) ([]Enrollment, error)
		UpdateEnrollment(enr Enrollment) (Enrollment, error)
		DeleteEnrollmentsByID(ids ...string) error
	}

	CertificateRepository interface {
		CreateCertificate(cert Certificate) (Certificate, error)
		GetStudentCertificates(studentID string) ([]Certificate, error)
		QueryAllCertificates() ([]Certificate, error)
	}

	Service struct {
		courses      CourseRepository
		enrollments  EnrollmentRepository
		certificates CertificateRepository
	}
)

func NewService(crs CourseRepository, enr EnrollmentRepository, cert CertificateRepository) *Service {
	return &Service{
		courses:      crs,
		enrollments:  enr,
		certificates: cert,
	}
}

// Courses

func (svc *Service) CreateCourse(nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		ID:          uuid.New().String(),
		Title:       nc.Title,
		Instructor:  nc.Instructor,
		Description: nc.Description,
		Duration:    nc.Duration,
		Category:    nc.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.courses.CreateCourse(crs)
}

func (svc *Service) QueryCourses(filter *CourseFilter, orderings ...Ordering) ([]Course, error) {
	return svc.courses.FilterCourses(*filter, orderings...)
}

func (svc *Service) GetCourse(id string) (Course, error) {
	return svc.courses.GetCourseByID(id)
}

func (svc *Service) UpdateCourse(id string, uc UpdateCourse) (Course, error) {
	crs := Course{
		ID:          id,
		Title:       uc.Title,
		Instructor:  uc.Instructor,
		Description: uc.Description,
		Duration:    uc.Duration,
		Category:    uc.Category,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.courses.UpdateCourse(crs)
}

func (svc *Service) DeleteCourses(ids ...string) error {
	return svc.courses.DeleteCoursesByID(ids...)
}

// Enrollments

// EnrollStudent enrolls a student into a course. A student may be
// enrolled at most once per course.
func (svc *Service) EnrollStudent(studentID, studentName, studentEmail, courseID string) (Enrollment, error) {
	crs, err := svc.courses.GetCourseByID(courseID)
	if err != nil {
		return Enrollment{}, err
	}

	existing, err := svc.enrollments.GetStudentEnrollments(studentID)
	if err != nil {
		return Enrollment{}, err
	}
	for _, enr := range existing {
		if enr.CourseID == courseID {
			return Enrollment{}, ErrAlreadyEnrolled
		}
	}

	now := time.Now().UTC()
	enr := Enrollment{
		ID:           uuid.New().String(),
		StudentID:    studentID,
		StudentName:  studentName,
		StudentEmail: studentEmail,
		CourseID:     crs.ID,
		CourseTitle:  crs.Title,
		Instructor:   crs.Instructor,
		EnrolledAt:   now,
		Progress:     0,
		Status:       StatusInProgress,
		LastActivity: now,
	}
	return svc.enrollments.CreateEnrollment(enr)
}

func (svc *Service) QueryEnrollments(filter *EnrollmentFilter) ([]Enrollment, error) {
	return svc.enrollments.FilterEnrollments(*filter)
}

func (svc *Service) GetEnrollment(id string) (Enrollment, error) {
	return svc.enrollments.GetEnrollmentByID(id)
}

// StudentCourses returns a student's enrollments, one per enrolled course.
func (svc *Service) StudentCourses(studentID string) ([]Enrollment, error) {
	return svc.enrollments.GetStudentEnrollments(studentID)
}

// SetProgress updates an enrollment's progress. Reaching 100 marks the
// enrollment Completed and issues the student a certificate for the
// course.
func (svc *Service) SetProgress(id string, progress int) (Enrollment, error) {
	enr, err := svc.enrollments.GetEnrollmentByID(id)
	if err != nil {
		return Enrollment{}, err
	}

	wasCompleted := enr.IsCompleted()
	enr.Progress = progress
	enr.LastActivity = time.Now().UTC()
	if progress >= 100 {
		enr.Status = StatusCompleted
	} else {
		enr.Status = StatusInProgress
	}

	enr, err = svc.enrollments.UpdateEnrollment(enr)
	if err != nil {
		return Enrollment{}, err
	}

	if enr.IsCompleted() && !wasCompleted {
		cert := Certificate{
			ID:         uuid.New().String(),
			StudentID:  enr.StudentID,
			CourseID:   enr.CourseID,
			CourseName: enr.CourseTitle,
			Instructor: enr.Instructor,
			IssuedAt:   time.Now().UTC(),
		}
		if _, err = svc.certificates.CreateCertificate(cert); err != nil {
			return Enrollment{}, err
		}
	}
	return enr, nil
}

func (svc *Service) DeleteEnrollments(ids ...string) error {
	return svc.enrollments.DeleteEnrollmentsByID(ids...)
}

// Certificates

func (svc *Service) StudentCertificates(studentID string) ([]Certificate, error) {
	return svc.certificates.GetStudentCertificates(studentID)
}
