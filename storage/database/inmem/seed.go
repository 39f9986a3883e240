package inmemdb

import (
	"time"

	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/identity"
)

// SeedDemo loads the demo dataset: the two well-known identities plus a
// small course catalog with a few enrollments and one earned
// certificate for the demo student.
func SeedDemo(db *DB) error {
	AddIdentities(db,
		identity.Identity{ID: "1", Name: "Admin User", Email: "admin@example.com", Secret: "admin123", Role: identity.RoleAdministrator},
		identity.Identity{ID: "2", Name: "Test User", Email: "user@example.com", Secret: "user123", Role: identity.RoleStandard},
	)

	courses := NewCourseRepository(db)
	enrollments := NewEnrollmentRepository(db)
	certificates := NewCertificateRepository(db)

	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	seedCourses := []catalog.Course{
		{
			ID: "1", Title: "Introduction to React", Instructor: "John Smith",
			Description: "Learn the fundamentals of React including components, state, and props.",
			Duration:    "6 hours", Category: "Web Development",
			CreatedAt: date(2023, time.January, 10), UpdatedAt: date(2023, time.January, 10),
		},
		{
			ID: "2", Title: "Advanced JavaScript", Instructor: "Sarah Johnson",
			Description: "Deep dive into closures, prototypes, async patterns and the event loop.",
			Duration:    "8 hours", Category: "Programming",
			CreatedAt: date(2023, time.February, 1), UpdatedAt: date(2023, time.February, 1),
		},
		{
			ID: "3", Title: "UX Design Fundamentals", Instructor: "Michael Chen",
			Description: "User research, wireframing and prototyping for product designers.",
			Duration:    "5 hours", Category: "Design",
			CreatedAt: date(2023, time.February, 20), UpdatedAt: date(2023, time.February, 20),
		},
		{
			ID: "4", Title: "Data Science with Python", Instructor: "Lisa Wang",
			Description: "Pandas, NumPy and visualization for practical data analysis.",
			Duration:    "10 hours", Category: "Data Science",
			CreatedAt: date(2023, time.March, 1), UpdatedAt: date(2023, time.March, 1),
		},
	}
	for _, crs := range seedCourses {
		if _, err := courses.CreateCourse(crs); err != nil {
			return err
		}
	}

	seedEnrollments := []catalog.Enrollment{
		{
			ID: "1", StudentID: "2", StudentName: "Test User", StudentEmail: "user@example.com",
			CourseID: "1", CourseTitle: "Introduction to React", Instructor: "John Smith",
			EnrolledAt: date(2023, time.January, 18), Progress: 100, Status: catalog.StatusCompleted,
			LastActivity: date(2023, time.March, 15),
		},
		{
			ID: "2", StudentID: "2", StudentName: "Test User", StudentEmail: "user@example.com",
			CourseID: "2", CourseTitle: "Advanced JavaScript", Instructor: "Sarah Johnson",
			EnrolledAt: date(2023, time.March, 5), Progress: 20, Status: catalog.StatusInProgress,
			LastActivity: date(2023, time.April, 2),
		},
		{
			ID: "3", StudentID: "3", StudentName: "Emily Johnson", StudentEmail: "emily.johnson@example.com",
			CourseID: "1", CourseTitle: "Introduction to React", Instructor: "John Smith",
			EnrolledAt: date(2023, time.February, 10), Progress: 45, Status: catalog.StatusInProgress,
			LastActivity: date(2023, time.April, 7),
		},
		{
			ID: "4", StudentID: "4", StudentName: "Michael Williams", StudentEmail: "michael.williams@example.com",
			CourseID: "3", CourseTitle: "UX Design Fundamentals", Instructor: "Michael Chen",
			EnrolledAt: date(2023, time.March, 22), Progress: 60, Status: catalog.StatusInProgress,
			LastActivity: date(2023, time.April, 10),
		},
	}
	for _, enr := range seedEnrollments {
		if _, err := enrollments.CreateEnrollment(enr); err != nil {
			return err
		}
	}

	_, err := certificates.CreateCertificate(catalog.Certificate{
		ID: "1", StudentID: "2", CourseID: "1",
		CourseName: "Introduction to React", Instructor: "John Smith",
		IssuedAt: date(2023, time.March, 15),
	})
	return err
}
