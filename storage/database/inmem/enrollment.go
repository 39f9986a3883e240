package inmemdb

import (
	"sort"
	"strings"

	"github.com/trezcool/elimu/core/catalog"
)

type enrollmentRepository struct {
	db *enrollmentTable
}

func NewEnrollmentRepository(db *DB) catalog.EnrollmentRepository {
	return &enrollmentRepository{db: db.enrollment}
}

func (repo *enrollmentRepository) query() []catalog.Enrollment {
	enrollments := make([]catalog.Enrollment, 0, len(repo.db.table))
	for _, enr := range repo.db.table {
		enrollments = append(enrollments, *enr)
	}
	sort.Slice(enrollments, func(i, j int) bool {
		return enrollments[i].EnrolledAt.Before(enrollments[j].EnrolledAt)
	})
	return enrollments
}

func (repo *enrollmentRepository) CreateEnrollment(enr catalog.Enrollment) (catalog.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.table[enr.ID] = &enr
	return enr, nil
}

func (repo *enrollmentRepository) QueryAllEnrollments() ([]catalog.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *enrollmentRepository) GetEnrollmentByID(id string) (catalog.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if enr, ok := repo.db.table[id]; ok {
		return *enr, nil
	}
	return catalog.Enrollment{}, catalog.ErrEnrollmentNotFound
}

func (repo *enrollmentRepository) GetStudentEnrollments(studentID string) ([]catalog.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	enrollments := make([]catalog.Enrollment, 0)
	for _, enr := range repo.query() {
		if enr.StudentID == studentID {
			enrollments = append(enrollments, enr)
		}
	}
	return enrollments, nil
}

func (repo *enrollmentRepository) FilterEnrollments(filter catalog.EnrollmentFilter) ([]catalog.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	enrollments := make([]catalog.Enrollment, 0)
	search := strings.ToLower(filter.Search)
	for _, enr := range repo.query() {
		if filter.CourseID != "" && enr.CourseID != filter.CourseID {
			continue
		}
		if filter.Status != "" && enr.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(enr.StudentName), search) &&
			!strings.Contains(strings.ToLower(enr.StudentEmail), search) &&
			!strings.Contains(strings.ToLower(enr.CourseTitle), search) {
			continue
		}
		enrollments = append(enrollments, enr)
	}
	return enrollments, nil
}

func (repo *enrollmentRepository) UpdateEnrollment(enr catalog.Enrollment) (catalog.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[enr.ID]
	if !ok {
		return catalog.Enrollment{}, catalog.ErrEnrollmentNotFound
	}
	orig.Progress = enr.Progress
	orig.Status = enr.Status
	orig.LastActivity = enr.LastActivity
	return *orig, nil
}

func (repo *enrollmentRepository) DeleteEnrollmentsByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
