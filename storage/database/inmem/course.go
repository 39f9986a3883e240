package inmemdb

import (
	"sort"
	"strings"

	"github.com/trezcool/elimu/core/catalog"
)

type courseRepository struct {
	db *courseTable
}

func NewCourseRepository(db *DB) catalog.CourseRepository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) query() []catalog.Course {
	courses := make([]catalog.Course, 0, len(repo.db.table))
	for _, crs := range repo.db.table {
		courses = append(courses, *crs)
	}
	return courses
}

func (repo *courseRepository) CreateCourse(crs catalog.Course) (catalog.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.table[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses() ([]catalog.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := repo.query()
	applyCourseOrderings(courses, nil)
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(id string) (catalog.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if crs, ok := repo.db.table[id]; ok {
		return *crs, nil
	}
	return catalog.Course{}, catalog.ErrCourseNotFound
}

func (repo *courseRepository) FilterCourses(filter catalog.CourseFilter, orderings ...catalog.Ordering) ([]catalog.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]catalog.Course, 0)
	search := strings.ToLower(filter.Search)
	for _, crs := range repo.query() {
		if filter.Category != "" && crs.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(crs.Title), search) &&
			!strings.Contains(strings.ToLower(crs.Instructor), search) &&
			!strings.Contains(strings.ToLower(crs.Category), search) {
			continue
		}
		courses = append(courses, crs)
	}
	applyCourseOrderings(courses, orderings)
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(crs catalog.Course) (catalog.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[crs.ID]
	if !ok {
		return catalog.Course{}, catalog.ErrCourseNotFound
	}
	orig.Title = crs.Title
	orig.Instructor = crs.Instructor
	orig.Description = crs.Description
	orig.Duration = crs.Duration
	orig.Category = crs.Category
	orig.UpdatedAt = crs.UpdatedAt
	return *orig, nil
}

func (repo *courseRepository) DeleteCoursesByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

// applyCourseOrderings sorts in place; default ordering is creation time.
func applyCourseOrderings(courses []catalog.Course, orderings []catalog.Ordering) {
	if len(orderings) == 0 {
		sort.Slice(courses, func(i, j int) bool { return courses[i].CreatedAt.Before(courses[j].CreatedAt) })
		return
	}

	sort.Slice(courses, func(i, j int) bool {
		for _, ord := range orderings {
			var less, eq bool
			switch ord.Field {
			case "title":
				less, eq = courses[i].Title < courses[j].Title, courses[i].Title == courses[j].Title
			case "instructor":
				less, eq = courses[i].Instructor < courses[j].Instructor, courses[i].Instructor == courses[j].Instructor
			case "category":
				less, eq = courses[i].Category < courses[j].Category, courses[i].Category == courses[j].Category
			case "created_at":
				less, eq = courses[i].CreatedAt.Before(courses[j].CreatedAt), courses[i].CreatedAt.Equal(courses[j].CreatedAt)
			default:
				continue
			}
			if eq {
				continue
			}
			if ord.Ascending {
				return less
			}
			return !less
		}
		return false
	})
}
