package catalog

import (
	"sort"
	"time"
)

type (
	TrendPoint struct {
		Month       string `json:"month"` // eg. "Jan 2023"
		Enrollments int    `json:"enrollments"`
	}

	CategoryCount struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	}

	CourseCompletion struct {
		CourseID    string `json:"course_id"`
		Title       string `json:"title"`
		Enrollments int    `json:"enrollments"`
		Completed   int    `json:"completed"`
		AvgProgress int    `json:"avg_progress"`
	}

	StudentRank struct {
		StudentID   string `json:"student_id"`
		Name        string `json:"name"`
		Enrollments int    `json:"enrollments"`
		Completed   int    `json:"completed"`
		AvgProgress int    `json:"avg_progress"`
	}

	Report struct {
		EnrollmentTrend      []TrendPoint       `json:"enrollment_trend"`
		CategoryDistribution []CategoryCount    `json:"category_distribution"`
		CourseCompletion     []CourseCompletion `json:"course_completion"`
		TopStudents          []StudentRank      `json:"top_students"`
	}

	DashboardStats struct {
		Courses        int `json:"courses"`
		Students       int `json:"students"`
		Enrollments    int `json:"enrollments"`
		Certificates   int `json:"certificates"`
		CompletionRate int `json:"completion_rate"` // % of enrollments completed
	}
)

// Reports computes the admin report aggregations from live enrollment
// data rather than serving canned figures.
func (svc *Service) Reports() (Report, error) {
	enrollments, err := svc.enrollments.QueryAllEnrollments()
	if err != nil {
		return Report{}, err
	}
	courses, err := svc.courses.QueryAllCourses()
	if err != nil {
		return Report{}, err
	}

	return Report{
		EnrollmentTrend:      enrollmentTrend(enrollments),
		CategoryDistribution: categoryDistribution(enrollments, courses),
		CourseCompletion:     courseCompletion(enrollments, courses),
		TopStudents:          topStudents(enrollments),
	}, nil
}

func (svc *Service) Dashboard() (DashboardStats, error) {
	enrollments, err := svc.enrollments.QueryAllEnrollments()
	if err != nil {
		return DashboardStats{}, err
	}
	courses, err := svc.courses.QueryAllCourses()
	if err != nil {
		return DashboardStats{}, err
	}
	certs, err := svc.certificates.QueryAllCertificates()
	if err != nil {
		return DashboardStats{}, err
	}

	students := make(map[string]struct{})
	var completed int
	for _, enr := range enrollments {
		students[enr.StudentID] = struct{}{}
		if enr.IsCompleted() {
			completed++
		}
	}

	stats := DashboardStats{
		Courses:      len(courses),
		Students:     len(students),
		Enrollments:  len(enrollments),
		Certificates: len(certs),
	}
	if len(enrollments) > 0 {
		stats.CompletionRate = (completed * 100) / len(enrollments)
	}
	return stats, nil
}

func enrollmentTrend(enrollments []Enrollment) []TrendPoint {
	counts := make(map[string]int)
	for _, enr := range enrollments {
		counts[enr.EnrolledAt.Format("Jan 2006")]++
	}

	points := make([]TrendPoint, 0, len(counts))
	for month, n := range counts {
		points = append(points, TrendPoint{Month: month, Enrollments: n})
	}
	sort.Slice(points, func(i, j int) bool {
		ti, _ := time.Parse("Jan 2006", points[i].Month)
		tj, _ := time.Parse("Jan 2006", points[j].Month)
		return ti.Before(tj)
	})
	return points
}

func categoryDistribution(enrollments []Enrollment, courses []Course) []CategoryCount {
	categories := make(map[string]string, len(courses)) // courseID -> category
	for _, crs := range courses {
		categories[crs.ID] = crs.Category
	}

	counts := make(map[string]int)
	for _, enr := range enrollments {
		if cat, ok := categories[enr.CourseID]; ok {
			counts[cat]++
		}
	}

	dist := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		dist = append(dist, CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Category < dist[j].Category
	})
	return dist
}

func courseCompletion(enrollments []Enrollment, courses []Course) []CourseCompletion {
	byCourse := make(map[string]*CourseCompletion, len(courses))
	order := make([]string, 0, len(courses))
	for _, crs := range courses {
		byCourse[crs.ID] = &CourseCompletion{CourseID: crs.ID, Title: crs.Title}
		order = append(order, crs.ID)
	}

	progress := make(map[string]int)
	for _, enr := range enrollments {
		cc, ok := byCourse[enr.CourseID]
		if !ok {
			continue
		}
		cc.Enrollments++
		progress[enr.CourseID] += enr.Progress
		if enr.IsCompleted() {
			cc.Completed++
		}
	}

	stats := make([]CourseCompletion, 0, len(order))
	for _, id := range order {
		cc := byCourse[id]
		if cc.Enrollments > 0 {
			cc.AvgProgress = progress[id] / cc.Enrollments
		}
		stats = append(stats, *cc)
	}
	return stats
}

func topStudents(enrollments []Enrollment) []StudentRank {
	byStudent := make(map[string]*StudentRank)
	progress := make(map[string]int)
	for _, enr := range enrollments {
		sr, ok := byStudent[enr.StudentID]
		if !ok {
			sr = &StudentRank{StudentID: enr.StudentID, Name: enr.StudentName}
			byStudent[enr.StudentID] = sr
		}
		sr.Enrollments++
		progress[enr.StudentID] += enr.Progress
		if enr.IsCompleted() {
			sr.Completed++
		}
	}

	ranks := make([]StudentRank, 0, len(byStudent))
	for id, sr := range byStudent {
		sr.AvgProgress = progress[id] / sr.Enrollments
		ranks = append(ranks, *sr)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Completed != ranks[j].Completed {
			return ranks[i].Completed > ranks[j].Completed
		}
		if ranks[i].AvgProgress != ranks[j].AvgProgress {
			return ranks[i].AvgProgress > ranks[j].AvgProgress
		}
		return ranks[i].Name < ranks[j].Name
	})
	return ranks
}
