// Package coursestore mirrors jobstore for the training side: the course
// catalog, the user's enrollments, and lesson-derived progress. Enrollment
// follows the same check-then-create discipline as job applications.
package coursestore

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"careerhub/client/internal/api"
	"careerhub/client/internal/notify"
)

var (
	// ErrAlreadyEnrolled rejects a duplicate enrollment for a course the
	// user is already registered in.
	ErrAlreadyEnrolled = errors.New("already enrolled in course")
	// ErrEnrollPending rejects a second enrollment attempt while one is in
	// flight for the same course.
	ErrEnrollPending = errors.New("enrollment already submitting")
)

type Store struct {
	client *api.Client
	center *notify.Center
	log    zerolog.Logger

	mu          sync.Mutex
	courses     []api.Course
	enrollments []api.Enrollment
	submitting  map[string]bool
	loading     bool
	err         error
	// per-operation staleness, catalog and enrollment fetches must not
	// invalidate each other
	coursesGen int
	enrollGen  int
}

func New(client *api.Client, center *notify.Center, log zerolog.Logger) *Store {
	return &Store{
		client:     client,
		center:     center,
		log:        log,
		submitting: make(map[string]bool),
	}
}

func (s *Store) FetchCourses(ctx context.Context) error {
	s.mu.Lock()
	s.coursesGen++
	gen := s.coursesGen
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	courses, err := s.client.ListCourses(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coursesGen != gen {
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.courses = courses
	return nil
}

func (s *Store) FetchEnrollments(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.enrollGen++
	gen := s.enrollGen
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	enrollments, err := s.client.ListUserEnrollments(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enrollGen != gen {
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.enrollments = enrollments
	return nil
}

func (s *Store) Courses() []api.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Course(nil), s.courses...)
}

func (s *Store) Enrollments() []api.Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Enrollment(nil), s.enrollments...)
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Enroll registers the user in a course. The client checks its last-known
// enrollments before writing (the backend enforces uniqueness for real) and
// refuses overlapping submissions for the same course.
func (s *Store) Enroll(ctx context.Context, courseID, userID string) error {
	s.mu.Lock()
	for _, e := range s.enrollments {
		if e.CourseID == courseID && e.UserID == userID {
			s.mu.Unlock()
			return ErrAlreadyEnrolled
		}
	}
	if s.submitting[courseID] {
		s.mu.Unlock()
		return ErrEnrollPending
	}
	s.submitting[courseID] = true
	s.mu.Unlock()

	enrollment, err := s.client.CreateEnrollment(ctx, api.EnrollmentInput{
		SubmissionID: ksuid.New().String(),
		CourseID:     courseID,
		UserID:       userID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.submitting, courseID)
	if err != nil {
		s.center.Error("Failed to enroll: " + err.Error())
		return err
	}

	// confirm-then-update: the local list changes only after the backend
	// accepted the write
	s.enrollments = append(s.enrollments, enrollment)
	s.center.Success("Enrolled successfully!")
	return nil
}

// Progress is the completed-lesson ratio as a percentage, rounded to whole
// percent. Zero lessons means zero progress.
func Progress(completed, total int) float64 {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return math.Round(float64(completed) / float64(total) * 100)
}

// CompleteLesson advances an enrollment by one completed lesson and pushes
// the derived percentage to the backend before updating the local record.
func (s *Store) CompleteLesson(ctx context.Context, enrollmentID string, totalLessons int) error {
	s.mu.Lock()
	var target *api.Enrollment
	for i := range s.enrollments {
		if s.enrollments[i].EnrollmentID == enrollmentID {
			target = &s.enrollments[i]
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return errors.New("unknown enrollment")
	}
	completed := target.CompletedLessons + 1
	if completed > totalLessons {
		completed = totalLessons
	}
	progress := Progress(completed, totalLessons)
	s.mu.Unlock()

	if err := s.client.UpdateEnrollmentProgress(ctx, enrollmentID, completed, progress); err != nil {
		s.center.Error("Failed to record progress: " + err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.enrollments {
		if s.enrollments[i].EnrollmentID == enrollmentID {
			s.enrollments[i].CompletedLessons = completed
			s.enrollments[i].Progress = progress
			break
		}
	}
	return nil
}
