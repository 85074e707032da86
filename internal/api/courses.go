package api

import (
	"context"
	"net/http"
)

func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.getData(ctx, "/courses/all", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) GetCourse(ctx context.Context, courseID string) (Course, error) {
	var course Course
	if err := c.getData(ctx, "/courses/"+courseID, &course); err != nil {
		return Course{}, err
	}
	return course, nil
}

type CourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (c *Client) CreateCourse(ctx context.Context, input CourseInput) (Course, error) {
	var course Course
	if err := c.postData(ctx, "/courses", input, &course); err != nil {
		return Course{}, err
	}
	return course, nil
}

func (c *Client) DeleteCourse(ctx context.Context, courseID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/courses/"+courseID, nil, nil)
}

func (c *Client) ListCourseModules(ctx context.Context, courseID string) ([]Module, error) {
	var modules []Module
	if err := c.getData(ctx, "/modules/course/"+courseID, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

func (c *Client) ListModuleLessons(ctx context.Context, moduleID string) ([]Lesson, error) {
	var lessons []Lesson
	if err := c.getData(ctx, "/lessons/module/"+moduleID, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

type EnrollmentInput struct {
	SubmissionID string `json:"submissionId"`
	CourseID     string `json:"courseId"`
	UserID       string `json:"userId"`
}

func (c *Client) CreateEnrollment(ctx context.Context, input EnrollmentInput) (Enrollment, error) {
	var enrollment Enrollment
	if err := c.postData(ctx, "/enroll", input, &enrollment); err != nil {
		return Enrollment{}, err
	}
	return enrollment, nil
}

func (c *Client) ListUserEnrollments(ctx context.Context, userID string) ([]Enrollment, error) {
	var enrollments []Enrollment
	if err := c.getData(ctx, "/enroll/user/"+userID, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

type progressRequest struct {
	CompletedLessons int     `json:"completedLessons"`
	Progress         float64 `json:"progress"`
}

func (c *Client) UpdateEnrollmentProgress(ctx context.Context, enrollmentID string, completed int, progress float64) error {
	return c.doJSON(ctx, http.MethodPut, "/enroll/"+enrollmentID+"/progress", progressRequest{CompletedLessons: completed, Progress: progress}, nil)
}

// ListCourseStudents is the trainer view of who enrolled in a course.
func (c *Client) ListCourseStudents(ctx context.Context, courseID string) ([]Enrollment, error) {
	var enrollments []Enrollment
	if err := c.getData(ctx, "/enroll/course/"+courseID, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}
