// Package mockapi is a gin-backed stand-in for the marketplace backend,
// used by integration tests. It implements the contract subset the client
// consumes: credential login with signed tokens, profiles, jobs,
// applications, resumes, courses and enrollments, all in memory.
package mockapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type User struct {
	ID           string
	Name         string
	Email        string
	passwordHash []byte
	Role         string
	ResumeURL    string
}

type Job struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Salary      float64 `json:"salary"`
	Industry    string  `json:"industry"`
	Company     string  `json:"company"`
	PublishDate string  `json:"publishDate"`
	Active      bool    `json:"active"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
	JobID         string `json:"jobId"`
	ApplicantID   string `json:"applicantId"`
	Status        string `json:"applicationStatus"`
	ResumeURL     string `json:"resumeUrl"`
}

type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
	EmployerID  string `json:"employerId"`
}

type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TrainerID   string `json:"trainerId"`
	Published   bool   `json:"published"`
}

type Module struct {
	ID       string `json:"id"`
	CourseID string `json:"courseId"`
	Title    string `json:"title"`
}

type Lesson struct {
	ID       string `json:"id"`
	ModuleID string `json:"moduleId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	MediaURL string `json:"mediaUrl"`
}

type Enrollment struct {
	EnrollmentID     string  `json:"enrollmentId"`
	CourseID         string  `json:"courseId"`
	UserID           string  `json:"userId"`
	Progress         float64 `json:"progress"`
	CompletedLessons int     `json:"completedLessons"`
}

type Server struct {
	secret string
	srv    *httptest.Server

	mu           sync.Mutex
	users        map[string]*User // by id
	jobs         []Job
	applications []Application
	companies    []Company
	courses      []Course
	modules      []Module
	lessons      []Lesson
	enrollments  []Enrollment
	resumes      map[string][]string // userID -> resume URLs, newest first
}

// New starts the fake backend on a loopback listener. Close it when done.
func New(secret string) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		secret:  secret,
		users:   make(map[string]*User),
		resumes: make(map[string][]string),
	}

	engine := gin.New()
	s.routes(engine)
	s.srv = httptest.NewServer(engine)
	return s
}

func (s *Server) URL() string { return s.srv.URL }

func (s *Server) Close() { s.srv.Close() }

// AddUser seeds a login-able account and returns its id.
func (s *Server) AddUser(name, email, password, role string) string {
	hash, err := hashPassword(password)
	if err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.users[id] = &User{ID: id, Name: name, Email: email, passwordHash: hash, Role: role}
	return id
}

// AddJob seeds a posting and returns its id.
func (s *Server) AddJob(job Job) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.PublishDate == "" {
		job.PublishDate = time.Now().Format("2006-01-02")
	}
	s.jobs = append(s.jobs, job)
	return job.ID
}

// AddCourse seeds a course and returns its id.
func (s *Server) AddCourse(course Course) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	s.courses = append(s.courses, course)
	return course.ID
}

// AddModule seeds a course module and returns its id.
func (s *Server) AddModule(courseID, title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.modules = append(s.modules, Module{ID: id, CourseID: courseID, Title: title})
	return id
}

// AddLesson seeds a lesson under a module and returns its id.
func (s *Server) AddLesson(moduleID, title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.lessons = append(s.lessons, Lesson{ID: id, ModuleID: moduleID, Title: title})
	return id
}

// SignToken issues a token exactly as the login endpoint would.
func (s *Server) SignToken(userID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

func (s *Server) routes(engine *gin.Engine) {
	engine.POST("/auth/login", s.login)
	engine.POST("/auth/register", s.register)

	authed := engine.Group("/", s.requireToken())
	authed.GET("/auth/user/:id", s.getUser)
	authed.PUT("/auth/user/:id", s.updateUser)

	authed.GET("/resumes/user/:id", s.listResumes)
	authed.POST("/resumes", s.uploadResume)

	authed.GET("/jobs/all", s.listJobs)
	authed.GET("/jobs/:id", s.getJob)
	authed.POST("/jobs/match-jobs", s.matchJobs)
	authed.POST("/jobs", s.createJob)
	authed.PUT("/jobs/:id", s.updateJob)
	authed.DELETE("/jobs/:id", s.deleteJob)
	authed.PATCH("/jobs/:id/status", s.setJobStatus)

	authed.GET("/companies/user/:id", s.listEmployerCompanies)
	authed.POST("/companies", s.createCompany)
	authed.PUT("/companies/:id", s.updateCompany)
	authed.DELETE("/companies/:id", s.deleteCompany)

	authed.GET("/applications", s.listApplications)
	authed.GET("/applications/user/:id", s.listUserApplications)
	authed.POST("/applications/upload", s.createApplication)
	authed.PUT("/applications/:id/status", s.setApplicationStatus)
	authed.DELETE("/applications/:id", s.deleteApplication)

	authed.GET("/courses/all", s.listCourses)
	authed.GET("/courses/:id", s.getCourse)
	authed.POST("/courses", s.createCourse)
	authed.DELETE("/courses/:id", s.deleteCourse)
	authed.GET("/modules/course/:id", s.listCourseModules)
	authed.GET("/lessons/module/:id", s.listModuleLessons)

	authed.GET("/enroll/user/:id", s.listUserEnrollments)
	authed.GET("/enroll/course/:id", s.listCourseEnrollments)
	authed.POST("/enroll", s.createEnrollment)
	authed.PUT("/enroll/:id/progress", s.updateProgress)
}

func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims := token.Claims.(jwt.MapClaims)
		id, _ := claims["id"].(string)
		c.Set("user_id", id)
		c.Next()
	}
}
