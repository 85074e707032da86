package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	var user *User
	for _, u := range s.users {
		if strings.EqualFold(u.Email, req.Email) {
			user = u
			break
		}
	}
	s.mu.Unlock()

	if user == nil || !verifyPassword(req.Password, user.passwordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := s.SignToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	role := c.PostForm("role")
	if name == "" || email == "" || password == "" || role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email, password and role are required"})
		return
	}

	hash, err := hashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "hash password"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
			return
		}
	}
	id := uuid.NewString()
	s.users[id] = &User{ID: id, Name: name, Email: email, passwordHash: hash, Role: role}
	c.JSON(http.StatusCreated, gin.H{"message": "registered"})
}

func (s *Server) userJSON(u *User) gin.H {
	s.mu.Lock()
	defer s.mu.Unlock()
	resumeURL := u.ResumeURL
	if urls := s.resumes[u.ID]; len(urls) > 0 {
		resumeURL = urls[0]
	}
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"role":      u.Role,
		"resumeUrl": resumeURL,
	}
}

func (s *Server) getUser(c *gin.Context) {
	s.mu.Lock()
	user, ok := s.users[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, s.userJSON(user))
}

func (s *Server) updateUser(c *gin.Context) {
	s.mu.Lock()
	user, ok := s.users[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	// multipart form, matching the real endpoint's shape
	s.mu.Lock()
	if name := c.PostForm("name"); name != "" {
		user.Name = name
	}
	if email := c.PostForm("email"); email != "" {
		user.Email = email
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, s.userJSON(user))
}

func (s *Server) listResumes(c *gin.Context) {
	s.mu.Lock()
	urls := s.resumes[c.Param("id")]
	s.mu.Unlock()

	out := make([]gin.H, 0, len(urls))
	for i, u := range urls {
		out = append(out, gin.H{"id": uuid.NewString(), "userId": c.Param("id"), "resumeUrl": u, "rank": i})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) uploadResume(c *gin.Context) {
	userID := c.PostForm("userId")
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file part required"})
		return
	}

	url := "https://files.test/resumes/" + uuid.NewString() + "/" + file.Filename

	s.mu.Lock()
	s.resumes[userID] = append([]string{url}, s.resumes[userID]...)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"id": uuid.NewString(), "userId": userID, "resumeUrl": url}})
}

func (s *Server) listJobs(c *gin.Context) {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": jobs})
}

func (s *Server) getJob(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range s.jobs {
		if job.ID == c.Param("id") {
			c.JSON(http.StatusOK, gin.H{"data": job})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
}

func (s *Server) matchJobs(c *gin.Context) {
	var req struct {
		ResumeURL string `json:"resumeUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ResumeURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resumeUrl required"})
		return
	}

	// crude match: every active job is a suggestion
	s.mu.Lock()
	var matched []Job
	for _, job := range s.jobs {
		if job.Active {
			matched = append(matched, job)
		}
	}
	s.mu.Unlock()

	if matched == nil {
		// mirror the real backend's habit of replying with an object when
		// nothing matched
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "no matches"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": matched})
}

type jobInput struct {
	Title              string  `json:"title"`
	Location           string  `json:"location"`
	Salary             float64 `json:"salary"`
	Industry           string  `json:"industry"`
	SkillsRequired     string  `json:"skillsRequired"`
	ExperienceRequired string  `json:"experienceRequired"`
	Description        string  `json:"description"`
	Company            string  `json:"company"`
}

func (s *Server) createJob(c *gin.Context) {
	var req jobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := Job{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Location:    req.Location,
		Salary:      req.Salary,
		Industry:    req.Industry,
		Company:     req.Company,
		PublishDate: time.Now().Format("2006-01-02"),
		// new postings start unpublished; the status endpoint flips them
		Active: false,
	}
	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"data": job})
}

func (s *Server) updateJob(c *gin.Context) {
	var req jobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == c.Param("id") {
			s.jobs[i].Title = req.Title
			s.jobs[i].Location = req.Location
			s.jobs[i].Salary = req.Salary
			s.jobs[i].Industry = req.Industry
			s.jobs[i].Company = req.Company
			c.JSON(http.StatusOK, gin.H{"data": s.jobs[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
}

func (s *Server) deleteJob(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == c.Param("id") {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			c.Status(http.StatusOK)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
}

func (s *Server) setJobStatus(c *gin.Context) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == c.Param("id") {
			s.jobs[i].Active = req.Active
			c.Status(http.StatusOK)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
}

type companyInput struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

func (s *Server) listEmployerCompanies(c *gin.Context) {
	s.mu.Lock()
	var companies []Company
	for _, company := range s.companies {
		if company.EmployerID == c.Param("id") {
			companies = append(companies, company)
		}
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": companies})
}

func (s *Server) createCompany(c *gin.Context) {
	var req companyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company := Company{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Location:    req.Location,
		Industry:    req.Industry,
		Description: req.Description,
		EmployerID:  c.GetString("user_id"),
	}
	s.mu.Lock()
	s.companies = append(s.companies, company)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"data": company})
}

func (s *Server) updateCompany(c *gin.Context) {
	var req companyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.companies {
		if s.companies[i].ID == c.Param("id") {
			s.companies[i].Name = req.Name
			s.companies[i].Location = req.Location
			s.companies[i].Industry = req.Industry
			s.companies[i].Description = req.Description
			c.JSON(http.StatusOK, gin.H{"data": s.companies[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
}

func (s *Server) deleteCompany(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.companies {
		if s.companies[i].ID == c.Param("id") {
			s.companies = append(s.companies[:i], s.companies[i+1:]...)
			c.Status(http.StatusOK)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
}

func (s *Server) listApplications(c *gin.Context) {
	s.mu.Lock()
	apps := append([]Application(nil), s.applications...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": apps})
}

func (s *Server) listUserApplications(c *gin.Context) {
	s.mu.Lock()
	var apps []Application
	for _, app := range s.applications {
		if app.ApplicantID == c.Param("id") {
			apps = append(apps, app)
		}
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": apps})
}

func (s *Server) createApplication(c *gin.Context) {
	var req struct {
		JobID       string `json:"jobId" binding:"required"`
		ApplicantID string `json:"applicantId" binding:"required"`
		ResumeURL   string `json:"resumeUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, app := range s.applications {
		if app.JobID == req.JobID && app.ApplicantID == req.ApplicantID {
			c.JSON(http.StatusConflict, gin.H{"error": "already applied"})
			return
		}
	}

	app := Application{
		ApplicationID: uuid.NewString(),
		JobID:         req.JobID,
		ApplicantID:   req.ApplicantID,
		Status:        "Pending",
		ResumeURL:     req.ResumeURL,
	}
	s.applications = append(s.applications, app)
	c.JSON(http.StatusCreated, gin.H{"data": app})
}

func (s *Server) setApplicationStatus(c *gin.Context) {
	var req struct {
		Status string `json:"applicationStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.applications {
		if s.applications[i].ApplicationID == c.Param("id") {
			s.applications[i].Status = req.Status
			c.Status(http.StatusOK)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
}

func (s *Server) deleteApplication(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.applications {
		if s.applications[i].ApplicationID == c.Param("id") {
			s.applications = append(s.applications[:i], s.applications[i+1:]...)
			c.Status(http.StatusOK)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
}

func (s *Server) listCourses(c *gin.Context) {
	s.mu.Lock()
	courses := append([]Course(nil), s.courses...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": courses})
}

func (s *Server) getCourse(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, course := range s.courses {
		if course.ID == c.Param("id") {
			c.JSON(http.StatusOK, gin.H{"data": course})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
}

func (s *Server) createCourse(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course := Course{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		TrainerID:   c.GetString("user_id"),
	}
	s.mu.Lock()
	s.courses = append(s.courses, course)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"data": course})
}

func (s *Server) deleteCourse(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.courses {
		if s.courses[i].ID == c.Param("id") {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			c.Status(http.StatusOK)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
}

func (s *Server) listCourseModules(c *gin.Context) {
	s.mu.Lock()
	var modules []Module
	for _, m := range s.modules {
		if m.CourseID == c.Param("id") {
			modules = append(modules, m)
		}
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": modules})
}

func (s *Server) listModuleLessons(c *gin.Context) {
	s.mu.Lock()
	var lessons []Lesson
	for _, l := range s.lessons {
		if l.ModuleID == c.Param("id") {
			lessons = append(lessons, l)
		}
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": lessons})
}

func (s *Server) listCourseEnrollments(c *gin.Context) {
	s.mu.Lock()
	var enrollments []Enrollment
	for _, e := range s.enrollments {
		if e.CourseID == c.Param("id") {
			enrollments = append(enrollments, e)
		}
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": enrollments})
}

func (s *Server) listUserEnrollments(c *gin.Context) {
	s.mu.Lock()
	var enrollments []Enrollment
	for _, e := range s.enrollments {
		if e.UserID == c.Param("id") {
			enrollments = append(enrollments, e)
		}
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": enrollments})
}

func (s *Server) createEnrollment(c *gin.Context) {
	var req struct {
		CourseID string `json:"courseId" binding:"required"`
		UserID   string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.enrollments {
		if e.CourseID == req.CourseID && e.UserID == req.UserID {
			c.JSON(http.StatusConflict, gin.H{"error": "already enrolled"})
			return
		}
	}

	enrollment := Enrollment{
		EnrollmentID: uuid.NewString(),
		CourseID:     req.CourseID,
		UserID:       req.UserID,
	}
	s.enrollments = append(s.enrollments, enrollment)
	c.JSON(http.StatusCreated, gin.H{"data": enrollment})
}

func (s *Server) updateProgress(c *gin.Context) {
	var req struct {
		CompletedLessons int     `json:"completedLessons"`
		Progress         float64 `json:"progress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.enrollments {
		if s.enrollments[i].EnrollmentID == c.Param("id") {
			s.enrollments[i].CompletedLessons = req.CompletedLessons
			s.enrollments[i].Progress = req.Progress
			c.Status(http.StatusOK)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "enrollment not found"})
}
