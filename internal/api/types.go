package api

// Wire models mirror the backend's JSON. Fields the client never reads are
// left out.

type Profile struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	ResumeURL      string `json:"resumeUrl"`
	ProfilePicture string `json:"profilePicture"`
}

type Resume struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	ResumeURL string `json:"resumeUrl"`
}

type Job struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Location           string  `json:"location"`
	Salary             float64 `json:"salary"`
	Industry           string  `json:"industry"`
	SkillsRequired     string  `json:"skillsRequired"`
	ExperienceRequired string  `json:"experienceRequired"`
	Description        string  `json:"description"`
	Company            string  `json:"company"`
	// PublishDate is a calendar date in YYYY-MM-DD form.
	PublishDate string `json:"publishDate"`
	Active      bool   `json:"active"`
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationApproved ApplicationStatus = "Approved"
	ApplicationRejected ApplicationStatus = "Rejected"
)

type Application struct {
	ApplicationID string            `json:"applicationId"`
	JobID         string            `json:"jobId"`
	ApplicantID   string            `json:"applicantId"`
	Status        ApplicationStatus `json:"applicationStatus"`
	AppliedDate   string            `json:"appliedDate"`
	ResumeURL     string            `json:"resumeUrl"`
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
