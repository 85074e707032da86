// Command careerhub is the terminal front-end for the marketplace: job
// seekers browse and apply, employers manage vacancies and review
// applications, trainers manage courses. Role-gated commands consult the
// route guard exactly as the navigation layer would.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"careerhub/client/internal/api"
	"careerhub/client/internal/appstate"
	"careerhub/client/internal/config"
	"careerhub/client/internal/coursestore"
	"careerhub/client/internal/jobstore"
	"careerhub/client/internal/keystore"
	"careerhub/client/internal/log"
	"careerhub/client/internal/notify"
	"careerhub/client/internal/pagination"
	"careerhub/client/internal/routeguard"
	"careerhub/client/internal/session"
	"careerhub/client/internal/token"
)

func main() {
	root := &cobra.Command{
		Use:           "careerhub",
		Short:         "Job and training marketplace client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		registerCmd(),
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		jobsCmd(),
		applyCmd(),
		applicationsCmd(),
		coursesCmd(),
		enrollCmd(),
		profileCmd(),
		vacanciesCmd(),
		companiesCmd(),
		reviewCmd(),
		watchCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app is the wired client stack every command runs against.
type app struct {
	cfg     *config.AppConfig
	logger  zerolog.Logger
	store   keystore.Store
	session *session.Manager
	client  *api.Client
	center  *notify.Center
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := log.New(cfg.Environment)

	store, err := keystore.New(ctx, cfg.Keystore, logger)
	if err != nil {
		return nil, err
	}

	manager := session.NewManager(store, logger)
	client := api.NewClient(cfg.API, manager.Token, logger)
	manager.SetClient(client)

	center := notify.NewCenter(cfg.Notify.DisplayDuration, logger)
	center.OnChange(func() {
		for _, n := range center.Active() {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Severity, n.Message)
		}
	})

	if err := manager.Init(ctx); err != nil {
		logger.Warn().Err(err).Msg("session bootstrap failed")
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		session: manager,
		client:  client,
		center:  center,
	}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
}

// requireRole is the command-level route guard. A denied role gets the same
// redirect the navigation layer would issue.
func (a *app) requireRole(allowed ...token.Role) error {
	state := a.session.State()
	var role token.Role
	if state.Identity != nil {
		role = state.Identity.Role
	}

	decision := routeguard.CanActivate(allowed, role)
	if decision.Allowed {
		return nil
	}
	return fmt.Errorf("not available for your role; go to %s", decision.RedirectTo)
}

func (a *app) identity() (token.Identity, error) {
	state := a.session.State()
	if state.Identity == nil {
		return token.Identity{}, session.ErrNotAuthenticated
	}
	return *state.Identity, nil
}

func registerCmd() *cobra.Command {
	var name, password, role, picturePath string
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			input := api.RegisterInput{
				Name:     name,
				Email:    args[0],
				Password: password,
				Role:     string(token.NormalizeRole(role)),
			}
			if picturePath != "" {
				f, err := os.Open(picturePath)
				if err != nil {
					return err
				}
				defer f.Close()
				input.ProfilePicture = f
				input.ProfilePictureFilename = filepath.Base(picturePath)
			}

			if err := a.client.Register(ctx, input); err != nil {
				return err
			}
			fmt.Println("registered; log in with: careerhub login", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&role, "role", string(token.RoleJobSeeker), "account role")
	cmd.Flags().StringVar(&picturePath, "picture", "", "path to a profile picture")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Authenticate and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			role, err := a.session.Login(ctx, args[0], password)
			if err != nil {
				return err
			}
			fmt.Printf("logged in as %s, landing route %s\n", role, routeguard.DefaultRouteForRole(role))
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity and profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			state := a.session.State()
			if state.Identity == nil {
				fmt.Println("not logged in")
				return nil
			}
			fmt.Printf("user %s role %s\n", state.Identity.UserID, state.Identity.Role)
			waitProfile(a, 3*time.Second)
			state = a.session.State()
			if state.Profile != nil {
				fmt.Printf("name %s email %s\n", state.Profile.Name, state.Profile.Email)
			} else if state.ProfileErr != nil {
				fmt.Println("profile unavailable:", state.ProfileErr)
			}
			if state.Resume != "" {
				fmt.Println("resume:", state.Resume)
			}
			return nil
		},
	}
}

// waitProfile gives the background profile fetch a moment to land; identity
// never waits on it.
func waitProfile(a *app, limit time.Duration) {
	deadline := time.Now().Add(limit)
	for time.Now().Before(deadline) {
		state := a.session.State()
		if state.Profile != nil || state.ProfileErr != nil {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse job postings",
	}

	var filters jobstore.Filters
	var page, pageSize int
	list := &cobra.Command{
		Use:   "list",
		Short: "List jobs with optional client-side filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleJobSeeker); err != nil {
				return err
			}

			store := jobstore.New(a.client, a.logger)
			if err := store.FetchAll(ctx); err != nil {
				return err
			}
			store.SetFilters(filters)

			all := store.Filtered()
			pageItems := pagination.Page(all, pageSize, page)
			fmt.Printf("page %d/%d (%d jobs total, %d published today)\n",
				page, pagination.TotalPages(all, pageSize), len(all), len(store.Latest()))
			for _, job := range pageItems {
				printJob(job)
			}
			return nil
		},
	}
	list.Flags().StringVar(&filters.Location, "location", "", "exact location match")
	list.Flags().StringVar(&filters.Industry, "industry", "", "exact industry match")
	list.Flags().StringVar(&filters.MinSalary, "min-salary", "", "minimum salary")
	list.Flags().StringVar(&filters.MaxSalary, "max-salary", "", "maximum salary")
	list.Flags().StringVar(&filters.TitleContains, "title", "", "title substring")
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&pageSize, "page-size", 12, "items per page")

	suggest := &cobra.Command{
		Use:   "suggest",
		Short: "Jobs matched against your stored resume",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleJobSeeker); err != nil {
				return err
			}

			waitProfile(a, 3*time.Second)
			resume := a.session.State().Resume
			if resume == "" {
				return fmt.Errorf("no resume on file; upload one with: careerhub profile update --resume <file>")
			}

			store := jobstore.New(a.client, a.logger)
			if err := store.FetchSuggestions(ctx, resume); err != nil {
				return err
			}
			for _, job := range store.Suggested() {
				printJob(job)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			job, err := a.client.GetJob(ctx, args[0])
			if err != nil {
				return err
			}
			printJob(job)
			fmt.Println(job.Description)
			return nil
		},
	}

	cmd.AddCommand(list, suggest, show)
	return cmd
}

func printJob(job api.Job) {
	fmt.Printf("%s  %-30s %-15s %8.0f  %s\n", job.ID, job.Title, job.Location, job.Salary, job.Company)
}

func applyCmd() *cobra.Command {
	var coverNote string
	cmd := &cobra.Command{
		Use:   "apply <job-id>",
		Short: "Apply for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleJobSeeker); err != nil {
				return err
			}
			identity, err := a.identity()
			if err != nil {
				return err
			}

			waitProfile(a, 3*time.Second)
			machine := appstate.NewMachine(a.client, a.center, a.logger)
			if err := machine.CheckApplication(ctx, args[0], identity.UserID); err != nil {
				return err
			}
			if machine.Phase() == appstate.PhaseApplied {
				fmt.Println("you have already applied to this job")
				return nil
			}

			return machine.Apply(ctx, appstate.ApplyInput{
				ResumeURL: a.session.State().Resume,
				CoverNote: coverNote,
			})
		},
	}
	cmd.Flags().StringVar(&coverNote, "note", "", "cover note to attach")
	return cmd
}

func applicationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "applications",
		Short: "List your applications with job titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleJobSeeker); err != nil {
				return err
			}
			identity, err := a.identity()
			if err != nil {
				return err
			}

			rows, err := appstate.FetchAppliedJobs(ctx, a.client, identity.UserID, a.logger)
			if err != nil {
				return err
			}
			for _, row := range rows {
				fmt.Printf("%-30s %-10s %s\n", row.JobTitle, row.Application.Status, row.Application.AppliedDate)
			}
			return nil
		},
	}
}

func coursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Browse training courses",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List available courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleJobSeeker); err != nil {
				return err
			}

			store := coursestore.New(a.client, a.center, a.logger)
			if err := store.FetchCourses(ctx); err != nil {
				return err
			}
			for _, course := range store.Courses() {
				fmt.Printf("%s  %-30s %s\n", course.ID, course.Title, course.Description)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <course-id>",
		Short: "Show course modules and lessons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			course, err := a.client.GetCourse(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n%s\n\n", course.Title, course.Description)

			content, err := coursestore.FetchCourseContent(ctx, a.client, args[0], a.logger)
			if err != nil {
				return err
			}
			for _, mc := range content {
				fmt.Println(mc.Module.Title)
				if mc.Failed {
					fmt.Println("  (failed to load)")
					continue
				}
				for _, lesson := range mc.Lessons {
					fmt.Printf("  - %s\n", lesson.Title)
				}
			}
			return nil
		},
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List your enrollments and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleJobSeeker); err != nil {
				return err
			}
			identity, err := a.identity()
			if err != nil {
				return err
			}

			store := coursestore.New(a.client, a.center, a.logger)
			if err := store.FetchEnrollments(ctx, identity.UserID); err != nil {
				return err
			}
			for _, e := range store.Enrollments() {
				fmt.Printf("%s  course %s  %.0f%%\n", e.EnrollmentID, e.CourseID, e.Progress)
			}
			return nil
		},
	}

	var input api.CourseInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleTrainer); err != nil {
				return err
			}

			course, err := a.client.CreateCourse(ctx, input)
			if err != nil {
				return err
			}
			fmt.Println("created course", course.ID)
			return nil
		},
	}
	create.Flags().StringVar(&input.Title, "title", "", "course title")
	create.Flags().StringVar(&input.Description, "description", "", "course description")
	_ = create.MarkFlagRequired("title")

	del := &cobra.Command{
		Use:   "delete <course-id>",
		Short: "Delete a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleTrainer); err != nil {
				return err
			}
			return a.client.DeleteCourse(ctx, args[0])
		},
	}

	students := &cobra.Command{
		Use:   "students <course-id>",
		Short: "List who enrolled in a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleTrainer); err != nil {
				return err
			}

			enrollments, err := a.client.ListCourseStudents(ctx, args[0])
			if err != nil {
				return err
			}
			for _, e := range enrollments {
				fmt.Printf("%s  student %s  %.0f%%\n", e.EnrollmentID, e.UserID, e.Progress)
			}
			return nil
		},
	}

	cmd.AddCommand(list, show, mine, create, del, students)
	return cmd
}

func enrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <course-id>",
		Short: "Enroll in a training course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleJobSeeker); err != nil {
				return err
			}
			identity, err := a.identity()
			if err != nil {
				return err
			}

			store := coursestore.New(a.client, a.center, a.logger)
			if err := store.FetchEnrollments(ctx, identity.UserID); err != nil {
				return err
			}
			return store.Enroll(ctx, args[0], identity.UserID)
		},
	}
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleJobSeeker, token.RoleEmployer, token.RoleTrainer); err != nil {
				return err
			}

			waitProfile(a, 3*time.Second)
			state := a.session.State()
			if state.Profile == nil {
				if state.ProfileErr != nil {
					return fmt.Errorf("profile unavailable: %w (retry with: careerhub profile show)", state.ProfileErr)
				}
				return session.ErrNotAuthenticated
			}
			fmt.Printf("name:   %s\nemail:  %s\nrole:   %s\n", state.Profile.Name, state.Profile.Email, state.Profile.Role)
			if state.Resume != "" {
				fmt.Printf("resume: %s\n", state.Resume)
			}
			return nil
		},
	}

	var name, email, resumePath string
	update := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields and optionally upload a resume",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleJobSeeker, token.RoleEmployer, token.RoleTrainer); err != nil {
				return err
			}

			waitProfile(a, 3*time.Second)
			state := a.session.State()
			input := session.UpdateProfileInput{Name: name, Email: email}
			if state.Profile != nil {
				if input.Name == "" {
					input.Name = state.Profile.Name
				}
				if input.Email == "" {
					input.Email = state.Profile.Email
				}
			}

			if resumePath != "" {
				f, err := os.Open(resumePath)
				if err != nil {
					return err
				}
				defer f.Close()
				input.Resume = f
				input.ResumeName = filepath.Base(resumePath)
			}

			if err := a.session.UpdateProfile(ctx, input); err != nil {
				if errors.Is(err, session.ErrResumeUpload) {
					// the profile change itself went through
					fmt.Println("profile updated, but the resume upload failed; retry the upload")
				}
				return err
			}
			fmt.Println("profile updated")
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "display name")
	update.Flags().StringVar(&email, "email", "", "email address")
	update.Flags().StringVar(&resumePath, "resume", "", "path to a resume file to upload")

	cmd.AddCommand(show, update)
	return cmd
}

func vacanciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vacancies",
		Short: "Manage job postings",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List postings with their publish state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleEmployer); err != nil {
				return err
			}

			jobs, err := a.client.ListJobs(ctx)
			if err != nil {
				return err
			}
			for _, job := range jobs {
				state := "draft"
				if job.Active {
					state = "published"
				}
				fmt.Printf("%s  %-30s %-10s %s\n", job.ID, job.Title, state, job.Company)
			}
			return nil
		},
	}

	var input api.JobInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a posting (starts unpublished)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleEmployer); err != nil {
				return err
			}

			job, err := a.client.CreateJob(ctx, input)
			if err != nil {
				return err
			}
			fmt.Println("created vacancy", job.ID)
			return nil
		},
	}
	create.Flags().StringVar(&input.Title, "title", "", "job title")
	create.Flags().StringVar(&input.Location, "location", "", "job location")
	create.Flags().Float64Var(&input.Salary, "salary", 0, "offered salary")
	create.Flags().StringVar(&input.Industry, "industry", "", "industry")
	create.Flags().StringVar(&input.Company, "company", "", "company name")
	create.Flags().StringVar(&input.Description, "description", "", "job description")
	_ = create.MarkFlagRequired("title")

	var upd api.JobInput
	update := &cobra.Command{
		Use:   "update <job-id>",
		Short: "Update a posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleEmployer); err != nil {
				return err
			}
			_, err = a.client.UpdateJob(ctx, args[0], upd)
			return err
		},
	}
	update.Flags().StringVar(&upd.Title, "title", "", "job title")
	update.Flags().StringVar(&upd.Location, "location", "", "job location")
	update.Flags().Float64Var(&upd.Salary, "salary", 0, "offered salary")
	update.Flags().StringVar(&upd.Industry, "industry", "", "industry")
	update.Flags().StringVar(&upd.Company, "company", "", "company name")
	update.Flags().StringVar(&upd.Description, "description", "", "job description")

	del := &cobra.Command{
		Use:   "delete <job-id>",
		Short: "Delete a posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleEmployer); err != nil {
				return err
			}
			return a.client.DeleteJob(ctx, args[0])
		},
	}

	publish := setActiveCmd("publish", "Publish a posting", true)
	unpublish := setActiveCmd("unpublish", "Take a posting offline", false)

	cmd.AddCommand(list, create, update, del, publish, unpublish)
	return cmd
}

func setActiveCmd(use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <job-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleEmployer); err != nil {
				return err
			}
			return a.client.SetJobActive(ctx, args[0], active)
		},
	}
}

func companiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "Manage your companies",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleEmployer); err != nil {
				return err
			}
			identity, err := a.identity()
			if err != nil {
				return err
			}

			companies, err := a.client.ListEmployerCompanies(ctx, identity.UserID)
			if err != nil {
				return err
			}
			for _, company := range companies {
				fmt.Printf("%s  %-25s %-15s %s\n", company.ID, company.Name, company.Location, company.Industry)
			}
			return nil
		},
	}

	var input api.CompanyInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a company",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleEmployer); err != nil {
				return err
			}

			company, err := a.client.CreateCompany(ctx, input)
			if err != nil {
				return err
			}
			fmt.Println("created company", company.ID)
			return nil
		},
	}
	create.Flags().StringVar(&input.Name, "name", "", "company name")
	create.Flags().StringVar(&input.Location, "location", "", "location")
	create.Flags().StringVar(&input.Industry, "industry", "", "industry")
	create.Flags().StringVar(&input.Description, "description", "", "description")
	_ = create.MarkFlagRequired("name")

	var upd api.CompanyInput
	update := &cobra.Command{
		Use:   "update <company-id>",
		Short: "Update a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleEmployer); err != nil {
				return err
			}
			_, err = a.client.UpdateCompany(ctx, args[0], upd)
			return err
		},
	}
	update.Flags().StringVar(&upd.Name, "name", "", "company name")
	update.Flags().StringVar(&upd.Location, "location", "", "location")
	update.Flags().StringVar(&upd.Industry, "industry", "", "industry")
	update.Flags().StringVar(&upd.Description, "description", "", "description")

	del := &cobra.Command{
		Use:   "delete <company-id>",
		Short: "Delete a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleEmployer); err != nil {
				return err
			}
			return a.client.DeleteCompany(ctx, args[0])
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review incoming applications",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleEmployer); err != nil {
				return err
			}

			apps, err := a.client.ListApplications(ctx)
			if err != nil {
				return err
			}
			for _, app := range apps {
				fmt.Printf("%s  job %s  applicant %s  %s\n", app.ApplicationID, app.JobID, app.ApplicantID, app.Status)
			}
			return nil
		},
	}

	approve := reviewDecisionCmd("approve", api.ApplicationApproved)
	reject := reviewDecisionCmd("reject", api.ApplicationRejected)

	drop := &cobra.Command{
		Use:   "drop <application-id>",
		Short: "Remove an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleEmployer); err != nil {
				return err
			}
			return a.client.DeleteApplication(ctx, args[0])
		},
	}

	cmd.AddCommand(list, approve, reject, drop)
	return cmd
}

func reviewDecisionCmd(use string, status api.ApplicationStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <application-id>",
		Short: use + " an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleEmployer); err != nil {
				return err
			}
			return a.client.SetApplicationStatus(ctx, args[0], status)
		},
	}
}

// watchCmd runs the client as a daemon: scheduled job refresh with optional
// Telegram alerts, plus route re-evaluation when another process changes
// the session.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the scheduled job watcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireRole(token.RoleJobSeeker); err != nil {
				return err
			}

			store := jobstore.New(a.client, a.logger)
			if err := store.FetchAll(ctx); err != nil {
				return err
			}

			var reporter jobstore.JobReporter
			if a.cfg.Notify.Telegram.Enabled {
				tg, err := notify.NewTelegramReporter(a.cfg.Notify.Telegram)
				if err != nil {
					return err
				}
				reporter = tg
			}

			refresher := jobstore.NewRefresher(store, reporter)
			if err := refresher.Start(ctx, a.cfg.Refresh.Schedule); err != nil {
				return err
			}
			defer refresher.Stop()

			guard := routeguard.NewWatcher(a.store, a.logger)
			guard.Register([]token.Role{token.RoleJobSeeker}, func(d routeguard.Decision) {
				if !d.Allowed {
					a.logger.Info().Str("redirect", d.RedirectTo).Msg("session changed, watcher no longer authorized")
				}
			})

			a.logger.Info().Str("schedule", a.cfg.Refresh.Schedule).Msg("watching for new jobs")
			return guard.Run(ctx)
		},
	}
}
