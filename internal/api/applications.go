package api

import (
	"context"
	"net/http"
)

func (c *Client) ListApplications(ctx context.Context) ([]Application, error) {
	var apps []Application
	if err := c.getData(ctx, "/applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) ListUserApplications(ctx context.Context, userID string) ([]Application, error) {
	var apps []Application
	if err := c.getData(ctx, "/applications/user/"+userID, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

type ApplicationInput struct {
	SubmissionID string `json:"submissionId"`
	JobID        string `json:"jobId"`
	ApplicantID  string `json:"applicantId"`
	ResumeURL    string `json:"resumeUrl"`
	CoverNote    string `json:"coverNote,omitempty"`
}

func (c *Client) CreateApplication(ctx context.Context, input ApplicationInput) (Application, error) {
	var app Application
	if err := c.postData(ctx, "/applications/upload", input, &app); err != nil {
		return Application{}, err
	}
	return app, nil
}

func (c *Client) DeleteApplication(ctx context.Context, applicationID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/applications/"+applicationID, nil, nil)
}

type applicationStatusRequest struct {
	Status ApplicationStatus `json:"applicationStatus"`
}

// SetApplicationStatus is the employer review action (approve/reject).
func (c *Client) SetApplicationStatus(ctx context.Context, applicationID string, status ApplicationStatus) error {
	return c.doJSON(ctx, http.MethodPut, "/applications/"+applicationID+"/status", applicationStatusRequest{Status: status}, nil)
}
