package api

import (
	"context"
	"encoding/json"
	"net/http"
)

func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := c.getData(ctx, "/jobs/all", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) GetJob(ctx context.Context, jobID string) (Job, error) {
	var job Job
	if err := c.getData(ctx, "/jobs/"+jobID, &job); err != nil {
		return Job{}, err
	}
	return job, nil
}

type matchJobsRequest struct {
	ResumeURL string `json:"resumeUrl"`
}

// MatchJobs asks the backend for suggestions based on a stored resume. The
// matcher endpoint has been seen replying with non-list payloads on empty
// results, so anything that is not a JSON array is coerced to no matches.
func (c *Client) MatchJobs(ctx context.Context, resumeURL string) ([]Job, error) {
	var env envelope
	if err := c.doJSON(ctx, http.MethodPost, "/jobs/match-jobs", matchJobsRequest{ResumeURL: resumeURL}, &env); err != nil {
		return nil, err
	}

	var jobs []Job
	if err := json.Unmarshal(env.Data, &jobs); err != nil {
		return []Job{}, nil
	}
	return jobs, nil
}

type JobInput struct {
	Title              string  `json:"title"`
	Location           string  `json:"location"`
	Salary             float64 `json:"salary"`
	Industry           string  `json:"industry"`
	SkillsRequired     string  `json:"skillsRequired"`
	ExperienceRequired string  `json:"experienceRequired"`
	Description        string  `json:"description"`
	Company            string  `json:"company"`
}

func (c *Client) CreateJob(ctx context.Context, input JobInput) (Job, error) {
	var job Job
	if err := c.postData(ctx, "/jobs", input, &job); err != nil {
		return Job{}, err
	}
	return job, nil
}

func (c *Client) UpdateJob(ctx context.Context, jobID string, input JobInput) (Job, error) {
	var env envelope
	if err := c.doJSON(ctx, http.MethodPut, "/jobs/"+jobID, input, &env); err != nil {
		return Job{}, err
	}
	var job Job
	if err := json.Unmarshal(env.Data, &job); err != nil {
		return Job{}, err
	}
	return job, nil
}

func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/jobs/"+jobID, nil, nil)
}

type jobStatusRequest struct {
	Active bool `json:"active"`
}

// SetJobActive publishes or unpublishes a vacancy.
func (c *Client) SetJobActive(ctx context.Context, jobID string, active bool) error {
	return c.doJSON(ctx, http.MethodPatch, "/jobs/"+jobID+"/status", jobStatusRequest{Active: active}, nil)
}
