package api

import (
	"context"
	"encoding/json"
	"net/http"
)

type CompanyInput struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

func (c *Client) ListEmployerCompanies(ctx context.Context, employerID string) ([]Company, error) {
	var companies []Company
	if err := c.getData(ctx, "/companies/user/"+employerID, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (c *Client) CreateCompany(ctx context.Context, input CompanyInput) (Company, error) {
	var company Company
	if err := c.postData(ctx, "/companies", input, &company); err != nil {
		return Company{}, err
	}
	return company, nil
}

func (c *Client) UpdateCompany(ctx context.Context, companyID string, input CompanyInput) (Company, error) {
	var env envelope
	if err := c.doJSON(ctx, http.MethodPut, "/companies/"+companyID, input, &env); err != nil {
		return Company{}, err
	}
	var company Company
	if err := json.Unmarshal(env.Data, &company); err != nil {
		return Company{}, err
	}
	return company, nil
}

func (c *Client) DeleteCompany(ctx context.Context, companyID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/companies/"+companyID, nil, nil)
}
