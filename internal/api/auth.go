package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. The reply is bare JSON,
// not envelope-wrapped.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login reply carried no token")
	}
	return resp.Token, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	// ProfilePicture, when non-nil, is attached as a multipart file part.
	ProfilePicture         io.Reader
	ProfilePictureFilename string
}

// Register creates an account. The endpoint takes multipart form data
// because of the optional picture part; a conflicting email comes back as
// a client *Error with a 409 status.
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	return c.doMultipart(ctx, http.MethodPost, "/auth/register", func(w *multipart.Writer) error {
		if err := w.WriteField("name", input.Name); err != nil {
			return err
		}
		if err := w.WriteField("email", input.Email); err != nil {
			return err
		}
		if err := w.WriteField("password", input.Password); err != nil {
			return err
		}
		if err := w.WriteField("role", input.Role); err != nil {
			return err
		}
		if input.ProfilePicture != nil {
			part, err := w.CreateFormFile("profilePicture", input.ProfilePictureFilename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, input.ProfilePicture); err != nil {
				return err
			}
		}
		return nil
	}, nil)
}

func (c *Client) GetProfile(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	if err := c.doJSON(ctx, http.MethodGet, "/auth/user/"+userID, nil, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

type ProfileUpdate struct {
	Name     string
	Email    string
	Password string
	// ProfilePicture, when non-nil, is attached as a multipart file part.
	ProfilePicture         io.Reader
	ProfilePictureFilename string
}

// UpdateProfile sends the profile mutation as multipart form data, the only
// shape the endpoint accepts because of the optional picture part.
func (c *Client) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (Profile, error) {
	var p Profile
	err := c.doMultipart(ctx, http.MethodPut, "/auth/user/"+userID, func(w *multipart.Writer) error {
		if err := w.WriteField("name", upd.Name); err != nil {
			return err
		}
		if err := w.WriteField("email", upd.Email); err != nil {
			return err
		}
		if upd.Password != "" {
			if err := w.WriteField("password", upd.Password); err != nil {
				return err
			}
		}
		if upd.ProfilePicture != nil {
			part, err := w.CreateFormFile("profilePicture", upd.ProfilePictureFilename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, upd.ProfilePicture); err != nil {
				return err
			}
		}
		return nil
	}, &p)
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

// GetResumes lists the stored resumes for a user, newest first.
func (c *Client) GetResumes(ctx context.Context, userID string) ([]Resume, error) {
	var resumes []Resume
	if err := c.doJSON(ctx, http.MethodGet, "/resumes/user/"+userID, nil, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

// UploadResume stores a resume file and returns the backend's record for it.
func (c *Client) UploadResume(ctx context.Context, userID, filename string, file io.Reader) (Resume, error) {
	var env struct {
		Data Resume `json:"data"`
	}
	err := c.doMultipart(ctx, http.MethodPost, "/resumes", func(w *multipart.Writer) error {
		if err := w.WriteField("userId", userID); err != nil {
			return err
		}
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, file)
		return err
	}, &env)
	if err != nil {
		return Resume{}, err
	}
	return env.Data, nil
}
