package backend

import (
	"context"
	"net/http"

	"github.com/noah-isme/successpath-portal/internal/dto"
)

// AdminLogin exchanges admin credentials for a token.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (dto.AdminLoginResponse, error) {
	var resp dto.AdminLoginResponse
	err := c.do(ctx, call{
		operation: "admin_login",
		method:    http.MethodPost,
		path:      "/auth/admin/login",
		body:      dto.AdminLoginRequest{Email: email, Password: password},
	}, &resp)
	return resp, err
}

// StudentLoginByEmail signs a student in by email alone.
func (c *Client) StudentLoginByEmail(ctx context.Context, email string) (dto.StudentLoginResponse, error) {
	var resp dto.StudentLoginResponse
	err := c.do(ctx, call{
		operation: "student_login",
		method:    http.MethodPost,
		path:      "/auth/student/login-by-email",
		body:      dto.StudentLoginRequest{Email: email},
	}, &resp)
	return resp, err
}

// StudentSignup registers a student and returns the assigned student id.
func (c *Client) StudentSignup(ctx context.Context, payload dto.SignupPayload) (dto.SignupResponse, error) {
	var resp dto.SignupResponse
	err := c.do(ctx, call{
		operation: "student_signup",
		method:    http.MethodPost,
		path:      "/auth/student/signup",
		body:      payload,
	}, &resp)
	return resp, err
}

// VerifyToken asks the backend whether token is still valid.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	return c.do(ctx, call{
		operation: "verify_token",
		method:    http.MethodPost,
		path:      "/auth/verify-token",
		token:     token,
	}, nil)
}
