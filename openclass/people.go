package openclass

import (
	"context"
	"net/http"

	"github.com/classowl/go-openclass/httpclient"
)

// GetPerson fetches the enrollment record of userID (the institution's SIS id) at institution.
func (c *Client) GetPerson(ctx context.Context, institution, userID string) (any, error) {
	return c.HTTP.Send(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    c.endpoint("campus", "institutions", institution, "enrollments", "sis", userID),
	})
}

// GetCourseRoles lists the roles a member can hold in a course.
func (c *Client) GetCourseRoles(ctx context.Context) (any, error) {
	return c.HTTP.Send(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    c.endpoint("v1", "campus", "courseroles"),
	})
}
