package openclass

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/classowl/go-openclass/httpclient"
)

// MaxCourseTitleLength is the longest courseTitle the API accepts, in characters.
const MaxCourseTitleLength = 50

// ErrInvalidCourse is returned by CreateCourse for payloads the API would reject.
var ErrInvalidCourse = errors.New("invalid course")

// GetCourse fetches a course section.
func (c *Client) GetCourse(ctx context.Context, courseID string) (any, error) {
	return c.HTTP.Send(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    c.courseURL(courseID),
	})
}

// CreateCourse creates a course section. data must carry a non-empty institutionId and a
// courseTitle of at most MaxCourseTitleLength characters; other fields are passed through.
func (c *Client) CreateCourse(ctx context.Context, data map[string]any) (any, error) {
	if err := ValidateCourse(data); err != nil {
		return nil, err
	}
	return c.HTTP.Send(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.endpoint("v1", "campus", "coursesections"),
		Body:   data,
	})
}

// UpdateCourse replaces a course section with data.
func (c *Client) UpdateCourse(ctx context.Context, courseID string, data map[string]any) (any, error) {
	return c.HTTP.Send(ctx, httpclient.Request{
		Method: http.MethodPut,
		URL:    c.courseURL(courseID),
		Body:   data,
	})
}

// DeleteCourse deletes a course section. The API usually answers with an empty body.
func (c *Client) DeleteCourse(ctx context.Context, courseID string) (any, error) {
	return c.HTTP.Send(ctx, httpclient.Request{
		Method: http.MethodDelete,
		URL:    c.courseURL(courseID),
	})
}

func (c *Client) courseURL(courseID string) string {
	return c.endpoint("v1", "campus", "coursesections", courseID)
}

// ValidateCourse checks the fields required to create a course section.
func ValidateCourse(data map[string]any) error {
	institutionID, _ := data["institutionId"].(string)
	if institutionID == "" {
		return fmt.Errorf("%w: institutionId must be a non-empty string", ErrInvalidCourse)
	}

	title, _ := data["courseTitle"].(string)
	if title == "" {
		return fmt.Errorf("%w: courseTitle must be a non-empty string", ErrInvalidCourse)
	}
	if n := utf8.RuneCountInString(title); n > MaxCourseTitleLength {
		return fmt.Errorf("%w: courseTitle is %d characters, maximum is %d", ErrInvalidCourse, n, MaxCourseTitleLength)
	}
	return nil
}
