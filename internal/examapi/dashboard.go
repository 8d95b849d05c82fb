package examapi

import (
	"context"
	"net/http"

	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/models"
)

// DashboardPage fetches the aggregated dashboard payload.
func (c *Client) DashboardPage(ctx context.Context, auth Auth) (*models.DashboardPage, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi")
	log.Debug("fetching dashboard page")

	var out models.DashboardPage
	if err := c.do(ctx, http.MethodGet, "/dashboard/", auth, nil, &out); err != nil {
		log.Error("failed to fetch dashboard: %v", err)
		return nil, err
	}
	return &out, nil
}

// ProgressPage fetches the aggregated progress payload.
func (c *Client) ProgressPage(ctx context.Context, auth Auth) (*models.ProgressPage, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi")
	log.Debug("fetching progress page")

	var out models.ProgressPage
	if err := c.do(ctx, http.MethodGet, "/dashboard/progress_page/", auth, nil, &out); err != nil {
		log.Error("failed to fetch progress page: %v", err)
		return nil, err
	}
	return &out, nil
}

// QuizzesPage fetches the topic list for the quizzes page.
func (c *Client) QuizzesPage(ctx context.Context, auth Auth) ([]models.QuizTopic, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi")
	log.Debug("fetching quizzes page")

	var out struct {
		Topics []models.QuizTopic `json:"topics"`
	}
	if err := c.do(ctx, http.MethodGet, "/quizzes-page/", auth, nil, &out); err != nil {
		log.Error("failed to fetch quizzes page: %v", err)
		return nil, err
	}
	return out.Topics, nil
}

// MyCourses fetches the enrolled-courses list.
func (c *Client) MyCourses(ctx context.Context, auth Auth) ([]models.Course, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi")
	log.Debug("fetching my courses")

	var out struct {
		Courses []models.Course `json:"courses"`
	}
	if err := c.do(ctx, http.MethodGet, "/my-courses/", auth, nil, &out); err != nil {
		log.Error("failed to fetch my courses: %v", err)
		return nil, err
	}
	return out.Courses, nil
}
