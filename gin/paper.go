package gin

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/errors"
)

type PaperHandler struct {
	Store         papertrack.PaperStore
	Authenticator *Authenticator
}

func (h *PaperHandler) RegisterRoutes(router *gin.Engine) {
	auth := h.Authenticator.Authenticate
	router.POST("/api/save-paper", JSONFormatter(auth(h.Save)))
	router.GET("/api/users/:userId/papers", JSONFormatter(auth(h.List)))
	router.POST("/api/update-status", JSONFormatter(auth(h.UpdateStatus)))
	router.POST("/api/update-rating", JSONFormatter(auth(h.UpdateRating)))
	router.POST("/api/remove-one-paper", JSONFormatter(auth(h.Remove)))
}

func (h *PaperHandler) Save(c *gin.Context) (interface{}, error) {
	userID := sessionUserID(c)

	var body struct {
		Title     string `json:"paper_title"`
		DOI       string `json:"doi"`
		Link      string `json:"paper_link"`
		Published string `json:"published"`
	}
	c.ShouldBindJSON(&body)

	if body.Title == "" || body.Link == "" {
		return nil, errors.New("Paper title and link are required.", errors.BadRequest())
	}

	paper := papertrack.Paper{
		UserID:    userID,
		Title:     strings.TrimSpace(body.Title),
		DOI:       strings.TrimSpace(body.DOI),
		Link:      body.Link,
		Published: body.Published,
	}

	if err := h.Store.CreatePaper(&paper); err != nil {
		if errors.IsConstraint(err) {
			return nil, errors.New("Paper already saved for this user.", errors.BadRequest())
		}
		return nil, errors.New("Failed to save paper.", errors.WithCause(err))
	}

	return map[string]interface{}{
		"message": "Paper saved successfully!",
	}, nil
}

func (h *PaperHandler) List(c *gin.Context) (interface{}, error) {
	requestedID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		return nil, errors.New("Invalid user id.", errors.BadRequest())
	}

	if requestedID != sessionUserID(c) {
		return nil, errors.New("Not authorized to access these papers.", errors.Forbidden())
	}

	papers, err := h.Store.PapersByUser(requestedID)
	if err != nil {
		return nil, errors.New("Failed to list papers.", errors.WithCause(err))
	}

	return map[string]interface{}{
		"papers": papers,
	}, nil
}

// paperTarget carries the fields shared by the mutation endpoints. The
// optional userId lets a client act explicitly; it must then match the
// session.
type paperTarget struct {
	UserID int    `json:"userId"`
	DOI    string `json:"doi"`
}

func (t paperTarget) resolve(c *gin.Context) (int, string, error) {
	userID := sessionUserID(c)
	if t.UserID != 0 && t.UserID != userID {
		return 0, "", errors.New("Not authorized to modify this paper.", errors.Forbidden())
	}
	return userID, strings.TrimSpace(t.DOI), nil
}

func (h *PaperHandler) UpdateStatus(c *gin.Context) (interface{}, error) {
	var body struct {
		paperTarget
		Status string `json:"status"`
	}
	c.ShouldBindJSON(&body)

	if body.DOI == "" || body.Status == "" {
		return nil, errors.New("Paper DOI and status are required.", errors.BadRequest())
	}

	status := papertrack.Status(body.Status)
	if !status.Valid() {
		return nil, errors.New("Invalid status.", errors.BadRequest())
	}

	userID, doi, err := body.resolve(c)
	if err != nil {
		return nil, err
	}

	changes, err := h.Store.UpdatePaperStatus(userID, doi, status)
	if err != nil {
		return nil, errors.New("Failed to update status.", errors.WithCause(err))
	}
	if changes == 0 {
		return nil, errors.New("Paper not found.", errors.NotFound())
	}

	return map[string]interface{}{
		"message": "Status updated successfully!",
	}, nil
}

func (h *PaperHandler) UpdateRating(c *gin.Context) (interface{}, error) {
	var body struct {
		paperTarget
		Rating *float64 `json:"rating"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Rating == nil || body.DOI == "" {
		return nil, errors.New("Paper DOI and rating are required.", errors.BadRequest())
	}

	userID, doi, err := body.resolve(c)
	if err != nil {
		return nil, err
	}

	// The store clamps to [0, 5].
	changes, err := h.Store.UpdatePaperRating(userID, doi, *body.Rating)
	if err != nil {
		return nil, errors.New("Failed to update rating.", errors.WithCause(err))
	}
	if changes == 0 {
		return nil, errors.New("Paper not found.", errors.NotFound())
	}

	return map[string]interface{}{
		"message": "Rating updated successfully!",
	}, nil
}

func (h *PaperHandler) Remove(c *gin.Context) (interface{}, error) {
	var body paperTarget
	c.ShouldBindJSON(&body)

	if body.DOI == "" {
		return nil, errors.New("Paper DOI is required.", errors.BadRequest())
	}

	userID, doi, err := body.resolve(c)
	if err != nil {
		return nil, err
	}

	changes, err := h.Store.DeletePaper(userID, doi)
	if err != nil {
		return nil, errors.New("Failed to remove paper.", errors.WithCause(err))
	}
	if changes == 0 {
		return nil, errors.New("Paper not found or not owned by user.", errors.NotFound())
	}

	return map[string]interface{}{
		"message": "Paper removed successfully!",
	}, nil
}
