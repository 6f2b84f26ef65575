package controllers

import (
	"bufio"
	"errors"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"educourse/backend/authz"
	"educourse/backend/config"
	"educourse/backend/live"
	"educourse/backend/models"
	"educourse/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"
)

// streamPingInterval bounds how long a dead client on a quiet topic can keep
// its subscription alive: the next ping's failed write is the disconnect
// signal when no comment ever arrives to trigger one.
const streamPingInterval = 15 * time.Second

type CommentsController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Hub *live.Hub

	pingInterval time.Duration
}

func NewCommentsController(db *gorm.DB, cfg *config.Config, hub *live.Hub) *CommentsController {
	return &CommentsController{DB: db, Cfg: cfg, Hub: hub, pingInterval: streamPingInterval}
}

type AddCommentRequest struct {
	Text     string `json:"text" validate:"required"`
	ParentID *uint  `json:"parent_id"`
}

var errInvalidTopicID = errors.New("invalid material id")

// topicForViewer loads a material and checks that the caller may take part in
// its discussion. A missing material and a gated one both come back as
// ErrNotFound so a topic id typed into the URL does not leak anything.
func (cc *CommentsController) topicForViewer(c *fiber.Ctx, user *models.User) (*models.Material, error) {
	materialID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, errInvalidTopicID
	}

	var material models.Material
	if err := cc.DB.First(&material, materialID).Error; err != nil {
		return nil, utils.ErrNotFound
	}

	var course models.Course
	if err := cc.DB.First(&course, material.CourseID).Error; err != nil {
		return nil, utils.ErrNotFound
	}
	if !authz.For(user, &course).ViewContent {
		return nil, utils.ErrNotFound
	}

	return &material, nil
}

// topicError maps topicForViewer failures onto the response helpers.
func topicError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errInvalidTopicID) {
		return utils.BadRequest(c, "Invalid material ID")
	}
	return utils.NotFound(c, "Material not found")
}

// GetComments godoc
// @Summary Threaded comments of a material
// @Description Returns the discussion as a reply tree, chronological at every
// @Description level.
// @Tags comments
// @Produce json
// @Param id path int true "Material ID"
// @Success 200 {array} models.CommentNode
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /materials/{id}/comments [get]
func (cc *CommentsController) GetComments(c *fiber.Ctx) error {
	user := currentUser(c, cc.DB, cc.Cfg)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	material, err := cc.topicForViewer(c, user)
	if err != nil {
		return topicError(c, err)
	}

	tree, err := cc.commentTree(material.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not fetch comments")
	}
	return c.JSON(tree)
}

// AddComment godoc
// @Summary Post a comment
// @Description Adds a comment or reply to a material's discussion and
// @Description notifies live subscribers.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Material ID"
// @Param input body AddCommentRequest true "Comment data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /materials/{id}/comments [post]
func (cc *CommentsController) AddComment(c *fiber.Ctx) error {
	user := currentUser(c, cc.DB, cc.Cfg)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	material, err := cc.topicForViewer(c, user)
	if err != nil {
		return topicError(c, err)
	}

	var input AddCommentRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if details := utils.ValidateStruct(input); details != nil {
		return utils.ValidationError(c, details)
	}

	if input.ParentID != nil {
		var parent models.Comment
		if err := cc.DB.First(&parent, *input.ParentID).Error; err != nil {
			return utils.BadRequest(c, "Parent comment does not exist")
		}
		if parent.TopicID != material.ID {
			return utils.BadRequest(c, "Parent comment belongs to another discussion")
		}
	}

	comment := models.Comment{
		TopicID:  material.ID,
		ParentID: input.ParentID,
		Text:     input.Text,
		UserID:   user.ID,
		UserName: user.Username,
	}
	if err := cc.DB.Create(&comment).Error; err != nil {
		return utils.InternalServerError(c, "Could not create comment")
	}

	cc.Hub.Publish(live.Event{TopicID: material.ID})

	return utils.Created(c, comment)
}

// StreamComments godoc
// @Summary Live comment stream
// @Description Server-sent events: the current tree immediately, then a fully
// @Description rebuilt tree after every new comment. The subscription is
// @Description released when the client disconnects.
// @Tags comments
// @Produce text/event-stream
// @Param id path int true "Material ID"
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /materials/{id}/comments/stream [get]
func (cc *CommentsController) StreamComments(c *fiber.Ctx) error {
	user := currentUser(c, cc.DB, cc.Cfg)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	material, err := cc.topicForViewer(c, user)
	if err != nil {
		return topicError(c, err)
	}
	topicID := material.ID

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	events, release := cc.Hub.Subscribe(topicID)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		cc.streamComments(w, topicID, events, release)
	}))
	return nil
}

func (cc *CommentsController) streamComments(w *bufio.Writer, topicID uint, events <-chan live.Event, release func()) {
	defer release()

	if err := cc.writeTreeEvent(w, topicID); err != nil {
		return
	}

	ticker := time.NewTicker(cc.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
			// Full rebuild per change notification; no incremental patching.
			if err := cc.writeTreeEvent(w, topicID); err != nil {
				return
			}
		case <-ticker.C:
			// SSE comment line, invisible to the client's event parser.
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}
}

func (cc *CommentsController) writeTreeEvent(w *bufio.Writer, topicID uint) error {
	tree, err := cc.commentTree(topicID)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	// Flush fails once the client has gone away; that is the unsubscribe
	// signal.
	return w.Flush()
}

// commentTree re-reads the whole topic in createdAt order and materializes
// the reply forest. The ordering is the store query's contract; the builder
// never re-sorts.
func (cc *CommentsController) commentTree(topicID uint) ([]*models.CommentNode, error) {
	var comments []models.Comment
	if err := cc.DB.Where("topic_id = ?", topicID).
		Order("created_at asc, id asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return models.BuildCommentTree(comments), nil
}
