package intake

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bitlatte/resonant/internal/logger"
	"github.com/Bitlatte/resonant/internal/metrics"
)

const maxBodyBytes = 64 << 10

// Response is the JSON answer of the start-project endpoint.
type Response struct {
	OK          bool    `json:"ok"`
	EmailSent   *bool   `json:"emailSent,omitempty"`
	SlackPosted *bool   `json:"slackPosted,omitempty"`
	Issues      []Issue `json:"issues,omitempty"`
}

// Handler serves POST /api/start-project.
type Handler struct {
	dispatcher *Dispatcher
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewHandler creates the intake handler. m may be nil.
func NewHandler(d *Dispatcher, m *metrics.Metrics) *Handler {
	return &Handler{dispatcher: d, metrics: m, now: time.Now}
}

// StartProject validates the posted form and announces it on every
// configured channel.
func (h *Handler) StartProject(c *gin.Context) {
	log := logger.FromContext(c.Request.Context())
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	sub, err := Decode(body)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			h.count(metrics.OutcomeRejected)
			log.Info("Submission rejected", logger.Int("issues", len(verr.Issues)))
			c.JSON(http.StatusUnprocessableEntity, Response{OK: false, Issues: verr.Issues})
			return
		}
		h.count(metrics.OutcomeRejected)
		log.Info("Malformed submission body", logger.Error(err))
		c.JSON(http.StatusBadRequest, Response{OK: false, Issues: []Issue{{
			Field:   "body",
			Rule:    "json",
			Message: "Request body must be a JSON object",
		}}})
		return
	}

	n := NewNotification(sub, h.now())
	outcome, err := h.dispatcher.Dispatch(c.Request.Context(), n)
	if err != nil {
		h.count(metrics.OutcomeFailed)
		log.Error("Start project submission failed",
			logger.String("submission_id", n.ID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, Response{OK: false})
		return
	}

	emailSent := outcome.Sent(ChannelEmail)
	slackPosted := outcome.Sent(ChannelSlack)
	h.count(metrics.OutcomeAccepted)
	log.Info("Submission accepted",
		logger.String("submission_id", n.ID),
		logger.String("company", sub.Company),
		logger.Bool("email_sent", emailSent),
		logger.Bool("slack_posted", slackPosted),
	)
	c.JSON(http.StatusOK, Response{OK: true, EmailSent: &emailSent, SlackPosted: &slackPosted})
}

func (h *Handler) count(outcome string) {
	if h.metrics != nil {
		h.metrics.Submissions.WithLabelValues(outcome).Inc()
	}
}
