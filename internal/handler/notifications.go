package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/coworkflow/coworkflow/internal/logs"
	"github.com/coworkflow/coworkflow/internal/queue"
	"github.com/coworkflow/coworkflow/internal/service"
)

// NotificationsHandler accepts e-mail, SMS and push requests.  SMS and
// push are only logged; e-mail goes out through Mailer when one is set.
type NotificationsHandler struct {
	Mailer service.Mailer // nil means log only
	Events service.Publisher
}

func NewNotificationsHandler(m service.Mailer, p service.Publisher) *NotificationsHandler {
	if p == nil {
		p = service.NopPublisher{}
	}
	return &NotificationsHandler{Mailer: m, Events: p}
}

type emailReq struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body"`
}

type smsReq struct {
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type pushReq struct {
	UserID uint64 `json:"user_id" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body"`
}

func (h *NotificationsHandler) Email(c echo.Context) error {
	var req emailReq
	if msg, ok := bindValid(c, &req); !ok {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	log := logs.For("notifications").WithFields(logrus.Fields{"channel": "email", "to": req.To, "subject": req.Subject})
	if h.Mailer != nil {
		if err := h.Mailer.Send(req.To, req.Subject, req.Body); err != nil {
			log.WithError(err).Error("email delivery failed")
			return errorJSON(c, http.StatusBadGateway, "Email delivery failed")
		}
	}
	log.Info("email sent")
	h.publish(c.Request().Context(), queue.NotificationEvent{Channel: "email", Recipient: req.To, Subject: req.Subject})
	return messageJSON(c, http.StatusOK, "Email sent successfully")
}

func (h *NotificationsHandler) SMS(c echo.Context) error {
	var req smsReq
	if msg, ok := bindValid(c, &req); !ok {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	logs.For("notifications").WithFields(logrus.Fields{"channel": "sms", "to": req.Phone}).Info(req.Message)
	h.publish(c.Request().Context(), queue.NotificationEvent{Channel: "sms", Recipient: req.Phone})
	return messageJSON(c, http.StatusOK, "SMS sent successfully")
}

func (h *NotificationsHandler) Push(c echo.Context) error {
	var req pushReq
	if msg, ok := bindValid(c, &req); !ok {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	to := strconv.FormatUint(req.UserID, 10)
	logs.For("notifications").WithFields(logrus.Fields{"channel": "push", "user_id": to, "title": req.Title}).Info(req.Body)
	h.publish(c.Request().Context(), queue.NotificationEvent{Channel: "push", Recipient: to, Subject: req.Title})
	return messageJSON(c, http.StatusOK, "Push notification sent")
}

func (h *NotificationsHandler) publish(ctx context.Context, ev queue.NotificationEvent) {
	ev.SentAt = time.Now().UTC().Format(time.RFC3339)
	if err := h.Events.Publish(ctx, queue.NotificationSentQueue, ev); err != nil {
		logs.For("notifications").WithError(err).Warn("notification event not published")
	}
}
