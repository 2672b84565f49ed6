package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/specimen-catalog/pkg/helpers"
	"github.com/oksasatya/specimen-catalog/pkg/mailer"
)

type outcome int

const (
	ack   outcome = iota
	drop          // malformed or unrenderable; never retried
	retry         // delivery failed; requeue
)

type worker struct {
	sender  mailer.Sender
	logger  *logrus.Logger
	timeout time.Duration
}

// handle decodes one queued job, renders it and hands it to the sender.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.logger.WithError(err).Warn("bad message")
		return drop
	}
	helpers.EnsureRecipientAndEmail(&job)

	subject, text, html, err := mailer.Compose(job)
	if err != nil {
		w.logger.WithError(err).WithField("template", job.Template).Warn("render failed")
		return drop
	}

	c, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.sender.Send(c, job.To, subject, text, html); err != nil {
		w.logger.WithError(err).WithField("to", job.To).Error("send failed")
		return retry
	}
	w.logger.WithField("to", job.To).WithField("template", job.Template).Info("email sent")
	return ack
}
