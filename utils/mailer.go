package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/moaz779/Task-Workflow-Manager/models"
)

// Notifier delivers best-effort user notifications. Callers must never treat
// a delivery failure as fatal; sends happen off the request goroutine and
// failures are only logged.
type Notifier interface {
	TaskCreated(user models.User, task models.Task) error
}

// SMTPNotifier sends notifications through a plain SMTP account.
type SMTPNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (n *SMTPNotifier) TaskCreated(user models.User, task models.Task) error {
	due := "no due date"
	if task.DueDate != nil {
		due = task.DueDate.Format("2006-01-02")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.From)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "New Task Created")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour task %q was created and is due %s.\n\n- Task Manager",
		user.Name, task.Title, due,
	))

	d := gomail.NewDialer(n.Host, n.Port, n.Username, n.Password)
	return d.DialAndSend(m)
}

// NoopNotifier is used when SMTP is not configured.
type NoopNotifier struct{}

func (NoopNotifier) TaskCreated(models.User, models.Task) error { return nil }
