// Package notify models the user-facing toast surface as an interface so
// the cart and checkout flows can emit notifications without knowing how
// they are rendered.
package notify

import "log"

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) {
	log.Printf("notify success: %s", msg)
}

func (LogNotifier) Error(msg string) {
	log.Printf("notify error: %s", msg)
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(msg string) {
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
