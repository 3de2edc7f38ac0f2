package models

import (
	"fmt"
	"strings"
)

// Question is a free-text question to be answered against the current file.
// It has no identity and is never stored.
type Question struct {
	Text string `json:"question"`
}

// Validate trims the question and checks it is non-empty. Called before any
// I/O so an empty question never reaches the backend.
func (q *Question) Validate() error {
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		return fmt.Errorf("question cannot be empty")
	}
	return nil
}

// Answer is the backend's reply to a dispatched prompt.
type Answer struct {
	Answer string `json:"answer"`
}
