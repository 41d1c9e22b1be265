// Package jobs tracks a submitted video generation job from submission to a
// terminal outcome. A job moves Submitted -> Polling(n)... -> Succeeded or
// Failed; once terminal it never changes again.
package jobs

import "fmt"

// State is one step of a video job's lifecycle.
type State interface {
	// Terminal reports whether no further transitions can follow.
	Terminal() bool
	String() string
}

// Submitted is the state right after the job was accepted by the remote API.
type Submitted struct {
	Operation string
}

// Polling is the state while the job runs. Attempt counts completed status fetches.
type Polling struct {
	Operation string
	Attempt   int
}

// Succeeded carries the download link of the finished video.
type Succeeded struct {
	Operation string
	URI       string
}

// Failed carries a user-displayable reason. Err holds the cause when one exists.
type Failed struct {
	Operation string
	Reason    string
	Err       error
}

func (Submitted) Terminal() bool { return false }
func (Polling) Terminal() bool   { return false }
func (Succeeded) Terminal() bool { return true }
func (Failed) Terminal() bool    { return true }

func (s Submitted) String() string { return "submitted" }
func (s Polling) String() string   { return fmt.Sprintf("polling(%d)", s.Attempt) }
func (s Succeeded) String() string { return "succeeded" }
func (s Failed) String() string    { return "failed: " + s.Reason }

func (f Failed) Error() string { return f.Reason }

func (f Failed) Unwrap() error { return f.Err }
