package llm

import (
	"context"
	"sync"
)

// stubStory is what the stub provider answers when nothing is scripted.
const stubStory = `{"story":"Ben had a small red boat. He took it to the pond. The wind pushed the boat far away. A duck swam after it. The duck brought the boat back to Ben. Ben said thank you to the duck.","questions":[{"question":"What color was the boat?","options":["Blue","Red","Green","Yellow"],"answer":"B"},{"question":"Who brought the boat back?","options":["A fish","A frog","A duck","A dog"],"answer":"C"}]}`

// StubReply is one scripted answer.
type StubReply struct {
	Text string
	Err  error
}

// Stub is a Provider that replays scripted replies in order, repeating the
// last one. It records every prompt.
type Stub struct {
	mu      sync.Mutex
	replies []StubReply
	Prompts []Prompt
}

// NewStub scripts the given replies.
func NewStub(replies ...StubReply) *Stub {
	return &Stub{replies: replies}
}

func (s *Stub) Model() string { return "stub" }

func (s *Stub) Complete(_ context.Context, p Prompt) (*Completion, error) {
	s.mu.Lock()
	s.Prompts = append(s.Prompts, p)
	if len(s.replies) == 0 {
		s.mu.Unlock()
		return nil, &Error{Kind: KindUnavailable, Provider: "stub"}
	}
	r := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	s.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return finish(p, r.Text, false, &Completion{Model: "stub", InputTokens: len(p.User) / 4, OutputTokens: len(r.Text) / 4})
}

// Calls is the number of prompts seen.
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prompts)
}
