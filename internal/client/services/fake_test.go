package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

type fakeReply struct {
	body any
	err  error
}

// fakeRequester answers by "METHOD path" and records every request.
type fakeRequester struct {
	mu      sync.Mutex
	replies map[string]fakeReply
	calls   []*gateway.Request
}

func newFakeRequester() *fakeRequester {
	return &fakeRequester{replies: map[string]fakeReply{}}
}

func (f *fakeRequester) on(method, path string, body any, err error) *fakeRequester {
	f.replies[method+" "+path] = fakeReply{body: body, err: err}
	return f
}

func (f *fakeRequester) Do(_ context.Context, req *gateway.Request) error {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	reply, ok := f.replies[req.Method+" "+req.Path]
	f.mu.Unlock()

	if !ok {
		return &gateway.Error{Class: gateway.ServerError, Method: req.Method, Path: req.Path, Status: 404, Sent: true}
	}
	if reply.err != nil {
		return reply.err
	}
	if req.Out != nil && reply.body != nil {
		raw, err := json.Marshal(reply.body)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, req.Out)
	}
	return nil
}

func (f *fakeRequester) last() *gateway.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeRequester) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingUpdater struct {
	patches []models.UserPatch
}

func (r *recordingUpdater) UpdateUser(p models.UserPatch) {
	r.patches = append(r.patches, p)
}
