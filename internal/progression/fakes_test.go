package progression

import (
	"context"
	"errors"

	"github.com/abhisek/formwiz/internal/store"
)

type memStorage struct {
	blobs   map[string][]byte
	saves   []string
	failAll bool
}

func newMemStorage() *memStorage { return &memStorage{blobs: map[string][]byte{}} }

func (m *memStorage) Load(_ context.Context, key string) ([]byte, bool, error) {
	if m.failAll {
		return nil, false, errors.New("disk on fire")
	}
	b, ok := m.blobs[key]
	return b, ok, nil
}

func (m *memStorage) Save(_ context.Context, key string, data []byte) error {
	if m.failAll {
		return errors.New("disk on fire")
	}
	m.blobs[key] = append([]byte(nil), data...)
	m.saves = append(m.saves, key)
	return nil
}

func (m *memStorage) Delete(_ context.Context, keys ...string) error {
	if m.failAll {
		return errors.New("disk on fire")
	}
	for _, k := range keys {
		delete(m.blobs, k)
	}
	return nil
}

type routeLog struct{ routes []string }

func (r *routeLog) NavigateTo(route string) { r.routes = append(r.routes, route) }

func (r *routeLog) last() string {
	if len(r.routes) == 0 {
		return ""
	}
	return r.routes[len(r.routes)-1]
}

type noticeLog struct{ notices []Notice }

func (n *noticeLog) Notify(notice Notice) { n.notices = append(n.notices, notice) }

func (n *noticeLog) titles() []string {
	var out []string
	for _, x := range n.notices {
		out = append(out, x.Title)
	}
	return out
}

type eventLog struct {
	form []store.FormEventData
}

func (e *eventLog) AppendFormEvent(_ context.Context, d store.FormEventData) error {
	e.form = append(e.form, d)
	return nil
}

func (e *eventLog) QueryFormEvents(context.Context, store.QueryOpts) ([]store.FormEventRecord, error) {
	return nil, nil
}

func (e *eventLog) AppendLLMRequest(context.Context, store.LLMRequestEventData) error { return nil }

func (e *eventLog) QueryLLMRequests(context.Context, store.QueryOpts) ([]store.LLMRequestRecord, error) {
	return nil, nil
}

func (e *eventLog) actions() []string {
	var out []string
	for _, d := range e.form {
		out = append(out, d.Action)
	}
	return out
}
