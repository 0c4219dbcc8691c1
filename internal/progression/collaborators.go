package progression

import "context"

// Persistence keys.
const (
	KeyFormData       = "formData"
	KeyFormCategories = "formCategories"
)

// Storage is the key-value collaborator holding the persisted snapshots.
// store.SnapshotRepo satisfies it.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, keys ...string) error
}

// Router moves the UI to a route token. Fire-and-forget.
type Router interface {
	NavigateTo(route string)
}

// Notifier shows a user-visible notice.
type Notifier interface {
	Notify(n Notice)
}

// RouterFunc adapts a function to Router.
type RouterFunc func(route string)

func (f RouterFunc) NavigateTo(route string) { f(route) }

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type nopRouter struct{}

func (nopRouter) NavigateTo(string) {}

type nopNotifier struct{}

func (nopNotifier) Notify(Notice) {}
