package progression

import "errors"

// NoticeKind selects how a notice is presented.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeWarning
)

// Notice is a short user-visible message.
type Notice struct {
	Kind        NoticeKind
	Title       string
	Description string
}

var (
	// ErrCategoryLocked is returned when opening a form whose category is gated.
	ErrCategoryLocked = errors.New("category locked")

	// ErrFormLocked is returned when opening a form whose predecessor is pending.
	ErrFormLocked = errors.New("form locked")

	// ErrUnknownForm is returned when a category/form pair does not resolve.
	ErrUnknownForm = errors.New("unknown form")
)

var (
	noticeNextCategoryLocked = Notice{
		Kind:        NoticeWarning,
		Title:       "Category Locked",
		Description: "You need to complete the current category first.",
	}
	noticeCategoryLocked = Notice{
		Kind:        NoticeWarning,
		Title:       "Category Locked",
		Description: "You need to complete previous categories first.",
	}
	noticeFormLocked = Notice{
		Kind:        NoticeWarning,
		Title:       "Form Locked",
		Description: "You need to complete previous forms first.",
	}
	noticeReset = Notice{
		Kind:        NoticeInfo,
		Title:       "Form Reset",
		Description: "All form data has been reset.",
	}
)

const defaultSavedMessage = "Your details have been saved."

func savedNotice(msg string) Notice {
	return Notice{Kind: NoticeSuccess, Title: "Form Saved", Description: msg}
}
