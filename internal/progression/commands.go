package progression

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/navigation"
	"github.com/abhisek/formwiz/internal/store"
)

// Form event actions.
const (
	ActionDataUpdated   = "data_updated"
	ActionFormCompleted = "form_completed"
	ActionNavigated     = "navigated"
	ActionBlocked       = "blocked"
	ActionFinished      = "finished"
	ActionReset         = "reset"
)

// ErrClosed is returned by commands issued after Close.
var ErrClosed = errors.New("progression store closed")

// UpdateData shallow-merges partial into the collected data and persists.
func (s *Store) UpdateData(ctx context.Context, partial catalog.FieldMap) {
	if !s.guard("update_data") {
		return
	}
	s.data.Merge(partial)
	s.persist(ctx)
	s.record(ctx, store.FormEventData{
		Action: ActionDataUpdated,
		Detail: strings.Join(partial.Keys(), ","),
	})
}

// MarkFormCompleted flips the form to completed. Unknown ids and already
// completed forms are ignored.
func (s *Store) MarkFormCompleted(ctx context.Context, categoryID, formID string) {
	if !s.guard("mark_form_completed") {
		return
	}
	if !s.catalog.MarkCompleted(categoryID, formID) {
		s.logger.Debug("mark completed ignored",
			zap.String("category_id", categoryID),
			zap.String("form_id", formID),
		)
		return
	}
	s.persist(ctx)
	s.record(ctx, store.FormEventData{
		Action:     ActionFormCompleted,
		CategoryID: categoryID,
		FormID:     formID,
	})
}

// SetCurrentCategory moves the cursor's category. An empty id clears it;
// ids the catalog does not know are rejected.
func (s *Store) SetCurrentCategory(categoryID string) bool {
	if !s.guard("set_current_category") {
		return false
	}
	if categoryID != "" && s.catalog.CategoryIndex(categoryID) < 0 {
		s.logger.Warn("rejected unknown category", zap.String("category_id", categoryID))
		return false
	}
	s.cursor.CategoryID = categoryID
	return true
}

// SetCurrentForm moves the cursor's form. An empty id clears it; ids the
// catalog does not know are rejected.
func (s *Store) SetCurrentForm(formID string) bool {
	if !s.guard("set_current_form") {
		return false
	}
	if formID != "" {
		if _, ok := s.catalog.Form(formID); !ok {
			s.logger.Warn("rejected unknown form", zap.String("form_id", formID))
			return false
		}
	}
	s.cursor.FormID = formID
	return true
}

// Reset clears the collected data, restores the static catalog, deletes the
// persisted snapshots and routes back to the dashboard.
func (s *Store) Reset(ctx context.Context) {
	if !s.guard("reset") {
		return
	}
	s.data = catalog.FieldMap{}
	s.catalog = s.static.Clone()
	s.cursor = navigation.Cursor{}

	if s.storage != nil {
		if err := s.storage.Delete(ctx, KeyFormData, KeyFormCategories); err != nil {
			s.logger.Error("delete snapshots failed", zap.Error(err))
		}
	}

	s.record(ctx, store.FormEventData{Action: ActionReset, Route: catalog.RouteDashboard})
	s.router.NavigateTo(catalog.RouteDashboard)
	s.notifier.Notify(noticeReset)
}

// NavigateNext moves to the form after the cursor and returns the applied
// action.
func (s *Store) NavigateNext(ctx context.Context) navigation.Action {
	if !s.guard("navigate_next") {
		return navigation.Action{Kind: navigation.NoOp}
	}
	return s.apply(ctx, navigation.Next(s.catalog, s.cursor))
}

// NavigatePrevious moves to the form before the cursor and returns the
// applied action.
func (s *Store) NavigatePrevious(ctx context.Context) navigation.Action {
	if !s.guard("navigate_previous") {
		return navigation.Action{Kind: navigation.NoOp}
	}
	return s.apply(ctx, navigation.Previous(s.catalog, s.cursor))
}

func (s *Store) apply(ctx context.Context, a navigation.Action) navigation.Action {
	switch a.Kind {
	case navigation.MoveTo:
		s.cursor = navigation.Cursor{CategoryID: a.CategoryID, FormID: a.FormID}
		s.record(ctx, store.FormEventData{
			Action:     ActionNavigated,
			CategoryID: a.CategoryID,
			FormID:     a.FormID,
			Route:      a.Route,
		})
		s.router.NavigateTo(a.Route)
	case navigation.Finished:
		s.record(ctx, store.FormEventData{Action: ActionFinished, Route: a.Route})
		s.router.NavigateTo(a.Route)
	case navigation.Blocked:
		s.record(ctx, store.FormEventData{
			Action:     ActionBlocked,
			CategoryID: a.CategoryID,
			Detail:     a.Reason,
		})
		s.notifier.Notify(noticeNextCategoryLocked)
	}
	return a
}

// OpenForm is the dashboard entry point. A gated form produces a notice and
// ErrCategoryLocked or ErrFormLocked; otherwise the cursor moves to the form
// and the router is sent to it.
func (s *Store) OpenForm(ctx context.Context, categoryID, formID string) error {
	if !s.guard("open_form") {
		return ErrClosed
	}
	f, ok := s.catalog.Form(formID)
	if !ok || f.CategoryID != categoryID {
		return ErrUnknownForm
	}

	if !s.catalog.IsCategoryAccessible(categoryID) {
		s.record(ctx, store.FormEventData{Action: ActionBlocked, CategoryID: categoryID, FormID: formID, Detail: ErrCategoryLocked.Error()})
		s.notifier.Notify(noticeCategoryLocked)
		return ErrCategoryLocked
	}
	if !s.catalog.IsFormAccessible(formID) {
		s.record(ctx, store.FormEventData{Action: ActionBlocked, CategoryID: categoryID, FormID: formID, Detail: ErrFormLocked.Error()})
		s.notifier.Notify(noticeFormLocked)
		return ErrFormLocked
	}

	s.apply(ctx, navigation.Action{
		Kind:       navigation.MoveTo,
		CategoryID: categoryID,
		FormID:     formID,
		Route:      f.Route,
	})
	return nil
}

// Submit runs the collector contract for a validated form: merge the data,
// mark the form completed, announce the save, then navigate next.
func (s *Store) Submit(ctx context.Context, categoryID, formID string, partial catalog.FieldMap) navigation.Action {
	if !s.guard("submit") {
		return navigation.Action{Kind: navigation.NoOp}
	}
	f, ok := s.catalog.Form(formID)
	if !ok || f.CategoryID != categoryID {
		s.logger.Warn("submit for unknown form ignored",
			zap.String("category_id", categoryID),
			zap.String("form_id", formID),
		)
		return navigation.Action{Kind: navigation.NoOp}
	}

	s.cursor = navigation.Cursor{CategoryID: categoryID, FormID: formID}
	s.UpdateData(ctx, partial)
	s.MarkFormCompleted(ctx, categoryID, formID)

	msg := defaultSavedMessage
	if s.savedMessage != nil {
		if m := s.savedMessage(formID); m != "" {
			msg = m
		}
	}
	s.notifier.Notify(savedNotice(msg))

	return s.NavigateNext(ctx)
}
