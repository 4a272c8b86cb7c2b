package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
	"github.com/stuccorite/fieldforms/internal/portal/pdf"
	"github.com/stuccorite/fieldforms/internal/portal/store"
	"github.com/stuccorite/fieldforms/pkg/idx"
)

var ErrFormNotFound = errors.New("form not found")

// FormService implements create, update, list, delete and PDF export
// for the four form kinds. Completion attribution and the draft versus
// completed validation rules live here, not in handlers.
type FormService struct {
	Store store.Store

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *FormService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create decodes and validates a new form document. When the form
// arrives already completed, the submitting user is recorded as the
// completer.
func (s *FormService) Create(ctx context.Context, t domain.FormType, body []byte, by *domain.User) (*domain.Form, error) {
	form, err := domain.DecodeForm(t, body)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	form.ID = idx.New().String()
	form.CreatedAt = now
	form.UpdatedAt = now
	s.attributeCompletion(form, by)

	if err := form.Validate(); err != nil {
		return nil, err
	}
	if err := s.Store.Forms().Create(ctx, form); err != nil {
		return nil, fmt.Errorf("store form: %w", err)
	}
	return form, nil
}

// Update replaces a form's contents. Completion attribution is set the
// first time the form transitions to completed and preserved afterward.
func (s *FormService) Update(ctx context.Context, t domain.FormType, id string, body []byte, by *domain.User) (*domain.Form, error) {
	existing, err := s.Store.Forms().GetByID(ctx, t, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("load form: %w", err)
	}

	form, err := domain.DecodeForm(t, body)
	if err != nil {
		return nil, err
	}
	form.ID = existing.ID
	form.CreatedAt = existing.CreatedAt
	form.UpdatedAt = s.now().UTC()
	form.CompletedByUser = existing.CompletedByUser
	form.CompletedByName = existing.CompletedByName
	s.attributeCompletion(form, by)

	if err := form.Validate(); err != nil {
		return nil, err
	}
	if err := s.Store.Forms().Update(ctx, form); err != nil {
		return nil, fmt.Errorf("store form: %w", err)
	}
	return form, nil
}

func (s *FormService) attributeCompletion(form *domain.Form, by *domain.User) {
	if form.Status != domain.StatusCompleted || by == nil || form.CompletedByUser != "" {
		return
	}
	form.CompletedByUser = by.ID
	form.CompletedByName = by.FullName
}

func (s *FormService) Get(ctx context.Context, t domain.FormType, id string) (*domain.Form, error) {
	form, err := s.Store.Forms().GetByID(ctx, t, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return form, nil
}

func (s *FormService) List(ctx context.Context, t domain.FormType, status domain.FormStatus) ([]*domain.Form, error) {
	return s.Store.Forms().List(ctx, t, status)
}

func (s *FormService) Delete(ctx context.Context, t domain.FormType, id string) error {
	err := s.Store.Forms().Delete(ctx, t, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrFormNotFound
	}
	return err
}

// Export renders a form to PDF and returns the bytes with the download
// filename. The summary variant uses the compact text-only emitter
// instead of the full styled layout.
func (s *FormService) Export(ctx context.Context, t domain.FormType, id string, summary bool) ([]byte, string, error) {
	form, err := s.Get(ctx, t, id)
	if err != nil {
		return nil, "", err
	}

	var out []byte
	if summary {
		out, err = pdf.RenderSummary(form)
	} else {
		out, err = pdf.Render(form, s.now())
	}
	if err != nil {
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}
	return out, fmt.Sprintf("%s-%s.pdf", t, id), nil
}
