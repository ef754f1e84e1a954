package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"PropScope/internal/interfaces"
	"PropScope/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const maxViewName = 64

// ViewService saved filter sets. Identity comes from the caller; this service does not
// authenticate.
type ViewService struct {
	store  interfaces.ViewStore
	logger *logrus.Logger
}

// NewViewService creates ViewService
func NewViewService(store interfaces.ViewStore, logger *logrus.Logger) *ViewService {
	return &ViewService{store: store, logger: logger}
}

// ViewSummary API shape of a saved view
type ViewSummary struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Params    model.ViewParams `json:"params"`
	CreatedAt int64            `json:"created_at"` // unix millis
}

// Create saves params under name for email
func (s *ViewService) Create(ctx context.Context, email, name string, params model.ViewParams) (*ViewSummary, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if email == "" {
		return nil, &model.MissingInputError{Field: "user"}
	}
	if name == "" {
		return nil, &model.MissingInputError{Field: "name"}
	}
	if r := []rune(name); len(r) > maxViewName {
		name = string(r[:maxViewName])
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode view params: %w", err)
	}

	view := &model.SavedView{
		ViewUUID:  uuid.NewString(),
		UserEmail: email,
		Name:      name,
		Params:    datatypes.JSON(raw),
	}
	if err := s.store.Create(ctx, view); err != nil {
		return nil, fmt.Errorf("save view: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"view_id": view.ViewUUID, "user": email}).Info("saved view created")
	return toSummary(view, params), nil
}

// List the user's views, newest first
func (s *ViewService) List(ctx context.Context, email string) ([]ViewSummary, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	out := []ViewSummary{}
	if email == "" {
		return out, nil
	}
	views, err := s.store.ListByUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	for i := range views {
		params, err := decodeParams(views[i].Params)
		if err != nil {
			s.logger.WithError(err).WithField("view_id", views[i].ViewUUID).Warn("skipping unreadable saved view")
			continue
		}
		out = append(out, *toSummary(&views[i], params))
	}
	return out, nil
}

// Delete removes one of the user's views
func (s *ViewService) Delete(ctx context.Context, email, viewID string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return &model.MissingInputError{Field: "user"}
	}
	if viewID == "" {
		return &model.MissingInputError{Field: "id"}
	}
	ok, err := s.store.Delete(ctx, email, viewID)
	if err != nil {
		return fmt.Errorf("delete view: %w", err)
	}
	if !ok {
		return model.ErrViewNotFound
	}
	return nil
}

// Params the stored query parameters of one of email's views. Views owned by someone else
// report ErrViewNotFound, as do all views for an anonymous caller.
func (s *ViewService) Params(ctx context.Context, email, viewID string) (*model.ViewParams, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, model.ErrViewNotFound
	}
	view, err := s.store.GetByUUID(ctx, viewID)
	if err != nil {
		return nil, err
	}
	if view.UserEmail != email {
		return nil, model.ErrViewNotFound
	}
	params, err := decodeParams(view.Params)
	if err != nil {
		return nil, fmt.Errorf("decode view %s: %w", viewID, err)
	}
	return &params, nil
}

func decodeParams(raw datatypes.JSON) (model.ViewParams, error) {
	var p model.ViewParams
	err := json.Unmarshal(raw, &p)
	return p, err
}

func toSummary(v *model.SavedView, params model.ViewParams) *ViewSummary {
	return &ViewSummary{
		ID:        v.ViewUUID,
		Name:      v.Name,
		Params:    params,
		CreatedAt: v.CreatedAt.UnixMilli(),
	}
}
