package usecase

import (
	"context"
	"fmt"
	"time"

	domainSelection "github.com/postdeck/domains/selection"
	"github.com/postdeck/engine"
	pkgError "github.com/postdeck/pkg/error"
)

type serviceSelection struct {
	store *engine.Store
	ctrl  *engine.SelectionController
}

func NewSelectionService(store *engine.Store, ctrl *engine.SelectionController) domainSelection.ISelectionUsecase {
	return &serviceSelection{store: store, ctrl: ctrl}
}

func (service serviceSelection) SelectDate(ctx context.Context, date string) (domainSelection.State, error) {
	if _, err := time.Parse(engine.DateLayout, date); err != nil {
		return domainSelection.State{}, pkgError.ValidationError("date: must use the YYYY-MM-DD format.")
	}
	return service.ctrl.SelectDate(date), nil
}

func (service serviceSelection) SelectPost(ctx context.Context, id string) (domainSelection.State, error) {
	post, ok := service.store.PostByID(id)
	if !ok {
		return domainSelection.State{}, pkgError.NotFoundError(fmt.Sprintf("post %s not found", id))
	}
	return service.ctrl.SelectPost(post), nil
}

func (service serviceSelection) Close(ctx context.Context) domainSelection.State {
	return service.ctrl.Close()
}

func (service serviceSelection) State(ctx context.Context) domainSelection.State {
	return service.ctrl.State()
}
