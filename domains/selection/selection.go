package selection

import (
	"context"

	domainPost "github.com/postdeck/domains/post"
)

// State is the user's current inspection context: which calendar day is
// highlighted, which posts the detail view shows, and whether it is open.
type State struct {
	SelectedDate  string            `json:"selected_date,omitempty"`
	SelectedPosts []domainPost.Post `json:"selected_posts"`
	DetailOpen    bool              `json:"detail_open"`
	Notice        string            `json:"notice,omitempty"`
}

type ISelectionUsecase interface {
	SelectDate(ctx context.Context, date string) (State, error)
	SelectPost(ctx context.Context, id string) (State, error)
	Close(ctx context.Context) State
	State(ctx context.Context) State
}
