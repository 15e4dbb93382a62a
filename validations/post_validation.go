package validations

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainPost "github.com/postdeck/domains/post"
	pkgError "github.com/postdeck/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateCreatePost(ctx context.Context, request domainPost.CreatePostRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.TextContent, validation.Required),
		validation.Field(&request.Platforms, validation.Required),
		validation.Field(&request.ScheduledTime, validation.Required, validation.Date(time.RFC3339)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	for _, name := range strings.Split(request.Platforms, ",") {
		platform := domainPost.Platform(strings.TrimSpace(name))
		if platform != domainPost.PlatformTwitter && platform != domainPost.PlatformInstagram {
			return pkgError.ValidationError(fmt.Sprintf("platforms: %q is not a supported platform.", string(platform)))
		}
	}

	if request.ImageFile == nil {
		return pkgError.ValidationError("image_file: cannot be blank.")
	}

	return nil
}
